package mapfile

import (
	"errors"
	"fmt"
)

// Error represents a mapfile error with an error code
type Error struct {
	Code    ErrorCode
	Message string
	Err     error // wrapped error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mapfile: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("mapfile: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode classifies the failing stage of a mapping operation
type ErrorCode int

const (
	// ErrAlignment indicates an invalid or overflowing region offset/size
	ErrAlignment ErrorCode = iota + 1

	// ErrExtension indicates the backing file could not be grown
	ErrExtension

	// ErrMapping indicates the OS mapping call failed
	ErrMapping

	// ErrFlush indicates the synchronize call failed
	ErrFlush

	// ErrUnmap indicates the mapping release failed
	ErrUnmap

	// ErrAlreadyMapped indicates MapRegion was called on a mapped entity
	ErrAlreadyMapped

	// ErrNotMapped indicates the operation requires an active mapping
	ErrNotMapped
)

// Error descriptions
var errorMessages = map[ErrorCode]string{
	ErrAlignment:     "region bounds are not valid for mapping",
	ErrExtension:     "unable to extend backing file",
	ErrMapping:       "mapping call failed",
	ErrFlush:         "flush failed",
	ErrUnmap:         "unmap failed",
	ErrAlreadyMapped: "already mapped",
	ErrNotMapped:     "not mapped",
}

// NewError creates a new Error with the given code
func NewError(code ErrorCode) *Error {
	msg, ok := errorMessages[code]
	if !ok {
		msg = fmt.Sprintf("unknown error code %d", code)
	}
	return &Error{Code: code, Message: msg}
}

// WrapError creates a new Error wrapping another error
func WrapError(code ErrorCode, err error) *Error {
	e := NewError(code)
	e.Err = err
	return e
}

// errorf creates a new Error with a custom message
func errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Code returns the error code from an error, or 0 if not a mapfile error
func Code(err error) ErrorCode {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// IsAlignment returns true if the error is an ErrAlignment error
func IsAlignment(err error) bool {
	return Code(err) == ErrAlignment
}

// IsExtension returns true if the error is an ErrExtension error
func IsExtension(err error) bool {
	return Code(err) == ErrExtension
}

// IsMapping returns true if the error is an ErrMapping error
func IsMapping(err error) bool {
	return Code(err) == ErrMapping
}

// IsFlush returns true if the error is an ErrFlush error
func IsFlush(err error) bool {
	return Code(err) == ErrFlush
}

// IsUnmap returns true if the error is an ErrUnmap error
func IsUnmap(err error) bool {
	return Code(err) == ErrUnmap
}

// IsAlreadyMapped returns true if the error is an ErrAlreadyMapped error
func IsAlreadyMapped(err error) bool {
	return Code(err) == ErrAlreadyMapped
}

// IsNotMapped returns true if the error is an ErrNotMapped error
func IsNotMapped(err error) bool {
	return Code(err) == ErrNotMapped
}
