package mapfile

// LoggerFunc is a callback function for diagnostic logging.
type LoggerFunc func(msg string, args ...any)

// global logger, nil means silent
var globalLogger LoggerFunc

// SetLogger sets the logger used for non-fatal diagnostics, such as unmap
// failures during teardown. Returns the previous logger.
func SetLogger(logger LoggerFunc) LoggerFunc {
	prev := globalLogger
	globalLogger = logger
	return prev
}

func logf(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger(msg, args...)
	}
}
