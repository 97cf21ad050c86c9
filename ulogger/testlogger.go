package ulogger

// TestLogger is a no-op Logger for tests that don't care about log output.
type TestLogger struct{}

func (TestLogger) LogLevel() int                             { return 0 }
func (TestLogger) SetLogLevel(level string)                  {}
func (TestLogger) Debugf(format string, args ...interface{}) {}
func (TestLogger) Infof(format string, args ...interface{})  {}
func (TestLogger) Warnf(format string, args ...interface{})  {}
func (TestLogger) Errorf(format string, args ...interface{}) {}
func (TestLogger) Fatalf(format string, args ...interface{}) {}

func (l TestLogger) New(service string, options ...Option) Logger {
	return l
}

func (l TestLogger) Duplicate(options ...Option) Logger {
	return l
}
