package ensemble

type Logger interface {
	Debug(int, string, ...interface{})
	Info(string, ...interface{})
	Error(string, ...interface{})
}

// NopLogger discards all messages.
type NopLogger struct{}

func (NopLogger) Debug(int, string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})       {}
func (NopLogger) Error(string, ...interface{})      {}

func loggerOrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}

	return l
}
