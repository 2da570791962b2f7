package i

// Logger is the logging surface used by the services.
type Logger interface {
	Info(string)
	Warn(string)
	Error(string)
}
