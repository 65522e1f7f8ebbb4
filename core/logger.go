package core

// OwnerID marks a log arg as the acting owner so error trackers can tag it.
type OwnerID string

// Logger logs app events at the usual levels. Implementations may forward
// extra args to an external error tracker.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
