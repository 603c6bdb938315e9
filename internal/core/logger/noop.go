package logger

import "context"

// discard is installed until Initialize runs, so packages can log from
// tests without any setup.
type discard struct{}

func (discard) Log(context.Context, LogEntry)  {}
func (discard) Shutdown(context.Context) error { return nil }
