package scan

import "log/slog"

type Status int

const (
	StatusOK Status = iota
	StatusDegraded
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegraded:
		return "degraded"
	case StatusFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Result is the outcome of one pipeline stage. A degraded result still carries
// a usable Value; a fatal one carries only Err.
type Result[T any] struct {
	Value   T
	Status  Status
	Warning string
	Err     error
}

func OK[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: StatusOK}
}

func Degraded[T any](v T, warning string, err error) Result[T] {
	return Result[T]{Value: v, Status: StatusDegraded, Warning: warning, Err: err}
}

func Fatal[T any](err error) Result[T] {
	return Result[T]{Status: StatusFatal, Err: err}
}

// Report logs a degraded result as a single warning line.
func (r Result[T]) Report(attrs ...any) {
	if r.Status != StatusDegraded {
		return
	}
	if r.Err != nil {
		attrs = append(attrs, "error", r.Err)
	}
	slog.Warn(r.Warning, attrs...)
}
