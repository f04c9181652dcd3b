package config

import "fmt"

// Error is a configuration error: the suite itself is malformed or
// internally inconsistent. It is always surfaced at load or validation
// time, before any environment settings are handed to a consumer.
type Error struct {
	Msg string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Msg
}

// Errorf builds a configuration error from a format string.
func Errorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// ResolveError reports that an environment identifier could not be
// resolved against the declared axes.
type ResolveError struct {
	ID  string
	Msg string
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("cannot resolve environment %q: %s", e.ID, e.Msg)
}
