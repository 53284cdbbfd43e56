package model

import "fmt"

// ConfigError reports a broken project model: a component that cannot be
// found, a link dependency that is not a library, or a prop value outside
// the accepted types. It is fatal to the invoking command.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

// Configf builds a ConfigError from a format string.
func Configf(format string, args ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}
