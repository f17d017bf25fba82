package cli

import (
	"errors"
	"fmt"
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// FindingsError reports that linting completed but produced findings at or
// above the failure threshold. It maps to exit code 1, while every other
// error maps to exit code 2.
type FindingsError struct {
	Errors   int
	Warnings int
}

func (e *FindingsError) Error() string {
	return fmt.Sprintf("lint failed: %d error(s), %d warning(s)", e.Errors, e.Warnings)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var findings *FindingsError
	if errors.As(err, &findings) {
		return 1
	}
	return 2
}
