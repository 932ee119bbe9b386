// Package errors provides categorized CLI errors with remediation hints for
// addonbump, plus the exit code each category maps to.
package errors

import "fmt"

// Category is the kind of failure reported to the user.
type Category int

const (
	// Argument errors come from invalid or missing command arguments.
	Argument Category = iota
	// Configuration errors come from invalid config files, env vars or flags.
	Configuration
	// Prerequisite errors mean a required file or value could not be found.
	Prerequisite
	// Runtime errors happen while files are being read or written.
	Runtime
)

// Exit codes returned by the addonbump binary.
const (
	ExitSuccess             = 0
	ExitFailure             = 1
	ExitInvalidArguments    = 3
	ExitMissingPrerequisite = 4
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Prerequisite:
		return "Prerequisite Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// ExitCode returns the process exit code for the category.
func (c Category) ExitCode() int {
	switch c {
	case Argument, Configuration:
		return ExitInvalidArguments
	case Prerequisite:
		return ExitMissingPrerequisite
	default:
		return ExitFailure
	}
}

// CLIError is an error with a category and remediation steps.
type CLIError struct {
	Category    Category
	Message     string
	Remediation []string
	// Usage shows the correct command syntax, for argument errors.
	Usage string

	err error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error, if any.
func (e *CLIError) Unwrap() error {
	return e.err
}

// NewArgumentError creates an argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewArgumentErrorWithUsage creates an argument error that shows the correct usage.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Usage: usage, Remediation: remediation}
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Configuration, Message: message, Remediation: remediation}
}

// NewPrerequisiteError creates a prerequisite error.
func NewPrerequisiteError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Prerequisite, Message: message, Remediation: remediation}
}

// Wrap wraps err in a CLIError, keeping its message and chain.
func Wrap(err error, category Category, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{Category: category, Message: err.Error(), Remediation: remediation, err: err}
}

// WrapWithMessage wraps err with a custom message prefix.
func WrapWithMessage(err error, category Category, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
		err:         err,
	}
}

// AsCLIError returns err as a *CLIError, or nil if it is not one.
func AsCLIError(err error) *CLIError {
	cliErr, ok := err.(*CLIError)
	if ok {
		return cliErr
	}
	return nil
}
