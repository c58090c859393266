package cli

import "errors"

// Process exit statuses. Success is 0.
const (
	ExitFailure      = 1 // no rule applies, the equation has no valid result, or scenarios failed
	ExitCommandError = 2 // bad flags or input, unreadable or invalid catalog
)

// ExitError ties a command failure to the status main exits with.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError returns a failure with no underlying cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches an exit status and context to err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// ExitCode returns the status for err. Errors that carry no status, such as
// cobra's own flag errors, exit with ExitFailure.
func ExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
