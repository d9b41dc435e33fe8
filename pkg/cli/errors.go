package cli

import (
	"fmt"

	"cratedig-hq/cratedig/pkg/client"
)

// Exit codes for command failures, keyed off the error taxonomy so shell
// scripts can branch on the failure class.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 2
	ExitAuth      = 3
	ExitNotFound  = 4
	ExitRateLimit = 5
	ExitServer    = 6
	ExitNetwork   = 7
)

// CommandError wraps an error from a command execution.
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

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{Command: command, Err: err}
}

// ExitCode maps an error to a process exit code. Nil maps to ExitOK and
// unclassified errors to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	apiErr, ok := client.AsAPIError(err)
	if !ok {
		return ExitFailure
	}

	switch apiErr.Kind {
	case client.KindAuthentication:
		return ExitAuth
	case client.KindNotFound:
		return ExitNotFound
	case client.KindBadRequest:
		return ExitUsage
	case client.KindRateLimited:
		return ExitRateLimit
	case client.KindServerError:
		return ExitServer
	case client.KindNetworkError:
		return ExitNetwork
	default:
		return ExitFailure
	}
}
