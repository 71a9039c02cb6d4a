// Package errors holds the sentinel errors and error types of stepwise.
// Match them with errors.Is and errors.As.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrStepNotFound indicates that no commit carries the requested step number
	ErrStepNotFound = errors.New("step not found")

	// ErrInvalidStep indicates a malformed step number argument
	ErrInvalidStep = errors.New("invalid step")

	// ErrRebaseNotInProgress indicates that no rebase is currently in progress
	ErrRebaseNotInProgress = errors.New("no rebase in progress")

	// ErrNoOperations indicates that a rebase todo holds no operation lines
	ErrNoOperations = errors.New("rebase todo has no operations")
)

// StepNotFoundError represents an error when a step's commit cannot be located
type StepNotFoundError struct {
	Step string
}

func (e *StepNotFoundError) Error() string {
	return fmt.Sprintf("step %s not found", e.Step)
}

// Is returns true if the target error is ErrStepNotFound
func (e *StepNotFoundError) Is(target error) bool {
	return target == ErrStepNotFound
}

// NewStepNotFoundError creates a new StepNotFoundError
func NewStepNotFoundError(step string) *StepNotFoundError {
	return &StepNotFoundError{Step: step}
}

// InvalidStepError represents a step argument that is not of the form N or N.M
type InvalidStepError struct {
	Value string
}

func (e *InvalidStepError) Error() string {
	return fmt.Sprintf("invalid step %q: expected <super> or <super>.<sub>", e.Value)
}

// Is returns true if the target error is ErrInvalidStep
func (e *InvalidStepError) Is(target error) bool {
	return target == ErrInvalidStep
}

// NewInvalidStepError creates a new InvalidStepError
func NewInvalidStepError(value string) *InvalidStepError {
	return &InvalidStepError{Value: value}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	var b strings.Builder
	b.WriteString(e.Command)
	for _, arg := range e.Args {
		b.WriteString(" " + arg)
	}
	b.WriteString(" failed")
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	// git reports problems on stderr; stdout only helps when stderr is silent
	switch detail := strings.TrimSpace(e.Stderr); {
	case detail != "":
		b.WriteString("\n" + detail)
	case strings.TrimSpace(e.Stdout) != "":
		b.WriteString("\n" + strings.TrimSpace(e.Stdout))
	}
	return b.String()
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// IsStepNotFound reports whether err means a step commit is missing
func IsStepNotFound(err error) bool {
	return errors.Is(err, ErrStepNotFound)
}
