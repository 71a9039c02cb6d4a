package errors

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), NewStepNotFoundError("2.1"))
	assert.ErrorIs(t, wrapped, ErrStepNotFound)
	assert.True(t, IsStepNotFound(wrapped))
	assert.EqualError(t, NewStepNotFoundError("2.1"), "step 2.1 not found")

	assert.ErrorIs(t, NewInvalidStepError("1.x"), ErrInvalidStep)
	assert.False(t, IsStepNotFound(NewInvalidStepError("1.x")))
}

func TestGitCommandError(t *testing.T) {
	cause := &exec.ExitError{}

	t.Run("prefers stderr", func(t *testing.T) {
		err := NewGitCommandError("git", []string{"mv", "a", "b"}, "ignored", "fatal: bad source\n", errors.New("exit status 128"))
		assert.Equal(t, "git mv a b failed: exit status 128\nfatal: bad source", err.Error())
	})

	t.Run("falls back to stdout", func(t *testing.T) {
		err := NewGitCommandError("git", []string{"status"}, "dirty\n", "", nil)
		assert.Equal(t, "git status failed\ndirty", err.Error())
	})

	t.Run("unwraps the cause", func(t *testing.T) {
		err := NewGitCommandError("git", nil, "", "", cause)
		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Same(t, cause, exitErr)
	})
}
