// Package testhelpers provides testing utilities for stepwise, including a
// scene system, Git repository helpers and custom assertions.
package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectSubjects asserts the commit subjects of the repository, oldest first.
func ExpectSubjects(t *testing.T, repo *GitRepo, expected ...string) {
	t.Helper()

	subjects, err := repo.Subjects()
	require.NoError(t, err, "Failed to list commits")
	require.Equal(t, expected, subjects, "Commit subjects do not match")
}

// ExpectNoRebase asserts that no rebase was left behind.
func ExpectNoRebase(t *testing.T, repo *GitRepo) {
	t.Helper()
	require.False(t, repo.RebaseInProgress(), "Rebase still in progress")
}
