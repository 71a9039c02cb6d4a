package git_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stepwise.dev/stepwise/internal/errors"
	"stepwise.dev/stepwise/internal/git"
	"stepwise.dev/stepwise/testhelpers"
)

func TestFindStepCommit(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
	repo, err := git.OpenRepository(context.Background(), scene.Dir)
	require.NoError(t, err)

	t.Run("finds a sub-step", func(t *testing.T) {
		c, err := repo.FindStepCommit("1.2")
		require.NoError(t, err)
		assert.Equal(t, "Step 1.2: Add farewell", git.Subject(c))
	})

	t.Run("does not confuse a super-step with its sub-steps", func(t *testing.T) {
		c, err := repo.FindStepCommit("1")
		require.NoError(t, err)
		assert.Equal(t, "Step 1: Basics", git.Subject(c))
	})

	t.Run("dot is not a wildcard", func(t *testing.T) {
		_, err := repo.FindStepCommit("1x1")
		assert.ErrorIs(t, err, errors.ErrStepNotFound)
	})

	t.Run("missing step", func(t *testing.T) {
		_, err := repo.FindStepCommit("9")
		assert.ErrorIs(t, err, errors.ErrStepNotFound)
	})
}

func TestDiffWithParent(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
	ctx := context.Background()
	repo, err := git.OpenRepository(ctx, scene.Dir)
	require.NoError(t, err)

	t.Run("step commit", func(t *testing.T) {
		c, err := repo.FindStepCommit("1")
		require.NoError(t, err)

		diff, err := repo.DiffWithParent(ctx, c)
		require.NoError(t, err)
		assert.Contains(t, diff, "--- a/hello.txt")
		assert.Contains(t, diff, "+world")
		assert.NotContains(t, diff, "bye.txt")
	})

	t.Run("root commit", func(t *testing.T) {
		head, err := repo.HeadCommit()
		require.NoError(t, err)
		root := head
		for root.NumParents() > 0 {
			root, err = repo.ParentCommit(root)
			require.NoError(t, err)
		}

		diff, err := repo.DiffWithParent(ctx, root)
		require.NoError(t, err)
		assert.Contains(t, diff, "new file mode")
		assert.Contains(t, diff, "+# Tutorial")
	})
}

func TestRepositoryPaths(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	ctx := context.Background()
	repo, err := git.OpenRepository(ctx, scene.Dir)
	require.NoError(t, err)

	hooks, err := repo.HooksDir(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hooks", filepath.Base(hooks))
	assert.DirExists(t, hooks)
	assert.False(t, repo.IsRebaseInProgress())
	assert.True(t, repo.IsTracked(ctx, "README.md"))
	assert.False(t, repo.IsTracked(ctx, "missing.md"))
}

func TestAmend(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	ctx := context.Background()
	repo, err := git.OpenRepository(ctx, scene.Dir)
	require.NoError(t, err)

	require.NoError(t, repo.Amend(ctx, git.AmendOptions{Message: "Root", NoVerify: true}))
	testhelpers.ExpectSubjects(t, scene.Repo, "Root")
}

func TestStepCommits(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
	repo, err := git.OpenRepository(context.Background(), scene.Dir)
	require.NoError(t, err)

	steps, err := repo.StepCommits("HEAD")
	require.NoError(t, err)

	numbers := make([]string, 0, len(steps))
	for _, s := range steps {
		numbers = append(numbers, s.Step.Number())
	}
	assert.Equal(t, []string{"2", "1", "1.2", "1.1"}, numbers)

	t.Run("previous step of a sub-step", func(t *testing.T) {
		c, err := repo.FindStepCommit("1.2")
		require.NoError(t, err)
		prev, err := repo.PreviousStep(c)
		require.NoError(t, err)
		require.NotNil(t, prev)
		assert.Equal(t, "1.1", prev.Number())
	})

	t.Run("first step has no previous step", func(t *testing.T) {
		c, err := repo.FindStepCommit("1.1")
		require.NoError(t, err)
		prev, err := repo.PreviousStep(c)
		require.NoError(t, err)
		assert.Nil(t, prev)
	})
}
