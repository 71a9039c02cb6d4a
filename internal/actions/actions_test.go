package actions_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stepwise.dev/stepwise/internal/actions"
	"stepwise.dev/stepwise/internal/config"
	"stepwise.dev/stepwise/internal/errors"
	"stepwise.dev/stepwise/internal/git"
	"stepwise.dev/stepwise/internal/output"
	"stepwise.dev/stepwise/internal/runtime"
	"stepwise.dev/stepwise/internal/storage"
	"stepwise.dev/stepwise/testhelpers"
)

type testContext struct {
	*runtime.Context
	store *storage.MemoryStore
	out   *bytes.Buffer
}

func newTestContext(t *testing.T, scene *testhelpers.Scene) *testContext {
	t.Helper()
	repo, err := git.OpenRepository(context.Background(), scene.Dir)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	splog, err := output.NewSplogWithConfig(out, "")
	require.NoError(t, err)

	store := storage.NewMemoryStore(nil)
	ctx := runtime.NewContext(context.Background(), repo, config.Default(), store, splog)
	ctx.Binary = "stepwise"
	return &testContext{Context: ctx, store: store, out: out}
}

// fakeRebase makes the repository look like a rebase stopped in it
func fakeRebase(t *testing.T, scene *testhelpers.Scene) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(scene.Dir, ".git", "rebase-merge"), 0750))
}

func writeMessage(t *testing.T, message string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	require.NoError(t, os.WriteFile(path, []byte(message), 0600))
	return path
}

func TestCommitMsgHookAction(t *testing.T) {
	message := "Step 2: Add farewell\n\n# Please enter the commit message for your changes.\n"

	t.Run("does nothing outside a rebase", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		ctx := newTestContext(t, scene)

		err := actions.CommitMsgHookAction(ctx.Context, actions.CommitMsgHookOptions{MessageFile: writeMessage(t, message)})
		require.NoError(t, err)
		assert.Empty(t, ctx.store.Snapshot())
	})

	t.Run("records the new step during a rebase", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		fakeRebase(t, scene)
		ctx := newTestContext(t, scene)

		err := actions.CommitMsgHookAction(ctx.Context, actions.CommitMsgHookOptions{MessageFile: writeMessage(t, message)})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{storage.KeyNewStep: "2"}, ctx.store.Snapshot())
	})

	t.Run("skips comment lines and records root for plain subjects", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		fakeRebase(t, scene)
		ctx := newTestContext(t, scene)

		err := actions.CommitMsgHookAction(ctx.Context, actions.CommitMsgHookOptions{
			MessageFile: writeMessage(t, "# Step 4: not this\n\nInitial commit\n"),
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{storage.KeyNewStep: "root"}, ctx.store.Snapshot())
	})

	t.Run("honors disabled hooks and reworded commits", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		fakeRebase(t, scene)

		for _, key := range []string{storage.KeyHooksDisabled, storage.KeyHookStep} {
			ctx := newTestContext(t, scene)
			require.NoError(t, ctx.store.Set(key, "1"))

			err := actions.CommitMsgHookAction(ctx.Context, actions.CommitMsgHookOptions{MessageFile: writeMessage(t, message)})
			require.NoError(t, err)
			_, ok, _ := ctx.store.Get(storage.KeyNewStep)
			assert.False(t, ok, key)
		}
	})
}

func TestRewordHelperAction(t *testing.T) {
	t.Run("keeps a correctly numbered step", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
		ctx := newTestContext(t, scene)
		head := testhelpers.Must(scene.Repo.Head())

		require.NoError(t, actions.RewordHelperAction(ctx.Context, actions.RewordHelperOptions{}))
		assert.Equal(t, head, testhelpers.Must(scene.Repo.Head()))
		value, _, _ := ctx.store.Get(storage.KeyHookStep)
		assert.Equal(t, "2", value)
	})

	t.Run("renumbers after the previous step", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
		require.NoError(t, scene.Repo.CommitFile("extra.txt", "x\n", "Step 7: Extra\n\nSome details."))
		ctx := newTestContext(t, scene)

		require.NoError(t, actions.RewordHelperAction(ctx.Context, actions.RewordHelperOptions{}))
		message := testhelpers.Must(scene.Repo.RunGitCommandAndGetOutput("log", "-1", "--format=%B"))
		assert.Equal(t, "Step 3: Extra\n\nSome details.", message)
		value, _, _ := ctx.store.Get(storage.KeyHookStep)
		assert.Equal(t, "3", value)
	})

	t.Run("sub-step after a super-step opens a new group", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
		require.NoError(t, scene.Repo.CommitFile("extra.txt", "x\n", "Step 9.4: Extra"))
		ctx := newTestContext(t, scene)

		require.NoError(t, actions.RewordHelperAction(ctx.Context, actions.RewordHelperOptions{}))
		testhelpers.ExpectSubjects(t, scene.Repo,
			"Initial commit", "Step 1.1: Add greeting", "Step 1.2: Add farewell",
			"Step 1: Basics", "Step 2: Cleanup", "Step 3.1: Extra")
	})

	t.Run("replaces the text", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
		ctx := newTestContext(t, scene)

		require.NoError(t, actions.RewordHelperAction(ctx.Context, actions.RewordHelperOptions{Message: "Tidy up"}))
		subjects := testhelpers.Must(scene.Repo.Subjects())
		assert.Equal(t, "Step 2: Tidy up", subjects[len(subjects)-1])
	})

	t.Run("uses a full step subject as is", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
		ctx := newTestContext(t, scene)

		require.NoError(t, actions.RewordHelperAction(ctx.Context, actions.RewordHelperOptions{Message: "Step 2.1: Split"}))
		subjects := testhelpers.Must(scene.Repo.Subjects())
		assert.Equal(t, "Step 2.1: Split", subjects[len(subjects)-1])
	})

	t.Run("leaves non-step commits alone", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		ctx := newTestContext(t, scene)
		head := testhelpers.Must(scene.Repo.Head())

		require.NoError(t, actions.RewordHelperAction(ctx.Context, actions.RewordHelperOptions{}))
		assert.Equal(t, head, testhelpers.Must(scene.Repo.Head()))
		assert.Empty(t, ctx.store.Snapshot())
	})

	t.Run("turns a plain commit into a sub-step when given a text", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		ctx := newTestContext(t, scene)

		require.NoError(t, actions.RewordHelperAction(ctx.Context, actions.RewordHelperOptions{Message: "Scaffold"}))
		testhelpers.ExpectSubjects(t, scene.Repo, "Step 1.1: Scaffold")
	})
}

func manualScene(scene *testhelpers.Scene) error {
	repo := scene.Repo
	if err := testhelpers.BasicSceneSetup(scene); err != nil {
		return err
	}
	for _, s := range []struct{ number, title string }{{"1", "Intro"}, {"2", "Next"}} {
		if err := repo.WriteFile(".stepwise/manuals/templates/step"+s.number+".tmpl", "# "+s.title+"\n"); err != nil {
			return err
		}
		if err := repo.WriteFile(".stepwise/manuals/views/step"+s.number+".md", "# "+s.title+"\n"); err != nil {
			return err
		}
		if err := repo.RunGitCommand("add", "-A"); err != nil {
			return err
		}
		if err := repo.RunGitCommand("commit", "-m", "Step "+s.number+": "+s.title); err != nil {
			return err
		}
	}
	return nil
}

func TestSuperPickAction(t *testing.T) {
	t.Run("renames manuals of a renumbered step", func(t *testing.T) {
		scene := testhelpers.NewScene(t, manualScene)
		picked := testhelpers.Must(scene.Repo.Head())
		require.NoError(t, scene.Repo.RunGitCommand("reset", "-q", "--hard", "HEAD~2"))
		ctx := newTestContext(t, scene)

		require.NoError(t, actions.SuperPickAction(ctx.Context, actions.SuperPickOptions{Hash: picked}))

		testhelpers.ExpectSubjects(t, scene.Repo, "Initial commit", "Step 2: Next")
		assert.FileExists(t, filepath.Join(scene.Dir, ".stepwise/manuals/templates/step1.tmpl"))
		assert.FileExists(t, filepath.Join(scene.Dir, ".stepwise/manuals/views/step1.md"))
		assert.NoFileExists(t, filepath.Join(scene.Dir, ".stepwise/manuals/templates/step2.tmpl"))
		status := testhelpers.Must(scene.Repo.RunGitCommandAndGetOutput("status", "--porcelain"))
		assert.Empty(t, status)
	})

	t.Run("keeps manuals of a step that keeps its number", func(t *testing.T) {
		scene := testhelpers.NewScene(t, manualScene)
		picked := testhelpers.Must(scene.Repo.Head())
		require.NoError(t, scene.Repo.RunGitCommand("reset", "-q", "--hard", "HEAD~1"))
		ctx := newTestContext(t, scene)

		require.NoError(t, actions.SuperPickAction(ctx.Context, actions.SuperPickOptions{Hash: picked}))

		testhelpers.ExpectSubjects(t, scene.Repo, "Initial commit", "Step 1: Intro", "Step 2: Next")
		assert.FileExists(t, filepath.Join(scene.Dir, ".stepwise/manuals/templates/step2.tmpl"))
	})

	t.Run("fails on an unknown commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		ctx := newTestContext(t, scene)

		err := actions.SuperPickAction(ctx.Context, actions.SuperPickOptions{Hash: "0000000000000000000000000000000000000001"})
		assert.Error(t, err)
	})
}

func TestRenderManualAction(t *testing.T) {
	setup := func(scene *testhelpers.Scene) error {
		if err := testhelpers.TutorialSceneSetup(scene); err != nil {
			return err
		}
		if err := scene.Repo.WriteFile(".stepwise/manuals/templates/root.tmpl", "# Tutorial ({{.Step}})\n"); err != nil {
			return err
		}
		return scene.Repo.WriteFile(".stepwise/manuals/templates/step1.tmpl", "# Basics\n\n{{diffStep \"1.1\"}}")
	}

	t.Run("root manual", func(t *testing.T) {
		scene := testhelpers.NewScene(t, setup)
		ctx := newTestContext(t, scene)

		require.NoError(t, actions.RenderManualAction(ctx.Context, actions.RenderManualOptions{Root: true}))
		assert.Equal(t, "# Tutorial (root)\n", testhelpers.Must(scene.Repo.ReadFile("README.md")))
	})

	t.Run("step manual in prod format", func(t *testing.T) {
		scene := testhelpers.NewScene(t, setup)
		ctx := newTestContext(t, scene)

		require.NoError(t, actions.RenderManualAction(ctx.Context, actions.RenderManualOptions{Step: "1", Format: "prod"}))
		content := testhelpers.Must(scene.Repo.ReadFile(".stepwise/manuals/views/step1.md"))
		assert.Contains(t, content, "[__prod__]: #\n# Basics")
		assert.Contains(t, content, "#### Step 1.1: Add greeting")
	})

	t.Run("needs exactly one target", func(t *testing.T) {
		scene := testhelpers.NewScene(t, setup)
		ctx := newTestContext(t, scene)

		assert.Error(t, actions.RenderManualAction(ctx.Context, actions.RenderManualOptions{}))
		assert.Error(t, actions.RenderManualAction(ctx.Context, actions.RenderManualOptions{Root: true, Step: "1"}))
	})

	t.Run("rejects unknown formats for render-all", func(t *testing.T) {
		scene := testhelpers.NewScene(t, setup)
		ctx := newTestContext(t, scene)

		err := actions.RenderAllAction(ctx.Context, actions.RenderAllOptions{Format: "pdf"})
		assert.ErrorContains(t, err, "unknown manual format")
	})
}

func TestDiffStepAction(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
	ctx := newTestContext(t, scene)

	require.NoError(t, actions.DiffStepAction(ctx.Context, "1.2"))
	assert.Contains(t, ctx.out.String(), "#### Step 1.2: Add farewell")
	assert.Contains(t, ctx.out.String(), "##### Added bye.txt")

	ctx.out.Reset()
	require.NoError(t, actions.DiffStepAction(ctx.Context, "8"))
	assert.Equal(t, "STEP 8 NOT FOUND!", ctx.out.String())
}

func TestEditStepActionValidation(t *testing.T) {
	t.Run("invalid step", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
		ctx := newTestContext(t, scene)

		err := actions.EditStepAction(ctx.Context, actions.EditStepOptions{Step: "1.x"})
		assert.ErrorIs(t, err, errors.ErrInvalidStep)
	})

	t.Run("missing step", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
		ctx := newTestContext(t, scene)

		err := actions.EditStepAction(ctx.Context, actions.EditStepOptions{Step: "5"})
		assert.ErrorIs(t, err, errors.ErrStepNotFound)
	})

	t.Run("rebase in progress", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
		fakeRebase(t, scene)
		ctx := newTestContext(t, scene)

		err := actions.EditStepAction(ctx.Context, actions.EditStepOptions{Step: "1"})
		assert.ErrorContains(t, err, "already in progress")
	})

	t.Run("picking needs a terminal", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
		ctx := newTestContext(t, scene)

		err := actions.EditStepAction(ctx.Context, actions.EditStepOptions{Pick: true})
		assert.ErrorContains(t, err, "non-interactive")
	})

	t.Run("reword needs a message", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
		ctx := newTestContext(t, scene)

		err := actions.RewordStepAction(ctx.Context, actions.RewordStepOptions{Step: "1"})
		assert.ErrorContains(t, err, "message is required")
	})
}

func TestEditTodoAction(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
	ctx := newTestContext(t, scene)

	path := filepath.Join(t.TempDir(), "git-rebase-todo")
	require.NoError(t, os.WriteFile(path, []byte("pick 1111111 Step 1.2: Add farewell\npick 2222222 Step 1: Basics\n"), 0600))

	require.NoError(t, actions.EditTodoAction(ctx.Context, actions.EditTodoOptions{Mode: "edit", File: path}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "edit 1111111 Step 1.2: Add farewell\nexec GIT_SEQUENCE_EDITOR=")
	assert.Equal(t, map[string]string{storage.KeyOldStep: "1.2", storage.KeyNewStep: "1.2"}, ctx.store.Snapshot())

	err = actions.EditTodoAction(ctx.Context, actions.EditTodoOptions{Mode: "format-manuals", File: path})
	assert.Error(t, err)
}

func TestInitAction(t *testing.T) {
	t.Run("installs the hook and config", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		ctx := newTestContext(t, scene)

		require.NoError(t, actions.InitAction(ctx.Context, actions.InitOptions{}))

		hook := testhelpers.Must(scene.Repo.ReadFile(".git/hooks/commit-msg"))
		assert.Equal(t, actions.HookScript("stepwise"), hook)
		info, err := os.Stat(filepath.Join(scene.Dir, ".git/hooks/commit-msg"))
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&0100)
		assert.FileExists(t, filepath.Join(scene.Dir, config.FileName))

		// Running again replaces our own hook silently
		require.NoError(t, actions.InitAction(ctx.Context, actions.InitOptions{}))
	})

	t.Run("refuses to replace a foreign hook without force", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.WriteFile(".git/hooks/commit-msg", "#!/bin/sh\nexit 0\n"))
		ctx := newTestContext(t, scene)

		err := actions.InitAction(ctx.Context, actions.InitOptions{})
		assert.ErrorContains(t, err, "--force")

		require.NoError(t, actions.InitAction(ctx.Context, actions.InitOptions{Force: true}))
		assert.Contains(t, testhelpers.Must(scene.Repo.ReadFile(".git/hooks/commit-msg")), "hook commit-msg")
	})
}

func TestListStepsAction(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.TutorialSceneSetup)
	ctx := newTestContext(t, scene)

	require.NoError(t, actions.ListStepsAction(ctx.Context))
	out := ctx.out.String()
	assert.Contains(t, out, "Step 1.1")
	assert.Contains(t, out, "Add greeting")
	assert.Less(t, bytes.Index(ctx.out.Bytes(), []byte("Add greeting")), bytes.Index(ctx.out.Bytes(), []byte("Cleanup")))
}
