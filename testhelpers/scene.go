package testhelpers

import (
	"os"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git
// repository and makes it the working directory for the duration of the test.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir := t.TempDir()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{Dir: tmpDir, Repo: repo}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldDir)
	})

	t.Setenv("GIT_CONFIG_GLOBAL", "/dev/null")
	t.Setenv("STEPWISE_NON_INTERACTIVE", "1")

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// BasicSceneSetup creates a root commit only.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CommitFile("README.md", "# Tutorial\n", "Initial commit")
}

// TutorialSceneSetup creates a root commit followed by a small tutorial:
//
//	Step 1.1: Add greeting      (adds hello.txt)
//	Step 1.2: Add farewell      (adds bye.txt)
//	Step 1: Basics              (changes hello.txt)
//	Step 2: Cleanup             (deletes bye.txt)
func TutorialSceneSetup(scene *Scene) error {
	if err := BasicSceneSetup(scene); err != nil {
		return err
	}
	return TutorialSteps(scene)
}

// TutorialSteps commits the steps of TutorialSceneSetup on top of HEAD.
func TutorialSteps(scene *Scene) error {
	repo := scene.Repo
	if err := repo.CommitFile("hello.txt", "hello\n", "Step 1.1: Add greeting"); err != nil {
		return err
	}
	if err := repo.CommitFile("bye.txt", "bye\n", "Step 1.2: Add farewell"); err != nil {
		return err
	}
	if err := repo.CommitFile("hello.txt", "hello\nworld\n", "Step 1: Basics"); err != nil {
		return err
	}
	if err := repo.RunGitCommand("rm", "-q", "bye.txt"); err != nil {
		return err
	}
	return repo.RunGitCommand("commit", "-m", "Step 2: Cleanup")
}
