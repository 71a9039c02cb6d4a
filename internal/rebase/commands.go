package rebase

import (
	"strings"

	"stepwise.dev/stepwise/internal/rebase/todo"
	"stepwise.dev/stepwise/internal/storage"
	"stepwise.dev/stepwise/internal/utils"
)

// Commands composes the shell commands placed on exec lines.
type Commands struct {
	// Binary is a shell fragment invoking stepwise, e.g. "stepwise" or
	// "go run ./cmd/stepwise". It is placed on exec lines unquoted.
	Binary string
	// Renderer is the manual renderer command, e.g. "stepwise manual".
	Renderer string
	// RootManual is the root manual path relative to the repository.
	RootManual string
	// ViewsDir holds the rendered step manuals.
	ViewsDir string
}

const amendCommand = "GIT_EDITOR=true git commit --amend --allow-empty --no-verify"

func (c Commands) bin(args ...string) string {
	return c.Binary + " " + utils.ShellJoin(args...)
}

// SequenceEditor is the GIT_SEQUENCE_EDITOR value running the given mode.
func (c Commands) SequenceEditor(mode ModeName, args ...string) string {
	return c.bin(append([]string{"editor", string(mode)}, args...)...)
}

// SortPhase reopens the remaining todo with the sort mode once an edited
// step has been amended.
func (c Commands) SortPhase() string {
	return "GIT_SEQUENCE_EDITOR=" + utils.ForceShellQuote(c.SequenceEditor(ModeSort)) + " git rebase --edit-todo"
}

// DisableHooks sets the hooks-disabled flag.
func (c Commands) DisableHooks() string {
	return c.bin("storage", "set", storage.KeyHooksDisabled, "1")
}

// Cleanup removes the transient hook step key.
func (c Commands) Cleanup() string {
	return c.bin("storage", "remove", storage.KeyHookStep)
}

// SuperPick applies a super-step commit.
func (c Commands) SuperPick(hash string) string {
	return c.bin("rebase", "super-pick", hash)
}

// RenumberTrigger recomputes the step number of the commit just applied.
func (c Commands) RenumberTrigger() string {
	return "GIT_EDITOR=true " + c.bin("rebase", "reword")
}

// Reword rewrites the message of the commit just applied. An empty message
// lets the helper derive one.
func (c Commands) Reword(message string) string {
	if message == "" {
		return c.bin("rebase", "reword")
	}
	return c.bin("rebase", "reword", "--message", message)
}

// RenderRoot regenerates the root manual and amends it into HEAD.
func (c Commands) RenderRoot(format string) string {
	return c.render([]string{"--root"}, format, c.RootManual)
}

// RenderStep regenerates the manual of a super-step and amends it into HEAD.
func (c Commands) RenderStep(number, format string) string {
	return c.render([]string{number}, format, ViewPath(c.ViewsDir, number))
}

func (c Commands) render(target []string, format, path string) string {
	args := append([]string{"render"}, target...)
	if format != "" {
		args = append(args, "--format", format)
	}
	return strings.Join([]string{
		c.Renderer + " " + utils.ShellJoin(args...),
		"git add -A -- " + utils.ShellQuote(path),
		amendCommand,
	}, " && ")
}

// IsRender reports whether op is an exec line produced by RenderRoot or
// RenderStep.
func (c Commands) IsRender(op todo.Operation) bool {
	return op.Method.Canonical() == todo.Exec && strings.HasPrefix(op.Message, c.Renderer+" render ")
}

// IsCleanup reports whether op is the exec line produced by Cleanup.
func (c Commands) IsCleanup(op todo.Operation) bool {
	return op.Method.Canonical() == todo.Exec && op.Message == c.Cleanup()
}

// ViewPath is the rendered manual of a step inside viewsDir.
func ViewPath(viewsDir, number string) string {
	return strings.TrimSuffix(viewsDir, "/") + "/step" + number + ".md"
}
