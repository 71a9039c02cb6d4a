package rebase

import (
	"fmt"
	"os"

	"stepwise.dev/stepwise/internal/errors"
	"stepwise.dev/stepwise/internal/output"
	"stepwise.dev/stepwise/internal/rebase/todo"
	"stepwise.dev/stepwise/internal/step"
	"stepwise.dev/stepwise/internal/storage"
)

// Editor applies modes to rebase todos.
type Editor struct {
	Store    storage.Store
	Commands Commands
	Splog    *output.Splog
}

// NewEditor creates an editor.
func NewEditor(store storage.Store, commands Commands, splog *output.Splog) *Editor {
	if splog == nil {
		splog = output.NewDiscardSplog()
	}
	return &Editor{Store: store, Commands: commands, Splog: splog}
}

// EditFile rewrites the todo file at path. A file without operations is left
// untouched.
func (e *Editor) EditFile(path string, mode Mode) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read rebase todo: %w", err)
	}

	t, ok := todo.Decode(string(data))
	if !ok {
		e.Splog.Debug("editor %s: no operations in %s", mode.Name(), path)
		return nil
	}

	out, err := e.Apply(mode, t)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(todo.Encode(out)), 0600); err != nil {
		return fmt.Errorf("failed to write rebase todo: %w", err)
	}
	return nil
}

// Apply transforms t with mode and appends the trailing cleanup line. The
// input is not modified.
func (e *Editor) Apply(mode Mode, t todo.Todo) (todo.Todo, error) {
	if t.First() < 0 {
		return nil, fmt.Errorf("editor %s: %w", mode.Name(), errors.ErrNoOperations)
	}

	// A previous rebase may have been aborted with the flag still set
	if err := e.Store.Remove(storage.KeyHooksDisabled); err != nil {
		return nil, fmt.Errorf("failed to reset %s: %w", storage.KeyHooksDisabled, err)
	}

	out, err := mode.apply(e, t.Clone())
	if err != nil {
		return nil, err
	}
	out = e.withCleanup(out)

	e.Splog.Debug("editor %s: %d lines in, %d lines out", mode.Name(), len(t), len(out))
	return out, nil
}

func (e *Editor) withCleanup(t todo.Todo) todo.Todo {
	ops := t.Operations()
	if len(ops) > 0 && e.Commands.IsCleanup(t[ops[len(ops)-1]]) {
		return t
	}

	cleanup := todo.NewExec(e.Commands.Cleanup())
	if len(ops) == 0 {
		return append(t, cleanup)
	}

	// Keep trailing comments after the last operation
	last := ops[len(ops)-1]
	out := make(todo.Todo, 0, len(t)+1)
	out = append(out, t[:last+1]...)
	out = append(out, cleanup)
	return append(out, t[last+1:]...)
}

// insertAfterFirst returns t with ops inserted right after its first
// operation.
func insertAfterFirst(t todo.Todo, ops ...todo.Operation) todo.Todo {
	first := t.First()
	out := make(todo.Todo, 0, len(t)+len(ops))
	out = append(out, t[:first+1]...)
	out = append(out, ops...)
	return append(out, t[first+1:]...)
}

func (EditMode) apply(e *Editor, t todo.Todo) (todo.Todo, error) {
	first := t.First()
	t[first].Method = todo.Edit

	// Editing the most recent step, nothing to renumber
	if len(t.Operations()) <= 1 {
		return t, nil
	}

	number := step.NumberOf(step.Parse(t[first].Subject()))
	if err := e.Store.Set(storage.KeyOldStep, number); err != nil {
		return nil, err
	}
	if err := e.Store.Set(storage.KeyNewStep, number); err != nil {
		return nil, err
	}
	e.Splog.Debug("edit: stopping at step %s", number)

	return insertAfterFirst(t, todo.NewExec(e.Commands.SortPhase())), nil
}

func (SortMode) apply(e *Editor, t todo.Todo) (todo.Todo, error) {
	oldStep, newStep, err := takeMove(e.Store)
	if err != nil {
		return nil, err
	}

	if oldStep == newStep {
		// Nothing moved, later commits keep their numbers
		if err := e.Store.Set(storage.KeyHooksDisabled, "1"); err != nil {
			return nil, err
		}
		e.Splog.Debug("sort: step %s kept its number", oldStep)
		return e.appendOperation(t, todo.NewExec(e.Commands.DisableHooks())), nil
	}

	limit := step.CascadeLimit(oldStep, newStep)
	e.Splog.Debug("sort: %s -> %s, cascading through %s", oldStep, newStep, limit)

	out := make(todo.Todo, 0, len(t)*2)
	for i, op := range t {
		d := stepOf(op)
		if d == nil {
			out = append(out, op)
			continue
		}

		if limit.Exceeded(d.Super) {
			out = append(out, todo.NewExec(e.Commands.DisableHooks()))
			return append(out, t[i:]...), nil
		}

		// Only a plain pick can be swapped; squash, fixup and edit keep
		// their meaning and are renumbered after they apply
		if d.IsSuper() && op.Method.Canonical() == todo.Pick {
			out = append(out, todo.NewExec(e.Commands.SuperPick(op.Hash)))
		} else {
			out = append(out, op)
		}
		out = append(out, todo.NewExec(e.Commands.RenumberTrigger()))
	}
	return out, nil
}

func (m RewordMode) apply(e *Editor, t todo.Todo) (todo.Todo, error) {
	return insertAfterFirst(t, todo.NewExec(e.Commands.Reword(m.Message))), nil
}

func (RenderManualsMode) apply(e *Editor, t todo.Todo) (todo.Todo, error) {
	return renderManuals(e.Commands, t, "", false), nil
}

func (m FormatManualsMode) apply(e *Editor, t todo.Todo) (todo.Todo, error) {
	return renderManuals(e.Commands, t, m.Format, true), nil
}

func (PassthroughMode) apply(_ *Editor, t todo.Todo) (todo.Todo, error) {
	return t, nil
}

// renderManuals schedules a root manual render after the first operation and
// a step manual render after every later super-step. With replace set, a
// render line already following one of those operations is dropped in favor
// of the new one.
func renderManuals(c Commands, t todo.Todo, format string, replace bool) todo.Todo {
	first := t.First()
	out := make(todo.Todo, 0, len(t)*2)
	out = append(out, t[:first+1]...)
	out = append(out, todo.NewExec(c.RenderRoot(format)))

	skipRender := replace
	for _, op := range t[first+1:] {
		if skipRender && c.IsRender(op) {
			skipRender = false
			continue
		}
		if !op.IsVerbatim() {
			skipRender = false
		}

		out = append(out, op)
		if d := superStepOf(op); d != nil {
			out = append(out, todo.NewExec(c.RenderStep(d.Number(), format)))
			skipRender = replace
		}
	}
	return out
}

// appendOperation adds op after the last operation of t, ahead of a
// trailing cleanup exec left by an earlier phase.
func (e *Editor) appendOperation(t todo.Todo, op todo.Operation) todo.Todo {
	ops := t.Operations()
	if len(ops) == 0 {
		return append(t, op)
	}
	at := ops[len(ops)-1] + 1
	if e.Commands.IsCleanup(t[at-1]) {
		at--
	}
	out := make(todo.Todo, 0, len(t)+1)
	out = append(out, t[:at]...)
	out = append(out, op)
	return append(out, t[at:]...)
}

// takeMove reads and clears the step move recorded by the edit phase and the
// commit-msg hook.
func takeMove(s storage.Store) (string, string, error) {
	oldStep, _, err := s.Get(storage.KeyOldStep)
	if err != nil {
		return "", "", err
	}
	newStep, _, err := s.Get(storage.KeyNewStep)
	if err != nil {
		return "", "", err
	}
	if err := s.Remove(storage.KeyOldStep); err != nil {
		return "", "", err
	}
	if err := s.Remove(storage.KeyNewStep); err != nil {
		return "", "", err
	}
	return oldStep, newStep, nil
}

// stepOf returns the step of a commit operation that is still going to be
// applied.
func stepOf(op todo.Operation) *step.Descriptor {
	if op.IsVerbatim() || op.Method.Canonical() == todo.Drop {
		return nil
	}
	return step.Parse(op.Subject())
}

func superStepOf(op todo.Operation) *step.Descriptor {
	if d := stepOf(op); d != nil && d.IsSuper() {
		return d
	}
	return nil
}
