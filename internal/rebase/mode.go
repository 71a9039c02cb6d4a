package rebase

import (
	"fmt"

	"stepwise.dev/stepwise/internal/rebase/todo"
)

// ModeName is the token git passes to the sequence editor.
type ModeName string

// Mode tokens.
const (
	ModeEdit          ModeName = "edit"
	ModeSort          ModeName = "sort"
	ModeReword        ModeName = "reword"
	ModeRenderManuals ModeName = "render-manuals"
	ModeFormatManuals ModeName = "format-manuals"
)

// Manual formats accepted by the format-manuals mode.
const (
	FormatDev  = "dev"
	FormatProd = "prod"
)

// Mode is one todo transformation. The set of modes is closed: apply is
// unexported, so every mode lives in this package next to its transformation.
type Mode interface {
	Name() ModeName
	apply(e *Editor, t todo.Todo) (todo.Todo, error)
}

// EditMode stops at the first operation and schedules the sort phase.
type EditMode struct{}

// SortMode renumbers the steps that follow an edited step.
type SortMode struct{}

// RewordMode rewrites the message of the first operation.
type RewordMode struct {
	Message string
}

// RenderManualsMode regenerates every manual along the rebased history.
type RenderManualsMode struct{}

// FormatManualsMode regenerates every manual in the given format, replacing
// render lines that are already scheduled.
type FormatManualsMode struct {
	Format string
}

// PassthroughMode leaves the todo as is. Unknown tokens map to it so a
// mistyped invocation never corrupts a rebase.
type PassthroughMode struct {
	Token string
}

func (EditMode) Name() ModeName          { return ModeEdit }
func (SortMode) Name() ModeName          { return ModeSort }
func (RewordMode) Name() ModeName        { return ModeReword }
func (RenderManualsMode) Name() ModeName { return ModeRenderManuals }
func (FormatManualsMode) Name() ModeName { return ModeFormatManuals }
func (m PassthroughMode) Name() ModeName { return ModeName(m.Token) }

// ModeOptions carries the flags of a sequence editor invocation.
type ModeOptions struct {
	Message string
	Format  string
}

// ParseMode maps a token to its mode. "render" is accepted as a short form of
// render-manuals.
func ParseMode(token string, opts ModeOptions) (Mode, error) {
	switch ModeName(token) {
	case ModeEdit:
		return EditMode{}, nil
	case ModeSort:
		return SortMode{}, nil
	case ModeReword:
		return RewordMode{Message: opts.Message}, nil
	case ModeRenderManuals, "render":
		return RenderManualsMode{}, nil
	case ModeFormatManuals:
		switch opts.Format {
		case FormatDev, FormatProd:
			return FormatManualsMode{Format: opts.Format}, nil
		default:
			return nil, fmt.Errorf("format-manuals requires --mode %s or %s, got %q", FormatDev, FormatProd, opts.Format)
		}
	}
	return PassthroughMode{Token: token}, nil
}
