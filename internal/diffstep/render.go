package diffstep

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/bmatcuk/doublestar/v4"
)

const (
	gutter = "┊"
	// noNewlineGlyph is appended to a line that ends without a newline
	noNewlineGlyph = "🚫⮐"
)

// Renderer turns unified diffs into annotated markdown.
type Renderer struct {
	exclude []string
}

// NewRenderer creates a renderer that skips files matching any of the
// doublestar exclude patterns.
func NewRenderer(exclude []string) *Renderer {
	return &Renderer{exclude: exclude}
}

// Render parses a unified diff and renders every file that has lines as a
// titled, fenced diff block. Blocks are separated by a blank line. An empty
// diff renders as an empty string.
func (r *Renderer) Render(diff string) (string, error) {
	files, _, err := gitdiff.Parse(strings.NewReader(diff))
	if err != nil {
		return "", fmt.Errorf("failed to parse diff: %w", err)
	}

	blocks := make([]string, 0, len(files))
	for _, f := range Annotate(files) {
		if r.excluded(f) {
			continue
		}
		body := RenderLines(f.Lines)
		if body == "" {
			continue
		}
		blocks = append(blocks, f.Title()+"\n```diff\n"+body+"\n```")
	}
	return strings.Join(blocks, "\n\n"), nil
}

func (r *Renderer) excluded(f DiffFile) bool {
	for _, pattern := range r.exclude {
		for _, path := range []string{f.Source, f.Destination} {
			if path == "" {
				continue
			}
			if ok, _ := doublestar.Match(pattern, path); ok {
				return true
			}
		}
	}
	return false
}

// RenderLines renders annotated lines with their gutters. It returns an empty
// string when there is no numbered line.
func RenderLines(lines []DiffLine) string {
	width := padWidth(lines)
	if width == 0 {
		return ""
	}

	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Kind == LineChunkHeader {
			out = append(out, l.Content)
			continue
		}

		line := sign(l.Kind) + gutter + pad(l.Old, width) + gutter + pad(l.New, width) + gutter + l.Content
		if l.NoNewline {
			line += noNewlineGlyph
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// padWidth is the digit count of the largest number on the last numbered line.
func padWidth(lines []DiffLine) int {
	for i := len(lines) - 1; i >= 0; i-- {
		l := lines[i]
		if l.Kind == LineChunkHeader {
			continue
		}
		return len(strconv.Itoa(max(l.Old, l.New)))
	}
	return 0
}

func sign(kind LineKind) string {
	switch kind {
	case LineAdd:
		return "+"
	case LineDelete:
		return "-"
	default:
		return " "
	}
}

// pad right-aligns n in width columns; zero renders as blanks.
func pad(n, width int) string {
	if n == 0 {
		return strings.Repeat(" ", width)
	}
	return fmt.Sprintf("%*d", width, n)
}
