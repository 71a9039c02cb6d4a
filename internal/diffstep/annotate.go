package diffstep

import (
	"strconv"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// Status tells how a file changed.
type Status string

// File statuses.
const (
	StatusAdded   Status = "Added"
	StatusDeleted Status = "Deleted"
	StatusChanged Status = "Changed"
)

// LineKind classifies an annotated line.
type LineKind int

// Line kinds.
const (
	LineContext LineKind = iota
	LineAdd
	LineDelete
	LineChunkHeader
)

// DiffLine is one annotated line. Old and New are zero when the line has no
// number on that side.
type DiffLine struct {
	Kind    LineKind
	Old     int
	New     int
	Content string
	// NoNewline marks the last line of a file lacking a trailing newline
	NoNewline bool
}

// DiffFile is a file with its annotated lines.
type DiffFile struct {
	Source      string
	Destination string
	Status      Status
	Lines       []DiffLine
}

// Title is the markdown heading of the file.
func (f DiffFile) Title() string {
	if f.Status == StatusAdded {
		return "##### Added " + f.Destination
	}
	return "##### " + string(f.Status) + " " + f.Source
}

// Annotate numbers the lines of parsed diff files.
func Annotate(files []*gitdiff.File) []DiffFile {
	out := make([]DiffFile, 0, len(files))
	for _, f := range files {
		df := DiffFile{
			Source:      f.OldName,
			Destination: f.NewName,
			Status:      statusOf(f),
		}
		for _, frag := range f.TextFragments {
			df.Lines = append(df.Lines, annotateFragment(frag)...)
		}
		out = append(out, df)
	}
	return out
}

func statusOf(f *gitdiff.File) Status {
	switch {
	case f.IsNew || f.OldName == "":
		return StatusAdded
	case f.IsDelete || f.NewName == "":
		return StatusDeleted
	default:
		return StatusChanged
	}
}

func annotateFragment(frag *gitdiff.TextFragment) []DiffLine {
	lines := make([]DiffLine, 0, len(frag.Lines)+1)
	lines = append(lines, DiffLine{Kind: LineChunkHeader, Content: chunkHeader(frag)})

	oldNum := int(frag.OldPosition)
	newNum := int(frag.NewPosition)
	for _, l := range frag.Lines {
		dl := DiffLine{
			Content:   strings.TrimSuffix(l.Line, "\n"),
			NoNewline: !strings.HasSuffix(l.Line, "\n"),
		}
		switch l.Op {
		case gitdiff.OpAdd:
			dl.Kind = LineAdd
			dl.New = newNum
			newNum++
		case gitdiff.OpDelete:
			dl.Kind = LineDelete
			dl.Old = oldNum
			oldNum++
		default:
			dl.Kind = LineContext
			dl.Old = oldNum
			dl.New = newNum
			oldNum++
			newNum++
		}
		lines = append(lines, dl)
	}
	return lines
}

// chunkHeader rebuilds the hunk header the way git prints it.
func chunkHeader(frag *gitdiff.TextFragment) string {
	header := "@@ -" + formatRange(frag.OldPosition, frag.OldLines) +
		" +" + formatRange(frag.NewPosition, frag.NewLines) + " @@"
	if frag.Comment != "" {
		header += " " + frag.Comment
	}
	return header
}

// formatRange formats a hunk range (position, length) for unified diff format.
func formatRange(pos, length int64) string {
	if length == 1 {
		return strconv.FormatInt(pos, 10)
	}
	return strconv.FormatInt(pos, 10) + "," + strconv.FormatInt(length, 10)
}
