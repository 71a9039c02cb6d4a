// Package todo reads and writes the instruction list of an interactive rebase.
//
// A todo is an ordered list of lines. Lines shaped like
// "<method> <token of 7+ chars> <rest>" become operations; every other line
// (comments, blanks, short exec lines, noop) is kept verbatim at its position
// so writing a decoded todo back never loses content.
package todo

import (
	"regexp"
	"strings"
)

// Method is the verb of a rebase operation.
type Method string

// Methods understood by git's sequencer.
const (
	Pick   Method = "pick"
	Edit   Method = "edit"
	Reword Method = "reword"
	Squash Method = "squash"
	Fixup  Method = "fixup"
	Drop   Method = "drop"
	Exec   Method = "exec"
	Break  Method = "break"
	Label  Method = "label"
	Reset  Method = "reset"
	Merge  Method = "merge"
)

var shortMethods = map[string]Method{
	"p": Pick,
	"e": Edit,
	"r": Reword,
	"s": Squash,
	"f": Fixup,
	"d": Drop,
	"x": Exec,
	"b": Break,
	"l": Label,
	"t": Reset,
	"m": Merge,
}

// Canonical expands abbreviated methods (rebase.abbreviateCommands) to their
// long form. Unknown methods are returned unchanged.
func (m Method) Canonical() Method {
	if long, ok := shortMethods[string(m)]; ok {
		return long
	}
	return m
}

// TakesCommit reports whether the method is followed by a commit hash.
func (m Method) TakesCommit() bool {
	switch m.Canonical() {
	case Pick, Edit, Reword, Squash, Fixup, Drop:
		return true
	}
	return false
}

var operationPattern = regexp.MustCompile(`^([a-z]+)\s(.{7}.*)$`)

// Operation is one line of a todo. Operations with an empty Method are
// verbatim lines and only carry Raw.
type Operation struct {
	Method  Method
	Hash    string
	Message string
	Raw     string
}

// NewExec returns an exec operation running the given shell command.
func NewExec(command string) Operation {
	return Operation{Method: Exec, Message: command}
}

// IsVerbatim reports whether the line was not recognized as an operation.
func (o Operation) IsVerbatim() bool {
	return o.Method == ""
}

// Subject returns the commit subject of a commit operation. Newer git
// versions prefix the subject with "# ", which is dropped here.
func (o Operation) Subject() string {
	if o.IsVerbatim() || !o.Method.TakesCommit() {
		return ""
	}
	return strings.TrimPrefix(o.Message, "# ")
}

// String renders the operation the way git reads it: method, hash and the
// rest joined by single spaces.
func (o Operation) String() string {
	if o.IsVerbatim() {
		return o.Raw
	}
	parts := make([]string, 0, 3)
	parts = append(parts, string(o.Method))
	if o.Hash != "" {
		parts = append(parts, o.Hash)
	}
	if o.Message != "" {
		parts = append(parts, o.Message)
	}
	return strings.Join(parts, " ")
}

// Todo is the ordered content of a rebase todo file.
type Todo []Operation

// Decode parses todo text. The second result is false when the text holds no
// operation line, which means there is nothing to transform.
func Decode(text string) (Todo, bool) {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, false
	}

	lines := strings.Split(text, "\n")
	todo := make(Todo, 0, len(lines))
	found := false
	for _, line := range lines {
		op, ok := decodeLine(line)
		if ok {
			found = true
		}
		todo = append(todo, op)
	}
	if !found {
		return nil, false
	}
	return todo, true
}

func decodeLine(line string) (Operation, bool) {
	match := operationPattern.FindStringSubmatch(line)
	if match == nil {
		return Operation{Raw: line}, false
	}

	op := Operation{Method: Method(match[1])}
	rest := match[2]
	if op.Method.TakesCommit() {
		hash, message, _ := strings.Cut(rest, " ")
		op.Hash = hash
		op.Message = message
		return op, true
	}
	op.Message = rest
	return op, true
}

// Encode writes the todo back to text terminated by a single newline.
func Encode(t Todo) string {
	lines := make([]string, len(t))
	for i, op := range t {
		lines[i] = op.String()
	}
	return strings.Join(lines, "\n") + "\n"
}

// Operations returns the indices of the non-verbatim lines in order.
func (t Todo) Operations() []int {
	var idx []int
	for i, op := range t {
		if !op.IsVerbatim() {
			idx = append(idx, i)
		}
	}
	return idx
}

// First returns the index of the first operation, or -1.
func (t Todo) First() int {
	for i, op := range t {
		if !op.IsVerbatim() {
			return i
		}
	}
	return -1
}

// Clone returns a copy that can be modified independently.
func (t Todo) Clone() Todo {
	out := make(Todo, len(t))
	copy(out, t)
	return out
}
