package step

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Root is the sentinel number used for the commit that precedes every step.
const Root = "root"

var (
	subjectPattern = regexp.MustCompile(`^Step (\d+)(?:\.(\d+))?:\s?(.*)$`)
	numberPattern  = regexp.MustCompile(`^(\d+)(?:\.(\d+))?$`)
)

// Descriptor identifies a step. Sub is zero for super-steps.
type Descriptor struct {
	Super   int
	Sub     int
	Message string
}

// IsSuper reports whether the descriptor names a super-step.
func (d Descriptor) IsSuper() bool {
	return d.Sub == 0
}

// Number returns the step number as written in commit subjects, e.g. "3" or "3.2".
func (d Descriptor) Number() string {
	if d.IsSuper() {
		return strconv.Itoa(d.Super)
	}
	return fmt.Sprintf("%d.%d", d.Super, d.Sub)
}

// Subject renders the descriptor back into a commit subject.
func (d Descriptor) Subject() string {
	return Format(d.Number(), d.Message)
}

// Format builds a step commit subject.
func Format(number, text string) string {
	return fmt.Sprintf("Step %s: %s", number, text)
}

// Parse extracts the step descriptor from a commit subject. It returns nil
// when the subject is not a step subject, e.g. for the root commit.
func Parse(subject string) *Descriptor {
	subject = firstLine(subject)
	match := subjectPattern.FindStringSubmatch(subject)
	if match == nil {
		return nil
	}
	super, sub, ok := numbers(match[1], match[2])
	if !ok {
		return nil
	}
	return &Descriptor{Super: super, Sub: sub, Message: match[3]}
}

// ParseSuper is like Parse but only matches super-step subjects.
func ParseSuper(subject string) *Descriptor {
	d := Parse(subject)
	if d == nil || !d.IsSuper() {
		return nil
	}
	return d
}

// ParseNumber parses a bare step number such as "4" or "4.1". The Root
// sentinel parses as super-step 0.
func ParseNumber(number string) (Descriptor, bool) {
	number = strings.TrimSpace(number)
	if number == Root {
		return Descriptor{}, true
	}
	match := numberPattern.FindStringSubmatch(number)
	if match == nil {
		return Descriptor{}, false
	}
	super, sub, ok := numbers(match[1], match[2])
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{Super: super, Sub: sub}, true
}

// IsNumber reports whether s is a valid step number (the Root sentinel excluded).
func IsNumber(s string) bool {
	if s == Root {
		return false
	}
	_, ok := ParseNumber(s)
	return ok
}

// NumberOf returns the descriptor's number, or Root for a nil descriptor.
func NumberOf(d *Descriptor) string {
	if d == nil {
		return Root
	}
	return d.Number()
}

func numbers(superStr, subStr string) (int, int, bool) {
	super, err := strconv.Atoi(superStr)
	if err != nil || super < 1 {
		return 0, 0, false
	}
	if subStr == "" {
		return super, 0, true
	}
	sub, err := strconv.Atoi(subStr)
	if err != nil || sub < 1 {
		return 0, 0, false
	}
	return super, sub, true
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
