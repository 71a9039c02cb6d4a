package step

import "strconv"

// Limit is the highest super-step through which a renumbering cascades.
// The zero value is bounded at super-step 0; use Unbounded for "to the end of
// history".
type Limit struct {
	super     int
	unbounded bool
}

// Unbounded cascades through the remainder of history.
var Unbounded = Limit{unbounded: true}

// Bounded returns a limit that stops after the given super-step.
func Bounded(super int) Limit {
	return Limit{super: super}
}

// IsUnbounded reports whether the limit never stops.
func (l Limit) IsUnbounded() bool {
	return l.unbounded
}

// Super returns the bounding super-step. It is meaningless for Unbounded.
func (l Limit) Super() int {
	return l.super
}

// Exceeded reports whether the given super-step lies beyond the limit.
func (l Limit) Exceeded(super int) bool {
	return !l.unbounded && super > l.super
}

func (l Limit) String() string {
	if l.unbounded {
		return "Infinity"
	}
	return strconv.Itoa(l.super)
}

// CascadeLimit decides how far renumbering must reach after the step at
// oldStep was moved to newStep. Either argument may be the Root sentinel.
// Moves it cannot classify cascade to the end of history.
func CascadeLimit(oldStep, newStep string) Limit {
	oldD, ok := ParseNumber(oldStep)
	if !ok {
		return Unbounded
	}
	newD, ok := ParseNumber(newStep)
	if !ok {
		return Unbounded
	}

	oldHasSub := !oldD.IsSuper()
	newHasSub := !newD.IsSuper()

	if oldD.Super == newD.Super {
		// 1.1 -> 1.2, 1.2 -> 1.1, 1.1 -> 1
		if oldHasSub {
			return Bounded(oldD.Super)
		}
		// 1 -> 1.1
		return Unbounded
	}

	// 1 -> 2.1
	if !oldHasSub && newHasSub && newD.Super == oldD.Super+1 {
		return Bounded(newD.Super)
	}

	// 2.1 -> 1
	if oldHasSub && !newHasSub && oldD.Super == newD.Super+1 {
		return Bounded(oldD.Super)
	}

	// 1 -> 2, 1 -> 3.1, 1.1 -> 2.1, 1.1 -> 2
	return Unbounded
}
