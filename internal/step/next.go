package step

// Next returns the descriptor number a commit must carry given the step
// commit right before it (nil for the root or a non-step commit) and whether
// the commit itself is a super-step.
//
// Sub-steps count up inside the open group; a super-step closes the group of
// sub-steps before it and takes its number, or opens and closes a new one
// when it follows another super-step.
func Next(prev *Descriptor, super bool) Descriptor {
	if super {
		switch {
		case prev == nil:
			return Descriptor{Super: 1}
		case prev.IsSuper():
			return Descriptor{Super: prev.Super + 1}
		default:
			return Descriptor{Super: prev.Super}
		}
	}

	switch {
	case prev == nil:
		return Descriptor{Super: 1, Sub: 1}
	case prev.IsSuper():
		return Descriptor{Super: prev.Super + 1, Sub: 1}
	default:
		return Descriptor{Super: prev.Super, Sub: prev.Sub + 1}
	}
}

// Renumber returns a copy of d carrying the number computed by Next, keeping
// its message.
func Renumber(d Descriptor, prev *Descriptor) Descriptor {
	next := Next(prev, d.IsSuper())
	next.Message = d.Message
	return next
}
