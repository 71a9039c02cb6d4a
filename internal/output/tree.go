package output

import (
	"strings"

	"stepwise.dev/stepwise/internal/step"
)

// StepTreeItem is one step commit shown in a step tree
type StepTreeItem struct {
	Step step.Descriptor
	Hash string
}

// StepTreeOptions configures rendering behavior
type StepTreeOptions struct {
	// Current marks the step HEAD points to
	Current string
	// NoStyle disables colors
	NoStyle bool
}

// RenderStepTree renders steps, oldest first, nesting sub-steps under the
// super-step that closes their group:
//
//	◯ Step 1: Basics 1a2b3c4
//	├─ Step 1.1: Add greeting 5d6e7f8
//	└─ Step 1.2: Add farewell 9a0b1c2
//
// Sub-steps whose super-step does not exist yet hang under an open marker.
func RenderStepTree(items []StepTreeItem, opts StepTreeOptions) []string {
	var (
		lines   []string
		pending []StepTreeItem
	)

	flush := func(super StepTreeItem, open bool) {
		circle := "◯"
		switch {
		case open:
			circle = "◌"
		case super.Step.Number() == opts.Current:
			circle = "◉"
		}

		header := circle + " " + opts.label(super, open)
		lines = append(lines, opts.color(header, super.Step.Super))

		for i, sub := range pending {
			branch := "├─"
			if i == len(pending)-1 {
				branch = "└─"
			}
			marker := ""
			if sub.Step.Number() == opts.Current {
				marker = " ◉"
			}
			lines = append(lines, opts.color(branch, super.Step.Super)+" "+opts.label(sub, false)+marker)
		}
		pending = nil
	}

	for _, item := range items {
		if !item.Step.IsSuper() {
			// A sub-step of another group closes the open one
			if len(pending) > 0 && pending[0].Step.Super != item.Step.Super {
				flush(StepTreeItem{Step: step.Descriptor{Super: pending[0].Step.Super}}, true)
			}
			pending = append(pending, item)
			continue
		}
		if len(pending) > 0 && pending[0].Step.Super != item.Step.Super {
			flush(StepTreeItem{Step: step.Descriptor{Super: pending[0].Step.Super}}, true)
		}
		flush(item, false)
	}
	if len(pending) > 0 {
		flush(StepTreeItem{Step: step.Descriptor{Super: pending[0].Step.Super}}, true)
	}

	return lines
}

func (o StepTreeOptions) label(item StepTreeItem, open bool) string {
	if open {
		return "Step " + item.Step.Number() + " " + o.dim("(open)")
	}
	label := item.Step.Subject()
	if item.Hash != "" {
		hash := item.Hash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		label += " " + o.dim(hash)
	}
	return strings.TrimSpace(label)
}

func (o StepTreeOptions) color(text string, super int) string {
	if o.NoStyle {
		return text
	}
	return ColorSuper(text, super)
}

func (o StepTreeOptions) dim(text string) string {
	if o.NoStyle {
		return text
	}
	return ColorDim(text)
}
