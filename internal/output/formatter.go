package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ColorSuper styles text with the palette color of a super-step
func ColorSuper(text string, super int) string {
	if len(stepColors) == 0 || super < 1 {
		return text
	}

	color := stepColors[(super-1)%len(stepColors)]
	hexColor := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", color[0], color[1], color[2]))

	return lipgloss.NewStyle().Foreground(hexColor).Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(text)
}
