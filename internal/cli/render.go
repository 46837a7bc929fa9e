package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/modularizer/automobile-complete/pkg/suggest"
)

// Renderer formats session state for the terminal as
// "before prefix│completion", dimming the text behind the current word and
// showing completion spaces as full blocks so they stay visible.
type Renderer struct {
	colors     bool
	before     lipgloss.Style
	suggestion lipgloss.Style
	focused    lipgloss.Style
}

// NewRenderer creates a renderer; colors=false yields plain text.
func NewRenderer(colors bool) *Renderer {
	return &Renderer{
		colors:     colors,
		before:     lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		focused:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
	}
}

// StateLine renders the current text with the pending suggestion.
func (r *Renderer) StateLine(text, prefix, completion string) string {
	before := text
	if prefix != "" {
		runes := []rune(text)
		n := len([]rune(prefix))
		if n > len(runes) {
			n = len(runes)
		}
		before = string(runes[:len(runes)-n])
	}
	word := strings.TrimPrefix(text, before)
	comp := strings.ReplaceAll(completion, " ", "█")
	if !r.colors {
		return before + word + "│" + comp
	}
	return r.before.Render(before) + word + "│" + r.suggestion.Render(comp)
}

// OptionLine renders one ranked completion option for the dropdown listing.
func (r *Renderer) OptionLine(opt suggest.CompletionOption, focused bool) string {
	full := opt.TypedPrefix + opt.RemainingPrefix + opt.Completion
	if opt.FullReplacement {
		full = opt.TypedPrefix + " -> " + opt.Completion
	}
	if r.colors && focused {
		return r.focused.Render(full)
	}
	return full
}
