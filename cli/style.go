package cli

import "github.com/charmbracelet/lipgloss"

// colors used by help and error output; each adapts to light and dark
// terminals.
type colors struct {
	Red    lipgloss.TerminalColor
	Orange lipgloss.TerminalColor
	Blue   lipgloss.TerminalColor
	Cyan   lipgloss.TerminalColor
	Violet lipgloss.TerminalColor
	Muted  lipgloss.TerminalColor
}

var palette = colors{
	Red:    lipgloss.AdaptiveColor{Light: "#C34043", Dark: "#FF5D62"},
	Orange: lipgloss.AdaptiveColor{Light: "#CC6B4E", Dark: "#FFA066"},
	Blue:   lipgloss.AdaptiveColor{Light: "#4D699B", Dark: "#7E9CD8"},
	Cyan:   lipgloss.AdaptiveColor{Light: "#597B75", Dark: "#7AA89F"},
	Violet: lipgloss.AdaptiveColor{Light: "#624C83", Dark: "#957FB8"},
	Muted:  lipgloss.AdaptiveColor{Light: "#8A8980", Dark: "#727169"},
}

var (
	mutedStyle  = lipgloss.NewStyle().Foreground(palette.Muted)
	italicStyle = lipgloss.NewStyle().Italic(true)
)
