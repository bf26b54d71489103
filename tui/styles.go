package tui

import "github.com/charmbracelet/lipgloss"

var (
	Cyan          = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}
	Emerald       = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	Purple        = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}
	TextPrimary   = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
	TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
	TextMuted     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
	Overlay       = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}
)

type Styles struct {
	Title         lipgloss.Style
	Label         lipgloss.Style
	Selector      lipgloss.Style
	SelectorFocus lipgloss.Style
	Result        lipgloss.Style
	SectionHeader lipgloss.Style
	HistoryItem   lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true).
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Foreground(TextSecondary).
			Width(10),
		Selector: lipgloss.NewStyle().
			Foreground(TextPrimary),
		SelectorFocus: lipgloss.NewStyle().
			Foreground(Purple).
			Bold(true),
		Result: lipgloss.NewStyle().
			Foreground(Emerald).
			Bold(true),
		SectionHeader: lipgloss.NewStyle().
			Foreground(Cyan).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Overlay).
			MarginTop(1),
		HistoryItem: lipgloss.NewStyle().
			Foreground(TextPrimary).
			PaddingLeft(2),
		Status: lipgloss.NewStyle().
			Foreground(TextSecondary).
			MarginTop(1),
		Help: lipgloss.NewStyle().
			Foreground(TextMuted).
			Italic(true),
	}
}
