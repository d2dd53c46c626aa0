package tui

import "github.com/charmbracelet/lipgloss"

// ────────────────────────────────────────────────────────────
// Color Palette — GitHub Dark aesthetic
// ────────────────────────────────────────────────────────────
//
// Structural colors are defined here. Item and label colors come from
// the configuration palette and are resolved through itemStyle and
// labelStyle; no ad-hoc color literals anywhere else.

var (
	// Base
	colorBg        = lipgloss.Color("#0d1117")
	colorBgSurface = lipgloss.Color("#1c2128")

	// Text
	colorText      = lipgloss.Color("#e6edf3")
	colorTextDim   = lipgloss.Color("#8b949e")
	colorTextMuted = lipgloss.Color("#484f58")

	// Accents
	colorBlue   = lipgloss.Color("#58a6ff")
	colorYellow = lipgloss.Color("#d29922")

	// Structural
	colorDivider   = lipgloss.Color("#30363d")
	colorHighlight = lipgloss.Color("#1f6feb")
)

// ────────────────────────────────────────────────────────────
// Component Styles
// ────────────────────────────────────────────────────────────

// Header bar
var (
	headerBarStyle = lipgloss.NewStyle().
			Background(colorBgSurface).
			Foreground(colorText).
			Padding(0, 1)

	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBlue)

	headerSepStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	headerMetaStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	headerLabelStyle = lipgloss.NewStyle().
				Bold(true)
)

// Panel chrome
var (
	panelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.Border{
			Top:    "─",
			Bottom: "",
			Left:   "",
			Right:  "",
		}).
		BorderForeground(colorDivider)

	panelActiveStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.Border{
			Top:    "─",
			Bottom: "",
			Left:   "",
			Right:  "",
		}).
		BorderForeground(colorBlue)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	panelTitleDimStyle = lipgloss.NewStyle().
				Foreground(colorTextMuted).
				Bold(true)
)

// Plot panes
var (
	plotAxisStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	plotSelectorStyle = lipgloss.NewStyle().
				Foreground(colorYellow)

	plotDimStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)
)

// Item list
var (
	itemRowStyle = lipgloss.NewStyle().
			Foreground(colorText)

	itemSelectedStyle = lipgloss.NewStyle().
				Background(colorHighlight).
				Foreground(colorText).
				Bold(true)

	itemHiddenStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	itemMetaStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(2, 4)
)

// Markings pane
var (
	markingRowStyle = lipgloss.NewStyle().
			Foreground(colorText)

	markingSelectedStyle = lipgloss.NewStyle().
				Background(colorHighlight).
				Foreground(colorText).
				Bold(true)

	markingSpanDimStyle = lipgloss.NewStyle().
				Foreground(colorTextDim)
)

// Footer / status bar
var (
	statusStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBgSurface).
			Padding(0, 1)

	hintKeyStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	hintDescStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)
)

// itemStyle colors a line for its item's palette slot.
func (m Model) itemStyle(slot int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.cfg.PaletteColor(slot)))
}

// labelStyle colors text with a label's configured color.
func (m Model) labelStyle(label string) lipgloss.Style {
	if hex, ok := m.cfg.Labels[label]; ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return lipgloss.NewStyle().Foreground(colorTextDim)
}
