package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader produces the top bar:
//
//	INSPECTOR  |  5 items  |  label: discard
func renderHeader(m *Model) string {
	brand := headerBrandStyle.Render("INSPECTOR")
	sep := headerSepStyle.Render(" │ ")

	var parts []string
	parts = append(parts, brand)
	parts = append(parts, sep)
	parts = append(parts, headerMetaStyle.Render(fmt.Sprintf("%d items", m.sess.Len())))

	if label := m.sess.ActiveLabel(); label != "" {
		parts = append(parts, sep)
		parts = append(parts, headerMetaStyle.Render("label: "))
		parts = append(parts, m.labelStyle(label).Inherit(headerLabelStyle).Render(label))
	} else {
		parts = append(parts, sep)
		parts = append(parts, headerMetaStyle.Render("no label"))
	}

	return headerBarStyle.Width(m.width).Render(strings.Join(parts, ""))
}

// renderFooter produces the bottom status bar with keyboard hints.
func renderFooter(m *Model) string {
	var left string
	if m.statusMsg != "" {
		left = statusStyle.Render(m.statusMsg)
	}

	right := m.help.ShortHelpView(m.keys.ShortHelp())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(colorBgSurface).
		Width(m.width).
		Render(bar)
}
