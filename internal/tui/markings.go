package tui

import (
	"fmt"
	"strings"

	"github.com/serieslab/inspector/pkg/timeutil"
)

// renderMarkings renders the marking pane for the selected item:
// label, span, and note of every active marking.
func renderMarkings(m *Model, width, height int) string {
	titleStyle := panelTitleDimStyle
	if m.focus == PaneMarkings {
		titleStyle = panelTitleStyle
	}
	title := titleStyle.Render("Markings")

	it := m.selectedItemRef()
	if it == nil {
		return title + "\n" +
			emptyStateStyle.Render("No item selected.")
	}
	title += markingSpanDimStyle.Render("  " + truncate(it.Name, maxInt(width-16, 8)))
	if len(it.Markings) == 0 {
		return title + "\n" +
			emptyStateStyle.Render("No markings on this item.")
	}

	var lines []string
	lines = append(lines, title)

	isTime := m.sess.IsTimeIndexed()
	contentHeight := height - 2
	selected := clamp(m.selectedMark, 0, len(it.Markings)-1)

	scrollStart := 0
	if selected >= contentHeight {
		scrollStart = selected - contentHeight + 1
	}
	end := minInt(scrollStart+contentHeight, len(it.Markings))

	for i := scrollStart; i < end; i++ {
		mk := it.Markings[i]

		span := fmt.Sprintf("%s .. %s",
			timeutil.FormatDomainShort(isTime, mk.Start),
			timeutil.FormatDomainShort(isTime, mk.End))
		note := ""
		if mk.Note != "" {
			note = "  " + truncate(mk.Note, maxInt(width-len(span)-14, 6))
		}

		if i == selected && m.focus == PaneMarkings {
			lines = append(lines, markingSelectedStyle.Width(width).Render(
				fmt.Sprintf("%-12s %s%s", mk.Label, span, note)))
			continue
		}
		lines = append(lines,
			m.labelStyle(mk.Label).Render(fmt.Sprintf("%-12s", mk.Label))+
				markingRowStyle.Render(" "+span)+
				markingSpanDimStyle.Render(note))
	}

	return strings.Join(lines, "\n")
}

// renderMarkingsPanel wraps the marking list in a styled panel.
func renderMarkingsPanel(m *Model, width, height int) string {
	content := renderMarkings(m, width-2, height-1)

	style := panelStyle
	if m.focus == PaneMarkings {
		style = panelActiveStyle
	}
	return style.Width(width).Height(height).Render(content)
}
