package tui

import (
	"fmt"
	"strings"
)

// renderItemList renders the item pane: one row per item with its
// palette color, visibility flag, point count, and marking count.
func renderItemList(m *Model, width, height int) string {
	titleStyle := panelTitleDimStyle
	if m.focus == PaneItems {
		titleStyle = panelTitleStyle
	}
	title := titleStyle.Render("Items")

	items := m.sess.Items(false)
	if len(items) == 0 {
		return title + "\n" +
			emptyStateStyle.Render("No items.")
	}

	var lines []string
	lines = append(lines, title)

	contentHeight := height - 2
	selected := clamp(m.selectedItem, 0, len(items)-1)

	scrollStart := 0
	if selected >= contentHeight {
		scrollStart = selected - contentHeight + 1
	}
	end := minInt(scrollStart+contentHeight, len(items))

	for i := scrollStart; i < end; i++ {
		it := items[i]

		vis := "●"
		if !it.Visible {
			vis = "○"
		}
		name := truncate(it.Name, maxInt(width-24, 10))
		meta := itemMetaStyle.Render(
			fmt.Sprintf("%d pts, %d marks", it.Series.Len(), len(it.Markings)))

		var line string
		switch {
		case i == selected && m.focus == PaneItems:
			line = itemSelectedStyle.Width(width).Render(
				fmt.Sprintf("%s %s  %d pts, %d marks", vis, name, it.Series.Len(), len(it.Markings)))
		case !it.Visible:
			line = itemHiddenStyle.Render(fmt.Sprintf("%s %s", vis, name)) + "  " + meta
		default:
			line = m.itemStyle(it.Slot).Render(fmt.Sprintf("%s %s", vis, name)) + "  " + meta
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// renderItemPanel wraps the item list in a styled panel.
func renderItemPanel(m *Model, width, height int) string {
	content := renderItemList(m, width-2, height-1)

	style := panelStyle
	if m.focus == PaneItems {
		style = panelActiveStyle
	}
	return style.Width(width).Height(height).Render(content)
}
