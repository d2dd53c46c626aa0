package tui

import (
	"fmt"
	"strings"

	"github.com/serieslab/inspector/pkg/timeutil"
)

// renderOutline renders the overview pane: one decimated sparkline
// row per item over the full extent, with the shown-interval selector
// drawn above them.
func renderOutline(m *Model, width, height int) string {
	title := panelTitleStyle.Render("Outline")

	ext, ok := m.ws.Outline().FullExtent()
	if !ok {
		return title + "\n\n" +
			emptyStateStyle.Render("No items loaded. Press R for demo data.")
	}

	isTime := m.sess.IsTimeIndexed()
	title += plotDimStyle.Render(fmt.Sprintf("  %s .. %s",
		timeutil.FormatDomainShort(isTime, ext.Start),
		timeutil.FormatDomainShort(isTime, ext.End)))

	var lines []string
	lines = append(lines, title)
	lines = append(lines, renderSelectorBar(m, ext.Start, ext.End, width))

	rows := height - 3
	for _, it := range m.ws.Outline().Items() {
		if len(lines)-2 >= rows {
			break
		}
		if !it.Visible {
			continue
		}
		line := m.ws.Outline().Line(it)
		yMin, yMax, ok := line.MinMax()
		if !ok {
			continue
		}
		row := sparkline(line, ext.Start, ext.End, yMin, yMax, width)
		lines = append(lines, m.itemStyle(it.Slot).Render(row))
	}

	return strings.Join(lines, "\n")
}

// renderSelectorBar draws the shown-interval selector over the full
// extent: a bracketed run of ━ between the selector bounds.
func renderSelectorBar(m *Model, x0, x1 float64, width int) string {
	shown := m.ws.Shown()
	if shown.IsZero() {
		return plotAxisStyle.Render(strings.Repeat("─", maxInt(width, 0)))
	}

	p := newProjection(x0, x1, width)
	lo := p.colOf(shown.Start)
	hi := p.colOf(shown.End)
	if hi < lo {
		lo, hi = hi, lo
	}

	var b strings.Builder
	for c := 0; c < width; c++ {
		switch {
		case c == lo:
			b.WriteRune('[')
		case c == hi:
			b.WriteRune(']')
		case c > lo && c < hi:
			b.WriteRune('━')
		default:
			b.WriteRune('─')
		}
	}
	return plotSelectorStyle.Render(b.String())
}

// renderOutlinePanel wraps the outline in a styled panel.
func renderOutlinePanel(m *Model, width, height int) string {
	content := renderOutline(m, width-2, height-1)
	return panelStyle.Width(width).Height(height).Render(content)
}
