package tui

import (
	"fmt"
	"strings"

	"github.com/serieslab/inspector/internal/session"
	"github.com/serieslab/inspector/pkg/timeutil"
)

// renderDetail renders the zoom pane: the shown interval at full
// resolution, one sparkline row per visible item with its marking
// strip underneath. All rows share the workspace's y-range so items
// stay comparable.
func renderDetail(m *Model, width, height int) string {
	title := panelTitleStyle.Render("Detail")

	shown := m.ws.Shown()
	if shown.IsZero() {
		return title + "\n\n" +
			emptyStateStyle.Render("No interval selected.")
	}

	isTime := m.sess.IsTimeIndexed()
	yMin, yMax := m.ws.Detail().YRange()
	title += plotDimStyle.Render(fmt.Sprintf("  %s .. %s (%s)  y %.4g .. %.4g",
		timeutil.FormatDomain(isTime, shown.Start),
		timeutil.FormatDomain(isTime, shown.End),
		timeutil.FormatSpan(isTime, shown.Start, shown.End),
		yMin, yMax))

	var lines []string
	lines = append(lines, title)

	rows := height - 2
	for _, it := range m.sess.Items(true) {
		if len(lines)-1 >= rows {
			break
		}
		slice := m.ws.Detail().Slice(it)
		row := sparkline(slice, shown.Start, shown.End, yMin, yMax, width)
		lines = append(lines, m.itemStyle(it.Slot).Render(row))
		if strip := m.renderMarkingStrip(it, shown.Start, shown.End, width); strip != "" {
			if len(lines)-1 >= rows {
				break
			}
			lines = append(lines, strip)
		}
	}

	return strings.Join(lines, "\n")
}

// renderMarkingStrip draws one item's markings as colored runs under
// its data row. Returns "" when the item has no marking inside the
// interval.
func (m *Model) renderMarkingStrip(it *session.DataItem, x0, x1 float64, width int) string {
	spans := m.ws.Detail().Spans(it)
	if len(spans) == 0 {
		return ""
	}

	p := newProjection(x0, x1, width)
	labels := make([]string, width)
	covered := false
	for _, sp := range spans {
		mk := sp.Marking
		if mk.End < x0 || mk.Start > x1 {
			continue
		}
		lo := p.colOf(mk.Start)
		hi := p.colOf(mk.End)
		for c := lo; c <= hi && c < width; c++ {
			labels[c] = mk.Label
			covered = true
		}
	}
	if !covered {
		return ""
	}

	var b strings.Builder
	for c := 0; c < width; c++ {
		if labels[c] == "" {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(m.labelStyle(labels[c]).Render("▔"))
	}
	return b.String()
}

// renderDetailPanel wraps the detail in a styled panel.
func renderDetailPanel(m *Model, width, height int) string {
	content := renderDetail(m, width-2, height-1)
	return panelStyle.Width(width).Height(height).Render(content)
}
