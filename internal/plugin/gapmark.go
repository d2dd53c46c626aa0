package plugin

import (
	"github.com/serieslab/inspector/internal/series"
	"github.com/serieslab/inspector/internal/session"
)

// MarkGaps scans the targeted items for index gaps wider than limit
// (a domain delta: nanoseconds for time-indexed sessions) and marks
// each one with label. Returns the number of markings created.
func MarkGaps(m *session.Model, limit float64, label string, onlyVisible bool) int {
	count := 0
	for _, it := range m.Items(onlyVisible) {
		for _, g := range series.Gaps(it.Series, limit) {
			m.AddMarking(it, g.Start, g.End, label, "gap")
			count++
		}
	}
	return count
}
