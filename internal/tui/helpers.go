package tui

import (
	"strings"

	"github.com/serieslab/inspector/internal/series"
)

// ────────────────────────────────────────────────────────────
// Column ↔ domain projection
// ────────────────────────────────────────────────────────────

// projection maps terminal columns to domain positions over one pane.
// All protocol arithmetic stays in domain space; the projection is
// applied only at the render/input boundary.
type projection struct {
	x0   float64
	x1   float64
	cols int
}

func newProjection(x0, x1 float64, cols int) projection {
	if cols < 1 {
		cols = 1
	}
	return projection{x0: x0, x1: x1, cols: cols}
}

// domainOf returns the domain position at the center of a column.
func (p projection) domainOf(col int) float64 {
	if p.cols <= 1 || p.x1 == p.x0 {
		return p.x0
	}
	col = clamp(col, 0, p.cols-1)
	return p.x0 + (float64(col)+0.5)/float64(p.cols)*(p.x1-p.x0)
}

// colOf returns the column covering a domain position, clamped to the
// pane.
func (p projection) colOf(x float64) int {
	if p.x1 == p.x0 {
		return 0
	}
	col := int((x - p.x0) / (p.x1 - p.x0) * float64(p.cols))
	return clamp(col, 0, p.cols-1)
}

// ────────────────────────────────────────────────────────────
// Sparkline rendering
// ────────────────────────────────────────────────────────────

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// sparkline renders one series row: each column shows the average of
// the values falling inside it, mapped onto eight block levels within
// [yMin, yMax]. Columns without data render as spaces.
func sparkline(s *series.Series, x0, x1, yMin, yMax float64, cols int) string {
	if cols < 1 {
		return ""
	}
	sums := make([]float64, cols)
	counts := make([]int, cols)

	p := newProjection(x0, x1, cols)
	for i := 0; i < s.Len(); i++ {
		x := s.Index(i)
		if x < x0 || x > x1 {
			continue
		}
		c := p.colOf(x)
		sums[c] += s.Value(i)
		counts[c]++
	}

	span := yMax - yMin
	var b strings.Builder
	for c := 0; c < cols; c++ {
		if counts[c] == 0 {
			b.WriteByte(' ')
			continue
		}
		v := sums[c] / float64(counts[c])
		level := 0
		if span > 0 {
			level = int((v - yMin) / span * float64(len(sparkLevels)))
		}
		b.WriteRune(sparkLevels[clamp(level, 0, len(sparkLevels)-1)])
	}
	return b.String()
}

// ────────────────────────────────────────────────────────────
// String helpers
// ────────────────────────────────────────────────────────────

// truncate cuts a string to maxLen and appends "..." if truncated.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// clamp restricts val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
