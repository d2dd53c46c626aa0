package views

import (
	"github.com/serieslab/inspector/internal/series"
	"github.com/serieslab/inspector/internal/session"
)

// yMarginFraction pads the detail y-range so extreme points don't sit
// on the frame edge.
const yMarginFraction = 0.02

// Detail is the zoom role: the shown interval at full resolution. It
// keeps no decimated copies; rendering slices the real series, so
// marking coordinates always refer to true data positions.
type Detail struct {
	items map[*session.DataItem]struct{}
	spans *spanRegistry

	shown Interval
	yMin  float64
	yMax  float64

	minimumYRange float64
}

func newDetail(minimumYRange float64) *Detail {
	return &Detail{
		items:         make(map[*session.DataItem]struct{}),
		spans:         newSpanRegistry(),
		minimumYRange: minimumYRange,
	}
}

func (d *Detail) addLine(it *session.DataItem) {
	d.items[it] = struct{}{}
}

func (d *Detail) removeLine(it *session.DataItem) {
	if len(d.spans.spansOf(it)) > 0 {
		panic("views: removing detail line with live spans")
	}
	delete(d.items, it)
}

// Shown returns the current detail interval.
func (d *Detail) Shown() Interval { return d.shown }

// YRange returns the computed vertical range.
func (d *Detail) YRange() (min, max float64) { return d.yMin, d.yMax }

// Slice returns the visible portion of an item's series over the
// shown interval, at full resolution.
func (d *Detail) Slice(it *session.DataItem) *series.Series {
	return it.Series.SliceRange(d.shown.Start, d.shown.End)
}

// Spans returns the item's marking spans in this view.
func (d *Detail) Spans(it *session.DataItem) []*MarkingSpan {
	return d.spans.spansOf(it)
}

// SpanCount returns the number of live spans, across all items.
func (d *Detail) SpanCount() int { return d.spans.count() }

// setShown narrows the detail to iv and recomputes the y-range over
// the visible items.
func (d *Detail) setShown(iv Interval) {
	d.shown = iv
	d.recomputeY()
}

// recomputeY scans visible items for min/max over the shown interval,
// pads by yMarginFraction and floors the result at minimumYRange so a
// flat stretch of data doesn't collapse the vertical scale.
func (d *Detail) recomputeY() {
	var lo, hi float64
	found := false
	for it := range d.items {
		if !it.Visible {
			continue
		}
		min, max, ok := it.Series.RangeMinMax(d.shown.Start, d.shown.End)
		if !ok {
			continue
		}
		if !found {
			lo, hi = min, max
			found = true
			continue
		}
		if min < lo {
			lo = min
		}
		if max > hi {
			hi = max
		}
	}
	if !found {
		d.yMin, d.yMax = 0, d.minimumYRange
		return
	}

	margin := (hi - lo) * yMarginFraction
	lo -= margin
	hi += margin
	if span := hi - lo; span < d.minimumYRange {
		center := (lo + hi) / 2
		lo = center - d.minimumYRange/2
		hi = center + d.minimumYRange/2
	}
	d.yMin, d.yMax = lo, hi
}
