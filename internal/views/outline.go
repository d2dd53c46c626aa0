package views

import (
	"github.com/serieslab/inspector/internal/series"
	"github.com/serieslab/inspector/internal/session"
)

// Outline is the overview role: every item's full extent, decimated
// for cheap rendering, plus the selector that picks the shown
// interval. Selector changes drive the detail view through the
// workspace; the outline itself never talks to the detail directly.
type Outline struct {
	lines    map[*session.DataItem]*series.Series
	order    []*session.DataItem
	spans    *spanRegistry
	selector Interval

	threshold int
	target    int
}

func newOutline(threshold, target int) *Outline {
	return &Outline{
		lines:     make(map[*session.DataItem]*series.Series),
		spans:     newSpanRegistry(),
		threshold: threshold,
		target:    target,
	}
}

func (o *Outline) addLine(it *session.DataItem) {
	o.lines[it] = series.Decimate(it.Series, o.threshold, o.target)
	o.order = append(o.order, it)
}

// removeLine drops an item's line. The item's spans must already be
// gone; panics otherwise to surface the ordering bug.
func (o *Outline) removeLine(it *session.DataItem) {
	if len(o.spans.spansOf(it)) > 0 {
		panic("views: removing outline line with live spans")
	}
	delete(o.lines, it)
	for i, cur := range o.order {
		if cur == it {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

// Line returns the decimated series rendered for an item.
func (o *Outline) Line(it *session.DataItem) *series.Series { return o.lines[it] }

// Items returns the items in insertion order.
func (o *Outline) Items() []*session.DataItem {
	return append([]*session.DataItem(nil), o.order...)
}

// FullExtent returns the union of the visible items' index spans, so
// maximizing and clamping track what is actually on screen. When
// nothing is visible it falls back to the union over all items. ok is
// false when the outline is empty.
func (o *Outline) FullExtent() (Interval, bool) {
	if ext, ok := o.extentOf(true); ok {
		return ext, true
	}
	return o.extentOf(false)
}

func (o *Outline) extentOf(onlyVisible bool) (Interval, bool) {
	var ext Interval
	found := false
	for _, it := range o.order {
		if onlyVisible && !it.Visible {
			continue
		}
		lo, hi := it.Series.Bounds()
		if !found {
			ext = Interval{Start: lo, End: hi}
			found = true
			continue
		}
		if lo < ext.Start {
			ext.Start = lo
		}
		if hi > ext.End {
			ext.End = hi
		}
	}
	return ext, found
}

// Selector returns the current shown-interval selector.
func (o *Outline) Selector() Interval { return o.selector }

// Spans returns the item's marking spans in this view.
func (o *Outline) Spans(it *session.DataItem) []*MarkingSpan {
	return o.spans.spansOf(it)
}

// SpanCount returns the number of live spans, across all items.
func (o *Outline) SpanCount() int { return o.spans.count() }
