package views

import "github.com/serieslab/inspector/internal/session"

// MarkingSpan is the rendered stand-in for one marking in one view
// role. Views keep a bidirectional registry so a marking can be
// resolved from its span (hit testing) and a span from its marking
// (removal, relabeling).
type MarkingSpan struct {
	Item    *session.DataItem
	Marking *session.Marking
}

type spanRegistry struct {
	byMarking map[*session.Marking]*MarkingSpan
	byItem    map[*session.DataItem][]*MarkingSpan
}

func newSpanRegistry() *spanRegistry {
	return &spanRegistry{
		byMarking: make(map[*session.Marking]*MarkingSpan),
		byItem:    make(map[*session.DataItem][]*MarkingSpan),
	}
}

func (r *spanRegistry) add(it *session.DataItem, mk *session.Marking) *MarkingSpan {
	sp := &MarkingSpan{Item: it, Marking: mk}
	r.byMarking[mk] = sp
	r.byItem[it] = append(r.byItem[it], sp)
	return sp
}

func (r *spanRegistry) remove(mk *session.Marking) {
	sp, ok := r.byMarking[mk]
	if !ok {
		return
	}
	delete(r.byMarking, mk)
	spans := r.byItem[sp.Item]
	for i, cur := range spans {
		if cur == sp {
			r.byItem[sp.Item] = append(spans[:i], spans[i+1:]...)
			break
		}
	}
	if len(r.byItem[sp.Item]) == 0 {
		delete(r.byItem, sp.Item)
	}
}

// removeItem drops every span of an item. Called before the item's
// line is removed so no orphan spans outlive their line.
func (r *spanRegistry) removeItem(it *session.DataItem) {
	for _, sp := range r.byItem[it] {
		delete(r.byMarking, sp.Marking)
	}
	delete(r.byItem, it)
}

func (r *spanRegistry) spanFor(mk *session.Marking) (*MarkingSpan, bool) {
	sp, ok := r.byMarking[mk]
	return sp, ok
}

func (r *spanRegistry) spansOf(it *session.DataItem) []*MarkingSpan {
	return r.byItem[it]
}

func (r *spanRegistry) count() int { return len(r.byMarking) }
