package session

import "github.com/serieslab/inspector/internal/series"

// Marking is a labeled half-open interval [Start, End) on the owning
// item's index domain. Start <= End is the caller's responsibility at
// construction; only the label is ever mutated afterwards (relabeling
// through the Model).
type Marking struct {
	Start float64
	End   float64
	Label string
	Note  string
}

// MarkingRecord is the wire/storage form of a marking, detached from
// any item. Storage backends and the load path exchange these.
type MarkingRecord struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Label string  `json:"label"`
	Note  string  `json:"note,omitempty"`
}

// Record returns the detached storage form of a marking.
func (m *Marking) Record() MarkingRecord {
	return MarkingRecord{Start: m.Start, End: m.End, Label: m.Label, Note: m.Note}
}

// DataItem is one loaded series together with its markings and
// metadata. The Model exclusively owns the item list; views hold
// identity references only and never mutate an item directly.
type DataItem struct {
	Name     string
	Metadata map[string]string
	Series   *series.Series

	// Visible toggles the item in both view roles. Mutated only via
	// Model.SetItemVisible and friends so views hear about it.
	Visible bool

	// Slot is the display slot used for default coloring. It is
	// assigned at insertion and not stable under removal: colors are
	// not recycled when items are removed and re-added (known
	// limitation).
	Slot int

	// Markings holds the active markings; Deleted holds tombstones
	// for markings removed this session, retained so deletions can be
	// propagated (and retried) against storage.
	Markings []*Marking
	Deleted  []*Marking
}

func (it *DataItem) addMarking(m *Marking) {
	it.Markings = append(it.Markings, m)
}

// removeMarking moves a marking from the active list to the
// tombstones. Panics if the marking is not active on this item: that
// indicates internal inconsistency, not bad input.
func (it *DataItem) removeMarking(m *Marking) {
	for i, cur := range it.Markings {
		if cur == m {
			it.Markings = append(it.Markings[:i], it.Markings[i+1:]...)
			it.Deleted = append(it.Deleted, m)
			return
		}
	}
	panic("session: marking not present on item")
}

// OuterBounds returns the min start and max end across the item's
// active markings. ok is false when the item has no markings.
func (it *DataItem) OuterBounds() (start, end float64, ok bool) {
	if len(it.Markings) == 0 {
		return 0, 0, false
	}
	start, end = it.Markings[0].Start, it.Markings[0].End
	for _, m := range it.Markings[1:] {
		if m.Start < start {
			start = m.Start
		}
		if m.End > end {
			end = m.End
		}
	}
	return start, end, true
}
