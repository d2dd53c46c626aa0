package session

// Hook registration. Views and plugins subscribe here instead of the
// Model knowing about them; every mutation the Model performs fires
// the matching callbacks synchronously, in registration order, after
// the state change is complete.

// ItemSnapshot is the per-item payload of a save request: the item's
// identity plus copies of the marking lists at the moment of the
// request, so persistence can run without racing later edits.
type ItemSnapshot struct {
	Item     *DataItem
	Metadata map[string]string
	Markings []MarkingRecord
}

type hooks struct {
	itemAdded        []func(*DataItem)
	itemRemoved      []func(*DataItem)
	visibilitySet    []func(*DataItem)
	markingAdded     []func(*DataItem, *Marking)
	markingRemoved   []func(*DataItem, *Marking)
	markingRelabeled []func(*DataItem, *Marking)
	intervalTagged   []func(metadata map[string]string, start, end float64, tag string)
	saveRequested    []func(changed, deleted []ItemSnapshot)
	loadRequested    []func(metadata map[string]string, start, end float64, force bool)
}

// OnItemAdded registers fn to run after an item enters the session.
func (m *Model) OnItemAdded(fn func(*DataItem)) {
	m.hooks.itemAdded = append(m.hooks.itemAdded, fn)
}

// OnItemRemoved registers fn to run after an item leaves the session.
func (m *Model) OnItemRemoved(fn func(*DataItem)) {
	m.hooks.itemRemoved = append(m.hooks.itemRemoved, fn)
}

// OnVisibilitySet registers fn to run after an item's visibility flips.
func (m *Model) OnVisibilitySet(fn func(*DataItem)) {
	m.hooks.visibilitySet = append(m.hooks.visibilitySet, fn)
}

// OnMarkingAdded registers fn to run after a marking is attached.
func (m *Model) OnMarkingAdded(fn func(*DataItem, *Marking)) {
	m.hooks.markingAdded = append(m.hooks.markingAdded, fn)
}

// OnMarkingRemoved registers fn to run after a marking is tombstoned.
func (m *Model) OnMarkingRemoved(fn func(*DataItem, *Marking)) {
	m.hooks.markingRemoved = append(m.hooks.markingRemoved, fn)
}

// OnMarkingRelabeled registers fn to run after a marking's label
// changes.
func (m *Model) OnMarkingRelabeled(fn func(*DataItem, *Marking)) {
	m.hooks.markingRelabeled = append(m.hooks.markingRelabeled, fn)
}

// OnIntervalTagged registers fn to run when an item interval is
// exported under a tag.
func (m *Model) OnIntervalTagged(fn func(metadata map[string]string, start, end float64, tag string)) {
	m.hooks.intervalTagged = append(m.hooks.intervalTagged, fn)
}

// OnSaveRequested registers fn to receive save snapshots.
func (m *Model) OnSaveRequested(fn func(changed, deleted []ItemSnapshot)) {
	m.hooks.saveRequested = append(m.hooks.saveRequested, fn)
}

// OnLoadRequested registers fn to receive per-item load requests.
func (m *Model) OnLoadRequested(fn func(metadata map[string]string, start, end float64, force bool)) {
	m.hooks.loadRequested = append(m.hooks.loadRequested, fn)
}

func (m *Model) emitItemAdded(it *DataItem) {
	for _, fn := range m.hooks.itemAdded {
		fn(it)
	}
}

func (m *Model) emitItemRemoved(it *DataItem) {
	for _, fn := range m.hooks.itemRemoved {
		fn(it)
	}
}

func (m *Model) emitVisibilitySet(it *DataItem) {
	for _, fn := range m.hooks.visibilitySet {
		fn(it)
	}
}

func (m *Model) emitMarkingAdded(it *DataItem, mk *Marking) {
	for _, fn := range m.hooks.markingAdded {
		fn(it, mk)
	}
}

func (m *Model) emitMarkingRemoved(it *DataItem, mk *Marking) {
	for _, fn := range m.hooks.markingRemoved {
		fn(it, mk)
	}
}

func (m *Model) emitMarkingRelabeled(it *DataItem, mk *Marking) {
	for _, fn := range m.hooks.markingRelabeled {
		fn(it, mk)
	}
}

func (m *Model) emitIntervalTagged(metadata map[string]string, start, end float64, tag string) {
	for _, fn := range m.hooks.intervalTagged {
		fn(metadata, start, end, tag)
	}
}

func (m *Model) emitSaveRequested(changed, deleted []ItemSnapshot) {
	for _, fn := range m.hooks.saveRequested {
		fn(changed, deleted)
	}
}

func (m *Model) emitLoadRequested(metadata map[string]string, start, end float64, force bool) {
	for _, fn := range m.hooks.loadRequested {
		fn(metadata, start, end, force)
	}
}
