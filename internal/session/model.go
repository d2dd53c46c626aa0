// Package session holds the inspector's central state: the set of
// loaded data items, their markings, and the active label. All
// mutations flow through the Model, which validates input, applies
// the change, and notifies registered hooks. Views and plugins are
// pure observers.
package session

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/serieslab/inspector/internal/config"
	"github.com/serieslab/inspector/internal/series"
)

var (
	// ErrEmptySeries rejects items with no data points.
	ErrEmptySeries = errors.New("session: series is nil or empty")

	// ErrKindMismatch rejects items whose index kind conflicts with
	// the kind locked in by the first item of the session.
	ErrKindMismatch = errors.New("session: index kind conflicts with session")

	// ErrUnknownLabel rejects labels outside the configured set.
	ErrUnknownLabel = errors.New("session: label not in configured set")

	// ErrNoActiveLabel signals a marking operation that needs an
	// active label when none is set.
	ErrNoActiveLabel = errors.New("session: no active label set")
)

// Model owns the item list and the annotation state of one inspection
// session. It is not safe for concurrent use: the TUI event loop is
// the single writer.
type Model struct {
	cfg config.Config
	log zerolog.Logger

	items       []*DataItem
	activeLabel string

	// indexKind is locked by the first successfully added item; all
	// later items must match. kindLocked distinguishes "no items yet"
	// from a session locked to KindNumber.
	indexKind  series.Kind
	kindLocked bool

	// totalAdded counts items over the whole session lifetime,
	// including removed ones. Used for default naming.
	totalAdded int

	hooks hooks
}

// NewModel builds an empty session.
func NewModel(cfg config.Config, log zerolog.Logger) *Model {
	return &Model{
		cfg: cfg,
		log: log.With().Str("component", "session").Logger(),
	}
}

// ─────────────────────────────── items ───────────────────────────────

// AddItem validates and inserts a series into the session. An empty
// name is replaced by a generated one; any name is de-collided with a
// numeric suffix so names stay distinct across the session. Rejected
// input leaves the session unchanged.
func (m *Model) AddItem(s *series.Series, name string, metadata map[string]string) (*DataItem, error) {
	if s == nil || s.Empty() {
		m.log.Error().Str("name", name).Msg("rejecting item: empty series")
		return nil, ErrEmptySeries
	}
	if m.kindLocked && s.Kind() != m.indexKind {
		m.log.Error().
			Str("name", name).
			Stringer("have", m.indexKind).
			Stringer("want", s.Kind()).
			Msg("rejecting item: index kind mismatch")
		return nil, ErrKindMismatch
	}

	m.totalAdded++
	if name == "" {
		name = fmt.Sprintf("item %d (%d pts)", m.totalAdded, s.Len())
	}
	name = m.decollideName(name)

	if metadata == nil {
		metadata = map[string]string{}
	}
	it := &DataItem{
		Name:     name,
		Metadata: metadata,
		Series:   s,
		Visible:  true,
		Slot:     len(m.items),
	}
	m.items = append(m.items, it)
	if !m.kindLocked {
		m.indexKind = s.Kind()
		m.kindLocked = true
	}

	m.log.Info().
		Str("name", name).
		Int("points", s.Len()).
		Stringer("kind", s.Kind()).
		Msg("item added")
	m.emitItemAdded(it)
	return it, nil
}

// decollideName appends " (n)" until the name is unused.
func (m *Model) decollideName(name string) string {
	taken := func(n string) bool {
		for _, it := range m.items {
			if it.Name == n {
				return true
			}
		}
		return false
	}
	if !taken(name) {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if !taken(candidate) {
			return candidate
		}
	}
}

// RemoveItem drops an item from the session. Panics if the item is
// not part of the session: callers hold references handed out by the
// Model, so an unknown item is an internal bug.
func (m *Model) RemoveItem(it *DataItem) {
	for i, cur := range m.items {
		if cur == it {
			m.items = append(m.items[:i], m.items[i+1:]...)
			m.log.Info().Str("name", it.Name).Msg("item removed")
			m.emitItemRemoved(it)
			return
		}
	}
	panic("session: item not present")
}

// Items returns the session's items, optionally filtered to visible
// ones. The returned slice is freshly allocated.
func (m *Model) Items(onlyVisible bool) []*DataItem {
	out := make([]*DataItem, 0, len(m.items))
	for _, it := range m.items {
		if onlyVisible && !it.Visible {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Len reports the number of items in the session.
func (m *Model) Len() int { return len(m.items) }

// IndexKind reports the locked index kind. ok is false before the
// first item is added.
func (m *Model) IndexKind() (series.Kind, bool) {
	return m.indexKind, m.kindLocked
}

// IsTimeIndexed reports whether the session is locked to a time index.
func (m *Model) IsTimeIndexed() bool {
	return m.kindLocked && m.indexKind == series.KindTime
}

// SetItemVisible flips one item's visibility.
func (m *Model) SetItemVisible(it *DataItem, visible bool) {
	if it.Visible == visible {
		return
	}
	it.Visible = visible
	m.emitVisibilitySet(it)
}

// SetAllVisible shows or hides every item.
func (m *Model) SetAllVisible(visible bool) {
	for _, it := range m.items {
		m.SetItemVisible(it, visible)
	}
}

// InvertVisible flips every item's visibility.
func (m *Model) InvertVisible() {
	for _, it := range m.items {
		m.SetItemVisible(it, !it.Visible)
	}
}

// MatchItemsByMetadata returns the items whose metadata is a superset
// of partial. Items without metadata never match, and an empty query
// matches nothing.
func (m *Model) MatchItemsByMetadata(partial map[string]string) []*DataItem {
	if len(partial) == 0 {
		return nil
	}
	var out []*DataItem
	for _, it := range m.items {
		if len(it.Metadata) == 0 {
			continue
		}
		ok := true
		for k, v := range partial {
			if it.Metadata[k] != v {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, it)
		}
	}
	return out
}

// ApplyOnVisible runs fn over every visible item's series and
// metadata, e.g. to feed an export.
func (m *Model) ApplyOnVisible(fn func(*series.Series, map[string]string)) {
	for _, it := range m.items {
		if it.Visible {
			fn(it.Series, it.Metadata)
		}
	}
}

// ────────────────────────────── labels ───────────────────────────────

// SetActiveLabel selects the label applied by subsequent marking
// operations. Labels outside the configured set are rejected.
func (m *Model) SetActiveLabel(label string) error {
	if !m.cfg.KnownLabel(label) {
		m.log.Error().Str("label", label).Msg("rejecting unknown label")
		return ErrUnknownLabel
	}
	m.activeLabel = label
	m.log.Debug().Str("label", label).Msg("active label set")
	return nil
}

// ClearActiveLabel unsets the active label.
func (m *Model) ClearActiveLabel() { m.activeLabel = "" }

// ActiveLabel returns the current label, empty when none is set.
func (m *Model) ActiveLabel() string { return m.activeLabel }

// ───────────────────────────── markings ──────────────────────────────

// AddMarking attaches a marking to an item unconditionally. Label
// validation happens at the selection entry points; this low-level
// path also serves loads from storage, which must round-trip whatever
// was stored.
func (m *Model) AddMarking(it *DataItem, start, end float64, label, note string) *Marking {
	mk := &Marking{Start: start, End: end, Label: label, Note: note}
	it.addMarking(mk)
	m.log.Info().
		Str("item", it.Name).
		Str("label", label).
		Float64("start", start).
		Float64("end", end).
		Msg("marking added")
	m.emitMarkingAdded(it, mk)
	return mk
}

// NewMarkingAtSelection marks [start, end) with the active label on
// every targeted item. A zero-width selection or a missing active
// label is logged and ignored.
func (m *Model) NewMarkingAtSelection(start, end float64, onlyVisible bool) {
	if start == end {
		m.log.Debug().Float64("at", start).Msg("ignoring zero-width selection")
		return
	}
	if m.activeLabel == "" {
		m.log.Info().Msg("ignoring selection: no active label")
		return
	}
	if end < start {
		start, end = end, start
	}
	for _, it := range m.Items(onlyVisible) {
		m.AddMarking(it, start, end, m.activeLabel, "")
	}
}

// RemoveMarking tombstones a marking. Panics if the marking is not
// active on the item.
func (m *Model) RemoveMarking(it *DataItem, mk *Marking) {
	it.removeMarking(mk)
	m.log.Info().
		Str("item", it.Name).
		Str("label", mk.Label).
		Float64("start", mk.Start).
		Float64("end", mk.End).
		Msg("marking removed")
	m.emitMarkingRemoved(it, mk)
}

// RelabelMarking rewrites a marking's label to the active label.
// Fails when no active label is set; the marking keeps its label.
func (m *Model) RelabelMarking(it *DataItem, mk *Marking) error {
	if m.activeLabel == "" {
		m.log.Error().Str("item", it.Name).Msg("cannot relabel: no active label")
		return ErrNoActiveLabel
	}
	mk.Label = m.activeLabel
	m.log.Info().
		Str("item", it.Name).
		Str("label", mk.Label).
		Msg("marking relabeled")
	m.emitMarkingRelabeled(it, mk)
	return nil
}

// DeleteMarkingsInRange tombstones every marking that lies strictly
// inside the open interval (x0, x1): both the marking's start and end
// must be strictly between the bounds. Markings touching either bound
// survive.
func (m *Model) DeleteMarkingsInRange(x0, x1 float64, onlyVisible bool) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for _, it := range m.Items(onlyVisible) {
		var doomed []*Marking
		for _, mk := range it.Markings {
			if x0 < mk.Start && mk.Start < x1 && x0 < mk.End && mk.End < x1 {
				doomed = append(doomed, mk)
			}
		}
		for _, mk := range doomed {
			m.RemoveMarking(it, mk)
		}
	}
}

// DeleteAllMarkings tombstones every marking on the targeted items.
func (m *Model) DeleteAllMarkings(onlyVisible bool) {
	for _, it := range m.Items(onlyVisible) {
		for _, mk := range append([]*Marking(nil), it.Markings...) {
			m.RemoveMarking(it, mk)
		}
	}
}

// ─────────────────────────── interval tags ───────────────────────────

// TagFullExtent exports an item's whole index span under tag.
func (m *Model) TagFullExtent(it *DataItem, tag string) {
	lo, hi := it.Series.Bounds()
	m.log.Info().Str("item", it.Name).Str("tag", tag).Msg("tagging full extent")
	m.emitIntervalTagged(it.Metadata, lo, hi, tag)
}

// TagBetweenOuterMarkings exports the span from the earliest marking
// start to the latest marking end. Items without markings are skipped.
func (m *Model) TagBetweenOuterMarkings(it *DataItem, tag string) {
	lo, hi, ok := it.OuterBounds()
	if !ok {
		m.log.Debug().Str("item", it.Name).Msg("skipping tag: no markings")
		return
	}
	m.log.Info().Str("item", it.Name).Str("tag", tag).Msg("tagging between outer markings")
	m.emitIntervalTagged(it.Metadata, lo, hi, tag)
}

// TagItems applies TagFullExtent across the targeted items.
func (m *Model) TagItems(tag string, onlyVisible bool) {
	for _, it := range m.Items(onlyVisible) {
		m.TagFullExtent(it, tag)
	}
}

// TagItemsBetweenOuterMarkings applies TagBetweenOuterMarkings across
// the targeted items.
func (m *Model) TagItemsBetweenOuterMarkings(tag string, onlyVisible bool) {
	for _, it := range m.Items(onlyVisible) {
		m.TagBetweenOuterMarkings(it, tag)
	}
}

// ─────────────────────────── save and load ───────────────────────────

// SaveSnapshot captures the targeted items' markings and tombstones
// and hands them to the save hooks. Tombstones stay in place until
// AcknowledgeSave confirms persistence, so a failed save can be
// retried without losing deletions.
func (m *Model) SaveSnapshot(onlyVisible bool) (changed, deleted []ItemSnapshot) {
	for _, it := range m.Items(onlyVisible) {
		if len(it.Markings) > 0 {
			changed = append(changed, snapshotOf(it, it.Markings))
		}
		if len(it.Deleted) > 0 {
			deleted = append(deleted, snapshotOf(it, it.Deleted))
		}
	}
	m.log.Info().
		Int("changed", len(changed)).
		Int("deleted", len(deleted)).
		Msg("save requested")
	m.emitSaveRequested(changed, deleted)
	return changed, deleted
}

func snapshotOf(it *DataItem, marks []*Marking) ItemSnapshot {
	records := make([]MarkingRecord, len(marks))
	for i, mk := range marks {
		records[i] = mk.Record()
	}
	return ItemSnapshot{Item: it, Metadata: it.Metadata, Markings: records}
}

// AcknowledgeSave clears an item's tombstones after its deletions
// were confirmed persisted.
func (m *Model) AcknowledgeSave(it *DataItem) {
	it.Deleted = nil
}

// RequestLoad asks the load hooks to fetch stored markings for each
// targeted item, bounded by that item's index span. force bypasses
// any downstream duplicate-load guard.
func (m *Model) RequestLoad(onlyVisible, force bool) {
	for _, it := range m.Items(onlyVisible) {
		lo, hi := it.Series.Bounds()
		m.log.Info().Str("item", it.Name).Bool("force", force).Msg("load requested")
		m.emitLoadRequested(it.Metadata, lo, hi, force)
	}
}

// ApplyMarkings attaches loaded records to every item matching the
// metadata. An empty metadata set is rejected: it would match nothing
// meaningful and usually indicates a malformed source.
func (m *Model) ApplyMarkings(records []MarkingRecord, metadata map[string]string) {
	if len(metadata) == 0 {
		m.log.Error().Msg("rejecting markings without metadata")
		return
	}
	targets := m.MatchItemsByMetadata(metadata)
	if len(targets) == 0 {
		m.log.Debug().Interface("metadata", metadata).Msg("no items match loaded markings")
		return
	}
	for _, it := range targets {
		for _, r := range records {
			m.AddMarking(it, r.Start, r.End, r.Label, r.Note)
		}
	}
}
