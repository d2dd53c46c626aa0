package plugin

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/serieslab/inspector/internal/config"
	"github.com/serieslab/inspector/internal/series"
	"github.com/serieslab/inspector/internal/session"
	"github.com/serieslab/inspector/internal/storage"
)

func newFixture(t *testing.T) (*session.Model, *MarkingsIO, *storage.MemoryStore) {
	t.Helper()
	cfg := config.Default()
	m := session.NewModel(cfg, zerolog.Nop())
	st := storage.NewMemoryStore()
	p := NewMarkingsIO(Deps{Cfg: cfg, Log: zerolog.Nop(), Store: st})
	if err := p.Attach(m); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	return m, p, st
}

func addRampItem(t *testing.T, m *session.Model, name string, metadata map[string]string) *session.DataItem {
	t.Helper()
	index := make([]float64, 100)
	values := make([]float64, 100)
	for i := range index {
		index[i] = float64(i)
		values[i] = float64(i)
	}
	s, err := series.NewNumber(index, values)
	if err != nil {
		t.Fatalf("NewNumber failed: %v", err)
	}
	it, err := m.AddItem(s, name, metadata)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	return it
}

var meta = map[string]string{"sensor": "s1"}

// TestSavePersistsAndAcknowledges verifies the full save cycle:
// active markings are upserted, tombstoned ones deleted from storage,
// and the tombstones cleared once the delete went through.
func TestSavePersistsAndAcknowledges(t *testing.T) {
	m, _, st := newFixture(t)
	it := addRampItem(t, m, "a", meta)

	keep := m.AddMarking(it, 10, 20, config.LabelGood, "")
	drop := m.AddMarking(it, 30, 40, config.LabelDiscard, "")
	m.SaveSnapshot(false)

	stored, err := st.QueryMarkings(meta, 0, 100)
	if err != nil {
		t.Fatalf("QueryMarkings failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 stored markings, got %d", len(stored))
	}

	m.RemoveMarking(it, drop)
	m.SaveSnapshot(false)

	stored, err = st.QueryMarkings(meta, 0, 100)
	if err != nil {
		t.Fatalf("QueryMarkings failed: %v", err)
	}
	if len(stored) != 1 || stored[0] != keep.Record() {
		t.Errorf("expected only the kept marking in storage, got %+v", stored)
	}
	if len(it.Deleted) != 0 {
		t.Error("acknowledged save must clear the tombstones")
	}
}

// TestLoadAppliesStoredMarkingsOnce verifies the duplicate-load
// guard: a second load for the same metadata is skipped unless
// forced.
func TestLoadAppliesStoredMarkingsOnce(t *testing.T) {
	m, _, st := newFixture(t)
	it := addRampItem(t, m, "a", meta)

	records := []session.MarkingRecord{{Start: 5, End: 15, Label: config.LabelBFill}}
	if err := st.UpsertMarkings(meta, records); err != nil {
		t.Fatalf("UpsertMarkings failed: %v", err)
	}

	m.RequestLoad(false, false)
	if len(it.Markings) != 1 {
		t.Fatalf("expected 1 loaded marking, got %d", len(it.Markings))
	}

	m.RequestLoad(false, false)
	if len(it.Markings) != 1 {
		t.Errorf("duplicate load must be skipped, got %d markings", len(it.Markings))
	}

	m.RequestLoad(false, true)
	if len(it.Markings) != 2 {
		t.Errorf("forced load must apply again, got %d markings", len(it.Markings))
	}
}

func TestLoadSkipsItemsWithoutMetadata(t *testing.T) {
	m, _, _ := newFixture(t)
	it := addRampItem(t, m, "bare", nil)

	m.RequestLoad(false, true)
	if len(it.Markings) != 0 {
		t.Errorf("item without metadata must not receive markings, got %d", len(it.Markings))
	}
}

func TestIntervalTagPersisted(t *testing.T) {
	m, _, st := newFixture(t)
	it := addRampItem(t, m, "a", meta)
	m.AddMarking(it, 20, 30, config.LabelGood, "")
	m.AddMarking(it, 50, 70, config.LabelGood, "")

	m.TagBetweenOuterMarkings(it, config.TagCleaned)

	tags, err := st.QueryIntervalTags(meta)
	if err != nil {
		t.Fatalf("QueryIntervalTags failed: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(tags))
	}
	if tags[0].Start != 20 || tags[0].End != 70 || tags[0].Tag != config.TagCleaned {
		t.Errorf("unexpected tag row: %+v", tags[0])
	}
}

func TestMarkGaps(t *testing.T) {
	cfg := config.Default()
	m := session.NewModel(cfg, zerolog.Nop())

	s, err := series.NewNumber([]float64{0, 4, 8, 12, 16, 19}, []float64{0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("NewNumber failed: %v", err)
	}
	it, err := m.AddItem(s, "gappy", nil)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	n := MarkGaps(m, 3, config.LabelDiscard, false)
	if n != 4 {
		t.Fatalf("expected 4 gap markings, got %d", n)
	}
	if len(it.Markings) != 4 {
		t.Fatalf("expected 4 markings on the item, got %d", len(it.Markings))
	}
	if it.Markings[0].Start != 0 || it.Markings[0].End != 4 {
		t.Errorf("unexpected first gap marking: %+v", it.Markings[0])
	}
	for _, mk := range it.Markings {
		if mk.Label != config.LabelDiscard {
			t.Errorf("expected gap label %q, got %q", config.LabelDiscard, mk.Label)
		}
	}
}

func TestRandomGenMatchesSessionKind(t *testing.T) {
	cfg := config.Default()
	m := session.NewModel(cfg, zerolog.Nop())
	p := NewRandomGen(Deps{Cfg: cfg, Log: zerolog.Nop(), Store: storage.NewMemoryStore()})
	if err := p.Attach(m); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	// Lock the session to a numeric index first.
	s, err := series.NewNumber([]float64{0, 1, 2}, []float64{0, 0, 0})
	if err != nil {
		t.Fatalf("NewNumber failed: %v", err)
	}
	if _, err := m.AddItem(s, "seed", nil); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	it, err := p.AddDemoItem()
	if err != nil {
		t.Fatalf("AddDemoItem failed: %v", err)
	}
	if it.Series.Kind() != series.KindNumber {
		t.Errorf("demo item must match the locked kind, got %v", it.Series.Kind())
	}
	if m.Len() != 2 {
		t.Errorf("expected 2 items, got %d", m.Len())
	}
}
