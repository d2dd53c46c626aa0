package storage

import (
	"testing"

	"github.com/serieslab/inspector/internal/session"
	"github.com/serieslab/inspector/pkg/jsonutil"
)

// storeBackends runs a test against both implementations so the
// in-memory fake can't drift from the SQLite behavior.
func storeBackends(t *testing.T, run func(t *testing.T, st Store)) {
	t.Helper()

	t.Run("sqlite", func(t *testing.T) {
		st, err := NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("NewSQLiteStore failed: %v", err)
		}
		defer st.Close()
		run(t, st)
	})

	t.Run("memory", func(t *testing.T) {
		st := NewMemoryStore()
		defer st.Close()
		run(t, st)
	})
}

var testMeta = map[string]string{"plant": "p1", "sensor": "temperature"}

func TestUpsertAndQueryRoundTrip(t *testing.T) {
	storeBackends(t, func(t *testing.T, st Store) {
		records := []session.MarkingRecord{
			{Start: 10, End: 20, Label: "discard", Note: "spike"},
			{Start: 40, End: 55, Label: "good"},
		}
		if err := st.UpsertMarkings(testMeta, records); err != nil {
			t.Fatalf("UpsertMarkings failed: %v", err)
		}

		got, err := st.QueryMarkings(testMeta, 0, 100)
		if err != nil {
			t.Fatalf("QueryMarkings failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 records, got %d", len(got))
		}
		if got[0] != records[0] || got[1] != records[1] {
			t.Errorf("round trip mismatch: %+v", got)
		}

		// Different metadata sees nothing.
		other, err := st.QueryMarkings(map[string]string{"sensor": "pressure"}, 0, 100)
		if err != nil {
			t.Fatalf("QueryMarkings failed: %v", err)
		}
		if len(other) != 0 {
			t.Errorf("expected no records for other metadata, got %d", len(other))
		}
	})
}

// TestQueryMarkingsRangeContainment verifies that queries return only
// markings lying entirely inside the requested range; partial overlap
// is not enough.
func TestQueryMarkingsRangeContainment(t *testing.T) {
	storeBackends(t, func(t *testing.T, st Store) {
		records := []session.MarkingRecord{
			{Start: 0, End: 5, Label: "good"},
			{Start: 5, End: 15, Label: "discard"},
			{Start: 10, End: 20, Label: "good"},
			{Start: 30, End: 40, Label: "good"},
		}
		if err := st.UpsertMarkings(testMeta, records); err != nil {
			t.Fatalf("UpsertMarkings failed: %v", err)
		}

		// [5,15] straddles the lower bound and must not be returned.
		got, err := st.QueryMarkings(testMeta, 10, 100)
		if err != nil {
			t.Fatalf("QueryMarkings failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 contained records, got %d: %+v", len(got), got)
		}
		if got[0].Start != 10 || got[1].Start != 30 {
			t.Errorf("expected records at 10 and 30, got %+v", got)
		}

		// Bounds are inclusive: an exact match is contained.
		got, err = st.QueryMarkings(testMeta, 10, 20)
		if err != nil {
			t.Fatalf("QueryMarkings failed: %v", err)
		}
		if len(got) != 1 || got[0].Start != 10 || got[0].End != 20 {
			t.Errorf("expected only the exact-fit record, got %+v", got)
		}

		// A range strictly between markings sees nothing.
		got, err = st.QueryMarkings(testMeta, 21, 29)
		if err != nil {
			t.Fatalf("QueryMarkings failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no records between markings, got %+v", got)
		}
	})
}

// TestUpsertUpdatesNote verifies that saving the same position and
// label again rewrites the note instead of duplicating the row.
func TestUpsertUpdatesNote(t *testing.T) {
	storeBackends(t, func(t *testing.T, st Store) {
		r := session.MarkingRecord{Start: 1, End: 2, Label: "comment", Note: "first"}
		if err := st.UpsertMarkings(testMeta, []session.MarkingRecord{r}); err != nil {
			t.Fatalf("UpsertMarkings failed: %v", err)
		}
		r.Note = "second"
		if err := st.UpsertMarkings(testMeta, []session.MarkingRecord{r}); err != nil {
			t.Fatalf("UpsertMarkings failed: %v", err)
		}

		got, err := st.QueryMarkings(testMeta, 0, 10)
		if err != nil {
			t.Fatalf("QueryMarkings failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 record after re-save, got %d", len(got))
		}
		if got[0].Note != "second" {
			t.Errorf("expected updated note, got %q", got[0].Note)
		}
	})
}

func TestDeleteMarkings(t *testing.T) {
	storeBackends(t, func(t *testing.T, st Store) {
		records := []session.MarkingRecord{
			{Start: 1, End: 2, Label: "good"},
			{Start: 3, End: 4, Label: "discard"},
		}
		if err := st.UpsertMarkings(testMeta, records); err != nil {
			t.Fatalf("UpsertMarkings failed: %v", err)
		}
		if err := st.DeleteMarkings(testMeta, records[:1]); err != nil {
			t.Fatalf("DeleteMarkings failed: %v", err)
		}

		got, err := st.QueryMarkings(testMeta, 0, 10)
		if err != nil {
			t.Fatalf("QueryMarkings failed: %v", err)
		}
		if len(got) != 1 || got[0].Label != "discard" {
			t.Errorf("expected only the discard record to survive, got %+v", got)
		}
	})
}

// TestIntervalTagsSeparateFromMarkings verifies that tag rows don't
// show up in marking queries and survive marking deletes.
func TestIntervalTagsSeparateFromMarkings(t *testing.T) {
	storeBackends(t, func(t *testing.T, st Store) {
		if err := st.SaveIntervalTag(testMeta, 0, 100, "cleaned"); err != nil {
			t.Fatalf("SaveIntervalTag failed: %v", err)
		}

		got, err := st.QueryMarkings(testMeta, 0, 100)
		if err != nil {
			t.Fatalf("QueryMarkings failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("tag rows must not appear as markings, got %d", len(got))
		}

		// A delete with the tag's coordinates must not remove it.
		err = st.DeleteMarkings(testMeta, []session.MarkingRecord{{Start: 0, End: 100, Label: "cleaned"}})
		if err != nil {
			t.Fatalf("DeleteMarkings failed: %v", err)
		}
		tags, err := st.QueryIntervalTags(testMeta)
		if err != nil {
			t.Fatalf("QueryIntervalTags failed: %v", err)
		}
		if len(tags) != 1 || tags[0].Tag != "cleaned" {
			t.Fatalf("expected the cleaned tag to survive, got %+v", tags)
		}
		if tags[0].Start != 0 || tags[0].End != 100 {
			t.Errorf("unexpected tag span: %+v", tags[0])
		}
	})
}

// TestListMetadata verifies that every stored metadata set comes back
// intact, regardless of whether it entered through markings or tags.
func TestListMetadata(t *testing.T) {
	storeBackends(t, func(t *testing.T, st Store) {
		other := map[string]string{"plant": "p2", "sensor": "pressure"}
		tagged := map[string]string{"plant": "p3"}

		if err := st.UpsertMarkings(testMeta, []session.MarkingRecord{{Start: 1, End: 2, Label: "good"}}); err != nil {
			t.Fatalf("UpsertMarkings failed: %v", err)
		}
		if err := st.UpsertMarkings(other, []session.MarkingRecord{{Start: 3, End: 4, Label: "good"}}); err != nil {
			t.Fatalf("UpsertMarkings failed: %v", err)
		}
		if err := st.SaveIntervalTag(tagged, 0, 10, "cleaned"); err != nil {
			t.Fatalf("SaveIntervalTag failed: %v", err)
		}

		sets, err := st.ListMetadata()
		if err != nil {
			t.Fatalf("ListMetadata failed: %v", err)
		}
		if len(sets) != 3 {
			t.Fatalf("expected 3 metadata sets, got %d: %v", len(sets), sets)
		}

		seen := make(map[string]bool)
		for _, m := range sets {
			seen[jsonutil.Fingerprint(m)] = true
		}
		for _, want := range []map[string]string{testMeta, other, tagged} {
			if !seen[jsonutil.Fingerprint(want)] {
				t.Errorf("metadata set %v missing from listing", want)
			}
		}
	})
}

func TestSaveIntervalTagIdempotent(t *testing.T) {
	storeBackends(t, func(t *testing.T, st Store) {
		for i := 0; i < 3; i++ {
			if err := st.SaveIntervalTag(testMeta, 5, 50, "cleaned"); err != nil {
				t.Fatalf("SaveIntervalTag failed: %v", err)
			}
		}
		tags, err := st.QueryIntervalTags(testMeta)
		if err != nil {
			t.Fatalf("QueryIntervalTags failed: %v", err)
		}
		if len(tags) != 1 {
			t.Errorf("expected 1 tag after repeated saves, got %d", len(tags))
		}
	})
}
