package views

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/serieslab/inspector/internal/config"
	"github.com/serieslab/inspector/internal/series"
	"github.com/serieslab/inspector/internal/session"
)

func newFixture(t *testing.T) (*session.Model, *Workspace) {
	t.Helper()
	cfg := config.Default()
	m := session.NewModel(cfg, zerolog.Nop())
	w := NewWorkspace(cfg, zerolog.Nop(), m)
	return m, w
}

func rampItem(t *testing.T, m *session.Model, name string, n int) *session.DataItem {
	t.Helper()
	index := make([]float64, n)
	values := make([]float64, n)
	for i := range index {
		index[i] = float64(i)
		values[i] = float64(i)
	}
	s, err := series.NewNumber(index, values)
	if err != nil {
		t.Fatalf("NewNumber failed: %v", err)
	}
	it, err := m.AddItem(s, name, nil)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	return it
}

// TestInitialIntervalRule verifies that the first item opens the
// detail on min(maxPreshownPoints, len/fractionPreshown) points.
func TestInitialIntervalRule(t *testing.T) {
	m, w := newFixture(t)

	// 1200 points / 6 = 200 points preshown, i.e. indexes [0, 199].
	rampItem(t, m, "a", 1200)
	shown := w.Shown()
	if shown.Start != 0 || shown.End != 199 {
		t.Errorf("expected initial interval [0,199], got [%v,%v]", shown.Start, shown.End)
	}
	if w.Detail().Shown() != shown {
		t.Error("detail must follow the outline selector")
	}

	// A second item must not reset the interval.
	rampItem(t, m, "b", 600)
	if w.Shown() != shown {
		t.Error("later items must not move the shown interval")
	}
}

func TestInitialIntervalTinySeries(t *testing.T) {
	m, w := newFixture(t)
	rampItem(t, m, "tiny", 5)

	shown := w.Shown()
	if shown.Start != 0 || shown.End != 4 {
		t.Errorf("expected tiny series shown in full, got [%v,%v]", shown.Start, shown.End)
	}
}

func TestSetShownIntervalZeroWidthIgnored(t *testing.T) {
	m, w := newFixture(t)
	rampItem(t, m, "a", 1200)

	before := w.Shown()
	w.SetShownInterval(Interval{Start: 50, End: 50})
	if w.Shown() != before {
		t.Error("zero-width interval must not move the views")
	}
}

func TestSetShownIntervalClampsToExtent(t *testing.T) {
	m, w := newFixture(t)
	rampItem(t, m, "a", 1000)

	w.SetShownInterval(Interval{Start: 900, End: 1100})
	shown := w.Shown()
	if shown.End != 999 {
		t.Errorf("expected interval clamped to extent end 999, got %v", shown.End)
	}
	if shown.Width() != 200 {
		t.Errorf("expected clamping to preserve width 200, got %v", shown.Width())
	}

	w.SetShownInterval(Interval{Start: 80, End: 20})
	shown = w.Shown()
	if shown.Start != 20 || shown.End != 80 {
		t.Errorf("expected reversed interval normalized to [20,80], got [%v,%v]", shown.Start, shown.End)
	}
}

func TestMoveIntervalByOwnWidth(t *testing.T) {
	m, w := newFixture(t)
	rampItem(t, m, "a", 1000)
	w.SetShownInterval(Interval{Start: 100, End: 200})

	w.MoveInterval(1)
	if got := w.Shown(); got.Start != 200 || got.End != 300 {
		t.Errorf("expected [200,300] after forward move, got [%v,%v]", got.Start, got.End)
	}

	w.MoveInterval(-1)
	if got := w.Shown(); got.Start != 100 || got.End != 200 {
		t.Errorf("expected [100,200] after backward move, got [%v,%v]", got.Start, got.End)
	}

	// Moving past the start pins to the extent without shrinking.
	w.MoveInterval(-1)
	w.MoveInterval(-1)
	if got := w.Shown(); got.Start != 0 || got.Width() != 100 {
		t.Errorf("expected clamp at extent start with width kept, got [%v,%v]", got.Start, got.End)
	}
}

func TestMaximizeInterval(t *testing.T) {
	m, w := newFixture(t)
	rampItem(t, m, "a", 1000)
	w.SetShownInterval(Interval{Start: 100, End: 200})

	w.MaximizeInterval()
	if got := w.Shown(); got.Start != 0 || got.End != 999 {
		t.Errorf("expected full extent [0,999], got [%v,%v]", got.Start, got.End)
	}
}

// TestMaximizeTracksVisibleExtent verifies that the full extent is
// the union over visible items only, falling back to all items when
// everything is hidden.
func TestMaximizeTracksVisibleExtent(t *testing.T) {
	m, w := newFixture(t)
	short := rampItem(t, m, "short", 100)
	long := rampItem(t, m, "long", 1000)

	m.SetItemVisible(long, false)
	w.MaximizeInterval()
	if got := w.Shown(); got.Start != 0 || got.End != 99 {
		t.Errorf("expected visible extent [0,99], got [%v,%v]", got.Start, got.End)
	}

	// Clamping follows the visible extent too.
	w.SetShownInterval(Interval{Start: 50, End: 150})
	if got := w.Shown(); got.End != 99 {
		t.Errorf("expected clamp to visible extent end 99, got %v", got.End)
	}

	// With nothing visible the global extent is the fallback.
	m.SetItemVisible(short, false)
	w.MaximizeInterval()
	if got := w.Shown(); got.Start != 0 || got.End != 999 {
		t.Errorf("expected global extent [0,999] when all hidden, got [%v,%v]", got.Start, got.End)
	}

	m.SetItemVisible(long, true)
	w.MaximizeInterval()
	if got := w.Shown(); got.End != 999 {
		t.Errorf("expected extent to follow the re-shown item, got end %v", got.End)
	}
}

// TestSpanLifecycle verifies that marking spans appear in both views
// and vanish with the marking, and that removing an item takes its
// spans with it before the line goes (no orphans either way).
func TestSpanLifecycle(t *testing.T) {
	m, w := newFixture(t)
	a := rampItem(t, m, "a", 1000)
	b := rampItem(t, m, "b", 1000)

	m.SetActiveLabel(config.LabelGood)
	m.NewMarkingAtSelection(10, 20, false)
	m.NewMarkingAtSelection(30, 40, false)

	if w.Outline().SpanCount() != 4 || w.Detail().SpanCount() != 4 {
		t.Fatalf("expected 4 spans per view, got outline=%d detail=%d",
			w.Outline().SpanCount(), w.Detail().SpanCount())
	}

	mk := a.Markings[0]
	m.RemoveMarking(a, mk)
	if w.Outline().SpanCount() != 3 || w.Detail().SpanCount() != 3 {
		t.Errorf("expected 3 spans after removal, got outline=%d detail=%d",
			w.Outline().SpanCount(), w.Detail().SpanCount())
	}

	m.RemoveItem(b)
	if w.Outline().SpanCount() != 1 || w.Detail().SpanCount() != 1 {
		t.Errorf("expected 1 span after item removal, got outline=%d detail=%d",
			w.Outline().SpanCount(), w.Detail().SpanCount())
	}
	if w.Outline().Line(b) != nil {
		t.Error("removed item must have no outline line")
	}
}

// TestYRangeFloor verifies the minimum vertical span: flat data must
// not collapse the detail scale.
func TestYRangeFloor(t *testing.T) {
	m, w := newFixture(t)

	s, err := series.NewNumber([]float64{0, 1, 2, 3}, []float64{5, 5.1, 5, 5.1})
	if err != nil {
		t.Fatalf("NewNumber failed: %v", err)
	}
	if _, err := m.AddItem(s, "flat", nil); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	min, max := w.Detail().YRange()
	if span := max - min; span < 10 {
		t.Errorf("expected y-span floored at 10, got %v", span)
	}
	center := (min + max) / 2
	if center < 5 || center > 5.2 {
		t.Errorf("expected floor centered on the data, got center %v", center)
	}
}

func TestYRangeTracksVisibility(t *testing.T) {
	m, w := newFixture(t)
	small := rampItem(t, m, "small", 100)
	w.MaximizeInterval()

	big, err := series.NewNumber([]float64{0, 50, 99}, []float64{0, 500, 1000})
	if err != nil {
		t.Fatalf("NewNumber failed: %v", err)
	}
	bigItem, addErr := m.AddItem(big, "big", nil)
	if addErr != nil {
		t.Fatalf("AddItem failed: %v", addErr)
	}

	_, max := w.Detail().YRange()
	if max < 1000 {
		t.Fatalf("expected y-max covering the big item, got %v", max)
	}

	m.SetItemVisible(bigItem, false)
	_, max = w.Detail().YRange()
	if max > 200 {
		t.Errorf("expected y-range to shrink when the big item is hidden, got max %v", max)
	}
	_ = small
}

func TestRedrawRequestedOnChanges(t *testing.T) {
	m, w := newFixture(t)
	var redraws int
	w.OnRedraw(func() { redraws++ })

	it := rampItem(t, m, "a", 1000)
	if redraws == 0 {
		t.Fatal("expected redraw after item add")
	}

	before := redraws
	m.SetActiveLabel(config.LabelGood)
	m.NewMarkingAtSelection(10, 20, false)
	if redraws <= before {
		t.Error("expected redraw after marking add")
	}

	before = redraws
	m.RemoveItem(it)
	if redraws <= before {
		t.Error("expected redraw after item removal")
	}
}
