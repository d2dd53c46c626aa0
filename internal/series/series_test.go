package series

import (
	"testing"
	"time"

	"github.com/serieslab/inspector/pkg/timeutil"
)

func numberSeries(t *testing.T, index, values []float64) *Series {
	t.Helper()
	s, err := NewNumber(index, values)
	if err != nil {
		t.Fatalf("NewNumber failed: %v", err)
	}
	return s
}

// TestNewNumberRejectsUnsortedIndex verifies that a non-increasing
// index is refused at construction time.
func TestNewNumberRejectsUnsortedIndex(t *testing.T) {
	if _, err := NewNumber([]float64{0, 2, 1}, []float64{1, 2, 3}); err == nil {
		t.Fatal("expected error for non-increasing index")
	}
	if _, err := NewNumber([]float64{0, 0, 1}, []float64{1, 2, 3}); err == nil {
		t.Fatal("expected error for duplicate index values")
	}
}

func TestNewNumberRejectsLengthMismatch(t *testing.T) {
	if _, err := NewNumber([]float64{0, 1}, []float64{1}); err == nil {
		t.Fatal("expected error for index/values length mismatch")
	}
}

// TestSliceRangeInclusive verifies that slicing includes both
// boundary points, matching how the detail view narrows its interval.
func TestSliceRangeInclusive(t *testing.T) {
	s := numberSeries(t, []float64{0, 4, 8, 12, 16, 19}, []float64{1, 2, 3, 4, 5, 6})

	sub := s.SliceRange(4, 16)
	if sub.Len() != 4 {
		t.Fatalf("expected 4 points in [4,16], got %d", sub.Len())
	}
	if sub.Index(0) != 4 || sub.Index(3) != 16 {
		t.Errorf("expected boundary points 4 and 16, got %v and %v", sub.Index(0), sub.Index(3))
	}

	empty := s.SliceRange(20, 30)
	if !empty.Empty() {
		t.Errorf("expected empty slice past the index, got %d points", empty.Len())
	}
}

func TestRangeMinMax(t *testing.T) {
	s := numberSeries(t, []float64{0, 1, 2, 3, 4}, []float64{5, -2, 7, 0, 3})

	min, max, ok := s.RangeMinMax(1, 3)
	if !ok {
		t.Fatal("expected points in range [1,3]")
	}
	if min != -2 || max != 7 {
		t.Errorf("expected min=-2 max=7, got min=%v max=%v", min, max)
	}

	if _, _, ok := s.RangeMinMax(10, 20); ok {
		t.Error("expected ok=false for range past the index")
	}
}

// TestGapsWorkedExample is the reference case: index [0,4,8,12,16,19]
// with limit 3 has a gap at every consecutive pair except (16,19),
// whose spacing equals the limit and therefore does not count.
func TestGapsWorkedExample(t *testing.T) {
	s := numberSeries(t, []float64{0, 4, 8, 12, 16, 19}, []float64{0, 0, 0, 0, 0, 0})

	gaps := Gaps(s, 3)
	if len(gaps) != 4 {
		t.Fatalf("expected 4 gaps, got %d: %v", len(gaps), gaps)
	}
	want := []Interval{{0, 4}, {4, 8}, {8, 12}, {12, 16}}
	for i, g := range gaps {
		if g != want[i] {
			t.Errorf("gap %d: expected %v, got %v", i, want[i], g)
		}
	}
}

func TestGapsNoneBelowLimit(t *testing.T) {
	s := numberSeries(t, []float64{0, 1, 2, 3}, []float64{0, 0, 0, 0})
	if gaps := Gaps(s, 1); len(gaps) != 0 {
		t.Errorf("expected no gaps for unit spacing with limit 1, got %v", gaps)
	}
}

// TestDecimateBelowThresholdUnchanged verifies that small series pass
// through decimation untouched.
func TestDecimateBelowThresholdUnchanged(t *testing.T) {
	s := numberSeries(t, []float64{0, 1, 2}, []float64{1, 2, 3})
	if got := Decimate(s, 8000, 2000); got != s {
		t.Error("expected series below threshold to be returned as-is")
	}
}

func TestDecimateNumberStride(t *testing.T) {
	n := 10000
	index := make([]float64, n)
	values := make([]float64, n)
	for i := range index {
		index[i] = float64(i)
		values[i] = float64(i % 7)
	}
	s := numberSeries(t, index, values)

	dec := Decimate(s, 8000, 2000)
	if dec.Len() < 1900 || dec.Len() > 2100 {
		t.Errorf("expected roughly 2000 points after stride sampling, got %d", dec.Len())
	}
	// First point survives, index stays increasing.
	if dec.Index(0) != 0 {
		t.Errorf("expected first point preserved, got index %v", dec.Index(0))
	}
	for i := 1; i < dec.Len(); i++ {
		if dec.Index(i) <= dec.Index(i-1) {
			t.Fatalf("decimated index not increasing at %d", i)
		}
	}
}

func TestDecimateTimeBucketAverage(t *testing.T) {
	n := 10000
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	stamps := make([]time.Time, n)
	values := make([]float64, n)
	for i := range stamps {
		stamps[i] = start.Add(time.Duration(i) * time.Second)
		values[i] = 10
	}
	s, err := NewTime(stamps, values)
	if err != nil {
		t.Fatalf("NewTime failed: %v", err)
	}

	dec := Decimate(s, 8000, 2000)
	if dec.Len() >= s.Len() {
		t.Fatalf("expected decimation to reduce %d points, got %d", s.Len(), dec.Len())
	}
	// Constant data must average to the same constant.
	for i := 0; i < dec.Len(); i++ {
		if dec.Value(i) != 10 {
			t.Fatalf("bucket average of constant 10 is %v at %d", dec.Value(i), i)
		}
	}
	for i := 1; i < dec.Len(); i++ {
		if dec.Index(i) <= dec.Index(i-1) {
			t.Fatalf("decimated index not increasing at %d", i)
		}
	}
}

// TestBinPeriodResolution checks the 10Hz boundary: dense series bin
// in milliseconds, sparse ones in whole seconds.
func TestBinPeriodResolution(t *testing.T) {
	// 100k points over 100s: 1ms spacing, dense.
	p := timeutil.BinPeriod(100*time.Second, 100000, 2000)
	if p < time.Millisecond || p >= time.Second {
		t.Errorf("expected millisecond-resolution period for dense series, got %v", p)
	}
	// 10k points over 10000s: 1s spacing, sparse.
	p = timeutil.BinPeriod(10000*time.Second, 10000, 2000)
	if p < time.Second || p%time.Second != 0 {
		t.Errorf("expected whole-second period for sparse series, got %v", p)
	}
}
