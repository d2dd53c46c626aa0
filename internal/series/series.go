// Package series implements the one-dimensional series the inspector
// loads and annotates.
//
// A series is an ordered sequence of (index, value) pairs. The index
// is either strictly increasing timestamps or strictly increasing
// numbers; both are carried as float64 domain values (Unix
// nanoseconds for the time kind, see pkg/timeutil). The package also
// provides the overview decimation and the gap scan used by the
// batch-tagging path.
package series

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/serieslab/inspector/pkg/timeutil"
)

// Kind distinguishes time-indexed from number-indexed series.
// A session locks to one kind when its first item is added.
type Kind int

const (
	KindNumber Kind = iota
	KindTime
)

func (k Kind) String() string {
	if k == KindTime {
		return "time"
	}
	return "number"
}

var errIndexNotIncreasing = errors.New("series: index must be strictly increasing")

// Series is an immutable ordered sequence of (index, value) pairs.
type Series struct {
	kind   Kind
	index  []float64
	values []float64
}

// NewNumber builds a number-indexed series. The index must be
// strictly increasing and the same length as the values.
func NewNumber(index, values []float64) (*Series, error) {
	return newSeries(KindNumber, index, values)
}

// NewTime builds a time-indexed series from timestamps.
func NewTime(stamps []time.Time, values []float64) (*Series, error) {
	index := make([]float64, len(stamps))
	for i, t := range stamps {
		index[i] = timeutil.ToDomain(t)
	}
	return newSeries(KindTime, index, values)
}

// FromDomain builds a series directly from domain values. Used by
// loaders that already carry the index in domain form.
func FromDomain(kind Kind, index, values []float64) (*Series, error) {
	return newSeries(kind, index, values)
}

func newSeries(kind Kind, index, values []float64) (*Series, error) {
	if len(index) != len(values) {
		return nil, fmt.Errorf("series: index length %d != values length %d", len(index), len(values))
	}
	for i := 1; i < len(index); i++ {
		if index[i] <= index[i-1] {
			return nil, errIndexNotIncreasing
		}
	}
	return &Series{kind: kind, index: index, values: values}, nil
}

// Kind returns whether the series is time- or number-indexed.
func (s *Series) Kind() Kind { return s.kind }

// IsTime reports whether the index kind is time.
func (s *Series) IsTime() bool { return s.kind == KindTime }

// Len returns the number of points.
func (s *Series) Len() int { return len(s.index) }

// Empty reports whether the series has no points.
func (s *Series) Empty() bool { return len(s.index) == 0 }

// Index returns the domain value of point i.
func (s *Series) Index(i int) float64 { return s.index[i] }

// Value returns the data value of point i.
func (s *Series) Value(i int) float64 { return s.values[i] }

// Bounds returns the first and last index values.
// Must not be called on an empty series.
func (s *Series) Bounds() (first, last float64) {
	return s.index[0], s.index[len(s.index)-1]
}

// Span returns the index extent (last - first).
func (s *Series) Span() float64 {
	first, last := s.Bounds()
	return last - first
}

// MinMax returns the minimum and maximum data values.
func (s *Series) MinMax() (min, max float64, ok bool) {
	return s.RangeMinMax(s.index[0], s.index[len(s.index)-1])
}

// locate returns the half-open position range [lo, hi) of points with
// x0 <= index <= x1 (both endpoints inclusive, matching how the detail
// view slices its shown interval).
func (s *Series) locate(x0, x1 float64) (lo, hi int) {
	lo = sort.SearchFloat64s(s.index, x0)
	hi = sort.Search(len(s.index), func(i int) bool { return s.index[i] > x1 })
	return lo, hi
}

// SliceRange returns the sub-series with x0 <= index <= x1. The
// returned series shares backing storage with the receiver. May be
// empty.
func (s *Series) SliceRange(x0, x1 float64) *Series {
	lo, hi := s.locate(x0, x1)
	if lo >= hi {
		return &Series{kind: s.kind}
	}
	return &Series{kind: s.kind, index: s.index[lo:hi], values: s.values[lo:hi]}
}

// RangeMinMax returns the min/max data value over x0 <= index <= x1.
// ok is false when no points fall inside the range.
func (s *Series) RangeMinMax(x0, x1 float64) (min, max float64, ok bool) {
	lo, hi := s.locate(x0, x1)
	if lo >= hi {
		return 0, 0, false
	}
	min, max = s.values[lo], s.values[lo]
	for i := lo + 1; i < hi; i++ {
		if s.values[i] < min {
			min = s.values[i]
		}
		if s.values[i] > max {
			max = s.values[i]
		}
	}
	return min, max, true
}
