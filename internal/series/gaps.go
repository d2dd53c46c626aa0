package series

// Interval is a half-open [Start, End) range over a series' index
// domain.
type Interval struct {
	Start float64
	End   float64
}

// Gaps returns one interval bracketing every place where consecutive
// index values differ by strictly more than limit. A spacing exactly
// equal to the limit is not a gap.
//
// The limit is a domain delta: callers with a time-kind series convert
// a duration via timeutil.DurationToDomain first.
func Gaps(s *Series, limit float64) []Interval {
	var gaps []Interval
	for i := 1; i < s.Len(); i++ {
		if s.index[i]-s.index[i-1] > limit {
			gaps = append(gaps, Interval{Start: s.index[i-1], End: s.index[i]})
		}
	}
	return gaps
}
