// Package views holds the headless view state of the inspector: the
// outline role (decimated full extent with a shown-interval selector)
// and the detail role (the selected interval at full resolution),
// plus the workspace that keeps both synchronized with the session
// model. The TUI renders from this state but never mutates it
// directly.
package views

// Interval is a closed range on the session's index domain.
type Interval struct {
	Start float64
	End   float64
}

// Width returns the interval's extent.
func (iv Interval) Width() float64 { return iv.End - iv.Start }

// IsZero reports whether the interval has no width.
func (iv Interval) IsZero() bool { return iv.Start == iv.End }

// Normalized returns the interval with Start <= End.
func (iv Interval) Normalized() Interval {
	if iv.End < iv.Start {
		return Interval{Start: iv.End, End: iv.Start}
	}
	return iv
}

// ClampTo confines the interval to bounds, preserving its width where
// possible.
func (iv Interval) ClampTo(bounds Interval) Interval {
	w := iv.Width()
	if w > bounds.Width() {
		return bounds
	}
	if iv.Start < bounds.Start {
		return Interval{Start: bounds.Start, End: bounds.Start + w}
	}
	if iv.End > bounds.End {
		return Interval{Start: bounds.End - w, End: bounds.End}
	}
	return iv
}

// Shifted returns the interval moved by delta.
func (iv Interval) Shifted(delta float64) Interval {
	return Interval{Start: iv.Start + delta, End: iv.End + delta}
}

// Contains reports whether x lies inside the closed interval.
func (iv Interval) Contains(x float64) bool {
	return iv.Start <= x && x <= iv.End
}
