// Package timeutil converts between wall-clock time and the domain
// values the inspector works in.
//
// A domain value is a float64: for time-indexed sessions it is Unix
// nanoseconds, for number-indexed sessions it is the raw index value.
// All interval arithmetic (selection, panning, gap scanning) happens
// on domain values; this package is the single place where they are
// turned back into something readable.
package timeutil

import (
	"fmt"
	"strconv"
	"time"
)

// ToNano converts a time.Time to Unix nanoseconds.
func ToNano(t time.Time) int64 {
	return t.UnixNano()
}

// FromNano converts a Unix nanosecond timestamp to time.Time.
func FromNano(ns int64) time.Time {
	return time.Unix(0, ns)
}

// ToDomain converts a time.Time to a time-kind domain value.
func ToDomain(t time.Time) float64 {
	return float64(ToNano(t))
}

// FromDomain converts a time-kind domain value back to time.Time.
func FromDomain(v float64) time.Time {
	return FromNano(int64(v))
}

// DurationToDomain converts a duration to a time-kind domain delta.
func DurationToDomain(d time.Duration) float64 {
	return float64(d.Nanoseconds())
}

// DomainToDuration converts a time-kind domain delta to a duration.
func DomainToDuration(v float64) time.Duration {
	return time.Duration(int64(v))
}

// FormatDomain renders a domain value for display. Time-kind values
// are shown as "2006-01-02 15:04:05.000"; number-kind values with
// trailing zeros trimmed.
func FormatDomain(isTime bool, v float64) string {
	if isTime {
		return FromDomain(v).Format("2006-01-02 15:04:05.000")
	}
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// FormatDomainShort is the compact variant used inside panes.
// Time-kind values drop the date: "15:04:05".
func FormatDomainShort(isTime bool, v float64) string {
	if isTime {
		return FromDomain(v).Format("15:04:05")
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// FormatSpan renders an interval width: a duration for time-kind,
// a plain delta otherwise.
func FormatSpan(isTime bool, x0, x1 float64) string {
	if isTime {
		return FormatDuration(DomainToDuration(x1 - x0))
	}
	return strconv.FormatFloat(x1-x0, 'g', 6, 64)
}

// FormatDuration formats a duration to a human-readable string.
// Examples: "450ms", "1.2s", "2m 15.3s", "3h 4m"
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		minutes := int(d.Minutes())
		remaining := d.Seconds() - float64(minutes*60)
		return fmt.Sprintf("%dm %.1fs", minutes, remaining)
	default:
		hours := int(d.Hours())
		minutes := int(d.Minutes()) - hours*60
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}

// BinPeriod infers the bucket size for outline decimation of a
// time-kind series: the true span divided by the target point count,
// snapped to millisecond resolution when the average sample spacing
// is at or below 100ms, to whole seconds otherwise. Never less than
// one unit of the chosen resolution.
func BinPeriod(span time.Duration, points, target int) time.Duration {
	if target <= 0 || points <= 0 {
		return time.Second
	}
	period := span / time.Duration(target)
	avgSpacing := span / time.Duration(points)
	if avgSpacing <= 100*time.Millisecond {
		period = period.Truncate(time.Millisecond)
		if period < time.Millisecond {
			period = time.Millisecond
		}
		return period
	}
	period = period.Truncate(time.Second)
	if period < time.Second {
		period = time.Second
	}
	return period
}
