package daterange

import "time"

// Shortcut is a named, precomputed date range offered for one-click
// selection. Ranges are computed relative to "now" at invocation time and
// returned already normalized.
type Shortcut string

const (
	ShortcutToday       Shortcut = "today"
	ShortcutYesterday   Shortcut = "yesterday"
	ShortcutLast7Days   Shortcut = "last7days"
	ShortcutLast30Days  Shortcut = "last30days"
	ShortcutThisMonth   Shortcut = "thisMonth"
	ShortcutLastMonth   Shortcut = "lastMonth"
	ShortcutLast3Months Shortcut = "last3Months"
	ShortcutLast6Months Shortcut = "last6Months"
)

// ParseShortcut maps a wire name to a Shortcut.
func ParseShortcut(name string) (Shortcut, bool) {
	switch Shortcut(name) {
	case ShortcutToday, ShortcutYesterday, ShortcutLast7Days, ShortcutLast30Days,
		ShortcutThisMonth, ShortcutLastMonth, ShortcutLast3Months, ShortcutLast6Months:
		return Shortcut(name), true
	}
	return "", false
}

// Range computes the normalized (start, end) pair for the shortcut.
func (s Shortcut) Range(now time.Time) (time.Time, time.Time) {
	switch s {
	case ShortcutToday:
		return StartOfDay(now), EndOfDay(now)
	case ShortcutYesterday:
		y := now.AddDate(0, 0, -1)
		return StartOfDay(y), EndOfDay(y)
	case ShortcutLast30Days:
		return StartOfDay(now.AddDate(0, 0, -29)), EndOfDay(now)
	case ShortcutThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first, EndOfDay(now)
	case ShortcutLastMonth:
		firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		lastOfPrev := firstOfThis.AddDate(0, 0, -1)
		return StartOfDay(firstOfThis.AddDate(0, -1, 0)), EndOfDay(lastOfPrev)
	case ShortcutLast3Months:
		return StartOfDay(now.AddDate(0, -3, 0)), EndOfDay(now)
	case ShortcutLast6Months:
		return StartOfDay(now.AddDate(0, -6, 0)), EndOfDay(now)
	default:
		// Last 7 days: [today-6, today] inclusive
		return StartOfDay(now.AddDate(0, 0, -6)), EndOfDay(now)
	}
}
