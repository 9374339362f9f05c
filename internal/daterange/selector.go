// Package daterange implements the dashboard date-range selector: it owns
// the pending start/end pair, normalizes every value to full-day inclusive
// boundaries and notifies the caller on each committed change and on accept.
package daterange

import (
	"time"
)

// ChangeFunc is invoked on every committed change with the normalized pair.
type ChangeFunc func(start, end *time.Time)

// AcceptFunc is invoked when a full pair is confirmed, a preset is chosen or
// the range is cleared with immediate reload intent.
type AcceptFunc func()

// Config holds the selector behaviour knobs.
type Config struct {
	// Start and End seed the selector; both nil triggers auto-init unless
	// suppressed.
	Start *time.Time
	End   *time.Time
	// MaxPastMonths bounds how far back selection is allowed; 0 means the
	// default of 6 months.
	MaxPastMonths int
	// DisableMinDateRestriction lifts the MaxPastMonths bound.
	DisableMinDateRestriction bool
	// DisableResetOnClear makes Clear empty both boundaries instead of
	// restoring the default last-7-days range.
	DisableResetOnClear bool
	// SuppressAutoInit skips the last-7-days initialization when both seed
	// dates are nil.
	SuppressAutoInit bool
}

const defaultMaxPastMonths = 6

// Selector owns the pending date pair until it is committed upward through
// the callbacks. It never returns errors: malformed input is corrected, and
// out-of-bounds values are ignored the way a bounded picker rejects them.
type Selector struct {
	cfg      Config
	start    *time.Time
	end      *time.Time
	onChange ChangeFunc
	onAccept AcceptFunc
	now      func() time.Time
}

// Option customizes selector construction.
type Option func(*Selector)

// WithClock injects a clock, used by tests to pin "now".
func WithClock(now func() time.Time) Option {
	return func(s *Selector) {
		s.now = now
	}
}

// New creates a selector. When both seed dates are nil and auto-init is not
// suppressed, it computes the last-7-days range and immediately fires both
// callbacks once so dependent data loads without a manual confirmation.
func New(cfg Config, onChange ChangeFunc, onAccept AcceptFunc, opts ...Option) *Selector {
	if cfg.MaxPastMonths <= 0 {
		cfg.MaxPastMonths = defaultMaxPastMonths
	}
	s := &Selector{
		cfg:      cfg,
		onChange: onChange,
		onAccept: onAccept,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.Start != nil {
		start := StartOfDay(*cfg.Start)
		s.start = &start
	}
	if cfg.End != nil {
		end := EndOfDay(*cfg.End)
		s.end = &end
	}

	if s.start == nil && s.end == nil && !cfg.SuppressAutoInit {
		s.setLastSevenDays()
		s.notifyChange()
		s.notifyAccept()
	}

	return s
}

// Start returns the pending start boundary.
func (s *Selector) Start() *time.Time { return s.start }

// End returns the pending end boundary.
func (s *Selector) End() *time.Time { return s.end }

// MinDate returns the earliest selectable instant, or nil when the past
// restriction is disabled.
func (s *Selector) MinDate() *time.Time {
	if s.cfg.DisableMinDateRestriction {
		return nil
	}
	min := StartOfDay(s.now().AddDate(0, -s.cfg.MaxPastMonths, 0))
	return &min
}

// MaxDate returns the latest selectable instant: today's end of day.
func (s *Selector) MaxDate() time.Time {
	return EndOfDay(s.now())
}

// SetStart commits a new start boundary. A nil value clears only the start.
// When the new start lands after an existing end, both boundaries collapse
// to that single day rather than forming an inverted range. Values outside
// the selectable window are ignored.
func (s *Selector) SetStart(t *time.Time) {
	if t == nil {
		s.start = nil
		s.notifyChange()
		return
	}

	start := StartOfDay(*t)
	if !s.inBounds(start) {
		return
	}

	if s.end != nil && start.After(*s.end) {
		s.collapseToDay(*t)
	} else {
		s.start = &start
	}
	s.notifyChange()
}

// SetEnd commits a new end boundary, with the symmetric collapse rule: an
// end preceding an existing start pulls both boundaries onto the new day.
func (s *Selector) SetEnd(t *time.Time) {
	if t == nil {
		s.end = nil
		s.notifyChange()
		return
	}

	end := EndOfDay(*t)
	if !s.inBounds(end) {
		return
	}

	if s.start != nil && end.Before(*s.start) {
		s.collapseToDay(*t)
	} else {
		s.end = &end
	}
	s.notifyChange()
}

// SetRange commits a full pair at once: normalized, chronologically ordered
// (an inverted pair is swapped) and accepted. A nil/nil pair is a clear.
// The pair is rejected whole: if either boundary is out of the selectable
// window, neither pending value changes.
func (s *Selector) SetRange(start, end *time.Time) {
	if start == nil && end == nil {
		s.Clear()
		return
	}

	if start != nil && end != nil && start.After(*end) {
		start, end = end, start
	}

	var newStart, newEnd *time.Time
	if start != nil {
		v := StartOfDay(*start)
		if !s.inBounds(v) {
			return
		}
		newStart = &v
	}
	if end != nil {
		v := EndOfDay(*end)
		if !s.inBounds(v) {
			return
		}
		newEnd = &v
	}

	s.start = newStart
	s.end = newEnd
	s.notifyChange()
	s.notifyAccept()
}

// Clear resets the range per the configured policy: back to the last seven
// days by default, or to an empty pair. Either way accept fires so dependent
// data reloads.
func (s *Selector) Clear() {
	if s.cfg.DisableResetOnClear {
		s.start = nil
		s.end = nil
	} else {
		s.setLastSevenDays()
	}
	s.notifyChange()
	s.notifyAccept()
}

// ApplyShortcut commits a named preset range, computed relative to now, and
// fires change plus accept.
func (s *Selector) ApplyShortcut(shortcut Shortcut) {
	start, end := shortcut.Range(s.now())
	if min := s.MinDate(); min != nil && start.Before(*min) {
		start = *min
	}
	s.start = &start
	s.end = &end
	s.notifyChange()
	s.notifyAccept()
}

// Accept confirms the current pair, e.g. when the user closes a picker
// popup.
func (s *Selector) Accept() {
	s.notifyAccept()
}

func (s *Selector) setLastSevenDays() {
	start, end := ShortcutLast7Days.Range(s.now())
	s.start = &start
	s.end = &end
}

// collapseToDay sets both boundaries onto one calendar day.
func (s *Selector) collapseToDay(t time.Time) {
	start := StartOfDay(t)
	end := EndOfDay(t)
	s.start = &start
	s.end = &end
}

func (s *Selector) inBounds(t time.Time) bool {
	if t.After(s.MaxDate()) {
		return false
	}
	if min := s.MinDate(); min != nil && t.Before(*min) {
		return false
	}
	return true
}

func (s *Selector) notifyChange() {
	if s.onChange != nil {
		s.onChange(s.start, s.end)
	}
}

func (s *Selector) notifyAccept() {
	if s.onAccept != nil {
		s.onAccept()
	}
}

// StartOfDay stamps t to local midnight, 00:00:00.000.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay stamps t to local end of day, 23:59:59.000.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
