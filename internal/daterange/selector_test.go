package daterange_test

import (
	"testing"
	"time"

	"github.com/hashimpk07/FMPortal-sub002/internal/daterange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is a Saturday morning used to pin every relative computation.
var fixedNow = time.Date(2026, 8, 29, 10, 30, 45, 123456789, time.UTC)

func fixedClock() time.Time { return fixedNow }

type recorder struct {
	changes int
	accepts int
	start   *time.Time
	end     *time.Time
}

func (r *recorder) onChange(start, end *time.Time) {
	r.changes++
	r.start = start
	r.end = end
}

func (r *recorder) onAccept() {
	r.accepts++
}

func newSelector(cfg daterange.Config, rec *recorder) *daterange.Selector {
	return daterange.New(cfg, rec.onChange, rec.onAccept, daterange.WithClock(fixedClock))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestAutoInitLastSevenDays(t *testing.T) {
	rec := &recorder{}
	s := newSelector(daterange.Config{}, rec)

	require.NotNil(t, s.Start())
	require.NotNil(t, s.End())
	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), *s.Start())
	assert.Equal(t, time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC), *s.End())

	// Both callbacks fire exactly once during initialization
	assert.Equal(t, 1, rec.changes)
	assert.Equal(t, 1, rec.accepts)
}

func TestSuppressAutoInit(t *testing.T) {
	rec := &recorder{}
	s := newSelector(daterange.Config{SuppressAutoInit: true}, rec)

	assert.Nil(t, s.Start())
	assert.Nil(t, s.End())
	assert.Equal(t, 0, rec.changes)
	assert.Equal(t, 0, rec.accepts)
}

func TestSeedDatesAreNormalized(t *testing.T) {
	start := day(2026, 8, 10)
	end := day(2026, 8, 20)
	rec := &recorder{}
	s := newSelector(daterange.Config{Start: &start, End: &end}, rec)

	assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), *s.Start())
	assert.Equal(t, time.Date(2026, 8, 20, 23, 59, 59, 0, time.UTC), *s.End())
	assert.Equal(t, 0, rec.changes)
}

func TestSetStartAfterEndCollapsesToDay(t *testing.T) {
	start := day(2026, 8, 10)
	end := day(2026, 8, 15)
	rec := &recorder{}
	s := newSelector(daterange.Config{Start: &start, End: &end}, rec)

	newStart := day(2026, 8, 20)
	s.SetStart(&newStart)

	assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), *s.Start())
	assert.Equal(t, time.Date(2026, 8, 20, 23, 59, 59, 0, time.UTC), *s.End())
	assert.Equal(t, 1, rec.changes)
	assert.Equal(t, 0, rec.accepts)
}

func TestSetEndBeforeStartCollapsesToDay(t *testing.T) {
	start := day(2026, 8, 15)
	end := day(2026, 8, 20)
	rec := &recorder{}
	s := newSelector(daterange.Config{Start: &start, End: &end}, rec)

	newEnd := day(2026, 8, 10)
	s.SetEnd(&newEnd)

	assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), *s.Start())
	assert.Equal(t, time.Date(2026, 8, 10, 23, 59, 59, 0, time.UTC), *s.End())
}

func TestSetStartNilClearsOnlyStart(t *testing.T) {
	start := day(2026, 8, 10)
	end := day(2026, 8, 20)
	rec := &recorder{}
	s := newSelector(daterange.Config{Start: &start, End: &end}, rec)

	s.SetStart(nil)

	assert.Nil(t, s.Start())
	require.NotNil(t, s.End())
	assert.Equal(t, 1, rec.changes)
}

func TestOutOfBoundsValuesAreIgnored(t *testing.T) {
	rec := &recorder{}
	s := newSelector(daterange.Config{SuppressAutoInit: true, MaxPastMonths: 6}, rec)

	future := day(2026, 9, 15)
	s.SetStart(&future)
	assert.Nil(t, s.Start())

	tooOld := day(2025, 8, 1)
	s.SetEnd(&tooOld)
	assert.Nil(t, s.End())

	assert.Equal(t, 0, rec.changes)
}

func TestDisableMinDateRestriction(t *testing.T) {
	rec := &recorder{}
	s := newSelector(daterange.Config{
		SuppressAutoInit:          true,
		DisableMinDateRestriction: true,
	}, rec)

	assert.Nil(t, s.MinDate())

	ancient := day(2020, 1, 1)
	s.SetStart(&ancient)
	require.NotNil(t, s.Start())
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), *s.Start())
}

func TestSetRangeSwapsInvertedPair(t *testing.T) {
	rec := &recorder{}
	s := newSelector(daterange.Config{SuppressAutoInit: true}, rec)

	later := day(2026, 8, 20)
	earlier := day(2026, 8, 10)
	s.SetRange(&later, &earlier)

	assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), *s.Start())
	assert.Equal(t, time.Date(2026, 8, 20, 23, 59, 59, 0, time.UTC), *s.End())
	assert.Equal(t, 1, rec.changes)
	assert.Equal(t, 1, rec.accepts)
}

func TestSetRangeRejectsPairWithOutOfWindowEnd(t *testing.T) {
	start := day(2026, 8, 1)
	end := day(2026, 8, 5)
	rec := &recorder{}
	s := newSelector(daterange.Config{Start: &start, End: &end}, rec)

	// Valid start, future end: the whole pair is rejected and the
	// pending range stays untouched and ordered.
	newStart := day(2026, 8, 10)
	badEnd := day(2027, 1, 1)
	s.SetRange(&newStart, &badEnd)

	require.NotNil(t, s.Start())
	require.NotNil(t, s.End())
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *s.Start())
	assert.Equal(t, time.Date(2026, 8, 5, 23, 59, 59, 0, time.UTC), *s.End())
	assert.False(t, s.Start().After(*s.End()))
	assert.Equal(t, 0, rec.changes)
	assert.Equal(t, 0, rec.accepts)
}

func TestSetRangeRejectsPairWithOutOfWindowStart(t *testing.T) {
	start := day(2026, 8, 1)
	end := day(2026, 8, 5)
	rec := &recorder{}
	s := newSelector(daterange.Config{Start: &start, End: &end}, rec)

	badStart := day(2025, 1, 1)
	newEnd := day(2026, 8, 20)
	s.SetRange(&badStart, &newEnd)

	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *s.Start())
	assert.Equal(t, time.Date(2026, 8, 5, 23, 59, 59, 0, time.UTC), *s.End())
	assert.Equal(t, 0, rec.changes)
}

func TestSetRangeNilPairActsAsClear(t *testing.T) {
	rec := &recorder{}
	s := newSelector(daterange.Config{
		SuppressAutoInit: true,
	}, rec)

	s.SetRange(nil, nil)

	require.NotNil(t, s.Start())
	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), *s.Start())
	assert.Equal(t, 1, rec.accepts)
}

func TestClearPolicyEmptiesRange(t *testing.T) {
	start := day(2026, 8, 10)
	end := day(2026, 8, 20)
	rec := &recorder{}
	s := newSelector(daterange.Config{
		Start:               &start,
		End:                 &end,
		DisableResetOnClear: true,
	}, rec)

	s.Clear()

	assert.Nil(t, s.Start())
	assert.Nil(t, s.End())
	assert.Equal(t, 1, rec.changes)
	assert.Equal(t, 1, rec.accepts)
}

func TestClearResetsToLastSevenDaysByDefault(t *testing.T) {
	start := day(2026, 8, 10)
	end := day(2026, 8, 20)
	rec := &recorder{}
	// Zero-value policy: clear restores the default range
	s := newSelector(daterange.Config{Start: &start, End: &end}, rec)

	s.Clear()

	require.NotNil(t, s.Start())
	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), *s.Start())
	assert.Equal(t, time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC), *s.End())
}

func TestApplyShortcutClampsToMinDate(t *testing.T) {
	rec := &recorder{}
	s := newSelector(daterange.Config{
		SuppressAutoInit: true,
		MaxPastMonths:    3,
	}, rec)

	s.ApplyShortcut(daterange.ShortcutLast6Months)

	require.NotNil(t, s.Start())
	// Six months back exceeds the three-month window, so the start clamps
	assert.Equal(t, time.Date(2026, 5, 29, 0, 0, 0, 0, time.UTC), *s.Start())
	assert.Equal(t, 1, rec.accepts)
}

func TestShortcutRanges(t *testing.T) {
	start, end := daterange.ShortcutToday.Range(fixedNow)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC), end)

	start, end = daterange.ShortcutYesterday.Range(fixedNow)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 28, 23, 59, 59, 0, time.UTC), end)

	start, _ = daterange.ShortcutLast30Days.Range(fixedNow)
	assert.Equal(t, time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC), start)

	start, end = daterange.ShortcutThisMonth.Range(fixedNow)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 29, 23, 59, 59, 0, time.UTC), end)

	start, end = daterange.ShortcutLastMonth.Range(fixedNow)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC), end)
}

func TestParseShortcut(t *testing.T) {
	sc, ok := daterange.ParseShortcut("last30days")
	assert.True(t, ok)
	assert.Equal(t, daterange.ShortcutLast30Days, sc)

	_, ok = daterange.ParseShortcut("fortnight")
	assert.False(t, ok)
}

func TestNormalizationIsIdempotent(t *testing.T) {
	v := day(2026, 8, 15)
	once := daterange.StartOfDay(v)
	assert.Equal(t, once, daterange.StartOfDay(once))

	onceEnd := daterange.EndOfDay(v)
	assert.Equal(t, onceEnd, daterange.EndOfDay(onceEnd))
	assert.Equal(t, 0, onceEnd.Nanosecond())
}

func TestAcceptFiresCallbackOnly(t *testing.T) {
	rec := &recorder{}
	s := newSelector(daterange.Config{SuppressAutoInit: true}, rec)

	s.Accept()

	assert.Equal(t, 0, rec.changes)
	assert.Equal(t, 1, rec.accepts)
}
