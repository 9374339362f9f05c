package domain

import (
	"time"
)

// CentreSelectionKind distinguishes the three filter states a centre
// selection can be in. A zero-value CentreSelection is Unset.
type CentreSelectionKind int

const (
	// CentreUnset means no centre has been chosen yet. The dashboard must
	// not fetch while the selection is unset.
	CentreUnset CentreSelectionKind = iota
	// CentreAll is the synthetic "all centres" aggregate. Requests built
	// from it omit the centre filter entirely.
	CentreAll
	// CentreSpecific filters the dashboard to a single centre.
	CentreSpecific
)

// CentreSelection is the centre filter of the dashboard.
type CentreSelection struct {
	kind CentreSelectionKind
	id   int
}

// UnsetCentre returns the not-yet-chosen selection.
func UnsetCentre() CentreSelection {
	return CentreSelection{kind: CentreUnset}
}

// AllCentres returns the aggregate "all centres" selection.
func AllCentres() CentreSelection {
	return CentreSelection{kind: CentreAll}
}

// SpecificCentre returns a selection filtering to one centre.
// An id of 0 is treated as the "all centres" aggregate.
func SpecificCentre(id int) CentreSelection {
	if id == 0 {
		return AllCentres()
	}
	return CentreSelection{kind: CentreSpecific, id: id}
}

// Kind returns which of the three states the selection is in.
func (c CentreSelection) Kind() CentreSelectionKind { return c.kind }

// IsSet reports whether a centre (specific or all) has been chosen.
func (c CentreSelection) IsSet() bool { return c.kind != CentreUnset }

// CentreID returns the selected centre id and true when the selection is
// specific. For Unset and All it returns (0, false).
func (c CentreSelection) CentreID() (int, bool) {
	if c.kind != CentreSpecific {
		return 0, false
	}
	return c.id, true
}

// Equal compares two selections by value.
func (c CentreSelection) Equal(other CentreSelection) bool {
	return c.kind == other.kind && c.id == other.id
}

// DateRange is a pair of inclusive date boundaries. Either side may be nil
// (no boundary). When both are set, Start precedes or equals End; the
// date-range selector enforces this by auto-correction.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Equal compares two ranges by instant, treating nil as a distinct value.
func (r DateRange) Equal(other DateRange) bool {
	return timePtrEqual(r.Start, other.Start) && timePtrEqual(r.End, other.End)
}

// IsComplete reports whether both boundaries are set.
func (r DateRange) IsComplete() bool {
	return r.Start != nil && r.End != nil
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// DashboardFilterState is the aggregate filter that determines whether a
// re-fetch is required. Two states are equal iff centre selection and both
// date boundaries are equal by value.
type DashboardFilterState struct {
	Centre CentreSelection
	Range  DateRange
}

// Equal compares two filter states by value.
func (f DashboardFilterState) Equal(other DashboardFilterState) bool {
	return f.Centre.Equal(other.Centre) && f.Range.Equal(other.Range)
}

// MetricPoint is one plotted point of a KPI time series.
type MetricPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// MetricSeries is a count-valued KPI: a total, the previous comparable
// period's total, a formatted trend and the plotted points.
type MetricSeries struct {
	Total            float64       `json:"total"`
	PreviousTotal    float64       `json:"previousTotal"`
	PercentageChange string        `json:"percentageChange"`
	Points           []MetricPoint `json:"points"`
}

// DurationSeries is a duration-valued KPI (average completion times). The
// total stays a human-readable string such as "3.5 days"; only the plotted
// points carry parsed numeric values.
type DurationSeries struct {
	Total            string        `json:"total"`
	PercentageChange string        `json:"percentageChange"`
	Points           []MetricPoint `json:"points"`
}

// BreakdownSlice is one segment of a status or priority donut chart.
type BreakdownSlice struct {
	ID         int     `json:"id"`
	Label      string  `json:"label"`
	Value      int     `json:"value"`
	Color      string  `json:"color"`
	Percentage float64 `json:"percentage"`
}

// WorkOrderListEntry is one ranked work-order summary in a dashboard panel.
type WorkOrderListEntry struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
	Description string `json:"description"`
}

// WorkOrderList is a named, dated collection of work-order summaries, e.g.
// "due today" or "completed yesterday". It is always well-formed: an absent
// upstream list yields an empty Entries slice, never nil.
type WorkOrderList struct {
	Name    string               `json:"name"`
	Date    string               `json:"date"`
	Count   int                  `json:"count"`
	Entries []WorkOrderListEntry `json:"entries"`
}

// Centre is a physical site the dashboard can filter by.
type Centre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
