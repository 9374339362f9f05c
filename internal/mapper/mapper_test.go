package mapper_test

import (
	"testing"
	"time"

	"github.com/hashimpk07/FMPortal-sub002/internal/gateway"
	"github.com/hashimpk07/FMPortal-sub002/internal/mapper"
	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestDeriveChangeUsesUpstreamVerbatim(t *testing.T) {
	assert.Equal(t, "+12.5%", mapper.DeriveChange(10, 8, floatPtr(12.5)))
	assert.Equal(t, "-20%", mapper.DeriveChange(4, 5, floatPtr(-20)))
	assert.Equal(t, "+0%", mapper.DeriveChange(5, 5, floatPtr(0)))
}

func TestDeriveChangeSynthesizedFromTotals(t *testing.T) {
	// Zero previous-period baseline
	assert.Equal(t, "0%", mapper.DeriveChange(0, 0, nil))
	assert.Equal(t, "+100%", mapper.DeriveChange(5, 0, nil))
	assert.Equal(t, "-100%", mapper.DeriveChange(-5, 0, nil))

	// Regular derivation, rounded to whole percent
	assert.Equal(t, "+50%", mapper.DeriveChange(60, 40, nil))
	assert.Equal(t, "-25%", mapper.DeriveChange(30, 40, nil))
	assert.Equal(t, "+33%", mapper.DeriveChange(4, 3, nil))
}

func TestDeriveDurationChangeDefaultsWhenMissing(t *testing.T) {
	assert.Equal(t, "+100%", mapper.DeriveDurationChange(nil))
	assert.Equal(t, "-7%", mapper.DeriveDurationChange(floatPtr(-7)))
}

func TestFormatPercentageChange(t *testing.T) {
	assert.Equal(t, "+0%", mapper.FormatPercentageChange(0))
	assert.Equal(t, "+42%", mapper.FormatPercentageChange(42))
	assert.Equal(t, "-13.4%", mapper.FormatPercentageChange(-13.4))
}

func TestParseLeadingFloat(t *testing.T) {
	assert.Equal(t, 3.5, mapper.ParseLeadingFloat("3.5 days"))
	assert.Equal(t, 12.0, mapper.ParseLeadingFloat("12h"))
	assert.Equal(t, 0.75, mapper.ParseLeadingFloat("  0.75 days"))
	assert.Equal(t, 0.0, mapper.ParseLeadingFloat("n/a"))
	assert.Equal(t, 0.0, mapper.ParseLeadingFloat(""))
}

func TestToMetricSeriesSortsPoints(t *testing.T) {
	series := mapper.ToMetricSeries(gateway.CountMetric{
		Total:         10,
		PreviousTotal: 5,
		Data: []gateway.CountPoint{
			{Date: "2026-08-03", Value: 4},
			{Date: "2026-08-01", Value: 2},
			{Date: "2026-08-02", Value: 4},
		},
	})

	assert.Equal(t, 10.0, series.Total)
	assert.Equal(t, 5.0, series.PreviousTotal)
	assert.Equal(t, "+100%", series.PercentageChange)
	assert.Len(t, series.Points, 3)
	assert.Equal(t, "2026-08-01", series.Points[0].Date)
	assert.Equal(t, "2026-08-02", series.Points[1].Date)
	assert.Equal(t, "2026-08-03", series.Points[2].Date)
}

func TestToDurationSeriesParsesPointValues(t *testing.T) {
	series := mapper.ToDurationSeries(gateway.DurationMetric{
		Total:            "3.5 days",
		PercentageChange: floatPtr(-10),
		Data: []gateway.DurationPoint{
			{Date: "2026-08-01", Value: "2 days"},
			{Date: "2026-08-02", Value: "4.5 days"},
		},
	})

	assert.Equal(t, "3.5 days", series.Total)
	assert.Equal(t, "-10%", series.PercentageChange)
	assert.Equal(t, 2.0, series.Points[0].Value)
	assert.Equal(t, 4.5, series.Points[1].Value)
}

func TestToStatusBreakdownColorsByGroup(t *testing.T) {
	slices := mapper.ToStatusBreakdown(map[string][]gateway.ChartItem{
		"pending":    {{ID: 1, Name: "Awaiting triage", Count: 30}},
		"inProgress": {{ID: 2, Name: "Being worked", Count: 70}},
	})

	assert.Len(t, slices, 2)
	// Sorted by group name: inProgress before pending
	assert.Equal(t, "Being worked", slices[0].Label)
	assert.Equal(t, "#43a047", slices[0].Color)
	assert.Equal(t, 70.0, slices[0].Percentage)
	assert.Equal(t, "Awaiting triage", slices[1].Label)
	assert.Equal(t, "#ffb300", slices[1].Color)
	assert.Equal(t, 30.0, slices[1].Percentage)
}

func TestToStatusBreakdownUnknownGroupFallsBack(t *testing.T) {
	slices := mapper.ToStatusBreakdown(map[string][]gateway.ChartItem{
		"archived": {{ID: 9, Name: "Archived", Count: 5}},
	})

	assert.Equal(t, "#9e9e9e", slices[0].Color)
}

func TestToPriorityBreakdownColorsByName(t *testing.T) {
	slices := mapper.ToPriorityBreakdown([]gateway.ChartItem{
		{ID: 1, Name: "Critical", Count: 1},
		{ID: 2, Name: "HIGH", Count: 1},
		{ID: 3, Name: "medium", Count: 1},
		{ID: 4, Name: "Unknown", Count: 1},
	})

	assert.Equal(t, "#d32f2f", slices[0].Color)
	assert.Equal(t, "#f57c00", slices[1].Color)
	assert.Equal(t, "#fbc02d", slices[2].Color)
	assert.Equal(t, "#9e9e9e", slices[3].Color)
}

func TestAnnotatePercentagesRoundsIndependently(t *testing.T) {
	slices := mapper.ToPriorityBreakdown([]gateway.ChartItem{
		{ID: 1, Name: "High", Count: 1},
		{ID: 2, Name: "Medium", Count: 1},
		{ID: 3, Name: "Low", Count: 1},
	})

	assert.Equal(t, 33.3, slices[0].Percentage)
	assert.Equal(t, 33.3, slices[1].Percentage)
	assert.Equal(t, 33.3, slices[2].Percentage)
}

func TestAnnotatePercentagesEmptyAndZeroSum(t *testing.T) {
	assert.Empty(t, mapper.ToPriorityBreakdown(nil))

	slices := mapper.ToPriorityBreakdown([]gateway.ChartItem{
		{ID: 1, Name: "High", Count: 0},
	})
	assert.Equal(t, 0.0, slices[0].Percentage)
}

func TestToWorkOrderListNilPayload(t *testing.T) {
	date := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	list := mapper.ToWorkOrderList("workOrdersDueToday", date, nil)

	assert.Equal(t, "workOrdersDueToday", list.Name)
	assert.Equal(t, "29 Aug 2026", list.Date)
	assert.Equal(t, 0, list.Count)
	assert.NotNil(t, list.Entries)
	assert.Empty(t, list.Entries)
}

func TestToWorkOrderListMapsEntries(t *testing.T) {
	date := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	list := mapper.ToWorkOrderList("workOrdersDueToday", date, &gateway.WorkOrderListPayload{
		Count: 12,
		Data: []gateway.WorkOrderItem{
			{ID: 1, Title: "Replace HVAC filter", Status: "pending", DueDate: "2026-08-29", Description: "Unit 4B"},
			{ID: 2, Title: "", Status: "inProgress", DueDate: "not-a-date"},
		},
	})

	assert.Equal(t, 12, list.Count)
	assert.Len(t, list.Entries, 2)
	assert.Equal(t, "Replace HVAC filter", list.Entries[0].Title)
	assert.Equal(t, "29 Aug 2026", list.Entries[0].DueDate)
	assert.Equal(t, "Untitled work order", list.Entries[1].Title)
	assert.Equal(t, "not-a-date", list.Entries[1].DueDate)
}
