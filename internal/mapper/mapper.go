// Package mapper converts the raw gateway payload into the typed dashboard
// view-models. All transforms are total: malformed values fall back to safe
// defaults instead of failing the whole payload.
package mapper

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hashimpk07/FMPortal-sub002/internal/domain"
	"github.com/hashimpk07/FMPortal-sub002/internal/gateway"
)

// listDateFormat is the display pattern for work-order list dates.
const listDateFormat = "02 Jan 2006"

// untitledWorkOrder is the placeholder for items missing a title.
const untitledWorkOrder = "Untitled work order"

const defaultSliceColor = "#9e9e9e"

// statusGroupColors keys on the status group name the item came from, not
// the item itself.
var statusGroupColors = map[string]string{
	"pending":    "#ffb300",
	"scheduled":  "#1e88e5",
	"onHold":     "#f4511e",
	"inProgress": "#43a047",
}

// priorityColors keys on the item's own name, matched case-insensitively.
var priorityColors = map[string]string{
	"critical": "#d32f2f",
	"high":     "#f57c00",
	"medium":   "#fbc02d",
	"low":      "#388e3c",
}

var leadingFloat = regexp.MustCompile(`^\s*([0-9]+(?:\.[0-9]+)?)`)

// ToMetricSeries converts a count-valued KPI: points are sorted by date and
// the trend is formatted, deriving it locally when the gateway could not.
func ToMetricSeries(m gateway.CountMetric) domain.MetricSeries {
	points := make([]domain.MetricPoint, len(m.Data))
	for i, p := range m.Data {
		points[i] = domain.MetricPoint{Date: p.Date, Value: p.Value}
	}
	sortPoints(points)

	return domain.MetricSeries{
		Total:            m.Total,
		PreviousTotal:    m.PreviousTotal,
		PercentageChange: DeriveChange(m.Total, m.PreviousTotal, m.PercentageChange),
		Points:           points,
	}
}

// ToDurationSeries converts a duration-valued KPI. Point values are
// duration strings; the numeric prefix becomes the plotted value.
func ToDurationSeries(m gateway.DurationMetric) domain.DurationSeries {
	points := make([]domain.MetricPoint, len(m.Data))
	for i, p := range m.Data {
		points[i] = domain.MetricPoint{Date: p.Date, Value: ParseLeadingFloat(p.Value)}
	}
	sortPoints(points)

	return domain.DurationSeries{
		Total:            m.Total,
		PercentageChange: DeriveDurationChange(m.PercentageChange),
		Points:           points,
	}
}

// ParseLeadingFloat extracts the numeric prefix of a duration string, e.g.
// "3.5 days" -> 3.5, "12h" -> 12. Strings with no leading digit parse to 0.
func ParseLeadingFloat(s string) float64 {
	match := leadingFloat.FindStringSubmatch(s)
	if match == nil {
		return 0
	}
	v, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	return v
}

// DeriveChange formats the percentage change for a count metric. A non-nil
// upstream value is used verbatim; otherwise the change is synthesized from
// the totals, with a zero previous-period baseline mapping to +/-100% (or
// 0% when nothing changed).
func DeriveChange(total, previousTotal float64, upstream *float64) string {
	if upstream != nil {
		return FormatPercentageChange(*upstream)
	}

	if previousTotal == 0 {
		switch {
		case total > 0:
			return "+100%"
		case total < 0:
			return "-100%"
		default:
			return "0%"
		}
	}

	change := math.Round((total - previousTotal) / math.Abs(previousTotal) * 100)
	return FormatPercentageChange(change)
}

// DeriveDurationChange formats the trend for a duration metric. Duration
// previous totals are not tracked numerically, so a null upstream value
// defaults to +100%.
func DeriveDurationChange(upstream *float64) string {
	if upstream == nil {
		return "+100%"
	}
	return FormatPercentageChange(*upstream)
}

// FormatPercentageChange renders a numeric change sign-prefixed, with "+"
// for non-negative values.
func FormatPercentageChange(v float64) string {
	formatted := strconv.FormatFloat(v, 'f', -1, 64)
	if v >= 0 {
		return "+" + formatted + "%"
	}
	return formatted + "%"
}

// ToStatusBreakdown flattens the status groups into one slice list. Colors
// key on the group name; unrecognized groups fall back to neutral gray.
// Groups are walked in sorted name order so output is deterministic.
func ToStatusBreakdown(groups map[string][]gateway.ChartItem) []domain.BreakdownSlice {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	slices := []domain.BreakdownSlice{}
	for _, name := range names {
		color, ok := statusGroupColors[name]
		if !ok {
			color = defaultSliceColor
		}
		for _, item := range groups[name] {
			slices = append(slices, domain.BreakdownSlice{
				ID:    item.ID,
				Label: item.Name,
				Value: item.Count,
				Color: color,
			})
		}
	}
	return AnnotatePercentages(slices)
}

// ToPriorityBreakdown maps the flat priority list. Colors key on the item's
// own name, case-insensitively, with the same gray fallback.
func ToPriorityBreakdown(items []gateway.ChartItem) []domain.BreakdownSlice {
	slices := make([]domain.BreakdownSlice, len(items))
	for i, item := range items {
		color, ok := priorityColors[strings.ToLower(item.Name)]
		if !ok {
			color = defaultSliceColor
		}
		slices[i] = domain.BreakdownSlice{
			ID:    item.ID,
			Label: item.Name,
			Value: item.Count,
			Color: color,
		}
	}
	return AnnotatePercentages(slices)
}

// AnnotatePercentages computes each slice's share of the total, rounded
// independently to one decimal. The rounded values may sum to 99.9 or
// 100.1. An empty list passes through untouched; no division occurs.
func AnnotatePercentages(slices []domain.BreakdownSlice) []domain.BreakdownSlice {
	if len(slices) == 0 {
		return slices
	}

	sum := 0
	for _, s := range slices {
		sum += s.Value
	}
	if sum == 0 {
		return slices
	}

	for i := range slices {
		slices[i].Percentage = math.Round(float64(slices[i].Value)/float64(sum)*1000) / 10
	}
	return slices
}

// ToWorkOrderList maps one raw list section to a named, dated list. A nil
// section yields an empty but well-formed list so consumers never need a
// nil check. Missing titles get a placeholder and dates are reformatted for
// display.
func ToWorkOrderList(name string, date time.Time, payload *gateway.WorkOrderListPayload) domain.WorkOrderList {
	list := domain.WorkOrderList{
		Name:    name,
		Date:    date.Format(listDateFormat),
		Entries: []domain.WorkOrderListEntry{},
	}
	if payload == nil {
		return list
	}

	list.Count = payload.Count
	for _, item := range payload.Data {
		title := item.Title
		if title == "" {
			title = untitledWorkOrder
		}
		list.Entries = append(list.Entries, domain.WorkOrderListEntry{
			ID:          item.ID,
			Title:       title,
			Status:      item.Status,
			DueDate:     formatListDate(item.DueDate),
			Description: item.Description,
		})
	}
	return list
}

// formatListDate reformats an ISO date or date-time to the list display
// pattern, keeping the raw value when it does not parse.
func formatListDate(raw string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(listDateFormat)
		}
	}
	return raw
}

// sortPoints orders a series chronologically. Upstream dates are ISO
// formatted, so lexicographic order is chronological order.
func sortPoints(points []domain.MetricPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
}
