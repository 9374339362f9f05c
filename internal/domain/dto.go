package domain

// DTOs for the dashboard API responses.

// LoadingFlagsDTO mirrors the per-category loading state of the store.
type LoadingFlagsDTO struct {
	Charts             bool `json:"charts"`
	PriorityWorkOrders bool `json:"priorityWorkOrders"`
	StatusWorkOrders   bool `json:"statusWorkOrders"`
	WorkOrderLists     bool `json:"workOrderLists"`
	Centres            bool `json:"centres"`
}

// DashboardMetricsDTO groups the six tracked KPI series.
type DashboardMetricsDTO struct {
	CasesCreated                   MetricSeries   `json:"casesCreated"`
	CasesClosed                    MetricSeries   `json:"casesClosed"`
	WorkOrdersCreated              MetricSeries   `json:"workOrdersCreated"`
	WorkOrdersClosed               MetricSeries   `json:"workOrdersClosed"`
	AverageCaseCompletionTime      DurationSeries `json:"averageCaseCompletionTime"`
	AverageWorkOrderCompletionTime DurationSeries `json:"averageWorkOrderCompletionTime"`
}

// DashboardSnapshotDTO is the full derived dashboard state served to
// consumers: active filter, loading flags and every derived view-model.
type DashboardSnapshotDTO struct {
	SelectedCentreID  int                 `json:"selectedCentreId"`
	CentreSelected    bool                `json:"centreSelected"`
	StartDate         *string             `json:"startDate"`
	EndDate           *string             `json:"endDate"`
	Loading           LoadingFlagsDTO     `json:"loading"`
	IsError           bool                `json:"isError"`
	Metrics           DashboardMetricsDTO `json:"metrics"`
	StatusBreakdown   []BreakdownSlice    `json:"statusBreakdown"`
	PriorityBreakdown []BreakdownSlice    `json:"priorityBreakdown"`
	DueToday          WorkOrderList       `json:"workOrdersDueToday"`
	CompletedYest     WorkOrderList       `json:"workOrdersCompletedYesterday"`
}

// UpdateFiltersRequest changes the active dashboard filter. CentreID 0
// selects the "all centres" aggregate. Dates are ISO 8601 (date or
// date-time); omitting both clears the range per the configured policy.
type UpdateFiltersRequest struct {
	CentreID  *int    `json:"centreId" validate:"omitempty,gte=0"`
	StartDate *string `json:"startDate" validate:"omitempty"`
	EndDate   *string `json:"endDate" validate:"omitempty"`
	Shortcut  *string `json:"shortcut" validate:"omitempty,oneof=today yesterday last7days last30days thisMonth lastMonth last3Months last6Months"`
	// Clear resets the date range per the configured clear policy.
	Clear bool `json:"clear,omitempty"`
}

// FilterBoundsDTO describes the selectable date window and the available
// shortcut presets.
type FilterBoundsDTO struct {
	MinDate   *string  `json:"minDate"`
	MaxDate   string   `json:"maxDate"`
	Shortcuts []string `json:"shortcuts"`
}

// CentreListResponse wraps the centre list for API consumers.
type CentreListResponse struct {
	Centres []Centre `json:"centres"`
	Total   int      `json:"total"`
}
