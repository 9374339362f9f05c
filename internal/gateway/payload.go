package gateway

// Typed payload contracts for the FM Portal gateway. The gateway returns one
// consolidated JSON document per dashboard fetch with three sections:
// metrics, charts and lists. Shapes are decoded strictly at this boundary so
// the rest of the application never touches raw JSON.

// DashboardPayload is the consolidated dashboard document.
type DashboardPayload struct {
	Metrics MetricsPayload `json:"metrics"`
	Charts  ChartsPayload  `json:"charts"`
	Lists   ListsPayload   `json:"lists"`
}

// CountPoint is one time-series point of a count-valued KPI.
type CountPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// DurationPoint is one time-series point of a duration-valued KPI. Value is
// a human-readable duration string such as "3.5 days" or "12h".
type DurationPoint struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// CountMetric is a count-valued KPI sub-object. PercentageChange is nil when
// the upstream system could not compute it (zero previous-period baseline).
type CountMetric struct {
	Total            float64      `json:"total"`
	PreviousTotal    float64      `json:"previousTotal,omitempty"`
	PercentageChange *float64     `json:"percentageChange"`
	Data             []CountPoint `json:"data"`
}

// DurationMetric is a duration-valued KPI sub-object (average completion
// times). Its total and point values are duration strings.
type DurationMetric struct {
	Total            string          `json:"total"`
	PercentageChange *float64        `json:"percentageChange"`
	Data             []DurationPoint `json:"data"`
}

// MetricsPayload carries the six tracked KPIs.
type MetricsPayload struct {
	CasesCreated                   CountMetric    `json:"casesCreated"`
	CasesClosed                    CountMetric    `json:"casesClosed"`
	WorkOrdersCreated              CountMetric    `json:"workOrdersCreated"`
	WorkOrdersClosed               CountMetric    `json:"workOrdersClosed"`
	AverageCaseCompletionTime      DurationMetric `json:"averageCaseCompletionTime"`
	AverageWorkOrderCompletionTime DurationMetric `json:"averageWorkOrderCompletionTime"`
}

// ChartItem is one category item of a breakdown chart.
type ChartItem struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ChartsPayload carries the open-work-order breakdowns. The status chart is
// keyed by status group name (pending, scheduled, onHold, inProgress); the
// priority chart is a flat item list.
type ChartsPayload struct {
	OpenWorkOrdersByStatus   map[string][]ChartItem `json:"openWorkOrdersByStatus"`
	OpenWorkOrdersByPriority []ChartItem            `json:"openWorkOrdersByPriority"`
}

// WorkOrderItem is one raw work-order summary in a list section.
type WorkOrderItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
	Description string `json:"description"`
}

// WorkOrderListPayload is one named list section. Either list may be absent
// from the document entirely.
type WorkOrderListPayload struct {
	Count int             `json:"count"`
	Data  []WorkOrderItem `json:"data"`
}

// ListsPayload carries the ranked work-order lists.
type ListsPayload struct {
	WorkOrdersDueToday           *WorkOrderListPayload `json:"workOrdersDueToday"`
	WorkOrdersCompletedYesterday *WorkOrderListPayload `json:"workOrdersCompletedYesterday"`
}

// CentrePayload is one centre record as served by the gateway.
type CentrePayload struct {
	ID         int              `json:"id"`
	Attributes CentreAttributes `json:"attributes"`
}

// CentreAttributes holds the nested centre fields.
type CentreAttributes struct {
	Name string `json:"name"`
}
