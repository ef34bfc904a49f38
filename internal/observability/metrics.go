package observability

const (
	MUsecaseRequests     MetricKey = "usecase_requests_total"
	MUsecaseDuration     MetricKey = "usecase_duration_seconds"
	MHTTPRequests        MetricKey = "http_requests_total"
	MHTTPRequestDuration MetricKey = "http_request_duration_seconds"
	MEventsHandled       MetricKey = "events_handled_total"
	MSalesAmount         MetricKey = "sales_amount_total"
	MRestockCost         MetricKey = "restock_cost_total"
)
