package response

// CaptureSummary is the terminal result of one capture batch run. It is
// returned verbatim to the scheduler.
type CaptureSummary struct {
	Success           bool   `json:"success"`
	BookingsProcessed int    `json:"bookingsProcessed"`
	PaymentsProcessed int    `json:"paymentsProcessed"`
	EmailsSent        int    `json:"emailsSent"`
	Errors            int    `json:"errors"`
	Message           string `json:"message"`
}

// PayoutSummary is the terminal result of one payout batch run.
type PayoutSummary struct {
	Success           bool   `json:"success"`
	BookingsProcessed int    `json:"bookingsProcessed"`
	PayoutsProcessed  int    `json:"payoutsProcessed"`
	EmailsSent        int    `json:"emailsSent"`
	Errors            int    `json:"errors"`
	Message           string `json:"message"`
}
