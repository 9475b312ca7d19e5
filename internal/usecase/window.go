package usecase

import "time"

// captureWindow returns the [from, to) range of start times eligible for
// capture. With the default 24h lead and 6h span, a run at 12:00 picks up
// bookings starting between 12:00 and 18:00 tomorrow. The span deliberately
// overlaps the run cadence so a missed run cannot permanently skip a
// booking; the payment_captured_at guard keeps the overlap harmless.
func captureWindow(now time.Time, lead, span time.Duration) (time.Time, time.Time) {
	from := now.Add(lead)
	return from, from.Add(span)
}
