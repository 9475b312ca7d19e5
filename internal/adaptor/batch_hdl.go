package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

type BatchHandler struct {
	capture usecase.CaptureService
	payout  usecase.PayoutService
	log     *zap.Logger
}

func NewBatchHandler(capture usecase.CaptureService, payout usecase.PayoutService, log *zap.Logger) *BatchHandler {
	return &BatchHandler{
		capture: capture,
		payout:  payout,
		log:     log.With(zap.String("handler", "batch")),
	}
}

// CapturePayments handles POST /api/cron/capture-payments (cron secret)
func (h *BatchHandler) CapturePayments(w http.ResponseWriter, r *http.Request) {
	summary, err := h.capture.Run(r.Context(), time.Now())
	if err != nil {
		h.log.Error("Capture batch fetch failed", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to fetch eligible bookings")
		return
	}

	writeSummary(w, summary.Success, summary)
}

// ProcessPayouts handles POST /api/cron/process-payouts (cron secret)
func (h *BatchHandler) ProcessPayouts(w http.ResponseWriter, r *http.Request) {
	summary, err := h.payout.Run(r.Context(), time.Now())
	if err != nil {
		h.log.Error("Payout batch fetch failed", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to fetch eligible bookings")
		return
	}

	writeSummary(w, summary.Success, summary)
}

// CaptureAllPayments handles POST /api/admin/batch/capture-payments (admin).
// The manual trigger ignores the scheduling window so an operator can
// recover from missed runs.
func (h *BatchHandler) CaptureAllPayments(w http.ResponseWriter, r *http.Request) {
	summary, err := h.capture.RunAll(r.Context())
	if err != nil {
		h.log.Error("Manual capture batch fetch failed", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to fetch eligible bookings")
		return
	}

	writeSummary(w, summary.Success, summary)
}

// ProcessAllPayouts handles POST /api/admin/batch/process-payouts (admin)
func (h *BatchHandler) ProcessAllPayouts(w http.ResponseWriter, r *http.Request) {
	summary, err := h.payout.RunAll(r.Context())
	if err != nil {
		h.log.Error("Manual payout batch fetch failed", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to fetch eligible bookings")
		return
	}

	writeSummary(w, summary.Success, summary)
}

// writeSummary writes the flat summary body the scheduler contract expects:
// 200 when every booking processed cleanly, 207 when some failed.
func writeSummary(w http.ResponseWriter, success bool, summary any) {
	code := http.StatusOK
	if !success {
		code = http.StatusMultiStatus
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(summary)
}
