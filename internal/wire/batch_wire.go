package wire

import (
	"salon-booking/internal/adaptor"
	"salon-booking/internal/data/repository"
	"salon-booking/pkg/middleware"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBatch(
	r chi.Router,
	batchHandler *adaptor.BatchHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== SCHEDULER ROUTES (shared secret) ====================
	r.Route("/api/cron", func(r chi.Router) {
		r.Use(middleware.CronSecret(config.Cron.Secret, log))

		// POST /api/cron/capture-payments - windowed capture batch
		r.Post("/capture-payments", batchHandler.CapturePayments)

		// POST /api/cron/process-payouts - payout batch
		r.Post("/process-payouts", batchHandler.ProcessPayouts)
	})

	// ==================== ADMIN ROUTES (manual triggers) ====================
	r.Route("/api/admin/batch", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.Profile, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/batch/capture-payments - no scheduling window
		r.Post("/capture-payments", batchHandler.CaptureAllPayments)

		// POST /api/admin/batch/process-payouts
		r.Post("/process-payouts", batchHandler.ProcessAllPayouts)
	})
}
