package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

// CronSecret guards the scheduler-facing endpoints with a shared-secret
// bearer header.
func CronSecret(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(secret)) != 1 {
				logger.Warn("Cron trigger with invalid secret",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
				utils.ResponseUnauthorized(w, "Invalid cron secret")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
