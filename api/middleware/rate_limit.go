package middleware

import (
	"net/http"
	"time"

	"github.com/kolade-dev/vendorhub-backend/api/responses"
	pkgerrors "github.com/kolade-dev/vendorhub-backend/pkg/errors"
	"github.com/kolade-dev/vendorhub-backend/pkg/logger"
	pkgredis "github.com/kolade-dev/vendorhub-backend/pkg/redis"
)

// RateLimit enforces a fixed-window request budget per merchant. Requests
// without merchant context share an anonymous bucket keyed by remote address.
func RateLimit(client *pkgredis.Client, limit int64, window time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			scope := MerchantIDFromContext(r.Context())
			if scope == "" {
				scope = "anon|" + r.RemoteAddr
			}

			allowed, _, err := client.FixedWindowAllow(r.Context(), scope, limit, window)
			if err != nil {
				// fail open on redis errors
				if logg != nil {
					logg.Error(r.Context(), "rate limit check failed", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
