package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kolade-dev/vendorhub-backend/api/responses"
	pkgerrors "github.com/kolade-dev/vendorhub-backend/pkg/errors"
	"github.com/kolade-dev/vendorhub-backend/pkg/logger"
)

const merchantIDHeader = "X-Merchant-Id"

// MerchantContext resolves the acting merchant from the X-Merchant-Id header
// and makes it available to downstream handlers.
func MerchantContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(merchantIDHeader))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "merchant context missing"))
				return
			}

			merchantID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid merchant id"))
				return
			}

			ctx := WithMerchantID(r.Context(), merchantID.String())
			if logg != nil {
				ctx = logg.WithMerchantID(ctx, merchantID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
