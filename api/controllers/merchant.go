package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kolade-dev/vendorhub-backend/api/middleware"
	pkgerrors "github.com/kolade-dev/vendorhub-backend/pkg/errors"
)

// merchantFromRequest resolves the acting merchant placed in context by the
// MerchantContext middleware.
func merchantFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.MerchantIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "merchant context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid merchant id")
	}
	return id, nil
}
