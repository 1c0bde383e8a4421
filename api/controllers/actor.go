package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/khullasher1256-hash/Evercart/api/middleware"
	pkgerrors "github.com/khullasher1256-hash/Evercart/pkg/errors"
)

// currentUserID resolves the authenticated account id seeded by the auth
// middleware. Handlers behind that middleware should always find one.
func currentUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}
