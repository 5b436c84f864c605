package usecase

import (
	"context"

	"patient-records-api/internal/delivery/http/middleware"
)

// actorFromContext resolves the acting user for audit rows. Returns nil
// when the request carried no authenticated identity.
func actorFromContext(ctx context.Context) (*uint, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, false
	}
	return &userID, true
}
