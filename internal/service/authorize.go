// Package service implements business rules on top of the repository layer.
package service

import (
	"eventify/internal/models"
)

// RequireOwner is the single write-authorization decision. Reads are public
// and never pass through here. An anonymous viewer is Unauthenticated; a
// signed-in viewer who does not own the record is Forbidden.
func RequireOwner(viewerID uint, rec models.Owned) error {
	if viewerID == 0 {
		return models.NewUnauthenticatedError("Authentication required")
	}
	if rec.OwnerUserID() != viewerID {
		return models.NewForbiddenError("You do not own this resource")
	}
	return nil
}
