package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tienda-backend/models"
)

// OwnerResolver looks up the owning-user id of a resource, fetching only the
// owner column. Returns gorm.ErrRecordNotFound when the id does not resolve.
type OwnerResolver func(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

// Authorizer decides whether a caller may access a resource owned by
// another user.
type Authorizer interface {
	CanAccess(subjectID uuid.UUID, role string, ownerID uuid.UUID) bool
}

// RoleAuthorizer allows admins everywhere and everyone on their own
// resources.
type RoleAuthorizer struct{}

func (RoleAuthorizer) CanAccess(subjectID uuid.UUID, role string, ownerID uuid.UUID) bool {
	return role == models.RoleAdmin || subjectID == ownerID
}

// CheckOwnership resolves the owner of the resource named by the :id route
// parameter and rejects callers the authorizer does not allow. Runs after
// Authenticate.
func CheckOwnership(auth Authorizer, resolve OwnerResolver) gin.HandlerFunc {
	return CheckOwnershipParam(auth, resolve, "id")
}

// CheckOwnershipParam is CheckOwnership with a configurable route parameter.
func CheckOwnershipParam(auth Authorizer, resolve OwnerResolver, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resourceID, err := uuid.Parse(c.Param(param))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		ownerID, err := resolve(c.Request.Context(), resourceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify ownership"})
			return
		}

		if !auth.CanAccess(CallerID(c), CallerRole(c), ownerID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have access to this resource"})
			return
		}
		c.Next()
	}
}
