package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"tienda-backend/middleware"
)

func ownershipRouter(resolve middleware.OwnerResolver, callerID uuid.UUID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, callerID)
		c.Set(middleware.RoleKey, role)
	})
	r.GET("/resource/:id", middleware.CheckOwnership(middleware.RoleAuthorizer{}, resolve), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestCheckOwnership_OwnerAllowed(t *testing.T) {
	owner := uuid.New()
	resolve := func(_ context.Context, _ uuid.UUID) (uuid.UUID, error) { return owner, nil }
	r := ownershipRouter(resolve, owner, "client")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckOwnership_ForeignUserForbidden(t *testing.T) {
	resolve := func(_ context.Context, _ uuid.UUID) (uuid.UUID, error) { return uuid.New(), nil }
	r := ownershipRouter(resolve, uuid.New(), "client")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCheckOwnership_AdminBypass(t *testing.T) {
	resolve := func(_ context.Context, _ uuid.UUID) (uuid.UUID, error) { return uuid.New(), nil }
	r := ownershipRouter(resolve, uuid.New(), "admin")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckOwnership_MissingResource(t *testing.T) {
	resolve := func(_ context.Context, _ uuid.UUID) (uuid.UUID, error) {
		return uuid.Nil, gorm.ErrRecordNotFound
	}
	r := ownershipRouter(resolve, uuid.New(), "client")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckOwnership_BadID(t *testing.T) {
	resolve := func(_ context.Context, _ uuid.UUID) (uuid.UUID, error) { return uuid.New(), nil }
	r := ownershipRouter(resolve, uuid.New(), "admin")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
