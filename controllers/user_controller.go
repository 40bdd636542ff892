package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tienda-backend/middleware"
	"tienda-backend/services"
)

// UserController handles registration, login and user CRUD.
type UserController struct {
	authService *services.AuthService
	authorizer  middleware.Authorizer
}

// NewUserController creates a new UserController.
func NewUserController(authService *services.AuthService, authorizer middleware.Authorizer) *UserController {
	return &UserController{authService: authService, authorizer: authorizer}
}

// Register handles POST /users/register. Public; role is always client.
func (uc *UserController) Register(ctx *gin.Context) {
	var req services.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	req.Role = ""

	user, svcErr := uc.authService.Register(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
}

// Login handles POST /users/login.
func (uc *UserController) Login(ctx *gin.Context) {
	var req services.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	token, user, svcErr := uc.authService.Login(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Create handles POST /users. Admin only; may assign any role.
func (uc *UserController) Create(ctx *gin.Context) {
	var req services.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, svcErr := uc.authService.Register(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
}

// List handles GET /users. Admin only.
func (uc *UserController) List(ctx *gin.Context) {
	users, svcErr := uc.authService.ListUsers(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// Get handles GET /users/:id. Callers may read themselves; admins anyone.
func (uc *UserController) Get(ctx *gin.Context) {
	id, ok := uc.authorizeSelf(ctx)
	if !ok {
		return
	}

	user, svcErr := uc.authService.GetUser(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// Update handles PUT /users/:id. Self or admin.
func (uc *UserController) Update(ctx *gin.Context) {
	id, ok := uc.authorizeSelf(ctx)
	if !ok {
		return
	}

	var upd services.UserUpdate
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, svcErr := uc.authService.UpdateUser(ctx.Request.Context(), id, upd)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:id. Self or admin.
func (uc *UserController) Delete(ctx *gin.Context) {
	id, ok := uc.authorizeSelf(ctx)
	if !ok {
		return
	}

	if svcErr := uc.authService.DeleteUser(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// authorizeSelf parses :id and verifies the caller is that user or an admin.
// For users the resource owner is the resource itself.
func (uc *UserController) authorizeSelf(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return uuid.Nil, false
	}
	if !uc.authorizer.CanAccess(middleware.CallerID(ctx), middleware.CallerRole(ctx), id) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return uuid.Nil, false
	}
	return id, true
}
