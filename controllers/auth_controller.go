package controllers

import (
	"net/http"
	"strconv"

	"catalog-service/middleware"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the registration request body. Name is accepted but
// not persisted; accounts are identified by email only.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

// AuthController handles authentication requests.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates a new AuthController.
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login handles POST /auth/login
func (ac *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	resp, svcErr := ac.auth.Login(ctx.Request.Context(), req.Email, req.Password)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Register handles POST /auth/register
func (ac *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	resp, svcErr := ac.auth.Register(ctx.Request.Context(), req.Email, req.Password)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// Me handles GET /auth/me
func (ac *AuthController) Me(ctx *gin.Context) {
	sub := ctx.GetString(middleware.UserIDContextKey)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	profile, svcErr := ac.auth.Profile(ctx.Request.Context(), uint(id))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, profile)
}
