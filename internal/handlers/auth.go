package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/foodgram-api/internal/constants"
	"github.com/yukikurage/foodgram-api/internal/dto"
	apierrors "github.com/yukikurage/foodgram-api/internal/errors"
	"github.com/yukikurage/foodgram-api/internal/logging"
	"github.com/yukikurage/foodgram-api/internal/middleware"
	"github.com/yukikurage/foodgram-api/internal/services"
)

// AuthHandler coordinates registration, session and password handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup registers a new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Email     string `json:"email" binding:"required,email,max=254"`
		Username  string `json:"username" binding:"required,max=150,username"`
		FirstName string `json:"first_name" binding:"required,max=150"`
		LastName  string `json:"last_name" binding:"required,max=150"`
		Password  string `json:"password" binding:"required"`
	}

	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSignupDTO(*user))
}

// Login authenticates a user by email and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	logging.FromContext(c.Request.Context()).Info("user logged in", "user_id", user.ID)
	c.JSON(http.StatusOK, dto.ToUserDTO(*user, false))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.Status(http.StatusNoContent)
}

// SetPassword changes the password of the authenticated user.
func (h *AuthHandler) SetPassword(c *gin.Context) {
	type SetPasswordRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req SetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.SetPassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondAuthError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.ValidationError(c, "password", fmt.Sprintf("Пароль должен содержать не менее %d символов", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.AlreadyExists(c, "email", "Пользователь с таким email уже существует")
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.AlreadyExists(c, "username", "Пользователь с таким именем уже существует")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrInvalidCurrentPassword):
		apierrors.ValidationError(c, "current_password", "Неверный пароль")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "Пользователь не найден")
	default:
		logging.FromContext(c.Request.Context()).Error("auth request failed", "error", err)
		apierrors.InternalError(c, "")
	}
}
