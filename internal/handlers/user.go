package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/foodgram-api/internal/dto"
	apierrors "github.com/yukikurage/foodgram-api/internal/errors"
	"github.com/yukikurage/foodgram-api/internal/middleware"
	"github.com/yukikurage/foodgram-api/internal/services"
)

// UserHandler serves user profiles.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	views, err := h.userService.List(middleware.ViewerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(views))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := pathID(c, "Пользователь не найден")
	if !ok {
		return
	}

	view, err := h.userService.Get(userID, middleware.ViewerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(view.User, view.IsSubscribed))
}

// GetCurrentUser returns the authenticated user.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	view, err := h.userService.Get(userID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(view.User, view.IsSubscribed))
}
