package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/foodgram-api/internal/dto"
	apierrors "github.com/yukikurage/foodgram-api/internal/errors"
	"github.com/yukikurage/foodgram-api/internal/middleware"
	"github.com/yukikurage/foodgram-api/internal/services"
	"github.com/yukikurage/foodgram-api/internal/utils"
)

// SubscriptionHandler manages following authors.
type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
	imageURL            dto.ImageURLFunc
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService, imageURL dto.ImageURLFunc) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		imageURL:            imageURL,
	}
}

// ListSubscriptions honours ?recipes_limit= for the recipe preview.
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	views, err := h.subscriptionService.List(userID, utils.GetRecipesLimit(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionDTOs(views, h.imageURL))
}

func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	authorID, ok := pathID(c, "Пользователь не найден")
	if !ok {
		return
	}

	view, err := h.subscriptionService.Subscribe(userID, authorID, utils.GetRecipesLimit(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSubscriptionDTO(*view, h.imageURL))
}

func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	authorID, ok := pathID(c, "Пользователь не найден")
	if !ok {
		return
	}

	if err := h.subscriptionService.Unsubscribe(userID, authorID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
