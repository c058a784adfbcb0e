package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/foodgram-api/internal/dto"
	apierrors "github.com/yukikurage/foodgram-api/internal/errors"
	"github.com/yukikurage/foodgram-api/internal/middleware"
	"github.com/yukikurage/foodgram-api/internal/services"
)

// BookmarkHandler adds and removes recipes from favorites or the shopping cart,
// depending on the service it is built with.
type BookmarkHandler struct {
	bookmarkService *services.BookmarkService
	imageURL        dto.ImageURLFunc
}

func NewBookmarkHandler(bookmarkService *services.BookmarkService, imageURL dto.ImageURLFunc) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkService: bookmarkService,
		imageURL:        imageURL,
	}
}

func (h *BookmarkHandler) Add(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	recipeID, ok := pathID(c, "Рецепт не найден")
	if !ok {
		return
	}

	recipe, err := h.bookmarkService.Add(userID, recipeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToRecipeShortDTO(*recipe, h.imageURL))
}

func (h *BookmarkHandler) Remove(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	recipeID, ok := pathID(c, "Рецепт не найден")
	if !ok {
		return
	}

	if err := h.bookmarkService.Remove(userID, recipeID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
