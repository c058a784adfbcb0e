package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/foodgram-api/internal/errors"
	"github.com/yukikurage/foodgram-api/internal/logging"
	"github.com/yukikurage/foodgram-api/internal/services"
	"github.com/yukikurage/foodgram-api/internal/utils"
	"github.com/yukikurage/foodgram-api/internal/validation"
)

// bindJSON binds the body and answers 400 itself when it cannot.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if details, ok := validation.FieldErrors(err); ok {
			apierrors.BadRequestWithDetails(c, "Invalid request body", details)
		} else {
			apierrors.BadRequest(c, "Invalid request body")
		}
		return false
	}
	return true
}

// pathID parses the :id parameter; a malformed id answers 404 like a missing object.
func pathID(c *gin.Context, notFoundMessage string) (uint64, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		apierrors.NotFound(c, notFoundMessage)
		return 0, false
	}
	return id, true
}

func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationError(c, verr.Field, verr.Message)
	case errors.Is(err, services.ErrIngredientNotFound):
		apierrors.NotFound(c, "Ингредиент не найден")
	case errors.Is(err, services.ErrRecipeNotFound):
		apierrors.NotFound(c, "Рецепт не найден")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "Пользователь не найден")
	case errors.Is(err, services.ErrTagNotFound):
		apierrors.NotFound(c, "Тэг не найден")
	case errors.Is(err, services.ErrAlreadyBookmarked):
		apierrors.AlreadyExists(c, "errors", services.MsgAlreadyBookmarked)
	case errors.Is(err, services.ErrNotBookmarked):
		apierrors.ValidationError(c, "errors", services.MsgNotBookmarked)
	case errors.Is(err, services.ErrSelfSubscription):
		apierrors.ValidationError(c, "errors", services.MsgSelfSubscription)
	case errors.Is(err, services.ErrAlreadySubscribed):
		apierrors.AlreadyExists(c, "errors", services.MsgAlreadySubscribed)
	case errors.Is(err, services.ErrNotSubscribed):
		apierrors.ValidationError(c, "errors", services.MsgNotSubscribed)
	case errors.Is(err, services.ErrTagExists):
		apierrors.AlreadyExists(c, "name", "Тэг с таким названием, цветом или слагом уже существует")
	case errors.Is(err, services.ErrIngredientExists):
		apierrors.AlreadyExists(c, "name", "Такой ингредиент с этой единицей измерения уже существует")
	default:
		logging.FromContext(c.Request.Context()).Error("request failed", "error", err)
		apierrors.InternalError(c, "")
	}
}
