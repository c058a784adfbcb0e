package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/foodgram-api/internal/constants"
	apierrors "github.com/yukikurage/foodgram-api/internal/errors"
	"github.com/yukikurage/foodgram-api/internal/models"
	"github.com/yukikurage/foodgram-api/internal/services"
	"github.com/yukikurage/foodgram-api/internal/utils"
)

// RequireRecipeAuthor loads the recipe named by the id parameter and lets
// only its author through. Must run after RequireAuth.
func RequireRecipeAuthor(recipeService *services.RecipeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipeID, ok := utils.ParseID(c.Param("id"))
		if !ok {
			apierrors.NotFound(c, "Рецепт не найден")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		recipe, err := recipeService.FindByID(recipeID)
		if err != nil {
			if errors.Is(err, services.ErrRecipeNotFound) {
				apierrors.NotFound(c, "Рецепт не найден")
			} else {
				apierrors.InternalError(c, "Failed to load recipe")
			}
			c.Abort()
			return
		}

		if recipe.AuthorID != userID {
			apierrors.Forbidden(c, "Изменять рецепт может только его автор")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyRecipe, recipe)
		c.Next()
	}
}

// GetRecipe returns the recipe loaded by RequireRecipeAuthor
func GetRecipe(c *gin.Context) (*models.Recipe, bool) {
	value, exists := c.Get(constants.ContextKeyRecipe)
	if !exists {
		return nil, false
	}
	recipe, ok := value.(*models.Recipe)
	return recipe, ok
}
