package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/foodgram-api/internal/constants"
	"github.com/yukikurage/foodgram-api/internal/dto"
	apierrors "github.com/yukikurage/foodgram-api/internal/errors"
	"github.com/yukikurage/foodgram-api/internal/middleware"
	"github.com/yukikurage/foodgram-api/internal/services"
	"github.com/yukikurage/foodgram-api/internal/utils"
)

// RecipeHandler serves recipes and the shopping list download.
type RecipeHandler struct {
	recipeService *services.RecipeService
	imageURL      dto.ImageURLFunc
}

func NewRecipeHandler(recipeService *services.RecipeService, imageURL dto.ImageURLFunc) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		imageURL:      imageURL,
	}
}

type recipeIngredientRequest struct {
	ID     uint64 `json:"id"`
	Amount int    `json:"amount"`
}

// RecipeRequest is the body of recipe create and update.
type RecipeRequest struct {
	Ingredients []recipeIngredientRequest `json:"ingredients"`
	Tags        []uint64                  `json:"tags"`
	Image       string                    `json:"image"`
	Name        string                    `json:"name" binding:"required,max=200"`
	Text        string                    `json:"text" binding:"required,max=5000"`
	CookingTime int                       `json:"cooking_time"`
}

func (r RecipeRequest) toInput() services.RecipeInput {
	ingredients := make([]services.IngredientAmount, len(r.Ingredients))
	for i, item := range r.Ingredients {
		ingredients[i] = services.IngredientAmount{ID: item.ID, Amount: item.Amount}
	}
	return services.RecipeInput{
		Name:        r.Name,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		Image:       r.Image,
		Ingredients: ingredients,
		Tags:        r.Tags,
	}
}

// ListRecipes supports author, repeated tags, is_favorited and is_in_shopping_cart.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	input := services.RecipeListInput{
		TagSlugs:         c.QueryArray("tags"),
		IsFavorited:      utils.GetBoolFlag(c, constants.QueryIsFavorited),
		IsInShoppingCart: utils.GetBoolFlag(c, constants.QueryIsInShoppingCart),
	}
	if author := c.Query("author"); author != "" {
		authorID, ok := utils.ParseID(author)
		if !ok {
			apierrors.ValidationError(c, "author", "Некорректный идентификатор автора")
			return
		}
		input.AuthorID = &authorID
	}

	views, err := h.recipeService.List(input, middleware.ViewerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRecipeDTOs(views, h.imageURL))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, ok := pathID(c, "Рецепт не найден")
	if !ok {
		return
	}

	view, err := h.recipeService.Get(recipeID, middleware.ViewerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRecipeDTO(*view, h.imageURL))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req RecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.recipeService.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToRecipeDTO(*view, h.imageURL))
}

// UpdateRecipe replaces the recipe. Runs behind RequireRecipeAuthor.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	recipe, ok := middleware.GetRecipe(c)
	if !ok {
		apierrors.NotFound(c, "Рецепт не найден")
		return
	}

	var req RecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.recipeService.Update(c.Request.Context(), recipe, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRecipeDTO(*view, h.imageURL))
}

// DeleteRecipe runs behind RequireRecipeAuthor.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	recipe, ok := middleware.GetRecipe(c)
	if !ok {
		apierrors.NotFound(c, "Рецепт не найден")
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), recipe); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart sends the summed cart ingredients as a text attachment.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	text, err := h.recipeService.ShoppingList(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, constants.ShoppingListFilename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
