package dto

import (
	"github.com/yukikurage/foodgram-api/internal/models"
	"github.com/yukikurage/foodgram-api/internal/services"
)

// ImageURLFunc resolves a stored image key to a public URL
type ImageURLFunc func(key string) string

// RecipeIngredientDTO flattens an ingredient line of a recipe
type RecipeIngredientDTO struct {
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeDTO represents a recipe with the requester's derived flags
type RecipeDTO struct {
	ID               uint64                `json:"id"`
	Tags             []TagDTO              `json:"tags"`
	Author           UserDTO               `json:"author"`
	Ingredients      []RecipeIngredientDTO `json:"ingredients"`
	IsFavorited      bool                  `json:"is_favorited"`
	IsInShoppingCart bool                  `json:"is_in_shopping_cart"`
	Name             string                `json:"name"`
	Image            string                `json:"image"`
	Text             string                `json:"text"`
	CookingTime      int                   `json:"cooking_time"`
}

// RecipeShortDTO is the compact form used in bookmarks and subscriptions
type RecipeShortDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func ToRecipeDTO(view services.RecipeView, imageURL ImageURLFunc) RecipeDTO {
	recipe := view.Recipe

	tags := make([]TagDTO, len(recipe.Tags))
	for i, tag := range recipe.Tags {
		tags[i] = ToTagDTO(tag.Tag)
	}

	ingredients := make([]RecipeIngredientDTO, len(recipe.Ingredients))
	for i, item := range recipe.Ingredients {
		ingredients[i] = RecipeIngredientDTO{
			ID:              item.IngredientID,
			Name:            item.Ingredient.Name,
			MeasurementUnit: item.Ingredient.MeasurementUnit,
			Amount:          item.Amount,
		}
	}

	return RecipeDTO{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           ToUserDTO(recipe.Author, view.AuthorSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      view.IsFavorited,
		IsInShoppingCart: view.IsInShoppingCart,
		Name:             recipe.Name,
		Image:            imageURL(recipe.Image),
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

func ToRecipeDTOs(views []services.RecipeView, imageURL ImageURLFunc) []RecipeDTO {
	dtos := make([]RecipeDTO, len(views))
	for i, view := range views {
		dtos[i] = ToRecipeDTO(view, imageURL)
	}
	return dtos
}

func ToRecipeShortDTO(recipe models.Recipe, imageURL ImageURLFunc) RecipeShortDTO {
	return RecipeShortDTO{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       imageURL(recipe.Image),
		CookingTime: recipe.CookingTime,
	}
}
