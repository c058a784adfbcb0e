package dto

import (
	"github.com/yukikurage/foodgram-api/internal/models"
	"github.com/yukikurage/foodgram-api/internal/services"
)

// UserDTO represents a user as seen by the requester
type UserDTO struct {
	ID           uint64 `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// SignupDTO is returned after registration
type SignupDTO struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SubscriptionDTO is a followed author with a preview of their recipes
type SubscriptionDTO struct {
	UserDTO
	Recipes      []RecipeShortDTO `json:"recipes"`
	RecipesCount int64            `json:"recipes_count"`
}

func ToUserDTO(user models.User, isSubscribed bool) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

func ToSignupDTO(user models.User) SignupDTO {
	return SignupDTO{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func ToUserDTOs(views []services.UserView) []UserDTO {
	dtos := make([]UserDTO, len(views))
	for i, view := range views {
		dtos[i] = ToUserDTO(view.User, view.IsSubscribed)
	}
	return dtos
}

// ToSubscriptionDTO composes the user representation with the recipe preview
func ToSubscriptionDTO(view services.SubscriptionView, imageURL ImageURLFunc) SubscriptionDTO {
	recipes := make([]RecipeShortDTO, len(view.Recipes))
	for i, recipe := range view.Recipes {
		recipes[i] = ToRecipeShortDTO(recipe, imageURL)
	}

	return SubscriptionDTO{
		UserDTO:      ToUserDTO(view.User, view.IsSubscribed),
		Recipes:      recipes,
		RecipesCount: view.RecipesCount,
	}
}

func ToSubscriptionDTOs(views []services.SubscriptionView, imageURL ImageURLFunc) []SubscriptionDTO {
	dtos := make([]SubscriptionDTO, len(views))
	for i, view := range views {
		dtos[i] = ToSubscriptionDTO(view, imageURL)
	}
	return dtos
}
