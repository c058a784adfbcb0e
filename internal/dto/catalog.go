package dto

import "github.com/yukikurage/foodgram-api/internal/models"

type TagDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type IngredientDTO struct {
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func ToTagDTO(tag models.Tag) TagDTO {
	return TagDTO{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

func ToTagDTOs(tags []models.Tag) []TagDTO {
	dtos := make([]TagDTO, len(tags))
	for i, tag := range tags {
		dtos[i] = ToTagDTO(tag)
	}
	return dtos
}

func ToIngredientDTO(ingredient models.Ingredient) IngredientDTO {
	return IngredientDTO{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

func ToIngredientDTOs(ingredients []models.Ingredient) []IngredientDTO {
	dtos := make([]IngredientDTO, len(ingredients))
	for i, ingredient := range ingredients {
		dtos[i] = ToIngredientDTO(ingredient)
	}
	return dtos
}
