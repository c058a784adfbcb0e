package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/foodgram-api/internal/models"
	"github.com/yukikurage/foodgram-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTagNotFound        = errors.New("tag not found")
	ErrTagExists          = errors.New("tag with this name, color or slug already exists")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrIngredientExists   = errors.New("ingredient with this name and unit already exists")
)

// TagService manages the fixed set of recipe tags.
type TagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

type CreateTagInput struct {
	Name  string
	Color string
	Slug  string
}

func (s *TagService) Create(input CreateTagInput) (*models.Tag, error) {
	tag := &models.Tag{
		Name:  strings.TrimSpace(input.Name),
		Color: strings.ToUpper(input.Color),
		Slug:  input.Slug,
	}
	if err := s.tagRepo.Create(tag); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrTagExists
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

func (s *TagService) List() ([]models.Tag, error) {
	tags, err := s.tagRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

func (s *TagService) Get(id uint64) (*models.Tag, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return tag, nil
}

// IngredientService manages the ingredient catalogue.
type IngredientService struct {
	ingredientRepo repository.IngredientRepository
}

func NewIngredientService(ingredientRepo repository.IngredientRepository) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo}
}

type CreateIngredientInput struct {
	Name            string
	MeasurementUnit string
}

func (s *IngredientService) Create(input CreateIngredientInput) (*models.Ingredient, error) {
	ingredient := &models.Ingredient{
		Name:            strings.TrimSpace(input.Name),
		MeasurementUnit: strings.TrimSpace(input.MeasurementUnit),
	}
	if err := s.ingredientRepo.Create(ingredient); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrIngredientExists
		}
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return ingredient, nil
}

// List filters by a case-insensitive name prefix when one is given.
func (s *IngredientService) List(namePrefix string) ([]models.Ingredient, error) {
	ingredients, err := s.ingredientRepo.List(namePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

func (s *IngredientService) Get(id uint64) (*models.Ingredient, error) {
	ingredient, err := s.ingredientRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, fmt.Errorf("failed to find ingredient: %w", err)
	}
	return ingredient, nil
}
