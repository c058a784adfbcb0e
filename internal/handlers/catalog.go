package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/foodgram-api/internal/dto"
	"github.com/yukikurage/foodgram-api/internal/services"
)

// TagHandler serves recipe tags.
type TagHandler struct {
	tagService *services.TagService
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTagDTOs(tags))
}

func (h *TagHandler) GetTag(c *gin.Context) {
	tagID, ok := pathID(c, "Тэг не найден")
	if !ok {
		return
	}

	tag, err := h.tagService.Get(tagID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTagDTO(*tag))
}

// CreateTag is restricted to staff.
func (h *TagHandler) CreateTag(c *gin.Context) {
	type CreateTagRequest struct {
		Name  string `json:"name" binding:"required,max=200"`
		Color string `json:"color" binding:"required,hexcolor,len=7"`
		Slug  string `json:"slug" binding:"required,max=200,slug"`
	}

	var req CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.Create(services.CreateTagInput{
		Name:  req.Name,
		Color: req.Color,
		Slug:  req.Slug,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTagDTO(*tag))
}

// IngredientHandler serves the ingredient catalogue.
type IngredientHandler struct {
	ingredientService *services.IngredientService
}

func NewIngredientHandler(ingredientService *services.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// ListIngredients supports ?name= as a case-insensitive prefix search.
func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.ingredientService.List(c.Query("name"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIngredientDTOs(ingredients))
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	ingredientID, ok := pathID(c, "Ингредиент не найден")
	if !ok {
		return
	}

	ingredient, err := h.ingredientService.Get(ingredientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToIngredientDTO(*ingredient))
}

// CreateIngredient is restricted to staff.
func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	type CreateIngredientRequest struct {
		Name            string `json:"name" binding:"required,max=200"`
		MeasurementUnit string `json:"measurement_unit" binding:"required,max=200"`
	}

	var req CreateIngredientRequest
	if !bindJSON(c, &req) {
		return
	}

	ingredient, err := h.ingredientService.Create(services.CreateIngredientInput{
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToIngredientDTO(*ingredient))
}
