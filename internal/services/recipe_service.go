package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/foodgram-api/internal/constants"
	"github.com/yukikurage/foodgram-api/internal/logging"
	"github.com/yukikurage/foodgram-api/internal/models"
	"github.com/yukikurage/foodgram-api/internal/repository"
	"github.com/yukikurage/foodgram-api/internal/storage"
	"gorm.io/gorm"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// Messages returned to clients for rejected recipe writes.
const (
	MsgNoIngredients       = "Нужен хоть один ингредиент для рецепта"
	MsgInvalidAmount       = "Неверно указано количество"
	MsgDuplicateIngredient = "Ингредиенты не должны дублироваться"
	MsgNoTags              = "Нужен хоть один тэг для рецепта"
	MsgDuplicateTag        = "Тэг не должен повторяться"
	MsgUnknownTag          = "Недопустимый первичный ключ \"%d\" - объект не существует."
	MsgCookingTimeTooShort = "Время приготовления должно быть не меньше 1 минуты"
	MsgNoImage             = "Нет изображения"
	MsgInvalidImage        = "Загруженный файл не является корректным изображением."
)

// ValidationError rejects a recipe write because of one request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IngredientAmount is one requested ingredient line of a recipe.
type IngredientAmount struct {
	ID     uint64
	Amount int
}

// RecipeInput carries a recipe write. Image is base64 and may be empty on update.
type RecipeInput struct {
	Name        string
	Text        string
	CookingTime int
	Image       string
	Ingredients []IngredientAmount
	Tags        []uint64
}

// RecipeListInput filters the recipe list. The bookmark flags only apply
// to authenticated viewers.
type RecipeListInput struct {
	AuthorID         *uint64
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
}

// RecipeView is a recipe with the flags derived for the requester.
type RecipeView struct {
	Recipe           models.Recipe
	AuthorSubscribed bool
	IsFavorited      bool
	IsInShoppingCart bool
}

// RecipeService handles recipe writes and reads. A viewerID of 0 means an
// anonymous requester.
type RecipeService struct {
	recipeRepo       repository.RecipeRepository
	ingredientRepo   repository.IngredientRepository
	tagRepo          repository.TagRepository
	favoriteRepo     repository.BookmarkRepository
	cartRepo         repository.BookmarkRepository
	subscriptionRepo repository.SubscriptionRepository
	images           storage.Store
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	tagRepo repository.TagRepository,
	favoriteRepo repository.BookmarkRepository,
	cartRepo repository.BookmarkRepository,
	subscriptionRepo repository.SubscriptionRepository,
	images storage.Store,
) *RecipeService {
	return &RecipeService{
		recipeRepo:       recipeRepo,
		ingredientRepo:   ingredientRepo,
		tagRepo:          tagRepo,
		favoriteRepo:     favoriteRepo,
		cartRepo:         cartRepo,
		subscriptionRepo: subscriptionRepo,
		images:           images,
	}
}

// validate checks a write in a fixed order and stops at the first problem.
// It returns the decoded image when one was supplied.
func (s *RecipeService) validate(input RecipeInput, requireImage bool) (*storage.Image, error) {
	if len(input.Ingredients) == 0 {
		return nil, invalid("ingredients", MsgNoIngredients)
	}

	requestedIngredients := make([]uint64, len(input.Ingredients))
	for i, item := range input.Ingredients {
		requestedIngredients[i] = item.ID
	}
	known, err := s.ingredientRepo.FindByIDs(uniqueUint64(requestedIngredients))
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}
	knownIngredients := make(map[uint64]struct{}, len(known))
	for _, ingredient := range known {
		knownIngredients[ingredient.ID] = struct{}{}
	}

	seenIngredients := make(map[uint64]struct{}, len(input.Ingredients))
	for _, item := range input.Ingredients {
		if _, ok := knownIngredients[item.ID]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrIngredientNotFound, item.ID)
		}
		if item.Amount < constants.MinIngredientAmount {
			return nil, invalid("ingredients", MsgInvalidAmount)
		}
		if _, ok := seenIngredients[item.ID]; ok {
			return nil, invalid("ingredients", MsgDuplicateIngredient)
		}
		seenIngredients[item.ID] = struct{}{}
	}

	if len(input.Tags) == 0 {
		return nil, invalid("tags", MsgNoTags)
	}
	seenTags := make(map[uint64]struct{}, len(input.Tags))
	for _, id := range input.Tags {
		if _, ok := seenTags[id]; ok {
			return nil, invalid("tags", MsgDuplicateTag)
		}
		seenTags[id] = struct{}{}
	}
	tags, err := s.tagRepo.FindByIDs(input.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	if len(tags) != len(input.Tags) {
		knownTags := make(map[uint64]struct{}, len(tags))
		for _, tag := range tags {
			knownTags[tag.ID] = struct{}{}
		}
		for _, id := range input.Tags {
			if _, ok := knownTags[id]; !ok {
				return nil, invalid("tags", fmt.Sprintf(MsgUnknownTag, id))
			}
		}
	}

	if input.CookingTime < constants.MinCookingTime {
		return nil, invalid("cooking_time", MsgCookingTimeTooShort)
	}

	if strings.TrimSpace(input.Image) == "" {
		if requireImage {
			return nil, invalid("image", MsgNoImage)
		}
		return nil, nil
	}
	img, err := storage.DecodeBase64Image(input.Image)
	if err != nil {
		return nil, invalid("image", MsgInvalidImage)
	}
	return img, nil
}

func ingredientRows(items []IngredientAmount) []models.RecipeIngredient {
	rows := make([]models.RecipeIngredient, len(items))
	for i, item := range items {
		rows[i] = models.RecipeIngredient{IngredientID: item.ID, Amount: item.Amount}
	}
	return rows
}

// Create validates the write, stores the image and persists the recipe with
// its ingredient and tag rows atomically.
func (s *RecipeService) Create(ctx context.Context, authorID uint64, input RecipeInput) (*RecipeView, error) {
	img, err := s.validate(input, true)
	if err != nil {
		return nil, err
	}

	key := storage.NewObjectKey(img)
	if err := s.images.Save(ctx, key, img); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        strings.TrimSpace(input.Name),
		Image:       key,
		Text:        input.Text,
		CookingTime: input.CookingTime,
	}
	if err := s.recipeRepo.Create(recipe, ingredientRows(input.Ingredients), input.Tags); err != nil {
		s.discardImage(ctx, key)
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	logging.FromContext(ctx).Info("recipe created", "recipe_id", recipe.ID, "author_id", authorID)
	return s.Get(recipe.ID, authorID)
}

// Update validates the write the same way as Create and replaces both the
// ingredient and tag sets. The stored image is kept when none is supplied.
func (s *RecipeService) Update(ctx context.Context, recipe *models.Recipe, input RecipeInput) (*RecipeView, error) {
	img, err := s.validate(input, false)
	if err != nil {
		return nil, err
	}

	oldKey := recipe.Image
	if img != nil {
		key := storage.NewObjectKey(img)
		if err := s.images.Save(ctx, key, img); err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		recipe.Image = key
	}

	recipe.Name = strings.TrimSpace(input.Name)
	recipe.Text = input.Text
	recipe.CookingTime = input.CookingTime

	if err := s.recipeRepo.Update(recipe, ingredientRows(input.Ingredients), input.Tags); err != nil {
		if img != nil {
			s.discardImage(ctx, recipe.Image)
			recipe.Image = oldKey
		}
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	if img != nil {
		s.discardImage(ctx, oldKey)
	}

	return s.Get(recipe.ID, recipe.AuthorID)
}

func (s *RecipeService) Delete(ctx context.Context, recipe *models.Recipe) error {
	if err := s.recipeRepo.Delete(recipe.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	s.discardImage(ctx, recipe.Image)
	return nil
}

// discardImage removes an image that is no longer referenced; failures
// only leave an orphaned file behind.
func (s *RecipeService) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		logging.FromContext(ctx).Warn("failed to delete image", "key", key, "error", err)
	}
}

// FindByID loads the recipe without requester-specific flags.
func (s *RecipeService) FindByID(id uint64) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}
	return recipe, nil
}

func (s *RecipeService) Get(id, viewerID uint64) (*RecipeView, error) {
	recipe, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	views, err := s.viewsFor([]models.Recipe{*recipe}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *RecipeService) List(input RecipeListInput, viewerID uint64) ([]RecipeView, error) {
	filter := repository.RecipeFilter{
		AuthorID: input.AuthorID,
		TagSlugs: input.TagSlugs,
	}
	if viewerID != 0 {
		if input.IsFavorited {
			filter.FavoritedBy = &viewerID
		}
		if input.IsInShoppingCart {
			filter.InCartOf = &viewerID
		}
	}

	recipes, err := s.recipeRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return s.viewsFor(recipes, viewerID)
}

func (s *RecipeService) viewsFor(recipes []models.Recipe, viewerID uint64) ([]RecipeView, error) {
	views := make([]RecipeView, len(recipes))
	for i, recipe := range recipes {
		views[i] = RecipeView{Recipe: recipe}
	}
	if viewerID == 0 || len(recipes) == 0 {
		return views, nil
	}

	recipeIDs := make([]uint64, len(recipes))
	authorIDs := make([]uint64, len(recipes))
	for i, recipe := range recipes {
		recipeIDs[i] = recipe.ID
		authorIDs[i] = recipe.AuthorID
	}

	favorited, err := s.favoriteRepo.RecipeIDs(viewerID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	inCart, err := s.cartRepo.RecipeIDs(viewerID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load shopping cart: %w", err)
	}
	subscribed, err := subscribedAuthors(s.subscriptionRepo, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	for i := range views {
		views[i].IsFavorited = favorited[views[i].Recipe.ID]
		views[i].IsInShoppingCart = inCart[views[i].Recipe.ID]
		views[i].AuthorSubscribed = subscribed[views[i].Recipe.AuthorID]
	}
	return views, nil
}

// ShoppingList renders the summed ingredients of the user's cart as text.
func (s *RecipeService) ShoppingList(userID uint64) (string, error) {
	items, err := s.recipeRepo.ShoppingList(userID)
	if err != nil {
		return "", fmt.Errorf("failed to build shopping list: %w", err)
	}
	return FormatShoppingList(items), nil
}

func FormatShoppingList(items []repository.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString("Список покупок\n\n")
	if len(items) == 0 {
		b.WriteString("Корзина пуста\n")
		return b.String()
	}
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s (%s) - %d\n", i+1, item.Name, item.MeasurementUnit, item.Total)
	}
	return b.String()
}
