package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/foodgram-api/internal/constants"
	"github.com/yukikurage/foodgram-api/internal/database"
	"github.com/yukikurage/foodgram-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    username,
		LastName:     "Test",
		PasswordHash: "hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTag(t *testing.T, db *gorm.DB, slug string) *models.Tag {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&n).Error)
	tag := &models.Tag{Name: slug, Slug: slug, Color: fmt.Sprintf("#%06d", n)}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func createIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func createRecipe(t *testing.T, repo RecipeRepository, authorID uint64, name string, ingredients []models.RecipeIngredient, tagIDs []uint64) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Image:       "recipes/images/" + name + ".png",
		Text:        "Cook it",
		CookingTime: 15,
	}
	require.NoError(t, repo.Create(recipe, ingredients, tagIDs))
	return recipe
}

func TestRecipeRepository_CreateAndFind(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecipeRepository(db)

	author := createUser(t, db, "author")
	breakfast := createTag(t, db, "breakfast")
	egg := createIngredient(t, db, "egg", "pcs")
	milk := createIngredient(t, db, "milk", "ml")

	recipe := createRecipe(t, repo, author.ID, "Omelette",
		[]models.RecipeIngredient{{IngredientID: egg.ID, Amount: 3}, {IngredientID: milk.ID, Amount: 100}},
		[]uint64{breakfast.ID},
	)

	found, err := repo.FindByID(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "author", found.Author.Username)
	require.Len(t, found.Ingredients, 2)
	assert.Equal(t, "egg", found.Ingredients[0].Ingredient.Name)
	assert.Equal(t, 3, found.Ingredients[0].Amount)
	require.Len(t, found.Tags, 1)
	assert.Equal(t, "breakfast", found.Tags[0].Tag.Slug)
}

func TestRecipeRepository_CreateRollsBackOnDuplicateIngredient(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecipeRepository(db)

	author := createUser(t, db, "author")
	tag := createTag(t, db, "lunch")
	egg := createIngredient(t, db, "egg", "pcs")

	recipe := &models.Recipe{AuthorID: author.ID, Name: "Bad", Image: "x.png", Text: "t", CookingTime: 5}
	err := repo.Create(recipe,
		[]models.RecipeIngredient{{IngredientID: egg.ID, Amount: 1}, {IngredientID: egg.ID, Amount: 2}},
		[]uint64{tag.ID},
	)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecipeRepository_UpdateReplacesAssociations(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecipeRepository(db)

	author := createUser(t, db, "author")
	lunch := createTag(t, db, "lunch")
	dinner := createTag(t, db, "dinner")
	egg := createIngredient(t, db, "egg", "pcs")
	flour := createIngredient(t, db, "flour", "g")
	salt := createIngredient(t, db, "salt", "g")

	recipe := createRecipe(t, repo, author.ID, "Pancakes",
		[]models.RecipeIngredient{{IngredientID: egg.ID, Amount: 2}, {IngredientID: flour.ID, Amount: 200}},
		[]uint64{lunch.ID},
	)

	recipe.Name = "Salted pancakes"
	err := repo.Update(recipe,
		[]models.RecipeIngredient{{IngredientID: salt.ID, Amount: 5}},
		[]uint64{dinner.ID},
	)
	require.NoError(t, err)

	found, err := repo.FindByID(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Salted pancakes", found.Name)
	require.Len(t, found.Ingredients, 1)
	assert.Equal(t, salt.ID, found.Ingredients[0].IngredientID)
	require.Len(t, found.Tags, 1)
	assert.Equal(t, dinner.ID, found.Tags[0].TagID)
}

func TestRecipeRepository_ListFilters(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecipeRepository(db)
	favorites := NewFavoriteRepository(db)
	carts := NewCartRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	lunch := createTag(t, db, "lunch")
	dinner := createTag(t, db, "dinner")
	egg := createIngredient(t, db, "egg", "pcs")
	ingredients := []models.RecipeIngredient{{IngredientID: egg.ID, Amount: 1}}

	first := createRecipe(t, repo, alice.ID, "First", ingredients, []uint64{lunch.ID})
	second := createRecipe(t, repo, alice.ID, "Second", ingredients, []uint64{dinner.ID})
	third := createRecipe(t, repo, bob.ID, "Third", ingredients, []uint64{lunch.ID, dinner.ID})

	require.NoError(t, favorites.Add(bob.ID, first.ID))
	require.NoError(t, carts.Add(bob.ID, second.ID))

	all, err := repo.List(RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, third.ID, all[0].ID)

	byAuthor, err := repo.List(RecipeFilter{AuthorID: &alice.ID})
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	byTag, err := repo.List(RecipeFilter{TagSlugs: []string{"lunch"}})
	require.NoError(t, err)
	assert.Len(t, byTag, 2)

	anyTag, err := repo.List(RecipeFilter{TagSlugs: []string{"lunch", "dinner"}})
	require.NoError(t, err)
	assert.Len(t, anyTag, 3)

	favorited, err := repo.List(RecipeFilter{FavoritedBy: &bob.ID})
	require.NoError(t, err)
	require.Len(t, favorited, 1)
	assert.Equal(t, first.ID, favorited[0].ID)

	inCart, err := repo.List(RecipeFilter{InCartOf: &bob.ID})
	require.NoError(t, err)
	require.Len(t, inCart, 1)
	assert.Equal(t, second.ID, inCart[0].ID)
}

func TestRecipeRepository_ListByAuthorAndCount(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecipeRepository(db)

	author := createUser(t, db, "author")
	tag := createTag(t, db, "lunch")
	egg := createIngredient(t, db, "egg", "pcs")
	for i := 0; i < 3; i++ {
		createRecipe(t, repo, author.ID, fmt.Sprintf("Recipe %d", i),
			[]models.RecipeIngredient{{IngredientID: egg.ID, Amount: 1}}, []uint64{tag.ID})
	}

	limited, err := repo.ListByAuthor(author.ID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	none, err := repo.ListByAuthor(author.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := repo.ListByAuthor(author.ID, constants.NoLimit)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	count, err := repo.CountByAuthor(author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRecipeRepository_ShoppingListSumsAmounts(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecipeRepository(db)
	carts := NewCartRepository(db)

	author := createUser(t, db, "author")
	shopper := createUser(t, db, "shopper")
	tag := createTag(t, db, "lunch")
	egg := createIngredient(t, db, "egg", "pcs")
	milk := createIngredient(t, db, "milk", "ml")

	omelette := createRecipe(t, repo, author.ID, "Omelette",
		[]models.RecipeIngredient{{IngredientID: egg.ID, Amount: 3}, {IngredientID: milk.ID, Amount: 50}}, []uint64{tag.ID})
	cake := createRecipe(t, repo, author.ID, "Cake",
		[]models.RecipeIngredient{{IngredientID: egg.ID, Amount: 4}}, []uint64{tag.ID})
	createRecipe(t, repo, author.ID, "Not in cart",
		[]models.RecipeIngredient{{IngredientID: egg.ID, Amount: 100}}, []uint64{tag.ID})

	require.NoError(t, carts.Add(shopper.ID, omelette.ID))
	require.NoError(t, carts.Add(shopper.ID, cake.ID))

	items, err := repo.ShoppingList(shopper.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, ShoppingListItem{Name: "egg", MeasurementUnit: "pcs", Total: 7}, items[0])
	assert.Equal(t, ShoppingListItem{Name: "milk", MeasurementUnit: "ml", Total: 50}, items[1])
}

func TestRecipeRepository_DeleteRemovesDependents(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewRecipeRepository(db)
	favorites := NewFavoriteRepository(db)

	author := createUser(t, db, "author")
	tag := createTag(t, db, "lunch")
	egg := createIngredient(t, db, "egg", "pcs")
	recipe := createRecipe(t, repo, author.ID, "Omelette",
		[]models.RecipeIngredient{{IngredientID: egg.ID, Amount: 3}}, []uint64{tag.ID})
	require.NoError(t, favorites.Add(author.ID, recipe.ID))

	require.NoError(t, repo.Delete(recipe.ID))

	for _, model := range []interface{}{&models.Recipe{}, &models.RecipeIngredient{}, &models.RecipeTag{}, &models.Favorite{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}

	assert.ErrorIs(t, repo.Delete(recipe.ID), gorm.ErrRecordNotFound)
}

func TestBookmarkRepository_AddRemoveAdd(t *testing.T) {
	db := setupRepositoryTestDB(t)
	recipes := NewRecipeRepository(db)
	favorites := NewFavoriteRepository(db)

	user := createUser(t, db, "user")
	tag := createTag(t, db, "lunch")
	egg := createIngredient(t, db, "egg", "pcs")
	recipe := createRecipe(t, recipes, user.ID, "Omelette",
		[]models.RecipeIngredient{{IngredientID: egg.ID, Amount: 3}}, []uint64{tag.ID})

	require.NoError(t, favorites.Add(user.ID, recipe.ID))
	assert.ErrorIs(t, favorites.Add(user.ID, recipe.ID), ErrAlreadyExists)

	exists, err := favorites.Exists(user.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, favorites.Remove(user.ID, recipe.ID))
	assert.ErrorIs(t, favorites.Remove(user.ID, recipe.ID), gorm.ErrRecordNotFound)

	require.NoError(t, favorites.Add(user.ID, recipe.ID))

	marked, err := favorites.RecipeIDs(user.ID, []uint64{recipe.ID, recipe.ID + 1})
	require.NoError(t, err)
	assert.True(t, marked[recipe.ID])
	assert.False(t, marked[recipe.ID+1])
}

func TestSubscriptionRepository(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewSubscriptionRepository(db)

	reader := createUser(t, db, "reader")
	chef := createUser(t, db, "chef")
	baker := createUser(t, db, "baker")

	require.NoError(t, repo.Create(&models.Subscription{AuthorID: chef.ID, SubscriberID: reader.ID}))
	require.NoError(t, repo.Create(&models.Subscription{AuthorID: baker.ID, SubscriberID: reader.ID}))
	assert.ErrorIs(t, repo.Create(&models.Subscription{AuthorID: chef.ID, SubscriberID: reader.ID}), ErrAlreadyExists)
	assert.Error(t, repo.Create(&models.Subscription{AuthorID: reader.ID, SubscriberID: reader.ID}))

	authors, err := repo.ListAuthors(reader.ID)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "chef", authors[0].Username)

	subscribed, err := repo.SubscribedAuthorIDs(reader.ID, []uint64{chef.ID, reader.ID})
	require.NoError(t, err)
	assert.True(t, subscribed[chef.ID])
	assert.False(t, subscribed[reader.ID])

	require.NoError(t, repo.Delete(reader.ID, chef.ID))
	assert.ErrorIs(t, repo.Delete(reader.ID, chef.ID), gorm.ErrRecordNotFound)

	exists, err := repo.Exists(reader.ID, chef.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := setupRepositoryTestDB(t)
	users := NewUserRepository(db)
	recipes := NewRecipeRepository(db)
	carts := NewCartRepository(db)
	subscriptions := NewSubscriptionRepository(db)

	author := createUser(t, db, "author")
	reader := createUser(t, db, "reader")
	tag := createTag(t, db, "lunch")
	egg := createIngredient(t, db, "egg", "pcs")
	recipe := createRecipe(t, recipes, author.ID, "Omelette",
		[]models.RecipeIngredient{{IngredientID: egg.ID, Amount: 3}}, []uint64{tag.ID})
	require.NoError(t, carts.Add(reader.ID, recipe.ID))
	require.NoError(t, subscriptions.Create(&models.Subscription{AuthorID: author.ID, SubscriberID: reader.ID}))

	require.NoError(t, users.Delete(author.ID))

	for _, model := range []interface{}{&models.Recipe{}, &models.RecipeIngredient{}, &models.Cart{}, &models.Subscription{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}

	_, err := users.FindByID(reader.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, users.Delete(author.ID), gorm.ErrRecordNotFound)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := setupRepositoryTestDB(t)
	users := NewUserRepository(db)

	require.NoError(t, users.Create(&models.User{Email: "a@example.com", Username: "a", FirstName: "A", LastName: "A", PasswordHash: "x"}))
	err := users.Create(&models.User{Email: "a@example.com", Username: "b", FirstName: "B", LastName: "B", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	require.NoError(t, users.UpdatePassword(1, "new-hash"))
	user, err := users.FindByEmail("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", user.PasswordHash)
}

func TestIngredientRepository_ListByPrefix(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewIngredientRepository(db)

	createIngredient(t, db, "Sugar", "g")
	createIngredient(t, db, "sugar syrup", "ml")
	createIngredient(t, db, "salt", "g")
	createIngredient(t, db, "50%_cream", "ml")

	found, err := repo.List("SUG")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	all, err := repo.List("")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	literal, err := repo.List("50%_")
	require.NoError(t, err)
	require.Len(t, literal, 1)

	none, err := repo.List("%")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTagRepository_FindByIDs(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewTagRepository(db)

	lunch := createTag(t, db, "lunch")
	createTag(t, db, "dinner")

	tags, err := repo.FindByIDs([]uint64{lunch.ID, 999})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "lunch", tags[0].Slug)

	err = repo.Create(&models.Tag{Name: "lunch", Slug: "other", Color: "#ABCDEF"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}
