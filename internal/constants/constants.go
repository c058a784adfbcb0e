package constants

// Session and context keys
const (
	SessionCookieName = "foodgram_session"
	ContextKeyUserID  = "user_id"
	ContextKeyRecipe  = "recipe"
)

// Validation thresholds
const (
	MinPasswordLength   = 8
	MinCookingTime      = 1
	MinIngredientAmount = 1
	MaxNameLength       = 200
	MaxTextLength       = 5000
	MaxColorLength      = 7
)

// Query parameters
const (
	QueryRecipesLimit     = "recipes_limit"
	QueryIsFavorited      = "is_favorited"
	QueryIsInShoppingCart = "is_in_shopping_cart"
)

// NoLimit disables the recipes_limit truncation
const NoLimit = -1

// ShoppingListFilename is the attachment name of the downloaded shopping list
const ShoppingListFilename = "shopping_list.txt"
