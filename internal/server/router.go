package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/foodgram-api/internal/constants"
	"github.com/yukikurage/foodgram-api/internal/handlers"
	"github.com/yukikurage/foodgram-api/internal/middleware"
	"github.com/yukikurage/foodgram-api/internal/repository"
	"github.com/yukikurage/foodgram-api/internal/services"
	"github.com/yukikurage/foodgram-api/internal/storage"
	"gorm.io/gorm"
)

// Dependencies are the infrastructure pieces the router is built from.
type Dependencies struct {
	DB           *gorm.DB
	Logger       *slog.Logger
	SessionStore sessions.Store
	Images       storage.Store
	Metrics      *middleware.Metrics
	// MediaRoute serves locally stored images when set, e.g. "/media".
	MediaRoute string
	MediaDir   string
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(deps Dependencies) *gin.Engine {
	userRepo := repository.NewUserRepository(deps.DB)
	tagRepo := repository.NewTagRepository(deps.DB)
	ingredientRepo := repository.NewIngredientRepository(deps.DB)
	recipeRepo := repository.NewRecipeRepository(deps.DB)
	favoriteRepo := repository.NewFavoriteRepository(deps.DB)
	cartRepo := repository.NewCartRepository(deps.DB)
	subscriptionRepo := repository.NewSubscriptionRepository(deps.DB)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, subscriptionRepo)
	tagService := services.NewTagService(tagRepo)
	ingredientService := services.NewIngredientService(ingredientRepo)
	recipeService := services.NewRecipeService(recipeRepo, ingredientRepo, tagRepo, favoriteRepo, cartRepo, subscriptionRepo, deps.Images)
	favoriteService := services.NewBookmarkService(recipeRepo, favoriteRepo)
	cartService := services.NewBookmarkService(recipeRepo, cartRepo)
	subscriptionService := services.NewSubscriptionService(userRepo, subscriptionRepo, recipeRepo)

	imageURL := deps.Images.URL
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	tagHandler := handlers.NewTagHandler(tagService)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)
	recipeHandler := handlers.NewRecipeHandler(recipeService, imageURL)
	favoriteHandler := handlers.NewBookmarkHandler(favoriteService, imageURL)
	cartHandler := handlers.NewBookmarkHandler(cartService, imageURL)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, imageURL)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))

	if deps.MediaRoute != "" {
		r.Static(deps.MediaRoute, deps.MediaDir)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Foodgram API is running",
		})
	})

	requireAuth := middleware.RequireAuth()
	requireStaff := middleware.RequireStaff(authService)
	requireAuthor := middleware.RequireRecipeAuthor(recipeService)

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth())
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", requireAuth, authHandler.Logout)
		}

		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", authHandler.Signup)
			users.GET("/me", requireAuth, userHandler.GetCurrentUser)
			users.POST("/set_password", requireAuth, authHandler.SetPassword)
			users.GET("/subscriptions", requireAuth, subscriptionHandler.ListSubscriptions)
			users.GET("/:id", userHandler.GetUser)
			users.POST("/:id/subscribe", requireAuth, subscriptionHandler.Subscribe)
			users.DELETE("/:id/subscribe", requireAuth, subscriptionHandler.Unsubscribe)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.ListTags)
			tags.GET("/:id", tagHandler.GetTag)
			tags.POST("", requireAuth, requireStaff, tagHandler.CreateTag)
		}

		ingredients := api.Group("/ingredients")
		{
			ingredients.GET("", ingredientHandler.ListIngredients)
			ingredients.GET("/:id", ingredientHandler.GetIngredient)
			ingredients.POST("", requireAuth, requireStaff, ingredientHandler.CreateIngredient)
		}

		recipes := api.Group("/recipes")
		{
			recipes.GET("", recipeHandler.ListRecipes)
			recipes.POST("", requireAuth, recipeHandler.CreateRecipe)
			recipes.GET("/download_shopping_cart", requireAuth, recipeHandler.DownloadShoppingCart)
			recipes.GET("/:id", recipeHandler.GetRecipe)
			recipes.PATCH("/:id", requireAuth, requireAuthor, recipeHandler.UpdateRecipe)
			recipes.DELETE("/:id", requireAuth, requireAuthor, recipeHandler.DeleteRecipe)
			recipes.POST("/:id/favorite", requireAuth, favoriteHandler.Add)
			recipes.DELETE("/:id/favorite", requireAuth, favoriteHandler.Remove)
			recipes.POST("/:id/shopping_cart", requireAuth, cartHandler.Add)
			recipes.DELETE("/:id/shopping_cart", requireAuth, cartHandler.Remove)
		}
	}

	return r
}
