package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/foodgram-api/internal/models"
	"github.com/yukikurage/foodgram-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSelfSubscription  = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrNotSubscribed     = errors.New("not subscribed")
)

// Messages returned to clients for rejected subscription changes.
const (
	MsgSelfSubscription  = "Нельзя подписаться на себя"
	MsgAlreadySubscribed = "Нельзя подписаться второй раз"
	MsgNotSubscribed     = "Вы не подписаны на этого автора"
)

// SubscriptionView is a followed author with a preview of their recipes.
// Recipes holds at most the requested limit while RecipesCount is the full count.
type SubscriptionView struct {
	UserView
	Recipes      []models.Recipe
	RecipesCount int64
}

type SubscriptionService struct {
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
	recipeRepo       repository.RecipeRepository
}

func NewSubscriptionService(
	userRepo repository.UserRepository,
	subscriptionRepo repository.SubscriptionRepository,
	recipeRepo repository.RecipeRepository,
) *SubscriptionService {
	return &SubscriptionService{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		recipeRepo:       recipeRepo,
	}
}

func (s *SubscriptionService) findAuthor(authorID uint64) (*models.User, error) {
	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return author, nil
}

// Subscribe makes subscriberID follow authorID. recipesLimit constants.NoLimit returns
// every recipe of the author.
func (s *SubscriptionService) Subscribe(subscriberID, authorID uint64, recipesLimit int) (*SubscriptionView, error) {
	author, err := s.findAuthor(authorID)
	if err != nil {
		return nil, err
	}
	if subscriberID == authorID {
		return nil, ErrSelfSubscription
	}

	exists, err := s.subscriptionRepo.Exists(subscriberID, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check subscription: %w", err)
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}

	subscription := &models.Subscription{AuthorID: authorID, SubscriberID: subscriberID}
	if err := s.subscriptionRepo.Create(subscription); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	return s.view(*author, recipesLimit)
}

func (s *SubscriptionService) Unsubscribe(subscriberID, authorID uint64) error {
	if _, err := s.findAuthor(authorID); err != nil {
		return err
	}

	if err := s.subscriptionRepo.Delete(subscriberID, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotSubscribed
		}
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return nil
}

// List returns the authors subscriberID follows.
func (s *SubscriptionService) List(subscriberID uint64, recipesLimit int) ([]SubscriptionView, error) {
	authors, err := s.subscriptionRepo.ListAuthors(subscriberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	views := make([]SubscriptionView, 0, len(authors))
	for _, author := range authors {
		view, err := s.view(author, recipesLimit)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *SubscriptionService) view(author models.User, recipesLimit int) (*SubscriptionView, error) {
	recipes, err := s.recipeRepo.ListByAuthor(author.ID, recipesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	count, err := s.recipeRepo.CountByAuthor(author.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}

	return &SubscriptionView{
		UserView:     UserView{User: author, IsSubscribed: true},
		Recipes:      recipes,
		RecipesCount: count,
	}, nil
}
