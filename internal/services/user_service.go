package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/foodgram-api/internal/models"
	"github.com/yukikurage/foodgram-api/internal/repository"
	"gorm.io/gorm"
)

// UserView is a user as seen by the requester.
type UserView struct {
	User         models.User
	IsSubscribed bool
}

// UserService serves user profiles with the requester's subscription state.
// A viewerID of 0 means an anonymous requester.
type UserService struct {
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
}

func NewUserService(userRepo repository.UserRepository, subscriptionRepo repository.SubscriptionRepository) *UserService {
	return &UserService{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

func (s *UserService) List(viewerID uint64) ([]UserView, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return s.viewsFor(users, viewerID)
}

func (s *UserService) Get(id, viewerID uint64) (*UserView, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	views, err := s.viewsFor([]models.User{*user}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *UserService) viewsFor(users []models.User, viewerID uint64) ([]UserView, error) {
	subscribed, err := subscribedAuthors(s.subscriptionRepo, viewerID, userIDs(users))
	if err != nil {
		return nil, err
	}

	views := make([]UserView, len(users))
	for i, user := range users {
		views[i] = UserView{User: user, IsSubscribed: subscribed[user.ID]}
	}
	return views, nil
}

func userIDs(users []models.User) []uint64 {
	ids := make([]uint64, len(users))
	for i, user := range users {
		ids[i] = user.ID
	}
	return ids
}

// subscribedAuthors is empty for anonymous viewers.
func subscribedAuthors(repo repository.SubscriptionRepository, viewerID uint64, authorIDs []uint64) (map[uint64]bool, error) {
	if viewerID == 0 {
		return map[uint64]bool{}, nil
	}
	subscribed, err := repo.SubscribedAuthorIDs(viewerID, uniqueUint64(authorIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	return subscribed, nil
}

func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
