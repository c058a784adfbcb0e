package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/foodgram-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSubscriptionRepository is a GORM implementation of SubscriptionRepository
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

func (r *GormSubscriptionRepository) Exists(subscriberID, authorID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormSubscriptionRepository) Create(subscription *models.Subscription) error {
	if err := r.db.Omit(clause.Associations).Create(subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
		}
		return err
	}
	return nil
}

func (r *GormSubscriptionRepository) Delete(subscriberID, authorID uint64) error {
	result := r.db.
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Delete(&models.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAuthors returns followed authors in subscription order
func (r *GormSubscriptionRepository) ListAuthors(subscriberID uint64) ([]models.User, error) {
	var authors []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Order("subscriptions.id").
		Find(&authors).Error
	if err != nil {
		return nil, err
	}
	return authors, nil
}

func (r *GormSubscriptionRepository) SubscribedAuthorIDs(subscriberID uint64, authorIDs []uint64) (map[uint64]bool, error) {
	subscribed := make(map[uint64]bool, len(authorIDs))
	if len(authorIDs) == 0 {
		return subscribed, nil
	}

	var ids []uint64
	err := r.db.Model(&models.Subscription{}).
		Where("subscriber_id = ? AND author_id IN ?", subscriberID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		subscribed[id] = true
	}
	return subscribed, nil
}
