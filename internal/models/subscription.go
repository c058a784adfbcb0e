package models

import "time"

// Subscription is a directed follow edge: Subscriber follows Author.
type Subscription struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	AuthorID     uint64    `gorm:"not null;uniqueIndex:idx_subscription_author_subscriber" json:"author_id"`
	SubscriberID uint64    `gorm:"not null;uniqueIndex:idx_subscription_author_subscriber;check:no_self_subscription,author_id <> subscriber_id" json:"subscriber_id"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Author     User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Subscriber User `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE" json:"-"`
}
