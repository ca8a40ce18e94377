package models

import (
	"time"

	"gorm.io/gorm"
)

// SubscriptionType code enum values
const (
	FullSubscription = "full_subscription" // all books
	BaseSubscription = "base_subscription" // one specific book
)

// SubscriptionType is a purchasable plan (full or single-book)
type SubscriptionType struct {
	gorm.Model
	Name        string `json:"name"`
	Code        string `json:"code" gorm:"unique;not null"`
	Cost        int    `json:"cost" gorm:"default:0"`
	Description string `json:"description"`
}

// Subscription entitles a user to non-preview content. BookID is nil
// for a full subscription. A partial unique index on (user_id) WHERE
// active (created in RunMigrations) allows at most one active row per
// user.
type Subscription struct {
	gorm.Model
	UserID             uint       `json:"user_id" gorm:"index;not null"`
	BookID             *uint      `json:"book_id"`
	SubscriptionTypeID uint       `json:"subscription_type_id" gorm:"not null"`
	StartDate          time.Time  `json:"start_date" gorm:"not null"`
	EndDate            *time.Time `json:"end_date"`
	Active             bool       `json:"active" gorm:"default:true;index"`
	ReminderSent       bool       `json:"reminder_sent" gorm:"default:false"` // Track if expiry reminder was sent

	// Relations
	User             User             `json:"-" gorm:"foreignKey:UserID"`
	Book             *Book            `json:"book,omitempty" gorm:"foreignKey:BookID"`
	SubscriptionType SubscriptionType `json:"subscription_type" gorm:"foreignKey:SubscriptionTypeID"`
}
