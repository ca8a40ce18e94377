package utils

import (
	"log"
	"time"

	"gkb/database"
	"gkb/models"

	"github.com/robfig/cron/v3"
)

// InitializeSubscriptionScheduler sets up the subscription expiry scheduler
func InitializeSubscriptionScheduler() {
	log.Println("[SUBSCRIPTION-SCHEDULER] Initializing subscription scheduler...")

	c := cron.New()

	// Run daily at 9 AM to check expiring subscriptions
	c.AddFunc("0 9 * * *", func() {
		log.Println("[SUBSCRIPTION-SCHEDULER] Running daily subscription check...")
		ProcessExpiringSubscriptions()
		ExpireSubscriptions()
	})

	c.Start()
	log.Println("[SUBSCRIPTION-SCHEDULER] Subscription scheduler started - runs daily at 9 AM")
}

// ProcessExpiringSubscriptions sends reminder emails for subscriptions expiring in 2 days
func ProcessExpiringSubscriptions() {
	db := database.Database.Db
	now := time.Now()
	twoDaysFromNow := now.AddDate(0, 0, 2)

	// Find subscriptions expiring in ~2 days that haven't received a reminder
	var expiringSubscriptions []models.Subscription
	if err := db.
		Where("active = ? AND reminder_sent = false AND end_date IS NOT NULL", true).
		Where("end_date BETWEEN ? AND ?", now, twoDaysFromNow).
		Preload("SubscriptionType").
		Find(&expiringSubscriptions).Error; err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching expiring subscriptions: %v", err)
		return
	}

	log.Printf("[SUBSCRIPTION-SCHEDULER] Found %d subscriptions expiring soon", len(expiringSubscriptions))

	for _, sub := range expiringSubscriptions {
		// Get user details
		var user models.User
		if err := db.Where("id = ?", sub.UserID).First(&user).Error; err != nil {
			log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching user %d: %v", sub.UserID, err)
			continue
		}

		// Send reminder email
		SendSubscriptionExpiryReminder(user.Email, user.FirstName, sub.SubscriptionType.Name, sub.EndDate)

		// Mark reminder as sent
		db.Model(&sub).Update("reminder_sent", true)
		log.Printf("[SUBSCRIPTION-SCHEDULER] Sent expiry reminder for subscription %d to %s", sub.ID, user.Email)
	}
}

// ExpireSubscriptions deactivates subscriptions whose end date has passed
func ExpireSubscriptions() {
	db := database.Database.Db
	now := time.Now()

	// Select first, then flip by id: the notification set is exactly
	// the set of rows this sweep deactivates
	var expiring []models.Subscription
	if err := db.
		Where("active = ? AND end_date IS NOT NULL AND end_date < ?", true, now).
		Preload("SubscriptionType").
		Find(&expiring).Error; err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching expired subscriptions: %v", err)
		return
	}
	if len(expiring) == 0 {
		return
	}

	ids := make([]uint, 0, len(expiring))
	for _, sub := range expiring {
		ids = append(ids, sub.ID)
	}

	if err := db.Model(&models.Subscription{}).
		Where("id IN ?", ids).
		Update("active", false).Error; err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error expiring subscriptions: %v", err)
		return
	}

	log.Printf("[SUBSCRIPTION-SCHEDULER] Expired %d subscriptions", len(expiring))

	for _, sub := range expiring {
		var user models.User
		if err := db.Where("id = ?", sub.UserID).First(&user).Error; err == nil {
			SendSubscriptionExpiredEmail(user.Email, user.FirstName, sub.SubscriptionType.Name)
		}
	}
}
