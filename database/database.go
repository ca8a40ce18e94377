package database

import (
	"fmt"
	"log"

	"gkb/config"
	"gkb/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	// Build the PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.AppConfig.DBHost,
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBName,
		config.AppConfig.DBPort,
	)

	// Open database connection. TranslateError maps driver unique
	// violations onto gorm.ErrDuplicatedKey so handlers can react.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)   // Maximum open connections
	sqlDB.SetMaxIdleConns(5)    // Maximum idle connections
	sqlDB.SetConnMaxLifetime(0) // No timeout

	// Run database migrations
	RunMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Unit{},
		&models.SubUnit{},
		&models.Question{},
		&models.Choice{},
		&models.ReportedQuestion{},
		&models.SubscriptionType{},
		&models.Subscription{},
		&models.UserProgress{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// One live subscription per user, enforced by the database. The
	// partial index leaves deactivated history rows out, so expired
	// subscriptions never collide with a new purchase.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_subscription ON subscriptions (user_id) WHERE active",
	).Error; err != nil {
		log.Fatalf("Failed to create active-subscription index: %v", err)
	}

	log.Println("Migrations completed successfully.")
}
