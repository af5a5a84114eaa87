package db

import (
	"finance_tracker/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema and seeds defaults
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	if err := SeedDefaultCategories(db); err != nil {
		logrus.Fatalf("seeding default categories failed: %v", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
}

// AutoMigrate creates tables, missing foreign keys, constraints, columns and indexes
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Account{},
		&domain.Project{},
		&domain.Category{},
		&domain.Transaction{},
		&domain.Tag{},
		&domain.Budget{},
	)
}

// SeedDefaultCategories inserts the shared system categories once.
// Presence of any NULL-owner category means seeding already happened.
func SeedDefaultCategories(db *gorm.DB) error {
	var count int64 // Existing system category count
	if err := db.Model(&domain.Category{}).Where("user_id IS NULL").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Already seeded
	}
	// Default expense and income categories shared by every user
	defaults := []domain.Category{
		{Name: "餐饮", Type: "expense", IconName: "restaurant"},
		{Name: "交通", Type: "expense", IconName: "directions_car"},
		{Name: "购物", Type: "expense", IconName: "shopping_cart"},
		{Name: "娱乐", Type: "expense", IconName: "movie"},
		{Name: "医疗", Type: "expense", IconName: "local_hospital"},
		{Name: "教育", Type: "expense", IconName: "school"},
		{Name: "住房", Type: "expense", IconName: "home"},
		{Name: "通讯", Type: "expense", IconName: "phone"},
		{Name: "其他支出", Type: "expense", IconName: "more_horiz"},
		{Name: "工资", Type: "income", IconName: "work"},
		{Name: "奖金", Type: "income", IconName: "card_giftcard"},
		{Name: "投资收益", Type: "income", IconName: "trending_up"},
		{Name: "兼职", Type: "income", IconName: "business_center"},
		{Name: "其他收入", Type: "income", IconName: "more_horiz"},
	}
	if err := db.Create(&defaults).Error; err != nil {
		return err
	}
	logrus.WithField("count", len(defaults)).Info("Seeded system categories")
	return nil
}
