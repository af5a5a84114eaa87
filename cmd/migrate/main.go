package main

import (
	"finance_tracker/internal/config" // Custom import path (Config)
	"finance_tracker/internal/db"     // Custom import path (Database)
)

// Main entry point for migration and default data seeding
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Database Source Name (DSN) for MySQL connection
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db.Migrate(dsn)
}
