package main

import (
	"clicker_wallet/internal/config" // Custom import path (Config)
	"clicker_wallet/internal/db"     // Custom import path (Database)
)

// Main entry point for migration and catalog seeding
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Migrate schema and seed the upgrade catalog
}
