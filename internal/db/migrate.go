package db

import (
	"clicker_wallet/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Exact numeric type for effect values
	"github.com/sirupsen/logrus"    // Logging library

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// defaultCatalog seeds a playable starter economy: two click multipliers and
// three passive-rate tiers. Seeding is idempotent, so existing rows are
// never touched and the catalog stays immutable once live.
var defaultCatalog = []domain.Upgrade{
	{ID: 1, Name: "Sturdy Mouse", Description: "Each click earns 2 coins.", Cost: 50, EffectType: domain.EffectClickMultiplier, EffectValue: decimal.NewFromInt(2)},
	{ID: 2, Name: "Coin Magnet", Description: "Earns 0.5 coins per second while you are away.", Cost: 100, EffectType: domain.EffectPassiveRatePerSecond, EffectValue: decimal.NewFromFloat(0.5)},
	{ID: 3, Name: "Golden Cursor", Description: "Each click earns 5 coins.", Cost: 400, EffectType: domain.EffectClickMultiplier, EffectValue: decimal.NewFromInt(5)},
	{ID: 4, Name: "Coin Factory", Description: "Earns 2.5 coins per second.", Cost: 750, EffectType: domain.EffectPassiveRatePerSecond, EffectValue: decimal.NewFromFloat(2.5)},
	{ID: 5, Name: "Mint License", Description: "Earns 10 coins per second.", Cost: 5000, EffectType: domain.EffectPassiveRatePerSecond, EffectValue: decimal.NewFromInt(10)},
}

// Migrate performs automatic migration for the database schema and seeds the
// upgrade catalog.
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(&domain.Wallet{}, &domain.Upgrade{}, &domain.WalletUpgrade{}, &domain.PayoutRequest{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	if err := SeedCatalog(db); err != nil {
		logrus.Fatalf("catalog seeding failed: %v", err)
	}
	logrus.Info("Migration completed.")
}

// SeedCatalog inserts the default upgrades that do not exist yet.
func SeedCatalog(db *gorm.DB) error {
	for _, upgrade := range defaultCatalog {
		if err := db.Where("upgrade_id = ?", upgrade.ID).FirstOrCreate(&upgrade).Error; err != nil {
			return err
		}
	}
	return nil
}
