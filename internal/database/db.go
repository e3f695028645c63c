package database

import (
	"log"

	"github.com/Clochette-AbsINThe/clochette-sub000/internal/config"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey, which the transaction service relies on to
	// close the single-pending race.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("could not connect to the database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connected, migration done.")
}

// Migrate creates or updates the schema. Shared with the test suites so the
// in-memory databases match production exactly.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Treasury{},
		&models.Transaction{},
		&models.Drink{},
		&models.Barrel{},
		&models.Glass{},
		&models.ConsumableItem{},
		&models.Consumable{},
		&models.NonInventoriedItem{},
		&models.NonInventoried{},
		&models.OutOfStockItem{},
		&models.OutOfStock{},
	)
}
