package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Glass is one serving poured from a mounted barrel. It only exists on the
// sale side; SellPrice is copied from the barrel at pour time and never
// changes afterwards, even if the barrel price is edited later.
type Glass struct {
	ID            uint            `gorm:"primaryKey"`
	BarrelID      uint            `gorm:"index;not null"`
	Barrel        Barrel          `gorm:"foreignKey:BarrelID"`
	SellPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TransactionID uint            `gorm:"index;not null"`
	Transaction   Transaction     `gorm:"foreignKey:TransactionID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
