package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Barrel is a physical keg bought through a purchase transaction. While
// mounted behind the bar it pours glasses at its sell price; once emptied or
// sold whole it leaves the available stock for good.
type Barrel struct {
	ID        uint            `gorm:"primaryKey"`
	DrinkID   uint            `gorm:"index;not null"`
	Drink     Drink           `gorm:"foreignKey:DrinkID"`
	BuyPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SellPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"` // per glass
	IsMounted bool            `gorm:"not null;default:false"`
	// EmptyOrSolded marks the barrel as gone, either drained behind the bar
	// or sold as a whole unit.
	EmptyOrSolded         bool         `gorm:"not null;default:false"`
	TransactionPurchaseID *uint        `gorm:"index"`
	TransactionSaleID     *uint        `gorm:"index"`
	TransactionPurchase   *Transaction `gorm:"foreignKey:TransactionPurchaseID"`
	TransactionSale       *Transaction `gorm:"foreignKey:TransactionSaleID"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
