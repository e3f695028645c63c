package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumableItem is a catalog entry for packaged goods (chips, soft cans...).
type ConsumableItem struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	Icon      string `gorm:"size:50"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Consumable is one tracked unit of a ConsumableItem. Bought through a
// purchase transaction, available until attached to a sale transaction.
type Consumable struct {
	ID                    uint            `gorm:"primaryKey"`
	ConsumableItemID      uint            `gorm:"index;not null"`
	ConsumableItem        ConsumableItem  `gorm:"foreignKey:ConsumableItemID"`
	BuyPrice              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SellPrice             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Solded                bool            `gorm:"not null;default:false"`
	TransactionPurchaseID *uint           `gorm:"index"`
	TransactionSaleID     *uint           `gorm:"index"`
	TransactionPurchase   *Transaction    `gorm:"foreignKey:TransactionPurchaseID"`
	TransactionSale       *Transaction    `gorm:"foreignKey:TransactionSaleID"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
