package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OutOfStockItem is a catalog entry for goods sold or bought without any
// stock tracking at all (a round of shots at an event, one-off supplies).
// SellPrice is null for purchase-only entries.
type OutOfStockItem struct {
	ID        uint             `gorm:"primaryKey"`
	Name      string           `gorm:"size:100;not null;unique"`
	Icon      string           `gorm:"size:50"`
	SellPrice *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OutOfStock records one out-of-stock line on a transaction. Name and Icon
// are copied from the catalog item at creation so the line stays readable
// even if the catalog entry is renamed later.
type OutOfStock struct {
	ID                    uint             `gorm:"primaryKey"`
	OutOfStockItemID      uint             `gorm:"index;not null"`
	OutOfStockItem        OutOfStockItem   `gorm:"foreignKey:OutOfStockItemID"`
	Name                  string           `gorm:"size:100;not null"`
	Icon                  string           `gorm:"size:50"`
	BuyPrice              *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SellPrice             *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TransactionPurchaseID *uint            `gorm:"index"`
	TransactionSaleID     *uint            `gorm:"index"`
	TransactionPurchase   *Transaction     `gorm:"foreignKey:TransactionPurchaseID"`
	TransactionSale       *Transaction     `gorm:"foreignKey:TransactionSaleID"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
