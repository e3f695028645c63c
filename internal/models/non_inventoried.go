package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NonInventoriedItem is a catalog entry for goods that are not tracked
// unit-by-unit (ecocups, event tickets, miscellaneous supplies). The item
// itself carries a trade direction: a sale-only item can never be attached
// to a purchase transaction and vice versa.
type NonInventoriedItem struct {
	ID    uint      `gorm:"primaryKey"`
	Name  string    `gorm:"size:100;not null;unique"`
	Icon  string    `gorm:"size:50"`
	Trade TradeType `gorm:"size:20;not null"`
	// SellPrice is the default price offered when attaching a sale; it is
	// null for purchase-only items.
	SellPrice *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NonInventoried records one attachment of a non-inventoried item to a
// transaction. Exactly one of BuyPrice/SellPrice is set, matching the trade
// of the transaction it was attached to.
type NonInventoried struct {
	ID                    uint               `gorm:"primaryKey"`
	NonInventoriedItemID  uint               `gorm:"index;not null"`
	NonInventoriedItem    NonInventoriedItem `gorm:"foreignKey:NonInventoriedItemID"`
	BuyPrice              *decimal.Decimal   `gorm:"type:decimal(12,2)"`
	SellPrice             *decimal.Decimal   `gorm:"type:decimal(12,2)"`
	TransactionPurchaseID *uint              `gorm:"index"`
	TransactionSaleID     *uint              `gorm:"index"`
	TransactionPurchase   *Transaction       `gorm:"foreignKey:TransactionPurchaseID"`
	TransactionSale       *Transaction       `gorm:"foreignKey:TransactionSaleID"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
