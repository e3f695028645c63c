package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Treasury is the running-balance ledger of the association.
// A new row is opened per accounting period; the most recent one is the
// current ledger and old rows are kept as history. CashAmount tracks the
// physical cash box and must never go below zero.
type Treasury struct {
	ID          uint            `gorm:"primaryKey"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CashAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// LydiaRate is the fee fraction withheld by the payment provider on
	// sales, e.g. 0.015 for 1.5%.
	LydiaRate decimal.Decimal `gorm:"type:decimal(5,4);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
