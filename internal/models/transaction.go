package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCard     PaymentMethod = "card"
	PaymentCash     PaymentMethod = "cash"
	PaymentLydia    PaymentMethod = "lydia"
	PaymentTransfer PaymentMethod = "transfer" // bank transfer
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentCash, PaymentLydia, PaymentTransfer:
		return true
	}
	return false
}

type TradeType string

const (
	TradePurchase TradeType = "purchase"
	TradeSale     TradeType = "sale"
)

func (t TradeType) Valid() bool {
	return t == TradePurchase || t == TradeSale
}

type TransactionType string

const (
	TypeCommerce TransactionType = "commerce"
	TypeTreasury TransactionType = "treasury"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusValidated TransactionStatus = "validated"
)

// Transaction is one commercial or treasury movement. Commerce transactions
// open in pending status with a zero amount and get their final amount when
// validated; treasury transactions are validated from creation.
//
// The partial unique index on Type keeps at most one pending commerce
// transaction in the whole table, closing the race between two concurrent
// create calls that both observed "no pending transaction".
type Transaction struct {
	ID            uint              `gorm:"primaryKey"`
	Datetime      time.Time         `gorm:"index;not null"`
	PaymentMethod PaymentMethod     `gorm:"size:20;not null"`
	Trade         TradeType         `gorm:"size:20;not null"`
	Type          TransactionType   `gorm:"size:20;not null;index:uniq_open_commerce,unique,where:status = 'pending' AND type = 'commerce'"`
	Status        TransactionStatus `gorm:"size:20;not null;index"`
	// Amount is signed: sales positive, purchases negative. Zero while a
	// commerce transaction is still pending.
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description string          `gorm:"size:500"`
	TreasuryID  uint            `gorm:"index;not null"`
	Treasury    Treasury        `gorm:"foreignKey:TreasuryID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
