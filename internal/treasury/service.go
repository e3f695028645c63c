package treasury

import (
	"errors"

	"github.com/Clochette-AbsINThe/clochette-sub000/internal/apperr"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var one = decimal.NewFromInt(1)

// Latest returns the current treasury, i.e. the most recently created row.
func Latest(db *gorm.DB) (*models.Treasury, error) {
	var t models.Treasury
	if err := db.Order("id DESC").First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no treasury configured")
		}
		return nil, err
	}
	return &t, nil
}

// LatestForUpdate is Latest with a row lock, for use inside a database
// transaction that is about to post to the ledger.
func LatestForUpdate(tx *gorm.DB) (*models.Treasury, error) {
	var t models.Treasury
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Order("id DESC").First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no treasury configured")
		}
		return nil, err
	}
	return &t, nil
}

// GetForUpdate loads a specific treasury row with a row lock.
func GetForUpdate(tx *gorm.DB, id uint) (*models.Treasury, error) {
	var t models.Treasury
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("treasury %d not found", id)
		}
		return nil, err
	}
	return &t, nil
}

// Create opens a new treasury period. Old rows are kept as history; the new
// row becomes the current ledger.
func Create(db *gorm.DB, totalAmount, cashAmount, lydiaRate decimal.Decimal) (*models.Treasury, error) {
	if lydiaRate.IsNegative() || lydiaRate.GreaterThanOrEqual(one) {
		return nil, apperr.InvalidState("lydia_rate must be in [0,1)")
	}
	if cashAmount.IsNegative() {
		return nil, apperr.NegativeCashAmount()
	}

	t := models.Treasury{
		TotalAmount: totalAmount.Round(2),
		CashAmount:  cashAmount.Round(2),
		LydiaRate:   lydiaRate,
	}
	if err := db.Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateLydiaRate changes the provider fee fraction on the current treasury.
// Historical rows stay frozen: deleting an old Lydia sale reverts against the
// rate of the row it was posted to, so editing past rows would corrupt that.
func UpdateLydiaRate(db *gorm.DB, id uint, rate decimal.Decimal) (*models.Treasury, error) {
	if rate.IsNegative() || rate.GreaterThanOrEqual(one) {
		return nil, apperr.InvalidState("lydia_rate must be in [0,1)")
	}

	var t *models.Treasury
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		t, err = LatestForUpdate(tx)
		if err != nil {
			return err
		}
		if t.ID != id {
			return apperr.InvalidState("treasury %d is not the current treasury", id)
		}

		t.LydiaRate = rate
		return tx.Save(t).Error
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Post applies the monetary effect of a transaction to the ledger. The
// amount is a non-negative magnitude; isSale gives the direction. Sales paid
// through Lydia are discounted by the provider fee before reaching the total;
// purchases pay the fee in full. Every balance is rounded to 2 decimals after
// mutation so sub-cent drift never accumulates.
//
// Post persists t through tx; the caller owns the surrounding database
// transaction so ledger and transaction writes commit together.
func Post(tx *gorm.DB, t *models.Treasury, amount decimal.Decimal, isSale bool, method models.PaymentMethod) error {
	if amount.IsNegative() {
		return apperr.Integrity("ledger amount must not be negative")
	}

	effective := amount
	if method == models.PaymentLydia && isSale {
		effective = amount.Mul(one.Sub(t.LydiaRate)).Round(2)
	}

	total := t.TotalAmount
	if isSale {
		total = total.Add(effective).Round(2)
	} else {
		total = total.Sub(effective).Round(2)
	}

	cash := t.CashAmount
	if method == models.PaymentCash {
		if isSale {
			cash = cash.Add(amount).Round(2)
		} else {
			cash = cash.Sub(amount).Round(2)
		}
		if cash.IsNegative() {
			return apperr.NegativeCashAmount()
		}
	}

	t.TotalAmount = total
	t.CashAmount = cash
	return tx.Save(t).Error
}

// Revert undoes a previous Post with the same arguments, applying the same
// Lydia and cash rules with the direction flipped. Used when a transaction
// is deleted.
func Revert(tx *gorm.DB, t *models.Treasury, amount decimal.Decimal, isSale bool, method models.PaymentMethod) error {
	if amount.IsNegative() {
		return apperr.Integrity("ledger amount must not be negative")
	}

	effective := amount
	if method == models.PaymentLydia && isSale {
		effective = amount.Mul(one.Sub(t.LydiaRate)).Round(2)
	}

	total := t.TotalAmount
	if isSale {
		total = total.Sub(effective).Round(2)
	} else {
		total = total.Add(effective).Round(2)
	}

	cash := t.CashAmount
	if method == models.PaymentCash {
		if isSale {
			cash = cash.Sub(amount).Round(2)
		} else {
			cash = cash.Add(amount).Round(2)
		}
		if cash.IsNegative() {
			return apperr.NegativeCashAmount()
		}
	}

	t.TotalAmount = total
	t.CashAmount = cash
	return tx.Save(t).Error
}
