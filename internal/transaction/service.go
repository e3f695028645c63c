package transaction

import (
	"errors"
	"time"

	"github.com/Clochette-AbsINThe/clochette-sub000/internal/apperr"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/treasury"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateCommerce opens the single pending commerce transaction. Line items
// attach to it afterwards; the amount stays at zero until validation.
//
// Admission control: at most one commerce transaction may be pending at any
// time. The count check below gives the friendly error, and the partial
// unique index on the transactions table closes the window between two
// concurrent creates; the resulting duplicate-key error maps to the same
// rejection.
func CreateCommerce(db *gorm.DB, trade models.TradeType, method models.PaymentMethod, at time.Time) (*models.Transaction, error) {
	if !trade.Valid() {
		return nil, apperr.InvalidState("unknown trade %q", trade)
	}
	if !method.Valid() {
		return nil, apperr.InvalidState("unknown payment method %q", method)
	}

	var trn *models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var pending int64
		if err := tx.Model(&models.Transaction{}).
			Where("type = ? AND status = ?", models.TypeCommerce, models.StatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return apperr.AlreadyPending()
		}

		t, err := treasury.Latest(tx)
		if err != nil {
			return err
		}

		trn = &models.Transaction{
			Datetime:      at,
			PaymentMethod: method,
			Trade:         trade,
			Type:          models.TypeCommerce,
			Status:        models.StatusPending,
			Amount:        decimal.Zero,
			TreasuryID:    t.ID,
		}
		if err := tx.Create(trn).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.AlreadyPending()
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trn, nil
}

// CreateTreasury records a direct ledger adjustment (bank deposit, cash
// drop...). The amount sign is normalized to the trade, negative for
// purchases and positive for sales, then posted to the ledger immediately;
// there is no pending phase and the single-pending slot is not involved.
func CreateTreasury(db *gorm.DB, trade models.TradeType, method models.PaymentMethod, at time.Time, amount decimal.Decimal, description string) (*models.Transaction, error) {
	if !trade.Valid() {
		return nil, apperr.InvalidState("unknown trade %q", trade)
	}
	if !method.Valid() {
		return nil, apperr.InvalidState("unknown payment method %q", method)
	}

	magnitude := amount.Abs().Round(2)
	signed := magnitude
	if trade == models.TradePurchase {
		signed = magnitude.Neg()
	}

	var trn *models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		t, err := treasury.LatestForUpdate(tx)
		if err != nil {
			return err
		}
		if err := treasury.Post(tx, t, magnitude, trade == models.TradeSale, method); err != nil {
			return err
		}

		trn = &models.Transaction{
			Datetime:      at,
			PaymentMethod: method,
			Trade:         trade,
			Type:          models.TypeTreasury,
			Status:        models.StatusValidated,
			Amount:        signed,
			Description:   description,
			TreasuryID:    t.ID,
		}
		return tx.Create(trn).Error
	})
	if err != nil {
		return nil, err
	}
	return trn, nil
}

// Validate closes a pending commerce transaction: the amount is derived from
// the attached line items (never caller-supplied), posted to the ledger row
// the transaction was opened against, and the status flips to validated.
// Ledger and transaction are persisted in the same database transaction.
func Validate(db *gorm.DB, id uint) (*models.Transaction, error) {
	var trn models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&trn, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("transaction %d not found", id)
			}
			return err
		}
		if trn.Type != models.TypeCommerce {
			return apperr.InvalidState("transaction %d is not a commerce transaction", id)
		}
		if trn.Status != models.StatusPending {
			return apperr.InvalidState("transaction %d is not pending", id)
		}

		magnitude, err := derivedAmount(tx, &trn)
		if err != nil {
			return err
		}

		t, err := treasury.GetForUpdate(tx, trn.TreasuryID)
		if err != nil {
			return err
		}
		if err := treasury.Post(tx, t, magnitude, trn.Trade == models.TradeSale, trn.PaymentMethod); err != nil {
			return err
		}

		trn.Amount = magnitude
		if trn.Trade == models.TradePurchase {
			trn.Amount = magnitude.Neg()
		}
		trn.Status = models.StatusValidated
		return tx.Save(&trn).Error
	})
	if err != nil {
		return nil, err
	}
	return &trn, nil
}

// Delete removes a transaction and undoes its ledger effect. It is refused
// while any item references the transaction as its sale leg, and likewise
// while any item it purchased has already been sold or poured from. Unsold
// purchase-leg items are removed with it: cancelling a purchase cancels the
// goods it brought in. A still-pending commerce transaction has a zero
// amount, so the revert is a no-op in effect, but it is invoked all the same.
func Delete(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var trn models.Transaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&trn, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("transaction %d not found", id)
			}
			return err
		}

		refs, err := saleReferenceCount(tx, trn.ID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return apperr.UsedElement("transaction %d is referenced by %d sold item(s)", id, refs)
		}

		sold, err := soldPurchaseCount(tx, trn.ID)
		if err != nil {
			return err
		}
		if sold > 0 {
			return apperr.UsedElement("transaction %d purchased %d item(s) that were since sold", id, sold)
		}

		t, err := treasury.GetForUpdate(tx, trn.TreasuryID)
		if err != nil {
			return err
		}
		if err := treasury.Revert(tx, t, trn.Amount.Abs(), trn.Trade == models.TradeSale, trn.PaymentMethod); err != nil {
			return err
		}

		for _, m := range []any{
			&models.Barrel{}, &models.Consumable{},
			&models.NonInventoried{}, &models.OutOfStock{},
		} {
			if err := tx.Where("transaction_purchase_id = ?", trn.ID).Delete(m).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&trn).Error
	})
}

// Get returns one transaction by id.
func Get(db *gorm.DB, id uint) (*models.Transaction, error) {
	var trn models.Transaction
	if err := db.First(&trn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("transaction %d not found", id)
		}
		return nil, err
	}
	return &trn, nil
}

// List returns transactions ordered by datetime, optionally bounded.
func List(db *gorm.DB, from, to *time.Time) ([]models.Transaction, error) {
	q := db.Model(&models.Transaction{})
	if from != nil {
		q = q.Where("datetime >= ?", *from)
	}
	if to != nil {
		q = q.Where("datetime <= ?", *to)
	}

	var trns []models.Transaction
	if err := q.Order("datetime asc, id asc").Find(&trns).Error; err != nil {
		return nil, err
	}
	return trns, nil
}

// RequirePendingCommerce is the shared attachment guard: the transaction
// must exist, be pending, run the expected trade and be of commerce type.
// Every item family applies it before touching its rows.
func RequirePendingCommerce(tx *gorm.DB, id uint, trade models.TradeType) (*models.Transaction, error) {
	var trn models.Transaction
	if err := tx.First(&trn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("transaction %d not found", id)
		}
		return nil, err
	}
	if trn.Status != models.StatusPending {
		return nil, apperr.InvalidState("transaction %d is not pending", id)
	}
	if trn.Trade != trade {
		return nil, apperr.InvalidState("transaction %d is not a %s transaction", id, trade)
	}
	if trn.Type != models.TypeCommerce {
		return nil, apperr.InvalidState("transaction %d is not a commerce transaction", id)
	}
	return &trn, nil
}

type legSum struct {
	table  string
	column string
	leg    string
}

// derivedAmount sums the attached line items: sell prices for a sale,
// buy prices for a purchase. Always a non-negative magnitude.
func derivedAmount(tx *gorm.DB, trn *models.Transaction) (decimal.Decimal, error) {
	var sums []legSum
	if trn.Trade == models.TradeSale {
		sums = []legSum{
			{"glasses", "sell_price", "transaction_id"},
			{"barrels", "sell_price", "transaction_sale_id"},
			{"consumables", "sell_price", "transaction_sale_id"},
			{"non_inventorieds", "sell_price", "transaction_sale_id"},
			{"out_of_stocks", "sell_price", "transaction_sale_id"},
		}
	} else {
		sums = []legSum{
			{"barrels", "buy_price", "transaction_purchase_id"},
			{"consumables", "buy_price", "transaction_purchase_id"},
			{"non_inventorieds", "buy_price", "transaction_purchase_id"},
			{"out_of_stocks", "buy_price", "transaction_purchase_id"},
		}
	}

	total := decimal.Zero
	for _, s := range sums {
		var sum decimal.Decimal
		row := tx.Table(s.table).
			Select("COALESCE(SUM(" + s.column + "), 0)").
			Where(s.leg+" = ?", trn.ID).
			Row()
		if err := row.Scan(&sum); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(sum)
	}
	return total.Round(2), nil
}

// soldPurchaseCount counts items bought on this transaction that already
// belong to sale history: barrels sold whole or poured into glasses, and
// consumables sold on. Purging those would erase another transaction's line
// items. Non-inventoried and out-of-stock rows carry a single leg each, so
// their purchase rows are always safe to purge.
func soldPurchaseCount(tx *gorm.DB, id uint) (int64, error) {
	var total int64

	var n int64
	err := tx.Model(&models.Barrel{}).
		Where("transaction_purchase_id = ? AND transaction_sale_id IS NOT NULL", id).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	total += n

	err = tx.Model(&models.Glass{}).
		Where("barrel_id IN (?)", tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.Barrel{}).Select("id").Where("transaction_purchase_id = ?", id)).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	total += n

	err = tx.Model(&models.Consumable{}).
		Where("transaction_purchase_id = ? AND solded = ?", id, true).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	total += n

	return total, nil
}

// saleReferenceCount counts item rows holding this transaction as their sale
// leg across every family.
func saleReferenceCount(tx *gorm.DB, id uint) (int64, error) {
	legs := []struct {
		model any
		leg   string
	}{
		{&models.Glass{}, "transaction_id"},
		{&models.Barrel{}, "transaction_sale_id"},
		{&models.Consumable{}, "transaction_sale_id"},
		{&models.NonInventoried{}, "transaction_sale_id"},
		{&models.OutOfStock{}, "transaction_sale_id"},
	}

	var total int64
	for _, l := range legs {
		var n int64
		if err := tx.Model(l.model).Where(l.leg+" = ?", id).Count(&n).Error; err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
