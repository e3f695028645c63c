package stock

import (
	"errors"

	"github.com/Clochette-AbsINThe/clochette-sub000/internal/apperr"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/transaction"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AttachNonInventoried attaches a non-inventoried item to a pending
// transaction of the given trade. The catalog item carries its own trade
// direction, which must match the transaction's, and exactly one of the two
// prices is recorded, the one the trade calls for.
func AttachNonInventoried(db *gorm.DB, txID, itemID uint, trade models.TradeType, price decimal.Decimal) (*models.NonInventoried, error) {
	if !trade.Valid() {
		return nil, apperr.InvalidState("unknown trade %q", trade)
	}
	if price.IsNegative() {
		return nil, apperr.InvalidState("prices must not be negative")
	}

	var record *models.NonInventoried
	err := db.Transaction(func(tx *gorm.DB) error {
		trn, err := transaction.RequirePendingCommerce(tx, txID, trade)
		if err != nil {
			return err
		}

		var item models.NonInventoriedItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("non-inventoried item %d not found", itemID)
			}
			return err
		}
		if item.Trade != trade {
			return apperr.InvalidState("item %q is %s-only and cannot be attached to a %s transaction", item.Name, item.Trade, trade)
		}

		rounded := price.Round(2)
		record = &models.NonInventoried{NonInventoriedItemID: item.ID}
		if trade == models.TradePurchase {
			record.BuyPrice = &rounded
			record.TransactionPurchaseID = &trn.ID
		} else {
			record.SellPrice = &rounded
			record.TransactionSaleID = &trn.ID
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListNonInventoried returns the records attached to one transaction,
// whichever leg they sit on.
func ListNonInventoried(db *gorm.DB, txID uint) ([]models.NonInventoried, error) {
	var records []models.NonInventoried
	err := db.Preload("NonInventoriedItem").
		Where("transaction_purchase_id = ? OR transaction_sale_id = ?", txID, txID).
		Order("id asc").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
