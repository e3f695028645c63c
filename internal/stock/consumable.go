package stock

import (
	"errors"

	"github.com/Clochette-AbsINThe/clochette-sub000/internal/apperr"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/transaction"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttachConsumablePurchase creates a consumable unit on a pending purchase
// transaction.
func AttachConsumablePurchase(db *gorm.DB, txID, itemID uint, buyPrice, sellPrice decimal.Decimal) (*models.Consumable, error) {
	if buyPrice.IsNegative() || sellPrice.IsNegative() {
		return nil, apperr.InvalidState("prices must not be negative")
	}

	var consumable *models.Consumable
	err := db.Transaction(func(tx *gorm.DB) error {
		trn, err := transaction.RequirePendingCommerce(tx, txID, models.TradePurchase)
		if err != nil {
			return err
		}

		var item models.ConsumableItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("consumable item %d not found", itemID)
			}
			return err
		}

		consumable = &models.Consumable{
			ConsumableItemID:      item.ID,
			BuyPrice:              buyPrice.Round(2),
			SellPrice:             sellPrice.Round(2),
			TransactionPurchaseID: &trn.ID,
		}
		return tx.Create(consumable).Error
	})
	if err != nil {
		return nil, err
	}
	return consumable, nil
}

// SellConsumable attaches an available consumable to a pending sale
// transaction. Selling the same unit twice fails.
func SellConsumable(db *gorm.DB, consumableID, txID uint) (*models.Consumable, error) {
	var consumable models.Consumable
	err := db.Transaction(func(tx *gorm.DB) error {
		trn, err := transaction.RequirePendingCommerce(tx, txID, models.TradeSale)
		if err != nil {
			return err
		}

		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&consumable, "id = ?", consumableID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("consumable %d not found", consumableID)
			}
			return err
		}
		if consumable.Solded {
			return apperr.NoLongerInStock("consumable %d is already sold", consumableID)
		}

		consumable.TransactionSaleID = &trn.ID
		consumable.Solded = true
		return tx.Save(&consumable).Error
	})
	if err != nil {
		return nil, err
	}
	return &consumable, nil
}

// ListConsumables returns consumables, optionally only the unsold ones.
func ListConsumables(db *gorm.DB, availableOnly bool) ([]models.Consumable, error) {
	q := db.Model(&models.Consumable{}).Preload("ConsumableItem")
	if availableOnly {
		q = q.Where("solded = ?", false)
	}

	var consumables []models.Consumable
	if err := q.Order("id asc").Find(&consumables).Error; err != nil {
		return nil, err
	}
	return consumables, nil
}
