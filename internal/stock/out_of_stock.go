package stock

import (
	"errors"

	"github.com/Clochette-AbsINThe/clochette-sub000/internal/apperr"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/transaction"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AttachOutOfStockPurchase records an untracked purchase line. Name and icon
// are snapshotted from the catalog item at creation.
func AttachOutOfStockPurchase(db *gorm.DB, txID, itemID uint, buyPrice decimal.Decimal) (*models.OutOfStock, error) {
	if buyPrice.IsNegative() {
		return nil, apperr.InvalidState("prices must not be negative")
	}

	var record *models.OutOfStock
	err := db.Transaction(func(tx *gorm.DB) error {
		trn, err := transaction.RequirePendingCommerce(tx, txID, models.TradePurchase)
		if err != nil {
			return err
		}

		item, err := findOutOfStockItem(tx, itemID)
		if err != nil {
			return err
		}

		rounded := buyPrice.Round(2)
		record = &models.OutOfStock{
			OutOfStockItemID:      item.ID,
			Name:                  item.Name,
			Icon:                  item.Icon,
			BuyPrice:              &rounded,
			TransactionPurchaseID: &trn.ID,
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// SellOutOfStock records an untracked sale line at the catalog item's sell
// price. Items without a sell price are purchase-only.
func SellOutOfStock(db *gorm.DB, txID, itemID uint) (*models.OutOfStock, error) {
	var record *models.OutOfStock
	err := db.Transaction(func(tx *gorm.DB) error {
		trn, err := transaction.RequirePendingCommerce(tx, txID, models.TradeSale)
		if err != nil {
			return err
		}

		item, err := findOutOfStockItem(tx, itemID)
		if err != nil {
			return err
		}
		if item.SellPrice == nil {
			return apperr.InvalidState("item %q has no sell price and cannot be sold", item.Name)
		}

		price := item.SellPrice.Round(2)
		record = &models.OutOfStock{
			OutOfStockItemID:  item.ID,
			Name:              item.Name,
			Icon:              item.Icon,
			SellPrice:         &price,
			TransactionSaleID: &trn.ID,
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func findOutOfStockItem(tx *gorm.DB, id uint) (*models.OutOfStockItem, error) {
	var item models.OutOfStockItem
	if err := tx.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("out-of-stock item %d not found", id)
		}
		return nil, err
	}
	return &item, nil
}

// ListOutOfStocks returns the lines attached to one transaction.
func ListOutOfStocks(db *gorm.DB, txID uint) ([]models.OutOfStock, error) {
	var records []models.OutOfStock
	err := db.Where("transaction_purchase_id = ? OR transaction_sale_id = ?", txID, txID).
		Order("id asc").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
