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

// AttachBarrelPurchase creates a barrel on a pending purchase transaction.
func AttachBarrelPurchase(db *gorm.DB, txID, drinkID uint, buyPrice, sellPrice decimal.Decimal) (*models.Barrel, error) {
	if buyPrice.IsNegative() || sellPrice.IsNegative() {
		return nil, apperr.InvalidState("prices must not be negative")
	}

	var barrel *models.Barrel
	err := db.Transaction(func(tx *gorm.DB) error {
		trn, err := transaction.RequirePendingCommerce(tx, txID, models.TradePurchase)
		if err != nil {
			return err
		}

		var drink models.Drink
		if err := tx.First(&drink, "id = ?", drinkID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("drink %d not found", drinkID)
			}
			return err
		}

		barrel = &models.Barrel{
			DrinkID:               drink.ID,
			BuyPrice:              buyPrice.Round(2),
			SellPrice:             sellPrice.Round(2),
			TransactionPurchaseID: &trn.ID,
		}
		return tx.Create(barrel).Error
	})
	if err != nil {
		return nil, err
	}
	return barrel, nil
}

// SellBarrel attaches an available barrel to a pending sale transaction,
// selling it as a whole unit. The barrel leaves the stock permanently.
func SellBarrel(db *gorm.DB, barrelID, txID uint) (*models.Barrel, error) {
	var barrel models.Barrel
	err := db.Transaction(func(tx *gorm.DB) error {
		trn, err := transaction.RequirePendingCommerce(tx, txID, models.TradeSale)
		if err != nil {
			return err
		}

		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&barrel, "id = ?", barrelID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("barrel %d not found", barrelID)
			}
			return err
		}
		if barrel.EmptyOrSolded {
			return apperr.NoLongerInStock("barrel %d is empty or already sold", barrelID)
		}

		barrel.TransactionSaleID = &trn.ID
		barrel.EmptyOrSolded = true
		barrel.IsMounted = false
		return tx.Save(&barrel).Error
	})
	if err != nil {
		return nil, err
	}
	return &barrel, nil
}

type UpdateBarrelInput struct {
	IsMounted     *bool
	EmptyOrSolded *bool
	SellPrice     *decimal.Decimal
}

// UpdateBarrel handles bar-side state changes: mounting/unmounting, marking
// a barrel drained, adjusting the glass price. All of it is refused once the
// barrel is sold or empty; historical prices stay frozen.
func UpdateBarrel(db *gorm.DB, id uint, in UpdateBarrelInput) (*models.Barrel, error) {
	var barrel models.Barrel
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&barrel, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("barrel %d not found", id)
			}
			return err
		}
		if barrel.EmptyOrSolded {
			return apperr.NoLongerInStock("barrel %d is empty or already sold", id)
		}

		if in.SellPrice != nil {
			if in.SellPrice.IsNegative() {
				return apperr.InvalidState("prices must not be negative")
			}
			barrel.SellPrice = in.SellPrice.Round(2)
		}
		if in.IsMounted != nil {
			barrel.IsMounted = *in.IsMounted
		}
		if in.EmptyOrSolded != nil && *in.EmptyOrSolded {
			barrel.EmptyOrSolded = true
			barrel.IsMounted = false
		}
		return tx.Save(&barrel).Error
	})
	if err != nil {
		return nil, err
	}
	return &barrel, nil
}

// ListBarrels returns barrels, optionally only mounted or only available.
func ListBarrels(db *gorm.DB, mountedOnly, availableOnly bool) ([]models.Barrel, error) {
	q := db.Model(&models.Barrel{}).Preload("Drink")
	if mountedOnly {
		q = q.Where("is_mounted = ?", true)
	}
	if availableOnly {
		q = q.Where("empty_or_solded = ?", false)
	}

	var barrels []models.Barrel
	if err := q.Order("id asc").Find(&barrels).Error; err != nil {
		return nil, err
	}
	return barrels, nil
}
