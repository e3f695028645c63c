package stock

import (
	"errors"

	"github.com/Clochette-AbsINThe/clochette-sub000/internal/apperr"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/transaction"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PourGlass attaches one glass from a mounted barrel to a pending sale
// transaction. The barrel row is locked while its sell price is copied onto
// the glass, so a concurrent price edit cannot leak into this sale. The
// snapshot is immutable afterwards.
func PourGlass(db *gorm.DB, txID, barrelID uint) (*models.Glass, error) {
	var glass *models.Glass
	err := db.Transaction(func(tx *gorm.DB) error {
		trn, err := transaction.RequirePendingCommerce(tx, txID, models.TradeSale)
		if err != nil {
			return err
		}

		var barrel models.Barrel
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
		if !barrel.IsMounted {
			return apperr.InvalidState("barrel %d is not mounted", barrelID)
		}

		glass = &models.Glass{
			BarrelID:      barrel.ID,
			SellPrice:     barrel.SellPrice,
			TransactionID: trn.ID,
		}
		return tx.Create(glass).Error
	})
	if err != nil {
		return nil, err
	}
	return glass, nil
}

// ListGlasses returns the glasses poured on one transaction.
func ListGlasses(db *gorm.DB, txID uint) ([]models.Glass, error) {
	var glasses []models.Glass
	err := db.Preload("Barrel").Preload("Barrel.Drink").
		Where("transaction_id = ?", txID).
		Order("id asc").Find(&glasses).Error
	if err != nil {
		return nil, err
	}
	return glasses, nil
}
