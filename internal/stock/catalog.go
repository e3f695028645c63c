package stock

import (
	"errors"

	"github.com/Clochette-AbsINThe/clochette-sub000/internal/apperr"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Catalog entries (drinks, consumable types, non-inventoried types,
// out-of-stock types) can only be deleted while nothing references them;
// item instances keep history alive and block the delete.

func CreateDrink(db *gorm.DB, name string) (*models.Drink, error) {
	d := models.Drink{Name: name}
	if err := db.Create(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Integrity("drink %q already exists", name)
		}
		return nil, err
	}
	return &d, nil
}

func ListDrinks(db *gorm.DB) ([]models.Drink, error) {
	var drinks []models.Drink
	if err := db.Order("name asc").Find(&drinks).Error; err != nil {
		return nil, err
	}
	return drinks, nil
}

func UpdateDrink(db *gorm.DB, id uint, name string) (*models.Drink, error) {
	var d models.Drink
	if err := db.First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("drink %d not found", id)
		}
		return nil, err
	}
	d.Name = name
	if err := db.Save(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Integrity("drink %q already exists", name)
		}
		return nil, err
	}
	return &d, nil
}

func DeleteDrink(db *gorm.DB, id uint) error {
	var d models.Drink
	if err := db.First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("drink %d not found", id)
		}
		return err
	}

	var n int64
	if err := db.Model(&models.Barrel{}).Where("drink_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apperr.UsedElement("drink %d is referenced by %d barrel(s)", id, n)
	}
	return db.Delete(&d).Error
}

func CreateConsumableItem(db *gorm.DB, name, icon string) (*models.ConsumableItem, error) {
	item := models.ConsumableItem{Name: name, Icon: icon}
	if err := db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Integrity("consumable item %q already exists", name)
		}
		return nil, err
	}
	return &item, nil
}

func ListConsumableItems(db *gorm.DB) ([]models.ConsumableItem, error) {
	var items []models.ConsumableItem
	if err := db.Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func DeleteConsumableItem(db *gorm.DB, id uint) error {
	var item models.ConsumableItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("consumable item %d not found", id)
		}
		return err
	}

	var n int64
	if err := db.Model(&models.Consumable{}).Where("consumable_item_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apperr.UsedElement("consumable item %d is referenced by %d consumable(s)", id, n)
	}
	return db.Delete(&item).Error
}

func CreateNonInventoriedItem(db *gorm.DB, name, icon string, trade models.TradeType, sellPrice *decimal.Decimal) (*models.NonInventoriedItem, error) {
	if !trade.Valid() {
		return nil, apperr.InvalidState("unknown trade %q", trade)
	}
	if trade == models.TradeSale && sellPrice == nil {
		return nil, apperr.InvalidState("a sale item needs a sell price")
	}
	if trade == models.TradePurchase && sellPrice != nil {
		return nil, apperr.InvalidState("a purchase-only item cannot have a sell price")
	}

	item := models.NonInventoriedItem{Name: name, Icon: icon, Trade: trade, SellPrice: sellPrice}
	if err := db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Integrity("non-inventoried item %q already exists", name)
		}
		return nil, err
	}
	return &item, nil
}

func ListNonInventoriedItems(db *gorm.DB) ([]models.NonInventoriedItem, error) {
	var items []models.NonInventoriedItem
	if err := db.Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func DeleteNonInventoriedItem(db *gorm.DB, id uint) error {
	var item models.NonInventoriedItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("non-inventoried item %d not found", id)
		}
		return err
	}

	var n int64
	if err := db.Model(&models.NonInventoried{}).Where("non_inventoried_item_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apperr.UsedElement("non-inventoried item %d is referenced by %d record(s)", id, n)
	}
	return db.Delete(&item).Error
}

func CreateOutOfStockItem(db *gorm.DB, name, icon string, sellPrice *decimal.Decimal) (*models.OutOfStockItem, error) {
	item := models.OutOfStockItem{Name: name, Icon: icon, SellPrice: sellPrice}
	if err := db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Integrity("out-of-stock item %q already exists", name)
		}
		return nil, err
	}
	return &item, nil
}

func ListOutOfStockItems(db *gorm.DB) ([]models.OutOfStockItem, error) {
	var items []models.OutOfStockItem
	if err := db.Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func DeleteOutOfStockItem(db *gorm.DB, id uint) error {
	var item models.OutOfStockItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("out-of-stock item %d not found", id)
		}
		return err
	}

	var n int64
	if err := db.Model(&models.OutOfStock{}).Where("out_of_stock_item_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apperr.UsedElement("out-of-stock item %d is referenced by %d record(s)", id, n)
	}
	return db.Delete(&item).Error
}
