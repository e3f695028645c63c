package stock

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Clochette-AbsINThe/clochette-sub000/internal/apperr"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/database"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/transaction"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/treasury"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s got %s", want, got)
}

func seedLedger(t *testing.T, db *gorm.DB) *models.Treasury {
	t.Helper()
	tr, err := treasury.Create(db, dec("0"), dec("0"), dec("0.015"))
	require.NoError(t, err)
	return tr
}

func openTransaction(t *testing.T, db *gorm.DB, trade models.TradeType, method models.PaymentMethod) *models.Transaction {
	t.Helper()
	trn, err := transaction.CreateCommerce(db, trade, method, time.Now())
	require.NoError(t, err)
	return trn
}

func seedDrink(t *testing.T, db *gorm.DB, name string) *models.Drink {
	t.Helper()
	d, err := CreateDrink(db, name)
	require.NoError(t, err)
	return d
}

func TestAttachmentGuard(t *testing.T) {
	db := setupDB(t)
	seedLedger(t, db)
	drink := seedDrink(t, db, "Chouffe")

	_, err := AttachBarrelPurchase(db, 99, drink.ID, dec("50"), dec("2.00"))
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	sale := openTransaction(t, db, models.TradeSale, models.PaymentCash)

	// trade mismatch: a barrel purchase needs a purchase transaction
	_, err = AttachBarrelPurchase(db, sale.ID, drink.ID, dec("50"), dec("2.00"))
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))

	_, err = transaction.Validate(db, sale.ID)
	require.NoError(t, err)

	// validated transactions accept nothing further
	_, err = PourGlass(db, sale.ID, 1)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestBarrelLifecycle(t *testing.T) {
	db := setupDB(t)
	seedLedger(t, db)
	drink := seedDrink(t, db, "Kwak")

	purchase := openTransaction(t, db, models.TradePurchase, models.PaymentCard)
	barrel, err := AttachBarrelPurchase(db, purchase.ID, drink.ID, dec("75.40"), dec("2.50"))
	require.NoError(t, err)
	require.NotNil(t, barrel.TransactionPurchaseID)
	assert.Equal(t, purchase.ID, *barrel.TransactionPurchaseID)
	assert.False(t, barrel.IsMounted)
	_, err = transaction.Validate(db, purchase.ID)
	require.NoError(t, err)

	mounted := true
	barrel, err = UpdateBarrel(db, barrel.ID, UpdateBarrelInput{IsMounted: &mounted})
	require.NoError(t, err)
	assert.True(t, barrel.IsMounted)

	sale := openTransaction(t, db, models.TradeSale, models.PaymentCash)
	barrel, err = SellBarrel(db, barrel.ID, sale.ID)
	require.NoError(t, err)
	assert.True(t, barrel.EmptyOrSolded)
	assert.False(t, barrel.IsMounted)

	// gone is gone
	_, err = SellBarrel(db, barrel.ID, sale.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNoLongerInStock))
	_, err = UpdateBarrel(db, barrel.ID, UpdateBarrelInput{IsMounted: &mounted})
	assert.True(t, apperr.IsKind(err, apperr.KindNoLongerInStock))

	available, err := ListBarrels(db, false, true)
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestGlassSnapshotsBarrelPrice(t *testing.T) {
	db := setupDB(t)
	seedLedger(t, db)
	drink := seedDrink(t, db, "Tripel")

	mounted := true
	barrel := models.Barrel{DrinkID: drink.ID, BuyPrice: dec("60"), SellPrice: dec("2.00"), IsMounted: mounted}
	require.NoError(t, db.Create(&barrel).Error)

	sale := openTransaction(t, db, models.TradeSale, models.PaymentCash)
	glass, err := PourGlass(db, sale.ID, barrel.ID)
	require.NoError(t, err)
	assertDecimal(t, "2.00", glass.SellPrice)

	price := dec("2.50")
	_, err = UpdateBarrel(db, barrel.ID, UpdateBarrelInput{SellPrice: &price})
	require.NoError(t, err)

	// already-poured glasses keep the old price, new pours take the new one
	var reloaded models.Glass
	require.NoError(t, db.First(&reloaded, glass.ID).Error)
	assertDecimal(t, "2.00", reloaded.SellPrice)

	second, err := PourGlass(db, sale.ID, barrel.ID)
	require.NoError(t, err)
	assertDecimal(t, "2.50", second.SellPrice)

	glasses, err := ListGlasses(db, sale.ID)
	require.NoError(t, err)
	assert.Len(t, glasses, 2)
}

func TestPourRequiresMountedBarrel(t *testing.T) {
	db := setupDB(t)
	seedLedger(t, db)
	drink := seedDrink(t, db, "Lager")

	barrel := models.Barrel{DrinkID: drink.ID, BuyPrice: dec("60"), SellPrice: dec("2.00")}
	require.NoError(t, db.Create(&barrel).Error)

	sale := openTransaction(t, db, models.TradeSale, models.PaymentCash)
	_, err := PourGlass(db, sale.ID, barrel.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))

	empty := models.Barrel{DrinkID: drink.ID, BuyPrice: dec("60"), SellPrice: dec("2.00"), IsMounted: true, EmptyOrSolded: true}
	require.NoError(t, db.Create(&empty).Error)
	_, err = PourGlass(db, sale.ID, empty.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNoLongerInStock))
}

func TestConsumableDoubleSell(t *testing.T) {
	db := setupDB(t)
	seedLedger(t, db)

	item, err := CreateConsumableItem(db, "Chips", "chips")
	require.NoError(t, err)

	purchase := openTransaction(t, db, models.TradePurchase, models.PaymentCard)
	unit, err := AttachConsumablePurchase(db, purchase.ID, item.ID, dec("0.50"), dec("1.50"))
	require.NoError(t, err)
	_, err = transaction.Validate(db, purchase.ID)
	require.NoError(t, err)

	sale := openTransaction(t, db, models.TradeSale, models.PaymentCash)
	sold, err := SellConsumable(db, unit.ID, sale.ID)
	require.NoError(t, err)
	assert.True(t, sold.Solded)

	_, err = SellConsumable(db, unit.ID, sale.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNoLongerInStock))

	available, err := ListConsumables(db, true)
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestNonInventoriedTradeRules(t *testing.T) {
	db := setupDB(t)
	seedLedger(t, db)

	price := dec("5.00")
	saleItem, err := CreateNonInventoriedItem(db, "Cup deposit", "cup", models.TradeSale, &price)
	require.NoError(t, err)
	buyItem, err := CreateNonInventoriedItem(db, "Ice bag", "ice", models.TradePurchase, nil)
	require.NoError(t, err)

	// catalog-level validation
	_, err = CreateNonInventoriedItem(db, "Broken sale", "x", models.TradeSale, nil)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
	_, err = CreateNonInventoriedItem(db, "Broken buy", "x", models.TradePurchase, &price)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))

	sale := openTransaction(t, db, models.TradeSale, models.PaymentCash)
	_, err = AttachNonInventoried(db, sale.ID, buyItem.ID, models.TradeSale, dec("3"))
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))

	record, err := AttachNonInventoried(db, sale.ID, saleItem.ID, models.TradeSale, dec("5.00"))
	require.NoError(t, err)
	require.NotNil(t, record.SellPrice)
	assert.Nil(t, record.BuyPrice)
	assertDecimal(t, "5.00", *record.SellPrice)
	require.NotNil(t, record.TransactionSaleID)
	assert.Nil(t, record.TransactionPurchaseID)
	_, err = transaction.Validate(db, sale.ID)
	require.NoError(t, err)

	purchase := openTransaction(t, db, models.TradePurchase, models.PaymentCard)
	record, err = AttachNonInventoried(db, purchase.ID, buyItem.ID, models.TradePurchase, dec("3.20"))
	require.NoError(t, err)
	require.NotNil(t, record.BuyPrice)
	assert.Nil(t, record.SellPrice)
	assertDecimal(t, "3.20", *record.BuyPrice)
}

func TestOutOfStockSnapshots(t *testing.T) {
	db := setupDB(t)
	seedLedger(t, db)

	price := dec("1.00")
	item, err := CreateOutOfStockItem(db, "Ecocup", "cup", &price)
	require.NoError(t, err)
	buyOnly, err := CreateOutOfStockItem(db, "Gas refill", "gas", nil)
	require.NoError(t, err)

	sale := openTransaction(t, db, models.TradeSale, models.PaymentCash)
	record, err := SellOutOfStock(db, sale.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ecocup", record.Name)
	assert.Equal(t, "cup", record.Icon)
	require.NotNil(t, record.SellPrice)
	assertDecimal(t, "1.00", *record.SellPrice)

	_, err = SellOutOfStock(db, sale.ID, buyOnly.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
	_, err = transaction.Validate(db, sale.ID)
	require.NoError(t, err)

	// renaming the catalog item later does not rewrite history
	require.NoError(t, db.Model(&models.OutOfStockItem{}).Where("id = ?", item.ID).Update("name", "Ecocup 50cl").Error)
	var reloaded models.OutOfStock
	require.NoError(t, db.First(&reloaded, record.ID).Error)
	assert.Equal(t, "Ecocup", reloaded.Name)

	purchase := openTransaction(t, db, models.TradePurchase, models.PaymentCard)
	bought, err := AttachOutOfStockPurchase(db, purchase.ID, buyOnly.ID, dec("12.00"))
	require.NoError(t, err)
	require.NotNil(t, bought.BuyPrice)
	assertDecimal(t, "12.00", *bought.BuyPrice)
}

func TestCatalogDeleteGuards(t *testing.T) {
	db := setupDB(t)
	seedLedger(t, db)
	drink := seedDrink(t, db, "Stout")

	barrel := models.Barrel{DrinkID: drink.ID, BuyPrice: dec("60"), SellPrice: dec("2.00")}
	require.NoError(t, db.Create(&barrel).Error)

	err := DeleteDrink(db, drink.ID)
	require.True(t, apperr.IsKind(err, apperr.KindUsedElement))

	require.NoError(t, db.Delete(&barrel).Error)
	require.NoError(t, DeleteDrink(db, drink.ID))

	err = DeleteDrink(db, drink.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	item, err := CreateConsumableItem(db, "Peanuts", "nuts")
	require.NoError(t, err)
	unit := models.Consumable{ConsumableItemID: item.ID, BuyPrice: dec("1"), SellPrice: dec("2")}
	require.NoError(t, db.Create(&unit).Error)
	err = DeleteConsumableItem(db, item.ID)
	require.True(t, apperr.IsKind(err, apperr.KindUsedElement))
	require.NoError(t, db.Delete(&unit).Error)
	require.NoError(t, DeleteConsumableItem(db, item.ID))
}

func TestCashSaleEndToEnd(t *testing.T) {
	db := setupDB(t)
	ledger := seedLedger(t, db)
	drink := seedDrink(t, db, "Blonde")

	barrel := models.Barrel{DrinkID: drink.ID, BuyPrice: dec("60"), SellPrice: dec("2.00"), IsMounted: true}
	require.NoError(t, db.Create(&barrel).Error)

	sale := openTransaction(t, db, models.TradeSale, models.PaymentCash)
	_, err := SellBarrel(db, barrel.ID, sale.ID)
	require.NoError(t, err)

	validated, err := transaction.Validate(db, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusValidated, validated.Status)
	assertDecimal(t, "2.00", validated.Amount)

	var got models.Treasury
	require.NoError(t, db.First(&got, ledger.ID).Error)
	assertDecimal(t, "2.00", got.TotalAmount)
	assertDecimal(t, "2.00", got.CashAmount)

	// the sold barrel now blocks deletion of its transaction
	err = transaction.Delete(db, sale.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindUsedElement))
}
