package treasury

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Clochette-AbsINThe/clochette-sub000/internal/apperr"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/database"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"

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

func seedTreasury(t *testing.T, db *gorm.DB, total, cash, rate string) *models.Treasury {
	t.Helper()
	tr, err := Create(db, dec(total), dec(cash), dec(rate))
	require.NoError(t, err)
	return tr
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s got %s", want, got)
}

func TestLatest(t *testing.T) {
	db := setupDB(t)

	_, err := Latest(db)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	seedTreasury(t, db, "0", "0", "0.015")
	second := seedTreasury(t, db, "100", "50", "0.02")

	got, err := Latest(db)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assertDecimal(t, "100", got.TotalAmount)
}

func TestCreateValidation(t *testing.T) {
	db := setupDB(t)

	_, err := Create(db, dec("0"), dec("-1"), dec("0"))
	assert.True(t, apperr.IsKind(err, apperr.KindNegativeCashAmount))

	_, err = Create(db, dec("0"), dec("0"), dec("1"))
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))

	_, err = Create(db, dec("0"), dec("0"), dec("-0.01"))
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestPostCashSale(t *testing.T) {
	db := setupDB(t)
	tr := seedTreasury(t, db, "0", "0", "0.015")

	require.NoError(t, Post(db, tr, dec("2"), true, models.PaymentCash))
	assertDecimal(t, "2.00", tr.TotalAmount)
	assertDecimal(t, "2.00", tr.CashAmount)

	var reloaded models.Treasury
	require.NoError(t, db.First(&reloaded, tr.ID).Error)
	assertDecimal(t, "2.00", reloaded.TotalAmount)
	assertDecimal(t, "2.00", reloaded.CashAmount)
}

func TestPostCashFloor(t *testing.T) {
	db := setupDB(t)
	tr := seedTreasury(t, db, "100", "10", "0")

	err := Post(db, tr, dec("20"), false, models.PaymentCash)
	require.True(t, apperr.IsKind(err, apperr.KindNegativeCashAmount))

	// nothing moved, in memory or in the database
	assertDecimal(t, "100", tr.TotalAmount)
	assertDecimal(t, "10", tr.CashAmount)
	var reloaded models.Treasury
	require.NoError(t, db.First(&reloaded, tr.ID).Error)
	assertDecimal(t, "100", reloaded.TotalAmount)
	assertDecimal(t, "10", reloaded.CashAmount)
}

func TestRevertCashFloor(t *testing.T) {
	db := setupDB(t)
	tr := seedTreasury(t, db, "100", "10", "0")

	// reverting a 20 cash sale would pull cash below zero
	err := Revert(db, tr, dec("20"), true, models.PaymentCash)
	require.True(t, apperr.IsKind(err, apperr.KindNegativeCashAmount))
	assertDecimal(t, "100", tr.TotalAmount)
	assertDecimal(t, "10", tr.CashAmount)
}

func TestRoundingNeverAccumulatesDrift(t *testing.T) {
	db := setupDB(t)
	tr := seedTreasury(t, db, "0", "0", "0")

	for i := 0; i < 3; i++ {
		require.NoError(t, Post(db, tr, dec("0.333"), true, models.PaymentCash))
	}

	// each post rounds to the cent: 3 x 0.33, not 0.999
	assertDecimal(t, "0.99", tr.TotalAmount)
	assertDecimal(t, "0.99", tr.CashAmount)
}

func TestLydiaFeeAppliesOnlyToSales(t *testing.T) {
	db := setupDB(t)
	tr := seedTreasury(t, db, "0", "0", "0.015")

	require.NoError(t, Post(db, tr, dec("100"), true, models.PaymentLydia))
	assertDecimal(t, "98.50", tr.TotalAmount)

	require.NoError(t, Post(db, tr, dec("100"), false, models.PaymentLydia))
	assertDecimal(t, "-1.50", tr.TotalAmount)

	// cash box untouched either way
	assertDecimal(t, "0", tr.CashAmount)
}

func TestPostRevertInverse(t *testing.T) {
	cases := []struct {
		amount string
		isSale bool
		method models.PaymentMethod
	}{
		{"100", true, models.PaymentLydia},
		{"100", false, models.PaymentLydia},
		{"42.37", true, models.PaymentCash},
		{"42.37", false, models.PaymentCard},
		{"0", true, models.PaymentCash},
		{"19.99", true, models.PaymentTransfer},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_%v_%s", tc.amount, tc.isSale, tc.method), func(t *testing.T) {
			db := setupDB(t)
			tr := seedTreasury(t, db, "500", "200", "0.015")

			require.NoError(t, Post(db, tr, dec(tc.amount), tc.isSale, tc.method))
			require.NoError(t, Revert(db, tr, dec(tc.amount), tc.isSale, tc.method))

			assertDecimal(t, "500", tr.TotalAmount)
			assertDecimal(t, "200", tr.CashAmount)
		})
	}
}

func TestPostRejectsNegativeMagnitude(t *testing.T) {
	db := setupDB(t)
	tr := seedTreasury(t, db, "0", "0", "0")

	err := Post(db, tr, dec("-5"), true, models.PaymentCard)
	assert.True(t, apperr.IsKind(err, apperr.KindIntegrity))
}

func TestUpdateLydiaRate(t *testing.T) {
	db := setupDB(t)
	tr := seedTreasury(t, db, "0", "0", "0.015")

	updated, err := UpdateLydiaRate(db, tr.ID, dec("0.02"))
	require.NoError(t, err)
	assertDecimal(t, "0.02", updated.LydiaRate)

	_, err = UpdateLydiaRate(db, tr.ID, dec("1"))
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))

	_, err = UpdateLydiaRate(db, 999, dec("0.01"))
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestUpdateLydiaRateRefusesHistoricalRows(t *testing.T) {
	db := setupDB(t)
	old := seedTreasury(t, db, "0", "0", "0.015")
	current := seedTreasury(t, db, "0", "0", "0.015")

	_, err := UpdateLydiaRate(db, old.ID, dec("0.02"))
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))

	// the frozen row keeps its rate
	var reloaded models.Treasury
	require.NoError(t, db.First(&reloaded, old.ID).Error)
	assertDecimal(t, "0.015", reloaded.LydiaRate)

	updated, err := UpdateLydiaRate(db, current.ID, dec("0.02"))
	require.NoError(t, err)
	assertDecimal(t, "0.02", updated.LydiaRate)
}
