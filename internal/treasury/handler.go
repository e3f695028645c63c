package treasury

import (
	"fmt"
	"time"

	"github.com/Clochette-AbsINThe/clochette-sub000/internal/database"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateTreasuryRequest struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	CashAmount  decimal.Decimal `json:"cash_amount"`
	LydiaRate   decimal.Decimal `json:"lydia_rate"`
}

type UpdateTreasuryRequest struct {
	LydiaRate decimal.Decimal `json:"lydia_rate"`
}

type TreasuryResponse struct {
	ID          uint   `json:"id"`
	TotalAmount string `json:"total_amount"`
	CashAmount  string `json:"cash_amount"`
	LydiaRate   string `json:"lydia_rate"`
	CreatedAt   string `json:"created_at"`
}

func toResponse(t *models.Treasury) TreasuryResponse {
	return TreasuryResponse{
		ID:          t.ID,
		TotalAmount: t.TotalAmount.StringFixed(2),
		CashAmount:  t.CashAmount.StringFixed(2),
		LydiaRate:   t.LydiaRate.String(),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

// POST /api/treasuries
func CreateTreasuryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTreasuryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		t, err := Create(database.DB, body.TotalAmount, body.CashAmount, body.LydiaRate)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(t))
	}
}

// GET /api/treasuries/last
func GetLastTreasuryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := Latest(database.DB)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(t))
	}
}

// PUT /api/treasuries/:id
func UpdateTreasuryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid treasury id")
		}

		var body UpdateTreasuryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		t, err := UpdateLydiaRate(database.DB, uint(id), body.LydiaRate)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(t))
	}
}

type MonthlySummaryItem struct {
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Total         string               `json:"total"`
}

type MonthlySummaryResponse struct {
	Year       int                  `json:"year"`
	Month      int                  `json:"month"`
	Items      []MonthlySummaryItem `json:"items"`
	GrandTotal string               `json:"grand_total"`
}

// GET /api/treasuries/summary/monthly?year=2026&month=9
//
// Sums validated transaction amounts per payment method over one month.
// Amounts are signed, so purchases naturally reduce the totals.
func MonthlySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		yearStr := c.Query("year")
		monthStr := c.Query("month")
		if yearStr == "" || monthStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "year and month are required")
		}

		var year, month int
		if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid year")
		}
		if _, err := fmt.Sscan(monthStr, &month); err != nil || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid month")
		}

		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		type row struct {
			PaymentMethod string          `gorm:"column:payment_method"`
			Total         decimal.Decimal `gorm:"column:total"`
		}
		var rows []row

		if err := database.DB.Model(&models.Transaction{}).
			Select("payment_method, SUM(amount) as total").
			Where("status = ? AND datetime >= ? AND datetime < ?", models.StatusValidated, start, end).
			Group("payment_method").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not compute summary")
		}

		resp := MonthlySummaryResponse{
			Year:  year,
			Month: month,
			Items: make([]MonthlySummaryItem, 0, len(rows)),
		}
		grand := decimal.Zero
		for _, r := range rows {
			resp.Items = append(resp.Items, MonthlySummaryItem{
				PaymentMethod: models.PaymentMethod(r.PaymentMethod),
				Total:         r.Total.StringFixed(2),
			})
			grand = grand.Add(r.Total)
		}
		resp.GrandTotal = grand.StringFixed(2)

		return c.JSON(resp)
	}
}
