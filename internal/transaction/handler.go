package transaction

import (
	"time"

	"github.com/Clochette-AbsINThe/clochette-sub000/internal/database"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateCommerceRequest struct {
	Trade         string `json:"trade"`          // "purchase" or "sale"
	PaymentMethod string `json:"payment_method"` // card / cash / lydia / transfer
	Datetime      string `json:"datetime"`       // RFC3339, empty for now
}

type CreateTreasuryRequest struct {
	Trade         string          `json:"trade"`
	PaymentMethod string          `json:"payment_method"`
	Datetime      string          `json:"datetime"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
}

type TransactionResponse struct {
	ID            uint   `json:"id"`
	Datetime      string `json:"datetime"`
	PaymentMethod string `json:"payment_method"`
	Trade         string `json:"trade"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
	TreasuryID    uint   `json:"treasury_id"`
}

func toResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		Datetime:      t.Datetime.Format(time.RFC3339),
		PaymentMethod: string(t.PaymentMethod),
		Trade:         string(t.Trade),
		Type:          string(t.Type),
		Status:        string(t.Status),
		Amount:        t.Amount.StringFixed(2),
		Description:   t.Description,
		TreasuryID:    t.TreasuryID,
	}
}

func parseDatetime(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse(time.RFC3339, s)
}

// POST /api/transactions
func CreateCommerceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCommerceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		at, err := parseDatetime(body.Datetime)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "datetime must be RFC3339")
		}

		trn, err := CreateCommerce(database.DB, models.TradeType(body.Trade), models.PaymentMethod(body.PaymentMethod), at)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(trn))
	}
}

// POST /api/transactions/treasury
func CreateTreasuryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTreasuryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		at, err := parseDatetime(body.Datetime)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "datetime must be RFC3339")
		}

		trn, err := CreateTreasury(database.DB, models.TradeType(body.Trade), models.PaymentMethod(body.PaymentMethod), at, body.Amount, body.Description)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(trn))
	}
}

// POST /api/transactions/:id/validate
func ValidateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid transaction id")
		}

		trn, err := Validate(database.DB, uint(id))
		if err != nil {
			return err
		}
		return c.JSON(toResponse(trn))
	}
}

// DELETE /api/transactions/:id
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid transaction id")
		}

		if err := Delete(database.DB, uint(id)); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/transactions/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid transaction id")
		}

		trn, err := Get(database.DB, uint(id))
		if err != nil {
			return err
		}
		return c.JSON(toResponse(trn))
	}
}

// GET /api/transactions?from=2026-01-01&to=2026-01-31
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var from, to *time.Time
		if s := c.Query("from"); s != "" {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid from date")
			}
			from = &d
		}
		if s := c.Query("to"); s != "" {
			d, err := time.Parse("2006-01-02", s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid to date")
			}
			end := d.AddDate(0, 0, 1).Add(-time.Nanosecond)
			to = &end
		}

		trns, err := List(database.DB, from, to)
		if err != nil {
			return err
		}

		resp := make([]TransactionResponse, 0, len(trns))
		for i := range trns {
			resp = append(resp, toResponse(&trns[i]))
		}
		return c.JSON(resp)
	}
}
