package stock

import (
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/database"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type PourGlassRequest struct {
	TransactionID uint `json:"transaction_id"`
	BarrelID      uint `json:"barrel_id"`
}

type GlassResponse struct {
	ID            uint   `json:"id"`
	BarrelID      uint   `json:"barrel_id"`
	SellPrice     string `json:"sell_price"`
	TransactionID uint   `json:"transaction_id"`
}

// POST /api/glasses
func PourGlassHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PourGlassRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.TransactionID == 0 || body.BarrelID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "transaction_id and barrel_id are required")
		}

		glass, err := PourGlass(database.DB, body.TransactionID, body.BarrelID)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(GlassResponse{
			ID:            glass.ID,
			BarrelID:      glass.BarrelID,
			SellPrice:     glass.SellPrice.StringFixed(2),
			TransactionID: glass.TransactionID,
		})
	}
}

type AttachNonInventoriedRequest struct {
	TransactionID        uint            `json:"transaction_id"`
	NonInventoriedItemID uint            `json:"non_inventoried_item_id"`
	Trade                string          `json:"trade"`
	Price                decimal.Decimal `json:"price"`
}

// POST /api/non-inventoried
func AttachNonInventoriedHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AttachNonInventoriedRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.TransactionID == 0 || body.NonInventoriedItemID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "transaction_id and non_inventoried_item_id are required")
		}

		record, err := AttachNonInventoried(database.DB, body.TransactionID, body.NonInventoriedItemID, models.TradeType(body.Trade), body.Price)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(record)
	}
}

type AttachOutOfStockRequest struct {
	TransactionID    uint             `json:"transaction_id"`
	OutOfStockItemID uint             `json:"out_of_stock_item_id"`
	Trade            string           `json:"trade"`
	BuyPrice         *decimal.Decimal `json:"buy_price"`
}

// POST /api/out-of-stocks
func AttachOutOfStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AttachOutOfStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.TransactionID == 0 || body.OutOfStockItemID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "transaction_id and out_of_stock_item_id are required")
		}

		switch models.TradeType(body.Trade) {
		case models.TradePurchase:
			if body.BuyPrice == nil {
				return fiber.NewError(fiber.StatusBadRequest, "buy_price is required for a purchase")
			}
			record, err := AttachOutOfStockPurchase(database.DB, body.TransactionID, body.OutOfStockItemID, *body.BuyPrice)
			if err != nil {
				return err
			}
			return c.Status(fiber.StatusCreated).JSON(record)
		case models.TradeSale:
			record, err := SellOutOfStock(database.DB, body.TransactionID, body.OutOfStockItemID)
			if err != nil {
				return err
			}
			return c.Status(fiber.StatusCreated).JSON(record)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "trade must be purchase or sale")
		}
	}
}
