package stock

import (
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/database"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateConsumableRequest struct {
	TransactionID    uint            `json:"transaction_id"`
	ConsumableItemID uint            `json:"consumable_item_id"`
	BuyPrice         decimal.Decimal `json:"buy_price"`
	SellPrice        decimal.Decimal `json:"sell_price"`
}

type SellConsumableRequest struct {
	TransactionID uint `json:"transaction_id"`
}

type ConsumableResponse struct {
	ID                    uint   `json:"id"`
	ConsumableItemID      uint   `json:"consumable_item_id"`
	ItemName              string `json:"item_name,omitempty"`
	BuyPrice              string `json:"buy_price"`
	SellPrice             string `json:"sell_price"`
	Solded                bool   `json:"solded"`
	TransactionPurchaseID *uint  `json:"transaction_id_purchase"`
	TransactionSaleID     *uint  `json:"transaction_id_sale"`
}

func consumableToResponse(cons *models.Consumable) ConsumableResponse {
	return ConsumableResponse{
		ID:                    cons.ID,
		ConsumableItemID:      cons.ConsumableItemID,
		ItemName:              cons.ConsumableItem.Name,
		BuyPrice:              cons.BuyPrice.StringFixed(2),
		SellPrice:             cons.SellPrice.StringFixed(2),
		Solded:                cons.Solded,
		TransactionPurchaseID: cons.TransactionPurchaseID,
		TransactionSaleID:     cons.TransactionSaleID,
	}
}

// POST /api/consumables
func CreateConsumableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateConsumableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.TransactionID == 0 || body.ConsumableItemID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "transaction_id and consumable_item_id are required")
		}

		cons, err := AttachConsumablePurchase(database.DB, body.TransactionID, body.ConsumableItemID, body.BuyPrice, body.SellPrice)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(consumableToResponse(cons))
	}
}

// POST /api/consumables/:id/sale
func SellConsumableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		var body SellConsumableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.TransactionID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "transaction_id is required")
		}

		cons, err := SellConsumable(database.DB, id, body.TransactionID)
		if err != nil {
			return err
		}
		return c.JSON(consumableToResponse(cons))
	}
}

// GET /api/consumables?available=true
func ListConsumablesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		consumables, err := ListConsumables(database.DB, c.QueryBool("available"))
		if err != nil {
			return err
		}

		resp := make([]ConsumableResponse, 0, len(consumables))
		for i := range consumables {
			resp = append(resp, consumableToResponse(&consumables[i]))
		}
		return c.JSON(resp)
	}
}
