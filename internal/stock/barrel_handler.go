package stock

import (
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/database"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateBarrelRequest struct {
	TransactionID uint            `json:"transaction_id"`
	DrinkID       uint            `json:"drink_id"`
	BuyPrice      decimal.Decimal `json:"buy_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
}

type SellBarrelRequest struct {
	TransactionID uint `json:"transaction_id"`
}

type UpdateBarrelRequest struct {
	IsMounted     *bool            `json:"is_mounted"`
	EmptyOrSolded *bool            `json:"empty_or_solded"`
	SellPrice     *decimal.Decimal `json:"sell_price"`
}

type BarrelResponse struct {
	ID                    uint   `json:"id"`
	DrinkID               uint   `json:"drink_id"`
	DrinkName             string `json:"drink_name,omitempty"`
	BuyPrice              string `json:"buy_price"`
	SellPrice             string `json:"sell_price"`
	IsMounted             bool   `json:"is_mounted"`
	EmptyOrSolded         bool   `json:"empty_or_solded"`
	TransactionPurchaseID *uint  `json:"transaction_id_purchase"`
	TransactionSaleID     *uint  `json:"transaction_id_sale"`
}

func barrelToResponse(b *models.Barrel) BarrelResponse {
	return BarrelResponse{
		ID:                    b.ID,
		DrinkID:               b.DrinkID,
		DrinkName:             b.Drink.Name,
		BuyPrice:              b.BuyPrice.StringFixed(2),
		SellPrice:             b.SellPrice.StringFixed(2),
		IsMounted:             b.IsMounted,
		EmptyOrSolded:         b.EmptyOrSolded,
		TransactionPurchaseID: b.TransactionPurchaseID,
		TransactionSaleID:     b.TransactionSaleID,
	}
}

// POST /api/barrels
func CreateBarrelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBarrelRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.TransactionID == 0 || body.DrinkID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "transaction_id and drink_id are required")
		}

		barrel, err := AttachBarrelPurchase(database.DB, body.TransactionID, body.DrinkID, body.BuyPrice, body.SellPrice)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(barrelToResponse(barrel))
	}
}

// POST /api/barrels/:id/sale
func SellBarrelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		var body SellBarrelRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.TransactionID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "transaction_id is required")
		}

		barrel, err := SellBarrel(database.DB, id, body.TransactionID)
		if err != nil {
			return err
		}
		return c.JSON(barrelToResponse(barrel))
	}
}

// PUT /api/barrels/:id
func UpdateBarrelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		var body UpdateBarrelRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		barrel, err := UpdateBarrel(database.DB, id, UpdateBarrelInput{
			IsMounted:     body.IsMounted,
			EmptyOrSolded: body.EmptyOrSolded,
			SellPrice:     body.SellPrice,
		})
		if err != nil {
			return err
		}
		return c.JSON(barrelToResponse(barrel))
	}
}

// GET /api/barrels?mounted=true&available=true
func ListBarrelsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		barrels, err := ListBarrels(database.DB, c.QueryBool("mounted"), c.QueryBool("available"))
		if err != nil {
			return err
		}

		resp := make([]BarrelResponse, 0, len(barrels))
		for i := range barrels {
			resp = append(resp, barrelToResponse(&barrels[i]))
		}
		return c.JSON(resp)
	}
}
