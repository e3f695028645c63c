package stock

import (
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/database"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateDrinkRequest struct {
	Name string `json:"name"`
}

type CreateConsumableItemRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type CreateNonInventoriedItemRequest struct {
	Name      string           `json:"name"`
	Icon      string           `json:"icon"`
	Trade     string           `json:"trade"` // "purchase" or "sale"
	SellPrice *decimal.Decimal `json:"sell_price"`
}

type CreateOutOfStockItemRequest struct {
	Name      string           `json:"name"`
	Icon      string           `json:"icon"`
	SellPrice *decimal.Decimal `json:"sell_price"`
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// POST /api/drinks
func CreateDrinkHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDrinkRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		d, err := CreateDrink(database.DB, body.Name)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(d)
	}
}

// GET /api/drinks
func ListDrinksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		drinks, err := ListDrinks(database.DB)
		if err != nil {
			return err
		}
		return c.JSON(drinks)
	}
}

// PUT /api/drinks/:id
func UpdateDrinkHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		var body CreateDrinkRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		d, err := UpdateDrink(database.DB, id, body.Name)
		if err != nil {
			return err
		}
		return c.JSON(d)
	}
}

// DELETE /api/drinks/:id
func DeleteDrinkHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		if err := DeleteDrink(database.DB, id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/consumable-items
func CreateConsumableItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateConsumableItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		item, err := CreateConsumableItem(database.DB, body.Name, body.Icon)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// GET /api/consumable-items
func ListConsumableItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := ListConsumableItems(database.DB)
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

// DELETE /api/consumable-items/:id
func DeleteConsumableItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		if err := DeleteConsumableItem(database.DB, id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/non-inventoried-items
func CreateNonInventoriedItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateNonInventoriedItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		item, err := CreateNonInventoriedItem(database.DB, body.Name, body.Icon, models.TradeType(body.Trade), body.SellPrice)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// GET /api/non-inventoried-items
func ListNonInventoriedItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := ListNonInventoriedItems(database.DB)
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

// DELETE /api/non-inventoried-items/:id
func DeleteNonInventoriedItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		if err := DeleteNonInventoriedItem(database.DB, id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/out-of-stock-items
func CreateOutOfStockItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOutOfStockItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		item, err := CreateOutOfStockItem(database.DB, body.Name, body.Icon, body.SellPrice)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// GET /api/out-of-stock-items
func ListOutOfStockItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := ListOutOfStockItems(database.DB)
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

// DELETE /api/out-of-stock-items/:id
func DeleteOutOfStockItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}
		if err := DeleteOutOfStockItem(database.DB, id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
