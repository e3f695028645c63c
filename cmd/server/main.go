package main

import (
	"errors"
	"log"
	"strings"

	"github.com/Clochette-AbsINThe/clochette-sub000/internal/apperr"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/auth"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/config"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/database"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/models"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/stock"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/transaction"
	"github.com/Clochette-AbsINThe/clochette-sub000/internal/treasury"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		// Domain errors are mapped to transport codes here and nowhere
		// else; services only ever return apperr values.
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var ae *apperr.Error
			if errors.As(err, &ae) {
				return c.Status(ae.Status()).JSON(fiber.Map{
					"error": ae.Message,
					"kind":  ae.Kind,
				})
			}
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(fiber.Map{
					"error": fe.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-president", auth.RegisterPresidentHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// President-only management
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RolePresident))

	adminRoutes.Post("/accounts", auth.CreateAccountHandler())

	adminRoutes.Post("/treasuries", treasury.CreateTreasuryHandler())
	adminRoutes.Put("/treasuries/:id", treasury.UpdateTreasuryHandler())

	adminRoutes.Post("/drinks", stock.CreateDrinkHandler())
	adminRoutes.Put("/drinks/:id", stock.UpdateDrinkHandler())
	adminRoutes.Delete("/drinks/:id", stock.DeleteDrinkHandler())
	adminRoutes.Post("/consumable-items", stock.CreateConsumableItemHandler())
	adminRoutes.Delete("/consumable-items/:id", stock.DeleteConsumableItemHandler())
	adminRoutes.Post("/non-inventoried-items", stock.CreateNonInventoriedItemHandler())
	adminRoutes.Delete("/non-inventoried-items/:id", stock.DeleteNonInventoriedItemHandler())
	adminRoutes.Post("/out-of-stock-items", stock.CreateOutOfStockItemHandler())
	adminRoutes.Delete("/out-of-stock-items/:id", stock.DeleteOutOfStockItemHandler())

	adminRoutes.Post("/transactions/treasury", transaction.CreateTreasuryHandler())
	adminRoutes.Delete("/transactions/:id", transaction.DeleteHandler())

	// Bar staff routes
	protected.Get("/treasuries/last", treasury.GetLastTreasuryHandler())
	protected.Get("/treasuries/summary/monthly", treasury.MonthlySummaryHandler())

	protected.Get("/drinks", stock.ListDrinksHandler())
	protected.Get("/consumable-items", stock.ListConsumableItemsHandler())
	protected.Get("/non-inventoried-items", stock.ListNonInventoriedItemsHandler())
	protected.Get("/out-of-stock-items", stock.ListOutOfStockItemsHandler())

	protected.Post("/transactions", transaction.CreateCommerceHandler())
	protected.Post("/transactions/:id/validate", transaction.ValidateHandler())
	protected.Get("/transactions", transaction.ListHandler())
	protected.Get("/transactions/:id", transaction.GetHandler())

	protected.Post("/barrels", stock.CreateBarrelHandler())
	protected.Get("/barrels", stock.ListBarrelsHandler())
	protected.Put("/barrels/:id", stock.UpdateBarrelHandler())
	protected.Post("/barrels/:id/sale", stock.SellBarrelHandler())

	protected.Post("/glasses", stock.PourGlassHandler())

	protected.Post("/consumables", stock.CreateConsumableHandler())
	protected.Get("/consumables", stock.ListConsumablesHandler())
	protected.Post("/consumables/:id/sale", stock.SellConsumableHandler())

	protected.Post("/non-inventoried", stock.AttachNonInventoriedHandler())
	protected.Post("/out-of-stocks", stock.AttachOutOfStockHandler())

	log.Println("Server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
