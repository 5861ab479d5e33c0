package api

import (
	"fintrack/internal/api/handlers"
	"fintrack/pkg/auth"
	"fintrack/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func SetupRouter(
	transactionHandler *handlers.TransactionHandler,
	budgetHandler *handlers.BudgetHandler,
	goalHandler *handlers.GoalHandler,
	alertHandler *handlers.AlertHandler,
	jwtManager *auth.JWTManager,
	demoUserID uuid.UUID,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	api := app.Group("/api/v1", middleware.IdentityMiddleware(jwtManager, demoUserID, appLogger))

	transactions := api.Group("/transactions")
	transactions.Post("", transactionHandler.Create)
	transactions.Get("", transactionHandler.List)
	transactions.Delete("/:id", transactionHandler.Delete)

	budgets := api.Group("/budgets")
	budgets.Post("", budgetHandler.Create)
	budgets.Get("", budgetHandler.List)
	budgets.Put("/:id", budgetHandler.Update)
	budgets.Delete("/:id", budgetHandler.Delete)

	goals := api.Group("/goals")
	goals.Post("", goalHandler.Create)
	goals.Get("", goalHandler.List)
	goals.Put("/:id", goalHandler.Update)
	goals.Patch("/:id/progress", goalHandler.AddProgress)
	goals.Delete("/:id", goalHandler.Delete)

	alerts := api.Group("/alerts")
	alerts.Get("", alertHandler.List)
	alerts.Post("/refresh", alertHandler.Refresh)
	alerts.Put("/:id/read", alertHandler.MarkRead)
	alerts.Delete("/:id", alertHandler.Delete)

	return app
}
