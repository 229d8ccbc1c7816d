package api

import (
	"crypto/sha256"
	"encoding/base64"

	"budgethub/docs"
	"budgethub/internal/api/handlers"
	"budgethub/pkg/config"
	"budgethub/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	expenseHandler *handlers.ExpenseHandler,
	budgetHandler *handlers.BudgetHandler,
	dashboardHandler *handlers.DashboardHandler,
	sessions *session.Store,
	cfg *config.Config,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
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
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
		AllowCredentials: true,
	}))
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: cookieKey(cfg.Session.SecretKey),
	}))
	app.Use(logger.New())

	// Swagger - importing the docs package registers the spec via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	requireSession := middleware.RequireSession(sessions, appLogger)

	// Auth routes
	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", requireSession, authHandler.Logout)
	auth.Get("/status", authHandler.Status)

	// Expense routes
	expenses := app.Group("/expenses", requireSession)
	expenses.Post("", expenseHandler.Add)
	expenses.Get("", expenseHandler.List)
	expenses.Get("/export", expenseHandler.Export)
	expenses.Post("/import", expenseHandler.Import)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Budget routes
	budgets := app.Group("/budgets", requireSession)
	budgets.Post("", budgetHandler.Create)
	budgets.Get("", budgetHandler.List)

	// Dashboard routes
	dashboard := app.Group("/dashboard", requireSession)
	dashboard.Get("/weekly", dashboardHandler.Weekly)

	return app
}

// cookieKey derives the 32-byte base64 key encryptcookie expects from the
// configured session secret.
func cookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}
