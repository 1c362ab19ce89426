package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"officemart/internal/config"
	"officemart/internal/http/handlers"
	applog "officemart/internal/log"
	"officemart/internal/repos"
	"officemart/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Seed {
		if err := repos.SeedDemo(db); err != nil {
			log.Fatal(err)
		}
	}
	if err := repos.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and answer a generic JSON body; never leak internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(db, cfg, authSvc)
	api := app.Group("/api")

	// Categories & subcategories
	api.Get("/categories", deps.CategoryHandler.List)
	api.Get("/categories/:slug", deps.CategoryHandler.Get)
	api.Get("/subcategories", deps.SubcategoryHandler.List)
	api.Get("/subcategories/:slug", deps.SubcategoryHandler.Get)

	// Products: shortcut collections before the slug route
	api.Get("/products/featured", deps.ProductHandler.Featured)
	api.Get("/products/new", deps.ProductHandler.ByType("new"))
	api.Get("/products/refurbished", deps.ProductHandler.ByType("refurbished"))
	api.Get("/products/rental", deps.ProductHandler.ByType("rental"))
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:slug", deps.ProductHandler.Detail)

	// SEO listing routes; the category form must register first
	api.Get("/listing/category/:categorySlug", deps.ListingHandler.ByCategory)
	api.Get("/listing/:productType/:categorySlug", deps.ListingHandler.ByTypeAndCategory)
	api.Get("/listing/:productType", deps.ListingHandler.ByType)

	// Quote submission (throttled harder than reads)
	quoteLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.quote.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Post("/quotes", quoteLimiter, deps.QuoteHandler.Create)

	// Admin console API (login throttled)
	admin := api.Group("/admin")
	admin.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), authH.Login)
	admin.Post("/logout", authH.Logout)

	admin.Use(handlers.RequireAdmin(authSvc))
	admin.Post("/categories", deps.AdminHandler.CreateCategory)
	admin.Put("/categories/:id", deps.AdminHandler.UpdateCategory)
	admin.Delete("/categories/:id", deps.AdminHandler.DeleteCategory)
	admin.Post("/subcategories", deps.AdminHandler.CreateSubcategory)
	admin.Put("/subcategories/:id", deps.AdminHandler.UpdateSubcategory)
	admin.Delete("/subcategories/:id", deps.AdminHandler.DeleteSubcategory)
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Put("/products/:id", deps.AdminHandler.UpdateProduct)
	admin.Delete("/products/:id", deps.AdminHandler.DeleteProduct)
	admin.Post("/products/:id/images", deps.AdminHandler.AddProductImage)
	admin.Delete("/images/:id", deps.AdminHandler.DeleteProductImage)
	admin.Get("/quotes", deps.AdminHandler.ListQuotes)
	admin.Get("/quotes/:id", deps.AdminHandler.GetQuote)
	admin.Post("/quotes/:id/status", deps.AdminHandler.UpdateQuoteStatus)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
