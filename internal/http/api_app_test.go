package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"officemart/internal/config"
	"officemart/internal/http/handlers"
	"officemart/internal/repos"
	"officemart/internal/services"
)

// newAPI builds the full route surface on a seeded in-memory DB. Rate
// limiters are left out so tests can hammer the app freely.
func newAPI(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	cfg := config.Config{
		DBDSN:         ":memory:",
		MediaBaseURL:  "https://media.officemart.test/",
		PageSize:      15,
		MaxPageSize:   100,
		AdminEmail:    "admin@officemart.test",
		AdminPassword: "ChangeMe1!",
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.SeedDemo(db); err != nil {
		t.Fatal(err)
	}
	if err := repos.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		t.Fatal(err)
	}

	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	authH := &handlers.AuthHandler{Auth: authSvc}
	deps := handlers.NewDeps(db, cfg, authSvc)

	app := fiber.New()
	app.Use(requestid.New())
	api := app.Group("/api")

	api.Get("/categories", deps.CategoryHandler.List)
	api.Get("/categories/:slug", deps.CategoryHandler.Get)
	api.Get("/subcategories", deps.SubcategoryHandler.List)
	api.Get("/subcategories/:slug", deps.SubcategoryHandler.Get)

	api.Get("/products/featured", deps.ProductHandler.Featured)
	api.Get("/products/new", deps.ProductHandler.ByType("new"))
	api.Get("/products/refurbished", deps.ProductHandler.ByType("refurbished"))
	api.Get("/products/rental", deps.ProductHandler.ByType("rental"))
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:slug", deps.ProductHandler.Detail)

	api.Get("/listing/category/:categorySlug", deps.ListingHandler.ByCategory)
	api.Get("/listing/:productType/:categorySlug", deps.ListingHandler.ByTypeAndCategory)
	api.Get("/listing/:productType", deps.ListingHandler.ByType)

	api.Post("/quotes", deps.QuoteHandler.Create)

	admin := api.Group("/admin")
	admin.Post("/login", authH.Login)
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

	return app, db
}

func do(t *testing.T, app *fiber.App, method, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return m
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var l []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return l
}

// adminCookie logs in with the seeded admin and returns the session cookie.
func adminCookie(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()
	resp := do(t, app, "POST", "/api/admin/login", map[string]string{
		"email":    "admin@officemart.test",
		"password": "ChangeMe1!",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "sid" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no sid cookie on login response")
	return nil
}
