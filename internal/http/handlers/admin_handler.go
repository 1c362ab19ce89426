package handlers

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"officemart/internal/domain"
	applog "officemart/internal/log"
	"officemart/internal/media"
	"officemart/internal/repos"
	"officemart/internal/services"
	"officemart/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler is the JSON surface behind RequireAdmin: catalog writes and
// the quote-request console.
type AdminHandler struct {
	Cats     *repos.CategoryRepo
	Subs     *repos.SubcategoryRepo
	Products *services.ProductService
	Quotes   *services.QuoteService
	QuoteRp  *repos.QuoteRepo
	Media    *media.Resolver
}

// ---------- Categories ----------

type categoryInput struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Icon         string `json:"icon"`
	Description  string `json:"description"`
	IsActive     *bool  `json:"is_active"`
	ShowInNavbar bool   `json:"show_in_navbar"`
	NavbarOrder  int    `json:"navbar_order"`
}

func (in categoryInput) normalize(id string) (domain.Category, map[string]string) {
	errs := map[string]string{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs["name"] = "name is required"
	}
	if in.NavbarOrder < 0 {
		errs["navbar_order"] = "navbar order must not be negative"
	}
	if len(errs) > 0 {
		return domain.Category{}, errs
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = validate.Slugify(name)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return domain.Category{
		ID:           id,
		Name:         name,
		Slug:         slug,
		Icon:         strings.TrimSpace(in.Icon),
		Description:  strings.TrimSpace(in.Description),
		IsActive:     active,
		ShowInNavbar: in.ShowInNavbar,
		NavbarOrder:  in.NavbarOrder,
	}, nil
}

func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var in categoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed request body")
	}
	cat, errs := in.normalize(uuid.NewString())
	if len(errs) > 0 {
		return fieldErrors(c, errs)
	}
	if err := h.Cats.Create(cat); err != nil {
		if repos.IsConflict(err) {
			return conflict(c, "category name or slug already exists")
		}
		applog.Error(c, "admin.category.create.fail", err, nil)
		return serverError(c)
	}
	applog.Audit(c, "admin.category.create", map[string]any{"category_id": cat.ID})
	return c.Status(fiber.StatusCreated).JSON(categoryJSON(cat, []fiber.Map{}, 0))
}

func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "category not found")
	}
	if _, err := h.Cats.ByID(id); err != nil {
		return notFound(c, "category not found")
	}
	var in categoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed request body")
	}
	cat, errs := in.normalize(id)
	if len(errs) > 0 {
		return fieldErrors(c, errs)
	}
	if err := h.Cats.Update(cat); err != nil {
		if repos.IsConflict(err) {
			return conflict(c, "category name or slug already exists")
		}
		applog.Error(c, "admin.category.update.fail", err, map[string]any{"category_id": id})
		return serverError(c)
	}
	applog.Audit(c, "admin.category.update", map[string]any{"category_id": id})
	return c.JSON(categoryJSON(cat, []fiber.Map{}, 0))
}

// DeleteCategory cascades to subcategories; blocked while any subcategory
// still has products (products protect their subcategory).
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "category not found")
	}
	if err := h.Cats.Delete(id); err != nil {
		if repos.IsConflict(err) {
			return conflict(c, "category has subcategories with products")
		}
		applog.Error(c, "admin.category.delete.fail", err, map[string]any{"category_id": id})
		return serverError(c)
	}
	applog.Audit(c, "admin.category.delete", map[string]any{"category_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------- Subcategories ----------

type subcategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	CategoryID  string `json:"category"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

func (in subcategoryInput) normalize(id string) (domain.Subcategory, map[string]string) {
	errs := map[string]string{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		errs["category"] = "category is required"
	}
	if len(errs) > 0 {
		return domain.Subcategory{}, errs
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = validate.Slugify(name)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return domain.Subcategory{
		ID:          id,
		CategoryID:  in.CategoryID,
		Name:        name,
		Slug:        slug,
		Icon:        strings.TrimSpace(in.Icon),
		Description: strings.TrimSpace(in.Description),
		IsActive:    active,
	}, nil
}

func (h *AdminHandler) CreateSubcategory(c *fiber.Ctx) error {
	var in subcategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed request body")
	}
	sub, errs := in.normalize(uuid.NewString())
	if len(errs) > 0 {
		return fieldErrors(c, errs)
	}
	if _, err := h.Cats.ByID(sub.CategoryID); err != nil {
		return fieldErrors(c, map[string]string{"category": "unknown category"})
	}
	if err := h.Subs.Create(sub); err != nil {
		if repos.IsConflict(err) {
			return conflict(c, "subcategory already exists under this category")
		}
		applog.Error(c, "admin.subcategory.create.fail", err, nil)
		return serverError(c)
	}
	applog.Audit(c, "admin.subcategory.create", map[string]any{"subcategory_id": sub.ID})
	return c.Status(fiber.StatusCreated).JSON(subcategoryJSON(sub))
}

func (h *AdminHandler) UpdateSubcategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "subcategory not found")
	}
	if _, err := h.Subs.ByID(id); err != nil {
		return notFound(c, "subcategory not found")
	}
	var in subcategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed request body")
	}
	sub, errs := in.normalize(id)
	if len(errs) > 0 {
		return fieldErrors(c, errs)
	}
	if _, err := h.Cats.ByID(sub.CategoryID); err != nil {
		return fieldErrors(c, map[string]string{"category": "unknown category"})
	}
	if err := h.Subs.Update(sub); err != nil {
		if repos.IsConflict(err) {
			return conflict(c, "subcategory already exists under this category")
		}
		applog.Error(c, "admin.subcategory.update.fail", err, map[string]any{"subcategory_id": id})
		return serverError(c)
	}
	applog.Audit(c, "admin.subcategory.update", map[string]any{"subcategory_id": id})
	return c.JSON(subcategoryJSON(sub))
}

// DeleteSubcategory is rejected while products still reference it.
func (h *AdminHandler) DeleteSubcategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "subcategory not found")
	}
	if err := h.Subs.Delete(id); err != nil {
		if repos.IsConflict(err) {
			return conflict(c, "subcategory still has products")
		}
		applog.Error(c, "admin.subcategory.delete.fail", err, map[string]any{"subcategory_id": id})
		return serverError(c)
	}
	applog.Audit(c, "admin.subcategory.delete", map[string]any{"subcategory_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------- Products ----------

func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed request body")
	}
	p, errs, err := h.Products.Create(in)
	if err != nil {
		if repos.IsConflict(err) {
			return conflict(c, "sku or slug already exists")
		}
		applog.Error(c, "admin.product.create.fail", err, nil)
		return serverError(c)
	}
	if len(errs) > 0 {
		applog.Security(c, "admin.product.validation.fail", map[string]any{"fields": errs})
		return fieldErrors(c, errs)
	}
	applog.Audit(c, "admin.product.create", map[string]any{"product_id": p.ID, "sku": p.SKU})
	return c.Status(fiber.StatusCreated).JSON(productDetailJSON(p, nil, h.Media))
}

func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "product not found")
	}
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed request body")
	}
	p, errs, err := h.Products.Update(id, in)
	if err != nil {
		if repos.IsConflict(err) {
			return conflict(c, "sku or slug already exists")
		}
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(c, "product not found")
		}
		applog.Error(c, "admin.product.update.fail", err, map[string]any{"product_id": id})
		return serverError(c)
	}
	if len(errs) > 0 {
		applog.Security(c, "admin.product.validation.fail", map[string]any{"fields": errs})
		return fieldErrors(c, errs)
	}
	applog.Audit(c, "admin.product.update", map[string]any{"product_id": id})
	return c.JSON(productDetailJSON(p, nil, h.Media))
}

func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "product not found")
	}
	if err := h.Products.Delete(id); err != nil {
		if repos.IsConflict(err) {
			return conflict(c, "product is referenced by quote requests")
		}
		applog.Error(c, "admin.product.delete.fail", err, map[string]any{"product_id": id})
		return serverError(c)
	}
	applog.Audit(c, "admin.product.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------- Product images ----------

type imageInput struct {
	Image     string `json:"image"`
	AltText   string `json:"alt_text"`
	IsPrimary bool   `json:"is_primary"`
	Order     int    `json:"order"`
}

func (h *AdminHandler) AddProductImage(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "product not found")
	}
	var in imageInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed request body")
	}
	img, errs, err := h.Products.AddImage(id, in.Image, in.AltText, in.IsPrimary, in.Order)
	if err != nil {
		return notFound(c, "product not found")
	}
	if len(errs) > 0 {
		return fieldErrors(c, errs)
	}
	applog.Audit(c, "admin.image.add", map[string]any{"product_id": id, "image_id": img.ID})
	return c.Status(fiber.StatusCreated).JSON(imageJSON(img, h.Media))
}

func (h *AdminHandler) DeleteProductImage(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "image not found")
	}
	if err := h.Products.DeleteImage(id); err != nil {
		applog.Error(c, "admin.image.delete.fail", err, map[string]any{"image_id": id})
		return serverError(c)
	}
	applog.Audit(c, "admin.image.delete", map[string]any{"image_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------- Quote requests ----------

func (h *AdminHandler) ListQuotes(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	quotes, err := h.QuoteRp.ListLatest(limit)
	if err != nil {
		applog.Error(c, "admin.quotes.list.fail", err, nil)
		return serverError(c)
	}
	out := make([]fiber.Map, 0, len(quotes))
	for _, q := range quotes {
		items, err := h.QuoteRp.Items(q.ID)
		if err != nil {
			applog.Error(c, "admin.quotes.list.fail", err, map[string]any{"quote_id": q.ID})
			return serverError(c)
		}
		m := quoteJSON(q, items)
		m["admin_notes"] = q.AdminNotes
		out = append(out, m)
	}
	return c.JSON(out)
}

func (h *AdminHandler) GetQuote(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "quote not found")
	}
	q, items, err := h.QuoteRp.Get(id)
	if err != nil {
		return notFound(c, "quote not found")
	}
	m := quoteJSON(q, items)
	m["admin_notes"] = q.AdminNotes
	return c.JSON(m)
}

// UpdateQuoteStatus moves a quote to any enumerated status.
func (h *AdminHandler) UpdateQuoteStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "quote not found")
	}
	var body struct {
		Status     string `json:"status"`
		AdminNotes string `json:"admin_notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "malformed request body")
	}
	if _, _, err := h.QuoteRp.Get(id); err != nil {
		return notFound(c, "quote not found")
	}
	errs, err := h.Quotes.UpdateStatus(id, body.Status, body.AdminNotes)
	if err != nil {
		applog.Error(c, "admin.quote.status.fail", err, map[string]any{"quote_id": id})
		return serverError(c)
	}
	if len(errs) > 0 {
		return fieldErrors(c, errs)
	}
	applog.Audit(c, "admin.quote.status", map[string]any{"quote_id": id, "status": body.Status})
	q, items, err := h.QuoteRp.Get(id)
	if err != nil {
		return serverError(c)
	}
	m := quoteJSON(q, items)
	m["admin_notes"] = q.AdminNotes
	return c.JSON(m)
}
