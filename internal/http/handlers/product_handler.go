package handlers

import (
	"strconv"
	"strings"

	"officemart/internal/domain"
	"officemart/internal/log"
	"officemart/internal/media"
	"officemart/internal/repos"
	"officemart/internal/services"
	"officemart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Media   *media.Resolver
}

// List is the main catalog query surface: filter, search, sort, paginate.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f, err := h.filterFromQuery(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "0"))

	result, err := h.Catalog.ListProducts(f, page, pageSize)
	if err != nil {
		log.Error(c, "products.list.fail", err, nil)
		return serverError(c)
	}
	return c.JSON(h.pageJSON(result))
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product_slug"})
		return notFound(c, "product not found")
	}
	p, imgs, err := h.Catalog.GetProduct(slug)
	if err != nil {
		return notFound(c, "product not found")
	}
	return c.JSON(productDetailJSON(p, imgs, h.Media))
}

// Featured is the bounded homepage collection.
func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	prods, err := h.Catalog.Featured()
	if err != nil {
		log.Error(c, "products.featured.fail", err, nil)
		return serverError(c)
	}
	return c.JSON(h.listJSON(prods))
}

// ByType serves the /api/products/new|refurbished|rental shortcuts.
func (h *ProductHandler) ByType(productType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		prods, err := h.Catalog.ByType(productType)
		if err != nil {
			log.Error(c, "products.shortcut.fail", err, map[string]any{"type": productType})
			return serverError(c)
		}
		return c.JSON(h.listJSON(prods))
	}
}

func (h *ProductHandler) filterFromQuery(c *fiber.Ctx) (repos.ProductFilter, error) {
	var f repos.ProductFilter

	if v := c.Query("subcategory"); v != "" {
		id, ok := validate.ID(v)
		if !ok {
			return f, errBadParam("subcategory")
		}
		f.SubcategoryID = id
	}
	if v := c.Query("category"); v != "" {
		id, ok := validate.ID(v)
		if !ok {
			return f, errBadParam("category")
		}
		f.CategoryID = id
	}
	if v := c.Query("brand"); v != "" {
		f.Brand = strings.TrimSpace(v)
	}
	if v := c.Query("in_stock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, errBadParam("in_stock")
		}
		f.InStock = &b
	}
	if v := c.Query("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, errBadParam("featured")
		}
		f.Featured = &b
	}
	if v := c.Query("product_type"); v != "" {
		f.ProductType = v
	}
	if v := c.Query("search"); v != "" {
		q, ok := validate.Q(v)
		if !ok {
			return f, errBadParam("search")
		}
		f.Search = q
	}
	f.Ordering = c.Query("ordering")
	return f, nil
}

func (h *ProductHandler) pageJSON(p services.ProductPage) fiber.Map {
	return fiber.Map{
		"count":     p.Count,
		"page":      p.Page,
		"page_size": p.PageSize,
		"results":   h.listJSON(p.Results),
	}
}

func (h *ProductHandler) listJSON(prods []domain.Product) []fiber.Map {
	out := make([]fiber.Map, 0, len(prods))
	for _, p := range prods {
		out = append(out, productListJSON(p, h.Media))
	}
	return out
}

type paramError string

func (e paramError) Error() string { return "invalid " + string(e) }

func errBadParam(name string) error { return paramError(name) }
