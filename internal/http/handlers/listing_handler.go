package handlers

import (
	"errors"
	"strconv"

	"officemart/internal/domain"
	"officemart/internal/log"
	"officemart/internal/media"
	"officemart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ListingHandler serves the SEO-friendly listing routes where URL segments
// carry the filter: a product-type token, a category slug, or both.
type ListingHandler struct {
	Catalog *services.CatalogService
	Media   *media.Resolver
}

// ByType handles /api/listing/:productType.
func (h *ListingHandler) ByType(c *fiber.Ctx) error {
	return h.serve(c, c.Params("productType"), "")
}

// ByCategory handles /api/listing/category/:categorySlug.
func (h *ListingHandler) ByCategory(c *fiber.Ctx) error {
	return h.serve(c, "", c.Params("categorySlug"))
}

// ByTypeAndCategory handles /api/listing/:productType/:categorySlug.
func (h *ListingHandler) ByTypeAndCategory(c *fiber.Ctx) error {
	return h.serve(c, c.Params("productType"), c.Params("categorySlug"))
}

func (h *ListingHandler) serve(c *fiber.Ctx, productType, categorySlug string) error {
	f, err := h.Catalog.ResolveListing(productType, categorySlug)
	if err != nil {
		if errors.Is(err, services.ErrUnknownProductType) {
			log.Security(c, "listing.unknown_type", map[string]any{"type": productType})
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":       "unknown product type '" + productType + "'",
				"valid_types": domain.ProductTypes,
			})
		}
		return notFound(c, "category not found")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "0"))
	result, err := h.Catalog.ListProducts(f, page, pageSize)
	if err != nil {
		log.Error(c, "listing.fail", err, nil)
		return serverError(c)
	}

	out := make([]fiber.Map, 0, len(result.Results))
	for _, p := range result.Results {
		out = append(out, productListJSON(p, h.Media))
	}
	return c.JSON(fiber.Map{
		"count":     result.Count,
		"page":      result.Page,
		"page_size": result.PageSize,
		"results":   out,
	})
}
