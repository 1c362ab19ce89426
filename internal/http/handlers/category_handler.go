package handlers

import (
	"officemart/internal/domain"
	"officemart/internal/log"
	"officemart/internal/services"
	"officemart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// List returns active categories with their subcategories and product counts.
// ?navbar=true restricts to navbar entries, already in navbar order.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	navbarOnly := c.Query("navbar") == "true"
	cats, err := h.Catalog.ListCategories(navbarOnly)
	if err != nil {
		log.Error(c, "categories.list.fail", err, nil)
		return serverError(c)
	}

	out := make([]fiber.Map, 0, len(cats))
	for _, cat := range cats {
		m, err := h.withChildren(cat)
		if err != nil {
			log.Error(c, "categories.list.fail", err, nil)
			return serverError(c)
		}
		out = append(out, m)
	}
	return c.JSON(out)
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "category_slug"})
		return notFound(c, "category not found")
	}
	cat, err := h.Catalog.GetCategory(slug)
	if err != nil {
		return notFound(c, "category not found")
	}
	m, err := h.withChildren(cat)
	if err != nil {
		log.Error(c, "categories.get.fail", err, nil)
		return serverError(c)
	}
	return c.JSON(m)
}

func (h *CategoryHandler) withChildren(cat domain.Category) (fiber.Map, error) {
	subs, err := h.Catalog.ListSubcategories(cat.ID)
	if err != nil {
		return nil, err
	}
	subJSON := make([]fiber.Map, 0, len(subs))
	for _, s := range subs {
		subJSON = append(subJSON, subcategoryJSON(s))
	}
	count, err := h.Catalog.CategoryProductCount(cat.ID)
	if err != nil {
		return nil, err
	}
	return categoryJSON(cat, subJSON, count), nil
}
