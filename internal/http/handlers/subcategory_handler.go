package handlers

import (
	"officemart/internal/log"
	"officemart/internal/services"
	"officemart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SubcategoryHandler struct {
	Catalog *services.CatalogService
}

// List returns active subcategories, filterable by ?category=<id>.
func (h *SubcategoryHandler) List(c *fiber.Ctx) error {
	categoryID := c.Query("category")
	if categoryID != "" {
		if _, ok := validate.ID(categoryID); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "category"})
			return badRequest(c, "invalid category")
		}
	}
	subs, err := h.Catalog.ListSubcategories(categoryID)
	if err != nil {
		log.Error(c, "subcategories.list.fail", err, nil)
		return serverError(c)
	}
	out := make([]fiber.Map, 0, len(subs))
	for _, s := range subs {
		out = append(out, subcategoryJSON(s))
	}
	return c.JSON(out)
}

func (h *SubcategoryHandler) Get(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "subcategory_slug"})
		return notFound(c, "subcategory not found")
	}
	s, err := h.Catalog.GetSubcategory(slug)
	if err != nil {
		return notFound(c, "subcategory not found")
	}
	return c.JSON(subcategoryJSON(s))
}
