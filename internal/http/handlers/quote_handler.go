package handlers

import (
	"officemart/internal/log"
	"officemart/internal/services"

	"github.com/gofiber/fiber/v2"
)

type QuoteHandler struct {
	Quotes *services.QuoteService
}

// Create is the single end-user write path: POST /api/quotes.
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in services.QuoteInput
	if err := c.BodyParser(&in); err != nil {
		log.Security(c, "quote.body.bad", map[string]any{"err": err.Error()})
		return badRequest(c, "malformed request body")
	}

	q, items, errs, err := h.Quotes.Submit(in)
	if err != nil {
		log.Error(c, "quote.create.fail", err, nil)
		return serverError(c)
	}
	if len(errs) > 0 {
		log.Security(c, "quote.validation.fail", map[string]any{"fields": errs})
		return fieldErrors(c, errs)
	}

	log.Audit(c, "quote.create", map[string]any{"quote_id": q.ID, "items": len(items)})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Quote request submitted successfully",
		"data":    quoteJSON(q, items),
	})
}
