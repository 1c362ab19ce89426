package handlers

import (
	"officemart/internal/domain"
	"officemart/internal/media"

	"github.com/gofiber/fiber/v2"
)

// JSON shapes for the API. Derived fields are computed here on every read;
// image references resolve to absolute URLs on the media host.

func categoryJSON(cat domain.Category, subs []fiber.Map, productCount int) fiber.Map {
	return fiber.Map{
		"id":             cat.ID,
		"name":           cat.Name,
		"slug":           cat.Slug,
		"icon":           cat.Icon,
		"description":    cat.Description,
		"show_in_navbar": cat.ShowInNavbar,
		"navbar_order":   cat.NavbarOrder,
		"subcategories":  subs,
		"product_count":  productCount,
	}
}

func subcategoryJSON(s domain.Subcategory) fiber.Map {
	return fiber.Map{
		"id":            s.ID,
		"name":          s.Name,
		"slug":          s.Slug,
		"icon":          s.Icon,
		"description":   s.Description,
		"category":      s.CategoryID,
		"category_name": s.CategoryName,
		"product_count": s.ProductCount,
	}
}

func productListJSON(p domain.Product, m *media.Resolver) fiber.Map {
	return fiber.Map{
		"id":                   p.ID,
		"name":                 p.Name,
		"slug":                 p.Slug,
		"sku":                  p.SKU,
		"category_name":        p.CategoryName,
		"subcategory_name":     p.SubcategoryName,
		"brand":                p.Brand,
		"product_type":         p.ProductType,
		"product_type_display": p.ProductTypeDisplay(),
		"price":                p.Price,
		"original_price":       p.OriginalPrice,
		"discount":             p.Discount,
		"final_price":          p.FinalPrice(),
		"discount_amount":      p.DiscountAmount(),
		"is_on_sale":           p.IsOnSale(),
		"rental_price_daily":   p.RentalPriceDaily,
		"rental_price_weekly":  p.RentalPriceWeekly,
		"rental_price_monthly": p.RentalPriceMonthly,
		"min_rental_period":    p.MinRentalPeriod,
		"main_image":           m.URLPtr(p.MainImage),
		"stock_count":          p.StockCount,
		"in_stock":             p.InStock,
		"stock_status":         p.StockStatus(),
		"rating":               p.Rating,
		"reviews":              p.Reviews,
		"is_featured":          p.IsFeatured,
	}
}

func productDetailJSON(p domain.Product, imgs []domain.ProductImage, m *media.Resolver) fiber.Map {
	out := productListJSON(p, m)
	out["description"] = p.Description
	out["features"] = p.Features()
	out["specifications"] = p.Specifications()
	out["weight"] = p.Weight
	out["warranty_months"] = p.WarrantyMonths
	out["condition"] = p.Condition
	out["seo_title"] = p.SEOTitle
	out["seo_description"] = p.SEODescription
	out["created_at"] = p.CreatedAt

	images := make([]fiber.Map, 0, len(imgs))
	for _, img := range imgs {
		images = append(images, imageJSON(img, m))
	}
	out["images"] = images
	return out
}

func imageJSON(img domain.ProductImage, m *media.Resolver) fiber.Map {
	return fiber.Map{
		"id":         img.ID,
		"image":      m.URL(img.Image),
		"alt_text":   img.AltText,
		"is_primary": img.IsPrimary,
		"order":      img.Order,
	}
}

func quoteJSON(q domain.QuoteRequest, items []domain.QuoteItem) fiber.Map {
	its := make([]fiber.Map, 0, len(items))
	for _, it := range items {
		its = append(its, fiber.Map{
			"id":           it.ID,
			"product":      it.ProductID,
			"product_name": it.ProductName,
			"product_sku":  it.ProductSKU,
			"quantity":     it.Quantity,
			"price":        it.Price,
			"subtotal":     it.Subtotal(),
		})
	}
	return fiber.Map{
		"id":           q.ID,
		"name":         q.Name,
		"email":        q.Email,
		"phone":        q.Phone,
		"company":      q.Company,
		"message":      q.Message,
		"status":       q.Status,
		"items":        its,
		"total_amount": domain.QuoteTotal(items),
		"created_at":   q.CreatedAt,
	}
}
