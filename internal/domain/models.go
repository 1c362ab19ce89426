package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Product type tags. They gate which optional field groups are meaningful.
const (
	TypeNew         = "new"
	TypeRefurbished = "refurbished"
	TypeRental      = "rental"
)

var ProductTypes = []string{TypeNew, TypeRefurbished, TypeRental}

type Category struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Slug         string `db:"slug"`
	Icon         string `db:"icon"`
	Description  string `db:"description"`
	IsActive     bool   `db:"is_active"`
	ShowInNavbar bool   `db:"show_in_navbar"`
	NavbarOrder  int    `db:"navbar_order"`
	CreatedAt    string `db:"created_at"`
	UpdatedAt    string `db:"updated_at"`
}

type Subcategory struct {
	ID          string `db:"id"`
	CategoryID  string `db:"category_id"`
	Name        string `db:"name"`
	Slug        string `db:"slug"`
	Icon        string `db:"icon"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`

	// Joined columns, populated by list/detail queries.
	CategoryName string `db:"category_name"`
	ProductCount int    `db:"product_count"`
}

type Product struct {
	ID            string   `db:"id"`
	SubcategoryID string   `db:"subcategory_id"`
	Name          string   `db:"name"`
	Slug          string   `db:"slug"`
	SKU           string   `db:"sku"`
	Brand         string   `db:"brand"`
	ProductType   string   `db:"product_type"`
	Price         float64  `db:"price"`
	OriginalPrice *float64 `db:"original_price"`
	Discount      int      `db:"discount"`

	RentalPriceDaily   *float64 `db:"rental_price_daily"`
	RentalPriceWeekly  *float64 `db:"rental_price_weekly"`
	RentalPriceMonthly *float64 `db:"rental_price_monthly"`
	MinRentalPeriod    *string  `db:"min_rental_period"`

	StockCount int  `db:"stock_count"`
	InStock    bool `db:"in_stock"`

	Description        string `db:"description"`
	FeaturesJSON       string `db:"features_json"`
	SpecificationsJSON string `db:"specifications_json"`

	Weight         *string `db:"weight"`
	WarrantyMonths *int    `db:"warranty_months"`
	Condition      *string `db:"condition"`

	Rating  float64 `db:"rating"`
	Reviews int     `db:"reviews"`

	MainImage *string `db:"main_image"`

	SEOTitle       string `db:"seo_title"`
	SEODescription string `db:"seo_description"`

	IsActive   bool   `db:"is_active"`
	IsFeatured bool   `db:"is_featured"`
	CreatedAt  string `db:"created_at"`
	UpdatedAt  string `db:"updated_at"`

	// Joined columns.
	SubcategoryName string `db:"subcategory_name"`
	CategoryName    string `db:"category_name"`
	CategorySlug    string `db:"category_slug"`
}

// FinalPrice applies the discount against the original price.
// Without a discount (or without an original price) the listed price stands.
func (p Product) FinalPrice() float64 {
	if p.Discount > 0 && p.OriginalPrice != nil {
		return round2(*p.OriginalPrice - *p.OriginalPrice*float64(p.Discount)/100)
	}
	return p.Price
}

func (p Product) DiscountAmount() float64 {
	if p.OriginalPrice != nil && *p.OriginalPrice > p.Price {
		return round2(*p.OriginalPrice - p.Price)
	}
	return 0
}

func (p Product) IsOnSale() bool {
	return p.Discount > 0 && p.OriginalPrice != nil
}

// StockStatus maps the stored count to the storefront tri-state label.
func (p Product) StockStatus() string {
	switch {
	case p.StockCount == 0:
		return "Out of Stock"
	case p.StockCount < 5:
		return "Low Stock"
	default:
		return "In Stock"
	}
}

func (p Product) ProductTypeDisplay() string {
	switch p.ProductType {
	case TypeRefurbished:
		return "Refurbished Product"
	case TypeRental:
		return "Rental Product"
	default:
		return "New Product"
	}
}

// Features decodes the stored JSON list; a broken or empty column yields an
// empty slice rather than an error, matching how the storefront consumes it.
func (p Product) Features() []string {
	if p.FeaturesJSON == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(p.FeaturesJSON), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func (p Product) Specifications() map[string]string {
	if p.SpecificationsJSON == "" {
		return map[string]string{}
	}
	var out map[string]string
	if err := json.Unmarshal([]byte(p.SpecificationsJSON), &out); err != nil || out == nil {
		return map[string]string{}
	}
	return out
}

type ProductImage struct {
	ID        string `db:"id"`
	ProductID string `db:"product_id"`
	Image     string `db:"image"`
	AltText   string `db:"alt_text"`
	IsPrimary bool   `db:"is_primary"`
	Order     int    `db:"display_order"`
	CreatedAt string `db:"created_at"`
}

// DefaultAltText fills the alt text from the product name and position when
// the admin left it blank.
func (i ProductImage) DefaultAltText(productName string) string {
	if i.AltText != "" {
		return i.AltText
	}
	return fmt.Sprintf("%s - Image %d", productName, i.Order)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
