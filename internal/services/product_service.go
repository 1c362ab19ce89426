package services

import (
	"encoding/json"
	"strings"

	"officemart/internal/domain"
	"officemart/internal/repos"
	"officemart/internal/validate"

	"github.com/google/uuid"
)

// ProductInput is the admin write payload for creating or updating a product.
type ProductInput struct {
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	SKU           string  `json:"sku"`
	SubcategoryID string  `json:"subcategory"`
	Brand         string  `json:"brand"`
	ProductType   string  `json:"product_type"`
	Price         float64 `json:"price"`

	OriginalPrice *float64 `json:"original_price"`
	Discount      int      `json:"discount"`

	RentalPriceDaily   *float64 `json:"rental_price_daily"`
	RentalPriceWeekly  *float64 `json:"rental_price_weekly"`
	RentalPriceMonthly *float64 `json:"rental_price_monthly"`
	MinRentalPeriod    *string  `json:"min_rental_period"`

	StockCount int   `json:"stock_count"`
	InStock    *bool `json:"in_stock"`

	Description    string            `json:"description"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`

	Weight         *string `json:"weight"`
	WarrantyMonths *int    `json:"warranty_months"`
	Condition      *string `json:"condition"`

	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`

	MainImage *string `json:"main_image"`

	SEOTitle       string `json:"seo_title"`
	SEODescription string `json:"seo_description"`

	IsActive   *bool `json:"is_active"`
	IsFeatured bool  `json:"is_featured"`
}

// ProductService owns the write path of the catalog: explicit normalization
// followed by invariant checks, then a single insert or update.
type ProductService struct {
	Prods *repos.ProductRepo
	Subs  *repos.SubcategoryRepo
}

func NewProductService(prods *repos.ProductRepo, subs *repos.SubcategoryRepo) *ProductService {
	return &ProductService{Prods: prods, Subs: subs}
}

// Normalize turns the raw input into a persistable record. No hidden save
// hooks: slug, SEO fields and the JSON columns are filled right here.
func Normalize(in ProductInput) domain.Product {
	p := domain.Product{
		SubcategoryID:      in.SubcategoryID,
		Name:               strings.TrimSpace(in.Name),
		Slug:               strings.TrimSpace(in.Slug),
		SKU:                strings.TrimSpace(in.SKU),
		Brand:              strings.TrimSpace(in.Brand),
		ProductType:        in.ProductType,
		Price:              in.Price,
		OriginalPrice:      in.OriginalPrice,
		Discount:           in.Discount,
		RentalPriceDaily:   in.RentalPriceDaily,
		RentalPriceWeekly:  in.RentalPriceWeekly,
		RentalPriceMonthly: in.RentalPriceMonthly,
		MinRentalPeriod:    in.MinRentalPeriod,
		StockCount:         in.StockCount,
		Description:        strings.TrimSpace(in.Description),
		Weight:             in.Weight,
		WarrantyMonths:     in.WarrantyMonths,
		Condition:          in.Condition,
		Rating:             in.Rating,
		Reviews:            in.Reviews,
		MainImage:          in.MainImage,
		SEOTitle:           strings.TrimSpace(in.SEOTitle),
		SEODescription:     strings.TrimSpace(in.SEODescription),
		IsFeatured:         in.IsFeatured,
	}
	// Omitted flags keep their storefront defaults: products are visible
	// unless deactivated, and availability follows the stock count.
	p.IsActive = in.IsActive == nil || *in.IsActive
	if in.InStock == nil {
		p.InStock = p.StockCount > 0
	} else {
		p.InStock = *in.InStock
	}
	if p.ProductType == "" {
		p.ProductType = domain.TypeNew
	}
	if p.Slug == "" {
		p.Slug = validate.Slugify(p.Name)
	}
	if p.SEOTitle == "" {
		p.SEOTitle = p.Name
	}
	if p.SEODescription == "" {
		p.SEODescription = truncate(p.Description, 160)
	}

	features := in.Features
	if features == nil {
		features = []string{}
	}
	fb, _ := json.Marshal(features)
	p.FeaturesJSON = string(fb)

	specs := in.Specifications
	if specs == nil {
		specs = map[string]string{}
	}
	sb, _ := json.Marshal(specs)
	p.SpecificationsJSON = string(sb)

	return p
}

// Validate checks the write-time invariants and returns per-field errors.
// An empty map means the record may be persisted.
func Validate(p domain.Product) map[string]string {
	errs := map[string]string{}

	if p.Name == "" {
		errs["name"] = "name is required"
	}
	if p.SKU == "" {
		errs["sku"] = "sku is required"
	}
	if p.SubcategoryID == "" {
		errs["subcategory"] = "subcategory is required"
	}
	if !validProductType(p.ProductType) {
		errs["product_type"] = "must be one of: " + strings.Join(domain.ProductTypes, ", ")
	}
	if p.Price < 0 {
		errs["price"] = "price must not be negative"
	}
	if p.Discount < 0 || p.Discount > 100 {
		errs["discount"] = "discount must be between 0 and 100"
	}
	if p.Rating < 0 || p.Rating > 5 {
		errs["rating"] = "rating must be between 0.0 and 5.0"
	}
	if p.StockCount < 0 {
		errs["stock_count"] = "stock count must not be negative"
	}

	if p.ProductType == domain.TypeRental &&
		p.RentalPriceDaily == nil && p.RentalPriceWeekly == nil && p.RentalPriceMonthly == nil {
		errs["rental_price_daily"] = "rental products need at least one rental price (daily, weekly or monthly)"
	}
	if p.InStock && p.StockCount <= 0 {
		errs["stock_count"] = "in-stock products must have a stock count greater than zero"
	}
	if p.Discount > 0 && p.OriginalPrice == nil {
		errs["original_price"] = "a discount requires the original price"
	}
	if p.OriginalPrice != nil && p.Price > *p.OriginalPrice {
		errs["price"] = "price must not exceed the original price"
	}

	return errs
}

// Create normalizes, validates and inserts. Field errors block the write.
func (s *ProductService) Create(in ProductInput) (domain.Product, map[string]string, error) {
	p := Normalize(in)
	if errs := Validate(p); len(errs) > 0 {
		return domain.Product{}, errs, nil
	}
	if _, err := s.Subs.ByID(p.SubcategoryID); err != nil {
		return domain.Product{}, map[string]string{"subcategory": "unknown subcategory"}, nil
	}
	p.ID = uuid.NewString()
	if err := s.Prods.Create(p); err != nil {
		return domain.Product{}, nil, err
	}
	created, err := s.Prods.ByID(p.ID)
	return created, nil, err
}

func (s *ProductService) Update(id string, in ProductInput) (domain.Product, map[string]string, error) {
	if _, err := s.Prods.ByID(id); err != nil {
		return domain.Product{}, nil, err
	}
	p := Normalize(in)
	if errs := Validate(p); len(errs) > 0 {
		return domain.Product{}, errs, nil
	}
	if _, err := s.Subs.ByID(p.SubcategoryID); err != nil {
		return domain.Product{}, map[string]string{"subcategory": "unknown subcategory"}, nil
	}
	p.ID = id
	if err := s.Prods.Update(p); err != nil {
		return domain.Product{}, nil, err
	}
	updated, err := s.Prods.ByID(id)
	return updated, nil, err
}

func (s *ProductService) Delete(id string) error {
	return s.Prods.Delete(id)
}

// AddImage attaches an auxiliary image, filling blank alt text from the
// product name and position.
func (s *ProductService) AddImage(productID, image, altText string, isPrimary bool, order int) (domain.ProductImage, map[string]string, error) {
	if image == "" {
		return domain.ProductImage{}, map[string]string{"image": "image reference is required"}, nil
	}
	if order < 0 {
		return domain.ProductImage{}, map[string]string{"order": "display order must not be negative"}, nil
	}
	p, err := s.Prods.ByID(productID)
	if err != nil {
		return domain.ProductImage{}, nil, err
	}
	img := domain.ProductImage{
		ID:        uuid.NewString(),
		ProductID: p.ID,
		Image:     image,
		AltText:   altText,
		IsPrimary: isPrimary,
		Order:     order,
	}
	img.AltText = img.DefaultAltText(p.Name)
	if err := s.Prods.AddImage(img); err != nil {
		return domain.ProductImage{}, nil, err
	}
	return img, nil, nil
}

func (s *ProductService) DeleteImage(id string) error {
	return s.Prods.DeleteImage(id)
}

// truncate cuts to n characters on a rune boundary so multibyte text never
// ends up as broken UTF-8 in the database.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
