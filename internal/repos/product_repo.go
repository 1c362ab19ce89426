package repos

import (
	"officemart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// ProductFilter collects the query parameters of the catalog read surface.
// Zero values mean "not filtered"; InStock/Featured use pointers so false is
// still a filter.
type ProductFilter struct {
	SubcategoryID string
	CategoryID    string
	Brand         string
	InStock       *bool
	Featured      *bool
	ProductType   string
	Search        string
	Ordering      string
	Limit         int
	Offset        int
}

const productCols = `
  p.id, p.subcategory_id, p.name, p.slug, p.sku, p.brand, p.product_type,
  p.price, p.original_price, p.discount,
  p.rental_price_daily, p.rental_price_weekly, p.rental_price_monthly, p.min_rental_period,
  p.stock_count, p.in_stock, p.description, p.features_json, p.specifications_json,
  p.weight, p.warranty_months, p.condition, p.rating, p.reviews, p.main_image,
  p.seo_title, p.seo_description, p.is_active, p.is_featured,
  p.created_at, COALESCE(p.updated_at,'') AS updated_at,
  s.name AS subcategory_name, c.name AS category_name, c.slug AS category_slug`

const productJoins = `
  FROM products p
  JOIN subcategories s ON s.id = p.subcategory_id
  JOIN categories c ON c.id = s.category_id`

// Sort keys exposed to clients; anything else falls back to newest-first.
var orderings = map[string]string{
	"price":       "p.price ASC",
	"-price":      "p.price DESC",
	"name":        "LOWER(p.name) ASC",
	"-name":       "LOWER(p.name) DESC",
	"created_at":  "p.created_at ASC",
	"-created_at": "p.created_at DESC",
}

func buildWhere(f ProductFilter) (string, []any) {
	where := `p.is_active = 1`
	args := []any{}
	if f.SubcategoryID != "" {
		where += ` AND p.subcategory_id = ?`
		args = append(args, f.SubcategoryID)
	}
	if f.CategoryID != "" {
		where += ` AND s.category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.Brand != "" {
		where += ` AND LOWER(p.brand) = LOWER(?)`
		args = append(args, f.Brand)
	}
	if f.InStock != nil {
		where += ` AND p.in_stock = ?`
		args = append(args, *f.InStock)
	}
	if f.Featured != nil {
		where += ` AND p.is_featured = ?`
		args = append(args, *f.Featured)
	}
	if f.ProductType != "" {
		where += ` AND p.product_type = ?`
		args = append(args, f.ProductType)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		where += ` AND (LOWER(p.name) LIKE LOWER(?) OR LOWER(p.description) LIKE LOWER(?)
		           OR LOWER(p.sku) LIKE LOWER(?) OR LOWER(p.brand) LIKE LOWER(?))`
		args = append(args, like, like, like, like)
	}
	return where, args
}

func (r *ProductRepo) List(f ProductFilter) ([]domain.Product, error) {
	where, args := buildWhere(f)
	order, ok := orderings[f.Ordering]
	if !ok {
		order = orderings["-created_at"]
	}
	sql := `SELECT ` + productCols + productJoins + `
	  WHERE ` + where + `
	  ORDER BY ` + order + `
	  LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)

	var out []domain.Product
	err := r.db.Select(&out, sql, args...)
	return out, err
}

func (r *ProductRepo) Count(f ProductFilter) (int, error) {
	where, args := buildWhere(f)
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*)`+productJoins+` WHERE `+where, args...)
	return n, err
}

func (r *ProductRepo) BySlug(slug string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+productJoins+`
	  WHERE p.slug = ? AND p.is_active = 1`, slug)
	return p, err
}

func (r *ProductRepo) ByID(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+productJoins+`
	  WHERE p.id = ?`, id)
	return p, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO products(
	    id, subcategory_id, name, slug, sku, brand, product_type,
	    price, original_price, discount,
	    rental_price_daily, rental_price_weekly, rental_price_monthly, min_rental_period,
	    stock_count, in_stock, description, features_json, specifications_json,
	    weight, warranty_months, condition, rating, reviews, main_image,
	    seo_title, seo_description, is_active, is_featured
	  ) VALUES (
	    :id, :subcategory_id, :name, :slug, :sku, :brand, :product_type,
	    :price, :original_price, :discount,
	    :rental_price_daily, :rental_price_weekly, :rental_price_monthly, :min_rental_period,
	    :stock_count, :in_stock, :description, :features_json, :specifications_json,
	    :weight, :warranty_months, :condition, :rating, :reviews, :main_image,
	    :seo_title, :seo_description, :is_active, :is_featured
	  )`, p)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.NamedExec(`
	  UPDATE products SET
	    subcategory_id=:subcategory_id, name=:name, slug=:slug, sku=:sku, brand=:brand,
	    product_type=:product_type, price=:price, original_price=:original_price, discount=:discount,
	    rental_price_daily=:rental_price_daily, rental_price_weekly=:rental_price_weekly,
	    rental_price_monthly=:rental_price_monthly, min_rental_period=:min_rental_period,
	    stock_count=:stock_count, in_stock=:in_stock, description=:description,
	    features_json=:features_json, specifications_json=:specifications_json,
	    weight=:weight, warranty_months=:warranty_months, condition=:condition,
	    rating=:rating, reviews=:reviews, main_image=:main_image,
	    seo_title=:seo_title, seo_description=:seo_description,
	    is_active=:is_active, is_featured=:is_featured,
	    updated_at=CURRENT_TIMESTAMP
	  WHERE id=:id`, p)
	return err
}

// Delete removes a product and its images (FK cascade).
func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

// Images returns a product's auxiliary images in display order.
func (r *ProductRepo) Images(productID string) ([]domain.ProductImage, error) {
	var out []domain.ProductImage
	err := r.db.Select(&out, `
	  SELECT id, product_id, image, alt_text, is_primary, display_order, created_at
	  FROM product_images
	  WHERE product_id = ?
	  ORDER BY display_order, created_at`, productID)
	return out, err
}

func (r *ProductRepo) AddImage(img domain.ProductImage) error {
	_, err := r.db.Exec(`
	  INSERT INTO product_images(id, product_id, image, alt_text, is_primary, display_order)
	  VALUES(?,?,?,?,?,?)`,
		img.ID, img.ProductID, img.Image, img.AltText, img.IsPrimary, img.Order)
	return err
}

func (r *ProductRepo) DeleteImage(id string) error {
	_, err := r.db.Exec(`DELETE FROM product_images WHERE id = ?`, id)
	return err
}
