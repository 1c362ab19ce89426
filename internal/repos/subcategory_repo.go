package repos

import (
	"officemart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SubcategoryRepo struct{ db *sqlx.DB }

func NewSubcategoryRepo(db *sqlx.DB) *SubcategoryRepo { return &SubcategoryRepo{db: db} }

const subcategoryCols = `
  s.id, s.category_id, s.name, s.slug, s.icon, s.description, s.is_active,
  s.created_at, COALESCE(s.updated_at,'') AS updated_at,
  c.name AS category_name,
  (SELECT COUNT(*) FROM products p WHERE p.subcategory_id = s.id AND p.is_active = 1) AS product_count`

// List returns active subcategories, optionally restricted to one category,
// ordered the way the storefront shows them (parent name, then name).
func (r *SubcategoryRepo) List(categoryID string) ([]domain.Subcategory, error) {
	where := `s.is_active = 1`
	args := []any{}
	if categoryID != "" {
		where += ` AND s.category_id = ?`
		args = append(args, categoryID)
	}
	var out []domain.Subcategory
	err := r.db.Select(&out, `
	  SELECT `+subcategoryCols+`
	  FROM subcategories s
	  JOIN categories c ON c.id = s.category_id
	  WHERE `+where+`
	  ORDER BY c.name, s.name`, args...)
	return out, err
}

func (r *SubcategoryRepo) BySlug(slug string) (domain.Subcategory, error) {
	var s domain.Subcategory
	err := r.db.Get(&s, `
	  SELECT `+subcategoryCols+`
	  FROM subcategories s
	  JOIN categories c ON c.id = s.category_id
	  WHERE s.slug = ? AND s.is_active = 1`, slug)
	return s, err
}

func (r *SubcategoryRepo) ByID(id string) (domain.Subcategory, error) {
	var s domain.Subcategory
	err := r.db.Get(&s, `
	  SELECT `+subcategoryCols+`
	  FROM subcategories s
	  JOIN categories c ON c.id = s.category_id
	  WHERE s.id = ?`, id)
	return s, err
}

func (r *SubcategoryRepo) Create(s domain.Subcategory) error {
	_, err := r.db.Exec(`
	  INSERT INTO subcategories(id,category_id,name,slug,icon,description,is_active)
	  VALUES(?,?,?,?,?,?,?)`,
		s.ID, s.CategoryID, s.Name, s.Slug, s.Icon, s.Description, s.IsActive)
	return err
}

func (r *SubcategoryRepo) Update(s domain.Subcategory) error {
	_, err := r.db.Exec(`
	  UPDATE subcategories
	  SET category_id=?, name=?, slug=?, icon=?, description=?, is_active=?,
	      updated_at=CURRENT_TIMESTAMP
	  WHERE id=?`,
		s.CategoryID, s.Name, s.Slug, s.Icon, s.Description, s.IsActive, s.ID)
	return err
}

// Delete is blocked by the products FK (ON DELETE RESTRICT) while any product
// still references the subcategory; the constraint error surfaces as 409.
func (r *SubcategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM subcategories WHERE id = ?`, id)
	return err
}
