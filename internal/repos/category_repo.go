package repos

import (
	"officemart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = `
  id, name, slug, icon, description, is_active, show_in_navbar, navbar_order,
  created_at, COALESCE(updated_at,'') AS updated_at`

// List returns active categories ordered for navigation. With navbarOnly it
// is restricted to entries flagged for the navbar with a non-zero order.
func (r *CategoryRepo) List(navbarOnly bool) ([]domain.Category, error) {
	where := `is_active = 1`
	if navbarOnly {
		where += ` AND show_in_navbar = 1 AND navbar_order > 0`
	}
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT `+categoryCols+`
	  FROM categories
	  WHERE `+where+`
	  ORDER BY navbar_order, name`)
	return out, err
}

func (r *CategoryRepo) BySlug(slug string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT `+categoryCols+`
	  FROM categories
	  WHERE slug = ? AND is_active = 1`, slug)
	return c, err
}

func (r *CategoryRepo) ByID(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT `+categoryCols+`
	  FROM categories
	  WHERE id = ?`, id)
	return c, err
}

func (r *CategoryRepo) Create(c domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id,name,slug,icon,description,is_active,show_in_navbar,navbar_order)
	  VALUES(?,?,?,?,?,?,?,?)`,
		c.ID, c.Name, c.Slug, c.Icon, c.Description, c.IsActive, c.ShowInNavbar, c.NavbarOrder)
	return err
}

func (r *CategoryRepo) Update(c domain.Category) error {
	_, err := r.db.Exec(`
	  UPDATE categories
	  SET name=?, slug=?, icon=?, description=?, is_active=?, show_in_navbar=?, navbar_order=?,
	      updated_at=CURRENT_TIMESTAMP
	  WHERE id=?`,
		c.Name, c.Slug, c.Icon, c.Description, c.IsActive, c.ShowInNavbar, c.NavbarOrder, c.ID)
	return err
}

// Delete removes a category; its subcategories go with it (FK cascade).
// Fails with a constraint error while any subcategory still has products.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}

// ProductCount counts active products across all subcategories of a category.
func (r *CategoryRepo) ProductCount(categoryID string) (int, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*)
	  FROM products p
	  JOIN subcategories s ON s.id = p.subcategory_id
	  WHERE s.category_id = ? AND p.is_active = 1`, categoryID)
	return n, err
}
