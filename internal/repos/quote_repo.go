package repos

import (
	"officemart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type QuoteRepo struct{ db *sqlx.DB }

func NewQuoteRepo(db *sqlx.DB) *QuoteRepo { return &QuoteRepo{db: db} }

// Create persists the quote header and all line items in one transaction.
// Either everything lands or nothing does.
func (r *QuoteRepo) Create(q domain.QuoteRequest, items []domain.QuoteItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO quote_requests(id, name, email, phone, company, message, status)
	  VALUES(?,?,?,?,?,?,?)`,
		q.ID, q.Name, q.Email, q.Phone, q.Company, q.Message, q.Status); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO quote_items(id, quote_id, product_id, quantity, price)
		  VALUES(?,?,?,?,?)`,
			it.ID, q.ID, it.ProductID, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *QuoteRepo) Get(id string) (domain.QuoteRequest, []domain.QuoteItem, error) {
	var q domain.QuoteRequest
	if err := r.db.Get(&q, `
	  SELECT id, name, email, phone, company, message, status, admin_notes,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM quote_requests
	  WHERE id = ?`, id); err != nil {
		return domain.QuoteRequest{}, nil, err
	}

	items, err := r.Items(id)
	if err != nil {
		return domain.QuoteRequest{}, nil, err
	}
	return q, items, nil
}

func (r *QuoteRepo) Items(quoteID string) ([]domain.QuoteItem, error) {
	var items []domain.QuoteItem
	err := r.db.Select(&items, `
	  SELECT qi.id, qi.quote_id, qi.product_id, qi.quantity, qi.price,
	         p.name AS product_name, p.sku AS product_sku
	  FROM quote_items qi
	  JOIN products p ON p.id = qi.product_id
	  WHERE qi.quote_id = ?
	  ORDER BY p.name`, quoteID)
	return items, err
}

func (r *QuoteRepo) ListLatest(limit int) ([]domain.QuoteRequest, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.QuoteRequest
	err := r.db.Select(&out, `
	  SELECT id, name, email, phone, company, message, status, admin_notes,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM quote_requests
	  ORDER BY datetime(created_at) DESC, id
	  LIMIT ?`, limit)
	return out, err
}

func (r *QuoteRepo) UpdateStatus(id, status, adminNotes string) error {
	_, err := r.db.Exec(`
	  UPDATE quote_requests
	  SET status = ?, admin_notes = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?`, status, adminNotes, id)
	return err
}
