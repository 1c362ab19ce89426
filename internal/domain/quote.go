package domain

// Quote lifecycle labels. Any status may follow any other; the set itself is
// the only constraint.
const (
	QuotePending    = "pending"
	QuoteProcessing = "processing"
	QuoteSent       = "sent"
	QuoteCompleted  = "completed"
	QuoteCancelled  = "cancelled"
)

var QuoteStatuses = []string{QuotePending, QuoteProcessing, QuoteSent, QuoteCompleted, QuoteCancelled}

func ValidQuoteStatus(s string) bool {
	for _, v := range QuoteStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type QuoteRequest struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	Email      string `db:"email"`
	Phone      string `db:"phone"`
	Company    string `db:"company"`
	Message    string `db:"message"`
	Status     string `db:"status"`
	AdminNotes string `db:"admin_notes"`
	CreatedAt  string `db:"created_at"`
	UpdatedAt  string `db:"updated_at"`
}

type QuoteItem struct {
	ID        string  `db:"id"`
	QuoteID   string  `db:"quote_id"`
	ProductID string  `db:"product_id"`
	Quantity  int     `db:"quantity"`
	Price     float64 `db:"price"` // frozen at submission time

	// Joined columns.
	ProductName string `db:"product_name"`
	ProductSKU  string `db:"product_sku"`
}

func (i QuoteItem) Subtotal() float64 {
	return round2(i.Price * float64(i.Quantity))
}

// QuoteTotal recomputes the header total from its items on every read.
func QuoteTotal(items []QuoteItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Subtotal()
	}
	return round2(total)
}
