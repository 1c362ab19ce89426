package services

import (
	"strconv"
	"strings"

	"officemart/internal/domain"
	"officemart/internal/repos"
	"officemart/internal/validate"

	"github.com/google/uuid"
)

type QuoteItemInput struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type QuoteInput struct {
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Phone   string           `json:"phone"`
	Company string           `json:"company"`
	Message string           `json:"message"`
	Items   []QuoteItemInput `json:"items"`
}

type QuoteService struct {
	Quotes *repos.QuoteRepo
	Prods  *repos.ProductRepo
}

func NewQuoteService(quotes *repos.QuoteRepo, prods *repos.ProductRepo) *QuoteService {
	return &QuoteService{Quotes: quotes, Prods: prods}
}

// Submit validates the customer fields and items, freezes each product's
// current final price into the line items and persists header plus items in
// one transaction. Field errors are returned before the transaction opens.
func (s *QuoteService) Submit(in QuoteInput) (domain.QuoteRequest, []domain.QuoteItem, map[string]string, error) {
	errs := map[string]string{}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs["name"] = "name is required"
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		errs["email"] = "a valid email is required"
	}
	phone, ok := validate.Phone(in.Phone)
	if !ok {
		errs["phone"] = "a valid phone number is required"
	}
	if len(in.Items) == 0 {
		errs["items"] = "at least one item is required"
	}

	items := make([]domain.QuoteItem, 0, len(in.Items))
	for i, it := range in.Items {
		key := "items." + strconv.Itoa(i)
		if it.Quantity < 1 {
			errs[key] = "quantity must be at least 1"
			continue
		}
		p, err := s.Prods.ByID(it.Product)
		if err != nil || !p.IsActive {
			errs[key] = "unknown product"
			continue
		}
		items = append(items, domain.QuoteItem{
			ID:        uuid.NewString(),
			ProductID: p.ID,
			Quantity:  it.Quantity,
			Price:     p.FinalPrice(),
		})
	}
	if len(errs) > 0 {
		return domain.QuoteRequest{}, nil, errs, nil
	}

	q := domain.QuoteRequest{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   email,
		Phone:   phone,
		Company: strings.TrimSpace(in.Company),
		Message: strings.TrimSpace(in.Message),
		Status:  domain.QuotePending,
	}
	if err := s.Quotes.Create(q, items); err != nil {
		return domain.QuoteRequest{}, nil, nil, err
	}

	created, createdItems, err := s.Quotes.Get(q.ID)
	if err != nil {
		return domain.QuoteRequest{}, nil, nil, err
	}
	return created, createdItems, nil, nil
}

// UpdateStatus sets any enumerated status; there is no transition graph.
func (s *QuoteService) UpdateStatus(id, status, adminNotes string) (map[string]string, error) {
	if !domain.ValidQuoteStatus(status) {
		return map[string]string{"status": "must be one of: " + strings.Join(domain.QuoteStatuses, ", ")}, nil
	}
	if _, _, err := s.Quotes.Get(id); err != nil {
		return nil, err
	}
	return nil, s.Quotes.UpdateStatus(id, status, adminNotes)
}
