package handlers

import (
	"officemart/internal/config"
	"officemart/internal/media"
	"officemart/internal/repos"
	"officemart/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CategoryHandler    *CategoryHandler
	SubcategoryHandler *SubcategoryHandler
	ProductHandler     *ProductHandler
	ListingHandler     *ListingHandler
	QuoteHandler       *QuoteHandler
	AdminHandler       *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	subRepo := repos.NewSubcategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	quoteRepo := repos.NewQuoteRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, subRepo, prodRepo, cfg.PageSize, cfg.MaxPageSize)
	productSvc := services.NewProductService(prodRepo, subRepo)
	quoteSvc := services.NewQuoteService(quoteRepo, prodRepo)

	m := media.NewResolver(cfg.MediaBaseURL)

	return &Deps{
		CategoryHandler:    &CategoryHandler{Catalog: catalogSvc},
		SubcategoryHandler: &SubcategoryHandler{Catalog: catalogSvc},
		ProductHandler:     &ProductHandler{Catalog: catalogSvc, Media: m},
		ListingHandler:     &ListingHandler{Catalog: catalogSvc, Media: m},
		QuoteHandler:       &QuoteHandler{Quotes: quoteSvc},
		AdminHandler: &AdminHandler{
			Cats:     catRepo,
			Subs:     subRepo,
			Products: productSvc,
			Quotes:   quoteSvc,
			QuoteRp:  quoteRepo,
			Media:    m,
		},
	}
}
