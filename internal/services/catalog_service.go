package services

import (
	"errors"

	"officemart/internal/domain"
	"officemart/internal/repos"
)

// ErrUnknownProductType marks an unrecognized product-type token on the
// listing routes; handlers answer 404 with the valid token list.
var ErrUnknownProductType = errors.New("unknown product type")

const shortcutLimit = 6

type ProductPage struct {
	Count    int
	Page     int
	PageSize int
	Results  []domain.Product
}

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Subs  *repos.SubcategoryRepo
	Prods *repos.ProductRepo

	PageSize    int
	MaxPageSize int
}

func NewCatalogService(cats *repos.CategoryRepo, subs *repos.SubcategoryRepo, prods *repos.ProductRepo, pageSize, maxPageSize int) *CatalogService {
	if pageSize <= 0 {
		pageSize = 15
	}
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	return &CatalogService{Cats: cats, Subs: subs, Prods: prods, PageSize: pageSize, MaxPageSize: maxPageSize}
}

func (s *CatalogService) ListCategories(navbarOnly bool) ([]domain.Category, error) {
	return s.Cats.List(navbarOnly)
}

func (s *CatalogService) GetCategory(slug string) (domain.Category, error) {
	return s.Cats.BySlug(slug)
}

func (s *CatalogService) CategoryProductCount(categoryID string) (int, error) {
	return s.Cats.ProductCount(categoryID)
}

func (s *CatalogService) ListSubcategories(categoryID string) ([]domain.Subcategory, error) {
	return s.Subs.List(categoryID)
}

func (s *CatalogService) GetSubcategory(slug string) (domain.Subcategory, error) {
	return s.Subs.BySlug(slug)
}

// ListProducts clamps pagination and runs the filtered query plus its count.
func (s *CatalogService) ListProducts(f repos.ProductFilter, page, pageSize int) (ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.PageSize
	}
	if pageSize > s.MaxPageSize {
		pageSize = s.MaxPageSize
	}
	f.Limit = pageSize
	f.Offset = (page - 1) * pageSize

	count, err := s.Prods.Count(f)
	if err != nil {
		return ProductPage{}, err
	}
	rows, err := s.Prods.List(f)
	if err != nil {
		return ProductPage{}, err
	}
	return ProductPage{Count: count, Page: page, PageSize: pageSize, Results: rows}, nil
}

func (s *CatalogService) GetProduct(slug string) (domain.Product, []domain.ProductImage, error) {
	p, err := s.Prods.BySlug(slug)
	if err != nil {
		return domain.Product{}, nil, err
	}
	imgs, err := s.Prods.Images(p.ID)
	if err != nil {
		return domain.Product{}, nil, err
	}
	return p, imgs, nil
}

// Featured returns the bounded homepage collection; no pagination.
func (s *CatalogService) Featured() ([]domain.Product, error) {
	yes := true
	return s.Prods.List(repos.ProductFilter{Featured: &yes, Limit: shortcutLimit})
}

// ByType returns the bounded shortcut collection for one product-type tag.
func (s *CatalogService) ByType(productType string) ([]domain.Product, error) {
	if !validProductType(productType) {
		return nil, ErrUnknownProductType
	}
	return s.Prods.List(repos.ProductFilter{ProductType: productType, Limit: shortcutLimit})
}

// ResolveListing maps the human-readable listing segments (product-type
// token and/or category slug) onto a product filter. An empty segment means
// "not filtered". Unknown tokens and slugs are errors, never empty results.
func (s *CatalogService) ResolveListing(productType, categorySlug string) (repos.ProductFilter, error) {
	var f repos.ProductFilter
	if productType != "" {
		if !validProductType(productType) {
			return repos.ProductFilter{}, ErrUnknownProductType
		}
		f.ProductType = productType
	}
	if categorySlug != "" {
		cat, err := s.Cats.BySlug(categorySlug)
		if err != nil {
			return repos.ProductFilter{}, err
		}
		f.CategoryID = cat.ID
	}
	return f, nil
}

func validProductType(t string) bool {
	for _, v := range domain.ProductTypes {
		if t == v {
			return true
		}
	}
	return false
}
