package services

import (
	"database/sql"
	"errors"

	"shopfront/internal/domain"
	"shopfront/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) ListProducts() ([]domain.Product, error) {
	return s.Prods.All()
}

// GetProduct resolves a catalog id. An absent id is a normal outcome
// (ok=false), not an error.
func (s *CatalogService) GetProduct(id string) (domain.Product, bool, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, err
	}
	return p, true, nil
}
