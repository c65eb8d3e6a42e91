package services

import (
	"database/sql"
	"errors"
	"fmt"

	"shopfront/internal/domain"
	"shopfront/internal/repos"
	"shopfront/internal/validate"
)

// ErrNoItems rejects an empty checkout request before any work is done.
var ErrNoItems = errors.New("no items provided")

// UnknownProductError marks a checkout line whose id is absent from the
// catalog. A single unknown id fails the whole request.
type UnknownProductError struct {
	ID string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("invalid product id: %s", e.ID)
}

// CheckoutService validates and prices a proposed order. It is stateless and
// persists nothing; the result echoes the priced lines plus the aggregate total.
type CheckoutService struct {
	Prods *repos.ProductRepo
}

func NewCheckoutService(prods *repos.ProductRepo) *CheckoutService {
	return &CheckoutService{Prods: prods}
}

// Price resolves every requested line against the catalog, normalizes
// quantities and computes line and aggregate totals in input order.
// Validation is all-or-nothing: no partial pricing is ever returned.
// A zero quantity means the client omitted it and defaults to one unit.
func (s *CheckoutService) Price(lines []domain.CheckoutRequestLine) (domain.CheckoutResult, error) {
	if len(lines) == 0 {
		return domain.CheckoutResult{}, ErrNoItems
	}

	detailed := make([]domain.CheckoutResultLine, 0, len(lines))
	total := 0.0
	for _, ln := range lines {
		p, err := s.Prods.Get(ln.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CheckoutResult{}, &UnknownProductError{ID: ln.ID}
		}
		if err != nil {
			return domain.CheckoutResult{}, err
		}
		qty := validate.Quantity(ln.Quantity)
		lineTotal := p.Price * float64(qty)
		total += lineTotal
		detailed = append(detailed, domain.CheckoutResultLine{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  qty,
			LineTotal: lineTotal,
		})
	}

	return domain.CheckoutResult{Total: total, Items: detailed}, nil
}
