package services

import (
	"math"
	"sort"

	"shopfront/internal/domain"
	"shopfront/internal/repos"
	"shopfront/internal/validate"
)

// CartService owns the load-mutate-persist cycle for a session's cart.
// Each mutation computes a full next state and writes the whole record.
type CartService struct {
	Carts *repos.CartRepo
}

func NewCartService(carts *repos.CartRepo) *CartService {
	return &CartService{Carts: carts}
}

type CartView struct {
	Items     []domain.CartLine `json:"items"`
	ItemCount int               `json:"itemCount"`
	Total     float64           `json:"total"`
}

// Add merges a product into the cart. Quantity is clamped to at least one
// whole unit; an existing line for the same id gains the quantity, it is
// never overwritten. The product fields are snapshotted as-is.
func (s *CartService) Add(sessionID string, p domain.Product, qty float64) (CartView, error) {
	n := validate.Quantity(qty)
	st := s.Carts.Load(sessionID)
	line, ok := st.Items[p.ID]
	if !ok {
		line = domain.CartLine{ID: p.ID, Name: p.Name, Price: p.Price, ImageURL: p.ImageURL}
	}
	line.Quantity += n
	st.Items[p.ID] = line
	if err := s.Carts.Save(sessionID, st); err != nil {
		return CartView{}, err
	}
	return viewOf(st), nil
}

// SetQuantity replaces a line's quantity with floor(qty). A floored quantity
// of zero or less removes the line; an absent id is a no-op and skips the write.
func (s *CartService) SetQuantity(sessionID, id string, qty float64) (CartView, error) {
	st := s.Carts.Load(sessionID)
	line, ok := st.Items[id]
	if !ok {
		return viewOf(st), nil
	}
	n := int(math.Floor(qty))
	if n <= 0 {
		delete(st.Items, id)
	} else {
		line.Quantity = n
		st.Items[id] = line
	}
	if err := s.Carts.Save(sessionID, st); err != nil {
		return CartView{}, err
	}
	return viewOf(st), nil
}

// Remove deletes the line for id if present. The write happens either way so
// removal is idempotent from the caller's perspective.
func (s *CartService) Remove(sessionID, id string) (CartView, error) {
	st := s.Carts.Load(sessionID)
	delete(st.Items, id)
	if err := s.Carts.Save(sessionID, st); err != nil {
		return CartView{}, err
	}
	return viewOf(st), nil
}

func (s *CartService) Clear(sessionID string) (CartView, error) {
	st := domain.EmptyCart()
	if err := s.Carts.Save(sessionID, st); err != nil {
		return CartView{}, err
	}
	return viewOf(st), nil
}

// View returns the derived read model. Reads never fail: corrupt or missing
// state loads as an empty cart.
func (s *CartService) View(sessionID string) CartView {
	return viewOf(s.Carts.Load(sessionID))
}

func viewOf(st domain.CartState) CartView {
	items := make([]domain.CartLine, 0, len(st.Items))
	for _, line := range st.Items {
		items = append(items, line)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	count := 0
	total := 0.0
	for _, line := range items {
		count += line.Quantity
		total += line.Price * float64(line.Quantity)
	}
	return CartView{Items: items, ItemCount: count, Total: total}
}
