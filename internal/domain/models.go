package domain

type Product struct {
	ID       string  `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Price    float64 `db:"price" json:"price"`
	ImageURL string  `db:"image_url" json:"imageUrl"`
}

// CartLine is a denormalized snapshot of a product taken at add-time,
// plus the requested quantity. It is not re-synced when the catalog changes.
type CartLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
	Quantity int     `json:"quantity"`
}

// CartState is the persisted cart layout: one JSON record per session,
// lines keyed by product id.
type CartState struct {
	Items map[string]CartLine `json:"items"`
}

func EmptyCart() CartState {
	return CartState{Items: map[string]CartLine{}}
}

type CheckoutRequestLine struct {
	ID       string  `json:"id"`
	Quantity float64 `json:"quantity"`
}

type CheckoutResultLine struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}

type CheckoutResult struct {
	Total float64              `json:"total"`
	Items []CheckoutResultLine `json:"items"`
}
