package repos_test

import (
	"database/sql"
	"errors"
	"testing"

	"shopfront/internal/repos"
)

func TestProductRepoSeededCatalog(t *testing.T) {
	r := repos.NewProductRepo(memdb(t))

	all, err := r.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 8 {
		t.Fatalf("want the 8-product reference catalog, got %d", len(all))
	}
	for i, p := range all {
		if want := string(rune('1' + i)); p.ID != want {
			t.Fatalf("catalog order must be stable by id: pos %d has %q", i, p.ID)
		}
	}
	if all[0].Name != "Wireless Headphones" || all[0].Price != 129.99 {
		t.Fatalf("unexpected first product: %+v", all[0])
	}
}

func TestProductRepoGet(t *testing.T) {
	r := repos.NewProductRepo(memdb(t))

	p, err := r.Get("3")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Laptop Stand" || p.Price != 49.99 {
		t.Fatalf("unexpected product: %+v", p)
	}

	_, err = r.Get("999")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("absent id should be ErrNoRows, got %v", err)
	}
}
