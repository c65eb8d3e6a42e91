package handlers_test

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strings"
	"testing"
)

type checkoutBody struct {
	OK      bool    `json:"ok"`
	Message string  `json:"message"`
	Total   float64 `json:"total"`
	Items   []struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Quantity  int     `json:"quantity"`
		LineTotal float64 `json:"lineTotal"`
	} `json:"items"`
}

func decodeCheckout(t *testing.T, resp *http.Response) checkoutBody {
	t.Helper()
	var b checkoutBody
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		t.Fatalf("decode checkout response: %v", err)
	}
	return b
}

func TestCheckoutAPIEmptyItems(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/checkout", `{"items":[]}`, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty items expected 400, got %d", resp.StatusCode)
	}
	b := decodeCheckout(t, resp)
	if b.OK || b.Message != "No items provided" {
		t.Fatalf("unexpected body: %+v", b)
	}
}

func TestCheckoutAPIMalformedBody(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/checkout", `{"items": "nope"`, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed body expected 400, got %d", resp.StatusCode)
	}
	b := decodeCheckout(t, resp)
	if b.OK || b.Message != "invalid request body" {
		t.Fatalf("unexpected body: %+v", b)
	}
}

func TestCheckoutAPIUnknownID(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/checkout", `{"items":[{"id":"1","quantity":1},{"id":"999","quantity":1}]}`, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown id expected 400, got %d", resp.StatusCode)
	}
	b := decodeCheckout(t, resp)
	if b.OK || b.Message != "Invalid product id: 999" {
		t.Fatalf("unexpected body: %+v", b)
	}
	if len(b.Items) != 0 {
		t.Fatalf("no partially priced lines may leak, got %+v", b.Items)
	}
}

func TestCheckoutAPISuccess(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/checkout", `{"items":[{"id":"1","quantity":2},{"id":"3","quantity":1}]}`, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, body)
	}
	b := decodeCheckout(t, resp)
	if !b.OK || b.Message != "Order received" {
		t.Fatalf("unexpected body: %+v", b)
	}
	if math.Abs(b.Total-309.97) > 1e-9 {
		t.Fatalf("want total 309.97, got %v", b.Total)
	}
	if len(b.Items) != 2 || b.Items[0].ID != "1" || b.Items[1].ID != "3" {
		t.Fatalf("want two lines in input order, got %+v", b.Items)
	}
	if b.Items[0].Quantity != 2 || math.Abs(b.Items[0].LineTotal-259.98) > 1e-9 {
		t.Fatalf("bad first line: %+v", b.Items[0])
	}
}

func TestCheckoutAPIZeroQuantityDefaultsToOne(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/checkout", `{"items":[{"id":"1","quantity":0}]}`, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	b := decodeCheckout(t, resp)
	if b.Items[0].Quantity != 1 || math.Abs(b.Total-129.99) > 1e-9 {
		t.Fatalf("zero quantity should price as one unit, got %+v", b)
	}
}

func TestCheckoutFormClearsCart(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/cart/items", `{"id":"2","quantity":1}`, ""))
	if err != nil {
		t.Fatal(err)
	}
	sid := extractCookie(resp, "sid")
	if sid == "" {
		t.Fatal("sid cookie not set")
	}

	resp, err = app.Test(jsonReq("POST", "/checkout", "", sid))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("checkout page post expected 200, got %d body=%s", resp.StatusCode, body)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Order received") || !strings.Contains(string(body), "Smart Watch") {
		t.Fatalf("confirmation page should list the order, got: %s", body)
	}

	resp, err = app.Test(jsonReq("GET", "/api/cart", "", sid))
	if err != nil {
		t.Fatal(err)
	}
	if cv := decodeCart(t, resp); len(cv.Items) != 0 {
		t.Fatalf("cart should be cleared after a placed order, got %+v", cv)
	}
}

func TestCheckoutFormEmptyCart(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/checkout", "", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("placing an order with an empty cart expected 400, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "No items provided") {
		t.Fatalf("page should surface the validation message, got: %s", body)
	}
}
