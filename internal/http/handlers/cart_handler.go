package handlers

import (
	"strconv"
	"strings"

	applog "shopfront/internal/log"
	"shopfront/internal/services"
	"shopfront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart    *services.CartService
	Catalog *services.CatalogService
}

type addItemRequest struct {
	ID       string  `json:"id"`
	Quantity float64 `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity float64 `json:"quantity"`
}

// Get serves the derived cart view for the current session.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.Cart.View(ensureSID(c)))
}

// Add resolves the product id against the catalog and merges a snapshot line
// into the session's cart. The cart engine itself does not enforce
// referential integrity; the transport edge does, since it needs the product
// fields to build the snapshot.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)

	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		applog.Security(c, "cart.add.badbody", map[string]any{"err": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "message": "invalid request body"})
	}
	cv, status, msg := h.add(c, sid, req.ID, req.Quantity)
	if msg != "" {
		return c.Status(status).JSON(fiber.Map{"ok": false, "message": msg})
	}
	return c.JSON(cv)
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "message": "missing product id"})
	}

	var req setQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		applog.Security(c, "cart.setqty.badbody", map[string]any{"err": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "message": "invalid request body"})
	}

	cv, err := h.Cart.SetQuantity(sid, id, req.Quantity)
	if err != nil {
		applog.Error(c, "cart.setqty.save", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "message": "could not update cart"})
	}
	return c.JSON(cv)
}

// Remove deletes a line; removing an absent id is a no-op.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "message": "missing product id"})
	}

	cv, err := h.Cart.Remove(sid, id)
	if err != nil {
		applog.Error(c, "cart.remove.save", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "message": "could not update cart"})
	}
	return c.JSON(cv)
}

// Clear resets the session's cart to empty.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv, err := h.Cart.Clear(sid)
	if err != nil {
		applog.Error(c, "cart.clear.save", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "message": "could not update cart"})
	}
	return c.JSON(cv)
}

// View renders the cart page.
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv := h.Cart.View(ensureSID(c))
	return render(c, "cart", fiber.Map{"Cart": cv})
}

// ---------- form endpoints backing the server-rendered pages ----------

func (h *CartHandler) AddForm(c *fiber.Ctx) error {
	sid := ensureSID(c)
	qty, _ := strconv.ParseFloat(strings.TrimSpace(c.FormValue("quantity", "1")), 64)
	if _, status, msg := h.add(c, sid, c.FormValue("id"), qty); msg != "" {
		return c.Status(status).SendString(msg)
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) UpdateForm(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing product id")
	}
	qty, _ := strconv.ParseFloat(strings.TrimSpace(c.FormValue("quantity")), 64)
	if _, err := h.Cart.SetQuantity(sid, id, qty); err != nil {
		applog.Error(c, "cart.update.save", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("could not update cart")
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) RemoveForm(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing product id")
	}
	if _, err := h.Cart.Remove(sid, id); err != nil {
		applog.Error(c, "cart.remove.save", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("could not update cart")
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) ClearForm(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if _, err := h.Cart.Clear(sid); err != nil {
		applog.Error(c, "cart.clear.save", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("could not update cart")
	}
	return c.Redirect("/cart")
}

// add is the shared resolve-and-merge step. A non-empty msg signals a client
// or server failure with its status code.
func (h *CartHandler) add(c *fiber.Ctx, sid, rawID string, qty float64) (services.CartView, int, string) {
	id, ok := validate.ID(rawID)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return services.CartView{}, fiber.StatusBadRequest, "missing product id"
	}
	p, found, err := h.Catalog.GetProduct(id)
	if err != nil {
		applog.Error(c, "cart.add.lookup", err, nil)
		return services.CartView{}, fiber.StatusInternalServerError, "could not load product"
	}
	if !found {
		return services.CartView{}, fiber.StatusNotFound, "unknown product: " + id
	}
	cv, err := h.Cart.Add(sid, p, qty)
	if err != nil {
		applog.Error(c, "cart.add.save", err, nil)
		return services.CartView{}, fiber.StatusInternalServerError, "could not update cart"
	}
	return cv, fiber.StatusOK, ""
}
