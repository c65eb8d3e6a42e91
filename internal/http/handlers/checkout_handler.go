package handlers

import (
	"errors"

	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
	Cart     *services.CartService
}

type checkoutRequest struct {
	Items []domain.CheckoutRequestLine `json:"items"`
}

// Submit is the checkout contract: POST /api/checkout.
// Malformed bodies, empty item lists, and unknown ids are distinct client
// errors; nothing is persisted either way.
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		applog.Security(c, "checkout.badbody", map[string]any{"err": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "message": "invalid request body"})
	}

	res, err := h.Checkout.Price(req.Items)
	if err != nil {
		return h.fail(c, err)
	}

	applog.Audit(c, "checkout.order", map[string]any{"total": res.Total, "lines": len(res.Items)})
	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "Order received",
		"total":   res.Total,
		"items":   res.Items,
	})
}

// Page renders the checkout summary for the current cart.
func (h *CheckoutHandler) Page(c *fiber.Ctx) error {
	cv := h.Cart.View(ensureSID(c))
	return render(c, "checkout", fiber.Map{"Cart": cv})
}

// PlaceForm prices the current cart and, on success, clears it and renders a
// confirmation. The priced result is echoed, not stored.
func (h *CheckoutHandler) PlaceForm(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv := h.Cart.View(sid)

	lines := make([]domain.CheckoutRequestLine, 0, len(cv.Items))
	for _, it := range cv.Items {
		lines = append(lines, domain.CheckoutRequestLine{ID: it.ID, Quantity: float64(it.Quantity)})
	}

	res, err := h.Checkout.Price(lines)
	if err != nil {
		if isClientError(err) {
			return c.Status(fiber.StatusBadRequest).Render("checkout", fiber.Map{"Cart": cv, "Err": checkoutMessage(err)})
		}
		applog.Error(c, "checkout.place", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Something went wrong. Please try again."})
	}

	if _, err := h.Cart.Clear(sid); err != nil {
		applog.Error(c, "checkout.clear", err, nil)
	}
	applog.Audit(c, "checkout.order", map[string]any{"total": res.Total, "lines": len(res.Items)})
	return render(c, "order", fiber.Map{"Result": res})
}

func (h *CheckoutHandler) fail(c *fiber.Ctx, err error) error {
	if isClientError(err) {
		applog.Security(c, "checkout.reject", map[string]any{"reason": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "message": checkoutMessage(err)})
	}
	applog.Error(c, "checkout.price", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "message": "checkout failed"})
}

func isClientError(err error) bool {
	var unk *services.UnknownProductError
	return errors.Is(err, services.ErrNoItems) || errors.As(err, &unk)
}

func checkoutMessage(err error) string {
	var unk *services.UnknownProductError
	switch {
	case errors.Is(err, services.ErrNoItems):
		return "No items provided"
	case errors.As(err, &unk):
		return "Invalid product id: " + unk.ID
	default:
		return "checkout failed"
	}
}
