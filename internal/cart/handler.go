package cart

import (
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the session cart over HTTP. The cart belongs to the
// browsing session, not to an account, so every route here is public; the
// session token travels in the X-Cart-Session header.
type Handler struct {
	manager *Manager
}

const sessionHeader = "X-Cart-Session"

func NewHandler(m *Manager) *Handler {
	return &Handler{manager: m}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Patch("/api/v1/cart/items/:id", h.updateQuantity)
	app.Delete("/api/v1/cart/items/:id", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
	app.Post("/api/v1/cart/discount", h.applyDiscount)
}

func (h *Handler) cart(c *fiber.Ctx) (*Cart, error) {
	return h.manager.Get(c.Get(sessionHeader))
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	crt, err := h.cart(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "valid X-Cart-Session header required"})
	}
	return c.JSON(crt.State())
}

type addItemRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity,omitempty"`
	Image       string  `json:"image,omitempty"`
	Variant     string  `json:"variant,omitempty"`
	MaxQuantity int     `json:"maxQuantity,omitempty"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	crt, err := h.cart(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "valid X-Cart-Session header required"})
	}

	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ID == "" || payload.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "item id and name are required"})
	}
	if payload.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "price must be non-negative"})
	}

	qty := payload.Quantity
	if qty < 1 {
		qty = 1
	}

	crt.AddItem(Item{
		ID:          payload.ID,
		Name:        payload.Name,
		Price:       payload.Price,
		Image:       payload.Image,
		Variant:     payload.Variant,
		MaxQuantity: payload.MaxQuantity,
	}, qty)

	return c.JSON(crt.State())
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	crt, err := h.cart(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "valid X-Cart-Session header required"})
	}

	payload := new(updateQuantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	crt.UpdateQuantity(c.Params("id"), payload.Quantity)
	return c.JSON(crt.State())
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	crt, err := h.cart(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "valid X-Cart-Session header required"})
	}

	crt.RemoveItem(c.Params("id"))
	return c.JSON(crt.State())
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	crt, err := h.cart(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "valid X-Cart-Session header required"})
	}

	crt.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}

type applyDiscountRequest struct {
	Code string `json:"code"`
}

func (h *Handler) applyDiscount(c *fiber.Ctx) error {
	crt, err := h.cart(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "valid X-Cart-Session header required"})
	}

	payload := new(applyDiscountRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "code is required"})
	}

	if !crt.ApplyDiscount(c.Context(), payload.Code) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(crt.State())
	}
	return c.JSON(crt.State())
}
