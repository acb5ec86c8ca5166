package order

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sasyamantra/storefront-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// RegisterPublicRoutes exposes tracking: anyone holding a tracking number
// (or an order id plus the order's phone) may look up status without an
// account.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/track", h.track)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.createOrder)
	app.Get("/api/v1/orders", h.getOrders)
	app.Patch("/api/v1/orders", h.updateOrder)
	app.Delete("/api/v1/orders", h.deleteOrder)
	app.Get("/api/v1/admin/orders/export", h.exportOrders)
}

type createOrderRequest struct {
	ProductName      string  `json:"productName"`
	Quantity         int     `json:"quantity"`
	Price            float64 `json:"price"`
	FullName         string  `json:"fullname"`
	Phone            string  `json:"phone"`
	Address          string  `json:"address"`
	AlternateAddress string  `json:"alternateAddress,omitempty"`
	City             string  `json:"city,omitempty"`
	State            string  `json:"state,omitempty"`
	Zip              string  `json:"zip,omitempty"`
	PaymentMethod    string  `json:"paymentMethod,omitempty"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	created, err := h.service.Create(Order{
		ProductName:      payload.ProductName,
		Quantity:         payload.Quantity,
		Price:            payload.Price,
		FullName:         payload.FullName,
		Phone:            payload.Phone,
		Address:          payload.Address,
		AlternateAddress: payload.AlternateAddress,
		City:             payload.City,
		State:            payload.State,
		Zip:              payload.Zip,
		PaymentMethod:    payload.PaymentMethod,
	}, userID)
	if err != nil {
		// validation failures carry the first offending field
		if isValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	role, err := user.GetRoleFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	f := Filter{TrackingNumber: c.Query("tracking_number")}
	f.UserID = c.QueryInt("user_id")
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			f.Statuses = append(f.Statuses, Status(strings.TrimSpace(s)))
		}
	}

	orders, err := h.service.List(role, userID, f)
	if err != nil {
		if err == ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin role required"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(orders)
}

func (h *Handler) updateOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	role, err := user.GetRoleFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(Update)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "id is required"})
	}

	updated, err := h.service.Apply(role, userID, *payload)
	if err != nil {
		switch err {
		case ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "not allowed"})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case ErrNotEditable:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "order can no longer be edited"})
		default:
			if strings.HasPrefix(err.Error(), "unknown status") {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(updated)
}

func (h *Handler) deleteOrder(c *fiber.Ctx) error {
	role, err := user.GetRoleFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "id is required"})
	}

	if err := h.service.Delete(role, id); err != nil {
		switch err {
		case ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin role required"})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type trackRequest struct {
	OrderID        string `json:"order_id"`
	Phone          string `json:"phone"`
	TrackingNumber string `json:"tracking_number"`
}

// trackResponse is the read-only projection handed to anonymous callers.
// It deliberately omits address and payment details.
type trackResponse struct {
	ID             string  `json:"id"`
	ProductName    string  `json:"productName"`
	Quantity       int     `json:"quantity"`
	Total          float64 `json:"total"`
	FullName       string  `json:"fullname"`
	Status         Status  `json:"status"`
	TrackingNumber string  `json:"trackingNumber,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func (h *Handler) track(c *fiber.Ctx) error {
	payload := new(trackRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.TrackingNumber == "" && (payload.OrderID == "" || payload.Phone == "") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "tracking number, or order id and phone, are required"})
	}

	ord, err := h.service.Track(payload.OrderID, payload.Phone, payload.TrackingNumber)
	if err != nil {
		if err == ErrNotFound || err == ErrTrackingMismatch {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{"order": trackResponse{
		ID:             ord.ID,
		ProductName:    ord.ProductName,
		Quantity:       ord.Quantity,
		Total:          ord.Total,
		FullName:       ord.FullName,
		Status:         ord.Status,
		TrackingNumber: ord.TrackingNumber,
		CreatedAt:      ord.CreatedAt,
		UpdatedAt:      ord.UpdatedAt,
	}})
}

func (h *Handler) exportOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	role, err := user.GetRoleFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if role != user.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin role required"})
	}

	orders, err := h.service.List(role, userID, Filter{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	if err := WriteCSV(c.Response().BodyWriter(), orders); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return nil
}

// validation messages from ValidateForCreate all end in "is required" or
// "must be positive"
func isValidationError(err error) bool {
	msg := err.Error()
	return strings.HasSuffix(msg, "is required") || strings.HasSuffix(msg, "must be positive")
}
