package order

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// countingRepo wraps the in-memory repository to assert whether the store
// was touched at all.
type countingRepo struct {
	*InMemoryRepository
	creates int
}

func (r *countingRepo) Create(ord Order) (Order, error) {
	r.creates++
	return r.InMemoryRepository.Create(ord)
}

func makeOrderApp(repo Repository) *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(repo))
	h.RegisterPublicRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				claims := jwt.MapClaims{"user_id": id}
				if role := c.Get("X-User-Role"); role != "" {
					claims["role"] = role
				}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}

const validOrder = `{"productName":"Herbal Oil","quantity":2,"price":100,"fullname":"A Shopper","phone":"9876543210","address":"12 Main St"}`

var asUser = map[string]string{"X-User-ID": "7", "X-User-Role": "user"}
var asAdmin = map[string]string{"X-User-ID": "1", "X-User-Role": "admin"}

func TestCreateOrder(t *testing.T) {
	repo := &countingRepo{InMemoryRepository: NewInMemoryRepository(nil)}
	app := makeOrderApp(repo)

	code, body := postJSON(t, app, "POST", "/api/v1/orders", validOrder, asUser)
	if code != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", code, body)
	}

	var created Order
	json.Unmarshal(body, &created)
	if created.ID == "" {
		t.Error("expected generated order id")
	}
	if created.Status != StatusPending {
		t.Errorf("expected status pending, got %q", created.Status)
	}
	if len(created.TrackingNumber) != 10 {
		t.Errorf("expected 10 char tracking number, got %q", created.TrackingNumber)
	}
	if created.Total != 200 {
		t.Errorf("expected derived total 200, got %v", created.Total)
	}
	if created.UserID != 7 {
		t.Errorf("expected owner 7, got %d", created.UserID)
	}
	if created.PaymentMethod != "cod" {
		t.Errorf("expected default payment method cod, got %q", created.PaymentMethod)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	repo := &countingRepo{InMemoryRepository: NewInMemoryRepository(nil)}
	app := makeOrderApp(repo)

	missingPhone := `{"productName":"Herbal Oil","quantity":1,"price":100,"fullname":"A Shopper","phone":"","address":"12 Main St"}`
	code, body := postJSON(t, app, "POST", "/api/v1/orders", missingPhone, asUser)
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if !strings.Contains(string(body), "phone is required") {
		t.Fatalf("expected 'phone is required', got %s", body)
	}
	if repo.creates != 0 {
		t.Fatalf("expected no store call on validation failure, got %d", repo.creates)
	}

	badQty := `{"productName":"Herbal Oil","quantity":0,"price":100,"fullname":"A","phone":"1","address":"x"}`
	code, body = postJSON(t, app, "POST", "/api/v1/orders", badQty, asUser)
	if code != fiber.StatusBadRequest || !strings.Contains(string(body), "quantity must be positive") {
		t.Fatalf("expected quantity rejection, got %d %s", code, body)
	}

	// unauthenticated submissions never reach validation of the store
	code, _ = postJSON(t, app, "POST", "/api/v1/orders", validOrder, nil)
	if code != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", code)
	}
	if repo.creates != 0 {
		t.Fatalf("expected no store writes, got %d", repo.creates)
	}
}

func TestListOrdersScoping(t *testing.T) {
	repo := NewInMemoryRepository([]Order{
		{ID: "a", UserID: 7, Status: StatusPending},
		{ID: "b", UserID: 8, Status: StatusShipped},
	})
	app := makeOrderApp(repo)

	// non-admin sees only their own
	code, body := postJSON(t, app, "GET", "/api/v1/orders", "", asUser)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var orders []Order
	json.Unmarshal(body, &orders)
	if len(orders) != 1 || orders[0].ID != "a" {
		t.Fatalf("expected only own order, got %+v", orders)
	}

	// non-admin asking for someone else's orders is refused
	code, _ = postJSON(t, app, "GET", "/api/v1/orders?user_id=8", "", asUser)
	if code != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}

	// admin sees everything
	code, body = postJSON(t, app, "GET", "/api/v1/orders", "", asAdmin)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	json.Unmarshal(body, &orders)
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders for admin, got %d", len(orders))
	}

	// admin can narrow by status
	code, body = postJSON(t, app, "GET", "/api/v1/orders?status=shipped", "", asAdmin)
	json.Unmarshal(body, &orders)
	if code != fiber.StatusOK || len(orders) != 1 || orders[0].ID != "b" {
		t.Fatalf("expected shipped order only, got %d %s", code, body)
	}
}

func TestUpdateOrderRoleRules(t *testing.T) {
	repo := NewInMemoryRepository([]Order{
		{ID: "a", UserID: 7, Status: StatusPending, Address: "old"},
	})
	app := makeOrderApp(repo)

	// non-admin changing status gets 403 and the order stays put
	code, _ := postJSON(t, app, "PATCH", "/api/v1/orders", `{"id":"a","status":"shipped"}`, asUser)
	if code != fiber.StatusForbidden {
		t.Fatalf("expected 403 for status change by non-admin, got %d", code)
	}
	ord, _ := repo.GetByID("a")
	if ord.Status != StatusPending {
		t.Fatalf("expected order unchanged, got %q", ord.Status)
	}

	// owner may fix shipping fields while pending
	code, body := postJSON(t, app, "PATCH", "/api/v1/orders", `{"id":"a","address":"new address"}`, asUser)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 for owner edit, got %d: %s", code, body)
	}
	ord, _ = repo.GetByID("a")
	if ord.Address != "new address" {
		t.Fatalf("expected address updated, got %q", ord.Address)
	}

	// someone else's order is off limits
	other := map[string]string{"X-User-ID": "9", "X-User-Role": "user"}
	code, _ = postJSON(t, app, "PATCH", "/api/v1/orders", `{"id":"a","address":"hijack"}`, other)
	if code != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", code)
	}

	// admin sets status and tracking freely
	code, _ = postJSON(t, app, "PATCH", "/api/v1/orders", `{"id":"a","status":"shipped","trackingNumber":"TRK1234567"}`, asAdmin)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 for admin update, got %d", code)
	}
	ord, _ = repo.GetByID("a")
	if ord.Status != StatusShipped || ord.TrackingNumber != "TRK1234567" {
		t.Fatalf("expected admin changes applied, got %+v", ord)
	}

	// once shipped the owner can no longer edit
	code, _ = postJSON(t, app, "PATCH", "/api/v1/orders", `{"id":"a","address":"too late"}`, asUser)
	if code != fiber.StatusConflict {
		t.Fatalf("expected 409 after fulfillment started, got %d", code)
	}

	// unknown status value is rejected
	code, _ = postJSON(t, app, "PATCH", "/api/v1/orders", `{"id":"a","status":"teleported"}`, asAdmin)
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", code)
	}

	// id is mandatory
	code, _ = postJSON(t, app, "PATCH", "/api/v1/orders", `{"status":"shipped"}`, asAdmin)
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing id, got %d", code)
	}
}

func TestDeleteOrderAdminOnly(t *testing.T) {
	repo := NewInMemoryRepository([]Order{{ID: "a", UserID: 7}})
	app := makeOrderApp(repo)

	code, _ := postJSON(t, app, "DELETE", "/api/v1/orders?id=a", "", asUser)
	if code != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin delete, got %d", code)
	}

	code, _ = postJSON(t, app, "DELETE", "/api/v1/orders?id=a", "", asAdmin)
	if code != fiber.StatusNoContent {
		t.Fatalf("expected 204 for admin delete, got %d", code)
	}

	code, _ = postJSON(t, app, "DELETE", "/api/v1/orders?id=a", "", asAdmin)
	if code != fiber.StatusNotFound {
		t.Fatalf("expected 404 deleting twice, got %d", code)
	}
}

func TestTrackPublicLookup(t *testing.T) {
	repo := NewInMemoryRepository([]Order{
		{ID: "ord-1", UserID: 7, Phone: "9876543210", Status: StatusShipped, TrackingNumber: "TRKABC1234", ProductName: "Herbal Oil", Address: "secret lane"},
	})
	app := makeOrderApp(repo)

	// by tracking number, no auth required
	code, body := postJSON(t, app, "POST", "/api/v1/track", `{"tracking_number":"TRKABC1234"}`, nil)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", code, body)
	}
	if strings.Contains(string(body), "secret lane") {
		t.Fatal("tracking projection leaked the address")
	}
	if !strings.Contains(string(body), `"status":"shipped"`) {
		t.Fatalf("expected shipped status in projection, got %s", body)
	}

	// by id + phone
	code, _ = postJSON(t, app, "POST", "/api/v1/track", `{"order_id":"ord-1","phone":"9876543210"}`, nil)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 for id+phone, got %d", code)
	}

	// wrong phone looks identical to a missing order
	code, _ = postJSON(t, app, "POST", "/api/v1/track", `{"order_id":"ord-1","phone":"0000000000"}`, nil)
	if code != fiber.StatusNotFound {
		t.Fatalf("expected 404 for wrong phone, got %d", code)
	}

	// neither tracking number nor id+phone
	code, _ = postJSON(t, app, "POST", "/api/v1/track", `{"order_id":"ord-1"}`, nil)
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete lookup, got %d", code)
	}
}

func TestExportOrdersCSV(t *testing.T) {
	repo := NewInMemoryRepository([]Order{
		{ID: "a", UserID: 7, ProductName: "Herbal Oil", Quantity: 2, Price: 100, Total: 200, Status: StatusPending},
	})
	app := makeOrderApp(repo)

	code, _ := postJSON(t, app, "GET", "/api/v1/admin/orders/export", "", asUser)
	if code != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin export, got %d", code)
	}

	req := httptest.NewRequest("GET", "/api/v1/admin/orders/export", nil)
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-User-Role", "admin")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected text/csv, got %q", ct)
	}
	b, _ := io.ReadAll(res.Body)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,user_id,product_name") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "Herbal Oil") {
		t.Fatalf("row missing product, got %q", lines[1])
	}
}
