package cart

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

const testSession = "test-session-01"

func makeCartApp(t *testing.T) *fiber.App {
	t.Helper()
	m := NewManager(t.TempDir(), NewStaticDiscountRepository(DefaultDiscounts()))
	h := NewHandler(m)
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Cart-Session", testSession)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	rec.Code = res.StatusCode
	b, _ := io.ReadAll(res.Body)
	rec.Body.Write(b)
	return rec
}

func TestCartRoutes_Flow(t *testing.T) {
	app := makeCartApp(t)

	// session header is mandatory
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req, -1)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without session header, got %d", res.StatusCode)
	}

	// add an item with a max of 5, twice, 3 at a time
	body := `{"id":"oil-100","name":"Herbal Oil","price":100,"quantity":3,"maxQuantity":5}`
	rec := doJSON(t, app, "POST", "/api/v1/cart/items", body)
	if rec.Code != fiber.StatusOK {
		t.Fatalf("expected 200 adding item, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, app, "POST", "/api/v1/cart/items", body)
	if !strings.Contains(rec.Body.String(), `"totalItems":5`) {
		t.Fatalf("expected clamped totalItems 5, got %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"totalPrice":500`) {
		t.Fatalf("expected totalPrice 500, got %s", rec.Body.String())
	}

	// discount applies and shows in finalPrice
	rec = doJSON(t, app, "POST", "/api/v1/cart/discount", `{"code":"SAVE10"}`)
	if rec.Code != fiber.StatusOK {
		t.Fatalf("expected 200 applying discount, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"finalPrice":450`) {
		t.Fatalf("expected finalPrice 450, got %s", rec.Body.String())
	}

	// unknown code answers 422 and keeps the old discount
	rec = doJSON(t, app, "POST", "/api/v1/cart/discount", `{"code":"BOGUS"}`)
	if rec.Code != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown code, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"SAVE10"`) {
		t.Fatalf("expected previous discount kept, got %s", rec.Body.String())
	}

	// quantity patch to zero removes the line
	rec = doJSON(t, app, "PATCH", "/api/v1/cart/items/oil-100", `{"quantity":0}`)
	if strings.Contains(rec.Body.String(), `"id":"oil-100"`) {
		t.Fatalf("expected item removed, got %s", rec.Body.String())
	}

	// clear empties everything
	rec = doJSON(t, app, "DELETE", "/api/v1/cart", "")
	if rec.Code != fiber.StatusNoContent {
		t.Fatalf("expected 204 clearing cart, got %d", rec.Code)
	}
	rec = doJSON(t, app, "GET", "/api/v1/cart", "")
	if !strings.Contains(rec.Body.String(), `"totalItems":0`) {
		t.Fatalf("expected empty cart after clear, got %s", rec.Body.String())
	}
}

func TestCartRoutes_Validation(t *testing.T) {
	app := makeCartApp(t)

	rec := doJSON(t, app, "POST", "/api/v1/cart/items", `{"name":"No ID","price":10}`)
	if rec.Code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing id, got %d", rec.Code)
	}

	rec = doJSON(t, app, "POST", "/api/v1/cart/items", `{"id":"x","name":"Neg","price":-1}`)
	if rec.Code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d", rec.Code)
	}

	rec = doJSON(t, app, "POST", "/api/v1/cart/discount", `{}`)
	if rec.Code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty code, got %d", rec.Code)
	}
}

func TestManagerSessionValidation(t *testing.T) {
	m := NewManager(t.TempDir(), NewStaticDiscountRepository(DefaultDiscounts()))

	if _, err := m.Get("short"); err != ErrBadSession {
		t.Fatalf("expected ErrBadSession for short token, got %v", err)
	}
	if _, err := m.Get("../../etc/passwd"); err != ErrBadSession {
		t.Fatalf("expected ErrBadSession for path characters, got %v", err)
	}

	a, err := m.Get("session-token-a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.Get("session-token-b")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("expected distinct carts per session")
	}

	again, _ := m.Get("session-token-a")
	if again != a {
		t.Fatal("expected same cart instance for same session")
	}
}
