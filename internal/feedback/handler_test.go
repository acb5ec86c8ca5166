package feedback

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/sasyamantra/storefront-backend/internal/user"
)

func makeApp() *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(NewInMemoryRepository()))
	h.RegisterPublicRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		if role := c.Get("X-User-Role"); role != "" {
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": 1, "role": role}})
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func doReq(t *testing.T, app *fiber.App, method, path, body, role string) (int, string) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("X-User-Role", role)
	}
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func TestSubmitFeedback(t *testing.T) {
	app := makeApp()

	code, body := doReq(t, app, "POST", "/api/v1/feedback", `{"name":"A","email":"a@b.c","rating":5,"message":"lovely oil"}`, "")
	if code != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", code, body)
	}
	if !strings.Contains(body, `"id":1`) {
		t.Fatalf("expected assigned id, got %s", body)
	}
}

func TestSubmitFeedbackValidation(t *testing.T) {
	app := makeApp()

	cases := []struct {
		body string
		want string
	}{
		{`{"email":"a@b.c","rating":5,"message":"m"}`, "name is required"},
		{`{"name":"A","rating":5}`, "message is required"},
		{`{"name":"A","rating":0,"message":"m"}`, "rating must be between 1 and 5"},
		{`{"name":"A","rating":6,"message":"m"}`, "rating must be between 1 and 5"},
	}
	for _, tc := range cases {
		code, body := doReq(t, app, "POST", "/api/v1/feedback", tc.body, "")
		if code != fiber.StatusBadRequest || !strings.Contains(body, tc.want) {
			t.Errorf("body %s: expected 400 %q, got %d %s", tc.body, tc.want, code, body)
		}
	}
}

func TestServiceListRequiresAdmin(t *testing.T) {
	s := NewService(NewInMemoryRepository())
	s.Submit("A", "", 4, "good")

	if _, err := s.List(user.RoleUser); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	entries, err := s.List(user.RoleAdmin)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected 1 entry for admin, got %v %v", entries, err)
	}
}

func TestListFeedbackAdminOnly(t *testing.T) {
	app := makeApp()
	doReq(t, app, "POST", "/api/v1/feedback", `{"name":"A","rating":4,"message":"good"}`, "")

	code, _ := doReq(t, app, "GET", "/api/v1/admin/feedback", "", "")
	if code != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}

	code, _ = doReq(t, app, "GET", "/api/v1/admin/feedback", "", "user")
	if code != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", code)
	}

	code, body := doReq(t, app, "GET", "/api/v1/admin/feedback", "", "admin")
	if code != fiber.StatusOK || !strings.Contains(body, "good") {
		t.Fatalf("expected entries for admin, got %d %s", code, body)
	}
}
