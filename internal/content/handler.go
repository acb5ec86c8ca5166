package content

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/pages", h.listPages)
	app.Get("/api/v1/pages/:slug", h.getPage)
}

func (h *Handler) listPages(c *fiber.Ctx) error {
	pages, err := h.repo.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(pages)
}

func (h *Handler) getPage(c *fiber.Ctx) error {
	p, ok := h.repo.GetBySlug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "page not found"})
	}
	return c.JSON(p)
}
