package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"fml2scene/internal/common/logging"
	"fml2scene/internal/converter/repository"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Conversion Archive
// ============================================================

// GetConversion возвращает сохранённый запуск по run id.
func (h *Handler) GetConversion(c fiber.Ctx) error {
	if h.repo == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "archive disabled"})
	}

	id := c.Params("id")
	conv, err := h.repo.Get(context.Background(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err != nil {
		logging.Logger.Errorf("Get conversion %s: %v", id, err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load conversion"})
	}
	return c.JSON(conv)
}

// ListConversions возвращает последние запуски, опционально по project_id.
func (h *Handler) ListConversions(c fiber.Ctx) error {
	if h.repo == nil {
		return c.JSON(fiber.Map{"conversions": []repository.Conversion{}})
	}

	var projectID int64
	if s := c.Query("project_id"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid project_id"})
		}
		projectID = v
	}
	limit := 0
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid limit"})
		}
		limit = v
	}

	list, err := h.repo.List(context.Background(), projectID, limit)
	if err != nil {
		logging.Logger.Errorf("List conversions: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list conversions"})
	}
	return c.JSON(fiber.Map{"conversions": list})
}
