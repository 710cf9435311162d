package handlers

import (
	"bytes"
	"net/http"

	"fml2scene/internal/converter/scenescript"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Parse Handler
// ============================================================

type parsedLine struct {
	Command string            `json:"command"`
	Params  map[string]string `json:"params"`
}

// Parse разбирает SceneScript из тела запроса и возвращает команды
// с количеством по каждому типу.
func (h *Handler) Parse(c fiber.Ctx) error {
	lines, err := scenescript.ParseScript(bytes.NewReader(c.Body()))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	out := make([]parsedLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, parsedLine{Command: l.Command, Params: l.Params})
	}

	return c.JSON(fiber.Map{
		"commands": out,
		"counts":   scenescript.Count(lines),
	})
}
