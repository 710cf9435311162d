package handlers

import (
	"fml2scene/internal/converter/mapper"
	"fml2scene/internal/converter/metrics"
	"fml2scene/internal/converter/repository"
	"fml2scene/internal/converter/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

// ============================================================
// Converter Handler
// ============================================================

// Handler serves the converter over HTTP. repo and storage are optional:
// without them runs are converted but neither archived nor written.
type Handler struct {
	opts    mapper.Options
	repo    *repository.Repository
	storage *storage.FileStorage
	metrics *metrics.Metrics
}

func NewHandler(opts mapper.Options, repo *repository.Repository, storage *storage.FileStorage, m *metrics.Metrics) *Handler {
	if m == nil {
		m = metrics.New()
	}
	return &Handler{
		opts:    opts,
		repo:    repo,
		storage: storage,
		metrics: m,
	}
}

// Register вешает все маршруты конвертера на app.
func (h *Handler) Register(app *fiber.App) {
	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", h.ReadinessProbe)
	app.Get("/metrics", adaptor.HTTPHandler(h.metrics.Handler()))

	// ============================================================
	// Converter Routes
	// ============================================================

	app.Post("/convert", h.Convert)
	app.Post("/parse", h.Parse)
	app.Get("/conversions", h.ListConversions)
	app.Get("/conversions/:id", h.GetConversion)
}
