package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fml2scene/internal/common/logging"
	"fml2scene/internal/common/middleware"
	"fml2scene/internal/converter/mapper"
	"fml2scene/internal/converter/models"
	"fml2scene/internal/converter/repository"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var convertValidate = validator.New()

type convertRequest struct {
	Project *models.Project `json:"project" validate:"required"`
	Options *optionsRequest `json:"options,omitempty"`
}

// optionsRequest overrides the service defaults for one run.
type optionsRequest struct {
	SnapValue     *float64 `json:"snap_value,omitempty" validate:"omitempty,gte=0"`
	LabelComments *bool    `json:"label_comments,omitempty"`
}

type convertResponse struct {
	RunID string `json:"run_id"`
	*mapper.Result
	Files []string `json:"files,omitempty"`
}

// ============================================================
// Convert Handler
// ============================================================

// Convert конвертирует FML проект в SceneScript.
func (h *Handler) Convert(c fiber.Ctx) error {
	runID := uuid.NewString()
	c.Set(middleware.RunIDHeader, runID)
	log := logging.Logger.WithField("run_id", runID)

	if len(c.Body()) == 0 {
		h.metrics.ObserveFailure("invalid")
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	var req convertRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		log.Warnf("Invalid JSON: %v", err)
		h.metrics.ObserveFailure("invalid")
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json: " + err.Error()})
	}

	if err := convertValidate.Struct(req); err != nil {
		h.metrics.ObserveFailure("invalid")
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error":  "validation failed",
				"fields": models.FieldErrors(err),
			})
		}
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	opts := h.opts
	if o := req.Options; o != nil {
		if o.SnapValue != nil {
			opts.SnapValue = *o.SnapValue
		}
		if o.LabelComments != nil {
			opts.EmitLabelComments = *o.LabelComments
		}
	}

	start := time.Now()
	res, err := mapper.New(opts).Convert(req.Project)
	if err != nil {
		h.metrics.ObserveFailure("rejected")
		log.Warnf("Conversion rejected: %v", err)
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	h.metrics.ObserveRun(res, time.Since(start))

	log.WithFields(logrus.Fields{
		"project_id":  req.Project.ID,
		"designs":     len(res.Designs),
		"diagnostics": res.Summary.Total,
	}).Info("Conversion finished")

	resp := convertResponse{RunID: runID, Result: res}

	if h.storage != nil {
		files, err := h.storage.WriteResult(runID, res)
		if err != nil {
			log.Errorf("Write files: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to write output"})
		}
		resp.Files = files
	}

	if h.repo != nil {
		if err := h.archive(runID, req.Project, res); err != nil {
			log.Errorf("Archive run: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to archive run"})
		}
	}

	return c.JSON(resp)
}

func (h *Handler) archive(runID string, p *models.Project, res *mapper.Result) error {
	doc, err := json.Marshal(res)
	if err != nil {
		return err
	}

	commands := 0
	for _, d := range res.Designs {
		commands += len(d.Lines)
	}

	return h.repo.Save(context.Background(), &repository.Conversion{
		ID:              runID,
		ProjectID:       p.ID,
		ProjectName:     p.Name,
		CommandCount:    commands,
		DiagnosticCount: res.Summary.Total,
		HasHighSeverity: res.Summary.HasHighSeverity,
		CommandText:     res.CommandText,
		Result:          doc,
	})
}
