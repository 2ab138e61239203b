package gallery

import (
	"errors"

	"fnum/core/filelock"
	"fnum/core/logger"
	"fnum/core/metadata"
	"fnum/core/reconcile"
	"fnum/core/sidecar"
	"fnum/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// defaultHistoryLimit caps history responses when no limit is given.
const defaultHistoryLimit = 100

// Handler handles HTTP requests for galleries.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the gallery routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)

	group := app.Group("/galleries")
	group.Get("/:name", h.HandleInspect)
	group.Get("/:name/max", h.HandleMax)
	group.Get("/:name/check", h.HandleCheck)
	group.Post("/:name/renumber", h.HandleRenumber)
	group.Get("/:name/history", h.HandleHistory)
}

// HandleHealth reports that the service is up.
// @Summary Health Check
// @Description Returns ok when the service is running.
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string "Status"
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleInspect returns the ordering record of a gallery.
// @Summary Inspect Gallery
// @Description Returns the ordering record and max of a gallery. Untracked galleries return an empty record.
// @Tags galleries
// @Produce json
// @Param name path string true "Gallery name"
// @Success 200 {object} gallery.Overview "Gallery Overview"
// @Failure 400 {object} map[string]string "Invalid Name"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /galleries/{name} [get]
func (h *Handler) HandleInspect(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")

	overview, err := h.service.Inspect(c.Context(), name)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(overview)
}

// HandleMax returns the max marker of a gallery as plain text.
// @Summary Gallery Max
// @Description Returns the highest assigned number of a gallery.
// @Tags galleries
// @Produce plain
// @Param name path string true "Gallery name"
// @Success 200 {string} string "Max"
// @Failure 404 {object} map[string]string "Not Found"
// @Security ApiKeyAuth
// @Router /galleries/{name}/max [get]
func (h *Handler) HandleMax(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	marker, err := h.service.Max(c.Context(), c.Params("name"))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.SendString(marker.String())
}

// HandleCheck reports pending renames and stale artifacts of a gallery.
// @Summary Check Gallery
// @Description Plans a renumbering without touching the gallery and compares it with the persisted max and record.
// @Tags galleries
// @Produce json
// @Param name path string true "Gallery name"
// @Success 200 {object} gallery.Report "Check Report"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /galleries/{name}/check [get]
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Check(c.Context(), c.Params("name"))
	if err != nil {
		return h.fail(c, l, err)
	}
	if !report.Dense {
		l.Info("Gallery needs renumbering",
			zap.String("gallery", report.Name),
			zap.Int("pending", len(report.Pending)),
			zap.String("conflict", report.Conflict))
	}
	return c.JSON(report)
}

// HandleRenumber renumbers a gallery.
// @Summary Renumber Gallery
// @Description Renumbers the files of a gallery into 1..N. With dry_run the renames are only planned.
// @Tags galleries
// @Produce json
// @Param name path string true "Gallery name"
// @Param dry_run query boolean false "Plan without renaming"
// @Param write_max query boolean false "Persist the max marker"
// @Param write_metadata query boolean false "Persist the ordering record"
// @Param sidecar query boolean false "Rename sidecar files"
// @Param publish query boolean false "Mirror artifacts to the bucket"
// @Success 200 {object} reconcile.Result "Renumber Result"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]interface{} "Conflict"
// @Failure 423 {object} map[string]string "Locked"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /galleries/{name}/renumber [post]
func (h *Handler) HandleRenumber(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")

	opts := RunOptions{
		DryRun:        utils.ToBool(c.Query("dry_run")),
		WriteMax:      utils.ToBool(c.Query("write_max")),
		WriteMetadata: utils.ToBool(c.Query("write_metadata")),
		Sidecar:       utils.ToBool(c.Query("sidecar")),
		Publish:       utils.ToBool(c.Query("publish")),
	}

	l.Info("Renumbering gallery", zap.String("gallery", name), zap.Bool("dry_run", opts.DryRun))
	result, err := h.service.Renumber(c.Context(), name, opts)
	if err != nil {
		return h.fail(c, l, err)
	}

	l.Info("Gallery renumbered",
		zap.String("gallery", name),
		zap.Int("max", result.Summary.Max),
		zap.Int("renamed", result.Summary.Renamed))
	return c.JSON(result)
}

// HandleHistory returns journaled renames of a gallery.
// @Summary Gallery History
// @Description Returns the latest journaled renames of a gallery, newest first.
// @Tags galleries
// @Produce json
// @Param name path string true "Gallery name"
// @Param limit query int false "Maximum entries (default 100)"
// @Success 200 {array} journal.Entry "Entries"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 501 {object} map[string]string "Journal Disabled"
// @Security ApiKeyAuth
// @Router /galleries/{name}/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	limit := utils.ToInt(c.Query("limit"))
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := h.service.History(c.Context(), c.Params("name"), limit)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(entries)
}

// fail maps service errors to responses.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	var conflict *reconcile.ConflictError
	switch {
	case errors.As(err, &conflict):
		l.Warn("Renumbering conflict", zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":  err.Error(),
			"number": conflict.Number,
			"names":  conflict.Names,
		})
	case errors.Is(err, sidecar.ErrOwned):
		l.Warn("Sidecar conflict", zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, filelock.ErrLocked):
		return c.Status(fiber.StatusLocked).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalidName):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrGalleryNotFound), errors.Is(err, metadata.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrJournalDisabled), errors.Is(err, ErrPublishDisabled):
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Gallery request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
