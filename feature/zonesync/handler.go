package zonesync

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/logger"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/reconcile"
)

// Handler exposes the sync service over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/healthz", h.HandleHealth)
	api := app.Group("/api")
	api.Post("/sync", h.HandleSync)
	api.Get("/status", h.HandleStatus)
	api.Get("/check", h.HandleCheck)
}

// HandleHealth reports process liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleSync triggers one reconciliation run. Pass ?dry_run=true to compute
// the plan without writing. Returns 409 while another run is in flight and
// 502 when the platform cannot be loaded.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	opts := reconcile.Options{DryRun: c.Query("dry_run") == "true"}

	result, err := h.service.Sync(c.Context(), opts)
	if err != nil {
		if errors.Is(err, ErrSyncInProgress) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		var transportErr *reconcile.TransportError
		if errors.As(err, &transportErr) {
			l.Error("sync aborted at load stage", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleStatus returns the most recent completed run.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	last := h.service.LastResult()
	if last == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no completed runs"})
	}
	return c.JSON(last)
}

// HandleCheck runs the connectivity preflight against both views.
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	statuses := h.service.Check(c.Context())
	ok := true
	for _, status := range statuses {
		if !status.OK() {
			ok = false
		}
	}
	code := fiber.StatusOK
	if !ok {
		code = fiber.StatusBadGateway
	}
	return c.Status(code).JSON(fiber.Map{"ok": ok, "views": statuses})
}
