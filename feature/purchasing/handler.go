package purchasing

import (
	"fmt"

	"par-manager/core/server"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for purchase lists.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the purchasing routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/purchase-list")
	group.Get("/", h.HandleReport)
	group.Get("/text", h.HandleText)
	group.Get("/export", h.HandleExport)
	group.Get("/exports", h.HandleListExports)
	group.Get("/exports/download", h.HandleDownloadExport)
	group.Delete("/exports", h.HandlePruneExports)
}

// refresh drops the cached catalog when the caller asks for fresh data.
func (h *Handler) refresh(c *fiber.Ctx) {
	if c.QueryBool("fresh") {
		h.service.Invalidate()
	}
}

// HandleReport returns the purchase list.
// @Summary Purchase List
// @Description Products whose on-hand total is below PAR, grouped by vendor then material type. Lines are sorted by units to order, then name.
// @Tags purchasing
// @Produce json
// @Param fresh query bool false "Bypass the catalog cache"
// @Success 200 {object} reconcile.Report
// @Failure 500 {object} server.ErrorBody
// @Router /purchase-list [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	h.refresh(c)
	report, err := h.service.Report(c.Context())
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.JSON(report)
}

// HandleText returns the purchase list as plain text.
// @Summary Purchase List Text
// @Tags purchasing
// @Produce plain
// @Param fresh query bool false "Bypass the catalog cache"
// @Success 200 {string} string
// @Router /purchase-list/text [get]
func (h *Handler) HandleText(c *fiber.Ctx) error {
	h.refresh(c)
	text, err := h.service.Text(c.Context())
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(text)
}

// HandleExport downloads the purchase list as XLSX.
// @Summary Export Purchase List
// @Description Renders the purchase list as a workbook. With archive=true a copy is stored under the exports folder and its key returned in X-Archive-Key.
// @Tags purchasing
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param archive query bool false "Archive a copy to object storage"
// @Success 200 {file} file
// @Failure 500 {object} server.ErrorBody
// @Router /purchase-list/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	h.refresh(c)
	export, err := h.service.Export(c.Context(), c.QueryBool("archive"))
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	if export.Key != "" {
		c.Set("X-Archive-Key", export.Key)
	}
	c.Set(fiber.HeaderContentType, XLSXContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Name))
	return c.Send(export.Data)
}

// HandleListExports lists archived exports.
// @Summary List Exports
// @Tags purchasing
// @Produce json
// @Success 200 {array} storage.Object
// @Router /purchase-list/exports [get]
func (h *Handler) HandleListExports(c *fiber.Ctx) error {
	objects, err := h.service.ListExports(c.Context())
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.JSON(objects)
}

// HandleDownloadExport streams an archived export.
// @Summary Download Export
// @Tags purchasing
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param key query string true "Object key"
// @Success 200 {file} file
// @Failure 400 {object} server.ErrorBody
// @Failure 404 {object} server.ErrorBody
// @Router /purchase-list/exports/download [get]
func (h *Handler) HandleDownloadExport(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return server.BadRequest(c, "key", "key is required")
	}
	r, err := h.service.OpenExport(c.Context(), key)
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	c.Set(fiber.HeaderContentType, XLSXContentType)
	return c.SendStream(r)
}

// HandlePruneExports removes all but the newest exports.
// @Summary Prune Exports
// @Tags purchasing
// @Produce json
// @Param keep query int true "Number of newest exports to keep"
// @Success 200 {object} map[string]int
// @Failure 400 {object} server.ErrorBody
// @Router /purchase-list/exports [delete]
func (h *Handler) HandlePruneExports(c *fiber.Ctx) error {
	keep := c.QueryInt("keep", 0)
	if keep <= 0 {
		return server.BadRequest(c, "keep", "keep must be a positive number")
	}
	removed, err := h.service.PruneExports(c.Context(), keep)
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.JSON(fiber.Map{"removed": removed})
}
