package importer

import (
	"io"

	"par-manager/core/catalog"
	"par-manager/core/server"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for bulk imports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the import routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/import")
	group.Post("/", h.HandleCommit)
	group.Post("/preview", h.HandlePreview)
	group.Post("/plan", h.HandlePlan)
	group.Post("/file", h.HandleFile)
}

// Request is the JSON body of a row import.
type Request struct {
	// Mode is "update" or "skip". Empty uses the configured default.
	Mode string   `json:"mode" example:"update"`
	Rows []RawRow `json:"rows"`
}

func (h *Handler) parse(c *fiber.Ctx) (*Request, catalog.DedupMode, error) {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return nil, "", catalog.Validation("body", "invalid JSON body")
	}
	mode, err := h.service.Mode(req.Mode)
	if err != nil {
		return nil, "", err
	}
	return &req, mode, nil
}

// resultStatus is 200 unless the commit stopped at a stage.
func resultStatus(r *Result) int {
	if r.Failed() {
		return catalog.HTTPStatus(r.Error)
	}
	return fiber.StatusOK
}

// HandlePreview computes an import without writing.
// @Summary Preview Import
// @Description Returns the summary a commit of the same rows would produce against the current catalog.
// @Tags import
// @Accept json
// @Produce json
// @Param request body Request true "Rows and dedup mode"
// @Success 200 {object} Result
// @Failure 400 {object} server.ErrorBody
// @Router /import/preview [post]
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	req, mode, err := h.parse(c)
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	result, err := h.service.Preview(c.Context(), req.Rows, mode)
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.JSON(result)
}

// HandlePlan returns the per-SKU actions of an import without writing.
// @Summary Plan Import
// @Tags import
// @Accept json
// @Produce json
// @Param request body Request true "Rows and dedup mode"
// @Success 200 {object} Plan
// @Failure 400 {object} server.ErrorBody
// @Router /import/plan [post]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	req, mode, err := h.parse(c)
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	plan, err := h.service.Plan(c.Context(), req.Rows, mode)
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.JSON(plan)
}

// HandleCommit imports rows.
// @Summary Import Rows
// @Description Creates missing locations, material types and vendors, upserts products under the dedup mode, adds location assignments and overwrites on-hand quantities. A failed stage is reported with the error status and the stages before it stay committed.
// @Tags import
// @Accept json
// @Produce json
// @Param request body Request true "Rows and dedup mode"
// @Success 200 {object} Result
// @Failure 400 {object} server.ErrorBody
// @Failure 409 {object} Result
// @Router /import [post]
func (h *Handler) HandleCommit(c *fiber.Ctx) error {
	req, mode, err := h.parse(c)
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	result, err := h.service.Commit(c.Context(), req.Rows, mode)
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.Status(resultStatus(result)).JSON(result)
}

// HandleFile imports an uploaded file.
// @Summary Import File
// @Description Imports a CSV, TSV, XLSX or JSON file. With dry_run=true only the preview summary is returned.
// @Tags import
// @Accept mpfd
// @Produce json
// @Param file formData file true "Import file"
// @Param mode query string false "Dedup mode (update, skip)"
// @Param dry_run query bool false "Preview only"
// @Success 200 {object} Result
// @Failure 400 {object} server.ErrorBody
// @Router /import/file [post]
func (h *Handler) HandleFile(c *fiber.Ctx) error {
	mode, err := h.service.Mode(c.Query("mode"))
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return server.BadRequest(c, "file", "multipart field 'file' is required")
	}
	f, err := header.Open()
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}

	result, err := h.service.ImportFile(c.Context(), header.Filename, data, mode, c.QueryBool("dry_run"))
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.Status(resultStatus(result)).JSON(result)
}
