package inventory

import (
	"strconv"

	"par-manager/core/catalog"
	"par-manager/core/logger"
	"par-manager/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for direct catalog edits.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	products := app.Group("/products")
	products.Get("/", h.HandleListProducts)
	products.Post("/", h.HandleCreateProduct)
	products.Get("/:id", h.HandleGetProduct)
	products.Put("/:id", h.HandleUpdateProduct)
	products.Delete("/:id", h.HandleDeleteProduct)
	products.Put("/:id/locations", h.HandleSetLocations)
	products.Put("/:id/on-hand/:locationId", h.HandleSetOnHand)

	entities := app.Group("/entities")
	entities.Get("/:kind", h.HandleListEntities)
	entities.Post("/:kind", h.HandleCreateEntity)
	entities.Put("/:kind/:id", h.HandleRenameEntity)
	entities.Delete("/:kind/:id", h.HandleDeleteEntity)
}

func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// HandleListProducts lists active products with stock.
// @Summary List Products
// @Description Lists active products with vendor, material type and on-hand rows at assigned locations.
// @Tags inventory
// @Produce json
// @Success 200 {array} catalog.ProductStock
// @Failure 500 {object} server.ErrorBody
// @Router /products [get]
func (h *Handler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.Context())
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.JSON(products)
}

// HandleGetProduct returns one product.
// @Summary Get Product
// @Tags inventory
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} Product
// @Failure 404 {object} server.ErrorBody
// @Router /products/{id} [get]
func (h *Handler) HandleGetProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return server.BadRequest(c, "id", "invalid product id")
	}
	p, err := h.service.GetProduct(c.Context(), id)
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.JSON(p)
}

// HandleCreateProduct creates a product.
// @Summary Create Product
// @Tags inventory
// @Accept json
// @Produce json
// @Param product body ProductInput true "Product"
// @Success 201 {object} Product
// @Failure 400 {object} server.ErrorBody
// @Failure 409 {object} server.ErrorBody
// @Router /products [post]
func (h *Handler) HandleCreateProduct(c *fiber.Ctx) error {
	var in ProductInput
	if err := c.BodyParser(&in); err != nil {
		return server.BadRequest(c, "body", "invalid JSON body")
	}
	p, err := h.service.CreateProduct(c.Context(), in)
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// HandleUpdateProduct edits a product.
// @Summary Update Product
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductInput true "Product"
// @Success 200 {object} Product
// @Failure 400 {object} server.ErrorBody
// @Failure 404 {object} server.ErrorBody
// @Failure 409 {object} server.ErrorBody
// @Router /products/{id} [put]
func (h *Handler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return server.BadRequest(c, "id", "invalid product id")
	}
	var in ProductInput
	if err := c.BodyParser(&in); err != nil {
		return server.BadRequest(c, "body", "invalid JSON body")
	}
	p, err := h.service.UpdateProduct(c.Context(), id, in)
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.JSON(p)
}

// HandleDeleteProduct deletes a product and its stock rows.
// @Summary Delete Product
// @Tags inventory
// @Param id path int true "Product ID"
// @Success 204
// @Failure 404 {object} server.ErrorBody
// @Router /products/{id} [delete]
func (h *Handler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return server.BadRequest(c, "id", "invalid product id")
	}
	if err := h.service.DeleteProduct(c.Context(), id); err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type locationsRequest struct {
	LocationIDs []int64 `json:"location_ids"`
}

// HandleSetLocations replaces a product's locations.
// @Summary Set Product Locations
// @Description Full replace of the product's location assignments.
// @Tags inventory
// @Accept json
// @Param id path int true "Product ID"
// @Param body body locationsRequest true "Location IDs"
// @Success 204
// @Failure 404 {object} server.ErrorBody
// @Router /products/{id}/locations [put]
func (h *Handler) HandleSetLocations(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return server.BadRequest(c, "id", "invalid product id")
	}
	var req locationsRequest
	if err := c.BodyParser(&req); err != nil {
		return server.BadRequest(c, "body", "invalid JSON body")
	}
	if err := h.service.SetProductLocations(c.Context(), id, req.LocationIDs); err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type onHandRequest struct {
	Qty float64 `json:"qty"`
}

// HandleSetOnHand writes the on-hand quantity at one location.
// @Summary Set On Hand
// @Description The product must be assigned to the location.
// @Tags inventory
// @Accept json
// @Param id path int true "Product ID"
// @Param locationId path int true "Location ID"
// @Param body body onHandRequest true "Quantity"
// @Success 204
// @Failure 400 {object} server.ErrorBody
// @Router /products/{id}/on-hand/{locationId} [put]
func (h *Handler) HandleSetOnHand(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return server.BadRequest(c, "id", "invalid product id")
	}
	locationID, ok := paramID(c, "locationId")
	if !ok {
		return server.BadRequest(c, "location_id", "invalid location id")
	}
	var req onHandRequest
	if err := c.BodyParser(&req); err != nil {
		return server.BadRequest(c, "body", "invalid JSON body")
	}
	if err := h.service.SetOnHand(c.Context(), id, locationID, req.Qty); err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListEntities lists locations, material types or vendors.
// @Summary List Entities
// @Tags inventory
// @Produce json
// @Param kind path string true "locations, material-types or vendors"
// @Success 200 {array} catalog.Entity
// @Router /entities/{kind} [get]
func (h *Handler) HandleListEntities(c *fiber.Ctx) error {
	kind, err := catalog.ParseEntityKind(c.Params("kind"))
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	entities, err := h.service.ListEntities(c.Context(), kind)
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.JSON(entities)
}

type entityRequest struct {
	Name string `json:"name"`
}

// HandleCreateEntity creates a location, material type or vendor.
// @Summary Create Entity
// @Tags inventory
// @Accept json
// @Produce json
// @Param kind path string true "locations, material-types or vendors"
// @Param body body entityRequest true "Name"
// @Success 201 {object} catalog.Entity
// @Failure 409 {object} server.ErrorBody
// @Router /entities/{kind} [post]
func (h *Handler) HandleCreateEntity(c *fiber.Ctx) error {
	kind, err := catalog.ParseEntityKind(c.Params("kind"))
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	var req entityRequest
	if err := c.BodyParser(&req); err != nil {
		return server.BadRequest(c, "body", "invalid JSON body")
	}
	e, err := h.service.CreateEntity(c.Context(), kind, req.Name)
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

// HandleRenameEntity renames a location, material type or vendor.
// @Summary Rename Entity
// @Tags inventory
// @Accept json
// @Param kind path string true "locations, material-types or vendors"
// @Param id path int true "Entity ID"
// @Param body body entityRequest true "Name"
// @Success 204
// @Failure 409 {object} server.ErrorBody
// @Router /entities/{kind}/{id} [put]
func (h *Handler) HandleRenameEntity(c *fiber.Ctx) error {
	kind, err := catalog.ParseEntityKind(c.Params("kind"))
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return server.BadRequest(c, "id", "invalid id")
	}
	var req entityRequest
	if err := c.BodyParser(&req); err != nil {
		return server.BadRequest(c, "body", "invalid JSON body")
	}
	if err := h.service.RenameEntity(c.Context(), kind, id, req.Name); err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteEntity deletes a location, material type or vendor.
// @Summary Delete Entity
// @Description Locations still assigned or stocked need force=true.
// @Tags inventory
// @Param kind path string true "locations, material-types or vendors"
// @Param id path int true "Entity ID"
// @Param force query boolean false "Remove assignments and on-hand rows too"
// @Success 204
// @Failure 404 {object} server.ErrorBody
// @Failure 409 {object} server.ErrorBody
// @Router /entities/{kind}/{id} [delete]
func (h *Handler) HandleDeleteEntity(c *fiber.Ctx) error {
	kind, err := catalog.ParseEntityKind(c.Params("kind"))
	if err != nil {
		return server.RespondError(c, h.service.logger, err)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return server.BadRequest(c, "id", "invalid id")
	}
	force := c.QueryBool("force", false)
	if err := h.service.DeleteEntity(c.Context(), kind, id, force); err != nil {
		logger.WithRayID(h.service.logger, c).Warn("Entity delete refused", zap.Error(err))
		return server.RespondError(c, h.service.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
