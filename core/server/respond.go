package server

import (
	"par-manager/core/catalog"
	"par-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error catalog.Error `json:"error"`
}

// RespondError writes err as {"error": {kind, field, message}}. Structured
// catalog errors keep their kind and status; anything else is logged and
// reported as an internal error.
func RespondError(c *fiber.Ctx, l *zap.Logger, err error) error {
	if ce, ok := catalog.AsError(err); ok {
		return c.Status(catalog.HTTPStatus(err)).JSON(ErrorBody{Error: *ce})
	}

	logger.WithRayID(l, c).Error("Request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorBody{Error: *catalog.Internal(err)})
}

// BadRequest writes a validation error for a malformed request.
func BadRequest(c *fiber.Ctx, field, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorBody{Error: *catalog.Validation(field, msg)})
}
