package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/forms"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/apiclient"
)

// writeError traduce err a un dto.ErrorResponse con su código HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorBody(err)
	return c.Status(status).JSON(body)
}

func errorBody(err error) (int, dto.ErrorResponse) {
	if fe, ok := forms.AsFieldErrors(err); ok {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: fe.First(), Fields: fe}
	}
	if apiErr, ok := apiclient.AsAPIError(err); ok {
		return apiErrorBody(apiErr)
	}
	switch {
	case errors.Is(err, domain.ErrNotOwner):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "NOT_OWNER", Message: domain.ErrNotOwner.Error()}
	case errors.Is(err, domain.ErrReviewBusy):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "BUSY", Message: domain.ErrReviewBusy.Error()}
	case errors.Is(err, domain.ErrNoWishlist):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NO_WISHLIST", Message: domain.ErrNoWishlist.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Inicie sesión para continuar"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: domain.ErrForbidden.Error()}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "Error al procesar la solicitud"}
}

func apiErrorBody(e *apiclient.APIError) (int, dto.ErrorResponse) {
	switch e.Kind {
	case apiclient.KindNetwork:
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "UPSTREAM_UNAVAILABLE", Message: e.Message}
	case apiclient.KindUnexpected:
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "UPSTREAM_ERROR", Message: e.Message}
	case apiclient.KindValidation:
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: e.Message, Fields: e.FieldMessages()}
	}
	code := "UPSTREAM_ERROR"
	switch {
	case errors.Is(e, domain.ErrSessionExpired):
		code = "SESSION_EXPIRED"
	case e.Status == fiber.StatusUnauthorized:
		code = "UNAUTHORIZED"
	case e.Status == fiber.StatusForbidden:
		code = "FORBIDDEN"
	case e.Status == fiber.StatusNotFound:
		code = "NOT_FOUND"
	case e.Status == fiber.StatusBadRequest:
		code = "BAD_REQUEST"
	}
	status := e.Status
	if status < 400 || status > 599 {
		status = fiber.StatusBadGateway
	}
	return status, dto.ErrorResponse{Code: code, Message: e.Message}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func badID(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: name + " inválido"})
}

// paramID lee un id numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}
