package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"blogpessoal/internal/http/middleware"
	"blogpessoal/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string               `json:"code"`
	Message string               `json:"message"`
	Fields  []service.FieldError `json:"fields,omitempty"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "VALIDATION_ERROR", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.GetRequestID(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

func writeValidationError(c *fiber.Ctx, verr *service.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorPayload{
		RequestID: middleware.GetRequestID(c),
		Error: errorEnvelope{
			Code:    "VALIDATION_ERROR",
			Message: "request body failed validation",
			Fields:  verr.Fields,
		},
	})
}

// emptyStatus answers with status and no body at all.
func emptyStatus(c *fiber.Ctx, status int) error {
	c.Status(status)
	return nil
}

// writeServiceError translates a service error into its HTTP answer.
// A miss is a 404 with an empty body.
func writeServiceError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return writeValidationError(c, verr)
	case errors.Is(err, service.ErrNotFound):
		return emptyStatus(c, fiber.StatusNotFound)
	case errors.Is(err, service.ErrInvalidReference):
		return writeError(c, fiber.StatusBadRequest, "INVALID_REFERENCE", "referenced tema or usuario does not exist")
	case errors.Is(err, service.ErrLoginTaken):
		return writeError(c, fiber.StatusConflict, "LOGIN_TAKEN", "usuario already registered")
	case errors.Is(err, service.ErrNotAnImage):
		return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "photo must be an image")
	case errors.Is(err, service.ErrStorageUnavailable):
		return writeError(c, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "photo storage is not configured")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
	}
}
