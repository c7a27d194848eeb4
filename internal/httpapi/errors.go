package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/abhisek/adaptiq/internal/analysis"
	"github.com/abhisek/adaptiq/internal/assessment"
	"github.com/abhisek/adaptiq/internal/material"
	"github.com/abhisek/adaptiq/internal/session"
)

// errorJSON writes the error envelope used by every failing response.
func errorJSON(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
	})
}

func validationJSON(c *fiber.Ctx, ve validator.ValidationErrors) error {
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"code":    fiber.StatusBadRequest,
		"status":  "error",
		"message": "request validation failed",
		"errors":  fields,
	})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var (
		fe       *fiber.Error
		genErr   *assessment.GenerationError
		tooLarge *material.TooLargeError
		badType  *material.UnsupportedTypeError
		extract  *material.ExtractError
		dataErr  *analysis.DataError
	)
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, session.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, session.ErrGenerationInFlight),
		errors.Is(err, session.ErrDiscarded),
		errors.Is(err, session.ErrSignedOut),
		errors.Is(err, session.ErrNotAssessing),
		errors.Is(err, session.ErrOutOfOrder),
		errors.Is(err, session.ErrAlreadyAnswered):
		return fiber.StatusConflict
	case errors.Is(err, material.ErrMissing),
		errors.Is(err, session.ErrNoSelection),
		errors.Is(err, session.ErrUnknownOption),
		errors.Is(err, session.ErrEmailRequired):
		return fiber.StatusBadRequest
	case errors.As(err, &genErr):
		return fiber.StatusBadGateway
	case errors.As(err, &tooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.As(err, &badType):
		return fiber.StatusUnsupportedMediaType
	case errors.As(err, &extract),
		errors.As(err, &dataErr),
		errors.Is(err, session.ErrNoQuestions),
		errors.Is(err, session.ErrNoAttempts):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

// handleError is the fiber ErrorHandler. Internal errors are logged and
// reported without detail.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return validationJSON(c, ve)
	}

	code := statusFor(err)
	if code >= fiber.StatusInternalServerError && code != fiber.StatusBadGateway {
		s.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return errorJSON(c, code, "internal server error")
	}
	if code == fiber.StatusBadGateway {
		s.logger.Warn("generation failed", "path", c.Path(), "error", errors.Unwrap(err))
	}
	return errorJSON(c, code, err.Error())
}
