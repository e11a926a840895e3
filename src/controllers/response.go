package controllers

import (
	"errors"

	"go-shop-api/src/services/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every non-2xx reply. Error is only set on 500s.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse is a bare confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError maps not-found to 404, client errors to 400 and everything else to 500 with the
// underlying error text.
func respondError(ctx *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperr.KindNotFound:
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: appErr.Message})
		case apperr.KindInvalid:
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: appErr.Message})
		}
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "Server error", Error: err.Error()})
}

func respondBadBody(ctx *fiber.Ctx, err error) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request body: " + err.Error()})
}
