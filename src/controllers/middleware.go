package controllers

import (
	"time"

	"go-shop-api/src/infrastructure/log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const CorrelationIDHeader = "X-Correlation-ID"

// RequestLogger tags each request with a correlation id (taken from the header when present)
// and logs one line per response.
func RequestLogger(logger log.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()

		correlationID := ctx.Get(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}
		ctx.Set(CorrelationIDHeader, correlationID)
		ctx.SetUserContext(logger.WithCorrelationID(ctx.UserContext(), correlationID))

		err := ctx.Next()
		if err != nil {
			// let the app error handler write the status before it is logged
			if handlerErr := ctx.App().ErrorHandler(ctx, err); handlerErr != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := ctx.Response().StatusCode()
		level := log.InfoLevel
		if status >= fiber.StatusInternalServerError {
			level = log.ErrorLevel
		} else if status >= fiber.StatusBadRequest {
			level = log.WarnLevel
		}

		logger.Response(ctx.UserContext(), &log.Field{
			URL:            ctx.OriginalURL(),
			HostName:       ctx.Hostname(),
			HTTPStatusCode: status,
			Duration:       time.Since(start).Milliseconds(),
			HTTPMethod:     ctx.Method(),
			Message:        "Request completed",
		}, level)
		return nil
	}
}
