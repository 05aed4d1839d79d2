package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// HeaderRequestID cabecera de correlación de peticiones.
	HeaderRequestID = "X-Request-ID"
	localRequestID  = "request_id"
)

// UseMiddleware registra el logger de peticiones y, por dentro, el recover de panics.
// Un panic llega a RequestLogger como error 500 y queda logueado con su X-Request-ID.
func UseMiddleware(app *fiber.App, log zerolog.Logger) {
	app.Use(RequestLogger(log))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			log.Error().
				Str("request_id", RequestID(c)).
				Str("path", c.Path()).
				Interface("panic", e).
				Msg("panic recuperado")
		},
	}))
}

// RequestLogger asigna X-Request-ID (o respeta el recibido) y registra cada petición.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals(localRequestID, id)
		c.Set(HeaderRequestID, id)

		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler escriba la respuesta antes de loguear el status.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("request_id", id).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http request")
		return nil
	}
}

// RequestID obtiene el id de la petición asignado por RequestLogger.
func RequestID(c *fiber.Ctx) string {
	if v, ok := c.Locals(localRequestID).(string); ok {
		return v
	}
	return ""
}
