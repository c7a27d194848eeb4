package httpapi

import (
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/abhisek/adaptiq/internal/llm"
)

const requestIDKey = "requestid"

// requestIDMiddleware tags every request with an X-Request-ID that is
// echoed back and carried into model call logs.
func requestIDMiddleware() fiber.Handler {
	return requestid.New(requestid.Config{ContextKey: requestIDKey})
}

// requestContext labels the server's lifetime context with the request ID.
// fasthttp does not report client disconnects, so a model call runs until
// it returns or the server shuts down.
func (s *Server) requestContext(c *fiber.Ctx) context.Context {
	id, _ := c.Locals(requestIDKey).(string)
	return llm.WithTrace(s.base, id)
}

func accessLogMiddleware(w io.Writer) fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: time.RFC3339,
		Format:     "[${time}] ${locals:requestid} ${ip} - ${method} ${path} - ${status} - ${latency}\n",
		Output:     w,
	})
}

func recoverMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
	})
}

// rateLimiter caps requests per IP across every route.
func rateLimiter(perMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return errorJSON(c, fiber.StatusTooManyRequests, "too many requests, try again shortly")
		},
	})
}
