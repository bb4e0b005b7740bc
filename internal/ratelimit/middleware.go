package ratelimit

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/config"
	"github.com/spec-kit/auth-gateway/internal/events"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util/errorutil"
)

// Middleware applies admission control keyed on a caller-supplied identity
// header. It runs ahead of authentication, so the key is the claimed
// identity, whatever the token later proves.
func Middleware(admitter *Admitter, cfg config.RateLimitConfig, dispatcher events.Dispatcher) fiber.Handler {
	limit := cfg.Requests
	window := cfg.Window()

	return func(c *fiber.Ctx) error {
		identity := c.Get(cfg.ClientIDHeader)
		if identity == "" {
			return apperrors.NewValidationError(fmt.Sprintf("%s header missing", cfg.ClientIDHeader), nil)
		}

		decision, err := admitter.Admit(c.UserContext(), identity, limit, window)
		if err != nil {
			return apperrors.NewUnavailable("unable to evaluate rate limit")
		}
		if !decision.Allowed {
			if dispatcher != nil {
				_ = dispatcher.Publish(c.UserContext(), events.New(events.EventAdmissionRejected, identity, events.AdmissionRejectedPayload{
					Identity:          identity,
					Path:              c.Path(),
					RetryAfterSeconds: int(decision.RetryAfter.Round(time.Second).Seconds()),
				}))
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(decision.RetryAfter.Round(time.Second).Seconds())))
			return apperrors.NewTooManyRequests(decision.RetryAfter)
		}
		return c.Next()
	}
}
