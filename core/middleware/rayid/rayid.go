// Package rayid assigns every incoming HTTP request a unique ray ID for log
// correlation, honoring an X-Ray-ID header when the caller already has one.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the header the ray ID is read from and echoed back on.
const HeaderName = "X-Ray-ID"

// New creates the ray ID middleware.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
