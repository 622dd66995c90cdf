package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the request ID between client and gateway.
const Header = "X-Ray-ID"

// New returns a middleware that assigns every request a ray ID.
// An ID supplied by the client is kept; otherwise a fresh UUID is
// generated. The ID is stored in locals under "ray_id" and echoed in
// the response header.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
