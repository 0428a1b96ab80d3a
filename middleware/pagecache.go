package middleware

import (
	"rplsite/revalidate"

	"github.com/gofiber/fiber/v2"
)

// Pages is the public response cache. nil disables caching.
var Pages *revalidate.PageCache

// CachePage serves GET responses from Pages and stores successful ones under
// the tags returned by tagsFor.
func CachePage(tagsFor func(c *fiber.Ctx) []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Pages == nil || c.Method() != fiber.MethodGet {
			return c.Next()
		}

		key := c.OriginalURL()
		if body, ok := Pages.Get(c.UserContext(), key); ok {
			c.Set("X-Cache", "HIT")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(body)
		}

		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() == fiber.StatusOK {
			body := append([]byte(nil), c.Response().Body()...)
			_ = Pages.Set(c.UserContext(), key, body, tagsFor(c)...)
		}
		c.Set("X-Cache", "MISS")
		return nil
	}
}

// Tags returns a tagsFor function that always yields the same tags
func Tags(tags ...string) func(c *fiber.Ctx) []string {
	return func(*fiber.Ctx) []string { return tags }
}
