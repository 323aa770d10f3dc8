package middleware

import (
	"otpauth/internal/i18n"
	"otpauth/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Language picks the response language from the x-language header.
func Language() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(utils.LocalLanguage, i18n.Match(c.Get(i18n.Header)))
		return c.Next()
	}
}
