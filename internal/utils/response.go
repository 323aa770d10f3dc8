package utils

import (
	"otpauth/internal/i18n"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

// LocalLanguage is where the language middleware stores the matched tag.
const LocalLanguage = "lang"

// Lang returns the caller's language, English when unset.
func Lang(c *fiber.Ctx) language.Tag {
	if tag, ok := c.Locals(LocalLanguage).(language.Tag); ok {
		return tag
	}
	return i18n.Default
}

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends the localized success envelope.
func Success(c *fiber.Ctx, messageKey string, data interface{}) error {
	return Respond(c, fiber.StatusOK, fiber.Map{
		"success": true,
		"data":    data,
		"message": i18n.T(Lang(c), messageKey),
	})
}

// Created is Success with status 201.
func Created(c *fiber.Ctx, messageKey string, data interface{}) error {
	return Respond(c, fiber.StatusCreated, fiber.Map{
		"success": true,
		"data":    data,
		"message": i18n.T(Lang(c), messageKey),
	})
}
