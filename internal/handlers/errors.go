package handlers

import (
	"errors"
	"strconv"

	apperrors "otpauth/internal/errors"
	"otpauth/internal/i18n"
	"otpauth/internal/utils"
	"otpauth/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler renders every error returned by a handler or middleware.
// Classified errors keep their kind and message; anything else is a
// generic 500 whose detail is only exposed in development.
func ErrorHandler(logger *zap.Logger, development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		lang := utils.Lang(c)

		var fe *fiber.Error
		if errors.As(err, &fe) {
			message := fe.Message
			switch fe.Code {
			case fiber.StatusNotFound:
				message = i18n.T(lang, "route_not_found")
			case fiber.StatusTooManyRequests:
				message = i18n.Error(lang, "TOO_MANY_REQUESTS", fe.Message)
			}
			status := "fail"
			if fe.Code >= fiber.StatusInternalServerError {
				status = "error"
			}
			return c.Status(fe.Code).JSON(fiber.Map{
				"success": false,
				"status":  status,
				"message": message,
			})
		}

		if de, ok := apperrors.As(err); ok && de.Kind != apperrors.KindInternal {
			body := fiber.Map{
				"success": false,
				"status":  de.Status(),
				"message": i18n.Error(lang, de.Code, de.Message),
			}
			if len(de.Fields) > 0 {
				body["errors"] = de.Fields
			}
			return c.Status(de.Kind.StatusCode()).JSON(body)
		}

		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals("requestid")),
			zap.Error(err),
		)

		body := fiber.Map{
			"success": false,
			"status":  "error",
			"message": i18n.T(lang, "something_went_wrong"),
		}
		if development {
			body["error"] = err.Error()
			if de, ok := apperrors.As(err); ok {
				body["detail"] = de.Message
			}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}

// parseBody decodes and validates the request body into out.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.ErrInvalidBody
	}
	return validation.Struct(utils.Lang(c), out)
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidID
	}
	return id, nil
}

// caller returns the authenticated user ID and the token it presented.
func caller(c *fiber.Ctx) (int64, string, error) {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return 0, "", err
	}
	token, err := utils.GetBearerToken(c)
	if err != nil {
		return 0, "", err
	}
	return claims.UserID, token, nil
}
