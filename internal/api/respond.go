// Package api holds the response helpers shared by every controller.
package api

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Error writes {"error": msg} with the given status.
func Error(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// Invalid answers 400 for a body that failed to parse or validate.
func Invalid(c *fiber.Ctx, err error) error {
	var details any = err.Error()

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		details = verrs
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Invalid request data",
		"details": details,
	})
}

// Fail logs err and answers 500 with a generic message.
func Fail(c *fiber.Ctx, log logrus.FieldLogger, err error, msg string) error {
	log.WithError(err).WithField("path", c.Path()).Error(msg)
	return Error(c, fiber.StatusInternalServerError, msg)
}

// OK writes {"success": true, ...fields}.
func OK(c *fiber.Ctx, fields fiber.Map) error {
	out := fiber.Map{"success": true}
	for k, v := range fields {
		out[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(out)
}
