package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/restomenu/restomenu/internal/services"
)

// httpError maps service sentinels onto HTTP errors for the app-level
// error handler.
func httpError(err error) error {
	if errors.Is(err, services.ErrNotFound) {
		return fiber.ErrNotFound
	}
	return err
}

// paramID reads a positive numeric path parameter. A non-numeric id is
// treated the same as a missing row.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.ErrNotFound
	}
	return uint(id), nil
}
