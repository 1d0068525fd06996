package handler

import (
	"errors"
	"strconv"

	"go-toko-api/internal/model"
	"go-toko-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// authUser returns the acting user set by the auth middleware.
func authUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals("auth_user").(*model.User)
	return user
}

func pageParams(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.Query("per_page", "10"))
	if err != nil || perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return page, perPage
}

// serviceError maps service-layer failures onto the API error taxonomy.
func serviceError(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return c.Status(422).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": ve.Fields,
		})
	}

	switch {
	case errors.Is(err, service.ErrForbidden):
		return c.Status(403).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrAlreadyAssigned):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTokoNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrAssignmentNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidRole),
		errors.Is(err, model.ErrInvalidJenisToko),
		errors.Is(err, service.ErrInvalidDateFormat),
		errors.Is(err, service.ErrIncompleteBootstrap):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}
