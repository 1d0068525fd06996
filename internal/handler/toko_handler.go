package handler

import (
	"go-toko-api/internal/service"
	"go-toko-api/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TokoHandler struct {
	tokoService service.TokoService
}

func NewTokoHandler(tokoService service.TokoService) *TokoHandler {
	return &TokoHandler{tokoService: tokoService}
}

// Index lists tokos.
// GET /api/v1/toko
func (h *TokoHandler) Index(c *fiber.Ctx) error {
	page, perPage := pageParams(c)

	tokos, total, err := h.tokoService.ListTokos(c.Query("search"), page, perPage)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(pagination.New(c.Path(), page, perPage, total, tokos))
}

// Store creates a toko, optionally bootstrapping its admin and kasir accounts.
// POST /api/v1/toko
func (h *TokoHandler) Store(c *fiber.Ctx) error {
	var req service.CreateTokoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	toko, err := h.tokoService.CreateToko(authUser(c), &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Toko created successfully",
		"data":    toko.ToResponse(),
	})
}

// Show returns a single toko.
// GET /api/v1/toko/:toko_id
func (h *TokoHandler) Show(c *fiber.Ctx) error {
	tokoID, err := uuid.Parse(c.Params("toko_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid toko ID"})
	}

	toko, err := h.tokoService.FindTokoByID(tokoID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"data": toko.ToResponse()})
}

// Update mutates a toko.
// PUT /api/v1/toko/:toko_id
func (h *TokoHandler) Update(c *fiber.Ctx) error {
	tokoID, err := uuid.Parse(c.Params("toko_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid toko ID"})
	}

	var req service.UpdateTokoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	toko, err := h.tokoService.UpdateToko(authUser(c), tokoID, &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Toko updated successfully",
		"data":    toko.ToResponse(),
	})
}

// Destroy soft-deletes a toko.
// DELETE /api/v1/toko/:toko_id
func (h *TokoHandler) Destroy(c *fiber.Ctx) error {
	tokoID, err := uuid.Parse(c.Params("toko_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid toko ID"})
	}

	if err := h.tokoService.DeleteToko(authUser(c), tokoID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Toko deleted successfully"})
}

// AssignUserRequest represents the assignment request body
type AssignUserRequest struct {
	UserID string `json:"user_id"`
}

// AssignUser assigns a user to a toko.
// POST /api/v1/toko/:toko_id/assign
func (h *TokoHandler) AssignUser(c *fiber.Ctx) error {
	tokoID, err := uuid.Parse(c.Params("toko_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid toko ID"})
	}

	var req AssignUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	assignment, err := h.tokoService.AssignUser(userID, tokoID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "User assigned to toko successfully",
		"data":    assignment,
	})
}

// RemoveUser removes a user's assignment from a toko.
// DELETE /api/v1/toko/:toko_id/users/:user_id
func (h *TokoHandler) RemoveUser(c *fiber.Ctx) error {
	tokoID, err := uuid.Parse(c.Params("toko_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid toko ID"})
	}
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if err := h.tokoService.RemoveUser(userID, tokoID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "User removed from toko successfully"})
}

// ListUsers lists users assigned to a toko.
// GET /api/v1/toko/:toko_id/users
func (h *TokoHandler) ListUsers(c *fiber.Ctx) error {
	tokoID, err := uuid.Parse(c.Params("toko_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid toko ID"})
	}

	page, perPage := pageParams(c)

	users, total, err := h.tokoService.ListUsersByToko(tokoID, page, perPage)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(pagination.New(c.Path(), page, perPage, total, users))
}

// MyTokos lists the acting user's assigned tokos.
// GET /api/v1/my-toko
func (h *TokoHandler) MyTokos(c *fiber.Ctx) error {
	user := authUser(c)
	page, perPage := pageParams(c)

	tokos, total, err := h.tokoService.ListTokosByUser(user.ID, page, perPage)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(pagination.New(c.Path(), page, perPage, total, tokos))
}
