package handler

import (
	"go-toko-api/internal/service"
	"go-toko-api/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(response)
}

// Logout acknowledges the logout; tokens are stateless and simply discarded
// by the client.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Successfully logged out"})
}

// Me returns the authenticated user.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := authUser(c)
	if user == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.JSON(fiber.Map{"data": user.ToResponse()})
}

// Register creates a new account. Superadmin may pick the role; admin
// registrations are forced to kasir by the service.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.authService.Register(authUser(c), &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "User registered successfully",
		"data":    user.ToResponse(),
	})
}

// UpdateUser handles profile and role updates.
// PUT /api/v1/auth/users/:user_id
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.authService.UpdateUser(authUser(c), userID, &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"data":    user.ToResponse(),
	})
}

// ListUsers returns users filtered by role, toko, and search term.
// GET /api/v1/auth/users
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	page, perPage := pageParams(c)

	req := service.ListUsersRequest{
		Role:    c.Query("role"),
		Search:  c.Query("search"),
		Page:    page,
		PerPage: perPage,
	}

	if tokoIDStr := c.Query("toko_id"); tokoIDStr != "" {
		tokoID, err := uuid.Parse(tokoIDStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid toko ID"})
		}
		req.TokoID = &tokoID
	}

	users, total, err := h.authService.ListUsers(&req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(pagination.New(c.Path(), page, perPage, total, users))
}
