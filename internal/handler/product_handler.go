package handler

import (
	"go-toko-api/internal/service"
	"go-toko-api/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Index lists products.
// GET /api/v1/products
func (h *ProductHandler) Index(c *fiber.Ctx) error {
	page, perPage := pageParams(c)

	products, total, err := h.productService.ListProducts(c.Query("search"), page, perPage)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(pagination.New(c.Path(), page, perPage, total, products))
}

// Show returns a single product.
// GET /api/v1/products/:product_id
func (h *ProductHandler) Show(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.productService.FindProductByID(productID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"data": product})
}

// Store creates a product.
// POST /api/v1/products
func (h *ProductHandler) Store(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.productService.CreateProduct(authUser(c), &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Product created successfully",
		"data":    product,
	})
}

// Update mutates a product.
// PUT /api/v1/products/:product_id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.productService.UpdateProduct(authUser(c), productID, &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"data":    product,
	})
}

// Destroy soft-deletes a product.
// DELETE /api/v1/products/:product_id
func (h *ProductHandler) Destroy(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.productService.DeleteProduct(authUser(c), productID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
