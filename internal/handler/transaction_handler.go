package handler

import (
	"errors"

	"go-toko-api/internal/service"
	"go-toko-api/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	transactionService service.TransactionService
}

func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// Store records a new transaction.
// POST /api/v1/transactions
func (h *TransactionHandler) Store(c *fiber.Ctx) error {
	var req service.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.transactionService.CreateTransaction(authUser(c), &req)
	if err != nil {
		// A product vanishing mid-workflow is a business rule violation here,
		// not a lookup miss.
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(400).JSON(fiber.Map{
				"message": "Transaction creation failed",
				"error":   err.Error(),
			})
		}
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Transaction recorded successfully",
		"data":    transaction,
	})
}

// Show returns a single transaction with its details.
// GET /api/v1/transactions/:transaksi_id
func (h *TransactionHandler) Show(c *fiber.Ctx) error {
	transaksiID, err := uuid.Parse(c.Params("transaksi_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.transactionService.GetTransactionByID(authUser(c), transaksiID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"data": transaction})
}

func (h *TransactionHandler) listRequest(c *fiber.Ctx) (*service.TransactionListRequest, error) {
	page, perPage := pageParams(c)

	req := &service.TransactionListRequest{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Page:      page,
		PerPage:   perPage,
	}

	if tokoIDStr := c.Query("toko_id"); tokoIDStr != "" {
		tokoID, err := uuid.Parse(tokoIDStr)
		if err != nil {
			return nil, errors.New("invalid toko ID")
		}
		req.TokoID = &tokoID
	}

	return req, nil
}

// Index lists transactions, newest first, scoped to the actor's tokos.
// GET /api/v1/transactions
func (h *TransactionHandler) Index(c *fiber.Ctx) error {
	req, err := h.listRequest(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	transactions, total, err := h.transactionService.ListTransactions(authUser(c), req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(pagination.New(c.Path(), req.Page, req.PerPage, total, transactions))
}

// Summary aggregates count and revenue per toko.
// GET /api/v1/transactions/summary
func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	req, err := h.listRequest(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	summary, err := h.transactionService.GetTokoSummary(authUser(c), req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"data": summary})
}
