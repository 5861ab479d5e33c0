package handlers

import (
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repository"
	"fintrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	transactions *repository.TransactionRepository
	alertService *service.AlertService
	logger       *zap.Logger
}

func NewTransactionHandler(transactions *repository.TransactionRepository, alertService *service.AlertService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		alertService: alertService,
		logger:       logger,
	}
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	txType := models.TransactionType(req.Type)
	if txType != models.TransactionIncome && txType != models.TransactionExpense {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Type must be income or expense",
		})
	}
	if req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Amount must be positive",
		})
	}
	if req.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category is required",
		})
	}

	date := time.Now()
	if req.Date != "" {
		date, err = time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date, expected RFC3339",
			})
		}
	}

	tx := &models.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      txType,
		Amount:    req.Amount,
		Category:  req.Category,
		Date:      date,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}

	if err := h.transactions.Create(c.Context(), tx); err != nil {
		h.logger.Error("Failed to create transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create transaction",
		})
	}

	refreshAlerts(h.alertService, userID)

	return c.Status(fiber.StatusCreated).JSON(transactionResponse(tx))
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid from date",
			})
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid to date",
			})
		}
		to = &t
	}

	transactions, err := h.transactions.ListByUser(c.Context(), userID, from, to, c.Query("category"))
	if err != nil {
		h.logger.Error("Failed to list transactions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list transactions",
		})
	}

	resp := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		resp = append(resp, transactionResponse(&transactions[i]))
	}

	return c.JSON(resp)
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid transaction ID",
		})
	}

	if err := h.transactions.Delete(c.Context(), userID, id); err != nil {
		h.logger.Error("Failed to delete transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete transaction",
		})
	}

	refreshAlerts(h.alertService, userID)

	return c.SendStatus(fiber.StatusNoContent)
}

func transactionResponse(tx *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        tx.ID.String(),
		Type:      string(tx.Type),
		Amount:    tx.Amount,
		Category:  tx.Category,
		Date:      tx.Date.Format(time.RFC3339),
		Notes:     tx.Notes,
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
	}
}
