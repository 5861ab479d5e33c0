package handlers

import (
	"errors"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repository"
	"fintrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgets      *repository.BudgetRepository
	alertService *service.AlertService
	logger       *zap.Logger
}

func NewBudgetHandler(budgets *repository.BudgetRepository, alertService *service.AlertService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgets:      budgets,
		alertService: alertService,
		logger:       logger,
	}
}

func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.CreateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	period := models.BudgetPeriod(req.Period)
	if period != models.PeriodWeekly && period != models.PeriodMonthly && period != models.PeriodYearly {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Period must be weekly, monthly or yearly",
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

	startDate := time.Now()
	if req.StartDate != "" {
		startDate, err = time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid start_date, expected RFC3339",
			})
		}
	}

	threshold := models.DefaultAlertThreshold
	if req.AlertThreshold != nil {
		threshold = *req.AlertThreshold
	}

	budget := &models.Budget{
		ID:             uuid.New(),
		UserID:         userID,
		Category:       req.Category,
		Amount:         req.Amount,
		Period:         period,
		StartDate:      startDate,
		IsActive:       true,
		AlertThreshold: threshold,
		CreatedAt:      time.Now(),
	}

	if err := h.budgets.Create(c.Context(), budget); err != nil {
		h.logger.Error("Failed to create budget", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create budget",
		})
	}

	refreshAlerts(h.alertService, userID)

	return c.Status(fiber.StatusCreated).JSON(budgetResponse(budget))
}

func (h *BudgetHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	budgets, err := h.budgets.ListActive(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list budgets", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list budgets",
		})
	}

	resp := make([]dto.BudgetResponse, 0, len(budgets))
	for i := range budgets {
		resp = append(resp, budgetResponse(&budgets[i]))
	}

	return c.JSON(resp)
}

func (h *BudgetHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid budget ID",
		})
	}

	budget, err := h.budgets.GetByID(c.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Budget not found",
			})
		}
		h.logger.Error("Failed to load budget", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update budget",
		})
	}

	var req dto.UpdateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Category != nil {
		budget.Category = *req.Category
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Amount must be positive",
			})
		}
		budget.Amount = *req.Amount
	}
	if req.Period != nil {
		period := models.BudgetPeriod(*req.Period)
		if period != models.PeriodWeekly && period != models.PeriodMonthly && period != models.PeriodYearly {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Period must be weekly, monthly or yearly",
			})
		}
		budget.Period = period
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(time.RFC3339, *req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid start_date, expected RFC3339",
			})
		}
		budget.StartDate = startDate
	}
	if req.AlertThreshold != nil {
		budget.AlertThreshold = *req.AlertThreshold
	}

	if err := h.budgets.Update(c.Context(), budget); err != nil {
		h.logger.Error("Failed to update budget", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update budget",
		})
	}

	refreshAlerts(h.alertService, userID)

	return c.JSON(budgetResponse(budget))
}

// Delete soft-deletes a budget; the alert engine stops considering it on
// the next pass.
func (h *BudgetHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid budget ID",
		})
	}

	if err := h.budgets.Deactivate(c.Context(), userID, id); err != nil {
		h.logger.Error("Failed to deactivate budget", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete budget",
		})
	}

	refreshAlerts(h.alertService, userID)

	return c.SendStatus(fiber.StatusNoContent)
}

func budgetResponse(b *models.Budget) dto.BudgetResponse {
	return dto.BudgetResponse{
		ID:             b.ID.String(),
		Category:       b.Category,
		Amount:         b.Amount,
		Period:         string(b.Period),
		StartDate:      b.StartDate.Format(time.RFC3339),
		IsActive:       b.IsActive,
		AlertThreshold: b.AlertThreshold,
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
	}
}
