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

type GoalHandler struct {
	goals        *repository.GoalRepository
	alertService *service.AlertService
	logger       *zap.Logger
}

func NewGoalHandler(goals *repository.GoalRepository, alertService *service.AlertService, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{
		goals:        goals,
		alertService: alertService,
		logger:       logger,
	}
}

func (h *GoalHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}
	if req.TargetAmount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Target amount must be positive",
		})
	}
	if req.CurrentAmount < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Current amount cannot be negative",
		})
	}

	var deadline *time.Time
	if req.Deadline != "" {
		t, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid deadline, expected RFC3339",
			})
		}
		deadline = &t
	}

	goal := &models.SavingsGoal{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         req.Title,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      deadline,
		IsCompleted:   false,
		CreatedAt:     time.Now(),
	}

	if err := h.goals.Create(c.Context(), goal); err != nil {
		h.logger.Error("Failed to create goal", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create goal",
		})
	}

	refreshAlerts(h.alertService, userID)

	return c.Status(fiber.StatusCreated).JSON(goalResponse(goal))
}

func (h *GoalHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	goals, err := h.goals.ListIncomplete(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list goals", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list goals",
		})
	}

	resp := make([]dto.GoalResponse, 0, len(goals))
	for i := range goals {
		resp = append(resp, goalResponse(&goals[i]))
	}

	return c.JSON(resp)
}

func (h *GoalHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	goal, err := h.goals.GetByID(c.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Goal not found",
			})
		}
		h.logger.Error("Failed to load goal", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update goal",
		})
	}

	var req dto.UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.TargetAmount != nil {
		if *req.TargetAmount <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Target amount must be positive",
			})
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.Deadline != nil {
		t, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid deadline, expected RFC3339",
			})
		}
		goal.Deadline = &t
	}

	if err := h.goals.Update(c.Context(), goal); err != nil {
		h.logger.Error("Failed to update goal", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update goal",
		})
	}

	refreshAlerts(h.alertService, userID)

	return c.JSON(goalResponse(goal))
}

// AddProgress records money put toward a goal. Completion detection is the
// alert engine's job, not this handler's.
func (h *GoalHandler) AddProgress(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	var req dto.AddProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Amount must be positive",
		})
	}

	if err := h.goals.AddProgress(c.Context(), userID, id, req.Amount); err != nil {
		h.logger.Error("Failed to add goal progress", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add progress",
		})
	}

	refreshAlerts(h.alertService, userID)

	goal, err := h.goals.GetByID(c.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Goal not found",
			})
		}
		h.logger.Error("Failed to load goal", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add progress",
		})
	}

	return c.JSON(goalResponse(goal))
}

func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	if err := h.goals.Delete(c.Context(), userID, id); err != nil {
		h.logger.Error("Failed to delete goal", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete goal",
		})
	}

	refreshAlerts(h.alertService, userID)

	return c.SendStatus(fiber.StatusNoContent)
}

func goalResponse(g *models.SavingsGoal) dto.GoalResponse {
	resp := dto.GoalResponse{
		ID:            g.ID.String(),
		Title:         g.Title,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		IsCompleted:   g.IsCompleted,
		CreatedAt:     g.CreatedAt.Format(time.RFC3339),
	}
	if g.Deadline != nil {
		resp.Deadline = g.Deadline.Format(time.RFC3339)
	}
	return resp
}
