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

// listLimit caps the alert feed at the 50 most recent entries.
const listLimit = 50

type AlertHandler struct {
	alerts       *repository.AlertRepository
	alertService *service.AlertService
	logger       *zap.Logger
}

func NewAlertHandler(alerts *repository.AlertRepository, alertService *service.AlertService, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{
		alerts:       alerts,
		alertService: alertService,
		logger:       logger,
	}
}

// List returns the user's newest alerts, newest first.
func (h *AlertHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	alerts, err := h.alerts.ListByUser(c.Context(), userID, listLimit)
	if err != nil {
		h.logger.Error("Failed to list alerts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list alerts",
		})
	}

	resp := make([]dto.AlertResponse, 0, len(alerts))
	for i := range alerts {
		resp = append(resp, alertResponse(&alerts[i]))
	}

	return c.JSON(resp)
}

// Refresh regenerates alerts synchronously and returns the fresh list.
func (h *AlertHandler) Refresh(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	h.alertService.GenerateAlerts(c.Context(), userID)

	alerts, err := h.alerts.ListByUser(c.Context(), userID, listLimit)
	if err != nil {
		h.logger.Error("Failed to list alerts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list alerts",
		})
	}

	resp := make([]dto.AlertResponse, 0, len(alerts))
	for i := range alerts {
		resp = append(resp, alertResponse(&alerts[i]))
	}

	return c.JSON(resp)
}

func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid alert ID",
		})
	}

	if err := h.alerts.MarkRead(c.Context(), userID, id); err != nil {
		h.logger.Error("Failed to mark alert read", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to mark alert read",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid alert ID",
		})
	}

	if err := h.alerts.Delete(c.Context(), userID, id); err != nil {
		h.logger.Error("Failed to delete alert", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete alert",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func alertResponse(a *models.Alert) dto.AlertResponse {
	resp := dto.AlertResponse{
		ID:        a.ID.String(),
		Type:      string(a.Type),
		Title:     a.Title,
		Message:   a.Message,
		Severity:  string(a.Severity),
		IsRead:    a.IsRead,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.RelatedID != nil {
		resp.RelatedID = a.RelatedID.String()
	}
	return resp
}
