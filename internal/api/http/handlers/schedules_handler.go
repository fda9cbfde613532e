package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/dto"
	"github.com/spec-kit/shift-scheduler/internal/auth"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/service"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util"
)

// SchedulesHandler exposes shift CRUD endpoints.
type SchedulesHandler struct {
	schedules *service.ScheduleService
}

// NewSchedulesHandler constructs handler.
func NewSchedulesHandler(scheduleService *service.ScheduleService) *SchedulesHandler {
	return &SchedulesHandler{schedules: scheduleService}
}

// Mine handles GET /api/schedules/mine.
func (h *SchedulesHandler) Mine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	entries, err := h.schedules.ListMine(c.Context(), principal.StaffID)
	if err != nil {
		return err
	}
	return c.JSON(scheduleResponses(entries))
}

// All handles GET /api/schedules/all.
func (h *SchedulesHandler) All(c *fiber.Ctx) error {
	entries, err := h.schedules.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(scheduleResponses(entries))
}

// Create handles POST /api/schedules.
func (h *SchedulesHandler) Create(c *fiber.Ctx) error {
	var req dto.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	entry := entryFromRequest(&req)
	id, err := h.schedules.Create(c.Context(), entry)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": id})
}

// Update handles PUT /api/schedules/:id.
func (h *SchedulesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	entry := entryFromRequest(&req)
	entry.ID = id
	if err := h.schedules.Update(c.Context(), entry); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "schedule updated"})
}

// Delete handles DELETE /api/schedules/:id.
func (h *SchedulesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.schedules.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "schedule deleted"})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", nil)
	}
	return id, nil
}

func entryFromRequest(req *dto.ScheduleRequest) *domain.ScheduleEntry {
	return &domain.ScheduleEntry{
		StaffID:     req.StaffID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Status:      domain.ScheduleStatus(req.Status),
	}
}

func scheduleResponses(entries []domain.ScheduleEntry) []dto.ScheduleResponse {
	resp := make([]dto.ScheduleResponse, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		resp = append(resp, dto.ScheduleResponse{
			ID:          entry.ID,
			StaffID:     entry.StaffID,
			Title:       entry.Title,
			Description: entry.Description,
			Date:        entry.Date,
			StartTime:   entry.StartTime,
			EndTime:     entry.EndTime,
			Location:    entry.Location,
			Status:      string(entry.Status),
			CreatedAt:   entry.CreatedAt,
			StaffName:   entry.StaffName,
			StaffEmail:  entry.StaffEmail,
		})
	}
	return resp
}
