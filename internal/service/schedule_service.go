package service

import (
	"context"
	"errors"

	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/events"
	"github.com/spec-kit/shift-scheduler/internal/repository"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util"
)

// ScheduleService wraps shift CRUD with validation and change
// notification. Events fire only after the store call succeeds and
// never fail the operation.
type ScheduleService struct {
	schedules  repository.ScheduleRepository
	dispatcher events.Dispatcher
}

// NewScheduleService builds the service.
func NewScheduleService(schedules repository.ScheduleRepository, dispatcher events.Dispatcher) *ScheduleService {
	return &ScheduleService{schedules: schedules, dispatcher: dispatcher}
}

// ListMine returns the requester's entries ordered by date and start time.
func (s *ScheduleService) ListMine(ctx context.Context, staffID int64) ([]domain.ScheduleEntry, error) {
	entries, err := s.schedules.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return entries, nil
}

// ListAll returns every entry joined with owner name/email.
func (s *ScheduleService) ListAll(ctx context.Context) ([]domain.ScheduleEntry, error) {
	entries, err := s.schedules.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return entries, nil
}

// Create validates and persists a new entry, returning its id.
func (s *ScheduleService) Create(ctx context.Context, entry *domain.ScheduleEntry) (int64, error) {
	if err := validateEntry(entry); err != nil {
		return 0, err
	}

	if err := s.schedules.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, apperrors.NewNotFound("staff", map[string]any{"staff_id": entry.StaffID})
		}
		return 0, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventScheduleCreated, entry.ID)
	return entry.ID, nil
}

// Update overwrites all mutable fields of an existing entry.
func (s *ScheduleService) Update(ctx context.Context, entry *domain.ScheduleEntry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}

	if err := s.schedules.Update(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("schedule", map[string]any{"id": entry.ID})
		}
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventScheduleUpdated, entry.ID)
	return nil
}

// Delete removes an entry.
func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	if err := s.schedules.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("schedule", map[string]any{"id": id})
		}
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventScheduleDeleted, id)
	return nil
}

func (s *ScheduleService) publish(ctx context.Context, eventType events.EventType, id int64) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(eventType, id))
}

// validateEntry enforces required fields and defaults the optional
// ones. Status transitions are intentionally unconstrained; only
// membership in the known set is checked.
func validateEntry(entry *domain.ScheduleEntry) error {
	missing := map[string]any{}
	if entry.StaffID == 0 {
		missing["staff_id"] = "required"
	}
	if entry.Title == "" {
		missing["title"] = "required"
	}
	if entry.Date == "" {
		missing["date"] = "required"
	}
	if entry.StartTime == "" {
		missing["start_time"] = "required"
	}
	if entry.EndTime == "" {
		missing["end_time"] = "required"
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing required fields", missing)
	}

	if entry.Status == "" {
		entry.Status = domain.ScheduleStatusScheduled
	}
	if !entry.Status.Valid() {
		return apperrors.NewValidationError("invalid status", map[string]any{"status": entry.Status})
	}
	return nil
}
