package service

import (
	"context"
	"errors"

	"github.com/spec-kit/shift-scheduler/internal/auth"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/events"
	"github.com/spec-kit/shift-scheduler/internal/repository"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util"
)

// StaffService covers admin-side account management.
type StaffService struct {
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewStaffService builds the service.
func NewStaffService(staff repository.StaffRepository, dispatcher events.Dispatcher, bcryptCost int) *StaffService {
	return &StaffService{staff: staff, dispatcher: dispatcher, bcryptCost: bcryptCost}
}

// List returns all staff accounts. Password hashes stay internal;
// the API layer never serializes them.
func (s *StaffService) List(ctx context.Context) ([]domain.StaffAccount, error) {
	accounts, err := s.staff.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return accounts, nil
}

// Create hashes the password and persists a new account.
func (s *StaffService) Create(ctx context.Context, name, email, password string, role domain.Role) (*domain.StaffAccount, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationError("name, email, password and role required", nil)
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": role})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account := &domain.StaffAccount{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.staff.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicateEmail()
		}
		return nil, apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventStaffCreated, account.ID))
	}
	return account, nil
}

// Delete removes an account; the store cascades its schedules.
func (s *StaffService) Delete(ctx context.Context, id int64) error {
	if err := s.staff.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("staff", map[string]any{"id": id})
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}
