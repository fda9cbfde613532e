package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

// Store-agnostic sentinels. Both backends translate their driver
// errors into these so callers never see pgx or sqlite specifics.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// StaffRepository handles persistence for staff accounts.
type StaffRepository interface {
	Create(ctx context.Context, account *domain.StaffAccount) error
	GetByID(ctx context.Context, id int64) (*domain.StaffAccount, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffAccount, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.StaffAccount, error)
	LinkExternalID(ctx context.Context, id int64, externalID string) error
	List(ctx context.Context) ([]domain.StaffAccount, error)
	Delete(ctx context.Context, id int64) error
}

// ScheduleRepository handles persistence for shift entries.
type ScheduleRepository interface {
	Create(ctx context.Context, entry *domain.ScheduleEntry) error
	Update(ctx context.Context, entry *domain.ScheduleEntry) error
	Delete(ctx context.Context, id int64) error
	ListByStaff(ctx context.Context, staffID int64) ([]domain.ScheduleEntry, error)
	ListAll(ctx context.Context) ([]domain.ScheduleEntry, error)
}
