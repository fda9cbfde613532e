package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/shift-scheduler/internal/auth"
	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/events"
	"github.com/spec-kit/shift-scheduler/internal/repository"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util"
)

// AuthService coordinates password and external-identity login flows.
type AuthService struct {
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, staff repository.StaffRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		staff:      staff,
		dispatcher: dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		bcryptCost: cfg.BcryptCost,
	}
}

// Login authenticates by email and password and issues a token whose
// embedded id and role come from the stored account. Unknown email,
// password mismatch and password-less accounts all collapse into the
// same invalid-credentials answer.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.StaffAccount, string, time.Time, error) {
	if email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("email and password required", nil)
	}

	account, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	if account.PasswordHash == "" {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.Generate(account)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return account, token, exp, nil
}

// ExternalLogin resolves a third-party-asserted identity to an
// account: by external id first, then by email (linking the external
// id), otherwise a fresh staff-role account with no password. The
// email unique constraint serializes concurrent calls; losing the
// insert race resolves to the already-linked row.
func (s *AuthService) ExternalLogin(ctx context.Context, externalID, email, name string) (*domain.StaffAccount, string, time.Time, error) {
	if externalID == "" || email == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("external id and email required", nil)
	}

	account, err := s.resolveExternal(ctx, externalID, email, name)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Generate(account)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return account, token, exp, nil
}

func (s *AuthService) resolveExternal(ctx context.Context, externalID, email, name string) (*domain.StaffAccount, error) {
	account, err := s.staff.GetByExternalID(ctx, externalID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	account, err = s.staff.GetByEmail(ctx, email)
	if err == nil {
		if err := s.staff.LinkExternalID(ctx, account.ID, externalID); err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		account.ExternalID = &externalID
		return account, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	fresh := &domain.StaffAccount{
		Name:       name,
		Email:      email,
		ExternalID: &externalID,
		Role:       domain.RoleStaff,
	}
	if err := s.staff.Create(ctx, fresh); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Concurrent call won the insert; the account is already there.
			linked, lookupErr := s.staff.GetByEmail(ctx, email)
			if lookupErr != nil {
				return nil, apperrors.NewInternalError(lookupErr)
			}
			if linked.ExternalID == nil {
				if linkErr := s.staff.LinkExternalID(ctx, linked.ID, externalID); linkErr != nil {
					return nil, apperrors.NewInternalError(linkErr)
				}
				linked.ExternalID = &externalID
			}
			return linked, nil
		}
		return nil, apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventStaffCreated, fresh.ID))
	}
	return fresh, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
