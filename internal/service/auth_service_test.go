package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/repository"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", TokenTTLHours: 24, BcryptCost: bcrypt.MinCost}
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	johnHash := hashFor(t, "staff123")

	tests := []struct {
		name         string
		email        string
		password     string
		setupMock    func(*MockStaffRepository)
		expectedCode string
	}{
		{
			name:     "successful login",
			email:    "john@schedule.com",
			password: "staff123",
			setupMock: func(m *MockStaffRepository) {
				m.On("GetByEmail", mock.Anything, "john@schedule.com").Return(&domain.StaffAccount{
					ID:           7,
					Name:         "John Doe",
					Email:        "john@schedule.com",
					PasswordHash: johnHash,
					Role:         domain.RoleStaff,
				}, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "john@schedule.com",
			password: "wrong",
			setupMock: func(m *MockStaffRepository) {
				m.On("GetByEmail", mock.Anything, "john@schedule.com").Return(&domain.StaffAccount{
					ID:           7,
					Email:        "john@schedule.com",
					PasswordHash: johnHash,
					Role:         domain.RoleStaff,
				}, nil)
			},
			expectedCode: "UNAUTHORIZED",
		},
		{
			name:     "unknown email",
			email:    "ghost@schedule.com",
			password: "staff123",
			setupMock: func(m *MockStaffRepository) {
				m.On("GetByEmail", mock.Anything, "ghost@schedule.com").Return(nil, repository.ErrNotFound)
			},
			expectedCode: "UNAUTHORIZED",
		},
		{
			name:     "external-only account has no password",
			email:    "sso@schedule.com",
			password: "anything",
			setupMock: func(m *MockStaffRepository) {
				externalID := "ext-1"
				m.On("GetByEmail", mock.Anything, "sso@schedule.com").Return(&domain.StaffAccount{
					ID:         9,
					Email:      "sso@schedule.com",
					ExternalID: &externalID,
					Role:       domain.RoleStaff,
				}, nil)
			},
			expectedCode: "UNAUTHORIZED",
		},
		{
			name:         "missing fields",
			email:        "",
			password:     "",
			setupMock:    func(m *MockStaffRepository) {},
			expectedCode: "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockStaffRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(testAuthConfig(), mockRepo, nil)
			account, token, exp, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedCode != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedCode, apperrors.ToDomainError(err).Code)
				assert.Empty(t, token)
				assert.Nil(t, account)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.False(t, exp.IsZero())
			assert.Equal(t, tt.email, account.Email)

			// The token embeds the stored id and role, not client input.
			claims, err := svc.TokenManager().Parse(token)
			assert.NoError(t, err)
			assert.Equal(t, account.ID, claims.StaffID)
			assert.Equal(t, account.Role, claims.Role)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ExternalLogin_ExistingExternalID(t *testing.T) {
	externalID := "ext-42"
	mockRepo := new(MockStaffRepository)
	mockRepo.On("GetByExternalID", mock.Anything, externalID).Return(&domain.StaffAccount{
		ID:         3,
		Email:      "amy@schedule.com",
		ExternalID: &externalID,
		Role:       domain.RoleStaff,
	}, nil)

	svc := NewAuthService(testAuthConfig(), mockRepo, nil)
	account, token, _, err := svc.ExternalLogin(context.Background(), externalID, "amy@schedule.com", "Amy")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(3), account.ID)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ExternalLogin_LinksByEmail(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	mockRepo.On("GetByExternalID", mock.Anything, "ext-42").Return(nil, repository.ErrNotFound)
	mockRepo.On("GetByEmail", mock.Anything, "amy@schedule.com").Return(&domain.StaffAccount{
		ID:           3,
		Email:        "amy@schedule.com",
		PasswordHash: "hash",
		Role:         domain.RoleAdmin,
	}, nil)
	mockRepo.On("LinkExternalID", mock.Anything, int64(3), "ext-42").Return(nil)

	svc := NewAuthService(testAuthConfig(), mockRepo, nil)
	account, _, _, err := svc.ExternalLogin(context.Background(), "ext-42", "amy@schedule.com", "Amy")

	assert.NoError(t, err)
	assert.NotNil(t, account.ExternalID)
	assert.Equal(t, "ext-42", *account.ExternalID)
	assert.Equal(t, domain.RoleAdmin, account.Role)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ExternalLogin_CreatesStaffAccount(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	mockRepo.On("GetByExternalID", mock.Anything, "ext-new").Return(nil, repository.ErrNotFound)
	mockRepo.On("GetByEmail", mock.Anything, "new@schedule.com").Return(nil, repository.ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.StaffAccount")).Run(func(args mock.Arguments) {
		account := args.Get(1).(*domain.StaffAccount)
		account.ID = 11
	}).Return(nil)

	dispatcher := &recordingDispatcher{}
	svc := NewAuthService(testAuthConfig(), mockRepo, dispatcher)
	account, _, _, err := svc.ExternalLogin(context.Background(), "ext-new", "new@schedule.com", "New Person")

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, account.Role)
	assert.Empty(t, account.PasswordHash)
	if assert.Len(t, dispatcher.events(), 1) {
		assert.Equal(t, int64(11), dispatcher.events()[0].EntityID)
	}
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ExternalLogin_LosesInsertRace(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	mockRepo.On("GetByExternalID", mock.Anything, "ext-race").Return(nil, repository.ErrNotFound)
	mockRepo.On("GetByEmail", mock.Anything, "dup@x.com").Return(nil, repository.ErrNotFound).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.StaffAccount")).Return(repository.ErrDuplicateEmail)
	externalID := "ext-race"
	mockRepo.On("GetByEmail", mock.Anything, "dup@x.com").Return(&domain.StaffAccount{
		ID:         21,
		Email:      "dup@x.com",
		ExternalID: &externalID,
		Role:       domain.RoleStaff,
	}, nil)

	svc := NewAuthService(testAuthConfig(), mockRepo, nil)
	account, _, _, err := svc.ExternalLogin(context.Background(), "ext-race", "dup@x.com", "Dup")

	assert.NoError(t, err)
	assert.Equal(t, int64(21), account.ID)
	mockRepo.AssertExpectations(t)
}
