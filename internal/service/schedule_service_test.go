package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/events"
	"github.com/spec-kit/shift-scheduler/internal/repository"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util"
)

func validEntry() *domain.ScheduleEntry {
	return &domain.ScheduleEntry{
		StaffID:   7,
		Title:     "Morning Shift",
		Date:      "2025-12-06",
		StartTime: "08:00",
		EndTime:   "16:00",
	}
}

func TestScheduleService_Create_MissingFieldsPersistNothing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ScheduleEntry)
	}{
		{"missing staff_id", func(e *domain.ScheduleEntry) { e.StaffID = 0 }},
		{"missing title", func(e *domain.ScheduleEntry) { e.Title = "" }},
		{"missing date", func(e *domain.ScheduleEntry) { e.Date = "" }},
		{"missing start_time", func(e *domain.ScheduleEntry) { e.StartTime = "" }},
		{"missing end_time", func(e *domain.ScheduleEntry) { e.EndTime = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockScheduleRepository)
			dispatcher := &recordingDispatcher{}
			svc := NewScheduleService(mockRepo, dispatcher)

			entry := validEntry()
			tt.mutate(entry)
			_, err := svc.Create(context.Background(), entry)

			assert.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
			assert.Empty(t, dispatcher.events())
			mockRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestScheduleService_Create_DefaultsAndPublishes(t *testing.T) {
	mockRepo := new(MockScheduleRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ScheduleEntry")).Run(func(args mock.Arguments) {
		entry := args.Get(1).(*domain.ScheduleEntry)
		entry.ID = 42
	}).Return(nil)

	dispatcher := &recordingDispatcher{}
	svc := NewScheduleService(mockRepo, dispatcher)

	entry := validEntry()
	id, err := svc.Create(context.Background(), entry)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, domain.ScheduleStatusScheduled, entry.Status)

	published := dispatcher.events()
	if assert.Len(t, published, 1) {
		assert.Equal(t, events.EventScheduleCreated, published[0].Type)
		assert.Equal(t, int64(42), published[0].EntityID)
	}
	mockRepo.AssertExpectations(t)
}

func TestScheduleService_Create_UnknownStaffIsNotFound(t *testing.T) {
	mockRepo := new(MockScheduleRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrNotFound)

	dispatcher := &recordingDispatcher{}
	svc := NewScheduleService(mockRepo, dispatcher)

	_, err := svc.Create(context.Background(), validEntry())

	assert.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
	assert.Empty(t, dispatcher.events())
}

func TestScheduleService_Create_InvalidStatus(t *testing.T) {
	mockRepo := new(MockScheduleRepository)
	svc := NewScheduleService(mockRepo, &recordingDispatcher{})

	entry := validEntry()
	entry.Status = "postponed"
	_, err := svc.Create(context.Background(), entry)

	assert.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestScheduleService_Update_NotFound(t *testing.T) {
	mockRepo := new(MockScheduleRepository)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(repository.ErrNotFound)

	dispatcher := &recordingDispatcher{}
	svc := NewScheduleService(mockRepo, dispatcher)

	entry := validEntry()
	entry.ID = 999
	err := svc.Update(context.Background(), entry)

	assert.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
	assert.Empty(t, dispatcher.events())
}

func TestScheduleService_UpdateAndDelete_Publish(t *testing.T) {
	mockRepo := new(MockScheduleRepository)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("Delete", mock.Anything, int64(5)).Return(nil)

	dispatcher := &recordingDispatcher{}
	svc := NewScheduleService(mockRepo, dispatcher)

	entry := validEntry()
	entry.ID = 5
	assert.NoError(t, svc.Update(context.Background(), entry))
	assert.NoError(t, svc.Delete(context.Background(), 5))

	published := dispatcher.events()
	if assert.Len(t, published, 2) {
		assert.Equal(t, events.EventScheduleUpdated, published[0].Type)
		assert.Equal(t, events.EventScheduleDeleted, published[1].Type)
		assert.Equal(t, int64(5), published[1].EntityID)
	}
}

func TestScheduleService_StatusAnyToAny(t *testing.T) {
	// No transition graph: completed back to scheduled is accepted.
	mockRepo := new(MockScheduleRepository)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewScheduleService(mockRepo, &recordingDispatcher{})

	entry := validEntry()
	entry.ID = 6
	entry.Status = domain.ScheduleStatusScheduled
	assert.NoError(t, svc.Update(context.Background(), entry))

	entry.Status = domain.ScheduleStatusCancelled
	assert.NoError(t, svc.Update(context.Background(), entry))
}
