package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRoutesByType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var created, deleted, all []Event
	d.Subscribe(EventScheduleCreated, func(_ context.Context, e Event) error {
		created = append(created, e)
		return nil
	})
	d.Subscribe(EventScheduleDeleted, func(_ context.Context, e Event) error {
		deleted = append(deleted, e)
		return nil
	})
	d.SubscribeAll(func(_ context.Context, e Event) error {
		all = append(all, e)
		return nil
	})

	ctx := context.Background()
	require.NoError(t, d.Publish(ctx, NewEvent(EventScheduleCreated, 1)))
	require.NoError(t, d.Publish(ctx, NewEvent(EventScheduleUpdated, 2)))
	require.NoError(t, d.Publish(ctx, NewEvent(EventScheduleDeleted, 3)))

	require.Len(t, created, 1)
	assert.Equal(t, int64(1), created[0].EntityID)
	require.Len(t, deleted, 1)
	assert.Equal(t, int64(3), deleted[0].EntityID)
	assert.Len(t, all, 3)
}

func TestDispatcherSwallowsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventStaffCreated, func(context.Context, Event) error {
		return errors.New("handler blew up")
	})
	d.Subscribe(EventStaffCreated, func(context.Context, Event) error {
		reached = true
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventStaffCreated, 9))
	assert.NoError(t, err)
	assert.True(t, reached, "later handlers still run after one fails")
}

func TestNewEventPopulatesEnvelope(t *testing.T) {
	e := NewEvent(EventScheduleUpdated, 42)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, EventScheduleUpdated, e.Type)
	assert.Equal(t, int64(42), e.EntityID)
	assert.False(t, e.Timestamp.IsZero())
}
