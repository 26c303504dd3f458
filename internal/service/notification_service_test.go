package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-clinic-scheduling/config"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisNotificationSink_PublishesLifecycleEvent(t *testing.T) {
	_, client := newTestRedis(t)
	cfg := config.NotificationConfig{Channel: "appointment.lifecycle", Workers: 2, Timeout: time.Second}
	sink := service.NewRedisNotificationSink(client, cfg, newTestLogger())

	ctx := context.Background()
	sub := client.Subscribe(ctx, cfg.Channel)
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	event := entity.LifecycleEvent{
		AppointmentID: uuid.New(),
		DoctorID:      uuid.New(),
		PatientID:     uuid.New(),
		Status:        entity.AppointmentStatusScheduled,
		OccurredAt:    time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, sink.Publish(ctx, event))
	sink.Stop()

	select {
	case msg := <-sub.Channel():
		var got entity.LifecycleEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, event.AppointmentID, got.AppointmentID)
		assert.Equal(t, entity.AppointmentStatusScheduled, got.Status)
		assert.True(t, event.OccurredAt.Equal(got.OccurredAt))
	case <-time.After(2 * time.Second):
		t.Fatal("lifecycle event was not published")
	}
}

func TestRedisNotificationSink_RejectsAfterStop(t *testing.T) {
	_, client := newTestRedis(t)
	sink := service.NewRedisNotificationSink(client, config.NotificationConfig{Channel: "events"}, newTestLogger())

	sink.Stop()
	sink.Stop()

	err := sink.Publish(context.Background(), entity.LifecycleEvent{AppointmentID: uuid.New()})
	assert.ErrorIs(t, err, service.ErrNotificationSinkStopped)
}

func TestRedisNotificationSink_DeliveryFailureDoesNotSurface(t *testing.T) {
	mr, client := newTestRedis(t)
	sink := service.NewRedisNotificationSink(client, config.NotificationConfig{Channel: "events", Timeout: 200 * time.Millisecond}, newTestLogger())
	mr.Close()

	err := sink.Publish(context.Background(), entity.LifecycleEvent{AppointmentID: uuid.New()})
	assert.NoError(t, err)
	sink.Stop()
}
