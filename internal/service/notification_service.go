package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-clinic-scheduling/config"
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

var ErrNotificationSinkStopped = errors.New("notification sink is stopped")

// NotificationSink receives appointment lifecycle events.
// Publish must not block on delivery; callers log a returned error and carry on.
type NotificationSink interface {
	Publish(ctx context.Context, event entity.LifecycleEvent) error
}

// RedisNotificationSink publishes lifecycle events as JSON on a Redis channel.
//
// Delivery runs on a bounded worker pool with its own timeout, detached from
// the request that produced the event. Stop drains in-flight sends.
type RedisNotificationSink struct {
	redisClient redis.UniversalClient
	log         *logrus.Logger
	channel     string
	timeout     time.Duration

	mu      sync.RWMutex
	workers *pool.Pool
	stopped bool
}

func NewRedisNotificationSink(redisClient redis.UniversalClient, cfg config.NotificationConfig, log *logrus.Logger) *RedisNotificationSink {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &RedisNotificationSink{
		redisClient: redisClient,
		log:         log,
		channel:     cfg.Channel,
		timeout:     timeout,
		workers:     pool.New().WithMaxGoroutines(workers),
	}
}

// Publish enqueues the event. It blocks only while every worker is busy.
func (s *RedisNotificationSink) Publish(ctx context.Context, event entity.LifecycleEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal lifecycle event: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stopped {
		return ErrNotificationSinkStopped
	}

	s.workers.Go(func() {
		s.send(event, payload)
	})
	return nil
}

func (s *RedisNotificationSink) send(event entity.LifecycleEvent, payload []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.redisClient.Publish(ctx, s.channel, payload).Err(); err != nil {
		s.log.Warnf("Failed to publish lifecycle event for appointment %s (%s): %+v", event.AppointmentID, event.Status, err)
		return
	}

	s.log.Debugf("Published lifecycle event: appointment=%s, status=%s", event.AppointmentID, event.Status)
}

// Stop rejects new events and waits for in-flight sends.
// Safe to call multiple times.
func (s *RedisNotificationSink) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	s.workers.Wait()
	s.log.Info("RedisNotificationSink stopped")
}
