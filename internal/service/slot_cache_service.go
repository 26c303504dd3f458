package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	// Redis key prefixes for the open-slot listing cache
	RedisOpenSlotsKeyPrefix = "slots:open:"
	RedisOpenSlotsGenPrefix = "slots:open:gen:"

	// Timeout for individual Redis operations
	redisCacheTimeout = 2 * time.Second

	// Upper bound for a shared fill; it outlives the caller that started it
	sharedLoadTimeout = 5 * time.Second
)

// setIfGenerationScript stores a listing only if no invalidation happened since
// the caller read the generation counter.
//
// KEYS[1] listing key, KEYS[2] generation key
// ARGV[1] expected generation, ARGV[2] payload, ARGV[3] TTL in milliseconds
var setIfGenerationScript = redis.NewScript(`
	local current = redis.call('GET', KEYS[2])
	if current == false then
		current = '0'
	end
	if current ~= ARGV[1] then
		return 0
	end
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
	return 1
`)

// SlotLoader reads the authoritative open slots for one doctor and date.
type SlotLoader func(ctx context.Context) ([]entity.Slot, error)

// SlotCacheService caches open-slot listings per doctor and date.
//
// Only the advisory listing reads through it. Claims always read storage and
// every claim, release or generation invalidates the affected date. A Redis
// failure degrades to reading storage.
type SlotCacheService struct {
	redisClient redis.UniversalClient
	log         *logrus.Logger
	ttl         time.Duration

	// Collapses concurrent misses for the same key into one storage read
	group singleflight.Group
}

func NewSlotCacheService(redisClient redis.UniversalClient, ttl time.Duration, log *logrus.Logger) *SlotCacheService {
	return &SlotCacheService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// GetOrLoad returns the cached listing or fills it from load.
func (s *SlotCacheService) GetOrLoad(ctx context.Context, doctorID uuid.UUID, date time.Time, load SlotLoader) ([]entity.Slot, error) {
	if s == nil || s.ttl <= 0 {
		return load(ctx)
	}

	key := openSlotsKey(doctorID, date)
	if slots, ok := s.get(ctx, key); ok {
		return slots, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// Waiters share this result, so the leader's cancellation must not fail them
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()

		generation := s.generation(loadCtx, doctorID, date)

		slots, err := load(loadCtx)
		if err != nil {
			return nil, err
		}

		s.store(loadCtx, doctorID, date, generation, slots)
		return slots, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]entity.Slot), nil
}

// Invalidate drops the cached listings for the given dates. Failures are logged only.
func (s *SlotCacheService) Invalidate(ctx context.Context, doctorID uuid.UUID, dates ...time.Time) {
	if s == nil || len(dates) == 0 {
		return
	}

	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), redisCacheTimeout)
	defer cancel()

	pipe := s.redisClient.TxPipeline()
	for _, date := range dates {
		genKey := openSlotsGenKey(doctorID, date)
		pipe.Incr(opCtx, genKey)
		pipe.Expire(opCtx, genKey, s.calculateTTL(date)+s.ttl)
		pipe.Del(opCtx, openSlotsKey(doctorID, date))
	}

	if _, err := pipe.Exec(opCtx); err != nil {
		s.log.Warnf("Failed to invalidate open slot cache for doctor %s: %+v", doctorID, err)
		return
	}

	s.log.Debugf("Invalidated open slot cache for doctor %s (%d dates)", doctorID, len(dates))
}

func (s *SlotCacheService) get(ctx context.Context, key string) ([]entity.Slot, bool) {
	opCtx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	payload, err := s.redisClient.Get(opCtx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Failed to read open slot cache %s: %+v", key, err)
		}
		return nil, false
	}

	var slots []entity.Slot
	if err := json.Unmarshal(payload, &slots); err != nil {
		s.log.Warnf("Discarding corrupt open slot cache %s: %+v", key, err)
		return nil, false
	}
	return slots, true
}

func (s *SlotCacheService) generation(ctx context.Context, doctorID uuid.UUID, date time.Time) string {
	opCtx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	generation, err := s.redisClient.Get(opCtx, openSlotsGenKey(doctorID, date)).Result()
	if err == redis.Nil {
		return "0"
	}
	if err != nil {
		// An unreadable generation never matches, so nothing is stored
		return ""
	}
	return generation
}

func (s *SlotCacheService) store(ctx context.Context, doctorID uuid.UUID, date time.Time, generation string, slots []entity.Slot) {
	if generation == "" {
		return
	}

	payload, err := json.Marshal(slots)
	if err != nil {
		s.log.Warnf("Failed to marshal open slots for cache: %+v", err)
		return
	}

	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), redisCacheTimeout)
	defer cancel()

	ttl := s.calculateTTL(date)
	keys := []string{openSlotsKey(doctorID, date), openSlotsGenKey(doctorID, date)}
	stored, err := setIfGenerationScript.Run(opCtx, s.redisClient, keys, generation, payload, ttl.Milliseconds()).Int()
	if err != nil {
		s.log.Warnf("Failed to store open slot cache for doctor %s: %+v", doctorID, err)
		return
	}
	if stored == 0 {
		s.log.Debugf("Skipped stale open slot cache fill for doctor %s on %s", doctorID, date.Format(entity.DateLayout))
	}
}

// calculateTTL caps the configured TTL so past dates expire quickly
func (s *SlotCacheService) calculateTTL(date time.Time) time.Duration {
	expireAt := entity.DateOnly(date).AddDate(0, 0, 1)
	untilEndOfDay := time.Until(expireAt)

	if untilEndOfDay <= 0 {
		// Past date - short TTL for cleanup
		return 1 * time.Minute
	}
	if untilEndOfDay < time.Second {
		return time.Second
	}
	if untilEndOfDay < s.ttl {
		return untilEndOfDay
	}
	return s.ttl
}

func openSlotsKey(doctorID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s%s:%s", RedisOpenSlotsKeyPrefix, doctorID, date.Format(entity.DateLayout))
}

func openSlotsGenKey(doctorID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s%s:%s", RedisOpenSlotsGenPrefix, doctorID, date.Format(entity.DateLayout))
}
