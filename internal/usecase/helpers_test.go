package usecase_test

import (
	"context"
	"io"
	"sort"
	"testing"
	"time"

	"go-clinic-scheduling/config"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/service"
	"go-clinic-scheduling/internal/service/mocks"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/clock"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// 2030-01-07 is a Monday
var firstMonday = time.Date(2030, time.January, 7, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	ctrl  *gomock.Controller
	sink  *mocks.MockNotificationSink
	audit *mocks.MockAuditService
	clock *clock.MockClock

	transactor   *fakeTransactor
	slots        *fakeSlotRepo
	availability *fakeAvailabilityRepo
	appointments *fakeAppointmentRepo
	doctors      *fakeDoctorRepo
	patients     *fakePatientRepo

	registry    usecase.ScheduleRegistry
	generator   usecase.SlotGenerator
	engine      usecase.SlotBookingEngine
	lifecycle   usecase.AppointmentLifecycle
	schedules   usecase.AvailabilityUsecase
	bookings    usecase.AppointmentUsecase
	cache       *service.SlotCacheService
	redisServer *miniredis.Miniredis

	doctorID  uuid.UUID
	patientID uuid.UUID
}

type envOption func(*config.BookingConfig, *envSettings)

type envSettings struct {
	withCache bool
}

func withLegacyBooking(enabled bool) envOption {
	return func(cfg *config.BookingConfig, _ *envSettings) {
		cfg.LegacyBookingEnabled = enabled
	}
}

func withMaxGenerationDays(days int) envOption {
	return func(cfg *config.BookingConfig, _ *envSettings) {
		cfg.MaxGenerationDays = days
	}
}

// withSlotCache backs the open-slot listing with an in-process Redis
func withSlotCache() envOption {
	return func(_ *config.BookingConfig, s *envSettings) {
		s.withCache = true
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := config.BookingConfig{
		DefaultSlotDurationMinutes: 30,
		MaxGenerationDays:          92,
		LegacyBookingEnabled:       true,
		OpenSlotCacheTTL:           time.Minute,
	}
	settings := &envSettings{}
	for _, opt := range opts {
		opt(&cfg, settings)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	ctrl := gomock.NewController(t)
	env := &testEnv{
		ctrl:         ctrl,
		sink:         mocks.NewMockNotificationSink(ctrl),
		audit:        mocks.NewMockAuditService(ctrl),
		clock:        clock.NewMockClock(time.Date(2030, time.January, 1, 8, 0, 0, 0, time.UTC)),
		slots:        newFakeSlotRepo(),
		availability: newFakeAvailabilityRepo(),
		appointments: newFakeAppointmentRepo(),
		doctorID:     uuid.New(),
		patientID:    uuid.New(),
	}
	env.transactor = newFakeTransactor(env.slots, env.availability, env.appointments)
	env.doctors = &fakeDoctorRepo{ids: map[uuid.UUID]bool{env.doctorID: true}}
	env.patients = &fakePatientRepo{ids: map[uuid.UUID]bool{env.patientID: true}}

	if settings.withCache {
		env.redisServer = miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: env.redisServer.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		env.cache = service.NewSlotCacheService(client, cfg.OpenSlotCacheTTL, log)
	}

	env.registry = usecase.NewScheduleRegistry(env.transactor, log, env.availability, env.doctors)
	env.generator = usecase.NewSlotGenerator(env.transactor, log, env.registry, env.slots, env.doctors, env.cache, cfg)
	env.engine = usecase.NewSlotBookingEngine(env.transactor, log, env.slots, env.cache)
	env.lifecycle = usecase.NewAppointmentLifecycle(env.transactor, log, env.appointments, env.clock, cfg)
	env.schedules = usecase.NewAvailabilityUsecase(log, env.registry, env.generator, env.engine, env.audit, cfg)
	env.bookings = usecase.NewAppointmentUsecase(env.transactor, log, env.engine, env.lifecycle,
		env.doctors, env.patients, env.sink, env.audit, env.clock)

	return env
}

// allowSideEffects accepts any notification and audit call
func (e *testEnv) allowSideEffects() {
	e.sink.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	e.audit.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (e *testEnv) setWindows(t *testing.T, windows ...entity.WeeklyAvailability) {
	t.Helper()
	_, err := e.registry.SetWeeklyAvailability(context.Background(), e.doctorID, windows)
	require.NoError(t, err)
}

func (e *testEnv) generate(t *testing.T, from, to time.Time, duration int) []entity.Slot {
	t.Helper()
	slots, err := e.generator.Generate(context.Background(), e.doctorID, from, to, duration)
	require.NoError(t, err)
	return slots
}

func (e *testEnv) book(ctx context.Context, slotID uuid.UUID) (*dto.AppointmentResponse, error) {
	return e.bookings.BookSlot(ctx, &dto.BookSlotRequest{
		SlotID:    slotID,
		DoctorID:  e.doctorID,
		PatientID: e.patientID,
	})
}

func (e *testEnv) slot(t *testing.T, id uuid.UUID) *entity.Slot {
	t.Helper()
	slot, err := e.slots.FindByID(nil, id)
	require.NoError(t, err)
	require.NotNil(t, slot)
	return slot
}

func window(weekday entity.Weekday, start, end string) entity.WeeklyAvailability {
	return entity.WeeklyAvailability{
		Weekday:   weekday,
		StartTime: mustClock(start),
		EndTime:   mustClock(end),
		Active:    true,
	}
}

func mustClock(s string) entity.ClockTime {
	c, err := entity.ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

// mondayMorning sets Monday 09:00-10:00 and generates its two 30 minute slots
func (e *testEnv) mondayMorning(t *testing.T) []entity.Slot {
	t.Helper()
	e.setWindows(t, window(entity.Monday, "09:00", "10:00"))
	slots := e.generate(t, firstMonday, firstMonday, 30)
	require.Len(t, slots, 2)
	sortSlots(slots)
	return slots
}

func sortSlots(slots []entity.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].DateKey() != slots[j].DateKey() {
			return slots[i].DateKey() < slots[j].DateKey()
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}
