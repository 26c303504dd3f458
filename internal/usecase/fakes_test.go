package usecase_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// snapshotter is implemented by fakes that roll back with the fake transactor
type snapshotter interface {
	snapshot() (restore func())
}

// fakeTransactor hands out nil sessions. WithinTransaction is serialized and
// restores every registered fake when fn fails.
type fakeTransactor struct {
	mu     sync.Mutex
	stores []snapshotter
}

func newFakeTransactor(stores ...snapshotter) *fakeTransactor {
	return &fakeTransactor{stores: stores}
}

func (t *fakeTransactor) DB(ctx context.Context) *gorm.DB {
	return nil
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	restores := make([]func(), len(t.stores))
	for i, store := range t.stores {
		restores[i] = store.snapshot()
	}

	if err := fn(nil); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

// Slots

type slotKey struct {
	doctorID uuid.UUID
	date     string
	start    entity.ClockTime
}

type fakeSlotRepo struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]entity.Slot
	byKey map[slotKey]uuid.UUID

	// beforeClaim runs ahead of the compare-and-swap, outside the lock
	beforeClaim func(id uuid.UUID)
	releaseErr  error
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{
		byID:  map[uuid.UUID]entity.Slot{},
		byKey: map[slotKey]uuid.UUID{},
	}
}

func keyOf(slot *entity.Slot) slotKey {
	return slotKey{doctorID: slot.DoctorID, date: slot.DateKey(), start: slot.StartTime}
}

func (r *fakeSlotRepo) snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	byID := make(map[uuid.UUID]entity.Slot, len(r.byID))
	for k, v := range r.byID {
		byID[k] = v
	}
	byKey := make(map[slotKey]uuid.UUID, len(r.byKey))
	for k, v := range r.byKey {
		byKey[k] = v
	}

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.byID, r.byKey = byID, byKey
	}
}

func (r *fakeSlotRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &slot, nil
}

func (r *fakeSlotRepo) FindByDoctorAndDateRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Slot, error) {
	return r.find(doctorID, from, to, nil), nil
}

func (r *fakeSlotRepo) FindOpenByDoctorAndDateRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Slot, error) {
	open := entity.SlotStatusOpen
	return r.find(doctorID, from, to, &open), nil
}

func (r *fakeSlotRepo) find(doctorID uuid.UUID, from, to time.Time, status *entity.SlotStatus) []entity.Slot {
	r.mu.Lock()
	defer r.mu.Unlock()

	fromKey, toKey := from.Format(entity.DateLayout), to.Format(entity.DateLayout)
	slots := []entity.Slot{}
	for _, slot := range r.byID {
		if slot.DoctorID != doctorID || slot.DateKey() < fromKey || slot.DateKey() > toKey {
			continue
		}
		if status != nil && slot.Status != *status {
			continue
		}
		slots = append(slots, slot)
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].DateKey() != slots[j].DateKey() {
			return slots[i].DateKey() < slots[j].DateKey()
		}
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots
}

func (r *fakeSlotRepo) CreateIfAbsent(db *gorm.DB, slot *entity.Slot) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(slot)
	if _, exists := r.byKey[key]; exists {
		return false, nil
	}
	r.byKey[key] = slot.ID
	r.byID[slot.ID] = *slot
	return true, nil
}

func (r *fakeSlotRepo) ClaimIfVersion(db *gorm.DB, id uuid.UUID, expectedVersion int64, appointmentID uuid.UUID) (int64, error) {
	if r.beforeClaim != nil {
		r.beforeClaim(id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.byID[id]
	if !ok || slot.Version != expectedVersion || slot.Status != entity.SlotStatusOpen {
		return 0, nil
	}
	slot.Status = entity.SlotStatusClaimed
	slot.AppointmentID = &appointmentID
	slot.Version++
	r.byID[id] = slot
	return 1, nil
}

func (r *fakeSlotRepo) Release(db *gorm.DB, id uuid.UUID) (int64, error) {
	return r.release(id, nil)
}

func (r *fakeSlotRepo) ReleaseIfHeldBy(db *gorm.DB, id uuid.UUID, appointmentID uuid.UUID) (int64, error) {
	return r.release(id, &appointmentID)
}

func (r *fakeSlotRepo) release(id uuid.UUID, heldBy *uuid.UUID) (int64, error) {
	if r.releaseErr != nil {
		return 0, r.releaseErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.byID[id]
	if !ok || slot.Status != entity.SlotStatusClaimed {
		return 0, nil
	}
	if heldBy != nil && (slot.AppointmentID == nil || *slot.AppointmentID != *heldBy) {
		return 0, nil
	}
	slot.Status = entity.SlotStatusOpen
	slot.AppointmentID = nil
	slot.Version++
	r.byID[id] = slot
	return 1, nil
}

func (r *fakeSlotRepo) all() []entity.Slot {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots := make([]entity.Slot, 0, len(r.byID))
	for _, slot := range r.byID {
		slots = append(slots, slot)
	}
	return slots
}

// Weekly availability

type fakeAvailabilityRepo struct {
	mu       sync.Mutex
	byDoctor map[uuid.UUID][]entity.WeeklyAvailability
	nextID   int64

	// Active-window lookups for this weekday fail with activeErr
	failWeekday entity.Weekday
	activeErr   error
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{byDoctor: map[uuid.UUID][]entity.WeeklyAvailability{}}
}

func (r *fakeAvailabilityRepo) snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := make(map[uuid.UUID][]entity.WeeklyAvailability, len(r.byDoctor))
	for k, v := range r.byDoctor {
		saved[k] = append([]entity.WeeklyAvailability(nil), v...)
	}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.byDoctor = saved
	}
}

func (r *fakeAvailabilityRepo) ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, windows []entity.WeeklyAvailability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]entity.WeeklyAvailability, len(windows))
	for i, window := range windows {
		r.nextID++
		window.ID = r.nextID
		rows[i] = window
	}
	r.byDoctor[doctorID] = rows
	return nil
}

func (r *fakeAvailabilityRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklyAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	windows := append([]entity.WeeklyAvailability{}, r.byDoctor[doctorID]...)
	sort.SliceStable(windows, func(i, j int) bool {
		if windows[i].Weekday != windows[j].Weekday {
			return windows[i].Weekday.Order() < windows[j].Weekday.Order()
		}
		return windows[i].StartTime < windows[j].StartTime
	})
	return windows, nil
}

func (r *fakeAvailabilityRepo) FindActiveByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday entity.Weekday) ([]entity.WeeklyAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.activeErr != nil && weekday == r.failWeekday {
		return nil, r.activeErr
	}

	windows := []entity.WeeklyAvailability{}
	for _, window := range r.byDoctor[doctorID] {
		if window.Weekday == weekday && window.Active {
			windows = append(windows, window)
		}
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].StartTime < windows[j].StartTime })
	return windows, nil
}

// Appointments

type fakeAppointmentRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]entity.Appointment

	createErr    error
	codeCollides int  // the next n creates report a duplicate code
	skipExists   bool // lets racing legacy bookings past the existence check
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{byID: map[uuid.UUID]entity.Appointment{}}
}

func (r *fakeAppointmentRepo) snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := make(map[uuid.UUID]entity.Appointment, len(r.byID))
	for k, v := range r.byID {
		saved[k] = v
	}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.byID = saved
	}
}

func (r *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	if r.codeCollides > 0 {
		r.codeCollides--
		return repository.ErrDuplicateAppointmentCode
	}
	for _, existing := range r.byID {
		if existing.Code == appointment.Code {
			return repository.ErrDuplicateAppointmentCode
		}
		if appointment.SlotID == nil && existing.SlotID == nil &&
			existing.DoctorID == appointment.DoctorID &&
			existing.ScheduledAt.Equal(appointment.ScheduledAt) {
			return repository.ErrDoctorTimeTaken
		}
	}

	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt
	r.byID[appointment.ID] = *appointment
	return nil
}

func (r *fakeAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointment, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &appointment, nil
}

func (r *fakeAppointmentRepo) FindByCode(db *gorm.DB, code string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, appointment := range r.byID {
		if appointment.Code == code {
			return &appointment, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := []entity.Appointment{}
	for _, appointment := range r.byID {
		if filter.Status != nil && appointment.Status != *filter.Status {
			continue
		}
		if filter.From != nil && appointment.ScheduledAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !appointment.ScheduledAt.Before(*filter.To) {
			continue
		}
		matched = append(matched, appointment)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ScheduledAt.After(matched[j].ScheduledAt) })

	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(matched) {
		return []entity.Appointment{}, total, nil
	}
	end := offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeAppointmentRepo) ExistsForDoctorAt(db *gorm.DB, doctorID uuid.UUID, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.skipExists {
		return false, nil
	}
	for _, appointment := range r.byID {
		if appointment.DoctorID == doctorID && appointment.ScheduledAt.Equal(at) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAppointmentRepo) FindUpcomingByDoctorID(db *gorm.DB, doctorID uuid.UUID, from time.Time) ([]entity.Appointment, error) {
	return r.upcoming(func(a entity.Appointment) bool { return a.DoctorID == doctorID }, from), nil
}

func (r *fakeAppointmentRepo) FindUpcomingByPatientID(db *gorm.DB, patientID uuid.UUID, from time.Time) ([]entity.Appointment, error) {
	return r.upcoming(func(a entity.Appointment) bool { return a.PatientID == patientID }, from), nil
}

func (r *fakeAppointmentRepo) upcoming(match func(entity.Appointment) bool, from time.Time) []entity.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointments := []entity.Appointment{}
	for _, appointment := range r.byID {
		if !match(appointment) || appointment.ScheduledAt.Before(from) || appointment.Status.IsTerminal() {
			continue
		}
		appointments = append(appointments, appointment)
	}
	sort.Slice(appointments, func(i, j int) bool { return appointments[i].ScheduledAt.Before(appointments[j].ScheduledAt) })
	return appointments
}

func (r *fakeAppointmentRepo) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointment, ok := r.byID[id]
	if !ok || appointment.Status != from {
		return 0, nil
	}
	appointment.Status = to
	appointment.UpdatedAt = time.Now()
	r.byID[id] = appointment
	return 1, nil
}

func (r *fakeAppointmentRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

func (r *fakeAppointmentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// Profiles

type fakeDoctorRepo struct {
	ids      map[uuid.UUID]bool
	inactive map[uuid.UUID]bool
	err      error
}

func (r *fakeDoctorRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	if !r.ids[userID] {
		return nil, nil
	}
	active := !r.inactive[userID]
	return &entity.DoctorProfile{UserID: userID, User: entity.User{ID: userID, IsActive: &active}}, nil
}

type fakePatientRepo struct {
	ids map[uuid.UUID]bool
}

func (r *fakePatientRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	if !r.ids[userID] {
		return nil, nil
	}
	return &entity.PatientProfile{UserID: userID}, nil
}

type fakeAuditLogRepo struct {
	logs []entity.AuditLog
}

func (r *fakeAuditLogRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	log.ID = int64(len(r.logs) + 1)
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeAuditLogRepo) FindRecent(db *gorm.DB, limit, offset int) ([]entity.AuditLog, int64, error) {
	if offset >= len(r.logs) {
		return []entity.AuditLog{}, int64(len(r.logs)), nil
	}
	end := offset + limit
	if end > len(r.logs) {
		end = len(r.logs)
	}
	return r.logs[offset:end], int64(len(r.logs)), nil
}

func (r *fakeAuditLogRepo) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	for _, log := range r.logs {
		if log.ID == id {
			return &log, nil
		}
	}
	return nil, nil
}

var errStorageDown = errors.New("storage unavailable")
