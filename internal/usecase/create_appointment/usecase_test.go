package create_appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/pgerrors"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// store хранилище в памяти, общее для всех фейковых репозиториев
type store struct {
	mu           sync.Mutex
	services     map[int64]*domain.Service
	barbers      []*domain.Barber
	absent       map[int64]bool
	schedules    map[int64]domain.WeeklySchedule
	appointments []*domain.Appointment
	createErr    error
}

func (s *store) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if svc, ok := s.services[id]; ok {
		return svc, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (s *store) GetBarber(_ context.Context, id int64) (*domain.Barber, error) {
	for _, b := range s.barbers {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, catalogRepo.ErrBarberNotFound
}

func (s *store) ListActiveBarbers(_ context.Context) ([]*domain.Barber, error) {
	result := make([]*domain.Barber, 0)
	for _, b := range s.barbers {
		if b.Active {
			result = append(result, b)
		}
	}
	return result, nil
}

func (s *store) AbsentBarberIDs(_ context.Context, _ time.Time, ids []int64) (map[int64]bool, error) {
	result := make(map[int64]bool)
	for _, id := range ids {
		if s.absent[id] {
			result[id] = true
		}
	}
	return result, nil
}

func (s *store) GetByBarbers(_ context.Context, ids []int64) (map[int64]domain.WeeklySchedule, error) {
	result := make(map[int64]domain.WeeklySchedule)
	for _, id := range ids {
		if sch, ok := s.schedules[id]; ok {
			result[id] = sch
		}
	}
	return result, nil
}

func (s *store) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	a.ID = int64(len(s.appointments) + 1)
	a.CreatedAt = time.Now()
	s.appointments = append(s.appointments, a)
	return a, nil
}

func (s *store) ListOverlapping(_ context.Context, ids []int64, interval domain.Interval) ([]*domain.Appointment, error) {
	inScope := make(map[int64]bool)
	for _, id := range ids {
		inScope[id] = true
	}
	result := make([]*domain.Appointment, 0)
	for _, a := range s.appointments {
		if inScope[a.BarberID] && a.IsActive() && a.Interval().Overlaps(interval) {
			result = append(result, a)
		}
	}
	return result, nil
}

// serialTx выполняет транзакции строго по одной
type serialTx struct {
	s   *store
	err error
}

func (t *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if t.err != nil {
		return t.err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return fn(ctx)
}

type fakeCache struct {
	mu          sync.Mutex
	invalidated []time.Time
}

func (c *fakeCache) Invalidate(_ context.Context, date time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, date)
	return nil
}

type fakeMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *fakeMetrics) RecordAppointmentCommit(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[outcome]++
}

// 2030-05-06 понедельник
var monday = time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store   *store
	tx      *serialTx
	cache   *fakeCache
	metrics *fakeMetrics
	uc      *UseCase
}

func newFixture(status domain.AppointmentStatus) *fixture {
	s := &store{
		services: map[int64]*domain.Service{
			1: {ID: 1, Name: "Стрижка", DurationMinutes: 30, Price: 1500, Active: true},
			2: {ID: 2, Name: "Архив", DurationMinutes: 30, Active: false},
			3: {ID: 3, Name: "Борода", DurationMinutes: 20, Price: 700, Active: true},
		},
		barbers: []*domain.Barber{
			{ID: 10, Name: "Иван", Active: true},
			{ID: 11, Name: "Пётр", Active: true},
			{ID: 12, Name: "Олег", Active: false},
		},
		absent:    map[int64]bool{},
		schedules: map[int64]domain.WeeklySchedule{},
	}
	f := &fixture{
		store:   s,
		tx:      &serialTx{s: s},
		cache:   &fakeCache{},
		metrics: &fakeMetrics{outcomes: map[string]int{}},
	}
	f.uc = NewUseCase(s, s, s, s, f.cache, f.metrics, f.tx,
		domain.DefaultShopHours(time.UTC), status, logger.NewNop()).
		WithTimeProvider(fixedTime{now: monday.Add(-12 * time.Hour)})
	return f
}

func request(barber domain.BarberChoice, start types.TimeString) *Request {
	return &Request{
		ClientID:  100,
		ServiceID: 1,
		Barber:    barber,
		Date:      monday,
		StartTime: start,
	}
}

func TestExecute_CreatesConfirmedAppointment(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)

	resp, err := f.uc.Execute(context.Background(), request(domain.SpecificBarber{BarberID: 10}, "10:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.BarberID)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, monday.Add(10*time.Hour), resp.StartAt)
	assert.Equal(t, monday.Add(10*time.Hour+30*time.Minute), resp.EndAt)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)
	assert.Equal(t, []time.Time{monday}, f.cache.invalidated)
	assert.Equal(t, 1, f.metrics.outcomes[OutcomeCreated])
}

func TestExecute_PendingMode(t *testing.T) {
	f := newFixture(domain.StatusPending)

	resp, err := f.uc.Execute(context.Background(), request(domain.AnyBarber{}, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Status)
}

func TestExecute_AnyBarberPicksLowestFreeID(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, request(domain.AnyBarber{}, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), first.BarberID)

	second, err := f.uc.Execute(ctx, request(domain.AnyBarber{}, "10:15"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), second.BarberID)

	_, err = f.uc.Execute(ctx, request(domain.AnyBarber{}, "10:00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestExecute_AnyBarberSkipsAbsentAndOffDuty(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)
	f.store.absent[10] = true

	resp, err := f.uc.Execute(context.Background(), request(domain.AnyBarber{}, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.BarberID)

	f.store.schedules[11] = domain.WeeklySchedule{
		{BarberID: 11, Weekday: time.Monday, StartTime: "09:00", EndTime: "12:00"},
	}
	_, err = f.uc.Execute(context.Background(), request(domain.AnyBarber{}, "15:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SpecificBarberConflicts(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *store)
		start types.TimeString
	}{
		{
			name: "overlapping active appointment",
			setup: func(s *store) {
				s.appointments = append(s.appointments, &domain.Appointment{
					BarberID: 10, StartAt: monday.Add(10*time.Hour + 15*time.Minute),
					EndAt: monday.Add(11 * time.Hour), Status: domain.StatusPending,
				})
			},
			start: "10:00",
		},
		{
			name:  "barber absent",
			setup: func(s *store) { s.absent[10] = true },
			start: "10:00",
		},
		{
			name: "outside working hours",
			setup: func(s *store) {
				s.schedules[10] = domain.WeeklySchedule{
					{BarberID: 10, Weekday: time.Monday, StartTime: "09:00", EndTime: "10:15"},
				}
			},
			start: "10:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(domain.StatusConfirmed)
			tt.setup(f.store)
			before := len(f.store.appointments)

			_, err := f.uc.Execute(context.Background(), request(domain.SpecificBarber{BarberID: 10}, tt.start))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.Len(t, f.store.appointments, before)
			assert.Empty(t, f.cache.invalidated)
			assert.Equal(t, 1, f.metrics.outcomes[OutcomeConflict])
		})
	}
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)
	f.store.appointments = append(f.store.appointments, &domain.Appointment{
		ID: 1, BarberID: 10, StartAt: monday.Add(10 * time.Hour),
		EndAt: monday.Add(10*time.Hour + 30*time.Minute), Status: domain.StatusCancelled,
	})

	resp, err := f.uc.Execute(context.Background(), request(domain.SpecificBarber{BarberID: 10}, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.BarberID)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		req  func() *Request
		err  error
	}{
		{"missing client", func() *Request { r := request(domain.AnyBarber{}, "10:00"); r.ClientID = 0; return r }, ErrInvalidInput},
		{"missing choice", func() *Request { r := request(nil, "10:00"); return r }, ErrInvalidInput},
		{"bad time", func() *Request { return request(domain.AnyBarber{}, "25:00") }, ErrInvalidInput},
		{"start in past", func() *Request { r := request(domain.AnyBarber{}, "10:00"); r.Date = monday.AddDate(0, 0, -1); return r }, ErrStartInPast},
		{"unknown service", func() *Request { r := request(domain.AnyBarber{}, "10:00"); r.ServiceID = 99; return r }, ErrServiceNotFound},
		{"inactive service", func() *Request { r := request(domain.AnyBarber{}, "10:00"); r.ServiceID = 2; return r }, ErrServiceNotFound},
		{"before opening", func() *Request { return request(domain.AnyBarber{}, "08:45") }, ErrInvalidTimeSlot},
		{"ends after closing", func() *Request { return request(domain.AnyBarber{}, "17:45") }, ErrInvalidTimeSlot},
		{"off grid", func() *Request { return request(domain.AnyBarber{}, "10:10") }, ErrInvalidTimeSlot},
		{"unknown barber", func() *Request { return request(domain.SpecificBarber{BarberID: 99}, "10:00") }, ErrBarberNotFound},
		{"inactive barber", func() *Request { return request(domain.SpecificBarber{BarberID: 12}, "10:00") }, ErrBarberNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(domain.StatusConfirmed)

			_, err := f.uc.Execute(context.Background(), tt.req())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, f.store.appointments)
			assert.Equal(t, 1, f.metrics.outcomes[OutcomeRejected])
		})
	}
}

func TestExecute_StorageConflictsBecomeConflictError(t *testing.T) {
	t.Run("exclusion constraint", func(t *testing.T) {
		f := newFixture(domain.StatusConfirmed)
		f.store.createErr = fmt.Errorf("%w: Create: %v", appointmentRepo.ErrOverlap,
			&pq.Error{Code: pgerrors.CodeExclusionViolation, Constraint: "appointments_no_overlap"})

		_, err := f.uc.Execute(context.Background(), request(domain.SpecificBarber{BarberID: 10}, "10:00"))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Empty(t, f.store.appointments)
		assert.Equal(t, 1, f.metrics.outcomes[OutcomeConflict])
	})

	t.Run("serialization failure on commit", func(t *testing.T) {
		f := newFixture(domain.StatusConfirmed)
		f.tx.err = fmt.Errorf("%w: commit: 40001", pgerrors.ErrSerializationFailure)

		_, err := f.uc.Execute(context.Background(), request(domain.SpecificBarber{BarberID: 10}, "10:00"))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("other storage failure is internal", func(t *testing.T) {
		f := newFixture(domain.StatusConfirmed)
		f.store.createErr = fmt.Errorf("%w: Create: connection reset", appointmentRepo.ErrExecQuery)

		_, err := f.uc.Execute(context.Background(), request(domain.SpecificBarber{BarberID: 10}, "10:00"))
		assert.ErrorIs(t, err, ErrInternal)
		assert.NotErrorIs(t, err, domain.ErrConflict)
		assert.Equal(t, 1, f.metrics.outcomes[OutcomeError])
	})
}

func TestExecute_ConcurrentCommitsSameBarber(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)
	ctx := context.Background()

	const workers = 8
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, workers)
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			req := request(domain.SpecificBarber{BarberID: 10}, "10:00")
			req.ClientID = int64(100 + i)
			_, errs[i] = f.uc.Execute(ctx, req)
		}(i)
	}

	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, countActive(f.store))
}

func TestExecute_NoOverlapInvariant(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)
	ctx := context.Background()

	starts := []types.TimeString{"09:00", "09:15", "09:30", "09:45", "10:00", "10:10", "10:30"}
	for _, s := range starts {
		for _, choice := range []domain.BarberChoice{domain.AnyBarber{}, domain.SpecificBarber{BarberID: 11}} {
			req := request(choice, s)
			req.ServiceID = 3
			_, _ = f.uc.Execute(ctx, req)
		}
	}

	active := make([]*domain.Appointment, 0)
	for _, a := range f.store.appointments {
		if a.IsActive() {
			active = append(active, a)
		}
	}
	require.NotEmpty(t, active)

	for i := range active {
		for j := i + 1; j < len(active); j++ {
			if active[i].BarberID != active[j].BarberID {
				continue
			}
			assert.False(t, active[i].Interval().Overlaps(active[j].Interval()),
				"barber %d has overlapping appointments %d and %d", active[i].BarberID, active[i].ID, active[j].ID)
		}
	}
}

func countActive(s *store) int {
	n := 0
	for _, a := range s.appointments {
		if a.IsActive() {
			n++
		}
	}
	return n
}
