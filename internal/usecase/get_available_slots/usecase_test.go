package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	slotCache "github.com/m04kA/SMC-BarberService/internal/infra/cache/slots"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeCatalog struct {
	services map[int64]*domain.Service
	barbers  []*domain.Barber
}

func (f *fakeCatalog) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeCatalog) GetBarber(_ context.Context, id int64) (*domain.Barber, error) {
	for _, b := range f.barbers {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, catalogRepo.ErrBarberNotFound
}

func (f *fakeCatalog) ListActiveBarbers(_ context.Context) ([]*domain.Barber, error) {
	result := make([]*domain.Barber, 0)
	for _, b := range f.barbers {
		if b.Active {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeAbsences struct{ absent map[int64]bool }

func (f *fakeAbsences) AbsentBarberIDs(_ context.Context, _ time.Time, ids []int64) (map[int64]bool, error) {
	result := make(map[int64]bool)
	for _, id := range ids {
		if f.absent[id] {
			result[id] = true
		}
	}
	return result, nil
}

type fakeSchedules struct{ schedules map[int64]domain.WeeklySchedule }

func (f *fakeSchedules) GetByBarbers(_ context.Context, ids []int64) (map[int64]domain.WeeklySchedule, error) {
	result := make(map[int64]domain.WeeklySchedule)
	for _, id := range ids {
		if s, ok := f.schedules[id]; ok {
			result[id] = s
		}
	}
	return result, nil
}

type fakeAppointments struct{ items []*domain.Appointment }

func (f *fakeAppointments) ListOverlapping(_ context.Context, ids []int64, interval domain.Interval) ([]*domain.Appointment, error) {
	inScope := make(map[int64]bool)
	for _, id := range ids {
		inScope[id] = true
	}
	result := make([]*domain.Appointment, 0)
	for _, a := range f.items {
		if inScope[a.BarberID] && a.IsActive() && a.Interval().Overlaps(interval) {
			result = append(result, a)
		}
	}
	return result, nil
}

type fakeCache struct {
	data    map[string][]string
	version slotCache.Version
	gets    int
	stored  []slotCache.Version
	getErr  error
}

func (f *fakeCache) key(date time.Time, serviceID, barberID int64, v slotCache.Version) string {
	return fmt.Sprintf("%s/%d/%d/%d/%d", date.Format(domain.DateFormat), serviceID, barberID, v.Generation, v.Date)
}

func (f *fakeCache) Get(_ context.Context, date time.Time, serviceID, barberID int64) ([]string, slotCache.Version, bool, error) {
	f.gets++
	if f.getErr != nil {
		return nil, slotCache.Version{}, false, f.getErr
	}
	v, ok := f.data[f.key(date, serviceID, barberID, f.version)]
	return v, f.version, ok, nil
}

func (f *fakeCache) Set(_ context.Context, date time.Time, serviceID, barberID int64, v slotCache.Version, slots []string) error {
	f.stored = append(f.stored, v)
	f.data[f.key(date, serviceID, barberID, v)] = slots
	return nil
}

type fixture struct {
	catalog      *fakeCatalog
	absences     *fakeAbsences
	schedules    *fakeSchedules
	appointments *fakeAppointments
	cache        *fakeCache
	uc           *UseCase
}

// 2030-05-06 понедельник
var monday = time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC)

func newFixture(now time.Time) *fixture {
	f := &fixture{
		catalog: &fakeCatalog{
			services: map[int64]*domain.Service{
				1: {ID: 1, Name: "Стрижка", DurationMinutes: 30, Price: 1500, Active: true},
				2: {ID: 2, Name: "Архив", DurationMinutes: 30, Active: false},
				3: {ID: 3, Name: "Комплекс", DurationMinutes: 600, Active: true},
			},
			barbers: []*domain.Barber{
				{ID: 10, Name: "Иван", Active: true},
				{ID: 11, Name: "Пётр", Active: true},
				{ID: 12, Name: "Олег", Active: false},
			},
		},
		absences:     &fakeAbsences{absent: map[int64]bool{}},
		schedules:    &fakeSchedules{schedules: map[int64]domain.WeeklySchedule{}},
		appointments: &fakeAppointments{},
		cache:        &fakeCache{data: map[string][]string{}},
	}
	f.uc = NewUseCase(f.catalog, f.absences, f.schedules, f.appointments, f.cache,
		domain.DefaultShopHours(time.UTC), logger.NewNop()).
		WithTimeProvider(fixedTime{now: now})
	return f
}

func (f *fixture) book(barberID int64, start time.Time, minutes int, status domain.AppointmentStatus) {
	f.appointments.items = append(f.appointments.items, &domain.Appointment{
		ID:       int64(len(f.appointments.items) + 1),
		BarberID: barberID,
		StartAt:  start,
		EndAt:    start.Add(time.Duration(minutes) * time.Minute),
		Status:   status,
	})
}

func slotsOf(resp *Response) []string {
	result := make([]string, len(resp.Slots))
	for i, s := range resp.Slots {
		result[i] = s.String()
	}
	return result
}

func at(h, m int) time.Time {
	return monday.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func TestExecute_SpecificBarberScenario(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -1))
	f.book(10, at(10, 0), 30, domain.StatusConfirmed)
	f.book(10, at(12, 0), 30, domain.StatusCancelled)
	f.book(11, at(9, 0), 60, domain.StatusConfirmed)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      monday,
		Barber:    domain.SpecificBarber{BarberID: 10},
	})
	require.NoError(t, err)

	slots := slotsOf(resp)
	assert.Contains(t, slots, "09:00")
	assert.Contains(t, slots, "09:30")
	assert.Contains(t, slots, "10:30")
	assert.Contains(t, slots, "12:00")
	assert.Equal(t, "17:30", slots[len(slots)-1])
	assert.NotContains(t, slots, "09:45")
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:15")
	assert.Len(t, slots, 32)
}

func TestExecute_AnyBarberMergesBusy(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -1))
	f.book(10, at(10, 0), 30, domain.StatusConfirmed)
	f.book(11, at(11, 0), 30, domain.StatusPending)

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: monday, Barber: domain.AnyBarber{}})
	require.NoError(t, err)

	slots := slotsOf(resp)
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "11:00")
	assert.Contains(t, slots, "10:30")
}

func TestExecute_AnyBarberSkipsGapsBetweenWorkingHours(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -1))
	f.schedules.schedules[10] = domain.WeeklySchedule{
		{BarberID: 10, Weekday: time.Monday, StartTime: "09:00", EndTime: "12:00"},
	}
	f.schedules.schedules[11] = domain.WeeklySchedule{
		{BarberID: 11, Weekday: time.Monday, StartTime: "14:00", EndTime: "18:00"},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: monday, Barber: domain.AnyBarber{}})
	require.NoError(t, err)

	slots := slotsOf(resp)
	assert.Contains(t, slots, "09:00")
	assert.Contains(t, slots, "11:30")
	assert.Contains(t, slots, "14:00")
	assert.Contains(t, slots, "17:30")
	for _, s := range []string{"11:45", "12:00", "12:30", "13:00", "13:45"} {
		assert.NotContains(t, slots, s)
	}
	// 09:00..11:30 и 14:00..17:30
	assert.Len(t, slots, 11+15)
}

func TestExecute_AbsentAndScheduledBarbers(t *testing.T) {
	t.Run("specific absent barber has no slots", func(t *testing.T) {
		f := newFixture(monday.AddDate(0, 0, -1))
		f.absences.absent[10] = true

		resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: monday, Barber: domain.SpecificBarber{BarberID: 10}})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("all barbers absent", func(t *testing.T) {
		f := newFixture(monday.AddDate(0, 0, -1))
		f.absences.absent[10] = true
		f.absences.absent[11] = true

		resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: monday, Barber: domain.AnyBarber{}})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("working hours narrow the window", func(t *testing.T) {
		f := newFixture(monday.AddDate(0, 0, -1))
		f.schedules.schedules[10] = domain.WeeklySchedule{
			{BarberID: 10, Weekday: time.Monday, StartTime: "12:00", EndTime: "14:00"},
		}

		resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: monday, Barber: domain.SpecificBarber{BarberID: 10}})
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"12:00", "12:15", "12:30", "12:45", "13:00", "13:15", "13:30"}, resp.Slots)
	})

	t.Run("barber not working that weekday", func(t *testing.T) {
		f := newFixture(monday.AddDate(0, 0, -1))
		f.schedules.schedules[10] = domain.WeeklySchedule{
			{BarberID: 10, Weekday: time.Tuesday, StartTime: "09:00", EndTime: "18:00"},
		}

		resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: monday, Barber: domain.SpecificBarber{BarberID: 10}})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})
}

func TestExecute_TodaySuppressesPast(t *testing.T) {
	f := newFixture(at(16, 40))

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: monday, Barber: domain.SpecificBarber{BarberID: 10}})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"16:45", "17:00", "17:15", "17:30"}, resp.Slots)
	assert.Zero(t, f.cache.gets)
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture(monday)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *Request
		err  error
	}{
		{"missing service", &Request{ServiceID: 0, Date: monday, Barber: domain.AnyBarber{}}, ErrInvalidInput},
		{"missing choice", &Request{ServiceID: 1, Date: monday}, ErrInvalidInput},
		{"unknown service", &Request{ServiceID: 99, Date: monday, Barber: domain.AnyBarber{}}, ErrServiceNotFound},
		{"inactive service", &Request{ServiceID: 2, Date: monday, Barber: domain.AnyBarber{}}, ErrServiceNotFound},
		{"unknown barber", &Request{ServiceID: 1, Date: monday, Barber: domain.SpecificBarber{BarberID: 99}}, ErrBarberNotFound},
		{"inactive barber", &Request{ServiceID: 1, Date: monday, Barber: domain.SpecificBarber{BarberID: 12}}, ErrBarberNotFound},
		{"past date", &Request{ServiceID: 1, Date: monday.AddDate(0, 0, -1), Barber: domain.AnyBarber{}}, ErrDateInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestExecute_LongServiceYieldsNoSlots(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -1))

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 3, Date: monday, Barber: domain.AnyBarber{}})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_UsesCacheForFutureDates(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -1))
	ctx := context.Background()
	req := &Request{ServiceID: 1, Date: monday, Barber: domain.AnyBarber{}}

	first, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)

	// новая запись не видна, пока дата не инвалидирована
	f.book(10, at(9, 0), 30, domain.StatusConfirmed)
	second, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
	assert.Equal(t, 2, f.cache.gets)
}

// fakeAppointmentsBumping инвалидирует кеш во время чтения записей из БД
type fakeAppointmentsBumping struct {
	*fakeAppointments
	cache *fakeCache
}

func (f *fakeAppointmentsBumping) ListOverlapping(ctx context.Context, ids []int64, interval domain.Interval) ([]*domain.Appointment, error) {
	result, err := f.fakeAppointments.ListOverlapping(ctx, ids, interval)
	f.cache.version.Date++
	return result, err
}

func TestExecute_StoresUnderVersionSeenBeforeRead(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -1))
	ctx := context.Background()
	bumping := &fakeAppointmentsBumping{fakeAppointments: f.appointments, cache: f.cache}
	f.uc.appointmentRepo = bumping
	req := &Request{ServiceID: 1, Date: monday, Barber: domain.AnyBarber{}}

	_, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	require.Equal(t, []slotCache.Version{{}}, f.cache.stored)

	// запись, сделанная параллельно, видна в следующем ответе
	f.book(10, at(9, 0), 30, domain.StatusConfirmed)
	f.book(11, at(9, 0), 30, domain.StatusConfirmed)
	f.uc.appointmentRepo = f.appointments

	resp, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.NotContains(t, slotsOf(resp), "09:00")
	assert.Equal(t, slotCache.Version{Date: 1}, f.cache.stored[1])
}

func TestExecute_CacheLookupFailureSkipsStore(t *testing.T) {
	f := newFixture(monday.AddDate(0, 0, -1))
	f.cache.getErr = errors.New("redis down")

	resp, err := f.uc.Execute(context.Background(), &Request{ServiceID: 1, Date: monday, Barber: domain.AnyBarber{}})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Slots)
	assert.Empty(t, f.cache.stored)
}
