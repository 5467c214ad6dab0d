package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	slotCache "github.com/m04kA/SMC-BarberService/internal/infra/cache/slots"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// UseCase use case для получения свободных слотов записи
type UseCase struct {
	catalogRepo     CatalogRepository
	absenceRepo     AbsenceRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	cache           SlotCache
	shop            domain.ShopHours
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	absenceRepo AbsenceRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	cache SlotCache,
	shop domain.ShopHours,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:     catalogRepo,
		absenceRepo:     absenceRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		cache:           cache,
		shop:            shop,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := uc.shop.Day(req.Date)
	today := uc.shop.Today(now)

	uc.logger.Info("GetAvailableSlots: service=%d, date=%s, barber=%s",
		req.ServiceID, date.Format(domain.DateFormat), describeChoice(req.Barber))

	if date.Before(today) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	// 1. Услуга
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 2. Барберы в области поиска
	barberIDs, cacheBarberID, err := uc.resolveBarbers(ctx, req.Barber)
	if err != nil {
		return nil, err
	}

	response := &Response{
		Date:      date,
		ServiceID: req.ServiceID,
		Slots:     []types.TimeString{},
	}

	if len(barberIDs) == 0 {
		uc.logger.Info("GetAvailableSlots: no active barbers")
		return response, nil
	}

	// 3. Кеш (для текущего дня не используется: набор слотов зависит от времени)
	// Результат сохраняется под версией, прочитанной до обращения к БД
	cacheable := uc.cache != nil && !date.Equal(today)
	var cacheVersion slotCache.Version
	if cacheable {
		cached, version, ok, err := uc.cache.Get(ctx, date, req.ServiceID, cacheBarberID)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: cache lookup failed: %v", err)
			cacheable = false
		}
		cacheVersion = version
		if ok {
			response.Slots = toTimeStrings(cached)
			return response, nil
		}
	}

	// 4. Окно работы с учетом отсутствий и расписаний
	window, scope, windows, err := uc.resolveWindow(ctx, date, barberIDs)
	if err != nil {
		return nil, err
	}

	if len(scope) > 0 {
		// 5. Занятые интервалы
		appointments, err := uc.appointmentRepo.ListOverlapping(ctx, scope, window)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
			return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		busy := make([]domain.Interval, 0, len(appointments))
		for _, a := range appointments {
			busy = append(busy, a.Interval())
		}
		domain.SortIntervals(busy)

		// 6. Обход сетки
		duration := time.Duration(service.DurationMinutes) * time.Minute
		for _, slot := range walkSlots(window, duration, uc.shop.SlotStep, busy, now) {
			// окно поиска общее, но слот должен целиком помещаться в рабочее окно хотя бы одного барбера
			if !coveredByAny(windows, domain.Interval{Start: slot, End: slot.Add(duration)}) {
				continue
			}
			response.Slots = append(response.Slots, types.NewTimeString(slot))
		}
	}

	if cacheable {
		if err := uc.cache.Set(ctx, date, req.ServiceID, cacheBarberID, cacheVersion, fromTimeStrings(response.Slots)); err != nil {
			uc.logger.Warn("GetAvailableSlots: cache store failed: %v", err)
		}
	}

	uc.logger.Info("GetAvailableSlots: %d slots for service=%d, date=%s",
		len(response.Slots), req.ServiceID, date.Format(domain.DateFormat))

	return response, nil
}

// resolveBarbers возвращает ID барберов в области поиска и ключ барбера для кеша
func (uc *UseCase) resolveBarbers(ctx context.Context, choice domain.BarberChoice) ([]int64, int64, error) {
	switch c := choice.(type) {
	case domain.SpecificBarber:
		barber, err := uc.catalogRepo.GetBarber(ctx, c.BarberID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrBarberNotFound) {
				uc.logger.Warn("GetAvailableSlots: barber id=%d not found", c.BarberID)
				return nil, 0, ErrBarberNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get barber id=%d: %v", c.BarberID, err)
			return nil, 0, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
		}
		if !barber.Active {
			uc.logger.Warn("GetAvailableSlots: barber id=%d is inactive", c.BarberID)
			return nil, 0, ErrBarberNotFound
		}
		return []int64{barber.ID}, barber.ID, nil

	default:
		barbers, err := uc.catalogRepo.ListActiveBarbers(ctx)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list barbers: %v", err)
			return nil, 0, fmt.Errorf("%w: failed to list barbers: %v", ErrInternal, err)
		}
		ids := make([]int64, 0, len(barbers))
		for _, b := range barbers {
			ids = append(ids, b.ID)
		}
		return ids, 0, nil
	}
}

// resolveWindow убирает отсутствующих и неработающих в этот день барберов
// и возвращает окно поиска вместе с оставшимися барберами и их рабочими окнами
func (uc *UseCase) resolveWindow(ctx context.Context, date time.Time, barberIDs []int64) (domain.Interval, []int64, []domain.Interval, error) {
	shopWindow, err := uc.shop.WindowOn(date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid shop hours: %v", err)
		return domain.Interval{}, nil, nil, fmt.Errorf("%w: invalid shop hours: %v", ErrInternal, err)
	}

	absent, err := uc.absenceRepo.AbsentBarberIDs(ctx, date, barberIDs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get absences: %v", err)
		return domain.Interval{}, nil, nil, fmt.Errorf("%w: failed to get absences: %v", ErrInternal, err)
	}

	schedules, err := uc.scheduleRepo.GetByBarbers(ctx, barberIDs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return domain.Interval{}, nil, nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	scope := make([]int64, 0, len(barberIDs))
	windows := make([]domain.Interval, 0, len(barberIDs))
	for _, id := range barberIDs {
		if absent[id] {
			continue
		}
		window, ok := schedules[id].WorkWindow(date, shopWindow)
		if !ok {
			continue
		}
		scope = append(scope, id)
		windows = append(windows, window)
	}

	if len(scope) == 0 {
		return domain.Interval{}, scope, nil, nil
	}

	return hull(windows), scope, windows, nil
}

func describeChoice(choice domain.BarberChoice) string {
	if c, ok := choice.(domain.SpecificBarber); ok {
		return fmt.Sprintf("%d", c.BarberID)
	}
	return "any"
}

func toTimeStrings(values []string) []types.TimeString {
	result := make([]types.TimeString, len(values))
	for i, v := range values {
		result[i] = types.TimeString(v)
	}
	return result
}

func fromTimeStrings(values []types.TimeString) []string {
	result := make([]string, len(values))
	for i, v := range values {
		result[i] = v.String()
	}
	return result
}
