package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberService/pkg/pgerrors"
)

// Исходы записи для метрик
const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// UseCase use case для создания записи к барберу
type UseCase struct {
	catalogRepo     CatalogRepository
	absenceRepo     AbsenceRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	cache           SlotCache
	metrics         MetricsRecorder
	txManager       TransactionManager
	shop            domain.ShopHours
	defaultStatus   domain.AppointmentStatus
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// defaultStatus - статус новой записи: confirmed или pending
func NewUseCase(
	catalogRepo CatalogRepository,
	absenceRepo AbsenceRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	cache SlotCache,
	metrics MetricsRecorder,
	txManager TransactionManager,
	shop domain.ShopHours,
	defaultStatus domain.AppointmentStatus,
	logger Logger,
) *UseCase {
	if defaultStatus != domain.StatusPending {
		defaultStatus = domain.StatusConfirmed
	}
	return &UseCase{
		catalogRepo:     catalogRepo,
		absenceRepo:     absenceRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		cache:           cache,
		metrics:         metrics,
		txManager:       txManager,
		shop:            shop,
		defaultStatus:   defaultStatus,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи.
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции
// под блокировкой строк барберов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	result, err := uc.execute(ctx, req)
	uc.record(err)
	return result, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := uc.shop.Day(req.Date)

	startAt, err := req.StartTime.On(date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if !startAt.After(now) {
		uc.logger.Warn("CreateAppointment: start %s is not in the future", startAt.Format(time.RFC3339))
		return nil, ErrStartInPast
	}

	// 2. Услуга
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 3. Интервал записи внутри часов работы и на сетке
	slot := domain.Interval{
		Start: startAt,
		End:   startAt.Add(time.Duration(service.DurationMinutes) * time.Minute),
	}

	shopWindow, err := uc.shop.WindowOn(date)
	if err != nil {
		uc.logger.Error("CreateAppointment: invalid shop hours: %v", err)
		return nil, fmt.Errorf("%w: invalid shop hours: %v", ErrInternal, err)
	}

	if err := validateSlot(slot, shopWindow, uc.shop.SlotStep); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 4. Повторная проверка и вставка атомарно относительно других записей к тем же барберам
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		candidates, err := uc.lockCandidates(txCtx, req.Barber)
		if err != nil {
			return err
		}

		unavailable, err := uc.unavailableBarbers(txCtx, date, shopWindow, slot, candidates)
		if err != nil {
			return err
		}

		barberID, ok := domain.PickFirstFreeBarber(candidates, unavailable)
		if !ok {
			uc.logger.Warn("CreateAppointment: no free barber for %s-%s",
				slot.Start.Format(domain.TimeFormat), slot.End.Format(domain.TimeFormat))
			return ErrSlotNotAvailable
		}

		appointment := &domain.Appointment{
			ClientID:     req.ClientID,
			BarberID:     barberID,
			ServiceID:    service.ID,
			StartAt:      slot.Start,
			EndAt:        slot.End,
			Status:       uc.defaultStatus,
			ServiceName:  service.Name,
			ServicePrice: service.Price,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			return uc.storageError("failed to create appointment", err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, pgerrors.ErrSerializationFailure) {
			uc.logger.Warn("CreateAppointment: concurrent commit detected: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
		if !errors.Is(err, domain.ErrValidation) && !errors.Is(err, domain.ErrConflict) && !errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, date); err != nil {
			uc.logger.Warn("CreateAppointment: failed to invalidate slot cache for %s: %v", date.Format(domain.DateFormat), err)
		}
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d, barber=%d, start=%s",
		result.ID, result.BarberID, result.StartAt.Format(time.RFC3339))

	return &Response{
		ID:           result.ID,
		ClientID:     result.ClientID,
		BarberID:     result.BarberID,
		ServiceID:    result.ServiceID,
		StartAt:      result.StartAt,
		EndAt:        result.EndAt,
		Status:       result.Status,
		ServiceName:  result.ServiceName,
		ServicePrice: result.ServicePrice,
		CreatedAt:    result.CreatedAt,
	}, nil
}

// lockCandidates блокирует строки барберов и возвращает кандидатов в порядке возрастания ID
func (uc *UseCase) lockCandidates(ctx context.Context, choice domain.BarberChoice) ([]int64, error) {
	switch c := choice.(type) {
	case domain.SpecificBarber:
		barber, err := uc.catalogRepo.GetBarber(ctx, c.BarberID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrBarberNotFound) {
				uc.logger.Warn("CreateAppointment: barber id=%d not found", c.BarberID)
				return nil, ErrBarberNotFound
			}
			return nil, uc.storageError("failed to lock barber", err)
		}
		if !barber.Active {
			uc.logger.Warn("CreateAppointment: barber id=%d is inactive", c.BarberID)
			return nil, ErrBarberNotFound
		}
		return []int64{barber.ID}, nil

	default:
		barbers, err := uc.catalogRepo.ListActiveBarbers(ctx)
		if err != nil {
			return nil, uc.storageError("failed to lock barbers", err)
		}
		ids := make([]int64, 0, len(barbers))
		for _, b := range barbers {
			ids = append(ids, b.ID)
		}
		return ids, nil
	}
}

// unavailableBarbers отмечает кандидатов, которые отсутствуют в этот день,
// не работают на всем интервале или имеют пересекающуюся активную запись
func (uc *UseCase) unavailableBarbers(ctx context.Context, date time.Time, shopWindow, slot domain.Interval, candidates []int64) (map[int64]bool, error) {
	unavailable := make(map[int64]bool, len(candidates))
	if len(candidates) == 0 {
		return unavailable, nil
	}

	absent, err := uc.absenceRepo.AbsentBarberIDs(ctx, date, candidates)
	if err != nil {
		return nil, uc.storageError("failed to get absences", err)
	}

	schedules, err := uc.scheduleRepo.GetByBarbers(ctx, candidates)
	if err != nil {
		return nil, uc.storageError("failed to get working hours", err)
	}

	overlapping, err := uc.appointmentRepo.ListOverlapping(ctx, candidates, slot)
	if err != nil {
		return nil, uc.storageError("failed to get overlapping appointments", err)
	}

	for _, a := range overlapping {
		unavailable[a.BarberID] = true
	}

	for _, id := range candidates {
		if absent[id] {
			unavailable[id] = true
			continue
		}
		window, ok := schedules[id].WorkWindow(date, shopWindow)
		if !ok || !window.Contains(slot) {
			unavailable[id] = true
		}
	}

	return unavailable, nil
}

// storageError превращает конфликт хранилища в ErrSlotNotAvailable, остальное в ErrInternal
func (uc *UseCase) storageError(op string, err error) error {
	if errors.Is(err, appointmentRepo.ErrOverlap) || errors.Is(err, pgerrors.ErrSerializationFailure) {
		uc.logger.Warn("CreateAppointment: %s: conflict: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrSlotNotAvailable, op, err)
	}
	uc.logger.Error("CreateAppointment: %s: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

func (uc *UseCase) record(err error) {
	if uc.metrics == nil {
		return
	}
	switch {
	case err == nil:
		uc.metrics.RecordAppointmentCommit(OutcomeCreated)
	case errors.Is(err, domain.ErrConflict):
		uc.metrics.RecordAppointmentCommit(OutcomeConflict)
	case errors.Is(err, domain.ErrValidation):
		uc.metrics.RecordAppointmentCommit(OutcomeRejected)
	default:
		uc.metrics.RecordAppointmentCommit(OutcomeError)
	}
}
