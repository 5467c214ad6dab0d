package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-BarberService/internal/service/schedule/models"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

type Service struct {
	repo      ScheduleRepository
	barbers   BarberRepository
	cache     SlotCache
	txManager TransactionManager
	slotStep  time.Duration
	logger    Logger
}

func NewService(repo ScheduleRepository, barbers BarberRepository, cache SlotCache, txManager TransactionManager, slotStep time.Duration, logger Logger) *Service {
	if slotStep <= 0 {
		slotStep = domain.DefaultSlotStep
	}
	return &Service{
		repo:      repo,
		barbers:   barbers,
		cache:     cache,
		txManager: txManager,
		slotStep:  slotStep,
		logger:    logger,
	}
}

// Get возвращает недельное расписание барбера
func (s *Service) Get(ctx context.Context, barberID int64) (*models.WorkingHoursResponse, error) {
	if err := s.ensureBarber(ctx, "Get", barberID); err != nil {
		return nil, err
	}

	days, err := s.repo.GetByBarber(ctx, barberID)
	if err != nil {
		s.logger.Error("Get: failed to get working hours for barber %d: %v", barberID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(barberID, days), nil
}

// Replace заменяет расписание барбера целиком. Менять может только сам барбер
func (s *Service) Replace(ctx context.Context, actorID, barberID int64, req models.ReplaceWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	if actorID != barberID {
		s.logger.Warn("Replace: user %d tried to change schedule of barber %d", actorID, barberID)
		return nil, ErrAccessDenied
	}

	days, err := s.toDomain(barberID, req.Days)
	if err != nil {
		return nil, err
	}

	if err := s.ensureBarber(ctx, "Replace", barberID); err != nil {
		return nil, err
	}

	var saved domain.WeeklySchedule
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.repo.Replace(txCtx, barberID, days)
		return err
	})
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateWeekday) {
			return nil, fmt.Errorf("%w: duplicate weekday", ErrInvalidInput)
		}
		s.logger.Error("Replace: failed to save working hours for barber %d: %v", barberID, err)
		return nil, fmt.Errorf("%w: Replace - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			s.logger.Warn("Replace: failed to invalidate slot cache: %v", err)
		}
	}

	s.logger.Info("Replace: barber %d now works %d days a week", barberID, len(saved))

	return models.FromDomainSchedule(barberID, saved), nil
}

func (s *Service) ensureBarber(ctx context.Context, op string, barberID int64) error {
	if _, err := s.barbers.GetBarber(ctx, barberID); err != nil {
		if errors.Is(err, catalog.ErrBarberNotFound) {
			return ErrBarberNotFound
		}
		s.logger.Error("%s: failed to get barber %d: %v", op, barberID, err)
		return fmt.Errorf("%w: %s - get barber: %v", ErrInternal, op, err)
	}
	return nil
}

// toDomain проверяет дни расписания и сортирует их по дню недели
func (s *Service) toDomain(barberID int64, days []models.WorkingDay) (domain.WeeklySchedule, error) {
	step := int(s.slotStep / time.Minute)
	seen := make(map[int]bool, len(days))
	result := make(domain.WeeklySchedule, 0, len(days))

	for _, day := range days {
		if day.Weekday < int(time.Sunday) || day.Weekday > int(time.Saturday) {
			return nil, fmt.Errorf("%w: weekday must be between 0 and 6, got %d", ErrInvalidInput, day.Weekday)
		}
		if seen[day.Weekday] {
			return nil, fmt.Errorf("%w: weekday %d listed twice", ErrInvalidInput, day.Weekday)
		}
		seen[day.Weekday] = true

		for _, t := range []types.TimeString{day.StartTime, day.EndTime} {
			if err := t.Validate(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if !t.IsOnGrid(step) {
				return nil, fmt.Errorf("%w: %s is not on the %d-minute grid", ErrInvalidInput, t, step)
			}
		}
		if !day.StartTime.IsBefore(day.EndTime) {
			return nil, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidInput, day.StartTime, day.EndTime)
		}

		result = append(result, domain.WorkingHours{
			BarberID:  barberID,
			Weekday:   time.Weekday(day.Weekday),
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Weekday < result[j].Weekday })
	return result, nil
}
