package absences

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/absence"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberService/internal/service/absences/models"
)

type Service struct {
	repo         AbsenceRepository
	barbers      BarberRepository
	cache        SlotCache
	shop         domain.ShopHours
	timeProvider TimeProvider
	logger       Logger
}

func NewService(repo AbsenceRepository, barbers BarberRepository, cache SlotCache, shop domain.ShopHours, logger Logger) *Service {
	if shop.Location == nil {
		shop.Location = time.UTC
	}
	return &Service{
		repo:         repo,
		barbers:      barbers,
		cache:        cache,
		shop:         shop,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Register регистрирует отсутствие барбера на дату.
// Регистрировать может только сам барбер, дата не раньше сегодняшней
func (s *Service) Register(ctx context.Context, actorID, barberID int64, req models.CreateAbsenceRequest) (*models.AbsenceResponse, error) {
	if actorID != barberID {
		s.logger.Warn("Register: user %d tried to register absence for barber %d", actorID, barberID)
		return nil, ErrAccessDenied
	}

	date, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(req.Date), s.shop.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	if date.Before(s.shop.Today(s.timeProvider.Now())) {
		return nil, ErrDateInPast
	}

	reason := req.Reason
	if reason != nil {
		trimmed := strings.TrimSpace(*reason)
		if utf8.RuneCountInString(trimmed) > domain.MaxAbsenceReasonLength {
			return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxAbsenceReasonLength)
		}
		if trimmed == "" {
			reason = nil
		} else {
			reason = &trimmed
		}
	}

	barber, err := s.barbers.GetBarber(ctx, barberID)
	if err != nil {
		if errors.Is(err, catalog.ErrBarberNotFound) {
			return nil, ErrBarberNotFound
		}
		s.logger.Error("Register: failed to get barber %d: %v", barberID, err)
		return nil, fmt.Errorf("%w: Register - get barber: %v", ErrInternal, err)
	}
	if !barber.Active {
		return nil, ErrBarberNotFound
	}

	created, err := s.repo.Create(ctx, &domain.Absence{
		BarberID: barberID,
		Date:     date,
		Reason:   reason,
	})
	if err != nil {
		if errors.Is(err, absence.ErrDuplicateAbsence) {
			s.logger.Warn("Register: barber %d already absent on %s", barberID, req.Date)
			return nil, ErrDuplicateAbsence
		}
		s.logger.Error("Register: failed to create absence: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}
	created.BarberName = barber.Name
	created.BarberActive = barber.Active

	s.invalidate(ctx, "Register", date)
	s.logger.Info("Register: barber %d absent on %s, id=%d", barberID, date.Format(domain.DateFormat), created.ID)

	return models.FromDomainAbsence(created), nil
}

// Remove удаляет отсутствие. Удалить может только владелец
func (s *Service) Remove(ctx context.Context, actorID, absenceID int64) error {
	existing, err := s.repo.GetByID(ctx, absenceID)
	if err != nil {
		if errors.Is(err, absence.ErrAbsenceNotFound) {
			return ErrAbsenceNotFound
		}
		s.logger.Error("Remove: failed to get absence %d: %v", absenceID, err)
		return fmt.Errorf("%w: Remove - get absence: %v", ErrInternal, err)
	}

	if existing.BarberID != actorID {
		s.logger.Warn("Remove: user %d tried to remove absence %d of barber %d", actorID, absenceID, existing.BarberID)
		return ErrAccessDenied
	}

	if err := s.repo.Delete(ctx, absenceID); err != nil {
		if errors.Is(err, absence.ErrAbsenceNotFound) {
			return ErrAbsenceNotFound
		}
		s.logger.Error("Remove: failed to delete absence %d: %v", absenceID, err)
		return fmt.Errorf("%w: Remove - delete absence: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Remove", existing.Date)
	s.logger.Info("Remove: absence %d removed by barber %d", absenceID, actorID)

	return nil
}

// List возвращает отсутствия барбера начиная с from (по умолчанию с сегодняшнего дня)
func (s *Service) List(ctx context.Context, barberID int64, from *time.Time) (*models.AbsenceListResponse, error) {
	start := s.shop.Today(s.timeProvider.Now())
	if from != nil {
		start = s.shop.Day(*from)
	}

	list, err := s.repo.ListFrom(ctx, start, &barberID)
	if err != nil {
		s.logger.Error("List: failed to list absences for barber %d: %v", barberID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAbsenceList(list), nil
}

func (s *Service) invalidate(ctx context.Context, op string, date time.Time) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, s.shop.Day(date)); err != nil {
		s.logger.Warn("%s: failed to invalidate slot cache: %v", op, err)
	}
}
