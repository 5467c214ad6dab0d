package get_closure_calendar

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// UseCase use case для построения календаря закрытий барбершопа
type UseCase struct {
	absenceRepo  AbsenceRepository
	barberRepo   BarberRepository
	shop         domain.ShopHours
	lookbackDays int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	absenceRepo AbsenceRepository,
	barberRepo BarberRepository,
	shop domain.ShopHours,
	lookbackDays int,
	logger Logger,
) *UseCase {
	if lookbackDays < 0 {
		lookbackDays = domain.DefaultClosureLookback
	}
	return &UseCase{
		absenceRepo:  absenceRepo,
		barberRepo:   barberRepo,
		shop:         shop,
		lookbackDays: lookbackDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute строит календарь: день закрыт полностью, если отсутствующих активных барберов
// не меньше, чем активных барберов сейчас
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	from := uc.shop.Today(uc.timeProvider.Now()).AddDate(0, 0, -uc.lookbackDays)
	if req != nil && req.From != nil {
		from = uc.shop.Day(*req.From)
	}

	uc.logger.Info("GetClosureCalendar: from=%s", from.Format(domain.DateFormat))

	absences, err := uc.absenceRepo.ListFrom(ctx, from, nil)
	if err != nil {
		uc.logger.Error("GetClosureCalendar: failed to list absences: %v", err)
		return nil, fmt.Errorf("%w: failed to list absences: %v", ErrInternal, err)
	}

	activeCount, err := uc.barberRepo.CountActiveBarbers(ctx)
	if err != nil {
		uc.logger.Error("GetClosureCalendar: failed to count active barbers: %v", err)
		return nil, fmt.Errorf("%w: failed to count active barbers: %v", ErrInternal, err)
	}

	days := aggregate(absences, activeCount, uc.shop)

	uc.logger.Info("GetClosureCalendar: %d days with absences, %d active barbers", len(days), activeCount)

	return &Response{
		From:        from,
		ActiveCount: activeCount,
		Days:        days,
	}, nil
}

// aggregate группирует отсутствия по дате (по возрастанию) и классифицирует каждый день
func aggregate(absences []*domain.Absence, activeCount int, shop domain.ShopHours) []domain.ClosureDay {
	days := make([]domain.ClosureDay, 0)
	index := make(map[string]int)
	seen := make(map[string]map[int64]bool)

	for _, a := range absences {
		date := shop.Day(a.Date)
		key := date.Format(domain.DateFormat)

		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			seen[key] = make(map[int64]bool)
			days = append(days, domain.ClosureDay{Date: date, AbsentBarbers: []domain.AbsentBarber{}})
		}

		if seen[key][a.BarberID] {
			continue
		}
		seen[key][a.BarberID] = true
		days[i].AbsentBarbers = append(days[i].AbsentBarbers, domain.AbsentBarber{ID: a.BarberID, Name: a.BarberName})
	}

	for i := range days {
		days[i].Classification = domain.ClassifyClosure(len(days[i].AbsentBarbers), activeCount)
		days[i].Label = domain.ClosureLabel(days[i].Classification, days[i].AbsentBarbers)
	}

	return days
}
