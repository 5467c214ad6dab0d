package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberService/internal/integrations/userservice"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberService/pkg/pagination"
)

type Service struct {
	repo             AppointmentRepository
	users            UserServiceClient
	cache            SlotCache
	txManager        TransactionManager
	shop             domain.ShopHours
	cancellationLead time.Duration
	historyPageSize  int
	timeProvider     TimeProvider
	logger           Logger
}

func NewService(
	repo AppointmentRepository,
	users UserServiceClient,
	cache SlotCache,
	txManager TransactionManager,
	shop domain.ShopHours,
	cancellationLead time.Duration,
	historyPageSize int,
	logger Logger,
) *Service {
	if cancellationLead <= 0 {
		cancellationLead = domain.DefaultCancellationLead
	}
	if historyPageSize <= 0 {
		historyPageSize = domain.DefaultHistoryPageSize
	}
	if shop.Location == nil {
		shop.Location = time.UTC
	}
	return &Service{
		repo:             repo,
		users:            users,
		cache:            cache,
		txManager:        txManager,
		shop:             shop,
		cancellationLead: cancellationLead,
		historyPageSize:  historyPageSize,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// actorRole кто может менять статус записи
type actorRole int

const (
	roleClient actorRole = iota
	roleBarber
)

// transitionPolicy дополнительная проверка перед сменой статуса
type transitionPolicy func(a *domain.Appointment, now time.Time) error

// GetByID возвращает запись, если пользователь её клиент или барбер
func (s *Service) GetByID(ctx context.Context, actorID, id int64) (*models.AppointmentResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: failed to get appointment %d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if a.ClientID != actorID && a.BarberID != actorID {
		s.logger.Warn("GetByID: user %d has no access to appointment %d", actorID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(a, s.shop.Location), nil
}

// Cancel отменяет запись клиентом. Повторная отмена возвращает предупреждение без записи в БД
func (s *Service) Cancel(ctx context.Context, actorID, id int64) (*models.StatusChangeResponse, error) {
	return s.transition(ctx, "Cancel", actorID, id, roleClient, domain.StatusCancelled, s.cancellationPolicy)
}

// Complete отмечает запись выполненной. Доступно только барберу записи
func (s *Service) Complete(ctx context.Context, actorID, id int64) (*models.StatusChangeResponse, error) {
	return s.transition(ctx, "Complete", actorID, id, roleBarber, domain.StatusCompleted, nil)
}

// Confirm подтверждает ожидающую запись
func (s *Service) Confirm(ctx context.Context, actorID, id int64) (*models.StatusChangeResponse, error) {
	return s.transition(ctx, "Confirm", actorID, id, roleBarber, domain.StatusConfirmed, nil)
}

// MarkNoShow отмечает неявку клиента
func (s *Service) MarkNoShow(ctx context.Context, actorID, id int64) (*models.StatusChangeResponse, error) {
	return s.transition(ctx, "MarkNoShow", actorID, id, roleBarber, domain.StatusNoShow, nil)
}

func (s *Service) cancellationPolicy(a *domain.Appointment, now time.Time) error {
	if !now.Before(a.StartAt.Add(-s.cancellationLead)) {
		return ErrTooLateToCancel
	}
	return nil
}

// transition общий сценарий смены статуса: блокировка строки, проверка прав,
// проверка перехода и политики, обновление с guard по текущему статусу
func (s *Service) transition(
	ctx context.Context,
	op string,
	actorID, id int64,
	role actorRole,
	to domain.AppointmentStatus,
	policy transitionPolicy,
) (*models.StatusChangeResponse, error) {
	var (
		result  *models.StatusChangeResponse
		changed *domain.Appointment
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		a, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointment.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: %s - get appointment: %v", ErrInternal, op, err)
		}

		owner := a.ClientID
		if role == roleBarber {
			owner = a.BarberID
		}
		if owner != actorID {
			s.logger.Warn("%s: user %d is not allowed to change appointment %d", op, actorID, id)
			return ErrAccessDenied
		}

		// Политика проверяется до идемпотентной ветки: поздняя повторная отмена тоже нарушение
		now := s.timeProvider.Now()
		if policy != nil {
			if err := policy(a, now); err != nil {
				return err
			}
		}

		// Повторная отмена не ошибка: клиент получает предупреждение
		if a.Status == domain.StatusCancelled && to == domain.StatusCancelled {
			warning := models.WarningAlreadyCancelled
			result = &models.StatusChangeResponse{ID: a.ID, Status: string(a.Status), Warning: &warning}
			return nil
		}

		if !a.Status.CanTransitionTo(to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
		}

		if err := s.repo.UpdateStatus(txCtx, a.ID, a.Status, to, now); err != nil {
			if errors.Is(err, appointment.ErrStatusChanged) {
				return ErrConcurrentUpdate
			}
			return fmt.Errorf("%w: %s - update status: %v", ErrInternal, op, err)
		}

		changed = a
		result = &models.StatusChangeResponse{ID: a.ID, Status: string(to)}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("%s: appointment %d: %v", op, id, err)
		} else {
			s.logger.Warn("%s: appointment %d rejected: %v", op, id, err)
		}
		return nil, err
	}

	if changed != nil {
		s.logger.Info("%s: appointment %d moved to %s by user %d", op, id, to, actorID)
		// Запись вне активных статусов освобождает время барбера
		if !to.IsActive() && s.cache != nil {
			if err := s.cache.Invalidate(ctx, s.shop.Today(changed.StartAt)); err != nil {
				s.logger.Warn("%s: failed to invalidate slot cache: %v", op, err)
			}
		}
	} else {
		s.logger.Info("%s: appointment %d already in status %s", op, id, to)
	}

	return result, nil
}

// ListForClient возвращает записи клиента, новые первыми
func (s *Service) ListForClient(ctx context.Context, actorID, clientID int64) (*models.AppointmentListResponse, error) {
	if actorID != clientID {
		s.logger.Warn("ListForClient: user %d requested appointments of client %d", actorID, clientID)
		return nil, ErrAccessDenied
	}

	list, err := s.repo.List(ctx, domain.AppointmentFilter{
		ClientID:    &clientID,
		NewestFirst: true,
	})
	if err != nil {
		s.logger.Error("ListForClient: failed to list appointments for client %d: %v", clientID, err)
		return nil, fmt.Errorf("%w: ListForClient - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(list, s.shop.Location), nil
}

// Agenda возвращает активные записи барбера на день с данными клиентов
func (s *Service) Agenda(ctx context.Context, actorID, barberID int64, date time.Time) (*models.AgendaResponse, error) {
	if actorID != barberID {
		s.logger.Warn("Agenda: user %d requested agenda of barber %d", actorID, barberID)
		return nil, ErrAccessDenied
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	day := s.shop.Day(date)
	next := day.AddDate(0, 0, 1)

	list, err := s.repo.List(ctx, domain.AppointmentFilter{
		BarberIDs: []int64{barberID},
		From:      &day,
		To:        &next,
		Statuses:  domain.ActiveStatuses,
	})
	if err != nil {
		s.logger.Error("Agenda: failed to list appointments for barber %d: %v", barberID, err)
		return nil, fmt.Errorf("%w: Agenda - repository error: %v", ErrInternal, err)
	}

	resp := &models.AgendaResponse{
		BarberID:     barberID,
		Date:         day.Format(domain.DateFormat),
		Appointments: make([]models.AgendaItem, 0, len(list)),
	}

	clients := make(map[int64]*userservice.User)
	for _, a := range list {
		client, ok := clients[a.ClientID]
		if !ok {
			client = s.lookupClient(ctx, a.ClientID)
			clients[a.ClientID] = client
		}

		item := models.AgendaItem{
			ID:              a.ID,
			ClientID:        a.ClientID,
			ServiceName:     a.ServiceName,
			StartTime:       a.StartAt.In(s.shop.Location).Format(domain.TimeFormat),
			EndTime:         a.EndAt.In(s.shop.Location).Format(domain.TimeFormat),
			DurationMinutes: int(a.Duration() / time.Minute),
			Status:          string(a.Status),
		}
		if client != nil {
			item.ClientName = client.Name
			item.ClientEmail = client.Email
		}
		resp.Appointments = append(resp.Appointments, item)
	}

	return resp, nil
}

// lookupClient данные клиента или nil, если UserService недоступен
func (s *Service) lookupClient(ctx context.Context, clientID int64) *userservice.User {
	user, err := s.users.GetUserWithGracefulDegradation(ctx, clientID)
	if err != nil {
		s.logger.Warn("Agenda: client %d details unavailable: %v", clientID, err)
		return nil
	}
	return user
}

// History возвращает завершённые записи барбера постранично, новые первыми
func (s *Service) History(ctx context.Context, actorID, barberID int64, params pagination.Params) (*models.HistoryResponse, error) {
	if actorID != barberID {
		s.logger.Warn("History: user %d requested history of barber %d", actorID, barberID)
		return nil, ErrAccessDenied
	}

	params = params.Normalize(s.historyPageSize)
	endOfToday := s.shop.Today(s.timeProvider.Now()).AddDate(0, 0, 1)

	list, total, err := s.repo.ListPage(ctx, domain.AppointmentFilter{
		BarberIDs:   []int64{barberID},
		To:          &endOfToday,
		Statuses:    domain.TerminalStatuses,
		NewestFirst: true,
	}, params)
	if err != nil {
		s.logger.Error("History: failed to list history for barber %d: %v", barberID, err)
		return nil, fmt.Errorf("%w: History - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPage(pagination.NewPage(list, params, total), s.shop.Location), nil
}
