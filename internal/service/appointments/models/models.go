package models

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/pagination"
)

// WarningAlreadyCancelled предупреждение при повторной отмене
const WarningAlreadyCancelled = "Запись уже отменена"

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	BarberID        int64   `json:"barberId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	EndTime         string  `json:"endTime"`   // "10:30"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// StatusChangeResponse результат смены статуса
type StatusChangeResponse struct {
	ID      int64   `json:"id"`
	Status  string  `json:"status"`
	Warning *string `json:"warning,omitempty"`
}

// AgendaItem запись в агенде барбера
type AgendaItem struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	ClientName      string `json:"clientName"`
	ClientEmail     string `json:"clientEmail"`
	ServiceName     string `json:"serviceName"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// AgendaResponse агенда барбера на день
type AgendaResponse struct {
	BarberID     int64        `json:"barberId"`
	Date         string       `json:"date"`
	Appointments []AgendaItem `json:"appointments"`
}

// HistoryResponse страница истории барбера
type HistoryResponse struct {
	Items    []AppointmentResponse `json:"items"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"pageSize"`
	Total    int                   `json:"total"`
	HasNext  bool                  `json:"hasNext"`
	HasPrev  bool                  `json:"hasPrev"`
}

// FromDomainAppointment конвертирует domain модель в DTO. Время приводится к часовому поясу loc
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}

	start := a.StartAt.In(loc)
	end := a.EndAt.In(loc)

	resp := &AppointmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		BarberID:        a.BarberID,
		ServiceID:       a.ServiceID,
		Date:            start.Format(domain.DateFormat),
		StartTime:       start.Format(domain.TimeFormat),
		EndTime:         end.Format(domain.TimeFormat),
		DurationMinutes: int(a.Duration() / time.Minute),
		Status:          string(a.Status),
		ServiceName:     a.ServiceName,
		ServicePrice:    a.ServicePrice,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelled := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment, loc *time.Location) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if item := FromDomainAppointment(a, loc); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}

// FromDomainPage конвертирует страницу domain моделей в DTO
func FromDomainPage(page pagination.Page[*domain.Appointment], loc *time.Location) *HistoryResponse {
	converted := pagination.Map(page, func(a *domain.Appointment) AppointmentResponse {
		return *FromDomainAppointment(a, loc)
	})

	return &HistoryResponse{
		Items:    converted.Items,
		Page:     converted.Page,
		PageSize: converted.PageSize,
		Total:    converted.Total,
		HasNext:  converted.HasNext,
		HasPrev:  converted.HasPrev,
	}
}
