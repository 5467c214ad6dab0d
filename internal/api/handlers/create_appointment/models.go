package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	createAppointment "github.com/m04kA/SMC-BarberService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID int64            `json:"serviceId"`
	BarberID  *int64           `json:"barberId,omitempty"` // пусто - любой свободный барбер
	Date      string           `json:"date"`               // "2025-10-15"
	StartTime types.TimeString `json:"startTime"`          // "10:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID           int64     `json:"id"`
	ClientID     int64     `json:"clientId"`
	BarberID     int64     `json:"barberId"`
	ServiceID    int64     `json:"serviceId"`
	Date         string    `json:"date"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	Status       string    `json:"status"`
	ServiceName  string    `json:"serviceName"`
	ServicePrice float64   `json:"servicePrice"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64, loc *time.Location) (*createAppointment.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:  clientID,
		ServiceID: r.ServiceID,
		Barber:    domain.NewBarberChoice(r.BarberID),
		Date:      date,
		StartTime: r.StartTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response, loc *time.Location) *AppointmentResponse {
	start := resp.StartAt.In(loc)
	return &AppointmentResponse{
		ID:           resp.ID,
		ClientID:     resp.ClientID,
		BarberID:     resp.BarberID,
		ServiceID:    resp.ServiceID,
		Date:         start.Format(domain.DateFormat),
		StartTime:    start.Format(domain.TimeFormat),
		EndTime:      resp.EndAt.In(loc).Format(domain.TimeFormat),
		Status:       string(resp.Status),
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		CreatedAt:    resp.CreatedAt,
	}
}
