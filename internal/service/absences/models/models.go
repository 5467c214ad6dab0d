package models

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// CreateAbsenceRequest запрос на регистрацию отсутствия
type CreateAbsenceRequest struct {
	Date   string  `json:"date"` // "2025-10-15"
	Reason *string `json:"reason,omitempty"`
}

// AbsenceResponse ответ с данными отсутствия
type AbsenceResponse struct {
	ID         int64     `json:"id"`
	BarberID   int64     `json:"barberId"`
	BarberName string    `json:"barberName,omitempty"`
	Date       string    `json:"date"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AbsenceListResponse ответ со списком отсутствий
type AbsenceListResponse struct {
	Absences []AbsenceResponse `json:"absences"`
}

// FromDomainAbsence конвертирует domain модель в DTO
func FromDomainAbsence(a *domain.Absence) *AbsenceResponse {
	if a == nil {
		return nil
	}

	return &AbsenceResponse{
		ID:         a.ID,
		BarberID:   a.BarberID,
		BarberName: a.BarberName,
		Date:       a.Date.Format(domain.DateFormat),
		Reason:     a.Reason,
		CreatedAt:  a.CreatedAt,
	}
}

// FromDomainAbsenceList конвертирует список domain моделей в DTO
func FromDomainAbsenceList(list []*domain.Absence) *AbsenceListResponse {
	resp := &AbsenceListResponse{
		Absences: make([]AbsenceResponse, 0, len(list)),
	}
	for _, a := range list {
		resp.Absences = append(resp.Absences, *FromDomainAbsence(a))
	}
	return resp
}
