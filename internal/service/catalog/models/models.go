package models

import "github.com/m04kA/SMC-BarberService/internal/domain"

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// BarberResponse барбер каталога
type BarberResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// BarberListResponse список барберов
type BarberListResponse struct {
	Barbers []BarberResponse `json:"barbers"`
}

// FromDomainServices конвертирует список услуг в DTO
func FromDomainServices(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}
	return resp
}

// FromDomainBarbers конвертирует список барберов в DTO
func FromDomainBarbers(barbers []*domain.Barber) *BarberListResponse {
	resp := &BarberListResponse{Barbers: make([]BarberResponse, 0, len(barbers))}
	for _, b := range barbers {
		resp.Barbers = append(resp.Barbers, BarberResponse{ID: b.ID, Name: b.Name})
	}
	return resp
}
