package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarberService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string   `json:"date"`
	ServiceID int64    `json:"serviceId"`
	BarberID  *int64   `json:"barberId,omitempty"`
	Slots     []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response, barberID *int64) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		ServiceID: resp.ServiceID,
		BarberID:  barberID,
		Slots:     slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров.
// Пустой barberId означает любого свободного барбера
func ToUseCaseRequest(serviceID int64, dateStr, barberIDStr string, loc *time.Location) (*getAvailableSlots.Request, *int64, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, nil, err
	}

	var barberID *int64
	if barberIDStr != "" {
		id, err := strconv.ParseInt(barberIDStr, 10, 64)
		if err != nil {
			return nil, nil, err
		}
		barberID = &id
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
		Barber:    domain.NewBarberChoice(barberID),
	}, barberID, nil
}
