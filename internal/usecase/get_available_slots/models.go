package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	ServiceID int64               // ID услуги
	Date      time.Time           // Дата (без времени)
	Barber    domain.BarberChoice // Конкретный барбер или любой
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date      time.Time
	ServiceID int64
	Slots     []types.TimeString // Время начала слотов по возрастанию
}
