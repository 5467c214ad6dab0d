package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID  int64               // ID клиента (из X-User-ID)
	ServiceID int64               // ID услуги
	Barber    domain.BarberChoice // Конкретный барбер или любой свободный
	Date      time.Time           // Дата записи (без времени)
	StartTime types.TimeString    // Время начала HH:MM
}

// Response модель созданной записи
type Response struct {
	ID           int64
	ClientID     int64
	BarberID     int64
	ServiceID    int64
	StartAt      time.Time
	EndAt        time.Time
	Status       domain.AppointmentStatus
	ServiceName  string
	ServicePrice float64
	CreatedAt    time.Time
}
