package get_closure_calendar

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Request модель запроса календаря закрытий
type Request struct {
	From *time.Time // Начальная дата; по умолчанию сегодня минус глубина просмотра
}

// Response модель календаря закрытий. Содержит только дни с отсутствиями
type Response struct {
	From        time.Time
	ActiveCount int
	Days        []domain.ClosureDay
}
