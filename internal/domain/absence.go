package domain

import "time"

// Absence однодневное отсутствие барбера. Уникально по (BarberID, Date)
type Absence struct {
	ID        int64
	BarberID  int64
	Date      time.Time // Только дата, без времени
	Reason    *string
	CreatedAt time.Time

	// Заполняется при выборке с join на barbers
	BarberName   string
	BarberActive bool
}
