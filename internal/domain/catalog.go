package domain

// Service услуга барбершопа
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
	Active          bool
}

// Barber сотрудник с ролью барбера
type Barber struct {
	ID     int64
	Name   string
	Active bool
}
