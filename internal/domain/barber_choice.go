package domain

// BarberChoice выбор барбера при записи: конкретный барбер или любой свободный
type BarberChoice interface {
	isBarberChoice()
}

// SpecificBarber запись к конкретному барберу
type SpecificBarber struct {
	BarberID int64
}

// AnyBarber запись к любому свободному барберу
type AnyBarber struct{}

func (SpecificBarber) isBarberChoice() {}
func (AnyBarber) isBarberChoice()      {}

// NewBarberChoice строит выбор из необязательного ID (nil или 0 - любой барбер)
func NewBarberChoice(barberID *int64) BarberChoice {
	if barberID == nil || *barberID == 0 {
		return AnyBarber{}
	}
	return SpecificBarber{BarberID: *barberID}
}

// PickFirstFreeBarber возвращает барбера с наименьшим ID среди candidates, который не занят
func PickFirstFreeBarber(candidates []int64, busy map[int64]bool) (int64, bool) {
	var (
		picked int64
		found  bool
	)
	for _, id := range candidates {
		if busy[id] {
			continue
		}
		if !found || id < picked {
			picked = id
			found = true
		}
	}
	return picked, found
}
