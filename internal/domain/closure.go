package domain

import (
	"strings"
	"time"
)

// ClosureClassification классификация дня в календаре закрытий
type ClosureClassification string

const (
	ClosureOpen    ClosureClassification = "open"
	ClosurePartial ClosureClassification = "partial"
	ClosureFull    ClosureClassification = "full"
)

// AbsentBarber барбер, отсутствующий в день закрытия
type AbsentBarber struct {
	ID   int64
	Name string
}

// ClosureDay вычисляемый день календаря закрытий, не хранится
type ClosureDay struct {
	Date           time.Time
	Classification ClosureClassification
	AbsentBarbers  []AbsentBarber
	Label          string
}

// ClassifyClosure: full, если различных отсутствующих барберов не меньше числа активных
func ClassifyClosure(absent, activeTotal int) ClosureClassification {
	switch {
	case absent >= activeTotal:
		return ClosureFull
	case absent == 0:
		return ClosureOpen
	default:
		return ClosurePartial
	}
}

// ClosureLabel человекочитаемая подпись дня
func ClosureLabel(classification ClosureClassification, absent []AbsentBarber) string {
	switch classification {
	case ClosureFull:
		return "ЗАКРЫТО: все барберы отсутствуют"
	case ClosurePartial:
		names := make([]string, 0, len(absent))
		for _, b := range absent {
			names = append(names, b.Name)
		}
		return "Частичное отсутствие: " + strings.Join(names, ", ")
	default:
		return "Открыто"
	}
}
