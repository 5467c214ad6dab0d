package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// walkSlots перебирает кандидатов с шагом step от начала окна, пока candidate+duration <= window.End.
// При коллизии с занятым интервалом указатель переходит на его конец, округленный вверх до сетки.
// Кандидаты не позже now отбрасываются. busy должен быть отсортирован по началу
func walkSlots(window domain.Interval, duration, step time.Duration, busy []domain.Interval, now time.Time) []time.Time {
	slots := make([]time.Time, 0)
	if duration <= 0 || step <= 0 {
		return slots
	}

	candidate := window.Start
	for !candidate.Add(duration).After(window.End) {
		next := candidate.Add(step)

		collision, ok := firstCollision(candidate, candidate.Add(duration), busy)
		if ok {
			if jump := roundUpToGrid(window.Start, collision.End, step); jump.After(candidate) {
				next = jump
			}
		} else if candidate.After(now) {
			slots = append(slots, candidate)
		}

		candidate = next
	}

	return slots
}

// firstCollision первый занятый интервал, пересекающийся с [start, end)
func firstCollision(start, end time.Time, busy []domain.Interval) (domain.Interval, bool) {
	for _, b := range busy {
		if !b.Start.Before(end) {
			break
		}
		if start.Before(b.End) && end.After(b.Start) {
			return b, true
		}
	}
	return domain.Interval{}, false
}

// roundUpToGrid округляет t вверх до ближайшей линии сетки anchor + k*step
func roundUpToGrid(anchor, t time.Time, step time.Duration) time.Time {
	offset := t.Sub(anchor)
	if offset <= 0 {
		return anchor
	}

	n := offset / step
	if offset%step != 0 {
		n++
	}
	return anchor.Add(n * step)
}

// hull наименьший интервал, покрывающий все окна
func hull(windows []domain.Interval) domain.Interval {
	var result domain.Interval
	for i, w := range windows {
		if i == 0 || w.Start.Before(result.Start) {
			result.Start = w.Start
		}
		if i == 0 || w.End.After(result.End) {
			result.End = w.End
		}
	}
	return result
}

// coveredByAny true, если slot целиком лежит внутри одного из окон
func coveredByAny(windows []domain.Interval, slot domain.Interval) bool {
	for _, w := range windows {
		if w.Contains(slot) {
			return true
		}
	}
	return false
}
