package domain

import (
	"sort"
	"time"
)

// Interval полуоткрытый интервал [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps true, если интервалы пересекаются. Соприкосновение границ пересечением не считается
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// IsEmpty true, если интервал не содержит ни одного момента
func (i Interval) IsEmpty() bool {
	return !i.Start.Before(i.End)
}

// Contains true, если other целиком лежит внутри i
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Intersect пересечение интервалов (может быть пустым)
func (i Interval) Intersect(other Interval) Interval {
	start, end := i.Start, i.End
	if other.Start.After(start) {
		start = other.Start
	}
	if other.End.Before(end) {
		end = other.End
	}
	return Interval{Start: start, End: end}
}

// SortIntervals сортирует интервалы по началу
func SortIntervals(intervals []Interval) {
	sort.Slice(intervals, func(a, b int) bool {
		return intervals[a].Start.Before(intervals[b].Start)
	})
}
