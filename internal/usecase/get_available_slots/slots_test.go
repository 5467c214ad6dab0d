package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var day = time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC)

func clock(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func formatAll(slots []time.Time) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.Format(domain.TimeFormat)
	}
	return result
}

func gridFrom(from, to time.Time, step time.Duration) []string {
	result := make([]string, 0)
	for t := from; !t.After(to); t = t.Add(step) {
		result = append(result, t.Format(domain.TimeFormat))
	}
	return result
}

func TestWalkSlots_SingleBooking(t *testing.T) {
	window := domain.Interval{Start: clock(9, 0), End: clock(18, 0)}
	busy := []domain.Interval{{Start: clock(10, 0), End: clock(10, 30)}}

	got := formatAll(walkSlots(window, 30*time.Minute, 15*time.Minute, busy, day.Add(-time.Hour)))

	want := append([]string{"09:00", "09:15", "09:30"}, gridFrom(clock(10, 30), clock(17, 30), 15*time.Minute)...)
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "09:45")
	assert.NotContains(t, got, "10:00")
	assert.NotContains(t, got, "10:15")
}

func TestWalkSlots_NeverOverlapsBusy(t *testing.T) {
	window := domain.Interval{Start: clock(9, 0), End: clock(18, 0)}
	busy := []domain.Interval{
		{Start: clock(9, 10), End: clock(9, 50)},
		{Start: clock(11, 0), End: clock(11, 45)},
		{Start: clock(11, 30), End: clock(12, 5)},
		{Start: clock(17, 0), End: clock(18, 0)},
	}
	duration := 45 * time.Minute

	slots := walkSlots(window, duration, 15*time.Minute, busy, day)
	assert.NotEmpty(t, slots)

	for _, s := range slots {
		slot := domain.Interval{Start: s, End: s.Add(duration)}
		assert.True(t, window.Contains(slot))
		for _, b := range busy {
			assert.Falsef(t, slot.Overlaps(b), "slot %s overlaps %s-%s",
				s.Format(domain.TimeFormat), b.Start.Format(domain.TimeFormat), b.End.Format(domain.TimeFormat))
		}
	}

	// после 09:50 ближайшая линия сетки 10:00
	assert.Equal(t, "10:00", slots[0].Format(domain.TimeFormat))
}

func TestWalkSlots_SuppressesPastCandidates(t *testing.T) {
	window := domain.Interval{Start: clock(9, 0), End: clock(11, 0)}

	got := formatAll(walkSlots(window, 30*time.Minute, 15*time.Minute, nil, clock(9, 30)))

	assert.Equal(t, []string{"09:45", "10:00", "10:15", "10:30"}, got)
}

func TestWalkSlots_EdgeCases(t *testing.T) {
	window := domain.Interval{Start: clock(9, 0), End: clock(18, 0)}

	t.Run("duration longer than window", func(t *testing.T) {
		assert.Empty(t, walkSlots(window, 10*time.Hour, 15*time.Minute, nil, day))
	})

	t.Run("whole day busy", func(t *testing.T) {
		busy := []domain.Interval{{Start: clock(8, 0), End: clock(19, 0)}}
		assert.Empty(t, walkSlots(window, 30*time.Minute, 15*time.Minute, busy, day))
	})

	t.Run("identical consecutive collisions terminate", func(t *testing.T) {
		busy := []domain.Interval{
			{Start: clock(9, 0), End: clock(9, 0).Add(time.Second)},
			{Start: clock(9, 0), End: clock(9, 0).Add(time.Second)},
		}
		got := formatAll(walkSlots(window, 30*time.Minute, 15*time.Minute, busy, day))
		assert.Equal(t, "09:15", got[0])
	})

	t.Run("zero step", func(t *testing.T) {
		assert.Empty(t, walkSlots(window, 30*time.Minute, 0, nil, day))
	})
}

func TestRoundUpToGrid(t *testing.T) {
	anchor := clock(9, 0)
	step := 15 * time.Minute

	assert.Equal(t, clock(10, 30), roundUpToGrid(anchor, clock(10, 30), step))
	assert.Equal(t, clock(10, 45), roundUpToGrid(anchor, clock(10, 31), step))
	assert.Equal(t, clock(10, 45), roundUpToGrid(anchor, clock(10, 30).Add(time.Second), step))
	assert.Equal(t, anchor, roundUpToGrid(anchor, clock(8, 0), step))
}

func TestHull(t *testing.T) {
	got := hull([]domain.Interval{
		{Start: clock(10, 0), End: clock(14, 0)},
		{Start: clock(9, 0), End: clock(12, 0)},
		{Start: clock(13, 0), End: clock(18, 0)},
	})
	assert.Equal(t, domain.Interval{Start: clock(9, 0), End: clock(18, 0)}, got)
}

func TestCoveredByAny(t *testing.T) {
	windows := []domain.Interval{
		{Start: clock(9, 0), End: clock(12, 0)},
		{Start: clock(14, 0), End: clock(18, 0)},
	}

	assert.True(t, coveredByAny(windows, domain.Interval{Start: clock(11, 30), End: clock(12, 0)}))
	assert.True(t, coveredByAny(windows, domain.Interval{Start: clock(14, 0), End: clock(14, 30)}))
	assert.False(t, coveredByAny(windows, domain.Interval{Start: clock(11, 45), End: clock(12, 15)}))
	assert.False(t, coveredByAny(windows, domain.Interval{Start: clock(12, 30), End: clock(13, 0)}))
	assert.False(t, coveredByAny(nil, domain.Interval{Start: clock(9, 0), End: clock(9, 30)}))
}
