package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framehaus/StudioBookingService/internal/domain"
	"github.com/framehaus/StudioBookingService/pkg/types"
)

func window(start, end string, gap int) domain.OperatingWindow {
	return domain.OperatingWindow{
		StartTime:      types.TimeString(start),
		EndTime:        types.TimeString(end),
		SlotGapMinutes: gap,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func slotTimes(slots []domain.TimeSlot) []string {
	times := make([]string, len(slots))
	for i, s := range slots {
		times[i] = s.StartTime.String()
	}
	return times
}

func TestGenerateSlots_FutureDate(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	slots := GenerateSlots(date(2025, 10, 15), window("09:00", "12:00", 60), now)

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slotTimes(slots))
	for _, s := range slots {
		assert.True(t, s.Available, "slot %s on a future date must start available", s.StartTime)
	}
}

func TestGenerateSlots_EmitsCandidateEvenIfSessionRunsPastClosing(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	// 17:30 начинается до закрытия - кандидат эмитится, хотя часовая
	// сессия вышла бы за 18:00; отсечение делает resolver
	slots := GenerateSlots(date(2025, 10, 15), window("17:00", "18:00", 30), now)

	assert.Equal(t, []string{"17:00", "17:30"}, slotTimes(slots))
}

func TestGenerateSlots_TodayMarksPastTimesUnavailable(t *testing.T) {
	// Сегодня 2025-10-15, сейчас 11:00
	now := time.Date(2025, 10, 15, 11, 0, 0, 0, time.UTC)
	slots := GenerateSlots(date(2025, 10, 15), window("09:00", "14:00", 60), now)

	require.Len(t, slots, 5)

	byTime := map[string]bool{}
	for _, s := range slots {
		byTime[s.StartTime.String()] = s.Available
	}

	assert.False(t, byTime["09:00"])
	assert.False(t, byTime["10:00"])
	assert.False(t, byTime["11:00"], "slot starting exactly now must be unavailable")
	assert.True(t, byTime["12:00"])
	assert.True(t, byTime["13:00"])
}

func TestGenerateSlots_PastDateAllUnavailable(t *testing.T) {
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
	slots := GenerateSlots(date(2025, 10, 14), window("09:00", "11:00", 60), now)

	require.Len(t, slots, 2)
	for _, s := range slots {
		assert.False(t, s.Available)
	}
}

func TestGenerateSlots_MisconfiguredWindow(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		window domain.OperatingWindow
	}{
		{"start after end", window("18:00", "09:00", 30)},
		{"start equals end", window("09:00", "09:00", 30)},
		{"zero gap", window("09:00", "18:00", 0)},
		{"negative gap", window("09:00", "18:00", -30)},
		{"unparseable start", window("9am", "18:00", 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := GenerateSlots(date(2025, 10, 15), tt.window, now)
			assert.Empty(t, slots, "misconfigured window must yield zero candidates, not an error")
		})
	}
}

func TestGenerateSlots_GapSpacing(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	slots := GenerateSlots(date(2025, 10, 15), window("09:00", "10:31", 45), now)
	assert.Equal(t, []string{"09:00", "09:45", "10:30"}, slotTimes(slots))
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	now := time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)
	w := window("09:00", "18:00", 30)

	first := GenerateSlots(date(2025, 10, 15), w, now)
	second := GenerateSlots(date(2025, 10, 15), w, now)

	assert.Equal(t, first, second, "same inputs and same now must give identical output")
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 10, 15, 23, 59, 0, 0, time.UTC)
	c := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, c))
}

func TestDateInPast(t *testing.T) {
	now := time.Date(2025, 10, 15, 0, 30, 0, 0, time.UTC)

	assert.True(t, DateInPast(date(2025, 10, 14), now))
	assert.False(t, DateInPast(date(2025, 10, 15), now))
	assert.False(t, DateInPast(date(2025, 10, 16), now))
}
