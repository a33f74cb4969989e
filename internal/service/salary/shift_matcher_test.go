package salary

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayShift() []employee.Shift {
	return []employee.Shift{{Start: employee.MustClockTime("08:00"), End: employee.MustClockTime("17:00")}}
}

func TestShiftMatcher_Match(t *testing.T) {
	m := NewShiftMatcher(DefaultEngineConfig().Tolerances, time.UTC, testLogger)

	tests := []struct {
		name    string
		punches []time.Time
		want    []session
	}{
		{
			name:    "late checkout resolves to the nominal end",
			punches: []time.Time{at(2024, 5, 2, 19, 0), at(2024, 5, 2, 7, 55)},
			want:    []session{{Day: at(2024, 5, 2, 0, 0), In: at(2024, 5, 2, 7, 55), Out: at(2024, 5, 2, 17, 0)}},
		},
		{
			name:    "early checkout inside tolerance resolves to the nominal end",
			punches: []time.Time{at(2024, 5, 2, 8, 10), at(2024, 5, 2, 15, 0)},
			want:    []session{{Day: at(2024, 5, 2, 0, 0), In: at(2024, 5, 2, 8, 10), Out: at(2024, 5, 2, 17, 0)}},
		},
		{
			name:    "missing checkout falls back to nominal end",
			punches: []time.Time{at(2024, 5, 2, 8, 0)},
			want:    []session{{Day: at(2024, 5, 2, 0, 0), In: at(2024, 5, 2, 8, 0), Out: at(2024, 5, 2, 17, 0)}},
		},
		{
			name:    "punch after the late window is consumed",
			punches: []time.Time{at(2024, 5, 2, 8, 0), at(2024, 5, 3, 8, 5)},
			want:    []session{{Day: at(2024, 5, 2, 0, 0), In: at(2024, 5, 2, 8, 0), Out: at(2024, 5, 2, 17, 0)}},
		},
		{
			name:    "punch before the early window is consumed",
			punches: []time.Time{at(2024, 5, 2, 8, 0), at(2024, 5, 2, 13, 0), at(2024, 5, 3, 8, 0)},
			want: []session{
				{Day: at(2024, 5, 2, 0, 0), In: at(2024, 5, 2, 8, 0), Out: at(2024, 5, 2, 17, 0)},
				{Day: at(2024, 5, 3, 0, 0), In: at(2024, 5, 3, 8, 0), Out: at(2024, 5, 3, 17, 0)},
			},
		},
		{
			name: "checkout punch is left for the next day",
			punches: []time.Time{
				at(2024, 5, 2, 8, 0), at(2024, 5, 2, 17, 30),
				at(2024, 5, 3, 8, 0), at(2024, 5, 3, 17, 5),
			},
			want: []session{
				{Day: at(2024, 5, 2, 0, 0), In: at(2024, 5, 2, 8, 0), Out: at(2024, 5, 2, 17, 0)},
				{Day: at(2024, 5, 3, 0, 0), In: at(2024, 5, 3, 8, 0), Out: at(2024, 5, 3, 17, 0)},
			},
		},
		{
			name:    "unmatched punch is dropped",
			punches: []time.Time{at(2024, 5, 2, 12, 30)},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.punches, dayShift())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShiftMatcher_OvernightShift(t *testing.T) {
	m := NewShiftMatcher(DefaultEngineConfig().Tolerances, time.UTC, testLogger)
	night := []employee.Shift{{Start: employee.MustClockTime("22:00"), End: employee.MustClockTime("06:00")}}

	got := m.Match([]time.Time{at(2024, 5, 2, 21, 50), at(2024, 5, 3, 6, 30)}, night)
	require.Len(t, got, 1)
	assert.Equal(t, at(2024, 5, 2, 0, 0), got[0].Day)
	assert.Equal(t, at(2024, 5, 3, 6, 0), got[0].Out)

	got = m.Match([]time.Time{at(2024, 5, 2, 22, 0)}, night)
	require.Len(t, got, 1)
	assert.Equal(t, at(2024, 5, 3, 6, 0), got[0].Out, "inferred end wraps to the next day")
}

func TestShiftMatcher_AttributesToShiftDay(t *testing.T) {
	m := NewShiftMatcher(DefaultEngineConfig().Tolerances, time.UTC, testLogger)
	midnight := []employee.Shift{{Start: employee.MustClockTime("00:00"), End: employee.MustClockTime("08:00")}}

	got := m.Match([]time.Time{at(2024, 5, 2, 23, 40), at(2024, 5, 3, 8, 15)}, midnight)
	require.Len(t, got, 1)
	assert.Equal(t, at(2024, 5, 3, 0, 0), got[0].Day)
	assert.Equal(t, at(2024, 5, 3, 0, 0), m.attribute(at(2024, 5, 2, 23, 40), midnight))
}

func TestShiftMatcher_ClosestShiftWins(t *testing.T) {
	m := NewShiftMatcher(DefaultEngineConfig().Tolerances, time.UTC, testLogger)
	shifts := []employee.Shift{
		{Start: employee.MustClockTime("06:00"), End: employee.MustClockTime("14:00")},
		{Start: employee.MustClockTime("08:00"), End: employee.MustClockTime("17:00")},
	}

	got := m.Match([]time.Time{at(2024, 5, 2, 7, 45)}, shifts)
	require.Len(t, got, 1)
	assert.Equal(t, at(2024, 5, 2, 17, 0), got[0].Out)
}

func TestShiftMatcher_TolerancesAreConfigurable(t *testing.T) {
	tight := MatchTolerances{PreStart: 30 * time.Minute, LateCheckout: time.Hour, EarlyCheckout: 30 * time.Minute}
	m := NewShiftMatcher(tight, time.UTC, testLogger)

	got := m.Match([]time.Time{at(2024, 5, 2, 7, 0), at(2024, 5, 2, 8, 0), at(2024, 5, 2, 19, 0)}, dayShift())
	require.Len(t, got, 1)
	assert.Equal(t, at(2024, 5, 2, 8, 0), got[0].In)
	assert.Equal(t, at(2024, 5, 2, 17, 0), got[0].Out, "19:00 is beyond the one hour late window and is consumed")
}

func TestShiftMatcher_CheckoutOpensNextShift(t *testing.T) {
	m := NewShiftMatcher(DefaultEngineConfig().Tolerances, time.UTC, testLogger)
	shifts := []employee.Shift{
		{Start: employee.MustClockTime("06:00"), End: employee.MustClockTime("14:00")},
		{Start: employee.MustClockTime("14:00"), End: employee.MustClockTime("22:00")},
	}

	got := m.Match([]time.Time{at(2024, 5, 2, 6, 0), at(2024, 5, 2, 14, 5), at(2024, 5, 2, 22, 0)}, shifts)
	require.Len(t, got, 2)
	assert.Equal(t, at(2024, 5, 2, 6, 0), got[0].In)
	assert.Equal(t, at(2024, 5, 2, 14, 0), got[0].Out)
	assert.Equal(t, at(2024, 5, 2, 14, 5), got[1].In, "the checkout of the first shift opens the second")
	assert.Equal(t, at(2024, 5, 2, 22, 0), got[1].Out)
}
