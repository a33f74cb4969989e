package employee

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ClockTime is a wall-clock time of day stored as minutes since midnight.
type ClockTime int

// ParseClockTime parses "HH:MM" (24h).
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

func MustClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On returns the instant this clock time falls on for the calendar date of day
// in loc.
func (c ClockTime) On(day time.Time, loc *time.Location) time.Time {
	d := day.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc)
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidClockTime, string(data))
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Shift is an expected daily work window. End before Start means the shift
// wraps past midnight.
type Shift struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// Wraps reports whether the shift ends on the next calendar day.
func (s Shift) Wraps() bool {
	return s.End < s.Start
}

// EndFor returns the nominal end of the shift that started at start.
func (s Shift) EndFor(start time.Time) time.Time {
	end := s.End.On(start, start.Location())
	if s.Wraps() {
		end = end.AddDate(0, 0, 1)
	}
	return end
}

// DayType is the working-day status of one weekday.
type DayType string

const (
	DayTypeFull DayType = "full"
	DayTypeHalf DayType = "half"
	DayTypeOff  DayType = "off"
)

var DayTypeValues = []string{
	string(DayTypeFull),
	string(DayTypeHalf),
	string(DayTypeOff),
}

func (d DayType) IsWorking() bool {
	return d == DayTypeFull || d == DayTypeHalf
}

// WorkingDays maps a weekday to its status. Unset weekdays are full days.
type WorkingDays map[time.Weekday]DayType

var weekdayKeys = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

func weekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String()[:3])
}

// For returns the status of the given weekday, defaulting to full.
func (w WorkingDays) For(d time.Weekday) DayType {
	if t, ok := w[d]; ok && t != "" {
		return t
	}
	return DayTypeFull
}

func (w WorkingDays) MarshalJSON() ([]byte, error) {
	out := make(map[string]DayType, len(w))
	for day, t := range w {
		out[weekdayKey(day)] = t
	}
	return json.Marshal(out)
}

func (w *WorkingDays) UnmarshalJSON(data []byte) error {
	var raw map[string]DayType
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed := make(WorkingDays, len(raw))
	for key, t := range raw {
		day, ok := weekdayKeys[strings.ToLower(key)]
		if !ok {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidWorkingDays, key)
		}
		switch t {
		case DayTypeFull, DayTypeHalf, DayTypeOff:
		default:
			return fmt.Errorf("%w: %q for %s", ErrInvalidWorkingDays, t, key)
		}
		parsed[day] = t
	}
	*w = parsed
	return nil
}
