package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

var periodRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

// IsValidPeriod checks a payroll period in "YYYY-MM" format.
func IsValidPeriod(period string) (time.Time, bool) {
	if !periodRegex.MatchString(period) {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01", period)
	return t, err == nil
}

// IsValidClockTime checks a 24h "HH:MM" time of day.
func IsValidClockTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

var legacyDateRegex = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// ParseLegacyDate converts the legacy day-only "DD-MM-YYYY" format into a
// date in loc.
func ParseLegacyDate(s string, loc *time.Location) (time.Time, bool) {
	if !legacyDateRegex.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("02-01-2006", s, loc)
	return t, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00+05:30"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	// Try RFC3339 format (ISO8601 with timezone)
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	// Try RFC3339Nano format (with nanoseconds)
	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}
