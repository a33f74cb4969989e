package attendance

import "errors"

// Attendance domain errors
var (
	ErrNoPunches    = errors.New("no punches provided")
	ErrInvalidPunch = errors.New("invalid punch timestamp")
)
