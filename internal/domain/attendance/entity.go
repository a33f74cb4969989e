package attendance

import (
	"time"
)

// Punch is one raw clock event. Punches are never edited; the salary engine
// pairs them into sessions on every run.
type Punch struct {
	ID         string
	CompanyID  string
	EmployeeID string
	PunchedAt  time.Time
	Source     Source
	CreatedAt  time.Time
}

type Source string

const (
	SourceImport Source = "import"
	SourceDevice Source = "device"
)

var SourceValues = []string{
	string(SourceImport),
	string(SourceDevice),
}
