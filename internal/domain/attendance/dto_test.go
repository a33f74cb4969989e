package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPunchInput_Parse(t *testing.T) {
	loc := time.FixedZone("+0530", 5*3600+1800)

	tests := []struct {
		name  string
		input PunchInput
		want  time.Time
	}{
		{"iso timestamp", PunchInput{Timestamp: "2024-05-02T08:01:00+05:30"}, time.Date(2024, 5, 2, 8, 1, 0, 0, loc)},
		{"legacy date", PunchInput{Date: "02-05-2024", Time: "17:45"}, time.Date(2024, 5, 2, 17, 45, 0, 0, loc)},
		{"iso date", PunchInput{Date: "2024-05-02", Time: "07:30"}, time.Date(2024, 5, 2, 7, 30, 0, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.Parse(loc)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	for _, bad := range []PunchInput{
		{Timestamp: "2024-05-02 08:01"},
		{Date: "2024/05/02", Time: "08:00"},
		{Date: "02-05-2024", Time: "25:00"},
		{},
	} {
		_, err := bad.Parse(loc)
		assert.True(t, errors.Is(err, ErrInvalidPunch), "%+v", bad)
	}
}

func TestImportPunchesRequest_Validate(t *testing.T) {
	req := ImportPunchesRequest{
		EmployeeID: "0190d2a4-5b1e-7c3a-9f00-1a2b3c4d5e6f",
		Punches: []PunchInput{
			{Date: "02-05-2024", Time: "08:00"},
			{Date: "02-05-2024", Time: "17:00"},
		},
	}
	times, err := req.Validate(time.UTC)
	require.NoError(t, err)
	assert.Len(t, times, 2)
	assert.Equal(t, string(SourceImport), req.Source)

	bad := ImportPunchesRequest{Source: "fax", Punches: []PunchInput{{Date: "x"}}}
	_, err = bad.Validate(time.UTC)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "employee_id")
	assert.Contains(t, fields, "source")
	assert.Contains(t, fields, "punches[0]")
}
