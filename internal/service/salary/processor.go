package salary

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// passInput is one fully resolved processing request.
type passInput struct {
	Employee    employee.Employee
	Period      salary.Period
	Attendance  salary.Attendance
	Calendar    holiday.Calendar
	Generate    bool
	NoPayPerDay *decimal.Decimal
	Existing    *salary.SalaryRecord
	Rand        RandSource
}

// Processor runs the salary processing pass: matching, optional generation,
// then day classification, overtime and no-pay.
type Processor struct {
	loc       *time.Location
	matcher   ShiftMatcher
	generator Generator
	ot        OTCalculator
}

func NewProcessor(cfg EngineConfig, matcher ShiftMatcher) Processor {
	return Processor{
		loc:       cfg.location(),
		matcher:   matcher,
		generator: NewGenerator(cfg.location()),
		ot:        NewOTCalculator(cfg),
	}
}

func (p Processor) Process(in passInput) salary.ProcessResult {
	emp := in.Employee
	days := in.Period.Days(p.loc)

	sessions := p.sessions(in)

	covered := make(map[string]bool, len(days))
	for _, s := range sessions {
		covered[dateKey(s.Day)] = true
	}

	if in.Generate {
		sessions = append(sessions, p.generator.Fill(days, covered, emp, in.Calendar, in.Rand)...)
	} else {
		for _, day := range days {
			if covered[dateKey(day)] {
				continue
			}
			start := emp.Shifts[0].Start.On(day, p.loc)
			sessions = append(sessions, session{Day: day, In: start, Out: start})
		}
	}

	slices.SortStableFunc(sessions, func(a, b session) int { return a.In.Compare(b.In) })

	remarks := existingRemarks(in.Existing)
	records := make([]salary.InOutRecord, 0, len(sessions))
	for _, s := range sessions {
		if s.Remark == "" {
			s.Remark = remarks[s.In.UnixNano()]
		}
		records = append(records, p.normalize(s, emp, in.Calendar))
	}

	return p.aggregate(records, in)
}

// sessions returns the sessions of the period from either processed records
// or raw punches. Sessions attributed to days outside the period are dropped.
func (p Processor) sessions(in passInput) []session {
	var all []session
	if in.Attendance.IsProcessed() {
		all = make([]session, 0, len(in.Attendance.Records))
		for _, r := range in.Attendance.Records {
			all = append(all, session{
				Day:    p.matcher.attribute(r.In, in.Employee.Shifts),
				In:     r.In,
				Out:    r.Out,
				Remark: r.Remark,
			})
		}
	} else {
		all = p.matcher.Match(in.Attendance.Punches, in.Employee.Shifts)
	}

	kept := all[:0]
	for _, s := range all {
		if in.Period.Contains(s.Day, p.loc) {
			kept = append(kept, s)
		}
	}
	return kept
}

// normalize classifies one session and computes its hours and overtime.
func (p Processor) normalize(s session, emp employee.Employee, cal holiday.Calendar) salary.InOutRecord {
	out := s.Out
	if out.Before(s.In) {
		out = s.In
	}
	hours := roundHours(out.Sub(s.In).Hours())
	info := resolveDay(s.Day, emp, cal)

	ot, otHours := p.ot.CalculateOT(hours, info.DayType, info.Holiday, emp.Basic, emp.DivideBy)
	if emp.EffectiveOTMethod() == employee.OTMethodNone {
		ot = decimal.Zero
	}

	return salary.InOutRecord{
		In:           s.In,
		Out:          out,
		WorkingHours: hours,
		OTHours:      otHours,
		OT:           ot,
		NoPay:        IsAbsent(hours, info.DayType, info.Holiday),
		DayType:      info.DayType,
		Holiday:      info.Holiday.Categories.Label(),
		Description:  Describe(hours, info.DayType, info.Holiday),
		Remark:       s.Remark,
	}
}

func (p Processor) aggregate(records []salary.InOutRecord, in passInput) salary.ProcessResult {
	result := salary.ProcessResult{
		InOutProcessed: records,
		OT:             decimal.Zero,
		NoPay:          decimal.Zero,
	}

	var absent []string
	seen := make(map[string]bool)
	for _, r := range records {
		result.OT = result.OT.Add(r.OT)
		result.OTHours += r.OTHours
		if !r.NoPay {
			continue
		}
		key := dateKey(r.In.In(p.loc))
		if !seen[key] {
			seen[key] = true
			absent = append(absent, key)
		}
	}
	result.OTHours = roundHours(result.OTHours)
	result.AbsentDays = len(absent)

	if result.OTHours > 0 {
		result.OTReason = fmt.Sprintf("%.2f OT hours", result.OTHours)
	}
	if len(absent) > 0 {
		result.NoPayReason = fmt.Sprintf("%d day(s) absent: %s", len(absent), strings.Join(absent, ", "))
	}

	switch {
	case in.NoPayPerDay != nil:
		result.NoPay = in.NoPayPerDay.Mul(decimal.NewFromInt(int64(len(absent)))).Round(2)
	case in.Existing != nil:
		result.NoPay = in.Existing.NoPay.Amount
	}
	return result
}

// existingRemarks indexes the per-record remarks of a previous salary by the
// exact in timestamp.
func existingRemarks(existing *salary.SalaryRecord) map[int64]string {
	remarks := make(map[int64]string)
	if existing == nil {
		return remarks
	}
	for _, r := range existing.InOut {
		if r.Remark != "" {
			remarks[r.In.UnixNano()] = r.Remark
		}
	}
	return remarks
}
