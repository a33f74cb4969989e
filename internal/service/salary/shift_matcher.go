package salary

import (
	"log/slog"
	"slices"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
)

// session is one in/out pair attributed to the calendar day its shift
// starts on.
type session struct {
	Day    time.Time
	In     time.Time
	Out    time.Time
	Remark string
}

// ShiftMatcher pairs raw punches into sessions. Boundaries are approximate:
// a matched session always ends at the shift's nominal end. A punch that looks
// like its checkout is left for the next session; any other following punch is
// consumed.
type ShiftMatcher struct {
	tolerances MatchTolerances
	loc        *time.Location
	logger     *slog.Logger
}

func NewShiftMatcher(tolerances MatchTolerances, loc *time.Location, logger *slog.Logger) ShiftMatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	return ShiftMatcher{tolerances: tolerances, loc: loc, logger: logger}
}

// shiftStart is a concrete occurrence of a shift.
type shiftStart struct {
	Shift employee.Shift
	Start time.Time
}

// nearestStart finds the shift occurrence whose start is closest to t, looking
// at the day before, the day of and the day after t. ok is false when no start
// lies within the pre-start tolerance.
func (m ShiftMatcher) nearestStart(t time.Time, shifts []employee.Shift) (shiftStart, bool) {
	var (
		best     shiftStart
		bestDist time.Duration
		found    bool
	)
	for _, offset := range []int{-1, 0, 1} {
		day := t.In(m.loc).AddDate(0, 0, offset)
		for _, sh := range shifts {
			start := sh.Start.On(day, m.loc)
			dist := t.Sub(start)
			if dist < 0 {
				dist = -dist
			}
			if dist > m.tolerances.PreStart {
				continue
			}
			if !found || dist < bestDist {
				best = shiftStart{Shift: sh, Start: start}
				bestDist = dist
				found = true
			}
		}
	}
	return best, found
}

// inCheckoutWindow reports whether next lies in the checkout window of occ:
// up to LateCheckout after the nominal end, or up to EarlyCheckout before it
// but after the start.
func (m ShiftMatcher) inCheckoutWindow(next time.Time, occ shiftStart) bool {
	end := occ.Shift.EndFor(occ.Start)
	if !next.Before(end) {
		return next.Sub(end) <= m.tolerances.LateCheckout
	}
	return next.After(occ.Start) && end.Sub(next) <= m.tolerances.EarlyCheckout
}

// Match turns punches into sessions. Punches that match no shift are logged
// and dropped.
func (m ShiftMatcher) Match(punches []time.Time, shifts []employee.Shift) []session {
	sorted := slices.Clone(punches)
	slices.SortFunc(sorted, func(a, b time.Time) int { return a.Compare(b) })

	var sessions []session
	for i := 0; i < len(sorted); {
		in := sorted[i]
		occ, ok := m.nearestStart(in, shifts)
		if !ok {
			m.logger.Warn("punch does not match any shift, dropping",
				slog.Time("punch", in),
			)
			i++
			continue
		}
		i++

		if i < len(sorted) && !m.inCheckoutWindow(sorted[i], occ) {
			m.logger.Debug("punch outside checkout window, consuming",
				slog.Time("punch", sorted[i]),
				slog.Time("shift_start", occ.Start),
			)
			i++
		}

		sessions = append(sessions, session{
			Day: dayOf(occ.Start, m.loc),
			In:  in,
			Out: occ.Shift.EndFor(occ.Start),
		})
	}
	return sessions
}

// attribute finds the day a pre-processed record belongs to, using the same
// shift lookup as Match and falling back to the date of in.
func (m ShiftMatcher) attribute(in time.Time, shifts []employee.Shift) time.Time {
	if occ, ok := m.nearestStart(in, shifts); ok {
		return dayOf(occ.Start, m.loc)
	}
	return dayOf(in, m.loc)
}
