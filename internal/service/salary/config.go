package salary

import (
	"hash/fnv"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
)

// MatchTolerances bound how far a punch may sit from a shift boundary and
// still be paired with it.
type MatchTolerances struct {
	// PreStart is the window around a shift start that accepts a clock-in.
	PreStart time.Duration
	// LateCheckout is how long after the nominal end a clock-out is accepted.
	LateCheckout time.Duration
	// EarlyCheckout is how long before the nominal end a clock-out is accepted.
	EarlyCheckout time.Duration
}

// EngineConfig holds the matcher tolerances, overtime rules, statutory rates
// and batch settings of one engine.
type EngineConfig struct {
	Tolerances MatchTolerances

	FullDayThreshold     float64
	HalfDayThreshold     float64
	RegularMultiplier    decimal.Decimal
	MercantileMultiplier decimal.Decimal

	EPFEmployeeRate decimal.Decimal
	EPFEmployerRate decimal.Decimal
	ETFRate         decimal.Decimal

	Workers  int
	Seed     uint64
	Location *time.Location
}

// DefaultEngineConfig returns the standard rules: 3h/6h/3h match tolerances,
// 9h and 6h overtime thresholds, 1.5x and 2x multipliers, EPF 8%/12% and
// ETF 3%, evaluated in UTC.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Tolerances: MatchTolerances{
			PreStart:      3 * time.Hour,
			LateCheckout:  6 * time.Hour,
			EarlyCheckout: 3 * time.Hour,
		},
		FullDayThreshold:     9,
		HalfDayThreshold:     6,
		RegularMultiplier:    decimal.NewFromFloat(1.5),
		MercantileMultiplier: decimal.NewFromInt(2),
		EPFEmployeeRate:      decimal.NewFromFloat(0.08),
		EPFEmployerRate:      decimal.NewFromFloat(0.12),
		ETFRate:              decimal.NewFromFloat(0.03),
		Workers:              4,
		Seed:                 1,
		Location:             time.UTC,
	}
}

func (c EngineConfig) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// RandSource is the randomness the generator and composer draw from.
// *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG stream derived from seed and employeeID, so one
// employee always sees the same draws for a given seed.
func NewRand(seed uint64, employeeID string) RandSource {
	h := fnv.New64a()
	h.Write([]byte(employeeID))
	return rand.New(rand.NewPCG(seed, h.Sum64()))
}
