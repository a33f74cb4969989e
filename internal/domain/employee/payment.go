package employee

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountKind tags the three ways a payment line amount can be configured.
type AmountKind int

const (
	// AmountDerived means no usable amount was configured; the composer
	// derives one from the basic salary.
	AmountDerived AmountKind = iota
	AmountFixed
	AmountRange
)

// PaymentAmount is Fixed(value), Range(min, max) or Derived. On the wire it
// keeps the legacy string form: "1500", "2000-5000" or "".
type PaymentAmount struct {
	Kind  AmountKind
	Value decimal.Decimal
	Min   decimal.Decimal
	Max   decimal.Decimal
}

func FixedAmount(v decimal.Decimal) PaymentAmount {
	return PaymentAmount{Kind: AmountFixed, Value: v}
}

// RangeAmount builds a range, swapping the bounds if they are reversed.
func RangeAmount(min, max decimal.Decimal) PaymentAmount {
	if min.GreaterThan(max) {
		min, max = max, min
	}
	return PaymentAmount{Kind: AmountRange, Min: min, Max: max}
}

func DerivedAmount() PaymentAmount {
	return PaymentAmount{Kind: AmountDerived}
}

var rangeRegex = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)\s*$`)

// ParsePaymentAmount never fails: anything that is neither a number nor a
// "min-max" range is Derived.
func ParsePaymentAmount(s string) PaymentAmount {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return DerivedAmount()
	}
	if m := rangeRegex.FindStringSubmatch(s); m != nil {
		min, errMin := decimal.NewFromString(m[1])
		max, errMax := decimal.NewFromString(m[2])
		if errMin == nil && errMax == nil {
			return RangeAmount(min, max)
		}
	}
	if v, err := decimal.NewFromString(s); err == nil {
		return FixedAmount(v)
	}
	return DerivedAmount()
}

func (a PaymentAmount) String() string {
	switch a.Kind {
	case AmountFixed:
		return a.Value.String()
	case AmountRange:
		return a.Min.String() + "-" + a.Max.String()
	default:
		return ""
	}
}

func (a PaymentAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *PaymentAmount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = DerivedAmount()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = ParsePaymentAmount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid payment amount %s: %w", string(data), err)
	}
	*a = ParsePaymentAmount(n.String())
	return nil
}
