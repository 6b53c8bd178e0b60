package condition

import (
	"fmt"
	"math"

	"github.com/Veraticus/finsift/internal/common"
	"github.com/Veraticus/finsift/internal/model"
)

// amountOp identifies a relational comparison on the transaction amount.
type amountOp string

const (
	opGreaterThan    amountOp = ">"
	opLessThan       amountOp = "<"
	opGreaterOrEqual amountOp = ">="
	opLessOrEqual    amountOp = "<="
)

type amountCompare struct {
	op    amountOp
	value float64
}

// GreaterThan matches when the amount is strictly greater than value.
func GreaterThan(value float64) Condition {
	return amountCompare{op: opGreaterThan, value: value}
}

// LessThan matches when the amount is strictly less than value.
func LessThan(value float64) Condition {
	return amountCompare{op: opLessThan, value: value}
}

// GreaterOrEqual matches when the amount is at least value.
func GreaterOrEqual(value float64) Condition {
	return amountCompare{op: opGreaterOrEqual, value: value}
}

// LessOrEqual matches when the amount is at most value.
func LessOrEqual(value float64) Condition {
	return amountCompare{op: opLessOrEqual, value: value}
}

func (c amountCompare) Matches(txn model.Transaction) bool {
	switch c.op {
	case opGreaterThan:
		return txn.Amount > c.value
	case opLessThan:
		return txn.Amount < c.value
	case opGreaterOrEqual:
		return txn.Amount >= c.value
	case opLessOrEqual:
		return txn.Amount <= c.value
	}
	return false
}

func (c amountCompare) Describe() string {
	return fmt.Sprintf("amount %s %g", c.op, c.value)
}

type amountEquals struct {
	value     float64
	tolerance float64
}

// EqualsWithTolerance matches when |amount - value| < tolerance. The
// comparison is strict, so the tolerance boundary itself does not match,
// and a zero tolerance matches nothing affected by floating-point noise.
func EqualsWithTolerance(value, tolerance float64) (Condition, error) {
	if tolerance < 0 {
		return nil, fmt.Errorf("%w: tolerance must be >= 0, got %g", common.ErrInvalidConfig, tolerance)
	}
	return amountEquals{value: value, tolerance: tolerance}, nil
}

func (c amountEquals) Matches(txn model.Transaction) bool {
	return math.Abs(txn.Amount-c.value) < c.tolerance
}

func (c amountEquals) Describe() string {
	return fmt.Sprintf("amount == %g (±%g)", c.value, c.tolerance)
}

type amountBetween struct {
	minValue float64
	maxValue float64
}

// Between matches when minValue <= amount <= maxValue, inclusive at both
// ends.
func Between(minValue, maxValue float64) (Condition, error) {
	if minValue > maxValue {
		return nil, fmt.Errorf("%w: between requires min <= max, got %g > %g", common.ErrInvalidConfig, minValue, maxValue)
	}
	return amountBetween{minValue: minValue, maxValue: maxValue}, nil
}

func (c amountBetween) Matches(txn model.Transaction) bool {
	return c.minValue <= txn.Amount && txn.Amount <= c.maxValue
}

func (c amountBetween) Describe() string {
	return fmt.Sprintf("amount between %g and %g", c.minValue, c.maxValue)
}

type amountPositive struct{}

// Positive matches strictly positive amounts; zero does not match.
func Positive() Condition {
	return amountPositive{}
}

func (amountPositive) Matches(txn model.Transaction) bool {
	return txn.Amount > 0
}

func (amountPositive) Describe() string {
	return "amount > 0 (positive)"
}

type amountNegative struct{}

// Negative matches strictly negative amounts; zero does not match.
func Negative() Condition {
	return amountNegative{}
}

func (amountNegative) Matches(txn model.Transaction) bool {
	return txn.Amount < 0
}

func (amountNegative) Describe() string {
	return "amount < 0 (negative)"
}
