// Package condition implements the boolean predicate algebra used to match
// transactions. Leaf conditions test a transaction's description text or
// amount; And, Or and Not compose them into trees. The variant set is
// closed: every condition is built through a constructor in this package.
package condition

import (
	"fmt"

	"github.com/Veraticus/finsift/internal/common"
	"github.com/Veraticus/finsift/internal/model"
)

// Condition is a boolean predicate over a transaction. Matches must be
// free of side effects; Describe is diagnostic-only and must not affect
// matching semantics.
type Condition interface {
	Matches(txn model.Transaction) bool
	Describe() string
}

type alwaysTrue struct{}

// AlwaysTrue returns a condition that matches every transaction. Useful as
// the final catch-all rule of a classifier.
func AlwaysTrue() Condition {
	return alwaysTrue{}
}

func (alwaysTrue) Matches(model.Transaction) bool {
	return true
}

func (alwaysTrue) Describe() string {
	return "always true (fallback)"
}

type andCondition struct {
	left  Condition
	right Condition
}

// And combines two conditions; the result matches when both match. The
// right operand is not evaluated when the left one fails.
func And(left, right Condition) (Condition, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("%w: AND requires two conditions", common.ErrNotCondition)
	}
	return andCondition{left: left, right: right}, nil
}

func (c andCondition) Matches(txn model.Transaction) bool {
	return c.left.Matches(txn) && c.right.Matches(txn)
}

func (c andCondition) Describe() string {
	return fmt.Sprintf("(%s AND %s)", c.left.Describe(), c.right.Describe())
}

type orCondition struct {
	left  Condition
	right Condition
}

// Or combines two conditions; the result matches when at least one
// matches. The right operand is not evaluated when the left one matches.
func Or(left, right Condition) (Condition, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("%w: OR requires two conditions", common.ErrNotCondition)
	}
	return orCondition{left: left, right: right}, nil
}

func (c orCondition) Matches(txn model.Transaction) bool {
	return c.left.Matches(txn) || c.right.Matches(txn)
}

func (c orCondition) Describe() string {
	return fmt.Sprintf("(%s OR %s)", c.left.Describe(), c.right.Describe())
}

type notCondition struct {
	inner Condition
}

// Not inverts a condition.
func Not(inner Condition) (Condition, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: NOT requires a condition", common.ErrNotCondition)
	}
	return notCondition{inner: inner}, nil
}

func (c notCondition) Matches(txn model.Transaction) bool {
	return !c.inner.Matches(txn)
}

func (c notCondition) Describe() string {
	return fmt.Sprintf("NOT (%s)", c.inner.Describe())
}
