// Package classifier implements priority-ordered, first-match-wins rule
// dispatch over transactions. Classifiers are assembled through a Builder
// and sealed at Build time; a sealed classifier is safe for concurrent use.
package classifier

import (
	"fmt"

	"github.com/Veraticus/finsift/internal/common"
	"github.com/Veraticus/finsift/internal/condition"
	"github.com/Veraticus/finsift/internal/model"
)

// DiagnosticSink receives condition evaluation failures. Implementations
// must be non-blocking; the sink is the only side effect of classification.
type DiagnosticSink func(category string, err error)

// slogSink is installed when the caller does not inject a sink, so
// evaluation failures are never silently dropped.
func slogSink(category string, err error) {
	common.LogError(err, "rule condition evaluation failed", common.Fields{
		"category": category,
	})
}

// Rule binds a condition to a category label and a priority. Priority
// equals the rule's registration position; lower values win.
type Rule struct {
	Condition condition.Condition
	Category  string
	Priority  int
}

func (r Rule) validate() error {
	if r.Category == "" {
		return fmt.Errorf("%w: rule must have a category", common.ErrInvalidConfig)
	}
	if r.Priority < 0 {
		return fmt.Errorf("%w: rule %q must have a non-negative priority", common.ErrInvalidConfig, r.Category)
	}
	if r.Condition == nil {
		return fmt.Errorf("%w: rule %q must have a condition", common.ErrInvalidConfig, r.Category)
	}
	return nil
}

// matches evaluates the rule's condition. A panic raised during evaluation
// is reported to the sink and downgraded to a non-match; one bad predicate
// must never abort classification of the surrounding batch.
func (r Rule) matches(txn model.Transaction, sink DiagnosticSink) (matched bool) {
	defer func() {
		if rec := recover(); rec != nil {
			matched = false
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("condition panicked: %v", rec)
			}
			sink(r.Category, err)
		}
	}()

	return r.Condition.Matches(txn)
}

// Describe returns a readable rendering of the rule for diagnostics.
func (r Rule) Describe() string {
	return fmt.Sprintf("Rule(category=%s, priority=%d, condition=%s)",
		r.Category, r.Priority, r.Condition.Describe())
}
