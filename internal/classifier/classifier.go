package classifier

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finsift/internal/common"
	"github.com/Veraticus/finsift/internal/model"
)

// Fallback result fields, returned when no rule matches a transaction.
// FallbackPriority is a sentinel larger than any real priority.
const (
	FallbackCategory = "unclassified"
	FallbackRuleName = "fallback"
	FallbackPriority = 999
)

// Classifier is an immutable, priority-ordered sequence of validated
// rules. Once built it is read-only, so concurrent Classify calls on one
// instance need no synchronization.
type Classifier struct {
	sink  DiagnosticSink
	rules []Rule
}

// Classify returns the result of the first rule, in ascending priority
// order, whose condition matches the transaction. When no rule matches it
// returns the fallback result with zero confidence. The only error is the
// zero-rules configuration error, unreachable for builder-built
// classifiers.
func (c *Classifier) Classify(txn model.Transaction) (model.ClassificationResult, error) {
	if len(c.rules) == 0 {
		return model.ClassificationResult{}, common.ErrNoRules
	}

	for _, rule := range c.rules {
		if rule.matches(txn, c.sink) {
			return model.ClassificationResult{
				Category:          rule.Category,
				Priority:          rule.Priority,
				RuleName:          rule.Category,
				Confidence:        1.0,
				MatchedConditions: []string{rule.Condition.Describe()},
			}, nil
		}
	}

	return model.ClassificationResult{
		Category:   FallbackCategory,
		Priority:   FallbackPriority,
		RuleName:   FallbackRuleName,
		Confidence: 0.0,
	}, nil
}

// ClassifyBatch classifies each transaction in input order. Rule-level
// evaluation failures are contained, so for a non-empty classifier the
// batch always succeeds entirely.
func (c *Classifier) ClassifyBatch(txns []model.Transaction) ([]model.ClassificationResult, error) {
	if len(c.rules) == 0 {
		return nil, common.ErrNoRules
	}

	results := make([]model.ClassificationResult, 0, len(txns))
	for _, txn := range txns {
		result, err := c.Classify(txn)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

// Rules returns a snapshot copy of the ordered rule list. Mutating the
// copy does not affect the classifier.
func (c *Classifier) Rules() []Rule {
	rules := make([]Rule, len(c.rules))
	copy(rules, c.rules)
	return rules
}

// DescribeRules returns a diagnostic dump, one line per rule in priority
// order.
func (c *Classifier) DescribeRules() string {
	var sb strings.Builder
	for _, rule := range c.rules {
		fmt.Fprintf(&sb, "priority %d: %s\n    condition: %s\n",
			rule.Priority, rule.Category, rule.Condition.Describe())
	}
	return sb.String()
}
