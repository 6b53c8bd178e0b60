package model

import "fmt"

// ClassificationResult represents the outcome of classifying a single
// transaction. Results are produced fresh per call and owned by the caller.
type ClassificationResult struct {
	Category          string
	RuleName          string
	MatchedConditions []string
	Priority          int
	Confidence        float64
}

func (r ClassificationResult) String() string {
	return fmt.Sprintf("%s (priority: %d, rule: %s)", r.Category, r.Priority, r.RuleName)
}
