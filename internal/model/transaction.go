// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"math"
	"time"

	"github.com/Veraticus/finsift/internal/common"
)

// Transaction represents a single financial transaction from any source.
// Transactions are value objects: created once, read many times, never
// mutated during evaluation.
type Transaction struct {
	Date        time.Time // Optional; zero value means unknown
	Metadata    map[string]any
	Description string // Raw transaction description
	Amount      float64
}

// NewTransaction creates a validated transaction. The amount must be a
// finite number; NaN and infinities are rejected.
func NewTransaction(description string, amount float64) (Transaction, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Transaction{}, fmt.Errorf("%w: amount must be finite, got %v", common.ErrTypeConstraint, amount)
	}

	return Transaction{
		Description: description,
		Amount:      amount,
	}, nil
}

// WithDate returns a copy of the transaction with the posting date set.
func (t Transaction) WithDate(date time.Time) Transaction {
	t.Date = date
	return t
}

// WithMetadata returns a copy of the transaction with source metadata
// attached (account IDs, transaction types, and similar hints).
func (t Transaction) WithMetadata(metadata map[string]any) Transaction {
	t.Metadata = metadata
	return t
}
