package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/finsift/internal/common"
)

func TestNewTransaction(t *testing.T) {
	tests := []struct {
		name        string
		description string
		amount      float64
		wantErr     bool
	}{
		{
			name:        "valid positive amount",
			description: "Rendimento CRI XPTO Juros",
			amount:      150.50,
		},
		{
			name:        "valid negative amount",
			description: "Custo Operacional",
			amount:      -250.00,
		},
		{
			name:        "zero amount",
			description: "Ajuste",
			amount:      0,
		},
		{
			name:        "empty description is allowed",
			description: "",
			amount:      10,
		},
		{
			name:        "NaN amount rejected",
			description: "bad",
			amount:      math.NaN(),
			wantErr:     true,
		},
		{
			name:        "positive infinity rejected",
			description: "bad",
			amount:      math.Inf(1),
			wantErr:     true,
		},
		{
			name:        "negative infinity rejected",
			description: "bad",
			amount:      math.Inf(-1),
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := NewTransaction(tt.description, tt.amount)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrTypeConstraint)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.description, txn.Description)
			assert.InDelta(t, tt.amount, txn.Amount, 0)
			assert.True(t, txn.Date.IsZero())
			assert.Nil(t, txn.Metadata)
		})
	}
}

func TestTransaction_WithDateAndMetadata(t *testing.T) {
	txn, err := NewTransaction("TED Banco XYZ", -150.00)
	require.NoError(t, err)

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	enriched := txn.WithDate(date).WithMetadata(map[string]any{"account": "1234"})

	assert.Equal(t, date, enriched.Date)
	assert.Equal(t, "1234", enriched.Metadata["account"])

	// The original value is untouched.
	assert.True(t, txn.Date.IsZero())
	assert.Nil(t, txn.Metadata)
}

func TestClassificationResult_String(t *testing.T) {
	result := ClassificationResult{
		Category: "dividendos",
		Priority: 3,
		RuleName: "dividendos",
	}

	assert.Equal(t, "dividendos (priority: 3, rule: dividendos)", result.String())
}
