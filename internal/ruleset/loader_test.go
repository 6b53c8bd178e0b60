package ruleset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/finsift/internal/common"
	"github.com/Veraticus/finsift/internal/model"
)

const sampleRules = `
rules:
  - category: ativo_juros
    condition:
      all:
        - contains_any: [cri, deb, lci, lca]
        - contains_all: [juros]
        - positive: true
  - category: despesas
    condition:
      all:
        - contains_all: [custo]
        - not:
            contains_any: [custodia, oferta]
        - negative: true
  - category: taxas_impostos
    condition:
      all:
        - contains_any: [taxa, imposto, iof, custodia]
        - negative: true
  - category: grandes_aportes
    condition:
      all:
        - any:
            - contains_all: [aplicacao]
            - contains_all: [aquisicao]
        - less_or_equal: -5000
  - category: ajuste
    condition:
      equals_amount: 100
      tolerance: 0.05
  - category: outros
`

func classify(t *testing.T, document, description string, amount float64) model.ClassificationResult {
	t.Helper()

	builder, err := Parse(strings.NewReader(document))
	require.NoError(t, err)

	clf, err := builder.Build()
	require.NoError(t, err)

	txn, err := model.NewTransaction(description, amount)
	require.NoError(t, err)

	result, err := clf.Classify(txn)
	require.NoError(t, err)
	return result
}

func TestParse_EndToEnd(t *testing.T) {
	tests := []struct {
		name         string
		description  string
		amount       float64
		wantCategory string
		wantPriority int
	}{
		{
			name:         "interest income",
			description:  "Rendimento CRI XPTO Juros",
			amount:       150.50,
			wantCategory: "ativo_juros",
			wantPriority: 0,
		},
		{
			name:         "custody fee skips the expense rule",
			description:  "Custo Custodia Mensal",
			amount:       -15.00,
			wantCategory: "taxas_impostos",
			wantPriority: 2,
		},
		{
			name:         "nested any inside all",
			description:  "Aquisicao LCI Banco ABC",
			amount:       -10000.00,
			wantCategory: "grandes_aportes",
			wantPriority: 3,
		},
		{
			name:         "equals amount with tolerance",
			description:  "Ajuste de saldo",
			amount:       100.03,
			wantCategory: "ajuste",
			wantPriority: 4,
		},
		{
			name:         "rule without condition is a catch-all",
			description:  "Pagamento Cartao de Credito",
			amount:       -1500.00,
			wantCategory: "outros",
			wantPriority: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classify(t, sampleRules, tt.description, tt.amount)
			assert.Equal(t, tt.wantCategory, result.Category)
			assert.Equal(t, tt.wantPriority, result.Priority)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		document string
		wantIn   string
	}{
		{
			name: "two variants on one node",
			document: `
rules:
  - category: broken
    condition:
      contains_all: [custo]
      positive: true
`,
			wantIn: "exactly one variant",
		},
		{
			name: "between missing max",
			document: `
rules:
  - category: broken
    condition:
      amount_min: 100
`,
			wantIn: "amount_min and amount_max",
		},
		{
			name: "min greater than max",
			document: `
rules:
  - category: broken
    condition:
      amount_min: 100
      amount_max: 50
`,
			wantIn: "min <= max",
		},
		{
			name: "empty term list leaves no variant",
			document: `
rules:
  - category: broken
    condition:
      contains_all: []
`,
			wantIn: "exactly one variant",
		},
		{
			name: "negative tolerance",
			document: `
rules:
  - category: broken
    condition:
      equals_amount: 100
      tolerance: -0.01
`,
			wantIn: "tolerance",
		},
		{
			name: "unknown field",
			document: `
rules:
  - category: broken
    condition:
      contains_some: [custo]
`,
			wantIn: "field contains_some not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder, err := Parse(strings.NewReader(tt.document))
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantIn)
			assert.Nil(t, builder)
		})
	}
}

func TestParse_EmptyDocumentFailsAtBuild(t *testing.T) {
	builder, err := Parse(strings.NewReader("rules: []\n"))
	require.NoError(t, err)

	clf, err := builder.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
	assert.Nil(t, clf)
}

func TestParseFile_MissingFile(t *testing.T) {
	builder, err := ParseFile("testdata/does-not-exist.yaml")
	require.Error(t, err)
	assert.Nil(t, builder)
}

func TestParse_CaseSensitiveOption(t *testing.T) {
	document := `
rules:
  - category: exact
    condition:
      contains_all: [CRI]
      case_sensitive: true
  - category: outros
`

	result := classify(t, document, "Rendimento CRI", 10)
	assert.Equal(t, "exact", result.Category)

	result = classify(t, document, "Rendimento cri", 10)
	assert.Equal(t, "outros", result.Category)
}
