// Package ruleset loads declarative YAML rule files and compiles them into
// classifiers. File order is authoritative: rules are registered top to
// bottom, so a rule's priority is its position in the document.
package ruleset

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/finsift/internal/classifier"
	"github.com/Veraticus/finsift/internal/common"
	"github.com/Veraticus/finsift/internal/condition"
)

// ruleFile is the top-level document shape.
type ruleFile struct {
	Rules []ruleNode `yaml:"rules"`
}

type ruleNode struct {
	Condition *conditionNode `yaml:"condition"`
	Category  string         `yaml:"category"`
}

// conditionNode is one node of the condition tree. Exactly one variant key
// must be set per node; case_sensitive and tolerance modify the text and
// equals_amount variants respectively.
type conditionNode struct {
	Not *conditionNode  `yaml:"not"`
	All []conditionNode `yaml:"all"`
	Any []conditionNode `yaml:"any"`

	ContainsAll []string `yaml:"contains_all"`
	ContainsAny []string `yaml:"contains_any"`
	StartsWith  []string `yaml:"starts_with"`
	EndsWith    []string `yaml:"ends_with"`
	Equals      []string `yaml:"equals"`

	GreaterThan    *float64 `yaml:"greater_than"`
	LessThan       *float64 `yaml:"less_than"`
	GreaterOrEqual *float64 `yaml:"greater_or_equal"`
	LessOrEqual    *float64 `yaml:"less_or_equal"`
	EqualsAmount   *float64 `yaml:"equals_amount"`
	Tolerance      *float64 `yaml:"tolerance"`
	AmountMin      *float64 `yaml:"amount_min"`
	AmountMax      *float64 `yaml:"amount_max"`

	CaseSensitive bool `yaml:"case_sensitive"`
	Positive      bool `yaml:"positive"`
	Negative      bool `yaml:"negative"`
	Always        bool `yaml:"always"`
}

// defaultTolerance is applied when equals_amount is given without an
// explicit tolerance.
const defaultTolerance = 0.01

// Parse reads a YAML rule document and returns a builder with every rule
// registered in document order. The caller finishes construction with
// Build, optionally injecting a diagnostic sink first.
func Parse(r io.Reader) (*classifier.Builder, error) {
	var file ruleFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	builder := classifier.NewBuilder()
	for i, rule := range file.Rules {
		cond, err := compile(rule.Condition)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, rule.Category, err)
		}
		builder.Register(rule.Category, cond)
	}

	return builder, nil
}

// ParseFile is Parse over a file path.
func ParseFile(path string) (*classifier.Builder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule file: %w", err)
	}
	defer func() { _ = f.Close() }()

	builder, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return builder, nil
}

// variants lists the variant keys set on the node.
func (n *conditionNode) variants() []string {
	var set []string

	if len(n.All) > 0 {
		set = append(set, "all")
	}
	if len(n.Any) > 0 {
		set = append(set, "any")
	}
	if n.Not != nil {
		set = append(set, "not")
	}
	if len(n.ContainsAll) > 0 {
		set = append(set, "contains_all")
	}
	if len(n.ContainsAny) > 0 {
		set = append(set, "contains_any")
	}
	if len(n.StartsWith) > 0 {
		set = append(set, "starts_with")
	}
	if len(n.EndsWith) > 0 {
		set = append(set, "ends_with")
	}
	if len(n.Equals) > 0 {
		set = append(set, "equals")
	}
	if n.GreaterThan != nil {
		set = append(set, "greater_than")
	}
	if n.LessThan != nil {
		set = append(set, "less_than")
	}
	if n.GreaterOrEqual != nil {
		set = append(set, "greater_or_equal")
	}
	if n.LessOrEqual != nil {
		set = append(set, "less_or_equal")
	}
	if n.EqualsAmount != nil {
		set = append(set, "equals_amount")
	}
	if n.AmountMin != nil || n.AmountMax != nil {
		set = append(set, "between")
	}
	if n.Positive {
		set = append(set, "positive")
	}
	if n.Negative {
		set = append(set, "negative")
	}
	if n.Always {
		set = append(set, "always")
	}

	return set
}

func compile(n *conditionNode) (condition.Condition, error) {
	if n == nil {
		// A rule without a condition is a catch-all.
		return condition.AlwaysTrue(), nil
	}

	set := n.variants()
	if len(set) != 1 {
		return nil, fmt.Errorf("%w: condition node must have exactly one variant, got %v", common.ErrInvalidConfig, set)
	}

	var opts []condition.TextOption
	if n.CaseSensitive {
		opts = append(opts, condition.CaseSensitive())
	}

	switch set[0] {
	case "all":
		return compileList(n.All, condition.And)
	case "any":
		return compileList(n.Any, condition.Or)
	case "not":
		inner, err := compile(n.Not)
		if err != nil {
			return nil, err
		}
		return condition.Not(inner)
	case "contains_all":
		return condition.ContainsAll(n.ContainsAll, opts...)
	case "contains_any":
		return condition.ContainsAny(n.ContainsAny, opts...)
	case "starts_with":
		return condition.StartsWith(n.StartsWith, opts...)
	case "ends_with":
		return condition.EndsWith(n.EndsWith, opts...)
	case "equals":
		return condition.EqualsAny(n.Equals, opts...)
	case "greater_than":
		return condition.GreaterThan(*n.GreaterThan), nil
	case "less_than":
		return condition.LessThan(*n.LessThan), nil
	case "greater_or_equal":
		return condition.GreaterOrEqual(*n.GreaterOrEqual), nil
	case "less_or_equal":
		return condition.LessOrEqual(*n.LessOrEqual), nil
	case "equals_amount":
		tolerance := defaultTolerance
		if n.Tolerance != nil {
			tolerance = *n.Tolerance
		}
		return condition.EqualsWithTolerance(*n.EqualsAmount, tolerance)
	case "between":
		if n.AmountMin == nil || n.AmountMax == nil {
			return nil, fmt.Errorf("%w: between requires both amount_min and amount_max", common.ErrInvalidConfig)
		}
		return condition.Between(*n.AmountMin, *n.AmountMax)
	case "positive":
		return condition.Positive(), nil
	case "negative":
		return condition.Negative(), nil
	case "always":
		return condition.AlwaysTrue(), nil
	}

	return nil, fmt.Errorf("%w: unknown condition variant %q", common.ErrInvalidConfig, set[0])
}

// compileList folds child nodes into a left-associated And/Or chain.
func compileList(nodes []conditionNode, combine func(l, r condition.Condition) (condition.Condition, error)) (condition.Condition, error) {
	children := make([]condition.Condition, 0, len(nodes))
	for i := range nodes {
		child, err := compile(&nodes[i])
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	acc := children[0]
	for _, child := range children[1:] {
		var err error
		acc, err = combine(acc, child)
		if err != nil {
			return nil, err
		}
	}

	return acc, nil
}
