package classifier

import (
	"github.com/Veraticus/finsift/internal/common"
	"github.com/Veraticus/finsift/internal/condition"
)

// Builder assembles a classifier from ordered Register calls. It is not
// safe for concurrent use; registration must finish before the built
// classifier is shared.
type Builder struct {
	sink  DiagnosticSink
	rules []Rule
}

// NewBuilder returns an empty classifier builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithDiagnosticSink injects the callback that receives condition
// evaluation failures. Without one, failures are logged through slog.
func (b *Builder) WithDiagnosticSink(sink DiagnosticSink) *Builder {
	b.sink = sink
	return b
}

// Register appends a rule; its priority is the registration index, so
// earlier calls take precedence at classification time. A nil condition
// registers a catch-all.
func (b *Builder) Register(category string, cond condition.Condition) *Builder {
	if cond == nil {
		cond = condition.AlwaysTrue()
	}

	b.rules = append(b.rules, Rule{
		Condition: cond,
		Category:  category,
		Priority:  len(b.rules),
	})

	return b
}

// Build validates every registered rule and returns a sealed classifier.
// It fails with a configuration error when no rules were registered or
// any rule is invalid; there is no partial construction.
func (b *Builder) Build() (*Classifier, error) {
	if len(b.rules) == 0 {
		return nil, common.ErrNoRules
	}

	for _, rule := range b.rules {
		if err := rule.validate(); err != nil {
			return nil, err
		}
	}

	sink := b.sink
	if sink == nil {
		sink = slogSink
	}

	rules := make([]Rule, len(b.rules))
	copy(rules, b.rules)

	return &Classifier{rules: rules, sink: sink}, nil
}
