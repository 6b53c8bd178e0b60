package condition

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finsift/internal/common"
	"github.com/Veraticus/finsift/internal/model"
)

// TextOption configures a text condition at construction time.
type TextOption func(*textMatcher)

// CaseSensitive disables the default lower-casing of both the transaction
// description and the search terms.
func CaseSensitive() TextOption {
	return func(m *textMatcher) {
		m.caseSensitive = true
	}
}

// textMatcher holds the term set and normalization shared by all text
// conditions.
type textMatcher struct {
	terms         []string
	caseSensitive bool
}

func newTextMatcher(terms []string, opts []TextOption) (textMatcher, error) {
	if len(terms) == 0 {
		return textMatcher{}, fmt.Errorf("%w: text condition requires at least one term", common.ErrInvalidConfig)
	}

	m := textMatcher{terms: append([]string(nil), terms...)}
	for _, opt := range opts {
		opt(&m)
	}

	return m, nil
}

func (m textMatcher) normalize(s string) string {
	if m.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

func (m textMatcher) text(txn model.Transaction) string {
	return m.normalize(txn.Description)
}

// quotedTerms renders the term list for Describe, e.g. `"a" OR "b"`.
func (m textMatcher) quotedTerms(sep string) string {
	quoted := make([]string, len(m.terms))
	for i, t := range m.terms {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(quoted, sep)
}

type containsAll struct {
	textMatcher
}

// ContainsAll matches when the description contains every term.
func ContainsAll(terms []string, opts ...TextOption) (Condition, error) {
	m, err := newTextMatcher(terms, opts)
	if err != nil {
		return nil, err
	}
	return containsAll{m}, nil
}

func (c containsAll) Matches(txn model.Transaction) bool {
	text := c.text(txn)
	for _, term := range c.terms {
		if !strings.Contains(text, c.normalize(term)) {
			return false
		}
	}
	return true
}

func (c containsAll) Describe() string {
	return "text contains all: " + c.quotedTerms(" AND ")
}

type containsAny struct {
	textMatcher
}

// ContainsAny matches when the description contains at least one term.
func ContainsAny(terms []string, opts ...TextOption) (Condition, error) {
	m, err := newTextMatcher(terms, opts)
	if err != nil {
		return nil, err
	}
	return containsAny{m}, nil
}

func (c containsAny) Matches(txn model.Transaction) bool {
	text := c.text(txn)
	for _, term := range c.terms {
		if strings.Contains(text, c.normalize(term)) {
			return true
		}
	}
	return false
}

func (c containsAny) Describe() string {
	return "text contains any: " + c.quotedTerms(" OR ")
}

type startsWith struct {
	textMatcher
}

// StartsWith matches when the description starts with any of the terms.
func StartsWith(terms []string, opts ...TextOption) (Condition, error) {
	m, err := newTextMatcher(terms, opts)
	if err != nil {
		return nil, err
	}
	return startsWith{m}, nil
}

func (c startsWith) Matches(txn model.Transaction) bool {
	text := c.text(txn)
	for _, term := range c.terms {
		if strings.HasPrefix(text, c.normalize(term)) {
			return true
		}
	}
	return false
}

func (c startsWith) Describe() string {
	return "text starts with: " + c.quotedTerms(" OR ")
}

type endsWith struct {
	textMatcher
}

// EndsWith matches when the description ends with any of the terms.
func EndsWith(terms []string, opts ...TextOption) (Condition, error) {
	m, err := newTextMatcher(terms, opts)
	if err != nil {
		return nil, err
	}
	return endsWith{m}, nil
}

func (c endsWith) Matches(txn model.Transaction) bool {
	text := c.text(txn)
	for _, term := range c.terms {
		if strings.HasSuffix(text, c.normalize(term)) {
			return true
		}
	}
	return false
}

func (c endsWith) Describe() string {
	return "text ends with: " + c.quotedTerms(" OR ")
}

type equalsAny struct {
	textMatcher
}

// EqualsAny matches when the description equals any of the terms exactly
// (after normalization).
func EqualsAny(terms []string, opts ...TextOption) (Condition, error) {
	m, err := newTextMatcher(terms, opts)
	if err != nil {
		return nil, err
	}
	return equalsAny{m}, nil
}

func (c equalsAny) Matches(txn model.Transaction) bool {
	text := c.text(txn)
	for _, term := range c.terms {
		if text == c.normalize(term) {
			return true
		}
	}
	return false
}

func (c equalsAny) Describe() string {
	return "text equals: " + c.quotedTerms(" OR ")
}
