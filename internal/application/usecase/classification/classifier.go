// Package classification contains the keyword classifier and its use cases.
package classification

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// Classifier assigns (category, cost center, department) by ordered keyword matching.
// Matching is case-insensitive substring containment over "description memo";
// the first rule of the table that matches wins. The table is never mutated
// after construction, so Classify is a pure function of its arguments.
type Classifier struct {
	rules  valueobject.RuleTable
	folded []string
}

// NewClassifier creates a Classifier over a copy of rules.
func NewClassifier(rules valueobject.RuleTable) *Classifier {
	table := make(valueobject.RuleTable, len(rules))
	copy(table, rules)

	folded := make([]string, len(table))
	for i, rule := range table {
		folded[i] = fold(rule.Keyword)
	}

	return &Classifier{rules: table, folded: folded}
}

// Classify returns the classification of the first matching rule, or the unclassified default.
func (c *Classifier) Classify(description, memo string) valueobject.Classification {
	text := MatchText(description, memo)
	for i, keyword := range c.folded {
		if keyword != "" && strings.Contains(text, keyword) {
			return c.rules[i].Classification
		}
	}
	return valueobject.Unclassified()
}

// Rules returns a copy of the rule table in evaluation order.
func (c *Classifier) Rules() valueobject.RuleTable {
	table := make(valueobject.RuleTable, len(c.rules))
	copy(table, c.rules)
	return table
}

// MatchText builds the case-folded text the rules are matched against.
func MatchText(description, memo string) string {
	return fold(description + " " + memo)
}

// ContainsKeyword reports whether keyword occurs in the match text of description and memo.
func ContainsKeyword(keyword, description, memo string) bool {
	return strings.Contains(MatchText(description, memo), fold(keyword))
}

// fold builds a fresh Caser per call; a Caser carries state and must not be shared.
func fold(s string) string {
	return cases.Fold().String(s)
}
