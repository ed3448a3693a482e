// Package category maps free-text item labels to a fixed, ordered set of
// sales categories by case-insensitive substring matching.
//
// The rule table is configuration, not logic: names and keywords come from
// a rules file (or the built-in defaults), but the tie-break contract is
// fixed — the first rule in table order with any matching keyword wins,
// regardless of keyword length, so keyword sets may safely overlap.
package category

import "strings"

// Fallback is the catch-all category for empty or unmatched labels.
const Fallback = "기타"

// Rule binds one category name to the keywords that select it.
type Rule struct {
	Name     string
	Keywords []string
}

// DefaultRules returns the built-in rule table. Order is significant.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "맑은이러닝", Keywords: []string{"맑은", "이러닝", "맑은이러닝"}},
		{Name: "콘텐츠", Keywords: []string{"콘텐츠"}},
		{Name: "위캔디오", Keywords: []string{"위캔디오", "위캔", "디오"}},
	}
}

// Classifier resolves labels against an ordered rule table.
type Classifier struct {
	rules    []Rule
	fallback string
}

// NewClassifier builds a classifier from the given rules, preserving their
// order. Keywords are lower-cased once here so Classify only lower-cases
// the input. An empty fallback defaults to Fallback.
func NewClassifier(rules []Rule, fallback string) *Classifier {
	if fallback == "" {
		fallback = Fallback
	}
	prepared := make([]Rule, 0, len(rules))
	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		if r.Name == "" || len(kws) == 0 {
			continue
		}
		prepared = append(prepared, Rule{Name: r.Name, Keywords: kws})
	}
	return &Classifier{rules: prepared, fallback: fallback}
}

// Default returns a classifier over the built-in rule table.
func Default() *Classifier {
	return NewClassifier(DefaultRules(), Fallback)
}

// Classify returns the category for a label. Empty input and labels that
// match no keyword resolve to the fallback.
func (c *Classifier) Classify(label string) string {
	if strings.TrimSpace(label) == "" {
		return c.fallback
	}
	lower := strings.ToLower(label)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Name
			}
		}
	}
	return c.fallback
}

// Categories returns the closed category set: rule names in table order,
// fallback last. Every aggregate table is keyed by this slice.
func (c *Classifier) Categories() []string {
	out := make([]string, 0, len(c.rules)+1)
	for _, r := range c.rules {
		out = append(out, r.Name)
	}
	return append(out, c.fallback)
}

// FallbackName returns the catch-all category name.
func (c *Classifier) FallbackName() string {
	return c.fallback
}
