// Package selector assembles CSS selectors from fragments and combinators.
//
// Values produced here are immutable: every call that adds a part returns a
// new value and leaves its receiver untouched, so a partially built fragment
// may be reused as the start of several selectors. Selector text supplied by
// the caller is never parsed, it is only placed behind the proper sigil.
package selector

import "strings"

// Selector is implemented by both compound selectors (Fragment) and
// combinations of selectors (Complex).
type Selector interface {
	// Stringify returns canonical selector text or the error recorded while
	// the selector was built.
	Stringify() (string, error)
	// String returns the same text as Stringify, or empty string on error.
	String() string
	// Err returns the error recorded while the selector was built.
	Err() error
	// Specificity returns the selector specificity.
	Specificity() Specificity
}

// Part is a single component of a compound selector.
type Part struct {
	Kind  PartKind
	Value string
}

// String returns the part with its CSS sigil.
func (p Part) String() string {
	switch p.Kind {
	case PartKindId:
		return "#" + p.Value
	case PartKindClass:
		return "." + p.Value
	case PartKindAttr:
		return "[" + p.Value + "]"
	case PartKindPseudoClass:
		return ":" + p.Value
	case PartKindPseudoElement:
		return "::" + p.Value
	default:
		return p.Value
	}
}

// Combinator joins two selectors.
type Combinator string

const (
	Descendant Combinator = " "
	Adjacent   Combinator = "+"
	General    Combinator = "~"
	Child      Combinator = ">"
)

// IsValid reports whether c is one of the supported combinators.
func (c Combinator) IsValid() bool {
	switch c {
	case Descendant, Adjacent, General, Child:
		return true
	}
	return false
}

// Name returns human readable combinator name.
func (c Combinator) Name() string {
	switch c {
	case Descendant:
		return "descendant"
	case Adjacent:
		return "adjacent-sibling"
	case General:
		return "general-sibling"
	case Child:
		return "child"
	default:
		return "unknown"
	}
}

// ParseCombinator converts symbol to Combinator. Whitespace only symbols of
// any length are treated as descendant combinator.
func ParseCombinator(symbol string) (Combinator, error) {
	if len(symbol) > 0 && strings.TrimSpace(symbol) == "" {
		return Descendant, nil
	}
	c := Combinator(symbol)
	if !c.IsValid() {
		return c, &InvalidCombinatorError{Combinator: symbol}
	}
	return c, nil
}

// Specificity holds selector specificity as (ids, classes, types) counts.
type Specificity [3]int

// Add returns the sum of two specificities.
func (s Specificity) Add(other Specificity) Specificity {
	return Specificity{s[0] + other[0], s[1] + other[1], s[2] + other[2]}
}

// Less reports whether s has lower precedence than other.
func (s Specificity) Less(other Specificity) bool {
	for i := range s {
		if s[i] != other[i] {
			return s[i] < other[i]
		}
	}
	return false
}

func partSpecificity(p Part) Specificity {
	switch p.Kind {
	case PartKindId:
		return Specificity{1, 0, 0}
	case PartKindClass, PartKindAttr, PartKindPseudoClass:
		return Specificity{0, 1, 0}
	case PartKindElement:
		// universal selector does not count
		if p.Value == "*" {
			return Specificity{}
		}
		return Specificity{0, 0, 1}
	case PartKindPseudoElement:
		return Specificity{0, 0, 1}
	}
	return Specificity{}
}

// Missing reports whether sel holds no selector: nil interface or nil
// pointer to one of the package selector types.
func Missing(sel Selector) bool {
	switch s := sel.(type) {
	case nil:
		return true
	case *Fragment:
		return s == nil
	case *Complex:
		return s == nil
	}
	return false
}
