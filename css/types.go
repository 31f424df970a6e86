// Package css writes stylesheets for selectors produced by package selector.
package css

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"sort"
	"strings"

	"csssel/selector"
)

var ErrNoSelectors = errors.New("rule has no selectors")

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func cssEscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Rule represents a single CSS rule (selector group + properties).
type Rule struct {
	Selectors  []selector.Selector // Grouped selectors, written comma separated
	Properties map[string]string   // Property name -> raw value
}

// NewRule creates rule for the given selectors with no properties.
func NewRule(sels ...selector.Selector) Rule {
	return Rule{Selectors: sels, Properties: make(map[string]string)}
}

// Set returns rule with property added, replacing previous value if any.
// Properties of r are left untouched.
func (r Rule) Set(name, value string) Rule {
	props := make(map[string]string, len(r.Properties)+1)
	maps.Copy(props, r.Properties)
	props[name] = value
	r.Properties = props
	return r
}

// SelectorText returns selector group text, or first error carried by any
// of the selectors.
func (r Rule) SelectorText() (string, error) {
	if len(r.Selectors) == 0 {
		return "", ErrNoSelectors
	}
	texts := make([]string, 0, len(r.Selectors))
	for i, sel := range r.Selectors {
		if selector.Missing(sel) {
			return "", fmt.Errorf("selector %d: %w", i, selector.ErrMissingOperand)
		}
		s, err := sel.Stringify()
		if err != nil {
			return "", fmt.Errorf("selector %d: %w", i, err)
		}
		texts = append(texts, s)
	}
	return strings.Join(texts, ", "), nil
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule, MediaBlock, or Import is non-nil.
type StylesheetItem struct {
	Rule       *Rule       // A plain rule (selector + properties)
	MediaBlock *MediaBlock // A @media block containing nested rules
	Import     *string     // An @import URL
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query string
	Rules []Rule
}

// Stylesheet is an ordered list of items.
type Stylesheet struct {
	Items []StylesheetItem // All top-level items in insertion order
}

// AddImport appends @import item.
func (s *Stylesheet) AddImport(url string) {
	s.Items = append(s.Items, StylesheetItem{Import: &url})
}

// AddRule appends plain rule.
func (s *Stylesheet) AddRule(rule Rule) {
	s.Items = append(s.Items, StylesheetItem{Rule: &rule})
}

// AddMedia appends @media block with the given rules.
func (s *Stylesheet) AddMedia(query string, rules ...Rule) {
	s.Items = append(s.Items, StylesheetItem{MediaBlock: &MediaBlock{Query: query, Rules: rules}})
}

// WriteTo writes the stylesheet to w in insertion order, implementing io.WriterTo.
// Property order within a rule is sorted alphabetically for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.Import != nil:
			n, err = fmt.Fprintf(w, "@import url(\"%s\");\n", cssEscapeDoubleQuoted(*item.Import))
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock)
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule, "")
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet. Output stops at the first
// rule with broken selector, use WriteTo to get the error.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w, every line prefixed with indent.
func writeRule(w io.Writer, rule *Rule, indent string) (int, error) {
	text, err := rule.SelectorText()
	if err != nil {
		return 0, err
	}

	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, text)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeProperties(w, rule.Properties, indent+"  ")
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// writeProperties writes property declarations sorted alphabetically.
func writeProperties(w io.Writer, props map[string]string, indent string) (int, error) {
	// Sort property names for deterministic output
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var total int
	for _, name := range names {
		n, err := fmt.Fprintf(w, "%s%s: %s;\n", indent, name, props[name])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// writeMediaBlock writes an @media block to w.
func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", mb.Query)
	total += n
	if err != nil {
		return total, err
	}

	for i := range mb.Rules {
		n, err = writeRule(w, &mb.Rules[i], "  ")
		total += n
		if err != nil {
			return total, err
		}

		// Blank line between rules in a media block (except after last)
		if i < len(mb.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += n
			if err != nil {
				return total, err
			}
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
