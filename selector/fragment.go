package selector

import (
	"fmt"
	"slices"
	"strings"
)

// Fragment is a compound selector: element, id, classes, attributes,
// pseudo-classes and pseudo-element without combinators. The zero value is an
// empty fragment serializing to empty string.
type Fragment struct {
	parts []Part
	order Ordering
	seen  uint8 // unique kinds present
	err   error
}

// Element returns a copy of f with type selector added.
func (f Fragment) Element(value string) Fragment {
	return f.add(PartKindElement, value)
}

// ID returns a copy of f with id selector added.
func (f Fragment) ID(value string) Fragment {
	return f.add(PartKindId, value)
}

// Class returns a copy of f with class selector appended.
func (f Fragment) Class(value string) Fragment {
	return f.add(PartKindClass, value)
}

// Attr returns a copy of f with attribute selector appended. Value is the
// text between brackets, e.g. `href$=".png"`.
func (f Fragment) Attr(value string) Fragment {
	return f.add(PartKindAttr, value)
}

// PseudoClass returns a copy of f with pseudo-class appended.
func (f Fragment) PseudoClass(value string) Fragment {
	return f.add(PartKindPseudoClass, value)
}

// PseudoElement returns a copy of f with pseudo-element added.
func (f Fragment) PseudoElement(value string) Fragment {
	return f.add(PartKindPseudoElement, value)
}

// Add returns a copy of f with part of the given kind added.
func (f Fragment) Add(kind PartKind, value string) Fragment {
	return f.add(kind, value)
}

// f is a copy already, modifying it never touches the caller's value. Parts
// slice is always reallocated so fragments sharing a prefix stay independent.
func (f Fragment) add(kind PartKind, value string) Fragment {
	if f.err != nil {
		return f
	}
	if !kind.IsValid() {
		f.err = fmt.Errorf("unable to add selector part: %w", ErrInvalidPartKind)
		return f
	}
	if kind.Unique() && f.seen&kind.bit() != 0 {
		f.err = &DuplicatePartError{Kind: kind, Existing: f.value(kind), Value: value}
		return f
	}
	parts := make([]Part, len(f.parts), len(f.parts)+1)
	copy(parts, f.parts)
	f.parts = append(parts, Part{Kind: kind, Value: value})
	f.seen |= kind.bit()
	return f
}

func (f Fragment) value(kind PartKind) string {
	for _, p := range f.parts {
		if p.Kind == kind {
			return p.Value
		}
	}
	return ""
}

// Has reports whether fragment has at least one part of the given kind.
func (f Fragment) Has(kind PartKind) bool {
	return slices.ContainsFunc(f.parts, func(p Part) bool { return p.Kind == kind })
}

// Empty reports whether fragment has no parts.
func (f Fragment) Empty() bool {
	return len(f.parts) == 0
}

// Ordering returns serialization policy of the fragment.
func (f Fragment) Ordering() Ordering {
	return f.order
}

// WithOrdering returns a copy of f using the given serialization policy.
func (f Fragment) WithOrdering(order Ordering) Fragment {
	f.order = order
	return f
}

// Parts returns fragment parts in serialization order.
func (f Fragment) Parts() []Part {
	parts := slices.Clone(f.parts)
	slices.SortStableFunc(parts, func(a, b Part) int {
		return f.rank(a.Kind) - f.rank(b.Kind)
	})
	return parts
}

// rank positions element and id first and pseudo-element last. Repeatable
// kinds share a rank unless canonical ordering was requested.
func (f Fragment) rank(kind PartKind) int {
	switch kind {
	case PartKindElement:
		return 0
	case PartKindId:
		return 1
	case PartKindPseudoElement:
		return 5
	}
	if f.order == OrderingCanonical {
		switch kind {
		case PartKindClass:
			return 2
		case PartKindAttr:
			return 3
		}
		return 4
	}
	return 2
}

// Err returns the error recorded while building the fragment.
func (f Fragment) Err() error {
	return f.err
}

// Stringify returns canonical selector text.
func (f Fragment) Stringify() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	var sb strings.Builder
	for _, p := range f.Parts() {
		sb.WriteString(p.String())
	}
	return sb.String(), nil
}

func (f Fragment) String() string {
	s, _ := f.Stringify()
	return s
}

// Specificity returns the fragment specificity.
func (f Fragment) Specificity() Specificity {
	var s Specificity
	for _, p := range f.parts {
		s = s.Add(partSpecificity(p))
	}
	return s
}
