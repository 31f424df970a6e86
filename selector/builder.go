package selector

// Builder is the entry point for building selectors. It holds no state
// besides configuration, every call starts a new independent fragment. Zero
// value is ready to use.
type Builder struct {
	Ordering Ordering
}

// NewBuilder returns builder with the given serialization policy.
func NewBuilder(order Ordering) Builder {
	return Builder{Ordering: order}
}

func (b Builder) start() Fragment {
	return Fragment{order: b.Ordering}
}

// Element starts a fragment with type selector.
func (b Builder) Element(value string) Fragment {
	return b.start().Element(value)
}

// ID starts a fragment with id selector.
func (b Builder) ID(value string) Fragment {
	return b.start().ID(value)
}

// Class starts a fragment with class selector.
func (b Builder) Class(value string) Fragment {
	return b.start().Class(value)
}

// Attr starts a fragment with attribute selector.
func (b Builder) Attr(value string) Fragment {
	return b.start().Attr(value)
}

// PseudoClass starts a fragment with pseudo-class.
func (b Builder) PseudoClass(value string) Fragment {
	return b.start().PseudoClass(value)
}

// PseudoElement starts a fragment with pseudo-element.
func (b Builder) PseudoElement(value string) Fragment {
	return b.start().PseudoElement(value)
}

// Fragment starts a fragment from parts given in insertion order.
func (b Builder) Fragment(parts ...Part) Fragment {
	f := b.start()
	for _, p := range parts {
		f = f.add(p.Kind, p.Value)
	}
	return f
}

// Combine joins two selectors, see Combine.
func (b Builder) Combine(left Selector, combinator Combinator, right Selector) Complex {
	return Combine(left, combinator, right)
}
