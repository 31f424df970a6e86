package selector

// Kind of a simple selector component.
// ENUM(element, id, class, attr, pseudoClass, pseudoElement)
type PartKind int

// Unique reports whether CSS allows at most one part of this kind in a
// compound selector.
func (x PartKind) Unique() bool {
	return x == PartKindElement || x == PartKindId || x == PartKindPseudoElement
}

func (x PartKind) bit() uint8 {
	return 1 << uint8(x)
}

// Serialization policy for repeatable parts (class, attr, pseudoClass).
// ENUM(insertion, canonical)
type Ordering int
