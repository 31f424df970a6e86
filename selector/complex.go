package selector

import "fmt"

// Complex is two selectors joined by a combinator. Operands may be fragments
// or other complex selectors, so values form a binary tree.
type Complex struct {
	left, right Selector
	comb        Combinator
	err         error
}

// Combine joins left and right with combinator. Invalid combinator or
// missing operand is recorded on the result, as is any error already carried
// by the operands.
func Combine(left Selector, combinator Combinator, right Selector) Complex {
	c := Complex{left: left, right: right, comb: combinator}
	switch {
	case Missing(left) || Missing(right):
		c.err = ErrMissingOperand
	case !combinator.IsValid():
		c.err = &InvalidCombinatorError{Combinator: string(combinator)}
	case left.Err() != nil:
		c.err = fmt.Errorf("left operand: %w", left.Err())
	case right.Err() != nil:
		c.err = fmt.Errorf("right operand: %w", right.Err())
	}
	return c
}

// Left returns the left operand.
func (c Complex) Left() Selector {
	return c.left
}

// Right returns the right operand.
func (c Complex) Right() Selector {
	return c.right
}

// Combinator returns the combinator joining operands.
func (c Complex) Combinator() Combinator {
	return c.comb
}

// Err returns the error recorded when the selector was combined.
func (c Complex) Err() error {
	return c.err
}

// Stringify returns operands text separated by combinator surrounded with
// single spaces. Descendant combinator therefore produces three spaces.
func (c Complex) Stringify() (string, error) {
	if c.err != nil {
		return "", c.err
	}
	l, err := c.left.Stringify()
	if err != nil {
		return "", err
	}
	r, err := c.right.Stringify()
	if err != nil {
		return "", err
	}
	return l + " " + string(c.comb) + " " + r, nil
}

func (c Complex) String() string {
	s, _ := c.Stringify()
	return s
}

// Specificity returns the sum of operand specificities.
func (c Complex) Specificity() Specificity {
	var s Specificity
	if !Missing(c.left) {
		s = s.Add(c.left.Specificity())
	}
	if !Missing(c.right) {
		s = s.Add(c.right.Specificity())
	}
	return s
}
