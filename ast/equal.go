package ast

import "bytes"

// Structural equality compares logical content only. Source positions
// and the preserved source text of numeric constants are ignored: `31`
// and `0x1F` are equal. Grammar-level distinctions are kept: the
// zero-parameter atom spellings `name` and `name()` are not equal.

// Equal reports structural equality of two theories.
func (t *Theory) Equal(o *Theory) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.Formulas) != len(o.Formulas) {
		return false
	}
	for i := range t.Formulas {
		if !EqualFormula(t.Formulas[i], o.Formulas[i]) {
			return false
		}
	}
	return true
}

// EqualFormula reports structural equality of two formulas. A Rule never
// equals a Fact.
func EqualFormula(a, b Formula) bool {
	switch a := a.(type) {
	case *Rule:
		b, ok := b.(*Rule)
		return ok && a.Head.Equal(b.Head) && a.Body.Equal(b.Body)
	case *Fact:
		b, ok := b.(*Fact)
		return ok && a.Literals.Equal(b.Literals)
	default:
		return false
	}
}

// Equal reports structural equality of two literal lists, including
// order: the conjunction is order-preserving.
func (l *LiteralList) Equal(o *LiteralList) bool {
	if len(l.Literals) != len(o.Literals) {
		return false
	}
	for i := range l.Literals {
		if !l.Literals[i].Equal(o.Literals[i]) {
			return false
		}
	}
	return true
}

// Equal reports structural equality of two literals.
func (l *Literal) Equal(o *Literal) bool {
	return l.Negated == o.Negated && l.Modal.Equal(o.Modal)
}

// Equal reports structural equality of two modals.
func (m *Modal) Equal(o *Modal) bool {
	return m.Op == o.Op && m.Atom.Equal(o.Atom)
}

// Equal reports structural equality of two atoms. The `name` and
// `name()` spellings are distinct.
func (a *Atom) Equal(o *Atom) bool {
	if !a.Name.Equal(o.Name) || a.Parens != o.Parens || len(a.Params) != len(o.Params) {
		return false
	}
	for i := range a.Params {
		if !EqualParameter(a.Params[i], o.Params[i]) {
			return false
		}
	}
	return true
}

// Equal reports structural equality of two structured names.
func (n *StructuredName) Equal(o *StructuredName) bool {
	if n.Sign != o.Sign || len(n.Segments) != len(o.Segments) {
		return false
	}
	for i := range n.Segments {
		if n.Segments[i] != o.Segments[i] {
			return false
		}
	}
	return true
}

// EqualParameter reports structural equality of two parameters.
func EqualParameter(a, b Parameter) bool {
	switch a := a.(type) {
	case *Positional:
		b, ok := b.(*Positional)
		return ok && EqualTerm(a.Term, b.Term)
	case *Named:
		b, ok := b.(*Named)
		return ok && EqualColumnRef(a.Ref, b.Ref) && EqualTerm(a.Term, b.Term)
	default:
		return false
	}
}

// EqualColumnRef reports structural equality of two column references.
func EqualColumnRef(a, b ColumnRef) bool {
	switch a := a.(type) {
	case *NameRef:
		b, ok := b.(*NameRef)
		return ok && a.Name == b.Name
	case *PositionRef:
		b, ok := b.(*PositionRef)
		return ok && a.Index == b.Index
	default:
		return false
	}
}

// EqualTerm reports structural equality of two terms.
func EqualTerm(a, b Term) bool {
	switch a := a.(type) {
	case *Variable:
		b, ok := b.(*Variable)
		return ok && a.Name == b.Name
	case *Constant:
		b, ok := b.(*Constant)
		return ok && EqualObject(a.Value, b.Value)
	default:
		return false
	}
}

// EqualObject reports equality of two constant values. Integers and
// floats compare by value, not source text, so every radix spelling of
// the same number is equal. An Integer never equals a Float.
func EqualObject(a, b Object) bool {
	switch a := a.(type) {
	case Integer:
		b, ok := b.(Integer)
		return ok && a.Value == b.Value
	case Float:
		b, ok := b.(Float)
		return ok && a.Value == b.Value
	case String:
		b, ok := b.(String)
		return ok && a.Value == b.Value
	case Bytes:
		b, ok := b.(Bytes)
		return ok && bytes.Equal(a.Value, b.Value)
	default:
		return false
	}
}
