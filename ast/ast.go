// Package ast defines the node types produced by the parser: a theory of
// formulas, each a rule or a bare fact over literals, modals, atoms,
// parameters, and terms.
//
// Nodes are immutable once constructed and tree-shaped: every node
// exclusively owns its children and a fresh, independent tree is built on
// every parse. Node categories with structurally distinct variants
// (Formula, Parameter, ColumnRef, Term, Object) are sealed interfaces with
// an unexported marker method, so downstream type switches stay
// exhaustive. Every node carries a source position for diagnostics;
// positions never participate in structural equality.
package ast

import "github.com/roach88/edict/token"

// Node is implemented by every AST node.
type Node interface {
	// Pos reports where the node begins in the source text.
	Pos() token.Position
	// String renders the node in canonical, re-parseable form.
	String() string
}

// Theory is an ordered collection of formulas: one parsed program.
type Theory struct {
	Formulas []Formula
}

// Pos returns the position of the first formula, or the zero position
// for an empty theory.
func (t *Theory) Pos() token.Position {
	if len(t.Formulas) == 0 {
		return token.Position{}
	}
	return t.Formulas[0].Pos()
}

// Formula is a Rule or a Fact. Sealed.
type Formula interface {
	Node
	formula()
}

// Rule is `head :- body`: the head literals hold whenever the body
// literals do. Head and body are each non-empty.
type Rule struct {
	Head *LiteralList
	Body *LiteralList
}

func (*Rule) formula() {}

// Pos returns the position of the rule head.
func (r *Rule) Pos() token.Position { return r.Head.Pos() }

// Fact is an unconditionally true literal list. A bare single modal and
// a multi-literal conjunctive fact are represented uniformly: both are a
// Fact wrapping a LiteralList.
type Fact struct {
	Literals *LiteralList
}

func (*Fact) formula() {}

// Pos returns the position of the first literal.
func (f *Fact) Pos() token.Position { return f.Literals.Pos() }

// LiteralList is a non-empty, order-preserving conjunction of literals.
// Order affects diagnostics, not logical meaning.
type LiteralList struct {
	Literals []*Literal
}

// Pos returns the position of the first literal.
func (l *LiteralList) Pos() token.Position {
	if len(l.Literals) == 0 {
		return token.Position{}
	}
	return l.Literals[0].Pos()
}

// Literal is an optionally negated modal. Negation is a prefix marker
// binding exactly one modal; the parser rejects double negation.
type Literal struct {
	Negated bool
	Modal   *Modal
	// NegPos is the position of the negation marker when Negated.
	NegPos token.Position
}

// Pos returns the position of the negation marker, or of the modal for a
// positive literal.
func (l *Literal) Pos() token.Position {
	if l.Negated {
		return l.NegPos
	}
	return l.Modal.Pos()
}

// Modal is an atom, optionally wrapped by a named modal operator:
// `op[atom]`. The operator is an uninterpreted identifier at this layer;
// Op is empty for a plain atom.
type Modal struct {
	Op    string
	OpPos token.Position
	Atom  *Atom
}

// Pos returns the position of the modal operator, or of the atom when
// there is none.
func (m *Modal) Pos() token.Position {
	if m.Op != "" {
		return m.OpPos
	}
	return m.Atom.Pos()
}

// Atom is a structured name applied to parameters. The two zero-parameter
// spellings are distinct and both preserved: Parens is true for `name()`
// (a declared zero-arity atom) and false for bare `name` (an elided
// parameter list). When Params is non-empty Parens is always true.
type Atom struct {
	Name   *StructuredName
	Parens bool
	Params []Parameter
}

// Pos returns the position of the atom's name.
func (a *Atom) Pos() token.Position { return a.Name.Pos() }

// Sign is the optional polarity suffix of a structured name.
type Sign int

const (
	SignNone Sign = iota
	SignPlus
	SignMinus
)

// StructuredName is one or more `:`-joined identifier segments with an
// optional trailing sign. Segments may themselves contain `.`, which is
// an identifier character, not a separator; embedded dots are preserved
// verbatim.
type StructuredName struct {
	Segments []string
	Sign     Sign
	NamePos  token.Position
}

// Pos returns the position of the first segment.
func (n *StructuredName) Pos() token.Position { return n.NamePos }

// Parameter is a positional or named argument of an atom. Sealed.
type Parameter interface {
	Node
	parameter()
}

// Positional is a bare term parameter, bound by argument position.
type Positional struct {
	Term Term
}

func (*Positional) parameter() {}

// Pos returns the position of the term.
func (p *Positional) Pos() token.Position { return p.Term.Pos() }

// Named is a `column = term` parameter, bound by column reference.
type Named struct {
	Ref  ColumnRef
	Term Term
}

func (*Named) parameter() {}

// Pos returns the position of the column reference.
func (p *Named) Pos() token.Position { return p.Ref.Pos() }

// ColumnRef identifies a parameter slot by name or by numeric position.
// Sealed.
type ColumnRef interface {
	Node
	columnRef()
}

// NameRef refers to a column by name.
type NameRef struct {
	Name   string
	RefPos token.Position
}

func (*NameRef) columnRef() {}

// Pos returns the position of the column name.
func (r *NameRef) Pos() token.Position { return r.RefPos }

// PositionRef refers to a column by index, as written in the source.
// Whether indices are zero- or one-based is a semantic-layer concern.
type PositionRef struct {
	Index  int64
	RefPos token.Position
}

func (*PositionRef) columnRef() {}

// Pos returns the position of the index.
func (r *PositionRef) Pos() token.Position { return r.RefPos }

// Term is a variable or a constant. Variables and relation-name segments
// share one lexical class; the grammar distinguishes them structurally,
// so any identifier in term position is a Variable. Sealed.
type Term interface {
	Node
	term()
}

// Variable is an identifier used as a term.
type Variable struct {
	Name   string
	VarPos token.Position
}

func (*Variable) term() {}

// Pos returns the position of the variable.
func (v *Variable) Pos() token.Position { return v.VarPos }

// Constant is a literal object used as a term.
type Constant struct {
	Value    Object
	ConstPos token.Position
}

func (*Constant) term() {}

// Pos returns the position of the literal.
func (c *Constant) Pos() token.Position { return c.ConstPos }

// Object is the value of a constant: integer, float, string, or byte
// string. Sealed.
type Object interface {
	object()
	// String renders the object in canonical, re-parseable form.
	String() string
}

// Integer is an integer constant. Text preserves the literal as written
// (radix and formatting) for round-trip diagnostics; equality compares
// Value only.
type Integer struct {
	Value int64
	Text  string
}

func (Integer) object() {}

// Float is a float constant. Text preserves the literal as written;
// equality compares Value only.
type Float struct {
	Value float64
	Text  string
}

func (Float) object() {}

// String is a string constant holding the fully unescaped text.
type String struct {
	Value string
}

func (String) object() {}

// Bytes is a byte-string constant holding the raw 8-bit content.
type Bytes struct {
	Value []byte
}

func (Bytes) object() {}
