package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/edict/token"
)

// atom builds `name(terms...)`; with no terms it is the bare spelling.
func atom(name string, terms ...Term) *Atom {
	a := &Atom{Name: &StructuredName{Segments: []string{name}}}
	for _, t := range terms {
		a.Params = append(a.Params, &Positional{Term: t})
	}
	a.Parens = len(terms) > 0
	return a
}

func fact(atoms ...*Atom) *Fact {
	list := &LiteralList{}
	for _, a := range atoms {
		list.Literals = append(list.Literals, &Literal{Modal: &Modal{Atom: a}})
	}
	return &Fact{Literals: list}
}

func TestEqualIgnoresPositions(t *testing.T) {
	a := fact(atom("p", &Variable{Name: "x", VarPos: token.Position{Offset: 2, Line: 1, Column: 3}}))
	b := fact(atom("p", &Variable{Name: "x", VarPos: token.Position{Offset: 40, Line: 7, Column: 1}}))
	assert.True(t, EqualFormula(a, b))
}

func TestEqualIgnoresNumericSourceText(t *testing.T) {
	tests := []struct {
		name string
		a, b Object
		want bool
	}{
		{"decimal_vs_hex", Integer{Value: 31, Text: "31"}, Integer{Value: 31, Text: "0x1F"}, true},
		{"octal_vs_binary", Integer{Value: 31, Text: "0o37"}, Integer{Value: 31, Text: "0b11111"}, true},
		{"different_values", Integer{Value: 31}, Integer{Value: 32}, false},
		{"float_spellings", Float{Value: 300, Text: "3e2"}, Float{Value: 300, Text: "300."}, true},
		{"int_never_equals_float", Integer{Value: 3}, Float{Value: 3}, false},
		{"strings", String{Value: "ab"}, String{Value: "ab"}, true},
		{"string_never_equals_bytes", String{Value: "ab"}, Bytes{Value: []byte("ab")}, false},
		{"bytes", Bytes{Value: []byte{1, 2}}, Bytes{Value: []byte{1, 2}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EqualObject(tt.a, tt.b))
		})
	}
}

func TestEqualDistinguishesBareAndEmptyParens(t *testing.T) {
	bare := &Atom{Name: &StructuredName{Segments: []string{"p"}}}
	empty := &Atom{Name: &StructuredName{Segments: []string{"p"}}, Parens: true}
	assert.False(t, bare.Equal(empty))
	assert.True(t, bare.Equal(&Atom{Name: &StructuredName{Segments: []string{"p"}}}))
}

func TestEqualStructuredName(t *testing.T) {
	ab := &StructuredName{Segments: []string{"a", "b"}}
	assert.True(t, ab.Equal(&StructuredName{Segments: []string{"a", "b"}}))
	assert.False(t, ab.Equal(&StructuredName{Segments: []string{"a"}}))
	assert.False(t, ab.Equal(&StructuredName{Segments: []string{"a", "b"}, Sign: SignMinus}))

	// A dotted identifier is one segment, not a path.
	dotted := &StructuredName{Segments: []string{"a.b"}}
	assert.False(t, ab.Equal(dotted))
}

func TestEqualRuleNeverEqualsFact(t *testing.T) {
	f := fact(atom("p", &Variable{Name: "x"}))
	r := &Rule{Head: f.Literals, Body: f.Literals}
	assert.False(t, EqualFormula(f, r))
	assert.False(t, EqualFormula(r, f))
}

func TestEqualNegation(t *testing.T) {
	pos := &Literal{Modal: &Modal{Atom: atom("p")}}
	neg := &Literal{Negated: true, Modal: &Modal{Atom: atom("p")}}
	assert.False(t, pos.Equal(neg))
	assert.True(t, neg.Equal(&Literal{Negated: true, Modal: &Modal{Atom: atom("p")}}))
}

func TestEqualLiteralListOrderMatters(t *testing.T) {
	pq := fact(atom("p"), atom("q")).Literals
	qp := fact(atom("q"), atom("p")).Literals
	assert.False(t, pq.Equal(qp))
}

func TestEqualParameters(t *testing.T) {
	term := Term(&Constant{Value: Integer{Value: 1, Text: "1"}})
	named := &Named{Ref: &NameRef{Name: "col"}, Term: term}

	assert.True(t, EqualParameter(named, &Named{Ref: &NameRef{Name: "col"}, Term: term}))
	assert.False(t, EqualParameter(named, &Named{Ref: &NameRef{Name: "other"}, Term: term}))
	assert.False(t, EqualParameter(named, &Named{Ref: &PositionRef{Index: 0}, Term: term}))
	assert.False(t, EqualParameter(named, &Positional{Term: term}))
}

func TestEqualTheoryNil(t *testing.T) {
	var nilTheory *Theory
	empty := &Theory{}
	assert.True(t, nilTheory.Equal(nil))
	assert.False(t, nilTheory.Equal(empty))
	assert.True(t, empty.Equal(&Theory{}))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			"rule",
			&Rule{
				Head: fact(atom("error", &Variable{Name: "vm"})).Literals,
				Body: fact(atom("q", &Variable{Name: "vm"})).Literals,
			},
			"error(vm) :- q(vm)",
		},
		{"bare_atom", atom("p"), "p"},
		{"empty_parens", &Atom{Name: &StructuredName{Segments: []string{"p"}}, Parens: true}, "p()"},
		{
			"signed_structured_name",
			&StructuredName{Segments: []string{"a", "b", "c"}, Sign: SignMinus},
			"a:b:c-",
		},
		{
			"negated_modal",
			&Literal{Negated: true, Modal: &Modal{Op: "execute", Atom: atom("p", &Variable{Name: "x"})}},
			"not execute[p(x)]",
		},
		{
			"named_parameters",
			&Named{Ref: &PositionRef{Index: 0}, Term: &Variable{Name: "y"}},
			"0=y",
		},
		{
			"integer_keeps_source_text",
			&Constant{Value: Integer{Value: 31, Text: "0x1F"}},
			"0x1F",
		},
		{
			"integer_without_text",
			&Constant{Value: Integer{Value: 42}},
			"42",
		},
		{
			"float_without_text_stays_float_shaped",
			&Constant{Value: Float{Value: 3}},
			"3.0",
		},
		{
			"string_escapes",
			&Constant{Value: String{Value: "a\"b\\c\nd"}},
			`"a\"b\\c\nd"`,
		},
		{
			"string_control_bytes",
			&Constant{Value: String{Value: "a\x01b"}},
			`"a\x01b"`,
		},
		{
			"bytes",
			&Constant{Value: Bytes{Value: []byte{'h', 'i', 0x00}}},
			`b"hi\x00"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestRenderTheory(t *testing.T) {
	theory := &Theory{Formulas: []Formula{
		fact(atom("p", &Variable{Name: "x"})),
		fact(atom("q")),
	}}
	assert.Equal(t, "p(x)\nq\n", theory.String())
	assert.Equal(t, "", (&Theory{}).String())
}

func TestWalkOrder(t *testing.T) {
	theory := &Theory{Formulas: []Formula{
		fact(atom("p", &Variable{Name: "x"}, &Constant{Value: Integer{Value: 1}})),
	}}

	var visited []string
	Walk(theory, func(n Node) bool {
		switch n := n.(type) {
		case *Theory:
			visited = append(visited, "theory")
		case *Fact:
			visited = append(visited, "fact")
		case *LiteralList:
			visited = append(visited, "list")
		case *Literal:
			visited = append(visited, "literal")
		case *Modal:
			visited = append(visited, "modal")
		case *Atom:
			visited = append(visited, "atom")
		case *StructuredName:
			visited = append(visited, "name:"+n.String())
		case *Positional:
			visited = append(visited, "positional")
		case *Variable:
			visited = append(visited, "var:"+n.Name)
		case *Constant:
			visited = append(visited, "const:"+n.String())
		}
		return true
	})

	assert.Equal(t, []string{
		"theory", "fact", "list", "literal", "modal", "atom", "name:p",
		"positional", "var:x", "positional", "const:1",
	}, visited)
}

func TestWalkSkipsChildren(t *testing.T) {
	theory := &Theory{Formulas: []Formula{
		fact(atom("p", &Variable{Name: "x"})),
		fact(atom("q", &Variable{Name: "y"})),
	}}

	var vars int
	Walk(theory, func(n Node) bool {
		if _, ok := n.(*Variable); ok {
			vars++
		}
		// Skip everything below the first formula's literal list.
		_, isList := n.(*LiteralList)
		return !isList
	})
	assert.Zero(t, vars)
}

func TestFingerprintDeterministic(t *testing.T) {
	theory := &Theory{Formulas: []Formula{fact(atom("p", &Variable{Name: "x"}))}}
	fp := Fingerprint(theory)
	require.Len(t, fp, 64)
	assert.Equal(t, fp, Fingerprint(theory))
}

func TestFingerprintIgnoresSourceLayout(t *testing.T) {
	// Same canonical form, different numeric spellings of equal values
	// still differ in rendering, so only identical canonical text
	// collides.
	a := &Theory{Formulas: []Formula{fact(atom("p", &Constant{Value: Integer{Value: 31, Text: "31"}}))}}
	b := &Theory{Formulas: []Formula{fact(atom("p", &Constant{Value: Integer{Value: 31, Text: "31"}}))}}
	c := &Theory{Formulas: []Formula{fact(atom("p", &Constant{Value: Integer{Value: 31, Text: "0x1F"}}))}}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
}

func TestFingerprintUnicodeNormalization(t *testing.T) {
	// U+00E9 versus e + U+0301 compose to the same NFC text.
	composed := &Theory{Formulas: []Formula{fact(atom("p", &Constant{Value: String{Value: "caf\u00e9"}}))}}
	decomposed := &Theory{Formulas: []Formula{fact(atom("p", &Constant{Value: String{Value: "cafe\u0301"}}))}}
	assert.Equal(t, Fingerprint(composed), Fingerprint(decomposed))
}

func TestPosSelection(t *testing.T) {
	negPos := token.Position{Offset: 5, Line: 1, Column: 6}
	modal := &Modal{Atom: &Atom{Name: &StructuredName{
		Segments: []string{"p"},
		NamePos:  token.Position{Offset: 9, Line: 1, Column: 10},
	}}}

	neg := &Literal{Negated: true, NegPos: negPos, Modal: modal}
	assert.Equal(t, negPos, neg.Pos())

	pos := &Literal{Modal: modal}
	assert.Equal(t, modal.Pos(), pos.Pos())

	assert.Equal(t, token.Position{}, (&Theory{}).Pos())
}
