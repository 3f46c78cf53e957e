// Package parser turns policy source text into an AST. It is a
// hand-written recursive-descent parser over the token stream, one
// function per grammar production, with a single token of lookahead at
// every decision point:
//
//	theory      = { formula [ ";" | "." ] } EOF
//	formula     = literal_list [ ":-" literal_list ]
//	literal_list = literal { "," literal }
//	literal     = [ negation ] modal
//	modal       = ident "[" atom "]" | atom
//	atom        = structured_name [ "(" [ parameters ] ")" ]
//	parameters  = parameter { "," parameter }
//	parameter   = term | column_ref "=" term
//	column_ref  = ident | integer
//	term        = ident | integer | float | string | bytes
//	structured_name = ident { ":" ident } [ sign ]
//
// A formula without ":-" is a fact; a fact with one literal is still
// represented as a Fact wrapping a one-literal list. On the first token
// that matches no production the parser aborts with a SyntaxError and
// returns no partial AST.
package parser

import (
	"fmt"
	"strings"

	"github.com/roach88/edict/ast"
	"github.com/roach88/edict/lexer"
	"github.com/roach88/edict/token"
)

// SyntaxError reports a token sequence that matches no production. It
// carries the offending token, its position, and the set of token kinds
// that would have been acceptable there.
type SyntaxError struct {
	Pos  token.Position
	Got  token.Token
	Want []token.Kind
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	wants := make([]string, len(e.Want))
	for i, k := range e.Want {
		wants[i] = k.String()
	}
	return fmt.Sprintf("syntax error at %s: unexpected %s, expected %s",
		e.Pos, e.Got, strings.Join(wants, " or "))
}

// Position returns the location of the offending token.
func (e *SyntaxError) Position() token.Position { return e.Pos }

// ParseTheory parses a full program: zero or more formulas, each
// optionally terminated by `;` or `.`, followed by end of input. Empty
// input yields an empty theory.
func ParseTheory(input string) (*ast.Theory, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}
	theory := &ast.Theory{}
	for p.cur().Kind != token.EOF {
		f, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		theory.Formulas = append(theory.Formulas, f)
		if k := p.cur().Kind; k == token.Semicolon || k == token.Period {
			p.advance()
		}
	}
	return theory, nil
}

// ParseFormula parses exactly one formula, optionally terminated, and
// requires end of input after it.
func ParseFormula(input string) (ast.Formula, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}
	f, err := p.parseFormula()
	if err != nil {
		return nil, err
	}
	if k := p.cur().Kind; k == token.Semicolon || k == token.Period {
		p.advance()
	}
	if p.cur().Kind != token.EOF {
		return nil, p.fail(token.Semicolon, token.Period, token.EOF)
	}
	return f, nil
}

type parser struct {
	toks []token.Token
	i    int
}

func newParser(input string) (*parser, error) {
	toks, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return &parser{toks: toks}, nil
}

// cur returns the current token; the stream always ends in EOF.
func (p *parser) cur() token.Token { return p.toks[p.i] }

// peek returns the token after the current one.
func (p *parser) peek() token.Token {
	if p.i+1 < len(p.toks) {
		return p.toks[p.i+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) advance() token.Token {
	t := p.toks[p.i]
	if p.i < len(p.toks)-1 {
		p.i++
	}
	return t
}

func (p *parser) expect(k token.Kind) (token.Token, error) {
	if p.cur().Kind != k {
		return token.Token{}, p.fail(k)
	}
	return p.advance(), nil
}

func (p *parser) fail(want ...token.Kind) error {
	got := p.cur()
	return &SyntaxError{Pos: got.Pos, Got: got, Want: want}
}

func (p *parser) parseFormula() (ast.Formula, error) {
	head, err := p.parseLiteralList()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != token.ColonMinus {
		return &ast.Fact{Literals: head}, nil
	}
	p.advance()
	body, err := p.parseLiteralList()
	if err != nil {
		return nil, err
	}
	return &ast.Rule{Head: head, Body: body}, nil
}

func (p *parser) parseLiteralList() (*ast.LiteralList, error) {
	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	list := &ast.LiteralList{Literals: []*ast.Literal{lit}}
	for p.cur().Kind == token.Comma {
		p.advance()
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		list.Literals = append(list.Literals, lit)
	}
	return list, nil
}

// parseLiteral parses an optionally negated modal. Negation binds to
// exactly one modal; a second consecutive negation token fails inside
// parseModal, so double negation is a syntax error rather than a no-op.
func (p *parser) parseLiteral() (*ast.Literal, error) {
	if p.cur().Kind == token.Negation {
		neg := p.advance()
		m, err := p.parseModal()
		if err != nil {
			return nil, err
		}
		return &ast.Literal{Negated: true, NegPos: neg.Pos, Modal: m}, nil
	}
	m, err := p.parseModal()
	if err != nil {
		return nil, err
	}
	return &ast.Literal{Modal: m}, nil
}

// parseModal parses `op[atom]` or a bare atom. The grammar has no other
// bracket use, so an identifier directly followed by `[` is always the
// modal form.
func (p *parser) parseModal() (*ast.Modal, error) {
	if p.cur().Kind != token.Ident {
		return nil, p.fail(token.Ident)
	}
	if p.peek().Kind == token.LBracket {
		op := p.advance()
		p.advance() // [
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBracket); err != nil {
			return nil, err
		}
		return &ast.Modal{Op: op.Text, OpPos: op.Pos, Atom: atom}, nil
	}
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	return &ast.Modal{Atom: atom}, nil
}

// parseAtom parses a structured name with an optional parenthesized
// parameter list. `name()` and bare `name` are both legal and kept
// distinct in the AST.
func (p *parser) parseAtom() (*ast.Atom, error) {
	name, err := p.parseStructuredName()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != token.LParen {
		return &ast.Atom{Name: name}, nil
	}
	p.advance()
	if p.cur().Kind == token.RParen {
		p.advance()
		return &ast.Atom{Name: name, Parens: true}, nil
	}
	var params []ast.Parameter
	for {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.cur().Kind != token.Comma {
			break
		}
		p.advance()
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return &ast.Atom{Name: name, Parens: true, Params: params}, nil
}

func (p *parser) parseStructuredName() (*ast.StructuredName, error) {
	first, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	name := &ast.StructuredName{Segments: []string{first.Text}, NamePos: first.Pos}
	for p.cur().Kind == token.Colon {
		p.advance()
		seg, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		name.Segments = append(name.Segments, seg.Text)
	}
	if p.cur().Kind == token.Sign {
		if p.advance().Text == "+" {
			name.Sign = ast.SignPlus
		} else {
			name.Sign = ast.SignMinus
		}
	}
	return name, nil
}

// parseParameter parses a positional term or a `column_ref = term`
// named parameter. Mixing the two forms in one atom is legal here;
// rejecting or reconciling mixed parameters is a semantic-layer concern.
func (p *parser) parseParameter() (ast.Parameter, error) {
	if p.peek().Kind == token.Equals {
		switch ref := p.cur(); ref.Kind {
		case token.Ident:
			p.advance()
			p.advance() // =
			term, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			return &ast.Named{Ref: &ast.NameRef{Name: ref.Text, RefPos: ref.Pos}, Term: term}, nil
		case token.Int:
			p.advance()
			p.advance() // =
			term, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			return &ast.Named{Ref: &ast.PositionRef{Index: ref.IntVal, RefPos: ref.Pos}, Term: term}, nil
		}
	}
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return &ast.Positional{Term: term}, nil
}

// parseTerm parses a variable or constant. Consecutive string tokens
// (or byte-string tokens) concatenate into one constant, so
// whitespace-separated segments like `"ab" "cd"` yield a single value.
func (p *parser) parseTerm() (ast.Term, error) {
	switch t := p.cur(); t.Kind {
	case token.Ident:
		p.advance()
		return &ast.Variable{Name: t.Text, VarPos: t.Pos}, nil
	case token.Int:
		p.advance()
		return &ast.Constant{Value: ast.Integer{Value: t.IntVal, Text: t.Text}, ConstPos: t.Pos}, nil
	case token.Float:
		p.advance()
		return &ast.Constant{Value: ast.Float{Value: t.FloatVal, Text: t.Text}, ConstPos: t.Pos}, nil
	case token.String:
		p.advance()
		val := t.StrVal
		for p.cur().Kind == token.String {
			val += p.advance().StrVal
		}
		return &ast.Constant{Value: ast.String{Value: val}, ConstPos: t.Pos}, nil
	case token.Bytes:
		p.advance()
		val := append([]byte(nil), t.BytesVal...)
		for p.cur().Kind == token.Bytes {
			val = append(val, p.advance().BytesVal...)
		}
		return &ast.Constant{Value: ast.Bytes{Value: val}, ConstPos: t.Pos}, nil
	default:
		return nil, p.fail(token.Ident, token.Int, token.Float, token.String, token.Bytes)
	}
}
