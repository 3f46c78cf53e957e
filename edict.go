// Package edict is the front end for a declarative Datalog-style policy
// language: rules and facts over modal-annotated atoms with named and
// positional parameters and dotted, colon-segmented relation names.
//
// The package converts rule source text into a typed abstract syntax
// tree and back to a canonical textual form:
//
//	theory, err := edict.ParseTheory(src)
//	if err != nil { ... }
//	fmt.Print(edict.Render(theory))
//
// Parsing is a pure function of the input text: no shared state, no
// I/O, and independent calls are safe to run concurrently. A failed
// parse returns exactly one of the two error kinds - a lexer.Error for
// an unmatchable or malformed character sequence, or a
// parser.SyntaxError for a token sequence matching no production - and
// never a partial tree.
package edict

import (
	"errors"

	"github.com/roach88/edict/ast"
	"github.com/roach88/edict/lexer"
	"github.com/roach88/edict/parser"
	"github.com/roach88/edict/token"
)

// ParseError is satisfied by both error kinds the front end can
// produce. It adds the offending source position to the standard error
// text.
type ParseError interface {
	error
	Position() token.Position
}

// ParseTheory parses a full program: zero or more formulas. Empty input
// is a valid empty theory.
func ParseTheory(text string) (*ast.Theory, error) {
	return parser.ParseTheory(text)
}

// ParseFormula parses exactly one formula, as used by single-rule
// insertion surfaces.
func ParseFormula(text string) (ast.Formula, error) {
	return parser.ParseFormula(text)
}

// Render returns the canonical textual form of any AST node. The result
// re-parses to a tree structurally equal to the original, though not
// necessarily byte-identical to the source it came from.
func Render(n ast.Node) string {
	return n.String()
}

// IsLexicalError reports whether err is (or wraps) a lexical error:
// an unmatchable character sequence or malformed literal.
func IsLexicalError(err error) bool {
	var le *lexer.Error
	return errors.As(err, &le)
}

// IsSyntaxError reports whether err is (or wraps) a syntax error: a
// well-formed token stream that matches no grammar production.
func IsSyntaxError(err error) bool {
	var se *parser.SyntaxError
	return errors.As(err, &se)
}

// AsParseError extracts the ParseError from err, if any, for callers
// that want the offending position.
func AsParseError(err error) (ParseError, bool) {
	var le *lexer.Error
	if errors.As(err, &le) {
		return le, true
	}
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
