// Package token defines the lexical tokens of the edict policy language
// and the source positions carried through the parse for diagnostics.
package token

import "fmt"

// Kind identifies the lexical class of a token.
//
// Declaration order matters: the lexer resolves equal-length matches in
// favor of the earlier-declared kind. Punctuation comes before Sign so a
// lone `-` inside `:-` never splits; Negation comes before Ident so `not`
// is a keyword while `notx` stays an identifier; Int comes before Float
// only nominally (they never tie); Float comes before Ident so `.5` is a
// number while `.x` is an identifier.
type Kind int

const (
	// Punctuation and operators.
	Comma        Kind = iota // ,
	ColonMinus               // :-
	Colon                    // : (structured-name segment separator)
	LParen                   // (
	RParen                   // )
	LBracket                 // [
	RBracket                 // ]
	Equals                   // =
	Semicolon                // ; (formula terminator)
	Period                   // . (formula terminator)
	Sign                     // bare + or -, structured-name suffix only
	Negation                 // not | NOT | !
	Int                      // 42, 0x2A, 0o52, 0b101010
	Float                    // 3., .5, 3.5e-2, 3e2
	String                   // "s", 'ab' "cd", r'raw', '''multi'''
	Bytes                    // b"s", rb'...', BR'''...'''
	Ident                    // relation segment, variable, modal op, column
	EOF
)

// String returns the grammar-facing name of the kind, used in syntax
// error messages ("expected one of ...").
func (k Kind) String() string {
	switch k {
	case Comma:
		return "','"
	case ColonMinus:
		return "':-'"
	case Colon:
		return "':'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case Equals:
		return "'='"
	case Semicolon:
		return "';'"
	case Period:
		return "'.'"
	case Sign:
		return "sign"
	case Negation:
		return "negation"
	case Int:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Bytes:
		return "byte string"
	case Ident:
		return "identifier"
	case EOF:
		return "end of input"
	default:
		return "unknown"
	}
}

// Position is a location in the source text. Offset is the 0-based byte
// offset; Line and Column are 1-based. Column counts bytes, which is exact
// for the language's ASCII-only lexical grammar.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String renders the position as line:column for error messages.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is one lexical token. Text is the raw matched source, preserved
// so numeric constants keep their original radix and formatting.
//
// Cooked values are populated by the lexer for literal kinds only:
// StrVal for String (fully unescaped, adjacent segments joined),
// BytesVal for Bytes, IntVal for Int, FloatVal for Float.
type Token struct {
	Kind     Kind
	Text     string
	Pos      Position
	StrVal   string
	BytesVal []byte
	IntVal   int64
	FloatVal float64
}

// String renders the token for error messages and debugging.
func (t Token) String() string {
	if t.Kind == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}
