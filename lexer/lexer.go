// Package lexer converts policy source text into a sequence of typed
// tokens. Matching is maximal munch: at each position every token kind is
// tried, the longest match wins, and a tie goes to the earlier-declared
// kind (see token.Kind). Comments and whitespace are recognized and
// discarded, never emitted.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/edict/token"
)

// Error is a lexical error: an unmatchable character sequence or a
// malformed literal. It carries the offending position and source
// fragment. The lexer reports once and does not recover.
type Error struct {
	Pos      token.Position
	Message  string
	Fragment string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("lexical error at %s: %s: %q", e.Pos, e.Message, e.Fragment)
	}
	return fmt.Sprintf("lexical error at %s: %s", e.Pos, e.Message)
}

// Position returns the location of the offending input.
func (e *Error) Position() token.Position { return e.Pos }

// Tokenize scans the entire input and returns its tokens, terminated by
// an EOF token. On a lexical error the tokens scanned so far are
// discarded and only the error is returned.
func Tokenize(input string) ([]token.Token, error) {
	l := &lexer{input: input, line: 1, column: 1}
	var toks []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

type lexer struct {
	input  string
	offset int
	line   int
	column int
}

func (l *lexer) pos() token.Position {
	return token.Position{Offset: l.offset, Line: l.line, Column: l.column}
}

// advance consumes n bytes, keeping line/column in sync.
func (l *lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.input[l.offset+i] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.offset += n
}

func (l *lexer) errf(pos token.Position, fragment, format string, args ...any) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...), Fragment: fragment}
}

// next returns the next token, skipping comments and whitespace first.
func (l *lexer) next() (token.Token, error) {
	if err := l.skipTrivia(); err != nil {
		return token.Token{}, err
	}
	pos := l.pos()
	if l.offset >= len(l.input) {
		return token.Token{Kind: token.EOF, Pos: pos}, nil
	}
	s := l.input[l.offset:]

	// Try every kind in declaration order; longest match wins, ties go
	// to the earliest. The integer matcher may instead report a
	// malformed literal (leading zero, empty radix prefix); that error
	// only surfaces if no other kind matches past the offending digits,
	// so `012.5` still lexes as a float. String errors (unterminated,
	// bad content) are immediately fatal: nothing else can match a
	// quoted literal.
	best := token.Token{Pos: pos}
	bestLen := 0
	consider := func(kind token.Kind, n int) {
		if n > bestLen {
			best = token.Token{Kind: kind, Text: s[:n], Pos: pos}
			bestLen = n
		}
	}

	if kind, n := matchPunct(s); n > 0 {
		consider(kind, n)
	}
	if s[0] == '+' || s[0] == '-' {
		consider(token.Sign, 1)
	}
	if n := matchNegation(s); n > 0 {
		consider(token.Negation, n)
	}
	intLen, intErrLen, intMsg := matchInt(s)
	consider(token.Int, intLen)
	if n := matchFloat(s); n > 0 {
		consider(token.Float, n)
	}
	strTok, strLen, strErr := l.matchString(s, pos)
	if strErr != nil {
		return token.Token{}, strErr
	}
	if strLen > bestLen {
		best = strTok
		bestLen = strLen
	}
	if n := matchIdent(s); n > 0 {
		consider(token.Ident, n)
	}

	if intMsg != "" && bestLen <= intErrLen {
		return token.Token{}, l.errf(pos, leadingFragment(s), "%s", intMsg)
	}
	if bestLen == 0 {
		return token.Token{}, l.errf(pos, leadingFragment(s), "unexpected character %q", rune(s[0]))
	}

	switch best.Kind {
	case token.Int:
		v, err := parseIntText(best.Text)
		if err != nil {
			return token.Token{}, l.errf(pos, best.Text, "invalid integer literal: %v", err)
		}
		best.IntVal = v
	case token.Float:
		v, err := strconv.ParseFloat(best.Text, 64)
		if err != nil {
			return token.Token{}, l.errf(pos, best.Text, "invalid float literal: %v", err)
		}
		best.FloatVal = v
	}
	l.advance(bestLen)
	return best, nil
}

// leadingFragment clips the offending run for error reporting.
func leadingFragment(s string) string {
	n := 0
	for n < len(s) && n < 12 && !isSpace(s[n]) {
		n++
	}
	return s[:n]
}

// skipTrivia consumes whitespace and all three comment forms. An
// unterminated block comment is a lexical error.
func (l *lexer) skipTrivia() error {
	for l.offset < len(l.input) {
		c := l.input[l.offset]
		switch {
		case isSpace(c):
			l.advance(1)
		case c == '#':
			l.skipToEOL()
		case c == '/' && l.offset+1 < len(l.input) && l.input[l.offset+1] == '/':
			l.skipToEOL()
		case c == '/' && l.offset+1 < len(l.input) && l.input[l.offset+1] == '*':
			pos := l.pos()
			end := strings.Index(l.input[l.offset+2:], "*/")
			if end < 0 {
				return l.errf(pos, "/*", "unterminated block comment")
			}
			l.advance(2 + end + 2)
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) skipToEOL() {
	n := 0
	for l.offset+n < len(l.input) && l.input[l.offset+n] != '\n' {
		n++
	}
	l.advance(n)
}

func matchPunct(s string) (token.Kind, int) {
	if strings.HasPrefix(s, ":-") {
		return token.ColonMinus, 2
	}
	switch s[0] {
	case ',':
		return token.Comma, 1
	case ':':
		return token.Colon, 1
	case '(':
		return token.LParen, 1
	case ')':
		return token.RParen, 1
	case '[':
		return token.LBracket, 1
	case ']':
		return token.RBracket, 1
	case '=':
		return token.Equals, 1
	case ';':
		return token.Semicolon, 1
	case '.':
		return token.Period, 1
	}
	return 0, 0
}

func matchNegation(s string) int {
	if s[0] == '!' {
		return 1
	}
	if strings.HasPrefix(s, "not") || strings.HasPrefix(s, "NOT") {
		return 3
	}
	return 0
}

// matchInt matches decimal, hex (0x), octal (0o), and binary (0b)
// integer literals. A radix prefix with no digits, or a leading zero
// followed by a nonzero decimal digit, is a malformed literal: msg
// carries the error and errLen the extent of the offending prefix, so
// the caller can tell whether a longer match of another kind (a float
// such as `012.5`) supersedes the error.
func matchInt(s string) (n, errLen int, msg string) {
	if !isDigit(s[0]) {
		return 0, 0, ""
	}
	if s[0] == '0' && len(s) > 1 {
		radix := func(name string, valid func(byte) bool) (int, int, string) {
			i := 2
			for i < len(s) && valid(s[i]) {
				i++
			}
			if i == 2 {
				return 0, 2, name + " literal has no digits"
			}
			return i, 0, ""
		}
		switch s[1] {
		case 'x', 'X':
			return radix("hexadecimal", isHexDigit)
		case 'o', 'O':
			return radix("octal", func(c byte) bool { return c >= '0' && c <= '7' })
		case 'b', 'B':
			return radix("binary", func(c byte) bool { return c == '0' || c == '1' })
		}
	}
	if s[0] == '0' {
		i := 1
		for i < len(s) && s[i] == '0' {
			i++
		}
		if i < len(s) && isDigit(s[i]) {
			j := i
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			return 0, j, "integer literal has a leading zero"
		}
		return i, 0, ""
	}
	i := 1
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i, 0, ""
}

func parseIntText(text string) (int64, error) {
	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			return strconv.ParseInt(text[2:], 16, 64)
		case 'o', 'O':
			return strconv.ParseInt(text[2:], 8, 64)
		case 'b', 'B':
			return strconv.ParseInt(text[2:], 2, 64)
		}
	}
	return strconv.ParseInt(text, 10, 64)
}

// matchFloat matches a float literal: optional integer part, then a
// fractional part and/or an exponent. At least one of the two must be
// present, so a bare `.` or `3e` never matches.
func matchFloat(s string) int {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i
	frac := false
	if i < len(s) && s[i] == '.' {
		j := i + 1
		fracDigits := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			fracDigits++
		}
		if intDigits > 0 || fracDigits > 0 {
			frac = true
			i = j
		}
	}
	exp := false
	if (intDigits > 0 || frac) && i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			exp = true
			i = j
		}
	}
	if !frac && !exp {
		return 0
	}
	return i
}

func matchIdent(s string) int {
	if isDigit(s[0]) || !isIdentChar(s[0]) {
		return 0
	}
	i := 1
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return i
}

// stringPrefix describes the optional letter prefix of a quoted literal.
type stringPrefix struct {
	n     int  // prefix length in bytes
	raw   bool // r: escapes kept verbatim
	bytes bool // b: byte-string content rules
}

// matchStringPrefix recognizes r/R/u/U (strings), b/B (byte strings),
// and the eight two-letter byte/raw combinations.
func matchStringPrefix(s string) stringPrefix {
	if len(s) >= 2 && isQuote(s[1]) {
		switch s[0] {
		case 'r', 'R':
			return stringPrefix{n: 1, raw: true}
		case 'u', 'U':
			return stringPrefix{n: 1}
		case 'b', 'B':
			return stringPrefix{n: 1, bytes: true}
		}
	}
	if len(s) >= 3 && isQuote(s[2]) {
		a, b := s[0], s[1]
		if (a == 'b' || a == 'B') && (b == 'r' || b == 'R') ||
			(a == 'r' || a == 'R') && (b == 'b' || b == 'B') {
			return stringPrefix{n: 2, raw: true, bytes: true}
		}
	}
	return stringPrefix{n: -1}
}

// matchString matches a string or byte-string literal: one or more
// adjacent quoted segments, each with an optional prefix, concatenated
// into one cooked value. The first segment's prefix fixes the token
// kind; a following segment of the other kind is left for the next
// token. Returns (token, length, nil) on a match, (_, 0, nil) when the
// input does not start a quoted literal, and a lexical error for
// unterminated or malformed content.
func (l *lexer) matchString(s string, pos token.Position) (token.Token, int, *Error) {
	first := matchStringPrefix(s)
	if first.n < 0 && !isQuote(s[0]) {
		return token.Token{}, 0, nil
	}
	if first.n < 0 {
		first = stringPrefix{n: 0}
	}

	var cooked []byte
	total := 0
	isBytes := first.bytes
	for {
		var p stringPrefix
		if total == 0 {
			p = first
		} else {
			rest := s[total:]
			if len(rest) == 0 {
				break
			}
			p = matchStringPrefix(rest)
			if p.n < 0 {
				if !isQuote(rest[0]) {
					break
				}
				p = stringPrefix{n: 0}
			}
			if p.bytes != isBytes {
				break
			}
		}
		n, seg, err := l.scanSegment(s[total+p.n:], pos, p)
		if err != nil {
			return token.Token{}, 0, err
		}
		cooked = append(cooked, seg...)
		total += p.n + n
	}

	tok := token.Token{Text: s[:total], Pos: pos}
	if isBytes {
		tok.Kind = token.Bytes
		tok.BytesVal = cooked
	} else {
		tok.Kind = token.String
		tok.StrVal = string(cooked)
	}
	return tok, total, nil
}

// scanSegment scans one quoted segment starting at its opening quote and
// returns the consumed length and cooked content. Single-quoted forms
// terminate at an unescaped quote and reject raw newlines; triple-quoted
// forms terminate only at a run of three unescaped quote characters.
// Errors are reported at the position of the whole literal.
func (l *lexer) scanSegment(s string, segPos token.Position, p stringPrefix) (int, []byte, *Error) {
	q := s[0]
	triple := len(s) >= 3 && s[1] == q && s[2] == q
	i := 1
	if triple {
		i = 3
	}

	var out []byte
	for {
		if i >= len(s) {
			return 0, nil, l.errf(segPos, leadingFragment(s), "unterminated %s literal", literalNoun(p))
		}
		c := s[i]
		if c == q {
			if !triple {
				i++
				break
			}
			if len(s) >= i+3 && s[i+1] == q && s[i+2] == q {
				i += 3
				break
			}
			out = append(out, c)
			i++
			continue
		}
		if c == '\n' && !triple {
			return 0, nil, l.errf(segPos, leadingFragment(s), "unterminated %s literal", literalNoun(p))
		}
		if c == '\\' {
			if i+1 >= len(s) {
				return 0, nil, l.errf(segPos, leadingFragment(s), "unterminated %s literal", literalNoun(p))
			}
			if p.raw {
				out = append(out, s[i], s[i+1])
				i += 2
				continue
			}
			b, n, err := l.cookEscape(s[i:], segPos)
			if err != nil {
				return 0, nil, err
			}
			out = append(out, b...)
			i += n
			continue
		}
		if p.bytes && c > 127 {
			return 0, nil, l.errf(segPos, string(c), "byte string content must be in the range 0-127")
		}
		out = append(out, c)
		i++
	}
	return i, out, nil
}

// cookEscape interprets one backslash escape. Recognized escapes map to
// their control characters; \xNN yields the byte NN; any other escaped
// character stands for itself.
func (l *lexer) cookEscape(s string, pos token.Position) ([]byte, int, *Error) {
	switch s[1] {
	case 'n':
		return []byte{'\n'}, 2, nil
	case 't':
		return []byte{'\t'}, 2, nil
	case 'r':
		return []byte{'\r'}, 2, nil
	case '0':
		return []byte{0}, 2, nil
	case 'x':
		if len(s) < 4 || !isHexDigit(s[2]) || !isHexDigit(s[3]) {
			return nil, 0, l.errf(pos, leadingFragment(s), "invalid \\x escape: two hex digits required")
		}
		v, _ := strconv.ParseUint(s[2:4], 16, 8)
		return []byte{byte(v)}, 4, nil
	default:
		return []byte{s[1]}, 2, nil
	}
}

func literalNoun(p stringPrefix) string {
	if p.bytes {
		return "byte string"
	}
	return "string"
}

func isSpace(c byte) bool    { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
func isDigit(c byte) bool    { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool { return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F' }
func isQuote(c byte) bool    { return c == '\'' || c == '"' }
func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || isDigit(c) || c == '_' || c == '.'
}
