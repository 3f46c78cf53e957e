package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// The String methods render nodes in a canonical textual form that
// re-parses to a structurally equal tree. The rendering is deterministic
// but need not reproduce the original byte layout: negation always
// renders as `not`, string constants as double-quoted single segments,
// and list separators as `, `. Numeric constants render their original
// source text when it is known, preserving radix and formatting.

// String renders each formula on its own line, no terminators.
func (t *Theory) String() string {
	if len(t.Formulas) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range t.Formulas {
		b.WriteString(f.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Rule) String() string {
	return r.Head.String() + " :- " + r.Body.String()
}

func (f *Fact) String() string {
	return f.Literals.String()
}

func (l *LiteralList) String() string {
	parts := make([]string, len(l.Literals))
	for i, lit := range l.Literals {
		parts[i] = lit.String()
	}
	return strings.Join(parts, ", ")
}

func (l *Literal) String() string {
	if l.Negated {
		return "not " + l.Modal.String()
	}
	return l.Modal.String()
}

func (m *Modal) String() string {
	if m.Op == "" {
		return m.Atom.String()
	}
	return m.Op + "[" + m.Atom.String() + "]"
}

func (a *Atom) String() string {
	if !a.Parens {
		return a.Name.String()
	}
	parts := make([]string, len(a.Params))
	for i, p := range a.Params {
		parts[i] = p.String()
	}
	return a.Name.String() + "(" + strings.Join(parts, ", ") + ")"
}

func (n *StructuredName) String() string {
	s := strings.Join(n.Segments, ":")
	switch n.Sign {
	case SignPlus:
		return s + "+"
	case SignMinus:
		return s + "-"
	}
	return s
}

func (p *Positional) String() string {
	return p.Term.String()
}

func (p *Named) String() string {
	return p.Ref.String() + "=" + p.Term.String()
}

func (r *NameRef) String() string {
	return r.Name
}

func (r *PositionRef) String() string {
	return strconv.FormatInt(r.Index, 10)
}

func (v *Variable) String() string {
	return v.Name
}

func (c *Constant) String() string {
	return c.Value.String()
}

func (o Integer) String() string {
	if o.Text != "" {
		return o.Text
	}
	return strconv.FormatInt(o.Value, 10)
}

func (o Float) String() string {
	if o.Text != "" {
		return o.Text
	}
	s := strconv.FormatFloat(o.Value, 'g', -1, 64)
	// A float must not render in integer shape or it would re-parse as
	// an integer constant.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (o String) String() string {
	return quoteString([]byte(o.Value), false)
}

func (o Bytes) String() string {
	return quoteString(o.Value, true)
}

// quoteString renders content as one double-quoted segment. Printable
// ASCII passes through; quotes, backslashes, and control bytes are
// escaped. Non-ASCII bytes pass through in strings (UTF-8 text) and are
// hex-escaped in byte strings, whose raw content is restricted to 0-127.
func quoteString(content []byte, asBytes bool) string {
	var b strings.Builder
	if asBytes {
		b.WriteByte('b')
	}
	b.WriteByte('"')
	for _, c := range content {
		switch {
		case c == '"':
			b.WriteString(`\"`)
		case c == '\\':
			b.WriteString(`\\`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '\r':
			b.WriteString(`\r`)
		case c < 32 || c == 127 || (asBytes && c > 127):
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
