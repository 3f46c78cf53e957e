package ast

// Walk traverses the tree rooted at n depth-first, visiting each node
// before its children and a node's children before its siblings. If fn
// returns false for a node, its children are skipped. Objects are
// values, not nodes; a Constant is the leaf visited for them.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Theory:
		for _, f := range n.Formulas {
			Walk(f, fn)
		}
	case *Rule:
		Walk(n.Head, fn)
		Walk(n.Body, fn)
	case *Fact:
		Walk(n.Literals, fn)
	case *LiteralList:
		for _, l := range n.Literals {
			Walk(l, fn)
		}
	case *Literal:
		Walk(n.Modal, fn)
	case *Modal:
		Walk(n.Atom, fn)
	case *Atom:
		Walk(n.Name, fn)
		for _, p := range n.Params {
			Walk(p, fn)
		}
	case *Positional:
		Walk(n.Term, fn)
	case *Named:
		Walk(n.Ref, fn)
		Walk(n.Term, fn)
	}
}
