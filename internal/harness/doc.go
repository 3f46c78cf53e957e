// Package harness runs conformance suites for the policy-language
// front end.
//
// A suite is a YAML file of cases, each giving a policy text and either
// its expected canonical rendering or an expected error fragment:
//
//	name: core
//	description: "basic rule and fact forms"
//	cases:
//	  - name: simple_rule
//	    input: "p(x) :- q(x)"
//	    want: |
//	      p(x) :- q(x)
//	  - name: missing_paren
//	    input: "p(x"
//	    error: "syntax error"
//
// Every passing case is additionally round-tripped: the canonical
// rendering is re-parsed and the result must be structurally equal to
// the first parse.
package harness
