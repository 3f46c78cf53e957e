package parser

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// TestCanonicalGolden pins the canonical rendering of a policy that
// exercises rules, facts, modals, negation, structured names, named
// parameters, and constant normalization.
func TestCanonicalGolden(t *testing.T) {
	input := `# reachability over the cloud inventory
error(vm) :- nova:virtual_machine(vm), not nova:network(vm, vlan);
execute[disconnect(vm)] :- error(vm).
connected("vm1", "net0")
thresholds(cpu=0.75, mem=0x1F)
a:b:c-()
p("ab" "cd", b"\x00")
`
	theory, err := ParseTheory(input)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "canonical", []byte(theory.String()))
}
