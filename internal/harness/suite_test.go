package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSuite(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSuite(t *testing.T) {
	path := writeSuite(t, t.TempDir(), "core.yaml", `
name: core
description: basic forms
cases:
  - name: simple_rule
    input: "p(x) :- q(x)"
    want: "p(x) :- q(x)\n"
  - name: missing_paren
    input: "p(x"
    error: "syntax error"
`)
	s, err := LoadSuite(path)
	require.NoError(t, err)
	assert.Equal(t, "core", s.Name)
	assert.Equal(t, "basic forms", s.Description)
	require.Len(t, s.Cases, 2)
	assert.Equal(t, "p(x) :- q(x)\n", s.Cases[0].Want)
	assert.Equal(t, "syntax error", s.Cases[1].Error)
}

func TestLoadSuiteDefaultsNameFromFile(t *testing.T) {
	path := writeSuite(t, t.TempDir(), "modals.yaml", `
cases:
  - name: only
    input: "p(x)"
    want: "p(x)\n"
`)
	s, err := LoadSuite(path)
	require.NoError(t, err)
	assert.Equal(t, "modals", s.Name)
}

func TestLoadSuiteValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"unnamed_case",
			"cases:\n  - input: \"p(x)\"\n    want: \"p(x)\\n\"\n",
			"has no name",
		},
		{
			"want_and_error",
			"cases:\n  - name: both\n    input: \"p(x)\"\n    want: \"p(x)\\n\"\n    error: \"boom\"\n",
			"sets both want and error",
		},
		{
			"malformed_yaml",
			"cases: [\n",
			"parse suite",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSuite(t, t.TempDir(), "bad.yaml", tt.content)
			_, err := LoadSuite(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSuitesFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeSuite(t, dir, "b.yaml", "cases:\n  - name: c1\n    input: \"p\"\n    want: \"p\\n\"\n")
	writeSuite(t, dir, "a.yaml", "cases:\n  - name: c1\n    input: \"q\"\n    want: \"q\\n\"\n")
	writeSuite(t, dir, "ignored.txt", "not a suite")

	suites, err := LoadSuites(dir)
	require.NoError(t, err)
	require.Len(t, suites, 2)
	assert.Equal(t, "a", suites[0].Name)
	assert.Equal(t, "b", suites[1].Name)
}

func TestLoadSuitesEmptyDirectory(t *testing.T) {
	_, err := LoadSuites(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no suite files")
}

func TestLoadSuitesMissingPath(t *testing.T) {
	_, err := LoadSuites(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestRunPassingSuite(t *testing.T) {
	s := &Suite{
		Name: "pass",
		Cases: []Case{
			{Name: "rule", Input: "p(x) :- q(x);", Want: "p(x) :- q(x)\n"},
			{Name: "lex_error", Input: "p(012)", Error: "leading zero"},
			{Name: "empty", Input: "", Want: ""},
		},
	}
	r := Run(s)
	assert.Equal(t, 3, r.Passed)
	assert.Equal(t, 0, r.Failed)
	for _, c := range r.Cases {
		assert.True(t, c.Pass, "%s: %v", c.Name, c.Errors)
	}
}

func TestRunFailingCases(t *testing.T) {
	s := &Suite{
		Name: "fail",
		Cases: []Case{
			{Name: "wrong_want", Input: "p(x)", Want: "q(x)\n"},
			{Name: "expected_error_missing", Input: "p(x)", Error: "syntax error"},
			{Name: "wrong_error_text", Input: "p(x", Error: "leading zero"},
			{Name: "unexpected_error", Input: "p(x", Want: "p(x)\n"},
		},
	}
	r := Run(s)
	assert.Equal(t, 0, r.Passed)
	assert.Equal(t, 4, r.Failed)

	byName := map[string]CaseResult{}
	for _, c := range r.Cases {
		byName[c.Name] = c
	}
	assert.Contains(t, byName["wrong_want"].Errors[0], "canonical form mismatch")
	assert.Contains(t, byName["expected_error_missing"].Errors[0], "parse succeeded")
	assert.Contains(t, byName["wrong_error_text"].Errors[0], "does not contain")
	assert.Contains(t, byName["unexpected_error"].Errors[0], "parse failed")
}

func TestRunSuiteFile(t *testing.T) {
	s, err := LoadSuite(filepath.Join("testdata", "core.yaml"))
	require.NoError(t, err)

	r := Run(s)
	assert.Zero(t, r.Failed, "%+v", r.Cases)
	assert.Equal(t, len(s.Cases), r.Passed)
}
