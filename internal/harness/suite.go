package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/edict"
)

// Suite is one conformance suite: a named list of cases.
type Suite struct {
	// Name uniquely identifies this suite.
	Name string `yaml:"name"`

	// Description explains what this suite validates.
	Description string `yaml:"description,omitempty"`

	// Cases are run in order.
	Cases []Case `yaml:"cases"`
}

// Case is a single conformance case. Exactly one of Want and Error
// should be set: Want is the expected canonical rendering of Input,
// Error a fragment the parse error must contain.
type Case struct {
	Name  string `yaml:"name"`
	Input string `yaml:"input"`
	Want  string `yaml:"want,omitempty"`
	Error string `yaml:"error,omitempty"`
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// Result is the outcome of a whole suite.
type Result struct {
	Suite  string       `json:"suite"`
	Cases  []CaseResult `json:"cases"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
}

// LoadSuite reads one suite from a YAML file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse suite %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	for i, c := range s.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("suite %s: case %d has no name", s.Name, i)
		}
		if c.Want != "" && c.Error != "" {
			return nil, fmt.Errorf("suite %s: case %s sets both want and error", s.Name, c.Name)
		}
	}
	return &s, nil
}

// LoadSuites reads every *.yaml suite under a path. The path may be a
// single file or a directory; directory results are sorted by file name
// for deterministic order.
func LoadSuites(path string) ([]*Suite, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat suites: %w", err)
	}
	if !info.IsDir() {
		s, err := LoadSuite(path)
		if err != nil {
			return nil, err
		}
		return []*Suite{s}, nil
	}

	matches, err := filepath.Glob(filepath.Join(path, "*.yaml"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no suite files in %s", path)
	}
	sort.Strings(matches)

	suites := make([]*Suite, 0, len(matches))
	for _, m := range matches {
		s, err := LoadSuite(m)
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, nil
}

// Run executes every case in the suite.
func Run(s *Suite) Result {
	res := Result{Suite: s.Name}
	for _, c := range s.Cases {
		cr := runCase(c)
		if cr.Pass {
			res.Passed++
		} else {
			res.Failed++
		}
		res.Cases = append(res.Cases, cr)
	}
	return res
}

func runCase(c Case) CaseResult {
	cr := CaseResult{Name: c.Name}

	theory, err := edict.ParseTheory(c.Input)
	if c.Error != "" {
		switch {
		case err == nil:
			cr.Errors = append(cr.Errors, fmt.Sprintf("expected error containing %q, parse succeeded", c.Error))
		case !strings.Contains(err.Error(), c.Error):
			cr.Errors = append(cr.Errors, fmt.Sprintf("error %q does not contain %q", err.Error(), c.Error))
		}
		cr.Pass = len(cr.Errors) == 0
		return cr
	}
	if err != nil {
		cr.Errors = append(cr.Errors, fmt.Sprintf("parse failed: %v", err))
		return cr
	}

	canonical := edict.Render(theory)
	if canonical != c.Want {
		cr.Errors = append(cr.Errors, fmt.Sprintf("canonical form mismatch:\n got: %q\nwant: %q", canonical, c.Want))
	}

	// Round trip: the canonical form must re-parse to an equal tree.
	reparsed, err := edict.ParseTheory(canonical)
	if err != nil {
		cr.Errors = append(cr.Errors, fmt.Sprintf("canonical form does not re-parse: %v", err))
	} else if !theory.Equal(reparsed) {
		cr.Errors = append(cr.Errors, "canonical form re-parses to a different tree")
	}

	cr.Pass = len(cr.Errors) == 0
	return cr
}
