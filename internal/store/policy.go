package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/edict/ast"
)

// Policy is one saved policy: the source text as submitted, its
// canonical rendering, and the content fingerprint of that rendering.
type Policy struct {
	ID          string
	Name        string
	Source      string
	Canonical   string
	Fingerprint string
	CreatedAt   time.Time
}

// ErrNotFound is returned when a named policy does not exist.
var ErrNotFound = errors.New("policy not found")

// ErrNameTaken is returned when saving under a name that already exists.
var ErrNameTaken = errors.New("policy name already exists")

// Save stores a parsed theory under a name. The caller has already
// parsed the source; Save renders the canonical form and computes the
// fingerprint. If a policy with the same fingerprint is already stored,
// its record is returned unchanged along with found=true, so callers
// can report dedup instead of writing a copy.
func (s *Store) Save(ctx context.Context, name, source string, theory *ast.Theory) (p Policy, found bool, err error) {
	canonical := theory.String()
	fingerprint := ast.Fingerprint(theory)

	existing, err := s.byFingerprint(ctx, fingerprint)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Policy{}, false, err
	}

	p = Policy{
		ID:          uuid.NewString(),
		Name:        name,
		Source:      source,
		Canonical:   canonical,
		Fingerprint: fingerprint,
		CreatedAt:   time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO policies (id, name, source, canonical, fingerprint, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Source, p.Canonical, p.Fingerprint, p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return Policy{}, false, fmt.Errorf("%w: %s", ErrNameTaken, name)
		}
		return Policy{}, false, fmt.Errorf("save policy: %w", err)
	}
	return p, false, nil
}

// Get returns the policy with the given name, or ErrNotFound.
func (s *Store) Get(ctx context.Context, name string) (Policy, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, source, canonical, fingerprint, created_at
		FROM policies WHERE name = ?
	`, name)
	return scanPolicy(row)
}

// List returns all policies ordered by name for deterministic output.
func (s *Store) List(ctx context.Context) ([]Policy, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, source, canonical, fingerprint, created_at
		FROM policies ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	policies := []Policy{}
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate policies: %w", err)
	}
	return policies, nil
}

// Delete removes the policy with the given name, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM policies WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete policy: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete policy: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

func (s *Store) byFingerprint(ctx context.Context, fingerprint string) (Policy, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, source, canonical, fingerprint, created_at
		FROM policies WHERE fingerprint = ?
		ORDER BY created_at ASC LIMIT 1
	`, fingerprint)
	return scanPolicy(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPolicy(row rowScanner) (Policy, error) {
	var p Policy
	var created string
	err := row.Scan(&p.ID, &p.Name, &p.Source, &p.Canonical, &p.Fingerprint, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Policy{}, ErrNotFound
	}
	if err != nil {
		return Policy{}, fmt.Errorf("scan policy: %w", err)
	}
	p.CreatedAt, err = time.Parse(time.RFC3339, created)
	if err != nil {
		return Policy{}, fmt.Errorf("scan policy created_at: %w", err)
	}
	return p, nil
}

// isUniqueViolation detects a UNIQUE constraint failure without binding
// to the driver's error type.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE")
}
