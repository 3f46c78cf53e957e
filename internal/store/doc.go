// Package store provides SQLite-backed durable storage for the policy
// library: named policies with their original source text, canonical
// rendering, and content fingerprint.
//
// The store holds what the front end produces and nothing more - it
// never evaluates a policy. Fingerprints are content-addressed
// (ast.Fingerprint over the canonical rendering), so re-saving a policy
// whose canonical form is unchanged is detected and reported rather
// than duplicated.
package store
