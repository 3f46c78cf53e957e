package ast

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// fingerprintDomain separates theory fingerprints from any other use of
// the hash; the version suffix allows future algorithm migration.
const fingerprintDomain = "edict/theory/v1"

// Fingerprint computes a content-addressed identity for a theory:
// SHA-256 over the NFC-normalized canonical rendering, with domain
// separation. Two theories have the same fingerprint exactly when their
// canonical forms are the same Unicode text, regardless of the byte
// layout, comments, or literal spellings of the source they were parsed
// from.
func Fingerprint(t *Theory) string {
	canonical := norm.NFC.String(t.String())
	h := sha256.New()
	h.Write([]byte(fingerprintDomain))
	h.Write([]byte{0x00})
	h.Write([]byte(canonical))
	return hex.EncodeToString(h.Sum(nil))
}
