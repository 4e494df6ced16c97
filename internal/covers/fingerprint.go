package covers

import (
	"strings"

	"bindery/internal/catalog"
)

// cacheKeyVersion namespaces cached outcomes. Bump it whenever scoring
// semantics change so stale decisions made under the old rules are never
// served; expired versions simply age out of the store.
const cacheKeyVersion = "cover_v2"

// fingerprintSeparator joins the key fields. The unit separator cannot occur
// in normalized record fields, so distinct field combinations can never
// collide.
const fingerprintSeparator = "\x1f"

// FingerprintRecord derives the stable cache key for a record. Records with
// identical title, author, and publisher share a key and are treated as the
// same work.
func FingerprintRecord(rec catalog.Record) string {
	var b strings.Builder
	b.WriteString(cacheKeyVersion)
	b.WriteString(fingerprintSeparator)
	b.WriteString(strings.TrimSpace(rec.Title))
	b.WriteString(fingerprintSeparator)
	b.WriteString(strings.TrimSpace(rec.Author))
	b.WriteString(fingerprintSeparator)
	b.WriteString(strings.TrimSpace(rec.Publisher))
	return b.String()
}
