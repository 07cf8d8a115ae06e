// Package identity canonicalizes author identifiers. The same author may
// arrive as "http://host/author/<uuid>", "host/author/<hex>/" or any mix of
// scheme, trailing slash and dash formatting; every comparison and storage
// lookup in the rest of the codebase goes through Normalize first.
package identity

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var schemeRegex = regexp.MustCompile(`^(http(s)?)?://`)

// Normalize strips the transport scheme and any trailing slash, and rewrites
// the last path segment to its undashed hex form when it parses as a UUID.
// Normalize is idempotent.
func Normalize(id string) string {
	id = schemeRegex.ReplaceAllString(id, "")
	id = strings.TrimRight(id, "/")

	i := strings.LastIndex(id, "/")
	if i < 0 {
		return id
	}
	u, err := uuid.Parse(id[i+1:])
	if err != nil {
		return id
	}
	return id[:i] + "/" + strings.ReplaceAll(u.String(), "-", "")
}

// Equal reports whether two identifiers refer to the same author once both
// are normalized.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Host returns the host part of an identifier, the portion before the first
// path separator once scheme and trailing slash are stripped.
func Host(id string) string {
	id = schemeRegex.ReplaceAllString(id, "")
	id = strings.TrimRight(id, "/")
	host, _, _ := strings.Cut(id, "/")
	return host
}

// SameHost reports whether two identifiers are hosted on the same node.
func SameHost(a, b string) bool {
	return Host(a) == Host(b)
}
