// Package scan rejects values whose serialized form contains prohibited
// keys. The check is a substring match over the JSON serialization: blunt by
// design, so a denylisted term cannot hide behind nesting, casing, or field
// renames. A legitimately-named field containing a prohibited substring is
// also rejected; callers are expected to rename.
package scan

import (
	"strings"

	dErrors "trustplane/pkg/domain-errors"
	"trustplane/pkg/platform/hashing"
	platformstrings "trustplane/pkg/platform/strings"
)

// Prohibited serializes v and returns a CodeProhibitedField error when any
// of the given terms appears in the lowercased serialized form. Terms are
// normalized to lowercase before matching.
func Prohibited(v any, terms []string) error {
	if v == nil {
		return nil
	}
	serialized, err := hashing.Canonical(v)
	if err != nil {
		return err
	}
	haystack := strings.ToLower(string(serialized))
	for _, term := range platformstrings.DedupeAndTrimLower(terms) {
		if strings.Contains(haystack, term) {
			return dErrors.Newf(dErrors.CodeProhibitedField, "serialized input contains prohibited field %q", term).
				WithDetail("term", term)
		}
	}
	return nil
}
