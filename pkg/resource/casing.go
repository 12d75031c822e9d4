package resource

import (
	"regexp"
	"strings"
	"sync"
)

var (
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	wordBoundary    = regexp.MustCompile(`([a-z\d])([A-Z])`)
	underscoreNext  = regexp.MustCompile(`_(.)`)

	// domainCaseCache memoizes ToDomainCase for the life of the process.
	// Inputs are bounded by the API's own field set, so entries are never evicted.
	domainCaseCache sync.Map
)

// ToWireCase converts a domain-cased key (external_id) into the lower camel
// case used on the wire (externalId). Only the character following an
// underscore is uppercased; the first character and anything after a digit
// are kept as-is, so address1line stays address1line.
func ToWireCase(domainKey string) string {
	return underscoreNext.ReplaceAllStringFunc(domainKey, func(match string) string {
		return strings.ToUpper(match[1:])
	})
}

// ToDomainCase converts a wire-cased key (externalId, ExternalID) into snake
// case (external_id). Results are cached.
func ToDomainCase(wireKey string) string {
	if cached, ok := domainCaseCache.Load(wireKey); ok {
		s, _ := cached.(string)

		return s
	}

	out := strings.ReplaceAll(wireKey, "::", "/")
	out = acronymBoundary.ReplaceAllString(out, "${1}_${2}")
	out = wordBoundary.ReplaceAllString(out, "${1}_${2}")
	out = strings.ReplaceAll(out, "-", "_")
	out = strings.ToLower(out)

	domainCaseCache.Store(wireKey, out)

	return out
}
