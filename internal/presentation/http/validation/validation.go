package validation

import (
	"net/url"
	"regexp"
	"strconv"
)

// userNamePattern bounds account names to a URL- and log-safe shape.
var userNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

// ValidateUserName reports whether a user name is acceptable for creation.
// Names are immutable once created, so the check only runs on the create
// endpoints.
func ValidateUserName(name string) bool {
	return userNamePattern.MatchString(name)
}

// ValidateDisplayName bounds display names; empty is allowed.
func ValidateDisplayName(name string) bool {
	return len(name) <= 128
}

// Pagination holds parsed limit/offset params.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination parses limit/offset from query with defaults and bounds.
// Non-numeric or negative values fall back to the defaults; maxLimit caps
// limit when > 0.
func ParsePagination(q url.Values, defaultLimit, maxLimit int) Pagination {
	p := Pagination{Limit: defaultLimit}

	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.Offset = n
		}
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}
