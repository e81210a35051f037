package validation

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUserName(t *testing.T) {
	valid := []string{"alice", "bob-2", "svc.reader", "a", "first_last", strings.Repeat("x", 64)}
	for _, name := range valid {
		assert.True(t, ValidateUserName(name), "expected %q to be accepted", name)
	}

	invalid := []string{"", "with space", "slash/name", "café", strings.Repeat("x", 65)}
	for _, name := range invalid {
		assert.False(t, ValidateUserName(name), "expected %q to be rejected", name)
	}
}

func TestValidateDisplayName(t *testing.T) {
	assert.True(t, ValidateDisplayName(""))
	assert.True(t, ValidateDisplayName("Alice Example"))
	assert.True(t, ValidateDisplayName(strings.Repeat("x", 128)))
	assert.False(t, ValidateDisplayName(strings.Repeat("x", 129)))
}

func TestParsePagination(t *testing.T) {
	p := ParsePagination(url.Values{}, 50, 500)
	assert.Equal(t, Pagination{Limit: 50, Offset: 0}, p)

	p = ParsePagination(url.Values{"limit": {"10"}, "offset": {"20"}}, 50, 500)
	assert.Equal(t, Pagination{Limit: 10, Offset: 20}, p)

	// Garbage and negatives fall back to defaults.
	p = ParsePagination(url.Values{"limit": {"nope"}, "offset": {"-5"}}, 50, 500)
	assert.Equal(t, Pagination{Limit: 50, Offset: 0}, p)

	// The cap applies.
	p = ParsePagination(url.Values{"limit": {"9999"}}, 50, 500)
	assert.Equal(t, Pagination{Limit: 500, Offset: 0}, p)
}
