package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 25, ParseInt("25", 10))
	assert.Equal(t, 10, ParseInt("", 10))
	assert.Equal(t, 10, ParseInt("abc", 10))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
}

func TestGenerateBookingRef(t *testing.T) {
	pattern := regexp.MustCompile(`^BK-\d{8}-\d{6}-[0-9A-F]{8}$`)

	ref := GenerateBookingRef()
	assert.Regexp(t, pattern, ref)
}

func TestGenerateBookingRefDistinctWithinSameSecond(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[GenerateBookingRef()] = true
	}
	assert.Len(t, seen, 100)
}
