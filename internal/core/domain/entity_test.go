package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEntityID(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"short id padded", "731766", "0000731766"},
		{"already canonical", "0000731766", "0000731766"},
		{"whitespace trimmed", "  27419 ", "0000027419"},
		{"longer than canonical untouched", "123456789012", "123456789012"},
		{"single digit", "1", "0000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeEntityID(tt.in))
		})
	}
}

func TestNormalizeReference(t *testing.T) {
	assert.Equal(t, "equifax inc.", NormalizeReference("  Equifax Inc. "))
	assert.Equal(t, "", NormalizeReference("   "))
}

func TestStripNamePunctuation(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"equifax inc.", "equifax inc"},
		{"home depot, inc.", "home depot inc"},
		{"yahoo!", "yahoo"},
		{"t-mobile", "t-mobile"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripNamePunctuation(tt.in))
		})
	}
}

func TestTickerCandidate(t *testing.T) {
	tests := []struct {
		in       string
		expected bool
	}{
		{"unh", true},
		{"tmus", true},
		{"brk2", true},
		{"toolong", false},
		{"", false},
		{"t-mob", false},
		{"a b", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, TickerCandidate(tt.in))
		})
	}
}

func TestAliasRecord_Historical(t *testing.T) {
	rename := time.Date(2017, 6, 16, 0, 0, 0, 0, time.UTC)

	current := AliasRecord{Name: "Altaba", EntityID: "0001011006"}
	assert.False(t, current.Historical())

	retired := AliasRecord{Name: "Yahoo", EntityID: "0001011006", SupersededBy: "Altaba Inc.", RenameDate: &rename}
	assert.True(t, retired.Historical())
}
