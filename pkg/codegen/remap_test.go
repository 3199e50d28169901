package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemapType(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"BOOL", "bool"},
		{"BOOL*", "bool"},
		{"const char*", "string"},
		{"Hash", "ulong"},
		{"Cam", "Camera"},
		{"Pickup", "uint"},
		{"Interior", "uint"},
		{"ScrHandle", "uint"},
		{"ScrHandle*", "uint"},
		{"FireId", "Fire"},
		{"Ped", "Ped"},
		{"Vector3*", "Vector3*"},
		{"Any*", "Any*"},
		{"Hash*", "Hash*"},
		{"bool", "bool"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, RemapType(tt.input))
		})
	}
}

func TestReturnType(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Any*", "int"},
		{"const Any*", "int"},
		{"Any", "Any"},
		{"BOOL", "bool"},
		{"void", "void"},
		{"Hash", "ulong"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReturnType(tt.input))
		})
	}
}

func TestRemapIdentifier(t *testing.T) {
	for _, reserved := range []string{"base", "override", "object", "event", "string", "out"} {
		assert.Equal(t, "_"+reserved, RemapIdentifier(reserved))
	}
	for _, plain := range []string{"player", "ped", "GET_PLAYER_PED", "Event", "outfit", "p0"} {
		assert.Equal(t, plain, RemapIdentifier(plain))
	}
}

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"quote", `say "hi"`, "say &quot;hi&quot;"},
		{"apostrophe", "player's", "player&apos;s"},
		{"angle brackets", "a < b > c", "a &lt; b &gt; c"},
		{"ampersand", "R&D", "R&amp;D"},
		{"entities are not escaped twice", `"<&>'`, "&quot;&lt;&amp;&gt;&apos;"},
		{"existing entity text is escaped once", "&lt;", "&amp;lt;"},
		{"no special characters", "plain text", "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeXML(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.NotContains(t, got, "&amp;quot;")
			assert.NotContains(t, got, "&amp;apos;")
		})
	}
}

func TestEscapeXML_NoRawSpecials(t *testing.T) {
	got := EscapeXML(`Returns "true" if x < 5 && y > 2, else 'false'.`)
	for _, raw := range []string{`"`, "'", "<", ">"} {
		assert.NotContains(t, got, raw)
	}
	// every remaining '&' starts one of the five entities
	for i := strings.Index(got, "&"); i >= 0; i = nextAmp(got, i) {
		rest := got[i:]
		assert.True(t,
			strings.HasPrefix(rest, "&quot;") || strings.HasPrefix(rest, "&apos;") ||
				strings.HasPrefix(rest, "&lt;") || strings.HasPrefix(rest, "&gt;") ||
				strings.HasPrefix(rest, "&amp;"),
			"raw ampersand at %d in %q", i, got)
	}
}

func nextAmp(s string, i int) int {
	j := strings.Index(s[i+1:], "&")
	if j < 0 {
		return -1
	}
	return i + 1 + j
}
