package codegen

import "strings"

// typeRemap maps catalog type spellings onto C# types. Unlisted types are
// emitted as-is.
var typeRemap = map[string]string{
	"BOOL":        "bool",
	"BOOL*":       "bool",
	"const char*": "string",
	"Hash":        "ulong",
	"Cam":         "Camera",
	"Pickup":      "uint",
	"Interior":    "uint",
	"ScrHandle":   "uint",
	"ScrHandle*":  "uint",
	"FireId":      "Fire",
}

// identifierRemap renames catalog identifiers that are C# keywords.
var identifierRemap = map[string]string{
	"base":     "_base",
	"override": "_override",
	"object":   "_object",
	"event":    "_event",
	"string":   "_string",
	"out":      "_out",
}

// xmlEscaper escapes doc comment text in a single pass, so the '&' of an
// entity it has just produced is never escaped again.
var xmlEscaper = strings.NewReplacer(
	`"`, "&quot;",
	`'`, "&apos;",
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
)

// RemapType translates a catalog parameter or return type.
func RemapType(t string) string {
	if mapped, ok := typeRemap[t]; ok {
		return mapped
	}
	return t
}

// RemapIdentifier prefixes identifiers that collide with C# keywords.
func RemapIdentifier(name string) string {
	if mapped, ok := identifierRemap[name]; ok {
		return mapped
	}
	return name
}

// ReturnType renders the declared return type. Anything that still ends in
// Any* after the table lookup is declared as int, qualifiers included.
func ReturnType(t string) string {
	mapped := RemapType(t)
	if strings.HasSuffix(mapped, "Any*") {
		return "int"
	}
	return mapped
}

// EscapeXML escapes the five XML special characters.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// isPlaceholder reports whether a remapped parameter type carries no type
// information; such parameters are hidden from the declaration.
func isPlaceholder(t string) bool {
	return t == "Any" || t == "Any*"
}
