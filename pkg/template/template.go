// Package template loads the wrapper file template and fills its positional
// placeholders.
//
// Templates use composite-format placeholders: {0}, {1}, ... are replaced by
// the corresponding argument, and {{ and }} stand for literal braces. An
// alignment such as {0,-20} pads the argument; a format suffix such as {0:u}
// is accepted and ignored. The
// native template expects {0} to be the generation timestamp and {1} the
// rendered body.
package template

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FileName is the template file looked up next to the executable.
const FileName = "NativeTemplate.txt"

var errInvalidField = errors.New("invalid placeholder")

//go:embed assets/NativeTemplate.txt
var defaultTemplate string

// Default returns the template shipped with nativegen.
func Default() string {
	return defaultTemplate
}

// DefaultPath returns FileName inside the directory of the running executable.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), FileName), nil
}

// Load reads a template file and checks that it is well formed.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", path, err)
	}
	tmpl := string(data)
	if err := Validate(tmpl); err != nil {
		return "", fmt.Errorf("invalid template %s: %w", path, err)
	}
	return tmpl, nil
}

// Validate reports brace errors without substituting anything.
func Validate(tmpl string) error {
	_, err := scan(tmpl, nil, -1)
	return err
}

// Fill substitutes args into tmpl.
func Fill(tmpl string, args ...string) (string, error) {
	return scan(tmpl, args, len(args))
}

// scan walks tmpl once. With nargs < 0 indices are only checked for syntax.
func scan(tmpl string, args []string, nargs int) (string, error) {
	var sb strings.Builder
	sb.Grow(len(tmpl) + totalLen(args))

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				sb.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("unclosed '{' at offset %d", i)
			}
			field := tmpl[i+1 : i+1+end]
			idx, width, err := parseField(field)
			if err != nil {
				return "", fmt.Errorf("invalid placeholder {%s} at offset %d", field, i)
			}
			if nargs >= 0 {
				if idx >= nargs {
					return "", fmt.Errorf("placeholder {%d} at offset %d has no argument (got %d)", idx, i, nargs)
				}
				sb.WriteString(pad(args[idx], width))
			}
			i += end + 1
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				sb.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("unescaped '}' at offset %d", i)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), nil
}

// parseField splits "index[,alignment][:format]". Arguments are already
// text, so the format part is accepted and ignored.
func parseField(field string) (idx, width int, err error) {
	if colon := strings.IndexByte(field, ':'); colon >= 0 {
		field = field[:colon]
	}
	index, align, hasAlign := strings.Cut(field, ",")
	if strings.TrimSpace(index) != index {
		return 0, 0, errInvalidField
	}
	idx, err = strconv.Atoi(index)
	if err != nil || idx < 0 {
		return 0, 0, errInvalidField
	}
	if hasAlign {
		width, err = strconv.Atoi(strings.TrimSpace(align))
		if err != nil {
			return 0, 0, errInvalidField
		}
	}
	return idx, width, nil
}

// pad right-aligns s in width runes, or left-aligns it for a negative width.
func pad(s string, width int) string {
	left := width < 0
	if left {
		width = -width
	}
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if left {
		return s + strings.Repeat(" ", n)
	}
	return strings.Repeat(" ", n) + s
}

func totalLen(args []string) int {
	n := 0
	for _, a := range args {
		n += len(a)
	}
	return n
}
