package export

import (
	"fmt"
	"strings"
)

// escapeJSON escapes s for embedding inside a JSON string literal.
// The export format contract names backslash, double quote, newline,
// carriage return and tab; every other control character is escaped as
// \u00XX so the emitted line is always valid single-line JSON.
func escapeJSON(s string) string {
	var out strings.Builder
	out.Grow(len(s))
	for _, c := range []byte(s) {
		switch c {
		case '\\':
			out.WriteString(`\\`)
		case '"':
			out.WriteString(`\"`)
		case '\n':
			out.WriteString(`\n`)
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		default:
			if c < 0x20 {
				fmt.Fprintf(&out, `\u%04x`, c)
			} else {
				out.WriteByte(c)
			}
		}
	}
	return out.String()
}
