package mal

import "strings"

// PrintState threads the rendering mode through SexpString calls.
// Readable re-inserts string escapes so the output reads back as the
// same value; display emits string contents raw.
type PrintState struct {
	Readable bool
}

func NewPrintState() *PrintState {
	return &PrintState{Readable: true}
}

// Print renders a value in the requested mode.
func (env *Env) Print(expr Sexp, readable bool) string {
	return expr.SexpString(&PrintState{Readable: readable})
}

// quoteString renders text as a double-quoted literal, escaping the
// backslash, the quote, and control characters.
func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteString(`"`)
	for _, r := range s {
		switch r {
		case '\a':
			sb.WriteString(`\a`)
		case '\b':
			sb.WriteString(`\b`)
		case '\x1b':
			sb.WriteString(`\e`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\v':
			sb.WriteString(`\v`)
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteString(`"`)
	return sb.String()
}
