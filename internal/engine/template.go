package engine

import (
	"strings"

	"github.com/n-tennyson/physics-simulator/internal/ir"
)

// renderTemplate substitutes each {name} placeholder with the value of name
// from knowns. Placeholders naming an absent variable, or that are not a
// plain identifier, are left verbatim.
func renderTemplate(tmpl string, knowns ir.Knowns) string {
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}

	var b strings.Builder
	b.Grow(len(tmpl))

	rest := tmpl
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		closeAt := strings.IndexByte(rest[open+1:], '}')
		if closeAt < 0 {
			break
		}
		closeAt += open + 1

		b.WriteString(rest[:open])
		name := rest[open+1 : closeAt]
		if v, ok := knowns[name]; ok && isIdentifier(name) {
			b.WriteString(ir.FormatNumber(v))
		} else {
			b.WriteString(rest[open : closeAt+1])
		}
		rest = rest[closeAt+1:]
	}
	b.WriteString(rest)

	return b.String()
}

// placeholders returns the identifier placeholders in tmpl, in order.
func placeholders(tmpl string) []string {
	var names []string
	rest := tmpl
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			return names
		}
		closeAt := strings.IndexByte(rest[open+1:], '}')
		if closeAt < 0 {
			return names
		}
		closeAt += open + 1
		if name := rest[open+1 : closeAt]; isIdentifier(name) {
			names = append(names, name)
		}
		rest = rest[closeAt+1:]
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
