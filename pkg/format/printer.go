package format

import (
	"strings"

	"github.com/leapstack-labs/sqlmentor/pkg/token"
)

// printer accumulates the compact output. Tokens are joined with single
// spaces; punctuation suppresses the space on one or both sides.
type printer struct {
	sb        strings.Builder
	needSpace bool
}

func newPrinter() *printer {
	return &printer{}
}

// String returns the accumulated output.
func (p *printer) String() string {
	return p.sb.String()
}

// write emits a token preceded by a space when one is pending.
func (p *printer) write(s string) {
	if s == "" {
		return
	}
	if p.needSpace {
		p.sb.WriteByte(' ')
	}
	p.sb.WriteString(s)
	p.needSpace = true
}

// writeTight emits a token with no space before it (dots, commas, closing
// parens, the opening paren of a call).
func (p *printer) writeTight(s string) {
	p.sb.WriteString(s)
	p.needSpace = true
}

// writeOpen emits a token and suppresses the space after it.
func (p *printer) writeOpen(s string) {
	if p.needSpace {
		p.sb.WriteByte(' ')
	}
	p.sb.WriteString(s)
	p.needSpace = false
}

// writeOpenTight emits a token with no space on either side.
func (p *printer) writeOpenTight(s string) {
	p.sb.WriteString(s)
	p.needSpace = false
}

// ident emits an identifier, double-quoting it when it is not a plain
// lowercase-safe identifier.
func (p *printer) ident(name string) {
	p.write(quoteIdent(name))
}

func quoteIdent(name string) string {
	// Keywords used as identifiers must stay quoted to round-trip.
	if _, kw := token.LookupKeyword(name); !kw && isPlainIdent(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func isPlainIdent(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_':
		case '0' <= c && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
