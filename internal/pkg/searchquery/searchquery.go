// Package searchquery builds storefront search strings (field:"value" terms) with every value quoted
// and escaped, so customer-supplied text can never change the shape of the query.
package searchquery

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInvalidField = errors.New("invalid search field")

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

type Builder struct {
	terms []string
	err   error
}

func New() *Builder {
	return &Builder{}
}

// Eq adds a field:"value" term.
func (b *Builder) Eq(field, value string) *Builder {
	return b.term(field, "", value)
}

// Not adds a -field:"value" term.
func (b *Builder) Not(field, value string) *Builder {
	return b.term(field, "-", value)
}

func (b *Builder) term(field, prefix, value string) *Builder {
	if b.err != nil {
		return b
	}
	if !fieldPattern.MatchString(field) {
		b.err = fmt.Errorf("%w: %q", ErrInvalidField, field)
		return b
	}
	b.terms = append(b.terms, prefix+field+":"+Quote(value))
	return b
}

// Build joins the terms with AND.
func (b *Builder) Build() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return strings.Join(b.terms, " AND "), nil
}

// Quote wraps v in double quotes, escaping backslashes and quotes.
func Quote(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(v) + `"`
}
