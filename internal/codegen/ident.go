package codegen

import (
	"strings"
	"unicode"
)

// Go keywords cannot be used as identifiers.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true,
	"continue": true, "default": true, "defer": true, "else": true,
	"fallthrough": true, "for": true, "func": true, "go": true,
	"goto": true, "if": true, "import": true, "interface": true,
	"map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true,
	"var": true,
}

// Initialisms rendered in caps per Go convention.
var initialisms = map[string]string{
	"id": "ID", "url": "URL", "api": "API", "http": "HTTP",
	"json": "JSON", "iban": "IBAN", "sepa": "SEPA", "ach": "ACH",
	"eps": "EPS", "sku": "SKU", "uri": "URI",
}

// GoName converts a snake_case or dotted spec name to an exported Go
// identifier: "checkout.session" becomes "CheckoutSession",
// "payment_intent" becomes "PaymentIntent".
func GoName(name string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '.' || r == '-'
	}) {
		if caps, ok := initialisms[strings.ToLower(word)]; ok {
			b.WriteString(caps)
			continue
		}
		r := []rune(word)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return sanitizeIdent(b.String())
}

// EnumValueName builds the constant name for one enum value of a type,
// e.g. ("PaymentIntentStatus", "requires_action") becomes
// "PaymentIntentStatusRequiresAction".
func EnumValueName(typeName, value string) string {
	if value == "" {
		return typeName + "Empty"
	}
	return typeName + GoName(value)
}

// sanitizeIdent makes s a valid Go identifier. Leading digits get an
// underscore prefix and invalid runes collapse to underscores.
func sanitizeIdent(s string) string {
	if s == "" {
		return "X"
	}
	var b strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if goKeywords[out] {
		out += "_"
	}
	return out
}

// identTable allocates unique identifiers within one output package.
// Collisions are resolved by prefixing the owner's name, mirroring how
// nested spec types are qualified by their parent resource.
type identTable struct {
	taken map[string]ComponentPath
}

func newIdentTable() *identTable {
	return &identTable{taken: make(map[string]ComponentPath)}
}

// claim reserves name for owner. When another component already holds
// the name, the owner's Go name is prepended until the result is free.
func (t *identTable) claim(name string, owner ComponentPath) string {
	candidate := name
	if prev, ok := t.taken[candidate]; ok && prev != owner {
		candidate = GoName(owner.String()) + name
	}
	for {
		prev, ok := t.taken[candidate]
		if !ok || prev == owner {
			break
		}
		candidate += "_"
	}
	t.taken[candidate] = owner
	return candidate
}
