// Package phone formats North American phone numbers for display in
// outgoing email.
package phone

import "strings"

// Format renders a US number as +1(XXX)XXX-XXXX. A leading country code
// 1 is tolerated. Inputs that do not reduce to ten digits are returned
// unchanged.
func Format(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	if len(d) == 11 && d[0] == '1' {
		d = d[1:]
	}
	if len(d) != 10 {
		return raw
	}

	var b strings.Builder
	b.WriteString("+1(")
	b.WriteString(d[:3])
	b.WriteString(")")
	b.WriteString(d[3:6])
	b.WriteString("-")
	b.WriteString(d[6:])
	return b.String()
}
