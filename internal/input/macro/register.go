package macro

import "unicode"

// DefaultRegister is used when no register is named.
const DefaultRegister = 'q'

// IsValidRegister reports whether r names a register: a-z or 0-9.
func IsValidRegister(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// IsAppendRegister reports whether r is an upper case letter, which
// appends to the matching lower case register.
func IsAppendRegister(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// NormalizeRegister returns the register r stores into, or 0 when r is
// not a register name.
func NormalizeRegister(r rune) rune {
	if IsAppendRegister(r) {
		return unicode.ToLower(r)
	}
	if IsValidRegister(r) {
		return r
	}
	return 0
}
