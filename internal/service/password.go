package service

import "unicode"

const (
	minPasswordLen = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLen = 72
)

// strongPassword requires 8-72 bytes with at least one lower-case letter,
// one upper-case letter, one digit and one symbol.
func strongPassword(p string) bool {
	if len(p) < minPasswordLen || len(p) > maxPasswordLen {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
