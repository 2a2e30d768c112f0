package util

import "unicode/utf8"

// Unset is rendered in place of an empty value.
const Unset = "(unset)"

// MaskPrefix keeps at most n leading runes of value and appends "...".
// Values are always suffixed, even when shorter than n, so the output does not
// reveal the full length of the secret.
func MaskPrefix(value string, n int) string {
	if value == "" {
		return Unset
	}
	if n <= 0 {
		return "..."
	}
	if utf8.RuneCountInString(value) <= n {
		return value + "..."
	}
	return string([]rune(value)[:n]) + "..."
}
