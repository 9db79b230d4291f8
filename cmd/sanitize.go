package cmd

import "strings"

// sanitizePath replaces control characters in user-supplied paths and names
// with '?' before they are echoed in messages.
func sanitizePath(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return '?'
		}
		return r
	}, s)
}
