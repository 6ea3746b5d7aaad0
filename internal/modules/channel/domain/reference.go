package domain

import "strings"

// Normalize turns a user-supplied channel link into a bare identifier:
// "https://t.me/xxxx" and "t.me/xxxx" become "xxxx", anything else passes
// through unchanged. Malformed input is not an error here; resolution is the
// layer that reports invalidity.
func Normalize(raw string) string {
	ref := strings.TrimSpace(raw)
	ref = strings.TrimPrefix(ref, "https://t.me/")
	ref = strings.TrimPrefix(ref, "http://t.me/")
	ref = strings.TrimPrefix(ref, "t.me/")
	return ref
}
