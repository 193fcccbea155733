package utils

import "strings"

// StripRefPrefix turns a full git ref like "refs/heads/main" into its short
// branch or tag name.
func StripRefPrefix(ref string) string {
	ref = strings.TrimPrefix(ref, "refs/heads/")
	ref = strings.TrimPrefix(ref, "refs/tags/")
	return ref
}

// FirstNonEmpty returns the first string that is not empty after trimming.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
