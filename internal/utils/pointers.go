package utils

import (
	"fmt"
	"strings"
)

func StringPtr(s string) *string {
	return &s
}

// NonEmptyStringPtr returns nil for blank strings so optional columns stay NULL.
func NonEmptyStringPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// PtrStringOr returns def when s is nil or blank.
func PtrStringOr(s *string, def string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return def
	}
	return *s
}

const columnPrefixFmt = "%s.%s"

func PrefixSliceOfStrings(prefix string, input []string, ignore ...string) []string {
	out := make([]string, 0, len(input))

inputloop:
	for _, v := range input {
		for _, ignored := range ignore {
			if v == ignored {
				continue inputloop
			}
		}

		out = append(out, fmt.Sprintf(columnPrefixFmt, prefix, v))
	}
	return out
}
