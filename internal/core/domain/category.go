package domain

import "strings"

// escapedComma is the two-character sequence for a literal comma inside a category.
const escapedComma = `\,`

// ParseCategory splits one raw category string into display categories.
//
// A comma separates categories unless it is immediately preceded by a
// backslash; a comma at the very start of the string is always a separator.
// Each segment has its escape markers removed and is trimmed. Empty segments
// are dropped. A backslash that is not followed by a comma is kept as is.
func ParseCategory(raw string) []string {
	var segments []string
	start := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] != ',' {
			continue
		}
		if i > 0 && raw[i-1] == '\\' {
			continue
		}
		segments = appendSegment(segments, raw[start:i])
		start = i + 1
	}
	return appendSegment(segments, raw[start:])
}

func appendSegment(segments []string, segment string) []string {
	segment = strings.TrimSpace(strings.ReplaceAll(segment, escapedComma, ","))
	if segment == "" {
		return segments
	}
	return append(segments, segment)
}

// NormaliseCategories flattens raw category strings into a deduplicated
// list, preserving first-seen order.
func NormaliseCategories(raw []string) []string {
	var all []string
	for _, r := range raw {
		all = append(all, ParseCategory(r)...)
	}
	return Dedupe(all)
}

// SplitGrouped flattens values the catalog may return comma-joined
// (for example makes). Plain commas always separate; there is no escape.
func SplitGrouped(raw []string) []string {
	var all []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				all = append(all, part)
			}
		}
	}
	return Dedupe(all)
}

// Dedupe removes repeated and empty values, preserving first-seen order.
func Dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Contains reports whether value is in values.
func Contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// FilterByTerm keeps values containing term, ignoring case.
func FilterByTerm(values []string, term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			out = append(out, v)
		}
	}
	return out
}
