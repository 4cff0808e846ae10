// Package binding splits and recombines property values that embed
// dynamic snippets between {{ and }}.
//
// A value such as "{{theme.colors.primary}} !important" decomposes into the
// literal segments ["{{theme.colors.primary}}", " !important"] and the
// snippets ["theme.colors.primary", ""]. Recombine folds both back into one
// expression: "theme.colors.primary + ' !important'".
package binding

import (
	"regexp"
	"strings"
)

// Compiler decomposes values into snippets and literal segments and
// recombines them into a single expression. Implementations must be pure.
type Compiler interface {
	// Decompose splits text into per-segment snippets and the literal
	// segments they were found in. snippets[i] is empty when segments[i]
	// is plain text.
	Decompose(text string) (snippets, segments []string)

	// Recombine joins snippets and quoted plain segments into one expression.
	Recombine(snippets, segments []string) string
}

// dynamicValue matches a value holding at least one {{ }} binding.
var dynamicValue = regexp.MustCompile(`{{([\s\S]*?)}}`)

// Mustache is the Compiler for {{ }} delimited bindings.
type Mustache struct{}

// NewMustache creates a Mustache compiler.
func NewMustache() *Mustache {
	return &Mustache{}
}

// Decompose splits text into segments and extracts the snippet of every
// dynamic segment. Empty or whitespace-only text yields no segments.
func (m *Mustache) Decompose(text string) (snippets, segments []string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []string{}, []string{}
	}

	segments = Segments(trimmed)
	snippets = make([]string, len(segments))
	for i, segment := range segments {
		if IsDynamic(segment) {
			snippets[i] = segment[2 : len(segment)-2]
		}
	}
	return snippets, segments
}

// Recombine returns the snippet for dynamic segments and a single-quoted
// literal for plain ones, joined with " + ".
func (m *Mustache) Recombine(snippets, segments []string) string {
	parts := make([]string, len(segments))
	for i, segment := range segments {
		if i < len(snippets) && snippets[i] != "" {
			parts[i] = snippets[i]
			continue
		}
		parts[i] = quote(segment)
	}
	return strings.Join(parts, " + ")
}

// IsDynamic reports whether s contains a {{ }} binding.
func IsDynamic(s string) bool {
	return dynamicValue.MatchString(s)
}

// Segments splits s into plain text and balanced {{ }} segments. When the
// braces do not balance, s is returned as a single segment.
func Segments(s string) []string {
	start := strings.Index(s, "{{")
	if start == -1 {
		return []string{s}
	}

	var segments []string
	if start > 0 {
		segments = append(segments, s[:start])
	}

	rest := s[start:]
	depth := 0
scan:
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 && i > 0 && rest[i-1] == '}' {
				segments = append(segments, rest[:i+1])
				if tail := rest[i+1:]; tail != "" {
					segments = append(segments, Segments(tail)...)
				}
				break scan
			}
		}
	}

	if depth != 0 {
		return []string{s}
	}
	return segments
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quote(s string) string {
	return "'" + quoteEscaper.Replace(s) + "'"
}
