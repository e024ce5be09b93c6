//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

package repair

import "strings"

// Normalize applies the fixed, ordered sequence of textual rewrites that fix
// the most common syntactic damage in generated completions: surrounding
// prose and code fences, bare identifier keys, single-quoted strings,
// trailing commas and duplicated commas. Every rewrite only removes text or
// adds quoting; none invents values. Applying Normalize twice yields the
// same result as applying it once.
func Normalize(text string) string {
	text = stripEnclosingProse(text)
	text = quoteBareKeys(text)
	text = convertSingleQuotes(text)
	text = dropCommasBeforeClosers(text)
	text = collapseDuplicateCommas(text)
	return text
}

// stripEnclosingProse removes any leading prose or code-fence marker before
// the first structural opening token and any trailing prose after the last
// structural closing token. Text without structural tokens is left alone so
// that later stages can classify it as unrecoverable.
func stripEnclosingProse(text string) string {
	runes := []rune(text)
	firstOpen := -1
	lastClose := -1
	inString := false
	escaped := false
	for i, r := range runes {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch {
		case r == '"':
			inString = true
		case isOpener(r):
			if firstOpen == -1 {
				firstOpen = i
			}
		case isCloser(r):
			lastClose = i
		}
	}
	if firstOpen == -1 {
		return text
	}
	if lastClose > firstOpen {
		return string(runes[firstOpen : lastClose+1])
	}
	return string(runes[firstOpen:])
}

// quoteBareKeys wraps bare identifier-style property names in double quotes.
// Only tokens in key position of an object and immediately followed by a
// colon are rewritten; bare words in value position are left for the parser
// to reject.
func quoteBareKeys(text string) string {
	runes := []rune(text)
	var out strings.Builder
	out.Grow(len(text) + 8)

	var stack []rune
	keyPos := false
	i := 0
	for i < len(runes) {
		r := runes[i]
		if r == '"' || r == '\'' {
			end := skipString(runes, i, r)
			out.WriteString(string(runes[i:end]))
			i = end
			continue
		}
		switch {
		case r == '{':
			stack = append(stack, r)
			keyPos = true
		case r == '[':
			stack = append(stack, r)
			keyPos = false
		case isCloser(r):
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			keyPos = len(stack) > 0 && stack[len(stack)-1] == '{'
		case r == ',':
			keyPos = len(stack) > 0 && stack[len(stack)-1] == '{'
		case r == ':':
			keyPos = false
		case isIdentStart(r) && len(stack) > 0 && stack[len(stack)-1] == '{' && keyPos:
			end := i
			for end < len(runes) && isIdentRune(runes[end]) {
				end++
			}
			next := end
			for next < len(runes) && isWhitespace(runes[next]) {
				next++
			}
			if next < len(runes) && runes[next] == ':' {
				out.WriteByte('"')
				out.WriteString(string(runes[i:end]))
				out.WriteByte('"')
			} else {
				out.WriteString(string(runes[i:end]))
			}
			i = end
			continue
		}
		out.WriteRune(r)
		i++
	}
	return out.String()
}

// skipString returns the index just past the string literal starting at
// start, which must hold the quote rune. The end of input counts as an
// implicit terminator for an unterminated literal.
func skipString(runes []rune, start int, quote rune) int {
	i := start + 1
	for i < len(runes) {
		switch runes[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		}
		i++
	}
	return len(runes)
}

// convertSingleQuotes rewrites single-quoted keys and values into
// double-quoted form, escaping any embedded double quotes.
func convertSingleQuotes(text string) string {
	runes := []rune(text)
	var out strings.Builder
	out.Grow(len(text) + 8)

	i := 0
	for i < len(runes) {
		r := runes[i]
		if r == '"' {
			end := skipString(runes, i, '"')
			out.WriteString(string(runes[i:end]))
			i = end
			continue
		}
		if r != '\'' {
			out.WriteRune(r)
			i++
			continue
		}
		out.WriteByte('"')
		i++
		for i < len(runes) {
			c := runes[i]
			if c == '\\' && i+1 < len(runes) {
				next := runes[i+1]
				switch next {
				case '\'':
					out.WriteByte('\'')
				case '"':
					out.WriteString(`\"`)
				default:
					out.WriteRune(c)
					out.WriteRune(next)
				}
				i += 2
				continue
			}
			if c == '\'' {
				i++
				break
			}
			if c == '"' {
				out.WriteString(`\"`)
				i++
				continue
			}
			out.WriteRune(c)
			i++
		}
		out.WriteByte('"')
	}
	return out.String()
}

// dropCommasBeforeClosers removes any run of commas that is followed, modulo
// whitespace, by a closing structural token.
func dropCommasBeforeClosers(text string) string {
	runes := []rune(text)
	var out strings.Builder
	out.Grow(len(text))

	i := 0
	for i < len(runes) {
		r := runes[i]
		if r == '"' {
			end := skipString(runes, i, '"')
			out.WriteString(string(runes[i:end]))
			i = end
			continue
		}
		if r == ',' {
			j := i
			var ws []rune
			for j < len(runes) && (runes[j] == ',' || isWhitespace(runes[j])) {
				if isWhitespace(runes[j]) {
					ws = append(ws, runes[j])
				}
				j++
			}
			if j < len(runes) && isCloser(runes[j]) {
				out.WriteString(string(ws))
				i = j
				continue
			}
			out.WriteRune(r)
			i++
			continue
		}
		out.WriteRune(r)
		i++
	}
	return out.String()
}

// collapseDuplicateCommas reduces runs of adjacent commas, modulo
// whitespace, to a single comma.
func collapseDuplicateCommas(text string) string {
	runes := []rune(text)
	var out strings.Builder
	out.Grow(len(text))

	i := 0
	for i < len(runes) {
		r := runes[i]
		if r == '"' {
			end := skipString(runes, i, '"')
			out.WriteString(string(runes[i:end]))
			i = end
			continue
		}
		if r == ',' {
			out.WriteRune(r)
			i++
			for i < len(runes) && (runes[i] == ',' || isWhitespace(runes[i])) {
				if isWhitespace(runes[i]) {
					out.WriteRune(runes[i])
				}
				i++
			}
			continue
		}
		out.WriteRune(r)
		i++
	}
	return out.String()
}
