//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

package repair

import (
	"fmt"
	"strings"
)

// RepairStrings fixes unterminated and mis-escaped string literals in a
// single forward scan. A double quote inside a string region is treated as
// the terminator only when it is followed, modulo whitespace, by a colon, a
// comma, a closing structural token or the end of input; otherwise it is an
// embedded quote and gets escaped. A string still open at end of input is
// closed. The second return value reports whether such a close was appended,
// which the structural stage uses to apply its drop policy to the member the
// string belonged to.
func RepairStrings(text string) (string, bool) {
	runes := []rune(text)
	var out strings.Builder
	out.Grow(len(text) + 2)

	inString := false
	escaped := false
	closedAtEOF := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if !inString {
			if r == '"' {
				inString = true
			}
			out.WriteRune(r)
			continue
		}
		switch {
		case escaped:
			escaped = false
			out.WriteRune(r)
		case r == '\\':
			escaped = true
			out.WriteRune(r)
		case r == '"':
			if terminatesString(runes, i) {
				inString = false
				out.WriteRune(r)
			} else {
				out.WriteString(`\"`)
			}
		case isControl(r):
			out.WriteString(escapeControl(r))
		default:
			out.WriteRune(r)
		}
	}
	if inString {
		if escaped {
			// A lone trailing backslash would escape the close we are
			// about to append; drop it.
			trimmed := out.String()
			out.Reset()
			out.WriteString(trimmed[:len(trimmed)-1])
		}
		out.WriteByte('"')
		closedAtEOF = true
	}
	return out.String(), closedAtEOF
}

// terminatesString reports whether the quote at index i ends the current
// string region: the next non-whitespace rune must be a colon, comma or
// closing token, or the input must end.
func terminatesString(runes []rune, i int) bool {
	j := i + 1
	for j < len(runes) && isWhitespace(runes[j]) {
		j++
	}
	if j >= len(runes) {
		return true
	}
	return isValueTerminator(runes[j])
}

// escapeControl returns the escaped representation of a control character.
func escapeControl(r rune) string {
	switch r {
	case '\b':
		return `\b`
	case '\f':
		return `\f`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	default:
		return fmt.Sprintf(`\u%04x`, r)
	}
}
