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

// fallbackRawCap bounds how much of the original text a fallback record
// retains, so unrecoverable completions never pin large buffers.
const fallbackRawCap = 2048

// Fallback assembles the guaranteed-parseable diagnostic record returned
// when no repair stage yields valid text. It is a total function: the record
// is built from literals and explicit escaping only, so it cannot fail for
// any input, including empty and arbitrarily long text.
func Fallback(raw string, stage Stage, message string) string {
	capped := raw
	if r := []rune(capped); len(r) > fallbackRawCap {
		capped = string(r[:fallbackRawCap])
	}
	var out strings.Builder
	out.Grow(len(capped) + len(message) + 64)
	out.WriteString(`{"error":"`)
	writeEscaped(&out, message)
	out.WriteString(`","raw":"`)
	writeEscaped(&out, capped)
	out.WriteString(`","stage":"`)
	writeEscaped(&out, stage.String())
	out.WriteString(`"}`)
	return out.String()
}

// writeEscaped writes s as the body of a JSON string literal.
func writeEscaped(out *strings.Builder, s string) {
	for _, r := range s {
		switch {
		case r == '"':
			out.WriteString(`\"`)
		case r == '\\':
			out.WriteString(`\\`)
		case r == '\b':
			out.WriteString(`\b`)
		case r == '\f':
			out.WriteString(`\f`)
		case r == '\n':
			out.WriteString(`\n`)
		case r == '\r':
			out.WriteString(`\r`)
		case r == '\t':
			out.WriteString(`\t`)
		case isControl(r):
			fmt.Fprintf(out, `\u%04x`, r)
		default:
			out.WriteRune(r)
		}
	}
}
