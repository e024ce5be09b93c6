//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

package repair

// Truncation is the advisory verdict of the truncation detector.
// It annotates diagnostics and never drives repair decisions.
type Truncation struct {
	// Suspected reports whether the input looks cut off mid-generation.
	Suspected bool
	// CutIndex is the estimated rune offset where the cut happened,
	// or -1 when no cut is suspected.
	CutIndex int
}

// DetectTruncation classifies whether text looks like a completion that was
// cut off before the producer finished writing it. It is a pure, single-pass
// heuristic: unbalanced structural tokens, an odd number of unescaped double
// quotes, a tail that is not a closing token or quote, or a dangling key with
// no value all raise suspicion.
func DetectTruncation(text string) Truncation {
	runes := []rune(text)

	var opens, closes, quotes int
	inString := false
	escaped := false
	for _, r := range runes {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				quotes++
				inString = false
			}
			continue
		}
		switch {
		case r == '"':
			quotes++
			inString = true
		case isOpener(r):
			opens++
		case isCloser(r):
			closes++
		}
	}

	last := lastNonWhitespace(runes)
	suspected := false
	switch {
	case opens != closes:
		suspected = true
	case quotes%2 != 0:
		suspected = true
	case opens > 0 && last >= 0 && !isCloser(runes[last]) && runes[last] != '"':
		suspected = true
	case endsWithDanglingKey(runes, last):
		suspected = true
	}

	if !suspected {
		return Truncation{Suspected: false, CutIndex: -1}
	}
	return Truncation{Suspected: true, CutIndex: last + 1}
}

// lastNonWhitespace returns the index of the last non-whitespace rune, or -1.
func lastNonWhitespace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if !isWhitespace(runes[i]) {
			return i
		}
	}
	return -1
}

// endsWithDanglingKey reports whether the text ends with a quoted key and a
// colon that no value ever followed.
func endsWithDanglingKey(runes []rune, last int) bool {
	if last < 0 || runes[last] != ':' {
		return false
	}
	i := last - 1
	for i >= 0 && isWhitespace(runes[i]) {
		i--
	}
	return i >= 0 && runes[i] == '"'
}
