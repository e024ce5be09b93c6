//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

package repair

// isWhitespace reports whether r is JSON-significant whitespace.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// isOpener reports whether r opens a structural region.
func isOpener(r rune) bool {
	return r == '{' || r == '['
}

// isCloser reports whether r closes a structural region.
func isCloser(r rune) bool {
	return r == '}' || r == ']'
}

// matchingCloser returns the closing token for an opening token.
func matchingCloser(open rune) rune {
	if open == '{' {
		return '}'
	}
	return ']'
}

// isValueTerminator reports whether r can legally follow the end of a value.
func isValueTerminator(r rune) bool {
	return r == ':' || r == ',' || isCloser(r)
}

// isDigit reports whether r is an ASCII digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isIdentStart reports whether r can start a bare identifier-style key.
func isIdentStart(r rune) bool {
	return r == '_' || r == '$' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isIdentRune reports whether r can continue a bare identifier-style key.
func isIdentRune(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '-'
}

// isNumberStart reports whether r can start a number token.
func isNumberStart(r rune) bool {
	return r == '-' || isDigit(r)
}

// isNumberRune reports whether r can appear inside a number token.
func isNumberRune(r rune) bool {
	switch {
	case isDigit(r):
		return true
	case r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E':
		return true
	default:
		return false
	}
}

// isControl reports whether r is a control character that must be escaped
// inside a JSON string literal.
func isControl(r rune) bool {
	return r < 0x20
}
