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

// frame tracks one open structural region during the closing scan.
type frame struct {
	open rune
	// committedEnd is the offset just past the last member value that a
	// comma confirmed as finished, so truncating there never loses a
	// complete member.
	committedEnd int
	// pendingEnd is the offset just past the newest complete value that no
	// comma or closer has confirmed yet.
	pendingEnd  int
	pendingDone bool
	sawKey      bool
	sawColon    bool
}

// CloseStructures balances the open structural tokens of string-repaired
// text. When the input ends with regions still open, the last incomplete
// trailing member is discarded rather than completed: a dangling key, a key
// with no value, a value that is itself an unclosed container (discarded
// wholly, together with everything opened inside it) or a string value that
// the string stage had to close at end of input. The remaining open regions
// are then closed in last-in-first-out order. Members that were fully
// written are always kept; nothing is ever invented.
//
// stringClosedAtEOF is the flag returned by RepairStrings.
func CloseStructures(text string, stringClosedAtEOF bool) string {
	runes := []rune(text)
	var stack []*frame

	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '"':
			end := skipString(runes, i, '"')
			top := topFrame(stack)
			if top != nil && top.open == '{' && !top.sawColon {
				top.sawKey = true
			} else if top != nil {
				top.pendingDone = true
				top.pendingEnd = end
			}
			i = end
		case isOpener(r):
			stack = append(stack, &frame{open: r, committedEnd: i + 1})
			i++
		case isCloser(r):
			top := topFrame(stack)
			if top != nil && matchingCloser(top.open) == r {
				stack = stack[:len(stack)-1]
				if parent := topFrame(stack); parent != nil {
					parent.pendingDone = true
					parent.pendingEnd = i + 1
				}
			}
			i++
		case r == ':':
			if top := topFrame(stack); top != nil {
				top.sawColon = true
			}
			i++
		case r == ',':
			if top := topFrame(stack); top != nil {
				if top.pendingDone {
					top.committedEnd = top.pendingEnd
				}
				top.pendingDone = false
				top.sawKey = false
				top.sawColon = false
			}
			i++
		case isNumberStart(r):
			end := i + 1
			for end < len(runes) && isNumberRune(runes[end]) {
				end++
			}
			if top := topFrame(stack); top != nil {
				top.pendingDone = true
				top.pendingEnd = end
			}
			i = end
		case isIdentStart(r):
			end := i + 1
			for end < len(runes) && isIdentRune(runes[end]) {
				end++
			}
			if top := topFrame(stack); top != nil {
				top.pendingDone = true
				top.pendingEnd = end
			}
			i = end
		default:
			i++
		}
	}

	if len(stack) == 0 {
		return text
	}

	root := stack[0]
	cut := root.committedEnd
	if len(stack) == 1 {
		keep := root.pendingDone && !stringClosedAtEOF &&
			(root.open != '{' || root.sawColon)
		if keep {
			cut = root.pendingEnd
		}
	}

	var out strings.Builder
	out.Grow(cut + 1)
	out.WriteString(string(runes[:cut]))
	out.WriteRune(matchingCloser(root.open))
	return out.String()
}

// topFrame returns the innermost open frame or nil.
func topFrame(stack []*frame) *frame {
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}
