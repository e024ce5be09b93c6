//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

package repair

import "fmt"

// Error represents a recovery defect with position information.
type Error struct {
	Message  string // Message is the defect description.
	Position int    // Position is the rune offset of the defect in the input.
}

// Error returns the defect description and position.
func (e *Error) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Position)
}

// Defect classifies what kind of damage a stage observed in the input.
// Truncation suspicion is advisory and travels on the Truncation type, not
// here.
type Defect int

const (
	// DefectNone means no damage was observed.
	DefectNone Defect = iota
	// DefectSyntax covers bare keys, wrong quote styles and stray commas.
	DefectSyntax
	// DefectUnterminatedString is a string literal left open at end of input.
	DefectUnterminatedString
	// DefectStructuralImbalance is an unequal set of open and close tokens.
	DefectStructuralImbalance
	// DefectTerminalParse means no stage produced parseable text.
	DefectTerminalParse
)

// String returns the defect name.
func (d Defect) String() string {
	switch d {
	case DefectNone:
		return "none"
	case DefectSyntax:
		return "syntax_defect"
	case DefectUnterminatedString:
		return "unterminated_string"
	case DefectStructuralImbalance:
		return "structural_imbalance"
	case DefectTerminalParse:
		return "terminal_parse_failure"
	default:
		return "unknown"
	}
}
