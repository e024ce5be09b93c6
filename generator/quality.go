//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

package generator

import (
	"fmt"
	"strings"
)

// Severity grades a validation issue.
type Severity int

const (
	// SeverityInfo is advisory.
	SeverityInfo Severity = iota
	// SeverityWarning flags questionable content that is still usable.
	SeverityWarning
	// SeverityError flags content that should not be published.
	SeverityError
	// SeverityCritical flags content that is structurally broken.
	SeverityCritical
)

// Issue is one validation finding.
type Issue struct {
	// Severity grades the finding.
	Severity Severity
	// Field names the offending field.
	Field string
	// Message describes the finding.
	Message string
}

// Validation is the outcome of validating one question or paper.
type Validation struct {
	// Valid is false when any error or critical issue was found.
	Valid bool
	// Score is a quality score from 0.0 to 1.0.
	Score float64
	// Issues lists every finding.
	Issues []Issue
}

// Summary renders the issues as one line for logging.
func (v Validation) Summary() string {
	if len(v.Issues) == 0 {
		return "ok"
	}
	parts := make([]string, 0, len(v.Issues))
	for _, issue := range v.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(parts, "; ")
}

// Validator applies the content quality rules for generated questions.
type Validator struct {
	minQuestionLen    int
	maxQuestionLen    int
	minExplanationLen int
	requiredOptions   int

	poorQualityIndicators []string
}

// NewValidator creates a Validator with the standard thresholds.
func NewValidator() *Validator {
	return &Validator{
		minQuestionLen:    20,
		maxQuestionLen:    500,
		minExplanationLen: 30,
		requiredOptions:   4,
		poorQualityIndicators: []string{
			"i don't know", "not sure", "maybe", "probably", "i think",
			"lorem ipsum", "placeholder", "example", "test question",
		},
	}
}

// ValidateQuizQuestion checks one multiple choice question.
func (v *Validator) ValidateQuizQuestion(q QuizQuestion) Validation {
	var issues []Issue
	issues = append(issues, v.checkQuestionText(q.QuestionText)...)
	issues = append(issues, v.checkOptions(q.Options, q.CorrectAnswer)...)
	issues = append(issues, v.checkExplanation(q.Explanation)...)
	return finishValidation(issues)
}

// ValidateExamQuestion checks one exam question.
func (v *Validator) ValidateExamQuestion(q ExamQuestion) Validation {
	var issues []Issue
	if len(strings.TrimSpace(q.QuestionText)) < 30 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Field:    "question_text",
			Message:  "exam question text is too short",
		})
	}
	if q.Marks < 1 || q.Marks > 20 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Field:    "marks",
			Message:  fmt.Sprintf("invalid marks allocation: %d", q.Marks),
		})
	}
	if len(strings.TrimSpace(q.AnswerText)) < 20 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Field:    "answer_text",
			Message:  "marking scheme is too short",
		})
	}
	return finishValidation(issues)
}

// ValidateExamPaper checks a paper and each of its questions.
func (v *Validator) ValidateExamPaper(paper ExamPaper) Validation {
	if len(paper.Questions) == 0 {
		return Validation{
			Valid: false,
			Score: 0,
			Issues: []Issue{{
				Severity: SeverityCritical,
				Field:    "questions",
				Message:  "exam paper has no questions",
			}},
		}
	}

	var issues []Issue
	marks := 0
	scoreSum := 0.0
	for i, q := range paper.Questions {
		marks += q.Marks
		result := v.ValidateExamQuestion(q)
		scoreSum += result.Score
		for _, issue := range result.Issues {
			issue.Field = fmt.Sprintf("questions[%d].%s", i, issue.Field)
			issues = append(issues, issue)
		}
	}
	if marks != paper.TotalMarks {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Field:    "total_marks",
			Message:  fmt.Sprintf("marks mismatch: calculated %d, declared %d", marks, paper.TotalMarks),
		})
	}

	result := finishValidation(issues)
	result.Score = scoreSum / float64(len(paper.Questions))
	penalty := 0.0
	for _, issue := range issues {
		if issue.Severity >= SeverityError {
			penalty += 0.1
		}
	}
	result.Score -= penalty
	if result.Score < 0 {
		result.Score = 0
	}
	return result
}

func (v *Validator) checkQuestionText(text string) []Issue {
	text = strings.TrimSpace(text)
	if text == "" {
		return []Issue{{
			Severity: SeverityCritical,
			Field:    "question_text",
			Message:  "question text is empty",
		}}
	}

	var issues []Issue
	if len(text) < v.minQuestionLen {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Field:    "question_text",
			Message:  fmt.Sprintf("too short (%d chars, minimum %d)", len(text), v.minQuestionLen),
		})
	}
	if len(text) > v.maxQuestionLen {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Field:    "question_text",
			Message:  fmt.Sprintf("very long (%d chars, maximum %d)", len(text), v.maxQuestionLen),
		})
	}

	lower := strings.ToLower(text)
	for _, indicator := range v.poorQualityIndicators {
		if strings.Contains(lower, indicator) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Field:    "question_text",
				Message:  fmt.Sprintf("contains poor quality indicator %q", indicator),
			})
		}
	}
	return issues
}

func (v *Validator) checkOptions(options map[string]string, correct string) []Issue {
	if len(options) == 0 {
		return []Issue{{
			Severity: SeverityCritical,
			Field:    "options",
			Message:  "multiple choice question missing options",
		}}
	}

	var issues []Issue
	if len(options) < v.requiredOptions {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Field:    "options",
			Message:  fmt.Sprintf("insufficient options (%d, required %d)", len(options), v.requiredOptions),
		})
	}
	for _, label := range []string{"A", "B", "C", "D"}[:min(len(options), 4)] {
		if _, ok := options[label]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Field:    "options",
				Message:  fmt.Sprintf("missing option label %q", label),
			})
		}
	}
	if _, ok := options[correct]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityCritical,
			Field:    "correct_answer",
			Message:  fmt.Sprintf("correct answer %q not found in options", correct),
		})
	}

	seen := make(map[string]bool, len(options))
	for _, text := range options {
		if seen[text] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Field:    "options",
				Message:  "duplicate option texts found",
			})
			break
		}
		seen[text] = true
	}
	return issues
}

func (v *Validator) checkExplanation(text string) []Issue {
	if len(strings.TrimSpace(text)) < v.minExplanationLen {
		return []Issue{{
			Severity: SeverityError,
			Field:    "explanation",
			Message:  fmt.Sprintf("too short (minimum %d chars)", v.minExplanationLen),
		}}
	}
	return nil
}

// finishValidation derives validity and score from the collected issues.
func finishValidation(issues []Issue) Validation {
	valid := true
	score := 1.0
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityCritical:
			valid = false
			score -= 0.5
		case SeverityError:
			valid = false
			score -= 0.2
		case SeverityWarning:
			score -= 0.05
		}
	}
	if score < 0 {
		score = 0
	}
	return Validation{Valid: valid, Score: score, Issues: issues}
}
