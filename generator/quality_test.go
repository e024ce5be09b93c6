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
	"testing"

	"github.com/stretchr/testify/require"
)

func goodQuizQuestion() QuizQuestion {
	return QuizQuestion{
		QuestionText: "What is the value of x when 2x + 4 = 10?",
		QuestionType: "multiple_choice",
		Options: map[string]string{
			"A": "x = 3",
			"B": "x = 5",
			"C": "x = 7",
			"D": "x = 2",
		},
		CorrectAnswer:   "A",
		Explanation:     "Subtracting 4 from both sides gives 2x = 6, so x = 3. The other values do not satisfy the equation.",
		DifficultyLevel: 3,
		Points:          1,
	}
}

// TestValidateQuizQuestion covers the content rules for multiple choice
// questions.
func TestValidateQuizQuestion(t *testing.T) {
	v := NewValidator()

	t.Run("good question passes", func(t *testing.T) {
		result := v.ValidateQuizQuestion(goodQuizQuestion())
		require.True(t, result.Valid)
		require.Equal(t, 1.0, result.Score)
		require.Empty(t, result.Issues)
	})

	t.Run("empty text is critical", func(t *testing.T) {
		q := goodQuizQuestion()
		q.QuestionText = "  "
		result := v.ValidateQuizQuestion(q)
		require.False(t, result.Valid)
		require.Equal(t, SeverityCritical, result.Issues[0].Severity)
	})

	t.Run("short text rejected", func(t *testing.T) {
		q := goodQuizQuestion()
		q.QuestionText = "What is x?"
		result := v.ValidateQuizQuestion(q)
		require.False(t, result.Valid)
	})

	t.Run("missing options is critical", func(t *testing.T) {
		q := goodQuizQuestion()
		q.Options = nil
		result := v.ValidateQuizQuestion(q)
		require.False(t, result.Valid)
	})

	t.Run("correct answer must match an option", func(t *testing.T) {
		q := goodQuizQuestion()
		q.CorrectAnswer = "E"
		result := v.ValidateQuizQuestion(q)
		require.False(t, result.Valid)
	})

	t.Run("duplicate options rejected", func(t *testing.T) {
		q := goodQuizQuestion()
		q.Options["B"] = q.Options["A"]
		result := v.ValidateQuizQuestion(q)
		require.False(t, result.Valid)
	})

	t.Run("placeholder language rejected", func(t *testing.T) {
		q := goodQuizQuestion()
		q.QuestionText = "This is a placeholder question about algebra basics?"
		result := v.ValidateQuizQuestion(q)
		require.False(t, result.Valid)
	})

	t.Run("short explanation rejected", func(t *testing.T) {
		q := goodQuizQuestion()
		q.Explanation = "Because."
		result := v.ValidateQuizQuestion(q)
		require.False(t, result.Valid)
	})
}

// TestValidateExamQuestion covers the exam question rules.
func TestValidateExamQuestion(t *testing.T) {
	v := NewValidator()

	good := ExamQuestion{
		QuestionText: "Solve the simultaneous equations 2x + y = 7 and x - y = 2. Show all working.",
		Marks:        5,
		AnswerText:   "Adding the equations gives 3x = 9 so x = 3, then y = 1. Award marks for method and answer.",
	}
	require.True(t, v.ValidateExamQuestion(good).Valid)

	t.Run("marks out of range", func(t *testing.T) {
		q := good
		q.Marks = 25
		require.False(t, v.ValidateExamQuestion(q).Valid)
	})

	t.Run("short marking scheme", func(t *testing.T) {
		q := good
		q.AnswerText = "x = 3"
		require.False(t, v.ValidateExamQuestion(q).Valid)
	})
}

// TestValidateExamPaper covers paper level checks.
func TestValidateExamPaper(t *testing.T) {
	v := NewValidator()

	question := ExamQuestion{
		QuestionText: "Explain how the gradient of a line is calculated from two points.",
		Marks:        5,
		AnswerText:   "Gradient is the change in y divided by the change in x between the points.",
	}

	t.Run("empty paper is critical", func(t *testing.T) {
		result := v.ValidateExamPaper(ExamPaper{TotalMarks: 20})
		require.False(t, result.Valid)
		require.Equal(t, 0.0, result.Score)
	})

	t.Run("consistent paper passes", func(t *testing.T) {
		paper := ExamPaper{
			TotalMarks: 10,
			Questions:  []ExamQuestion{question, question},
		}
		result := v.ValidateExamPaper(paper)
		require.True(t, result.Valid)
		require.Equal(t, 1.0, result.Score)
	})

	t.Run("marks mismatch rejected", func(t *testing.T) {
		paper := ExamPaper{
			TotalMarks: 50,
			Questions:  []ExamQuestion{question, question},
		}
		result := v.ValidateExamPaper(paper)
		require.False(t, result.Valid)
	})
}
