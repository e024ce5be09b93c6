//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studyforge/quizgen/generator"
	"github.com/studyforge/quizgen/storage"
)

func sampleRecords(t *testing.T) (*storage.QuizRecord, []storage.QuestionRecord) {
	t.Helper()
	topic := generator.Topic{
		ID:              "topic-1",
		Title:           "Linear Equations",
		Subject:         "Mathematics",
		DifficultyLevel: 3,
	}
	questions := []generator.QuizQuestion{
		{
			QuestionText:  "What is x when 2x = 6?",
			QuestionType:  "multiple_choice",
			Options:       map[string]string{"A": "3", "B": "4", "C": "5", "D": "6"},
			CorrectAnswer: "A",
			Explanation:   "Dividing both sides by two gives three.",
			Points:        1,
		},
		{
			QuestionText:  "What is x when 3x = 9?",
			QuestionType:  "multiple_choice",
			Options:       map[string]string{"A": "2", "B": "3", "C": "4", "D": "5"},
			CorrectAnswer: "B",
			Explanation:   "Dividing both sides by three gives three.",
			Points:        1,
		},
	}
	return storage.NewQuizRecords(topic, questions, "qwen3:8b")
}

// TestNewQuizRecords verifies record assembly from generated questions.
func TestNewQuizRecords(t *testing.T) {
	quiz, questions := sampleRecords(t)

	require.NotEmpty(t, quiz.ID)
	require.Equal(t, "topic-1", quiz.TopicID)
	require.Equal(t, "Linear Equations - Generated Quiz", quiz.Title)
	require.Equal(t, "practice", quiz.QuizType)
	require.True(t, quiz.IsPublished)

	require.Len(t, questions, 2)
	for i, q := range questions {
		require.Equal(t, quiz.ID, q.QuizID)
		require.Equal(t, i+1, q.DisplayOrder)
		require.Equal(t, "qwen3:8b", q.GenerationModel)
		require.NotEmpty(t, q.ID)
	}
}

// TestStore_SaveGetList covers the store contract.
func TestStore_SaveGetList(t *testing.T) {
	ctx := context.Background()
	store := New()

	quiz, questions := sampleRecords(t)
	require.NoError(t, store.SaveQuiz(ctx, quiz, questions))

	gotQuiz, gotQuestions, err := store.GetQuiz(ctx, quiz.ID)
	require.NoError(t, err)
	require.Equal(t, quiz.Title, gotQuiz.Title)
	require.Len(t, gotQuestions, 2)
	require.Equal(t, 1, gotQuestions[0].DisplayOrder)
	require.Equal(t, 2, gotQuestions[1].DisplayOrder)

	_, _, err = store.GetQuiz(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrQuizNotFound)

	older, olderQuestions := sampleRecords(t)
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, store.SaveQuiz(ctx, older, olderQuestions))

	quizzes, err := store.ListQuizzes(ctx, "topic-1")
	require.NoError(t, err)
	require.Len(t, quizzes, 2)
	require.Equal(t, quiz.ID, quizzes[0].ID)

	quizzes, err = store.ListQuizzes(ctx, "unknown-topic")
	require.NoError(t, err)
	require.Empty(t, quizzes)
}
