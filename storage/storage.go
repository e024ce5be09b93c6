//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

// Package storage persists generated quizzes and their questions.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studyforge/quizgen/generator"
)

// ErrQuizNotFound is returned when a quiz identifier is unknown.
var ErrQuizNotFound = fmt.Errorf("quiz not found")

// QuizRecord is one stored quiz.
type QuizRecord struct {
	ID              string    `json:"id"`
	TopicID         string    `json:"topic_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	QuizType        string    `json:"quiz_type"`
	DifficultyLevel int       `json:"difficulty_level"`
	IsPublished     bool      `json:"is_published"`
	CreatedAt       time.Time `json:"created_at"`
}

// QuestionRecord is one stored question.
type QuestionRecord struct {
	ID              string            `json:"id"`
	QuizID          string            `json:"quiz_id"`
	QuestionText    string            `json:"question_text"`
	QuestionType    string            `json:"question_type"`
	Options         map[string]string `json:"options"`
	CorrectAnswer   string            `json:"correct_answer"`
	Explanation     string            `json:"explanation"`
	Points          int               `json:"points"`
	DisplayOrder    int               `json:"display_order"`
	GenerationModel string            `json:"generation_model"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Store persists quizzes. Implementations must store a quiz and its
// questions atomically.
type Store interface {
	// SaveQuiz stores a quiz together with its questions.
	SaveQuiz(ctx context.Context, quiz *QuizRecord, questions []QuestionRecord) error
	// GetQuiz returns a quiz and its questions in display order.
	GetQuiz(ctx context.Context, id string) (*QuizRecord, []QuestionRecord, error)
	// ListQuizzes returns the quizzes for a topic, newest first.
	ListQuizzes(ctx context.Context, topicID string) ([]QuizRecord, error)
}

// NewQuizRecords assembles the storable records for a generated question
// set. Display order follows the slice order.
func NewQuizRecords(
	topic generator.Topic, questions []generator.QuizQuestion, generationModel string,
) (*QuizRecord, []QuestionRecord) {
	now := time.Now().UTC()
	quiz := &QuizRecord{
		ID:              uuid.NewString(),
		TopicID:         topic.ID,
		Title:           fmt.Sprintf("%s - Generated Quiz", topic.Title),
		Description:     fmt.Sprintf("Auto-generated quiz for %s", topic.Title),
		QuizType:        "practice",
		DifficultyLevel: topic.DifficultyLevel,
		IsPublished:     true,
		CreatedAt:       now,
	}

	records := make([]QuestionRecord, 0, len(questions))
	for i, q := range questions {
		records = append(records, QuestionRecord{
			ID:              uuid.NewString(),
			QuizID:          quiz.ID,
			QuestionText:    q.QuestionText,
			QuestionType:    q.QuestionType,
			Options:         q.Options,
			CorrectAnswer:   q.CorrectAnswer,
			Explanation:     q.Explanation,
			Points:          q.Points,
			DisplayOrder:    i + 1,
			GenerationModel: generationModel,
			CreatedAt:       now,
		})
	}
	return quiz, records
}
