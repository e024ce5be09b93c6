//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

// Package memory provides an in-process quiz store for tests and local runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/studyforge/quizgen/storage"
)

// Store is an in-memory storage.Store.
type Store struct {
	mu        sync.RWMutex
	quizzes   map[string]storage.QuizRecord
	questions map[string][]storage.QuestionRecord
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		quizzes:   make(map[string]storage.QuizRecord),
		questions: make(map[string][]storage.QuestionRecord),
	}
}

// SaveQuiz stores a quiz together with its questions.
func (s *Store) SaveQuiz(
	_ context.Context, quiz *storage.QuizRecord, questions []storage.QuestionRecord,
) error {
	if quiz == nil || quiz.ID == "" {
		return fmt.Errorf("quiz must have an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = *quiz
	s.questions[quiz.ID] = append([]storage.QuestionRecord(nil), questions...)
	return nil
}

// GetQuiz returns a quiz and its questions in display order.
func (s *Store) GetQuiz(
	_ context.Context, id string,
) (*storage.QuizRecord, []storage.QuestionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", storage.ErrQuizNotFound, id)
	}
	questions := append([]storage.QuestionRecord(nil), s.questions[id]...)
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].DisplayOrder < questions[j].DisplayOrder
	})
	return &quiz, questions, nil
}

// ListQuizzes returns the quizzes for a topic, newest first.
func (s *Store) ListQuizzes(
	_ context.Context, topicID string,
) ([]storage.QuizRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []storage.QuizRecord
	for _, quiz := range s.quizzes {
		if quiz.TopicID == topicID {
			out = append(out, quiz)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
