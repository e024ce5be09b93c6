//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

// Package postgres stores quizzes in PostgreSQL using pgx connection pools.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studyforge/quizgen/storage"
)

// Config holds PostgreSQL connection configuration.
type Config struct {
	URL      string `yaml:"url"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// Store is a storage.Store backed by PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and verifies the connection.
func New(ctx context.Context, cfg Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = int32(cfg.MinConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewWithPool wraps an existing pool.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

const insertQuizSQL = `
INSERT INTO quizzes (
	id, topic_id, title, description, quiz_type,
	difficulty_level, is_published, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const insertQuestionSQL = `
INSERT INTO quiz_questions (
	id, quiz_id, question_text, question_type, options, correct_answer,
	explanation, points, display_order, generation_model, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// SaveQuiz stores a quiz and its questions in one transaction.
func (s *Store) SaveQuiz(
	ctx context.Context, quiz *storage.QuizRecord, questions []storage.QuestionRecord,
) error {
	if quiz == nil || quiz.ID == "" {
		return fmt.Errorf("quiz must have an id")
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, insertQuizSQL,
		quiz.ID, quiz.TopicID, quiz.Title, quiz.Description, quiz.QuizType,
		quiz.DifficultyLevel, quiz.IsPublished, quiz.CreatedAt,
	); err != nil {
		return fmt.Errorf("inserting quiz %s: %w", quiz.ID, err)
	}

	batch := &pgx.Batch{}
	for _, q := range questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("encoding options for question %s: %w", q.ID, err)
		}
		batch.Queue(insertQuestionSQL,
			q.ID, q.QuizID, q.QuestionText, q.QuestionType, options,
			q.CorrectAnswer, q.Explanation, q.Points, q.DisplayOrder,
			q.GenerationModel, q.CreatedAt,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting questions for quiz %s: %w", quiz.ID, err)
		}
	}
	return tx.Commit(ctx)
}

const selectQuizSQL = `
SELECT id, topic_id, title, description, quiz_type,
	difficulty_level, is_published, created_at
FROM quizzes WHERE id = $1`

const selectQuestionsSQL = `
SELECT id, quiz_id, question_text, question_type, options, correct_answer,
	explanation, points, display_order, generation_model, created_at
FROM quiz_questions WHERE quiz_id = $1 ORDER BY display_order`

// GetQuiz returns a quiz and its questions in display order.
func (s *Store) GetQuiz(
	ctx context.Context, id string,
) (*storage.QuizRecord, []storage.QuestionRecord, error) {
	var quiz storage.QuizRecord
	err := s.pool.QueryRow(ctx, selectQuizSQL, id).Scan(
		&quiz.ID, &quiz.TopicID, &quiz.Title, &quiz.Description, &quiz.QuizType,
		&quiz.DifficultyLevel, &quiz.IsPublished, &quiz.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %s", storage.ErrQuizNotFound, id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading quiz %s: %w", id, err)
	}

	rows, err := s.pool.Query(ctx, selectQuestionsSQL, id)
	if err != nil {
		return nil, nil, fmt.Errorf("loading questions for quiz %s: %w", id, err)
	}
	defer rows.Close()

	var questions []storage.QuestionRecord
	for rows.Next() {
		var q storage.QuestionRecord
		var options []byte
		if err := rows.Scan(
			&q.ID, &q.QuizID, &q.QuestionText, &q.QuestionType, &options,
			&q.CorrectAnswer, &q.Explanation, &q.Points, &q.DisplayOrder,
			&q.GenerationModel, &q.CreatedAt,
		); err != nil {
			return nil, nil, fmt.Errorf("scanning question: %w", err)
		}
		if len(options) > 0 {
			if err := json.Unmarshal(options, &q.Options); err != nil {
				return nil, nil, fmt.Errorf("decoding options for question %s: %w", q.ID, err)
			}
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating questions: %w", err)
	}
	return &quiz, questions, nil
}

const listQuizzesSQL = `
SELECT id, topic_id, title, description, quiz_type,
	difficulty_level, is_published, created_at
FROM quizzes WHERE topic_id = $1 ORDER BY created_at DESC`

// ListQuizzes returns the quizzes for a topic, newest first.
func (s *Store) ListQuizzes(
	ctx context.Context, topicID string,
) ([]storage.QuizRecord, error) {
	rows, err := s.pool.Query(ctx, listQuizzesSQL, topicID)
	if err != nil {
		return nil, fmt.Errorf("listing quizzes for topic %s: %w", topicID, err)
	}
	defer rows.Close()

	var out []storage.QuizRecord
	for rows.Next() {
		var quiz storage.QuizRecord
		if err := rows.Scan(
			&quiz.ID, &quiz.TopicID, &quiz.Title, &quiz.Description, &quiz.QuizType,
			&quiz.DifficultyLevel, &quiz.IsPublished, &quiz.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning quiz: %w", err)
		}
		out = append(out, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quizzes: %w", err)
	}
	return out, nil
}
