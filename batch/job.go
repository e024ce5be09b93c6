//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

// Package batch runs quiz generation for many topics concurrently, tracking
// each run as a job in a pluggable store.
package batch

import (
	"time"

	"github.com/google/uuid"

	"github.com/studyforge/quizgen/generator"
)

// JobStatus is the lifecycle state of a generation job.
type JobStatus string

const (
	// JobPending means the job is queued but not started.
	JobPending JobStatus = "pending"
	// JobRunning means generation is in flight.
	JobRunning JobStatus = "running"
	// JobCompleted means generation finished and produced questions.
	JobCompleted JobStatus = "completed"
	// JobFailed means generation gave up.
	JobFailed JobStatus = "failed"
)

// Job tracks one topic generation run.
type Job struct {
	// ID is the job identifier.
	ID string `json:"id"`
	// Topic is the requested topic.
	Topic generator.Topic `json:"topic"`
	// QuestionCount is the number of questions requested.
	QuestionCount int `json:"question_count"`
	// Status is the current lifecycle state.
	Status JobStatus `json:"status"`
	// QuestionsGenerated is how many questions the run produced.
	QuestionsGenerated int `json:"questions_generated"`
	// Error carries the failure reason for JobFailed.
	Error string `json:"error,omitempty"`
	// CreatedAt is when the job was submitted.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the job last changed state.
	UpdatedAt time.Time `json:"updated_at"`
}

// newJob creates a pending job with a fresh identifier.
func newJob(topic generator.Topic, count int) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:            uuid.NewString(),
		Topic:         topic,
		QuestionCount: count,
		Status:        JobPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
