//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

// Package scheduler drives periodic generation runs. Each run picks the next
// subject in the configured rotation, submits one batch job per matching
// topic and records a run summary. Runs can also be triggered manually.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/studyforge/quizgen/generator"
	"github.com/studyforge/quizgen/log"
)

const (
	defaultInterval          = 24 * time.Hour
	defaultQuestionsPerTopic = 10
	defaultMaxTopicsPerRun   = 20
)

// TopicSource lists the topics a run may generate for.
type TopicSource interface {
	Topics(ctx context.Context) ([]generator.Topic, error)
}

// Submitter queues generation jobs. *batch.Runner satisfies it.
type Submitter interface {
	Submit(ctx context.Context, topic generator.Topic, count int) (string, error)
}

// RunStatus classifies the outcome of one run.
type RunStatus string

const (
	// RunCompleted means the run submitted its jobs.
	RunCompleted RunStatus = "completed"
	// RunSkipped means the run did not start because one was in flight.
	RunSkipped RunStatus = "skipped"
	// RunFailed means the run could not submit any job.
	RunFailed RunStatus = "failed"
)

// RunSummary describes one scheduled or manual run.
type RunSummary struct {
	Status          RunStatus `json:"status"`
	Manual          bool      `json:"manual"`
	Subject         string    `json:"subject,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	TopicsSubmitted int       `json:"topics_submitted"`
	JobIDs          []string  `json:"job_ids,omitempty"`
	Errors          []string  `json:"errors,omitempty"`
}

// options contains configuration options for a Scheduler.
type options struct {
	Interval          time.Duration
	QuestionsPerTopic int
	MaxTopicsPerRun   int
	Subjects          []string
}

// Option configures a Scheduler.
type Option func(*options)

// WithInterval sets the time between scheduled runs.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.Interval = d
		}
	}
}

// WithQuestionsPerTopic sets how many questions each submitted job requests.
func WithQuestionsPerTopic(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.QuestionsPerTopic = n
		}
	}
}

// WithMaxTopicsPerRun bounds how many topics one run submits.
func WithMaxTopicsPerRun(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.MaxTopicsPerRun = n
		}
	}
}

// WithSubjects installs a subject rotation: each scheduled run focuses the
// next subject in order. Without it, runs take topics of every subject.
func WithSubjects(subjects []string) Option {
	return func(o *options) { o.Subjects = subjects }
}

// Scheduler submits generation jobs on a fixed interval.
type Scheduler struct {
	source    TopicSource
	submitter Submitter
	opts      options

	mu           sync.Mutex
	running      bool
	subjectIndex int
	lastRun      time.Time
	lastSummary  *RunSummary
}

// New creates a Scheduler. Start must be called for scheduled runs; RunOnce
// works without it.
func New(source TopicSource, submitter Submitter, opts ...Option) (*Scheduler, error) {
	if source == nil || submitter == nil {
		return nil, fmt.Errorf("topic source and submitter are required")
	}
	o := options{
		Interval:          defaultInterval,
		QuestionsPerTopic: defaultQuestionsPerTopic,
		MaxTopicsPerRun:   defaultMaxTopicsPerRun,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Scheduler{source: source, submitter: submitter, opts: o}, nil
}

// Start runs scheduled generation until the context is cancelled. It blocks;
// callers run it on its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	log.Infof("generation scheduler started, interval %s", s.opts.Interval)
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Infof("generation scheduler stopped")
			return
		case <-ticker.C:
			summary := s.run(ctx, s.nextSubject(), false)
			log.Infof("scheduled run %s: %d topics submitted, %d errors",
				summary.Status, summary.TopicsSubmitted, len(summary.Errors))
		}
	}
}

// RunOnce triggers a manual run outside the schedule. An empty subject takes
// topics of every subject, up to the per-run bound.
func (s *Scheduler) RunOnce(ctx context.Context, subject string) *RunSummary {
	return s.run(ctx, subject, true)
}

// LastSummary returns the most recent run's summary, or nil before the
// first run.
func (s *Scheduler) LastSummary() *RunSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSummary
}

// nextSubject advances the rotation and returns the subject the coming run
// focuses on, or empty when no rotation is configured.
func (s *Scheduler) nextSubject() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.opts.Subjects) == 0 {
		return ""
	}
	subject := s.opts.Subjects[s.subjectIndex]
	s.subjectIndex = (s.subjectIndex + 1) % len(s.opts.Subjects)
	return subject
}

func (s *Scheduler) run(ctx context.Context, subject string, manual bool) *RunSummary {
	summary := &RunSummary{Manual: manual, Subject: subject, StartedAt: time.Now().UTC()}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		summary.Status = RunSkipped
		summary.FinishedAt = time.Now().UTC()
		log.Warnf("generation run already in flight, skipping this cycle")
		return summary
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		summary.FinishedAt = time.Now().UTC()
		s.mu.Lock()
		s.running = false
		s.lastRun = summary.StartedAt
		s.lastSummary = summary
		s.mu.Unlock()
	}()

	topics, err := s.source.Topics(ctx)
	if err != nil {
		summary.Status = RunFailed
		summary.Errors = append(summary.Errors, fmt.Sprintf("listing topics: %v", err))
		log.Errorf("generation run: listing topics: %v", err)
		return summary
	}

	for _, topic := range topics {
		if subject != "" && topic.Subject != subject {
			continue
		}
		if summary.TopicsSubmitted >= s.opts.MaxTopicsPerRun {
			break
		}
		id, err := s.submitter.Submit(ctx, topic, s.opts.QuestionsPerTopic)
		if err != nil {
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("topic %q: %v", topic.Title, err))
			continue
		}
		summary.JobIDs = append(summary.JobIDs, id)
		summary.TopicsSubmitted++
	}

	if summary.TopicsSubmitted == 0 && len(summary.Errors) > 0 {
		summary.Status = RunFailed
	} else {
		summary.Status = RunCompleted
	}
	return summary
}
