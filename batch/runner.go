//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/studyforge/quizgen/generator"
	"github.com/studyforge/quizgen/log"
)

// defaultConcurrency bounds generations in flight. Local backends degrade
// quickly past a handful of parallel completions.
const defaultConcurrency = 3

// QuestionGenerator is the part of the generator the runner needs.
type QuestionGenerator interface {
	QuizQuestions(ctx context.Context, topic generator.Topic, count int) ([]generator.QuizQuestion, error)
}

// CompleteFunc is called after a job finishes generating, before its final
// status is stored. Persisting the questions happens here.
type CompleteFunc func(ctx context.Context, job *Job, questions []generator.QuizQuestion) error

// jobTask carries one job through the worker pool.
type jobTask struct {
	ctx context.Context
	job *Job
	wg  *sync.WaitGroup
}

// Runner executes generation jobs on a bounded worker pool.
type Runner struct {
	gen        QuestionGenerator
	store      Store
	onComplete CompleteFunc
	pool       *ants.PoolWithFunc
	wg         sync.WaitGroup
}

// RunnerOption configures a Runner.
type RunnerOption func(*runnerOptions)

type runnerOptions struct {
	concurrency int
	onComplete  CompleteFunc
}

// WithConcurrency sets how many jobs run in parallel.
func WithConcurrency(n int) RunnerOption {
	return func(o *runnerOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithCompleteFunc installs the hook that persists generated questions.
func WithCompleteFunc(fn CompleteFunc) RunnerOption {
	return func(o *runnerOptions) { o.onComplete = fn }
}

// NewRunner creates a Runner. Close must be called to release the pool.
func NewRunner(gen QuestionGenerator, store Store, opts ...RunnerOption) (*Runner, error) {
	if gen == nil || store == nil {
		return nil, fmt.Errorf("generator and store are required")
	}
	o := runnerOptions{concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Runner{gen: gen, store: store, onComplete: o.onComplete}
	pool, err := ants.NewPoolWithFunc(o.concurrency, func(args any) {
		task, ok := args.(*jobTask)
		if !ok {
			panic("batch runner pool args type error")
		}
		defer task.wg.Done()
		r.execute(task.ctx, task.job)
	})
	if err != nil {
		return nil, fmt.Errorf("create batch runner pool: %w", err)
	}
	r.pool = pool
	return r, nil
}

// Submit queues one generation job and returns its identifier. The job runs
// asynchronously; poll the store or call Wait for completion.
func (r *Runner) Submit(ctx context.Context, topic generator.Topic, count int) (string, error) {
	if count <= 0 {
		return "", fmt.Errorf("question count must be positive, got %d", count)
	}
	job := newJob(topic, count)
	if err := r.store.Put(ctx, job); err != nil {
		return "", fmt.Errorf("storing job: %w", err)
	}

	r.wg.Add(1)
	task := &jobTask{ctx: ctx, job: job, wg: &r.wg}
	if err := r.pool.Invoke(task); err != nil {
		r.wg.Done()
		job.Status = JobFailed
		job.Error = err.Error()
		job.UpdatedAt = time.Now().UTC()
		_ = r.store.Put(ctx, job)
		return "", fmt.Errorf("queueing job %s: %w", job.ID, err)
	}
	log.Infof("job %s submitted: %d questions for topic %q", job.ID, count, topic.Title)
	return job.ID, nil
}

// Wait blocks until every submitted job has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Close waits for in-flight jobs and releases the pool.
func (r *Runner) Close() {
	r.wg.Wait()
	r.pool.Release()
}

// execute runs one job to its terminal state.
func (r *Runner) execute(ctx context.Context, job *Job) {
	job.Status = JobRunning
	job.UpdatedAt = time.Now().UTC()
	if err := r.store.Put(ctx, job); err != nil {
		log.Errorf("job %s: storing running state: %v", job.ID, err)
	}

	questions, err := r.gen.QuizQuestions(ctx, job.Topic, job.QuestionCount)
	if err == nil && r.onComplete != nil {
		err = r.onComplete(ctx, job, questions)
	}

	job.UpdatedAt = time.Now().UTC()
	if err != nil {
		job.Status = JobFailed
		job.Error = err.Error()
		log.Errorf("job %s failed: %v", job.ID, err)
	} else {
		job.Status = JobCompleted
		job.QuestionsGenerated = len(questions)
		log.Infof("job %s completed: %d questions", job.ID, len(questions))
	}
	if err := r.store.Put(ctx, job); err != nil {
		log.Errorf("job %s: storing terminal state: %v", job.ID, err)
	}
}
