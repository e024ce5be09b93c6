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
	"sort"
	"sync"
)

// ErrJobNotFound is returned when a job identifier is unknown.
var ErrJobNotFound = fmt.Errorf("job not found")

// Store persists job state. Implementations must be safe for concurrent
// use: the runner updates jobs from pool workers while the status server
// reads them.
type Store interface {
	// Put inserts or replaces a job.
	Put(ctx context.Context, job *Job) error
	// Get returns the job with the given identifier, or ErrJobNotFound.
	Get(ctx context.Context, id string) (*Job, error)
	// List returns all known jobs, newest first.
	List(ctx context.Context) ([]*Job, error)
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]*Job)}
}

// Put inserts or replaces a job.
func (s *MemoryStore) Put(_ context.Context, job *Job) error {
	if job == nil || job.ID == "" {
		return fmt.Errorf("job must have an id")
	}
	cp := *job
	s.mu.Lock()
	s.jobs[job.ID] = &cp
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the stored job.
func (s *MemoryStore) Get(_ context.Context, id string) (*Job, error) {
	s.mu.RLock()
	job, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	cp := *job
	return &cp, nil
}

// List returns copies of all jobs, newest first.
func (s *MemoryStore) List(_ context.Context) ([]*Job, error) {
	s.mu.RLock()
	out := make([]*Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		cp := *job
		out = append(out, &cp)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
