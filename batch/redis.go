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
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisJobKeyPrefix = "quizgen:job:"
	redisJobIndexKey  = "quizgen:jobs"
	// redisJobTTL bounds how long finished jobs stay queryable.
	redisJobTTL = 7 * 24 * time.Hour
)

// RedisStore persists jobs in Redis so job status survives process
// restarts and is visible across instances.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a RedisStore on an existing client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// Put inserts or replaces a job.
func (s *RedisStore) Put(ctx context.Context, job *Job) error {
	if job == nil || job.ID == "" {
		return fmt.Errorf("job must have an id")
	}
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshaling job %s: %w", job.ID, err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisJobKeyPrefix+job.ID, data, redisJobTTL)
	pipe.SAdd(ctx, redisJobIndexKey, job.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storing job %s: %w", job.ID, err)
	}
	return nil
}

// Get returns the job with the given identifier.
func (s *RedisStore) Get(ctx context.Context, id string) (*Job, error) {
	data, err := s.client.Get(ctx, redisJobKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading job %s: %w", id, err)
	}
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decoding job %s: %w", id, err)
	}
	return &job, nil
}

// List returns all known jobs, newest first. Identifiers whose records
// have expired are dropped from the index as they are encountered.
func (s *RedisStore) List(ctx context.Context) ([]*Job, error) {
	ids, err := s.client.SMembers(ctx, redisJobIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	out := make([]*Job, 0, len(ids))
	for _, id := range ids {
		job, err := s.Get(ctx, id)
		if err != nil {
			s.client.SRem(ctx, redisJobIndexKey, id)
			continue
		}
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
