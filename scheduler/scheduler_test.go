//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studyforge/quizgen/generator"
)

// fakeSource returns a fixed topic list.
type fakeSource struct {
	topics []generator.Topic
	err    error
}

func (f *fakeSource) Topics(context.Context) ([]generator.Topic, error) {
	return f.topics, f.err
}

// fakeSubmitter records submissions and can fail selected topics.
type fakeSubmitter struct {
	mu        sync.Mutex
	submitted []generator.Topic
	counts    []int
	fail      map[string]bool
	block     chan struct{}
}

func (f *fakeSubmitter) Submit(
	_ context.Context, topic generator.Topic, count int,
) (string, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[topic.Title] {
		return "", fmt.Errorf("queue full")
	}
	f.submitted = append(f.submitted, topic)
	f.counts = append(f.counts, count)
	return fmt.Sprintf("job-%d", len(f.submitted)), nil
}

func testTopics() []generator.Topic {
	return []generator.Topic{
		{ID: "t1", Title: "Linear Equations", Subject: "Mathematics"},
		{ID: "t2", Title: "Forces and Motion", Subject: "Physics"},
		{ID: "t3", Title: "Quadratic Equations", Subject: "Mathematics"},
	}
}

// TestRunOnce_AllSubjects verifies a manual run submits one job per topic
// with the configured question count.
func TestRunOnce_AllSubjects(t *testing.T) {
	sub := &fakeSubmitter{}
	s, err := New(&fakeSource{topics: testTopics()}, sub, WithQuestionsPerTopic(7))
	require.NoError(t, err)

	summary := s.RunOnce(context.Background(), "")
	require.Equal(t, RunCompleted, summary.Status)
	require.True(t, summary.Manual)
	require.Equal(t, 3, summary.TopicsSubmitted)
	require.Len(t, summary.JobIDs, 3)
	require.Equal(t, []int{7, 7, 7}, sub.counts)
	require.Same(t, summary, s.LastSummary())
}

// TestRunOnce_SubjectFilter verifies a run focuses only the given subject.
func TestRunOnce_SubjectFilter(t *testing.T) {
	sub := &fakeSubmitter{}
	s, err := New(&fakeSource{topics: testTopics()}, sub)
	require.NoError(t, err)

	summary := s.RunOnce(context.Background(), "Mathematics")
	require.Equal(t, RunCompleted, summary.Status)
	require.Equal(t, 2, summary.TopicsSubmitted)
	for _, topic := range sub.submitted {
		require.Equal(t, "Mathematics", topic.Subject)
	}
}

// TestRunOnce_Bounds verifies the per-run topic bound.
func TestRunOnce_Bounds(t *testing.T) {
	sub := &fakeSubmitter{}
	s, err := New(&fakeSource{topics: testTopics()}, sub, WithMaxTopicsPerRun(2))
	require.NoError(t, err)

	summary := s.RunOnce(context.Background(), "")
	require.Equal(t, 2, summary.TopicsSubmitted)
}

// TestRunOnce_PartialFailure verifies failed submissions are recorded but do
// not stop the run.
func TestRunOnce_PartialFailure(t *testing.T) {
	sub := &fakeSubmitter{fail: map[string]bool{"Forces and Motion": true}}
	s, err := New(&fakeSource{topics: testTopics()}, sub)
	require.NoError(t, err)

	summary := s.RunOnce(context.Background(), "")
	require.Equal(t, RunCompleted, summary.Status)
	require.Equal(t, 2, summary.TopicsSubmitted)
	require.Len(t, summary.Errors, 1)
	require.Contains(t, summary.Errors[0], "Forces and Motion")
}

// TestRunOnce_SourceFailure verifies a run fails when topics cannot be
// listed.
func TestRunOnce_SourceFailure(t *testing.T) {
	s, err := New(&fakeSource{err: fmt.Errorf("database down")}, &fakeSubmitter{})
	require.NoError(t, err)

	summary := s.RunOnce(context.Background(), "")
	require.Equal(t, RunFailed, summary.Status)
	require.Len(t, summary.Errors, 1)
}

// TestRunOnce_SkipsOverlap verifies a run is skipped while another is in
// flight.
func TestRunOnce_SkipsOverlap(t *testing.T) {
	block := make(chan struct{})
	sub := &fakeSubmitter{block: block}
	s, err := New(&fakeSource{topics: testTopics()}, sub)
	require.NoError(t, err)

	done := make(chan *RunSummary, 1)
	go func() { done <- s.RunOnce(context.Background(), "") }()

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.running
	}, time.Second, time.Millisecond)

	skipped := s.RunOnce(context.Background(), "")
	require.Equal(t, RunSkipped, skipped.Status)

	close(block)
	first := <-done
	require.Equal(t, RunCompleted, first.Status)
}

// TestNextSubject_Rotation verifies scheduled runs walk the subject
// rotation in order and wrap around.
func TestNextSubject_Rotation(t *testing.T) {
	s, err := New(&fakeSource{}, &fakeSubmitter{},
		WithSubjects([]string{"Mathematics", "Physics"}))
	require.NoError(t, err)

	require.Equal(t, "Mathematics", s.nextSubject())
	require.Equal(t, "Physics", s.nextSubject())
	require.Equal(t, "Mathematics", s.nextSubject())
}

// TestStart_RunsOnInterval verifies the scheduled loop submits jobs and
// stops on context cancellation.
func TestStart_RunsOnInterval(t *testing.T) {
	sub := &fakeSubmitter{}
	s, err := New(&fakeSource{topics: testTopics()}, sub,
		WithInterval(5*time.Millisecond), WithSubjects([]string{"Physics"}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		sub.mu.Lock()
		defer sub.mu.Unlock()
		return len(sub.submitted) >= 1
	}, time.Second, time.Millisecond)

	cancel()
	<-done
	require.Equal(t, "Physics", sub.submitted[0].Subject)
}

// TestNew_RequiresCollaborators verifies nil collaborators are rejected.
func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(nil, &fakeSubmitter{})
	require.Error(t, err)
	_, err = New(&fakeSource{}, nil)
	require.Error(t, err)
}
