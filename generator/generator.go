//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

// Package generator produces IGCSE quiz questions and exam papers from a
// text-generation backend. Completions come back as free-form text; the
// repair engine turns them into parseable JSON before decoding, and a
// quality pass filters questions that do not meet the content rules.
package generator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/studyforge/quizgen/log"
	"github.com/studyforge/quizgen/model"
	"github.com/studyforge/quizgen/repair"
	"github.com/studyforge/quizgen/telemetry/metric"
)

// Topic describes the syllabus topic questions are generated for.
type Topic struct {
	// ID is the topic identifier.
	ID string `json:"id"`
	// Title is the topic title, for example "Quadratic Equations".
	Title string `json:"title"`
	// Subject is the subject name, for example "Mathematics".
	Subject string `json:"subject"`
	// DifficultyLevel is the syllabus difficulty on a 1 to 5 scale.
	DifficultyLevel int `json:"difficulty_level"`
	// SyllabusCode is the syllabus reference code.
	SyllabusCode string `json:"syllabus_code"`
	// Description summarizes the topic.
	Description string `json:"description"`
	// LearningObjectives lists what students should master.
	LearningObjectives []string `json:"learning_objectives"`
}

// QuizQuestion is one generated multiple choice question.
type QuizQuestion struct {
	QuestionText    string            `json:"question_text"`
	QuestionType    string            `json:"question_type"`
	Options         map[string]string `json:"options"`
	CorrectAnswer   string            `json:"correct_answer"`
	Explanation     string            `json:"explanation"`
	DifficultyLevel int               `json:"difficulty_level"`
	Points          int               `json:"points"`
	Tags            []string          `json:"tags"`
}

// ExamQuestion is one generated exam paper question.
type ExamQuestion struct {
	QuestionText  string `json:"question_text"`
	Marks         int    `json:"marks"`
	AnswerText    string `json:"answer_text"`
	Explanation   string `json:"explanation"`
	QuestionOrder int    `json:"question_order"`
	QuestionType  string `json:"question_type"`
}

// ExamPaper is a generated exam paper.
type ExamPaper struct {
	Title           string         `json:"title"`
	Instructions    string         `json:"instructions"`
	DurationMinutes int            `json:"duration_minutes"`
	TotalMarks      int            `json:"total_marks"`
	Questions       []ExamQuestion `json:"questions"`
}

const (
	// defaultBatchSize bounds questions per backend call: small batches
	// keep completions short enough to survive token limits.
	defaultBatchSize = 5
	// defaultMaxAttempts bounds backend calls per batch or paper.
	defaultMaxAttempts = 3
	defaultTemperature = 0.7
	defaultMaxTokens   = 4096
	// marksTolerance is the accepted relative deviation between generated
	// and requested total marks.
	marksTolerance = 0.2
)

// options contains configuration options for a Generator.
type options struct {
	BatchSize   int
	MaxAttempts int
	Temperature float64
	MaxTokens   int
}

// Option configures a Generator.
type Option func(*options)

// WithBatchSize sets how many quiz questions one backend call requests.
func WithBatchSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.BatchSize = n
		}
	}
}

// WithMaxAttempts sets how many backend calls a batch or an exam paper may
// consume before giving up.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.MaxAttempts = n
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *options) { o.Temperature = t }
}

// WithMaxTokens bounds the completion length per call.
func WithMaxTokens(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.MaxTokens = n
		}
	}
}

// Generator produces quiz questions and exam papers.
type Generator struct {
	model model.Model
	opts  options
}

// New creates a Generator on top of a text-generation backend.
func New(m model.Model, opts ...Option) *Generator {
	o := options{
		BatchSize:   defaultBatchSize,
		MaxAttempts: defaultMaxAttempts,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Generator{model: m, opts: o}
}

// quizPayload mirrors the JSON envelope the quiz prompt asks for.
type quizPayload struct {
	Questions []QuizQuestion `json:"questions"`
}

// QuizQuestions generates count multiple choice questions for the topic.
// Questions are requested in small batches; a batch whose completion cannot
// be recovered into the expected shape is retried, and questions that fail
// content validation are skipped rather than failing the whole run. The
// returned slice may be shorter than count when the backend keeps producing
// unusable output.
func (g *Generator) QuizQuestions(
	ctx context.Context, topic Topic, count int,
) (questions []QuizQuestion, err error) {
	defer func() { metric.RecordGeneration(ctx, "quiz", err) }()
	if count <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", count)
	}
	log.Infof("generating %d quiz questions for topic %q", count, topic.Title)

	validator := NewValidator()
	var all []QuizQuestion
	remaining := count
	batch := 1
	for remaining > 0 {
		size := g.opts.BatchSize
		if remaining < size {
			size = remaining
		}

		payload, err := g.generateQuizBatch(ctx, topic, size)
		if err != nil {
			if len(all) > 0 {
				log.Warnf("batch %d failed, returning %d questions: %v", batch, len(all), err)
				return all, nil
			}
			return nil, err
		}

		accepted := 0
		for i := range payload.Questions {
			q := payload.Questions[i]
			applyQuizDefaults(&q, topic)
			if v := validator.ValidateQuizQuestion(q); !v.Valid {
				log.Warnf("batch %d question %d rejected: %s", batch, i+1, v.Summary())
				continue
			}
			all = append(all, q)
			accepted++
		}
		if accepted == 0 {
			// A batch of only rejects will not converge; stop here.
			log.Warnf("batch %d produced no usable questions", batch)
			break
		}
		remaining -= accepted
		batch++
	}

	log.Infof("generated %d quiz questions for topic %q", len(all), topic.Title)
	return all, nil
}

// generateQuizBatch performs one batch request with recovery and bounded
// retries. Each retry shrinks the requested batch, since a smaller
// completion is less likely to be cut off or malformed again.
func (g *Generator) generateQuizBatch(
	ctx context.Context, topic Topic, size int,
) (*quizPayload, error) {
	hint := &repair.ShapeHint{Kind: repair.KindObject, RequiredKeys: []string{"questions"}}

	var lastErr error
	for attempt := 1; attempt <= g.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rsp, err := g.model.GenerateContent(ctx, g.request(quizPrompt(topic, size)))
		if err != nil {
			lastErr = fmt.Errorf("backend call failed: %w", err)
			log.Warnf("quiz batch attempt %d/%d: %v", attempt, g.opts.MaxAttempts, lastErr)
			size = reducedScope(size)
			continue
		}

		res := repair.Recover(repair.Completion{
			Text:     rsp.Content,
			Provider: rsp.Model,
			Hint:     hint,
		})
		metric.RecordRecovery(ctx, res, rsp.Model)
		switch {
		case res.Status == repair.StatusFallback:
			lastErr = fmt.Errorf("completion not recoverable: %s", res.JSON)
			log.Warnf("quiz batch attempt %d/%d: completion unrecoverable, reducing scope to %d",
				attempt, g.opts.MaxAttempts, reducedScope(size))
			size = reducedScope(size)
			continue
		case len(res.MissingKeys) > 0 || res.KindMismatch:
			lastErr = fmt.Errorf("completion shape unexpected: missing=%v", res.MissingKeys)
			log.Warnf("quiz batch attempt %d/%d: %v", attempt, g.opts.MaxAttempts, lastErr)
			size = reducedScope(size)
			continue
		}

		var payload quizPayload
		if err := json.Unmarshal([]byte(res.JSON), &payload); err != nil {
			lastErr = fmt.Errorf("decoding questions: %w", err)
			continue
		}
		if len(payload.Questions) == 0 {
			lastErr = fmt.Errorf("completion carried no questions")
			continue
		}
		return &payload, nil
	}
	return nil, fmt.Errorf("quiz batch failed after %d attempts: %w", g.opts.MaxAttempts, lastErr)
}

// reducedScope halves a batch size, never below one question.
func reducedScope(size int) int {
	if size <= 1 {
		return 1
	}
	return size / 2
}

// Paper generates an exam paper worth totalMarks. Papers whose generated
// marks deviate more than the tolerance from the request are regenerated.
func (g *Generator) Paper(
	ctx context.Context, topic Topic, totalMarks int,
) (paper *ExamPaper, err error) {
	defer func() { metric.RecordGeneration(ctx, "exam", err) }()
	if totalMarks <= 0 {
		return nil, fmt.Errorf("total marks must be positive, got %d", totalMarks)
	}
	log.Infof("generating %d-mark exam paper for topic %q", totalMarks, topic.Title)

	prompt := examPrompt(topic, totalMarks)
	hint := &repair.ShapeHint{Kind: repair.KindObject, RequiredKeys: []string{"questions"}}

	var lastErr error
	for attempt := 1; attempt <= g.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rsp, err := g.model.GenerateContent(ctx, g.request(prompt))
		if err != nil {
			lastErr = fmt.Errorf("backend call failed: %w", err)
			log.Warnf("exam attempt %d/%d: %v", attempt, g.opts.MaxAttempts, lastErr)
			continue
		}

		res := repair.Recover(repair.Completion{
			Text:     rsp.Content,
			Provider: rsp.Model,
			Hint:     hint,
		})
		metric.RecordRecovery(ctx, res, rsp.Model)
		if res.Status == repair.StatusFallback || res.KindMismatch || len(res.MissingKeys) > 0 {
			lastErr = fmt.Errorf("completion not recoverable into a paper")
			log.Warnf("exam attempt %d/%d: completion unrecoverable", attempt, g.opts.MaxAttempts)
			continue
		}

		var paper ExamPaper
		if err := json.Unmarshal([]byte(res.JSON), &paper); err != nil {
			lastErr = fmt.Errorf("decoding paper: %w", err)
			continue
		}

		paper.Questions = usableExamQuestions(paper.Questions)
		if len(paper.Questions) == 0 {
			lastErr = fmt.Errorf("paper carried no usable questions")
			continue
		}

		got := 0
		for _, q := range paper.Questions {
			got += q.Marks
		}
		if !withinTolerance(got, totalMarks) {
			lastErr = fmt.Errorf("marks off target: got %d, want %d", got, totalMarks)
			log.Warnf("exam attempt %d/%d: %v", attempt, g.opts.MaxAttempts, lastErr)
			continue
		}

		applyPaperDefaults(&paper, topic, got)
		log.Infof("generated exam paper %q: %d questions, %d marks",
			paper.Title, len(paper.Questions), paper.TotalMarks)
		return &paper, nil
	}
	return nil, fmt.Errorf("exam paper failed after %d attempts: %w", g.opts.MaxAttempts, lastErr)
}

// request assembles the backend request for one prompt.
func (g *Generator) request(prompt string) *model.Request {
	return &model.Request{
		Messages: []model.Message{
			model.NewSystemMessage("You are an expert IGCSE educator. Respond with valid JSON only."),
			model.NewUserMessage(prompt),
		},
		Temperature: model.Float64Ptr(g.opts.Temperature),
		MaxTokens:   model.IntPtr(g.opts.MaxTokens),
	}
}

// applyQuizDefaults fills fields the backend commonly omits.
func applyQuizDefaults(q *QuizQuestion, topic Topic) {
	if q.QuestionType == "" {
		q.QuestionType = "multiple_choice"
	}
	if q.DifficultyLevel == 0 {
		q.DifficultyLevel = topic.DifficultyLevel
	}
	if q.Points == 0 {
		q.Points = 1
	}
}

// usableExamQuestions keeps questions that carry the required fields and
// renumbers them in order.
func usableExamQuestions(questions []ExamQuestion) []ExamQuestion {
	out := make([]ExamQuestion, 0, len(questions))
	for _, q := range questions {
		if q.QuestionText == "" || q.AnswerText == "" || q.Marks <= 0 {
			continue
		}
		if q.QuestionType == "" {
			q.QuestionType = "structured"
		}
		q.QuestionOrder = len(out) + 1
		out = append(out, q)
	}
	return out
}

// applyPaperDefaults fills paper-level fields from the questions that
// actually survived.
func applyPaperDefaults(paper *ExamPaper, topic Topic, actualMarks int) {
	paper.TotalMarks = actualMarks
	if paper.Title == "" {
		paper.Title = fmt.Sprintf("IGCSE %s: %s", topic.Subject, topic.Title)
	}
	if paper.Instructions == "" {
		paper.Instructions = "Answer ALL questions. Show all working clearly."
	}
	if paper.DurationMinutes == 0 {
		if actualMarks <= 20 {
			paper.DurationMinutes = 60
		} else {
			paper.DurationMinutes = 90
		}
	}
}

// withinTolerance reports whether got is within the accepted deviation of
// want.
func withinTolerance(got, want int) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return float64(diff) <= float64(want)*marksTolerance
}
