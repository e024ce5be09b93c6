//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

// Package server exposes an HTTP API for submitting generation jobs and
// inspecting their progress and the stored quizzes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/studyforge/quizgen/batch"
	"github.com/studyforge/quizgen/generator"
	"github.com/studyforge/quizgen/log"
	"github.com/studyforge/quizgen/storage"
)

// Submitter queues generation jobs. *batch.Runner satisfies it.
type Submitter interface {
	Submit(ctx context.Context, topic generator.Topic, count int) (string, error)
}

// Server routes job and quiz requests onto the batch runner and stores.
type Server struct {
	router    *mux.Router
	submitter Submitter
	jobs      batch.Store
	quizzes   storage.Store
}

// Option configures the Server instance.
type Option func(*Server)

// WithQuizStore enables the quiz read endpoints over the given store.
// Without it those endpoints answer 404.
func WithQuizStore(store storage.Store) Option {
	return func(s *Server) { s.quizzes = store }
}

// New creates an HTTP server over the given submitter and job store.
func New(submitter Submitter, jobs batch.Store, opts ...Option) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		submitter: submitter,
		jobs:      jobs,
	}
	for _, opt := range opts {
		opt(s)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
	})
	s.router.Use(c.Handler)
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler, useful for embedding the
// server into an existing mux or for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/jobs", s.handleSubmitJob).Methods(http.MethodPost)
	s.router.HandleFunc("/jobs", s.handleListJobs).Methods(http.MethodGet)
	s.router.HandleFunc("/jobs/{jobId}", s.handleGetJob).Methods(http.MethodGet)
	s.router.HandleFunc("/quizzes/{quizId}", s.handleGetQuiz).Methods(http.MethodGet)
	s.router.HandleFunc("/topics/{topicId}/quizzes", s.handleListQuizzes).Methods(http.MethodGet)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// submitRequest is the POST /jobs payload.
type submitRequest struct {
	Topic         generator.Topic `json:"topic"`
	QuestionCount int             `json:"question_count"`
}

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Topic.Title == "" {
		http.Error(w, "topic title is required", http.StatusBadRequest)
		return
	}
	id, err := s.submitter.Submit(r.Context(), req.Topic, req.QuestionCount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusAccepted)
	s.writeJSON(w, map[string]string{"job_id": id})
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.jobs.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []*batch.Job{}
	}
	s.writeJSON(w, jobs)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["jobId"]
	job, err := s.jobs.Get(r.Context(), id)
	if errors.Is(err, batch.ErrJobNotFound) {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, job)
}

// quizResponse bundles a quiz with its questions for GET /quizzes/{quizId}.
type quizResponse struct {
	Quiz      *storage.QuizRecord      `json:"quiz"`
	Questions []storage.QuestionRecord `json:"questions"`
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	if s.quizzes == nil {
		http.Error(w, "quiz storage not configured", http.StatusNotFound)
		return
	}
	id := mux.Vars(r)["quizId"]
	quiz, questions, err := s.quizzes.GetQuiz(r.Context(), id)
	if errors.Is(err, storage.ErrQuizNotFound) {
		http.Error(w, "quiz not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, quizResponse{Quiz: quiz, Questions: questions})
}

func (s *Server) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	if s.quizzes == nil {
		http.Error(w, "quiz storage not configured", http.StatusNotFound)
		return
	}
	topicID := mux.Vars(r)["topicId"]
	quizzes, err := s.quizzes.ListQuizzes(r.Context(), topicID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if quizzes == nil {
		quizzes = []storage.QuizRecord{}
	}
	s.writeJSON(w, quizzes)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}
