//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

// Package config loads the application configuration from a YAML file with
// environment variable substitution.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/studyforge/quizgen/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Model     ModelConfig     `yaml:"model"`
	Generator GeneratorConfig `yaml:"generator"`
	Batch     BatchConfig     `yaml:"batch"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Redis     RedisConfig     `yaml:"redis"`
	Database  postgres.Config `yaml:"database"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// ModelConfig holds the completion backend settings.
type ModelConfig struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"` // openai, ollama
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// GeneratorConfig holds question generation settings.
type GeneratorConfig struct {
	BatchSize   int     `yaml:"batch_size"`
	MaxAttempts int     `yaml:"max_attempts"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// BatchConfig holds the background job runner settings.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// SchedulerConfig holds the periodic generation settings. Scheduled runs
// walk the subject rotation and submit one job per matching topic.
type SchedulerConfig struct {
	Enabled           bool          `yaml:"enabled"`
	IntervalMinutes   int           `yaml:"interval_minutes"`
	QuestionsPerTopic int           `yaml:"questions_per_topic"`
	MaxTopicsPerRun   int           `yaml:"max_topics_per_run"`
	Subjects          []string      `yaml:"subjects"`
	Topics            []TopicConfig `yaml:"topics"`
}

// TopicConfig describes one syllabus topic scheduled runs generate for.
type TopicConfig struct {
	ID                 string   `yaml:"id"`
	Title              string   `yaml:"title"`
	Subject            string   `yaml:"subject"`
	DifficultyLevel    int      `yaml:"difficulty_level"`
	SyllabusCode       string   `yaml:"syllabus_code"`
	Description        string   `yaml:"description"`
	LearningObjectives []string `yaml:"learning_objectives"`
}

// RedisConfig holds the job store connection settings. An empty Addr keeps
// jobs in memory.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// TelemetryConfig holds the metrics export settings.
type TelemetryConfig struct {
	MetricsEndpoint string `yaml:"metrics_endpoint"`
	ServiceName     string `yaml:"service_name"`
}

// Load reads configuration from a YAML file. A .env file next to the
// process, if present, is loaded first so that ${VAR} references in the
// YAML can resolve against it.
func Load(path string) (*AppConfig, error) {
	// Missing .env is fine, real environment still applies.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg AppConfig
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *AppConfig {
	cfg := &AppConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Model.Name == "" {
		c.Model.Name = "llama3.1:8b"
	}
	if c.Model.Variant == "" {
		c.Model.Variant = "ollama"
	}
	if c.Generator.BatchSize == 0 {
		c.Generator.BatchSize = 5
	}
	if c.Generator.MaxAttempts == 0 {
		c.Generator.MaxAttempts = 3
	}
	if c.Generator.Temperature == 0 {
		c.Generator.Temperature = 0.7
	}
	if c.Generator.MaxTokens == 0 {
		c.Generator.MaxTokens = 4096
	}
	if c.Batch.Concurrency == 0 {
		c.Batch.Concurrency = 3
	}
	if c.Scheduler.IntervalMinutes == 0 {
		c.Scheduler.IntervalMinutes = 24 * 60
	}
	if c.Scheduler.QuestionsPerTopic == 0 {
		c.Scheduler.QuestionsPerTopic = 10
	}
	if c.Scheduler.MaxTopicsPerRun == 0 {
		c.Scheduler.MaxTopicsPerRun = 20
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = "quizgen"
	}
}
