//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

// Package repair recovers syntactically valid JSON from the malformed
// completions that text-generation backends produce. A fixed pipeline of
// idempotent stages (prose and syntax normalization, string termination,
// structural closing) is applied in order, with a parse attempt after each
// stage and a short circuit on the first success. When no stage yields
// parseable text, a guaranteed-valid fallback record is returned instead, so
// the package never fails past its own boundary. Stages remove or escape
// text; they never invent field values.
//
// The package is pure: it performs no I/O, retains no state between calls
// and is safe for arbitrary concurrent use.
package repair

import (
	"encoding/json"
	"strings"
)

// Kind is the expected top-level shape of a decoded completion.
type Kind int

const (
	// KindAny accepts any top-level value.
	KindAny Kind = iota
	// KindObject expects a JSON object.
	KindObject
	// KindArray expects a JSON array.
	KindArray
)

// ShapeHint is a caller-supplied expectation about the decoded value. It is
// used for post-parse validation only and never drives repair decisions.
type ShapeHint struct {
	// Kind is the expected top-level kind.
	Kind Kind
	// RequiredKeys lists keys the decoded object should carry, in order.
	RequiredKeys []string
}

// Completion is one raw completion handed to the recovery engine. It is
// immutable: the engine never modifies it and never retains it.
type Completion struct {
	// Text is the raw completion text.
	Text string
	// Provider is an opaque tag naming the upstream backend, carried through
	// to diagnostics.
	Provider string
	// Hint optionally describes the expected shape of the decoded value.
	Hint *ShapeHint
}

// Status classifies the outcome of a recovery.
type Status int

const (
	// StatusClean means the input parsed without any repair.
	StatusClean Status = iota
	// StatusRepaired means at least one stage modified the text before it
	// parsed.
	StatusRepaired
	// StatusFallback means no stage produced parseable text and the value is
	// the diagnostic fallback record.
	StatusFallback
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusClean:
		return "clean"
	case StatusRepaired:
		return "repaired"
	case StatusFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Stage identifies one step of the recovery pipeline.
type Stage int

const (
	// StageNormalize is the ordered syntax rewrite stage.
	StageNormalize Stage = iota
	// StageStringRepair terminates and re-escapes string literals.
	StageStringRepair
	// StageStructureClose balances open structural tokens.
	StageStructureClose
	// StageFallback assembles the diagnostic fallback record.
	StageFallback
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageNormalize:
		return "normalize"
	case StageStringRepair:
		return "string_repair"
	case StageStructureClose:
		return "structure_close"
	case StageFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Attempt records one executed pipeline stage.
type Attempt struct {
	// Stage is the executed stage.
	Stage Stage
	// Succeeded reports whether the stage's output parsed.
	Succeeded bool
	// InputLen is the rune length of the stage's input.
	InputLen int
	// OutputLen is the rune length of the stage's output.
	OutputLen int
}

// Result is the outcome of one recovery. Value is always a syntactically
// valid decoded structure; raw text is never returned as the value.
type Result struct {
	// Status classifies the outcome.
	Status Status
	// Value is the decoded structure. For StatusFallback it is the
	// diagnostic record.
	Value any
	// JSON is the text that Value was decoded from.
	JSON string
	// Attempts lists every executed stage in execution order.
	Attempts []Attempt
	// Truncation is the advisory truncation verdict for the input.
	Truncation Truncation
	// MissingKeys lists required keys absent from the decoded object.
	// Informational only; a field-incomplete value is still returned.
	MissingKeys []string
	// KindMismatch reports that the decoded value's top-level kind differs
	// from the hint. Informational only.
	KindMismatch bool
}

// Recover turns an arbitrary completion into a syntactically valid value.
// It never panics and never returns an error: when every stage fails, the
// result carries StatusFallback and the guaranteed-valid fallback record.
func Recover(c Completion) (res Result) {
	defer func() {
		if recover() != nil {
			res = fallbackResult(c, StageFallback, res.Attempts, res.Truncation, false)
		}
	}()

	res.Truncation = DetectTruncation(c.Text)

	if v, ok := tryParse(c.Text); ok {
		res.Status = StatusClean
		res.Value = v
		res.JSON = strings.TrimSpace(c.Text)
		res.applyHint(c.Hint)
		return res
	}

	normalized := Normalize(c.Text)
	if done := res.finishStage(c, StageNormalize, c.Text, normalized); done {
		return res
	}

	stringRepaired, closedAtEOF := RepairStrings(normalized)
	if done := res.finishStage(c, StageStringRepair, normalized, stringRepaired); done {
		return res
	}

	closed := CloseStructures(stringRepaired, closedAtEOF)
	if done := res.finishStage(c, StageStructureClose, stringRepaired, closed); done {
		return res
	}

	return fallbackResult(c, StageStructureClose, res.Attempts, res.Truncation, closedAtEOF)
}

// finishStage records the attempt for one executed stage and, when the stage
// output parses, fills the result and reports completion.
func (res *Result) finishStage(c Completion, stage Stage, input, output string) bool {
	v, ok := tryParse(output)
	res.Attempts = append(res.Attempts, Attempt{
		Stage:     stage,
		Succeeded: ok,
		InputLen:  len([]rune(input)),
		OutputLen: len([]rune(output)),
	})
	if !ok {
		return false
	}
	res.Status = StatusRepaired
	res.Value = v
	res.JSON = strings.TrimSpace(output)
	res.applyHint(c.Hint)
	return true
}

// fallbackResult assembles the terminal fallback outcome.
// stringClosedAtEOF is the string stage's report that it had to close a
// literal at end of input; it refines the defect classification.
func fallbackResult(
	c Completion, abandoned Stage, attempts []Attempt, tr Truncation, stringClosedAtEOF bool,
) Result {
	defect := classify(c.Text, stringClosedAtEOF)
	text := Fallback(c.Text, abandoned, defect.String())
	value := map[string]any{
		"error": defect.String(),
		"raw":   cappedRaw(c.Text),
		"stage": abandoned.String(),
	}
	attempts = append(attempts, Attempt{
		Stage:     StageFallback,
		Succeeded: true,
		InputLen:  len([]rune(c.Text)),
		OutputLen: len([]rune(text)),
	})
	res := Result{
		Status:     StatusFallback,
		Value:      value,
		JSON:       text,
		Attempts:   attempts,
		Truncation: tr,
	}
	if c.Hint != nil {
		res.KindMismatch = c.Hint.Kind != KindAny
		res.MissingKeys = append(res.MissingKeys, c.Hint.RequiredKeys...)
	}
	return res
}

// cappedRaw returns raw capped to the fallback retention bound.
func cappedRaw(raw string) string {
	if r := []rune(raw); len(r) > fallbackRawCap {
		return string(r[:fallbackRawCap])
	}
	return raw
}

// classify names the dominant defect of text that resisted every stage.
func classify(text string, stringClosedAtEOF bool) Defect {
	runes := []rune(text)
	hasOpener := false
	for _, r := range runes {
		if isOpener(r) {
			hasOpener = true
			break
		}
	}
	if !hasOpener {
		return DefectTerminalParse
	}
	if stringClosedAtEOF {
		return DefectUnterminatedString
	}
	if tr := DetectTruncation(text); tr.Suspected {
		return DefectStructuralImbalance
	}
	return DefectSyntax
}

// applyHint validates the decoded value against the caller's shape hint.
// Violations are recorded, never repaired.
func (res *Result) applyHint(hint *ShapeHint) {
	if hint == nil {
		return
	}
	obj, isObj := res.Value.(map[string]any)
	_, isArr := res.Value.([]any)
	switch hint.Kind {
	case KindObject:
		res.KindMismatch = !isObj
	case KindArray:
		res.KindMismatch = !isArr
	}
	if len(hint.RequiredKeys) == 0 {
		return
	}
	if !isObj {
		res.MissingKeys = append(res.MissingKeys, hint.RequiredKeys...)
		return
	}
	for _, key := range hint.RequiredKeys {
		if _, ok := obj[key]; !ok {
			res.MissingKeys = append(res.MissingKeys, key)
		}
	}
}

// tryParse decodes s as a single JSON value. Numbers decode as json.Number
// so integral values survive the round trip unchanged.
func tryParse(s string) (any, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || !json.Valid([]byte(trimmed)) {
		return nil, false
	}
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}
