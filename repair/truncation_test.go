//
// StudyForge is pleased to support the open source community by making quizgen available.
//
// Copyright (C) 2026 StudyForge.  All rights reserved.
//
// quizgen is licensed under the Apache License Version 2.0.
//
//

package repair

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDetectTruncation_ClassifiesInputs verifies the heuristic signals.
func TestDetectTruncation_ClassifiesInputs(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantSuspected bool
	}{
		{name: "complete object", input: `{"a": 1}`, wantSuspected: false},
		{name: "complete array", input: `[1, 2, 3]`, wantSuspected: false},
		{name: "complete with trailing newline", input: "{\"a\": 1}\n", wantSuspected: false},
		{name: "unbalanced openers", input: `{"a": {"b": 1}`, wantSuspected: true},
		{name: "odd quote count", input: `{"a": "b`, wantSuspected: true},
		{name: "cut after number", input: `{"a": 12`, wantSuspected: true},
		{name: "cut after comma", input: `[1, 2,]`, wantSuspected: false},
		{name: "dangling key", input: `"b":`, wantSuspected: true},
		{name: "dangling key with space", input: `"b" : `, wantSuspected: true},
		{name: "empty input", input: ``, wantSuspected: false},
		{name: "plain prose", input: `no json here`, wantSuspected: false},
		{name: "bare string complete", input: `"done"`, wantSuspected: false},
		{name: "escaped quote balanced", input: `{"a": "say \"hi\""}`, wantSuspected: false},
		{name: "brace inside string", input: `{"a": "{"}`, wantSuspected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectTruncation(tt.input)
			require.Equal(t, tt.wantSuspected, got.Suspected)
			if !tt.wantSuspected {
				require.Equal(t, -1, got.CutIndex)
			}
		})
	}
}

// TestDetectTruncation_CutIndex verifies the estimated cut offset points
// just past the last meaningful rune.
func TestDetectTruncation_CutIndex(t *testing.T) {
	got := DetectTruncation(`{"a": 12`)
	require.True(t, got.Suspected)
	require.Equal(t, 8, got.CutIndex)

	got = DetectTruncation("{\"a\": 12  \n")
	require.True(t, got.Suspected)
	require.Equal(t, 8, got.CutIndex)
}
