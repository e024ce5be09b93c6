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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRepairStrings_MatchesCases verifies string termination and embedded
// quote escaping.
func TestRepairStrings_MatchesCases(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       string
		wantClosed bool
	}{
		{name: "valid untouched", input: `{"a": "b"}`, want: `{"a": "b"}`, wantClosed: false},
		{name: "array untouched", input: `["a", "b"]`, want: `["a", "b"]`, wantClosed: false},
		{name: "unterminated at eof", input: `{"a": "b`, want: `{"a": "b"`, wantClosed: true},
		{name: "unterminated root string", input: `"abc`, want: `"abc"`, wantClosed: true},
		{name: "embedded quotes escaped", input: `{"msg": "it is "quoted" here"}`, want: `{"msg": "it is \"quoted\" here"}`, wantClosed: false},
		{name: "terminator before comma", input: `{"a": "b", "c": "d"}`, want: `{"a": "b", "c": "d"}`, wantClosed: false},
		{name: "terminator before spaced colon", input: `{"a" : 1}`, want: `{"a" : 1}`, wantClosed: false},
		{name: "raw newline escaped", input: "{\"a\": \"line\nbreak\"}", want: `{"a": "line\nbreak"}`, wantClosed: false},
		{name: "raw tab escaped", input: "{\"a\": \"col\tumn\"}", want: `{"a": "col\tumn"}`, wantClosed: false},
		{name: "trailing backslash dropped", input: `{"a": "b\`, want: `{"a": "b"`, wantClosed: true},
		{name: "empty string value", input: `{"a": ""}`, want: `{"a": ""}`, wantClosed: false},
		{name: "no strings", input: `[1, 2]`, want: `[1, 2]`, wantClosed: false},
		{name: "empty input", input: ``, want: ``, wantClosed: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, closed := RepairStrings(tt.input)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.wantClosed, closed)
		})
	}
}

// TestRepairStrings_OutputStringsDecode verifies that repaired literals are
// accepted by the standard decoder once structure is balanced.
func TestRepairStrings_OutputStringsDecode(t *testing.T) {
	got, closed := RepairStrings(`{"quote": "she said "stop" twice"}`)
	require.False(t, closed)
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &v))
	require.Equal(t, `she said "stop" twice`, v["quote"])
}
