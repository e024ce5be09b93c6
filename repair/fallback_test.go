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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFallback_AlwaysParses feeds hostile inputs and checks the record is
// valid JSON every time.
func TestFallback_AlwaysParses(t *testing.T) {
	inputs := []string{
		"",
		`{"a": 1`,
		"```json garbage",
		`quotes " and \ slashes`,
		"control\x00\x01chars",
		"newlines\nand\ttabs",
		string([]byte{0xff, 0xfe, 0xfd}),
		strings.Repeat("x", 10000),
	}
	for _, in := range inputs {
		got := Fallback(in, StageStructureClose, "no repair produced parseable output")
		require.True(t, json.Valid([]byte(got)), "input %q", in)
	}
}

// TestFallback_RecordShape checks the three fields and their values.
func TestFallback_RecordShape(t *testing.T) {
	got := Fallback(`broken "input"`, StageNormalize, "could not parse")

	var rec map[string]string
	require.NoError(t, json.Unmarshal([]byte(got), &rec))
	require.Equal(t, "could not parse", rec["error"])
	require.Equal(t, `broken "input"`, rec["raw"])
	require.Equal(t, "normalize", rec["stage"])
}

// TestFallback_CapsRawText checks the raw excerpt is bounded.
func TestFallback_CapsRawText(t *testing.T) {
	long := strings.Repeat("a", fallbackRawCap+500)
	got := Fallback(long, StageStructureClose, "m")

	var rec map[string]string
	require.NoError(t, json.Unmarshal([]byte(got), &rec))
	require.Len(t, []rune(rec["raw"]), fallbackRawCap)

	// Multibyte runes are cut on rune boundaries, never mid-sequence.
	wide := strings.Repeat("é", fallbackRawCap+10)
	got = Fallback(wide, StageStructureClose, "m")
	require.NoError(t, json.Unmarshal([]byte(got), &rec))
	require.Len(t, []rune(rec["raw"]), fallbackRawCap)
}
