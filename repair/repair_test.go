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

// TestRecover_CleanInput verifies that already-valid text parses without
// running any stage.
func TestRecover_CleanInput(t *testing.T) {
	res := Recover(Completion{Text: `{"a": 1, "b": "two"}`})

	require.Equal(t, StatusClean, res.Status)
	require.Empty(t, res.Attempts)
	require.False(t, res.Truncation.Suspected)
	require.Equal(t, `{"a": 1, "b": "two"}`, res.JSON)
	require.Equal(t, map[string]any{"a": json.Number("1"), "b": "two"}, res.Value)
}

// TestRecover_FencedNoisyObject covers the common chat-style completion:
// code fences, bare keys, single quotes and a trailing comma, all fixed by
// normalization alone.
func TestRecover_FencedNoisyObject(t *testing.T) {
	text := "```json\n{title: \"Algebra Basics\", 'difficulty': 'medium', \"count\": 3,}\n```"
	res := Recover(Completion{Text: text, Provider: "ollama"})

	require.Equal(t, StatusRepaired, res.Status)
	require.Equal(t, map[string]any{
		"title":      "Algebra Basics",
		"difficulty": "medium",
		"count":      json.Number("3"),
	}, res.Value)
	require.Len(t, res.Attempts, 1)
	require.Equal(t, StageNormalize, res.Attempts[0].Stage)
	require.True(t, res.Attempts[0].Succeeded)
}

// TestRecover_SingleQuotedObject verifies quote conversion end to end.
func TestRecover_SingleQuotedObject(t *testing.T) {
	res := Recover(Completion{Text: `{'name': 'Quiz', 'items': [1, 2]}`})

	require.Equal(t, StatusRepaired, res.Status)
	require.Equal(t, map[string]any{
		"name":  "Quiz",
		"items": []any{json.Number("1"), json.Number("2")},
	}, res.Value)
}

// TestRecover_StringCutMidValue verifies that a completion cut inside a
// string value drops that member instead of keeping a half-written one.
func TestRecover_StringCutMidValue(t *testing.T) {
	text := `{"title": "Topic", "description": "Covers the basics of`
	res := Recover(Completion{Text: text})

	require.Equal(t, StatusRepaired, res.Status)
	require.Equal(t, map[string]any{"title": "Topic"}, res.Value)
	require.True(t, res.Truncation.Suspected)

	stages := attemptStages(res.Attempts)
	require.Equal(t, []Stage{StageNormalize, StageStringRepair, StageStructureClose}, stages)
	require.True(t, res.Attempts[2].Succeeded)
}

// TestRecover_ArrayCutMidRecord verifies that a record list cut inside its
// last element keeps exactly the complete records.
func TestRecover_ArrayCutMidRecord(t *testing.T) {
	text := `[{"q": "What is 2+2?", "a": 4}, {"q": "What is 3*3?", "a": 9}, {"q": "Wha`
	res := Recover(Completion{Text: text})

	require.Equal(t, StatusRepaired, res.Status)
	require.Equal(t, []any{
		map[string]any{"q": "What is 2+2?", "a": json.Number("4")},
		map[string]any{"q": "What is 3*3?", "a": json.Number("9")},
	}, res.Value)
	require.True(t, res.Truncation.Suspected)
}

// TestRecover_EnvelopeCutInsideArray pins the drop policy for an object
// envelope cut inside its array member: the unclosed array is an incomplete
// member of the envelope and is dropped wholly, complete records inside
// included. Callers that need those records re-request with a smaller batch.
func TestRecover_EnvelopeCutInsideArray(t *testing.T) {
	text := `{"questions": [{"id": 1}, {"id": 2}, {"id": 3, "question_te`
	res := Recover(Completion{
		Text: text,
		Hint: &ShapeHint{Kind: KindObject, RequiredKeys: []string{"questions"}},
	})

	require.Equal(t, StatusRepaired, res.Status)
	require.Equal(t, map[string]any{}, res.Value)
	require.Equal(t, []string{"questions"}, res.MissingKeys)
	require.True(t, res.Truncation.Suspected)
}

// TestRecover_ProseFallsBack verifies that text with no structure ends in
// the fallback record, never an error.
func TestRecover_ProseFallsBack(t *testing.T) {
	text := `I could not generate the quiz, sorry!`
	res := Recover(Completion{Text: text})

	require.Equal(t, StatusFallback, res.Status)
	require.True(t, json.Valid([]byte(res.JSON)))
	require.Equal(t, map[string]any{
		"error": "terminal_parse_failure",
		"raw":   text,
		"stage": "structure_close",
	}, res.Value)

	stages := attemptStages(res.Attempts)
	require.Equal(t, []Stage{StageNormalize, StageStringRepair, StageStructureClose, StageFallback}, stages)
	for _, a := range res.Attempts[:3] {
		require.False(t, a.Succeeded)
	}
	require.True(t, res.Attempts[3].Succeeded)
}

// TestRecover_UnterminatedStringFallback verifies that when unrecoverable
// input also carries a string the repairer had to close at end of input, the
// fallback record names the unterminated string as the defect.
func TestRecover_UnterminatedStringFallback(t *testing.T) {
	text := `{"a": 1 2, "b": "c`
	res := Recover(Completion{Text: text})

	require.Equal(t, StatusFallback, res.Status)
	require.True(t, json.Valid([]byte(res.JSON)))
	require.Equal(t, map[string]any{
		"error": "unterminated_string",
		"raw":   text,
		"stage": "structure_close",
	}, res.Value)
}

// TestRecover_ShapeHint verifies post-parse hint validation: violations are
// reported but the value is still returned.
func TestRecover_ShapeHint(t *testing.T) {
	t.Run("missing key reported", func(t *testing.T) {
		res := Recover(Completion{
			Text: `{"title": "x"}`,
			Hint: &ShapeHint{Kind: KindObject, RequiredKeys: []string{"title", "questions"}},
		})
		require.Equal(t, StatusClean, res.Status)
		require.False(t, res.KindMismatch)
		require.Equal(t, []string{"questions"}, res.MissingKeys)
	})

	t.Run("kind mismatch reported", func(t *testing.T) {
		res := Recover(Completion{
			Text: `[1, 2]`,
			Hint: &ShapeHint{Kind: KindObject, RequiredKeys: []string{"title"}},
		})
		require.Equal(t, StatusClean, res.Status)
		require.True(t, res.KindMismatch)
		require.Equal(t, []string{"title"}, res.MissingKeys)
		require.Equal(t, []any{json.Number("1"), json.Number("2")}, res.Value)
	})

	t.Run("fallback reports hint violations", func(t *testing.T) {
		res := Recover(Completion{
			Text: `no structure at all`,
			Hint: &ShapeHint{Kind: KindArray, RequiredKeys: []string{"q"}},
		})
		require.Equal(t, StatusFallback, res.Status)
		require.True(t, res.KindMismatch)
		require.Equal(t, []string{"q"}, res.MissingKeys)
	})
}

// TestRecover_NeverFabricates feeds cut-off objects and checks that every
// key of the result already appears complete in the input.
func TestRecover_NeverFabricates(t *testing.T) {
	res := Recover(Completion{Text: `{"a": 1, "b":`})
	require.Equal(t, StatusRepaired, res.Status)
	require.Equal(t, map[string]any{"a": json.Number("1")}, res.Value)

	res = Recover(Completion{Text: `{"a": {"nested": true`})
	require.Equal(t, StatusRepaired, res.Status)
	require.Equal(t, map[string]any{}, res.Value)
}

// TestRecover_RoundTrip checks that the JSON field of every non-fallback
// result decodes back to the returned value.
func TestRecover_RoundTrip(t *testing.T) {
	inputs := []string{
		`{"a": 1}`,
		`{'a': 'b'}`,
		"```json\n[1, 2, 3,]\n```",
		`{"a": "broken`,
		`[{"x": 1}, {"x": 2},`,
	}
	for _, in := range inputs {
		res := Recover(Completion{Text: in})
		require.NotEqual(t, StatusFallback, res.Status, "input %q", in)
		require.True(t, json.Valid([]byte(res.JSON)), "input %q", in)

		var v any
		dec := json.NewDecoder(strings.NewReader(res.JSON))
		dec.UseNumber()
		require.NoError(t, dec.Decode(&v))
		require.Equal(t, res.Value, v)
	}
}

// TestRecover_TotalOverHostileInputs checks total behavior: any input
// yields a parseable value and no panic.
func TestRecover_TotalOverHostileInputs(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t  ",
		"{",
		"}",
		"[[[[[[",
		`"`,
		"\\",
		string([]byte{0xff, 0xfe}),
		strings.Repeat(`{"a":`, 500),
		"null",
		"true",
		"42",
	}
	for _, in := range inputs {
		res := Recover(Completion{Text: in})
		require.True(t, json.Valid([]byte(res.JSON)), "input %q", in)
	}
}

// attemptStages projects the stage sequence of a diagnostics trail.
func attemptStages(attempts []Attempt) []Stage {
	stages := make([]Stage, 0, len(attempts))
	for _, a := range attempts {
		stages = append(stages, a.Stage)
	}
	return stages
}
