package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFirstJSON_ObjectWithSurroundingProse(t *testing.T) {
	text := `Sure! Here is the evaluation you asked for:
{"score": 8, "feedback": "good", "better_answer": "be specific"}
Let me know if you need anything else.`

	value, ok := ExtractFirstJSON(text)
	require.True(t, ok)

	obj, ok := value.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 8.0, obj["score"])
	assert.Equal(t, "good", obj["feedback"])
}

func TestExtractFirstJSON_ArrayWithSurroundingProse(t *testing.T) {
	text := "The scores were:\n[6, 8, 4]\nWell done overall."

	value, ok := ExtractFirstJSON(text)
	require.True(t, ok)

	list, ok := value.([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 3)
}

func TestExtractFirstJSON_ArrayOfObjectsYieldsInnerObject(t *testing.T) {
	// The object pass runs before the array pass, so an array of objects
	// yields its first element. Callers that expect a bare array decode the
	// whole text first and only use the scanner as a prose fallback.
	text := `[{"text": "Tell me about yourself."}, {"text": "Why this role?"}]`

	value, ok := ExtractFirstJSON(text)
	require.True(t, ok)

	obj, ok := value.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Tell me about yourself.", obj["text"])
}

func TestExtractFirstJSON_RoundTrip(t *testing.T) {
	original := map[string]interface{}{
		"score":    7.5,
		"feedback": "nested {braces} handled",
		"tags":     []interface{}{"a", "b"},
	}
	serialized, err := json.Marshal(original)
	require.NoError(t, err)

	text := "prose before " + string(serialized) + " prose after"
	value, ok := ExtractFirstJSON(text)
	require.True(t, ok)
	assert.Equal(t, original, value)
}

func TestExtractFirstJSON_ObjectPreferredOverArray(t *testing.T) {
	// The array appears first in the text, but the object pass runs first.
	text := `[1, 2, 3] and then {"winner": true}`

	value, ok := ExtractFirstJSON(text)
	require.True(t, ok)

	obj, ok := value.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, obj["winner"])
}

func TestExtractFirstJSON_SkipsMalformedBlock(t *testing.T) {
	// The first balanced span is not valid JSON; scanning continues to the
	// next one.
	text := `{not json at all} trailing words {"a": 1}`

	value, ok := ExtractFirstJSON(text)
	require.True(t, ok)

	obj, ok := value.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 1.0, obj["a"])
}

func TestExtractFirstJSON_NoJSONPresent(t *testing.T) {
	for _, text := range []string{
		"",
		"just plain prose, nothing else",
		"unbalanced { opening",
		"unbalanced closing }",
		"{broken} [also broken,]",
	} {
		value, ok := ExtractFirstJSON(text)
		assert.False(t, ok, "input: %q", text)
		assert.Nil(t, value, "input: %q", text)
	}
}

func TestExtractFirstJSON_NeverPanics(t *testing.T) {
	inputs := []string{
		"}}}}{{{{",
		"[[[[",
		"]]]] [b]ad [",
		string([]byte{0x00, 0x7b, 0xff, 0x7d}),
	}
	for _, input := range inputs {
		assert.NotPanics(t, func() {
			ExtractFirstJSON(input)
		})
	}
}

func TestDecodeFirstJSON(t *testing.T) {
	var payload struct {
		Score    float64 `json:"score"`
		Feedback string  `json:"feedback"`
	}

	ok := DecodeFirstJSON(`the model says {"score": 6, "feedback": "ok"} done`, &payload)
	require.True(t, ok)
	assert.Equal(t, 6.0, payload.Score)
	assert.Equal(t, "ok", payload.Feedback)

	assert.False(t, DecodeFirstJSON("no json here", &payload))
}
