package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestVisibleWith(t *testing.T) {
	choice := &NarrativeChoice{
		ID:           "secret",
		RequiresFlag: map[string]any{"found_rope_bridge": true},
	}

	assert.False(t, choice.VisibleWith(nil))
	assert.False(t, choice.VisibleWith(map[string]any{"found_rope_bridge": false}))
	assert.True(t, choice.VisibleWith(map[string]any{"found_rope_bridge": true}))
}

func TestVisibleWithNumericFlags(t *testing.T) {
	// the same flag can round-trip through JSON as float64 or YAML as int
	choice := &NarrativeChoice{
		ID:           "vault",
		RequiresFlag: map[string]any{"keys_found": 3},
	}

	assert.True(t, choice.VisibleWith(map[string]any{"keys_found": float64(3)}))
	assert.True(t, choice.VisibleWith(map[string]any{"keys_found": int64(3)}))
	assert.False(t, choice.VisibleWith(map[string]any{"keys_found": 2}))
}

func TestVisibleWithNoRequirements(t *testing.T) {
	choice := &NarrativeChoice{ID: "walk"}
	assert.True(t, choice.VisibleWith(nil))
}

func TestHealAmountJSON(t *testing.T) {
	var full HealAmount
	require.NoError(t, json.Unmarshal([]byte(`"full"`), &full))
	assert.True(t, full.Full)

	var flat HealAmount
	require.NoError(t, json.Unmarshal([]byte(`15`), &flat))
	assert.False(t, flat.Full)
	assert.Equal(t, 15, flat.Amount)

	assert.Error(t, json.Unmarshal([]byte(`"half"`), &full))

	data, err := json.Marshal(HealAmount{Full: true})
	require.NoError(t, err)
	assert.Equal(t, `"full"`, string(data))
}

func TestHealAmountYAML(t *testing.T) {
	var full HealAmount
	require.NoError(t, yaml.Unmarshal([]byte(`full`), &full))
	assert.True(t, full.Full)

	var flat HealAmount
	require.NoError(t, yaml.Unmarshal([]byte(`10`), &flat))
	assert.Equal(t, 10, flat.Amount)
}

func TestCompletionKey(t *testing.T) {
	outcome := &NarrativeOutcome{ChoiceID: "climb", OutcomeType: OutcomeSuccess}
	assert.Equal(t, "climb:success", outcome.CompletionKey())
}

func TestCompletionLedger(t *testing.T) {
	progress := NewNarrativeProgress("user-123")

	assert.False(t, progress.HasCompleted("climb:success"))

	progress.MarkCompleted("climb:success")
	progress.MarkCompleted("climb:success")
	assert.True(t, progress.HasCompleted("climb:success"))
	assert.Len(t, progress.CompletedChoices, 1)
}

func TestVisitLocationDeduplicates(t *testing.T) {
	progress := NewNarrativeProgress("user-123")

	progress.VisitLocation("gate")
	progress.VisitLocation("hall")
	progress.VisitLocation("gate")

	assert.Equal(t, []string{"gate", "hall"}, progress.VisitedLocations)
}

func TestMergeFlags(t *testing.T) {
	progress := NewNarrativeProgress("user-123")
	progress.StoryFlags = nil

	progress.MergeFlags(map[string]any{"found_rope_bridge": true})
	progress.MergeFlags(map[string]any{"found_rope_bridge": false, "met_sage": true})

	assert.Equal(t, false, progress.StoryFlags["found_rope_bridge"])
	assert.Equal(t, true, progress.StoryFlags["met_sage"])
}
