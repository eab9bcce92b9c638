package wisdom

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return payload
}

func TestNormalizePlainSynthesis(t *testing.T) {
	payload := decode(t, `{"synthesis": "Know thyself."}`)

	variant := Normalize(payload)
	reply, ok := variant.(Synthesis)
	require.True(t, ok, "expected Synthesis, got %T", variant)
	assert.Equal(t, "Know thyself.", reply.Text)
	assert.Equal(t, DefaultCouncil, reply.Sources)
}

func TestNormalizeSynthesisKeepsProvidedPhilosophers(t *testing.T) {
	payload := decode(t, `{"synthesis": "x", "philosophers": ["Socrates", "Lao Tzu"]}`)

	reply := Normalize(payload).(Synthesis)
	assert.Equal(t, []string{"Socrates", "Lao Tzu"}, reply.Sources)
}

func TestNormalizeSparsePhilosophical(t *testing.T) {
	payload := decode(t, `{
		"reasoning_chain": [{"philosopher": "Socrates", "core_insight": "Question everything"}],
		"synthesis": {"integrated_wisdom": "Examine your beliefs."}
	}`)

	variant := Normalize(payload)
	reply, ok := variant.(Philosophical)
	require.True(t, ok, "expected Philosophical, got %T", variant)
	require.Len(t, reply.Perspectives, 1)

	perspective := reply.Perspectives[0]
	assert.Equal(t, "Socrates", perspective.Name)
	lines := strings.Split(perspective.Text, "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Core Insight: Question everything", lines[0])
	for _, line := range lines[1:] {
		assert.True(t, strings.HasSuffix(line, ": None"), "expected literal default, got %q", line)
	}

	synthLines := strings.Split(reply.Synthesis, "\n")
	require.Len(t, synthLines, 13)
	assert.Equal(t, "Integrated Wisdom: Examine your beliefs.", synthLines[0])
	assert.Equal(t, "Key Insights: No key insights provided", synthLines[1])
	assert.Equal(t, "Synthesis Quality Score: None", synthLines[11])
}

func TestNormalizeUnrecognizedShapeIsLosslessFallback(t *testing.T) {
	payload := decode(t, `{"message": "hello", "nested": {"a": 1}}`)

	variant := Normalize(payload)
	fallback, ok := variant.(RawFallback)
	require.True(t, ok, "expected RawFallback, got %T", variant)

	var round map[string]any
	require.NoError(t, json.Unmarshal([]byte(fallback.Payload), &round))
	assert.Equal(t, payload, round)
}

func TestNormalizeChainWithoutSynthesisFallsBack(t *testing.T) {
	payload := decode(t, `{"reasoning_chain": [{"philosopher": "Socrates"}]}`)
	_, ok := Normalize(payload).(RawFallback)
	assert.True(t, ok)
}

func TestNormalizeObjectSynthesisWithoutChainFallsBack(t *testing.T) {
	payload := decode(t, `{"synthesis": {"integrated_wisdom": "alone"}}`)
	_, ok := Normalize(payload).(RawFallback)
	assert.True(t, ok)
}

func TestNormalizeDeterministic(t *testing.T) {
	raw := `{
		"reasoning_chain": [
			{"philosopher": "Lao Tzu", "reasoning_process": [{"exploration": "follow the water"}, "bend like bamboo"]},
			{"agent": "Aristotle", "core_insight": ["habit", "virtue"]}
		],
		"synthesis": {
			"dialectical_challenges": {"thesis": "act", "antithesis": "yield", "resolution": "flow"},
			"key_insights": [{"most_important_discovery": "balance"}],
			"synthesis_quality_score": 8.5
		},
		"philosophers_consulted": ["Lao Tzu", "Aristotle"]
	}`

	first := Normalize(decode(t, raw))
	second := Normalize(decode(t, raw))
	assert.Equal(t, first, second)
}

func TestPerspectiveEntryAlternateKeys(t *testing.T) {
	payload := decode(t, `{
		"reasoning_chain": [{
			"name": "Marcus Aurelius",
			"reasoning_process": [
				{"description": "first"},
				{"exploration": "second"},
				{"analysis": "third"},
				{"reasoning-process": "fourth"},
				{"unrelated": "ignored"}
			]
		}],
		"synthesis": "s"
	}`)

	reply := Normalize(payload).(Philosophical)
	text := reply.Perspectives[0].Text
	assert.Contains(t, text, "Reasoning Process: first; second; third; fourth; ")
}

func TestPerspectiveNameFallbacks(t *testing.T) {
	payload := decode(t, `{
		"reasoning_chain": [
			{"agent": "Aristotle"},
			{"step": "Multi-perspective Analysis"},
			{}
		],
		"synthesis": "s"
	}`)

	reply := Normalize(payload).(Philosophical)
	require.Len(t, reply.Perspectives, 3)
	assert.Equal(t, "Aristotle", reply.Perspectives[0].Name)
	assert.Equal(t, "Multi-perspective Analysis", reply.Perspectives[1].Name)
	assert.Equal(t, "Perspective 3", reply.Perspectives[2].Name)
}

func TestSynthesisStringInsidePhilosophical(t *testing.T) {
	payload := decode(t, `{
		"reasoning_chain": [{"philosopher": "Socrates"}],
		"synthesis": "short closing thought"
	}`)

	reply := Normalize(payload).(Philosophical)
	assert.Equal(t, "short closing thought", reply.Synthesis)
}

func TestDialecticalChallengesMappingRendersSortedBullets(t *testing.T) {
	payload := decode(t, `{
		"reasoning_chain": [{"philosopher": "Socrates"}],
		"synthesis": {"dialectical_challenges": {"second_view": "yield", "first_view": "act"}}
	}`)

	reply := Normalize(payload).(Philosophical)
	idx := strings.Index(reply.Synthesis, "Dialectical Challenges:")
	require.GreaterOrEqual(t, idx, 0)
	block := reply.Synthesis[idx:]
	firstAt := strings.Index(block, "- First view: act")
	secondAt := strings.Index(block, "- Second view: yield")
	require.GreaterOrEqual(t, firstAt, 0, "missing capitalized first bullet in %q", block)
	require.GreaterOrEqual(t, secondAt, 0, "missing capitalized second bullet in %q", block)
	assert.Less(t, firstAt, secondAt, "bullets must be key-sorted")
}

func TestKeyInsightsEntryFallsBackToRawEntry(t *testing.T) {
	payload := decode(t, `{
		"reasoning_chain": [{"philosopher": "Socrates"}],
		"synthesis": {"key_insights": [{"surprise_key": "kept"}]}
	}`)

	reply := Normalize(payload).(Philosophical)
	assert.Contains(t, reply.Synthesis, `Key Insights: {"surprise_key":"kept"}`)
}

func TestSynthesisQualityScoreNumber(t *testing.T) {
	payload := decode(t, `{
		"reasoning_chain": [{"philosopher": "Socrates"}],
		"synthesis": {"synthesis_quality_score": 9}
	}`)

	reply := Normalize(payload).(Philosophical)
	assert.Contains(t, reply.Synthesis, "Synthesis Quality Score: 9")
}

func TestNullSectionRendersDefault(t *testing.T) {
	payload := decode(t, `{
		"reasoning_chain": [{"philosopher": "Socrates", "metacognitive_awareness": null}],
		"synthesis": "s"
	}`)

	reply := Normalize(payload).(Philosophical)
	assert.Contains(t, reply.Perspectives[0].Text, "Metacognitive Awareness: None")
}

func TestEveryPerspectiveSectionHeaderAlwaysPresent(t *testing.T) {
	payload := decode(t, `{"reasoning_chain": [{}], "synthesis": "s"}`)

	reply := Normalize(payload).(Philosophical)
	for _, spec := range perspectiveSections {
		assert.Contains(t, reply.Perspectives[0].Text, spec.label+": ")
	}
}

func TestEverySynthesisSectionHeaderAlwaysPresent(t *testing.T) {
	payload := decode(t, `{"reasoning_chain": [{}], "synthesis": {}}`)

	reply := Normalize(payload).(Philosophical)
	for _, spec := range synthesisSections {
		assert.Contains(t, reply.Synthesis, spec.label+": "+spec.fallback)
	}
}
