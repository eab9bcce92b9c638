package wisdom

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// section describes one labeled block of a perspective or synthesis body.
// The backend's schema drifts between releases, so each section carries an
// ordered list of alternate entry keys tried against list-of-object values,
// and a literal fallback rendered when the key is absent. Keeping this as a
// table instead of nested conditionals makes the alternates testable and
// cheap to extend.
type section struct {
	label    string
	key      string
	altKeys  []string
	fallback string
	// rawEntry falls back to the serialized entry when no alternate key
	// matches, instead of rendering the entry empty.
	rawEntry bool
	// mapBullets renders a mapping value as one bullet per key.
	mapBullets bool
}

var perspectiveSections = []section{
	{label: "Core Insight", key: "core_insight", altKeys: []string{"insight", "description", "core-insight"}, fallback: "None"},
	{label: "Reasoning Process", key: "reasoning_process", altKeys: []string{"description", "exploration", "analysis", "reasoning-process"}, fallback: "None"},
	{label: "Metacognitive Awareness", key: "metacognitive_awareness", altKeys: []string{"description", "awareness", "metacognitive-awareness"}, fallback: "None"},
	{label: "Socratic Catalyst", key: "socratic_catalyst", altKeys: []string{"question", "catalyst", "socratic-catalyst"}, fallback: "None"},
	{label: "Practical Application", key: "practical_application", altKeys: []string{"description", "application", "practical-application"}, fallback: "None"},
	{label: "Connection to Principles", key: "connection_to_principles", altKeys: []string{"description", "connection", "principle", "connection-to-principles"}, fallback: "None"},
	{label: "Cognitive Stimulation", key: "cognitive_stimulation", altKeys: []string{"description", "stimulation", "cognitive-stimulation"}, fallback: "None"},
}

var synthesisSections = []section{
	{label: "Integrated Wisdom", key: "integrated_wisdom", altKeys: []string{"wisdom", "description"}, fallback: "No integrated wisdom provided"},
	{label: "Key Insights", key: "key_insights", altKeys: []string{"most_important_discovery", "insight"}, fallback: "No key insights provided", rawEntry: true},
	{label: "Practical Steps", key: "practical_steps", altKeys: []string{"step", "action", "description"}, fallback: "No practical steps provided"},
	{label: "Metacognitive Enhancement", key: "metacognitive_enhancement", altKeys: []string{"description", "enhancement"}, fallback: "No metacognitive enhancement provided"},
	{label: "Reasoning Quality Assessment", key: "reasoning_quality_assessment", altKeys: []string{"assessment", "description"}, fallback: "None"},
	{label: "Cognitive Bridges", key: "cognitive_bridges", altKeys: []string{"bridge", "description"}, fallback: "No cognitive bridges provided"},
	{label: "Transformative Elements", key: "transformative_elements", altKeys: []string{"element", "description"}, fallback: "No transformative elements provided"},
	{label: "Application Scenarios", key: "application_scenarios", altKeys: []string{"scenario", "description"}, fallback: "No application scenarios provided"},
	{label: "Deepening Questions", key: "deepening_questions", altKeys: []string{"question", "description"}, fallback: "No deepening questions provided"},
	{label: "Metacognitive Prompts", key: "metacognitive_prompts", altKeys: []string{"prompt", "question"}, fallback: "No metacognitive prompts provided"},
	{label: "Dialectical Challenges", key: "dialectical_challenges", altKeys: []string{"challenge", "description"}, fallback: "No dialectical challenges provided", mapBullets: true},
	{label: "Synthesis Quality Score", key: "synthesis_quality_score", fallback: "None"},
	{label: "Cognitive Enhancement Elements", key: "cognitive_enhancement_elements", altKeys: []string{"element", "description"}, fallback: "No cognitive enhancement elements provided"},
}

var perspectiveNameKeys = []string{"philosopher", "agent", "name", "step"}

// Normalize reduces one raw service payload to exactly one Variant. First
// match wins: a reasoning chain plus a synthesis field is the full
// philosophical shape; a bare string synthesis is the legacy shape;
// anything else is preserved verbatim as a raw fallback. Every branch has a
// literal default, so Normalize cannot fail, and identical input yields
// byte-identical output.
func Normalize(raw map[string]any) Variant {
	chain, hasChain := raw["reasoning_chain"].([]any)
	synth, hasSynth := raw["synthesis"]
	if hasChain && hasSynth {
		return Philosophical{
			Perspectives: normalizePerspectives(chain),
			Synthesis:    renderSynthesis(synth),
		}
	}
	if text, ok := synth.(string); ok {
		return Synthesis{Sources: consultedPhilosophers(raw), Text: text}
	}
	return RawFallback{Payload: prettyJSON(raw)}
}

func normalizePerspectives(chain []any) []Perspective {
	perspectives := make([]Perspective, 0, len(chain))
	for i, entry := range chain {
		fields, _ := entry.(map[string]any)
		perspectives = append(perspectives, Perspective{
			Name: perspectiveName(fields, i),
			Text: renderSections(fields, perspectiveSections),
		})
	}
	return perspectives
}

func perspectiveName(fields map[string]any, index int) string {
	for _, key := range perspectiveNameKeys {
		if name := strings.TrimSpace(asString(fields[key])); name != "" {
			return name
		}
	}
	return fmt.Sprintf("Perspective %d", index+1)
}

func renderSynthesis(synth any) string {
	switch value := synth.(type) {
	case string:
		return value
	case map[string]any:
		return renderSections(value, synthesisSections)
	default:
		return stringify(value)
	}
}

func renderSections(fields map[string]any, specs []section) string {
	lines := make([]string, 0, len(specs))
	for _, spec := range specs {
		lines = append(lines, spec.renderLine(fields))
	}
	return strings.Join(lines, "\n")
}

// renderLine always emits the section header; an absent or null value
// renders the literal fallback rather than dropping the line.
func (s section) renderLine(fields map[string]any) string {
	value, ok := fields[s.key]
	if !ok || value == nil {
		return s.label + ": " + s.fallback
	}
	text := s.renderValue(value)
	if strings.Contains(text, "\n") {
		return s.label + ":\n" + text
	}
	return s.label + ": " + text
}

func (s section) renderValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, entry := range v {
			parts = append(parts, s.renderEntry(entry))
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		if s.mapBullets {
			return mappingBullets(v)
		}
		for _, key := range s.altKeys {
			if text := asString(v[key]); text != "" {
				return text
			}
		}
		return stringify(v)
	default:
		return stringify(v)
	}
}

func (s section) renderEntry(entry any) string {
	switch v := entry.(type) {
	case string:
		return v
	case map[string]any:
		for _, key := range s.altKeys {
			if text := asString(v[key]); text != "" {
				return text
			}
		}
		if s.rawEntry {
			return stringify(v)
		}
		return ""
	default:
		return stringify(v)
	}
}

// mappingBullets renders one bullet per key, keys sorted so output stays
// deterministic across runs.
func mappingBullets(value map[string]any) string {
	keys := make([]string, 0, len(value))
	for key := range value {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, "- "+titleizeKey(key)+": "+stringify(value[key]))
	}
	return strings.Join(lines, "\n")
}

func titleizeKey(key string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(key, "_", " "))
	if cleaned == "" {
		return key
	}
	runes := []rune(cleaned)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}

func consultedPhilosophers(raw map[string]any) []string {
	for _, key := range []string{"philosophers_consulted", "philosophers"} {
		list, ok := raw[key].([]any)
		if !ok {
			continue
		}
		names := make([]string, 0, len(list))
		for _, entry := range list {
			if name := strings.TrimSpace(asString(entry)); name != "" {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			return names
		}
	}
	return append([]string(nil), DefaultCouncil...)
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// stringify is the last-resort renderer for values with no documented
// shape. json.Marshal sorts map keys, which keeps it deterministic.
func stringify(value any) string {
	if text := asString(value); text != "" {
		return text
	}
	buf, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(buf)
}

func prettyJSON(raw map[string]any) string {
	buf, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", raw)
	}
	return string(buf)
}
