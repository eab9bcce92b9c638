// Package stages defines the simulated reasoning sequence shown while a
// query is in flight. The sequence is presentational pacing only; the
// reasoning service gives no incremental signal, so these stages carry no
// real progress information.
package stages

import "strings"

// StageStatus tracks where a stage sits in the simulated timeline.
type StageStatus int

const (
	StatusPending StageStatus = iota
	StatusActive
	StatusDone
)

func (s StageStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDone:
		return "done"
	default:
		return "pending"
	}
}

// Stage is one entry in the simulated council deliberation.
type Stage struct {
	ID          int
	Title       string
	Description string
	Status      StageStatus
}

const previewRunes = 48

// Catalog returns a fresh stage sequence for one query submission. The
// result is deterministic for a given query: the only query-dependent part
// is the preview embedded in the first stage description. The first stage
// starts Active, the rest Pending.
func Catalog(query string) []Stage {
	list := []Stage{
		{Title: "Receiving Query", Description: "Reading your question: “" + preview(query) + "”"},
		{Title: "Convening the Council", Description: "Deciding which philosophers should weigh in"},
		{Title: "Socratic Examination", Description: "Socrates questions the assumptions behind the query"},
		{Title: "Stoic Reflection", Description: "Marcus Aurelius separates what is and is not in your control"},
		{Title: "Daoist Contemplation", Description: "Lao Tzu looks for the effortless path through the problem"},
		{Title: "Aristotelian Analysis", Description: "Aristotle structures the question and weighs the virtues involved"},
		{Title: "Cross-Examination", Description: "The council challenges and refines each other's reasoning"},
		{Title: "Synthesis", Description: "Weaving the perspectives into integrated wisdom"},
	}
	for i := range list {
		list[i].ID = i + 1
		list[i].Status = StatusPending
	}
	list[0].Status = StatusActive
	return list
}

func preview(query string) string {
	runes := []rune(strings.TrimSpace(query))
	if len(runes) <= previewRunes {
		return string(runes)
	}
	return string(runes[:previewRunes]) + "…"
}
