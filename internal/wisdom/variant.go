// Package wisdom talks to the WisdomArc reasoning service and reduces its
// unstable response JSON to a small closed set of display-ready variants.
package wisdom

// Variant is the closed union of reply shapes the display layer renders.
// The sealed marker method keeps the set exhaustive: renderers switch over
// the four concrete types and the compiler sees every case.
type Variant interface {
	variant()
}

// Perspective is one philosopher's formatted reasoning block. Text is a
// single pre-formatted string; callers store and display it, nothing more.
type Perspective struct {
	Name string
	Text string
}

// Philosophical is the full council reply: an ordered set of perspectives
// plus a synthesis block.
type Philosophical struct {
	Perspectives []Perspective
	Synthesis    string
}

// Synthesis is the plain-text reply shape produced by older backends.
type Synthesis struct {
	Sources []string
	Text    string
}

// ErrorReply carries a transport or parse failure. UserMessage is the fixed
// user-safe apology; Detail holds the underlying failure for inspection.
type ErrorReply struct {
	UserMessage string
	Detail      string
}

// RawFallback preserves an unrecognized payload as pretty-printed JSON so
// nothing is silently dropped.
type RawFallback struct {
	Payload string
}

func (Philosophical) variant() {}
func (Synthesis) variant()     {}
func (ErrorReply) variant()    {}
func (RawFallback) variant()   {}

// Apology is the fixed user-facing message shown when the service cannot be
// reached or returns an unusable body.
const Apology = "The Council of Wisdom could not be reached. Please try again in a moment."

// DefaultCouncil is the participant roster assumed when the service omits
// its philosophers list.
var DefaultCouncil = []string{"Socrates", "Marcus Aurelius", "Lao Tzu", "Aristotle"}
