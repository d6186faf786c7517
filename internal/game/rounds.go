// Package game holds the round sequence: a fixed total order of phases a
// session moves through, ending in results.
package game

type RoundType string

const (
	RoundQuestions RoundType = "questions"
	RoundSynergy   RoundType = "synergy"
	RoundChat      RoundType = "chat"
	RoundHumor     RoundType = "humor"
	RoundResults   RoundType = "results"
)

var roundOrder = []RoundType{
	RoundQuestions,
	RoundSynergy,
	RoundChat,
	RoundHumor,
	RoundResults,
}

// Rounds returns the phases in play order.
func Rounds() []RoundType {
	out := make([]RoundType, len(roundOrder))
	copy(out, roundOrder)
	return out
}

// Count returns the number of phases in a session.
func Count() int {
	return len(roundOrder)
}

// Index returns the position of label in the sequence, or -1 if unknown.
func Index(label RoundType) int {
	for i, r := range roundOrder {
		if r == label {
			return i
		}
	}
	return -1
}

// Next returns the phase following current. An empty or unrecognized current
// starts the sequence from the first phase. After the final phase there is no
// next: ok is false and the session is done.
func Next(current RoundType) (RoundType, bool) {
	idx := Index(current)
	if idx < 0 {
		return roundOrder[0], true
	}
	if idx+1 >= len(roundOrder) {
		return "", false
	}
	return roundOrder[idx+1], true
}
