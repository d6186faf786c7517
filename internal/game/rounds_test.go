package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundOrder(t *testing.T) {
	assert.Equal(t, []RoundType{RoundQuestions, RoundSynergy, RoundChat, RoundHumor, RoundResults}, Rounds())
	assert.Equal(t, 5, Count())
}

func TestNextChain(t *testing.T) {
	current := RoundType("")
	var visited []RoundType
	for {
		next, ok := Next(current)
		if !ok {
			break
		}
		visited = append(visited, next)
		current = next
	}
	assert.Equal(t, Rounds(), visited)
}

func TestNextUnknownStartsSequence(t *testing.T) {
	for _, label := range []RoundType{"", "warmup", "RESULTS"} {
		next, ok := Next(label)
		assert.True(t, ok)
		assert.Equal(t, RoundQuestions, next, "label %q should restart the sequence", label)
	}
}

func TestNextTerminal(t *testing.T) {
	next, ok := Next(RoundResults)
	assert.False(t, ok)
	assert.Empty(t, next)
}

func TestIndex(t *testing.T) {
	for i, r := range Rounds() {
		assert.Equal(t, i, Index(r))
	}
	assert.Equal(t, -1, Index("warmup"))
}
