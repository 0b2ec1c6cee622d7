package legaldata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	words := tokenize("My Phone was HACKED yesterday")

	assert.True(t, words.contains("my"))
	assert.True(t, words.contains("phone"))
	assert.True(t, words.contains("hacked"))
	assert.False(t, words.contains("HACKED"))
	assert.Len(t, words, 5)
}

func TestOverlapScore(t *testing.T) {
	t.Run("no overlap scores zero", func(t *testing.T) {
		score := overlapScore(tokenize("tenancy deposit dispute"), "murder punishment imprisonment")
		assert.Equal(t, 0.0, score)
	})

	t.Run("empty inputs score zero", func(t *testing.T) {
		assert.Equal(t, 0.0, overlapScore(tokenize(""), "anything"))
		assert.Equal(t, 0.0, overlapScore(tokenize("anything"), ""))
	})

	t.Run("full overlap without tech terms", func(t *testing.T) {
		score := overlapScore(tokenize("breach of contract"), "breach of contract")
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("tech overlap is boosted", func(t *testing.T) {
		plain := overlapScore(tokenize("breach of agreement"), "breach of trust")
		boosted := overlapScore(tokenize("hacking of device"), "hacking of systems")

		// Same 2-of-3 overlap, doubled when a tech term is in the overlap
		assert.InDelta(t, 2.0/3.0, plain, 1e-9)
		assert.InDelta(t, 4.0/3.0, boosted, 1e-9)
	})

	t.Run("denominator is the larger word set", func(t *testing.T) {
		score := overlapScore(tokenize("murder"), "murder with malice aforethought causing death")
		assert.InDelta(t, 1.0/6.0, score, 1e-9)
	})
}

func TestCrossTopicRelevant(t *testing.T) {
	t.Run("non-tech queries always pass", func(t *testing.T) {
		assert.True(t, crossTopicRelevant("divorce proceedings", "Divorce petition", "personal status law"))
	})

	t.Run("tech query rejects family law result", func(t *testing.T) {
		assert.False(t, crossTopicRelevant("my phone was hacked", "Divorce petition", "marriage and custody matters"))
	})

	t.Run("tech query accepts tech result", func(t *testing.T) {
		assert.True(t, crossTopicRelevant("my phone was hacked", "Unauthorized access", "computer systems and data"))
	})

	t.Run("tech query rejects unrelated non-tech result", func(t *testing.T) {
		assert.False(t, crossTopicRelevant("cyber attack on my data", "Rent control", "tenancy obligations"))
	})
}
