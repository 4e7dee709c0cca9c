package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeathSaveResult(t *testing.T) {
	assert.Equal(t, "🎉 Critical Success! You're Up with 1 HP!", deathSaveResult(20))
	assert.Equal(t, "⚰️ Critical Fail! Death's Shadow falls upon you twice! ⚰️", deathSaveResult(1))
	assert.Equal(t, "✅ Success! You have gained one Success.", deathSaveResult(10))
	assert.Equal(t, "✅ Success! You have gained one Success.", deathSaveResult(19))
	assert.Equal(t, "☠️ Fail! You are one step closer to Death.", deathSaveResult(2))
	assert.Equal(t, "☠️ Fail! You are one step closer to Death.", deathSaveResult(9))
}

func TestRollStatDropsLowestDie(t *testing.T) {
	// Dice land as 6, 1, 4, 3; the 1 is dropped
	rolls := []int{5, 0, 3, 2}
	i := 0
	intn := func(n int) int {
		v := rolls[i]
		i++
		return v
	}

	assert.Equal(t, 13, rollStat(intn))
}

func TestRollStatBounds(t *testing.T) {
	low := func(int) int { return 0 }
	assert.Equal(t, 3, rollStat(low))

	high := func(n int) int { return n - 1 }
	assert.Equal(t, 18, rollStat(high))
}

func TestRollStatBlockMeetsMinimum(t *testing.T) {
	high := func(n int) int { return n - 1 }

	stats, attempts := rollStatBlock(high, statBlockMinTotal, statBlockMaxAttempts)
	require.Len(t, stats, 6)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 108, sumStats(stats))
}

func TestRollStatBlockGivesUpAfterMaxAttempts(t *testing.T) {
	low := func(int) int { return 0 }

	stats, attempts := rollStatBlock(low, statBlockMinTotal, 25)
	require.Len(t, stats, 6)
	assert.Equal(t, 25, attempts)
	assert.Equal(t, 18, sumStats(stats))
}

func TestRollTablesNotEmpty(t *testing.T) {
	assert.Len(t, alignments, 9)
	assert.Len(t, classes, 13)
	assert.NotEmpty(t, races)
}
