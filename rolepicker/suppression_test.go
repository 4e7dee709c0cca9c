package rolepicker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuppressionConsumeExactlyOnce(t *testing.T) {
	set := NewSuppressionSet()

	set.Mark("user", "message", "🎮")

	assert.True(t, set.Consume("user", "message", "🎮"))
	assert.False(t, set.Consume("user", "message", "🎮"))
	assert.Equal(t, 0, set.Len())
}

func TestSuppressionKeyedByAllThreeFields(t *testing.T) {
	set := NewSuppressionSet()

	set.Mark("user", "message", "🎮")

	assert.False(t, set.Consume("other", "message", "🎮"))
	assert.False(t, set.Consume("user", "other", "🎮"))
	assert.False(t, set.Consume("user", "message", "🍕"))
	assert.True(t, set.Consume("user", "message", "🎮"))
}

func TestSuppressionConcurrentConsume(t *testing.T) {
	set := NewSuppressionSet()
	set.Mark("user", "message", "🎮")

	const workers = 16
	results := make(chan bool, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- set.Consume("user", "message", "🎮")
		}()
	}
	wg.Wait()
	close(results)

	consumed := 0
	for ok := range results {
		if ok {
			consumed++
		}
	}

	assert.Equal(t, 1, consumed)
}
