package data

import (
	"testing"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRejectsAnInvalidEmpire(t *testing.T) {
	queue := NewCommandQueue()

	assert.Error(t, queue.Push(0, nil))
	assert.Error(t, queue.Push(game.MaxEmpireID+1, nil))
}

func TestQueuePreservesTheSubmissionOrder(t *testing.T) {
	queue := NewCommandQueue()

	first := &game.ResearchCommand{Budget: 10}
	second := &game.ResearchCommand{Budget: 20}
	third := &game.ResearchCommand{Budget: 30}

	require.NoError(t, queue.Push(1, []game.Command{first, second}))
	require.NoError(t, queue.Push(1, []game.Command{third}))

	drained := queue.Drain()

	require.Len(t, drained[1], 3)
	assert.Same(t, first, drained[1][0])
	assert.Same(t, second, drained[1][1])
	assert.Same(t, third, drained[1][2])
}

func TestDrainEmptiesTheQueue(t *testing.T) {
	queue := NewCommandQueue()

	require.NoError(t, queue.Push(2, []game.Command{&game.ResearchCommand{Budget: 10}}))

	first := queue.Drain()
	second := queue.Drain()

	assert.Len(t, first[2], 1)
	assert.Empty(t, second)
}
