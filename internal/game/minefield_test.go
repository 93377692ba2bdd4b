package game

import (
	"testing"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinefieldDecayRoundsUp(t *testing.T) {
	field := NewMinefield(1, Position{X: 10, Y: 10}, model.StandardMine, 1000)

	field.Decay()

	assert.Equal(t, 990, field.Mines)
}

func TestMinefieldDecayAlwaysLosesAtLeastOneMine(t *testing.T) {
	field := NewMinefield(1, Position{X: 10, Y: 10}, model.StandardMine, 50)

	// One percent of 50 is half a mine, which rounds up.
	field.Decay()

	assert.Equal(t, 49, field.Mines)
}

func TestMinefieldRadius(t *testing.T) {
	field := NewMinefield(1, Position{X: 10, Y: 10}, model.StandardMine, 100)

	assert.InDelta(t, 10.0, field.Radius(), 1e-9)
	assert.True(t, field.Contains(Position{X: 15, Y: 10}))
	assert.False(t, field.Contains(Position{X: 25, Y: 10}))
}

func TestLayingMinesInTheSameCellGrowsTheField(t *testing.T) {
	w := NewWorld()

	first := w.AddMinefield(1, Position{X: 11, Y: 12}, model.StandardMine, 100)
	second := w.AddMinefield(1, Position{X: 14, Y: 10}, model.StandardMine, 50)

	assert.Same(t, first, second)
	assert.Equal(t, 150, first.Mines)
	assert.Len(t, w.Minefields, 1)
}

func TestTinyMinefieldsAreSweptAway(t *testing.T) {
	w := newTestWorld(t)
	o := newTestOrchestrator(42)

	w.AddMinefield(1, Position{X: 30, Y: 30}, model.StandardMine, 11)
	w.AddMinefield(1, Position{X: 60, Y: 60}, model.StandardMine, 1000)

	o.firstStep(w)

	// 11 mines decay to 10 which is at the deletion threshold;
	// the large field merely shrinks.
	require.Len(t, w.Minefields, 1)
	for _, field := range w.Minefields {
		assert.Equal(t, 990, field.Mines)
	}
}
