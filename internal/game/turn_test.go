package game

import (
	"testing"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnAdvancesTheCalendar(t *testing.T) {
	w := newTestWorld(t)
	o := newTestOrchestrator(1)
	w.Empires[1].Submitted = true
	w.Empires[2].Submitted = true

	next := generate(t, o, w, nil)

	assert.Equal(t, StartingYear+1, next.TurnYear)
	for _, empire := range next.Empires {
		assert.False(t, empire.Submitted)
		assert.Equal(t, next.TurnYear, empire.TurnYear)
	}
}

func TestTurnLeavesTheInputWorldUntouched(t *testing.T) {
	w := newTestWorld(t)
	o := newTestOrchestrator(1)

	before, err := w.Snapshot()
	require.NoError(t, err)

	generate(t, o, w, nil)

	after, err := w.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTurnGenerationIsReplayable(t *testing.T) {
	w := newTestWorld(t)
	o := newTestOrchestrator(987654321)

	addArmedFleet(t, w, 1, Position{X: 50, Y: 10}, 2)

	first := generate(t, o, w, nil)
	second := generate(t, o, w, nil)

	left, err := first.Snapshot()
	require.NoError(t, err)
	right, err := second.Snapshot()
	require.NoError(t, err)

	// Same world, same commands, same seed: byte-identical
	// outcome.
	assert.Equal(t, left, right)
}

func TestTurnRunsTheEconomy(t *testing.T) {
	w := newTestWorld(t)
	o := newTestOrchestrator(1)

	next := generate(t, o, w, nil)

	// 100 000 colonists on an ideal world grow by 15%.
	assert.Equal(t, 115000, next.Stars["Alkaid"].Colonists)
}

func TestExhaustedBudgetRollsTheTurnBack(t *testing.T) {
	w := newTestWorld(t)
	o := NewOrchestrator(model.DefaultCatalog(), 1, almostInstantly, nopLogger{})

	next, err := o.GenerateTurn(w, nil)

	assert.ErrorIs(t, err, ErrTurnBudgetExceeded)
	assert.Same(t, w, next)
	assert.Equal(t, StartingYear, w.TurnYear)

	// The players are told why nothing happened.
	for _, empire := range w.Empires {
		require.NotEmpty(t, empire.Messages)
		assert.Contains(t, empire.Messages[0].Text, "rolled back")
	}
}

func TestInvariantCheckCatchesNegativeStockpiles(t *testing.T) {
	w := newTestWorld(t)
	w.Stars["Alkaid"].ResourcesOnHand.Ironium = -5

	assert.Error(t, checkInvariants(w))
}

func TestInvariantCheckCatchesOrphanedOwnership(t *testing.T) {
	w := newTestWorld(t)
	w.Stars["Alkaid"].Colonists = 0

	assert.Error(t, checkInvariants(w))
}

func TestInvariantCheckAcceptsAHealthyWorld(t *testing.T) {
	w := newTestWorld(t)

	assert.NoError(t, checkInvariants(w))
}

func TestRejectedCommandReachesItsEmpire(t *testing.T) {
	w := newTestWorld(t)
	o := newTestOrchestrator(1)

	commands := map[int][]Command{
		1: {&ResearchCommand{Budget: 500, Priority: TechLevel{Energy: 1}}},
	}

	next := generate(t, o, w, commands)

	empire := next.Empires[1]
	found := false
	for _, message := range empire.Messages {
		if message.Kind == InvalidCommandMessage {
			found = true
		}
	}
	assert.True(t, found)
}
