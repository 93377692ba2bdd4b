package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRejectsInvalidPlayerCounts(t *testing.T) {
	_, err := Generate(0, SmallUniverse, 1)
	assert.ErrorIs(t, err, ErrInvalidEmpireID)

	_, err = Generate(MaxEmpireID+1, SmallUniverse, 1)
	assert.ErrorIs(t, err, ErrInvalidEmpireID)
}

func TestGenerateBuildsAPlayableGalaxy(t *testing.T) {
	w, err := Generate(2, SmallUniverse, 42)
	require.NoError(t, err)

	assert.Len(t, w.Stars, 24)
	assert.Len(t, w.Empires, 2)
	assert.Equal(t, StartingYear, w.TurnYear)

	for _, id := range w.SortedEmpireIDs() {
		empire := w.Empires[id]

		require.Len(t, empire.Stars, 1)
		home := w.Stars[empire.SortedStarNames()[0]]

		assert.Equal(t, id, home.Owner)
		assert.Equal(t, 25000, home.Colonists)
		assert.Equal(t, 10, home.Factories)
		assert.Equal(t, 10, home.Mines)

		// The homeworld is ideal for its settlers.
		assert.InDelta(t, 1.0, empire.Race.HabValue(home.Gravity, home.Temperature, home.Radiation), 1e-9)

		// One scout in orbit, two starting designs.
		assert.Len(t, empire.Fleets, 1)
		assert.Len(t, empire.Designs, 2)
		for _, fleet := range empire.Fleets {
			assert.Equal(t, home.Name, fleet.InOrbit)
		}
	}
}

func TestHomeworldsDoNotCollide(t *testing.T) {
	w, err := Generate(4, SmallUniverse, 7)
	require.NoError(t, err)

	owners := make(map[string]int)
	for _, id := range w.SortedEmpireIDs() {
		for _, name := range w.Empires[id].SortedStarNames() {
			owners[name] = id
		}
	}

	assert.Len(t, owners, 4)
}

func TestGenerationIsDeterministic(t *testing.T) {
	first, err := Generate(3, MediumUniverse, 2026)
	require.NoError(t, err)
	second, err := Generate(3, MediumUniverse, 2026)
	require.NoError(t, err)

	left, err := first.Snapshot()
	require.NoError(t, err)
	right, err := second.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, left, right)
}

func TestStarsKeepTheirDistance(t *testing.T) {
	w, err := Generate(1, SmallUniverse, 3)
	require.NoError(t, err)

	names := w.SortedStarNames()
	for i, a := range names {
		for _, b := range names[i+1:] {
			distance := w.Stars[a].Position.DistanceTo(w.Stars[b].Position)
			assert.GreaterOrEqual(t, distance, 10.0)
		}
	}
}

func TestGeneratedWorldSurvivesASnapshotRoundTrip(t *testing.T) {
	w, err := Generate(2, SmallUniverse, 11)
	require.NoError(t, err)

	next := generate(t, newTestOrchestrator(11), w, nil)

	assert.Equal(t, StartingYear+1, next.TurnYear)
}
