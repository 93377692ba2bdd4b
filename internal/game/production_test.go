package game

import (
	"testing"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthAtLowCapacity(t *testing.T) {
	race := model.Humanoid()

	growth := CalculateGrowth(10000, 1000000, race, 1.0)

	assert.Equal(t, 1500, growth)
}

func TestGrowthOvercrowded(t *testing.T) {
	race := model.Humanoid()

	growth := CalculateGrowth(2000000, 1000000, race, 1.0)

	assert.Equal(t, -80000, growth)
}

func TestGrowthStopsAtCapacity(t *testing.T) {
	race := model.Humanoid()

	growth := CalculateGrowth(1000000, 1000000, race, 1.0)

	assert.Equal(t, 0, growth)
}

func TestGrowthOnHostileWorld(t *testing.T) {
	race := model.Humanoid()

	// A tenth of the hostility fraction dies every year,
	// regardless of the crowding.
	growth := CalculateGrowth(50000, 250000, race, -0.1)

	assert.Equal(t, -500, growth)
}

func TestGrowthRoundsDownToHundred(t *testing.T) {
	race := model.Humanoid()

	// 1 000 colonists at growth 15 and hab 0.5 yield 75, which
	// rounds down to nothing.
	growth := CalculateGrowth(1000, 1000000, race, 0.5)

	assert.Equal(t, 0, growth)
}

func TestMiningDecaySmallEnoughToFloorToZero(t *testing.T) {
	race := model.Humanoid()

	star := &Star{
		Name:                   "Dubhe",
		Colonists:              300000,
		Mines:                  30,
		IroniumConcentration:   50,
		BoraniumConcentration:  50,
		GermaniumConcentration: 50,
	}

	mineStar(star, race)

	assert.Equal(t, 15, star.ResourcesOnHand.Ironium)
	assert.Equal(t, 50, star.IroniumConcentration)
}

func TestMiningIsBoundByOperableMines(t *testing.T) {
	race := model.Humanoid()

	// 10 000 colonists only operate 10 of the 100 mines.
	star := &Star{
		Name:                   "Dubhe",
		Colonists:              10000,
		Mines:                  100,
		IroniumConcentration:   100,
		BoraniumConcentration:  100,
		GermaniumConcentration: 100,
	}

	mineStar(star, race)

	assert.Equal(t, 10, star.ResourcesOnHand.Ironium)
}

func TestConcentrationNeverDropsBelowOne(t *testing.T) {
	race := model.Humanoid()

	star := &Star{
		Name:                   "Dubhe",
		Colonists:              10000000,
		Mines:                  1000,
		IroniumConcentration:   1,
		BoraniumConcentration:  1,
		GermaniumConcentration: 1,
	}

	for year := 0; year < 10; year++ {
		mineStar(star, race)
	}

	assert.Equal(t, 1, star.IroniumConcentration)
}

func TestResearchLevelUpWithCarryOver(t *testing.T) {
	empire, err := NewEmpire(1, model.Humanoid())
	require.NoError(t, err)

	messages := contributeResearch(empire, 130)

	// Level 0 costs 50; level 1 costs 87 which the remaining 80
	// cannot cover.
	assert.Equal(t, 1, empire.TechLevels[Energy])
	assert.Equal(t, 80, empire.ResearchResources)
	assert.Len(t, messages, 1)
}

func TestResearchMultipleLevelsInOneTurn(t *testing.T) {
	empire, err := NewEmpire(1, model.Humanoid())
	require.NoError(t, err)

	contributeResearch(empire, 50+87+10)

	assert.Equal(t, 2, empire.TechLevels[Energy])
	assert.Equal(t, 10, empire.ResearchResources)
}

func TestManufacturingSpansTurns(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]
	star := w.Stars["Alkaid"]

	star.ResourcesOnHand = Resources{Germanium: 6, Energy: 20}
	star.ProductionQueue = []ProductionOrder{
		{Kind: FactoryOrder, Quantity: 2},
	}
	factories := star.Factories

	manufacture(w, empire, star, model.DefaultCatalog())

	assert.Equal(t, factories+1, star.Factories)
	require.Len(t, star.ProductionQueue, 1)
	assert.Equal(t, 1, star.ProductionQueue[0].Quantity)
	assert.Equal(t, Resources{Germanium: 2, Energy: 10}, star.ProductionQueue[0].Allocated)
	assert.Equal(t, Resources{}, star.ResourcesOnHand)
}

func TestOrdinaryOrderBlocksTheQueue(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]
	star := w.Stars["Alkaid"]

	star.ResourcesOnHand = Resources{Energy: 5}
	star.ProductionQueue = []ProductionOrder{
		{Kind: DefenseOrder, Quantity: 1},
		{Kind: MineOrder, Quantity: 1},
	}
	mines := star.Mines

	manufacture(w, empire, star, model.DefaultCatalog())

	// The unaffordable defense blocks the affordable mine.
	assert.Equal(t, mines, star.Mines)
	assert.Len(t, star.ProductionQueue, 2)
}

func TestAutoBuildOrderDoesNotBlockTheQueue(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]
	star := w.Stars["Alkaid"]

	star.ResourcesOnHand = Resources{Energy: 20}
	star.ProductionQueue = []ProductionOrder{
		{Kind: DefenseOrder, Quantity: 1, AutoBuild: true},
		{Kind: MineOrder, Quantity: 1},
	}
	mines := star.Mines

	manufacture(w, empire, star, model.DefaultCatalog())

	assert.Equal(t, mines+1, star.Mines)
	require.Len(t, star.ProductionQueue, 1)
	assert.Equal(t, DefenseOrder, star.ProductionQueue[0].Kind)
	assert.Equal(t, Resources{Energy: 15}, star.ProductionQueue[0].Allocated)
}

func TestShipCompletionJoinsOrbitingFleetOfSameName(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]
	star := w.Stars["Alkaid"]

	var scout *ShipDesign
	for _, design := range empire.Designs {
		scout = design
	}
	cost := scout.Summary.Cost

	star.ResourcesOnHand = cost
	star.ProductionQueue = []ProductionOrder{
		{Kind: ShipOrder, Quantity: 1, Design: scout.Key},
	}

	manufacture(w, empire, star, model.DefaultCatalog())

	// The new scout joined the existing orbiting "Scout" fleet
	// instead of spawning a second one.
	require.Len(t, empire.Fleets, 1)
	for _, fleet := range empire.Fleets {
		assert.Equal(t, 2, fleet.ShipCount())
	}
}

func TestStarUpdateGrowsLowCapacityColony(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]
	star := w.Stars["Alkaid"]

	star.Colonists = 10000
	star.Factories = 0
	star.Mines = 0

	updateStar(w, empire, star, model.DefaultCatalog())

	assert.Equal(t, 11500, star.Colonists)
}

func TestStarUpdateSweepsLeftoversIntoResearch(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]
	star := w.Stars["Alkaid"]

	star.Colonists = 10000
	star.Factories = 0
	star.Mines = 0
	empire.ResearchBudget = 10

	updateStar(w, empire, star, model.DefaultCatalog())

	// 10 resources per year: 1 through the budget, 9 through
	// the leftover sweep.
	assert.Equal(t, 10, empire.ResearchResources)
	assert.Equal(t, 0, star.ResourcesOnHand.Energy)
}

func TestDyingColonyIsAbandoned(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]
	star := w.Stars["Alkaid"]

	// A hostile world with a tiny population dies out.
	star.Gravity = 100
	star.Colonists = 100
	empire.Race.Gravity = model.HabRange{Center: 0, Width: 10}

	updateStar(w, empire, star, model.DefaultCatalog())

	assert.False(t, star.Owned())
	assert.NotContains(t, empire.Stars, "Alkaid")
}
