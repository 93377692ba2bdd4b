package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeamDamageFadesWithDistance(t *testing.T) {
	lamb := &battleStack{shields: 50, armor: 100}

	// At maximum range a beam retains 90% of its rated power.
	toShields, toArmor := resolveBeam(100, 5.0, 5.0, lamb)

	assert.Equal(t, 50, toShields)
	assert.Equal(t, 40, toArmor)
}

func TestBeamAtPointBlankRange(t *testing.T) {
	lamb := &battleStack{shields: 0, armor: 100}

	toShields, toArmor := resolveBeam(100, 0.0, 5.0, lamb)

	assert.Equal(t, 0, toShields)
	assert.Equal(t, 100, toArmor)
}

func TestShieldsAbsorbBeforeArmor(t *testing.T) {
	lamb := &battleStack{shields: 200, armor: 100}

	toShields, toArmor := resolveBeam(100, 0.0, 5.0, lamb)

	assert.Equal(t, 100, toShields)
	assert.Equal(t, 0, toArmor)
}

func TestNoEngagementBetweenSeparatedFleets(t *testing.T) {
	w := newTestWorld(t)

	assert.Empty(t, FindEngagements(w))
}

func TestNoEngagementWithoutWeapons(t *testing.T) {
	w := newTestWorld(t)

	// Move the scout of the first empire on top of the scout of
	// the second one: nobody is armed, nobody fights.
	empire := w.Empires[1]
	for _, fleet := range empire.Fleets {
		fleet.Position = Position{X: 50, Y: 10}
		fleet.InOrbit = "Bellatrix"
	}

	assert.Empty(t, FindEngagements(w))
}

func TestEngagementFormsWhereHostileFleetsMeet(t *testing.T) {
	w := newTestWorld(t)

	addArmedFleet(t, w, 1, Position{X: 50, Y: 10}, 1)

	engagements := FindEngagements(w)

	require.Len(t, engagements, 1)
	assert.Equal(t, Position{X: 50, Y: 10}, engagements[0].Position)
	assert.Len(t, engagements[0].Fleets, 2)
}

func TestArmedTargetsPreferredOverSupportShips(t *testing.T) {
	w := newTestWorld(t)

	position := Position{X: 30, Y: 30}
	addArmedFleet(t, w, 1, position, 1)
	defender := addArmedFleet(t, w, 2, position, 1)

	// A defenceless scout shares the position with the armed
	// defender.
	scout := w.Empires[2].Fleets[NewFleetKey(2, 1)]
	scout.Position = position
	scout.InOrbit = ""

	engagements := FindEngagements(w)
	require.Len(t, engagements, 1)

	b := newBattle(w, engagements[0], standardBoardSize)
	round := BattleRound{}
	require.True(t, b.selectTargets(&round))

	for _, stack := range b.stacks {
		if stack.owner == 1 {
			require.NotNil(t, stack.target)
			assert.Equal(t, defender.Key, stack.target.fleet.Key)
		}
	}
}

func TestStandardBattleRunsToDestruction(t *testing.T) {
	w := newTestWorld(t)
	rng := rand.New(rand.NewSource(1))

	position := Position{X: 30, Y: 30}
	attacker := addArmedFleet(t, w, 1, position, 3)
	defender := addArmedFleet(t, w, 2, position, 1)

	engine := &StandardBattleEngine{}
	messages := engine.Run(w, FindEngagements(w), rng)

	// Three frigates against one: the lone defender dies and
	// its token is removed from the fleet.
	assert.Empty(t, defender.Tokens)
	assert.Len(t, attacker.Tokens, 1)

	require.Len(t, w.Empires[1].BattleReports, 1)
	require.Len(t, w.Empires[2].BattleReports, 1)
	report := w.Empires[1].BattleReports[0]
	assert.Equal(t, map[int]int{2: 1}, report.Losses)

	// Both sides are told about the battle.
	assert.Len(t, messages, 2)

	// The winner learned the design of the loser.
	intel, ok := w.Empires[1].EmpireReports[2]
	require.True(t, ok)
	assert.NotEmpty(t, intel.KnownDesigns)
}

func TestBattleDamageIsWrittenBackToTheTokens(t *testing.T) {
	w := newTestWorld(t)
	rng := rand.New(rand.NewSource(1))

	position := Position{X: 30, Y: 30}
	attacker := addArmedFleet(t, w, 1, position, 3)
	addArmedFleet(t, w, 2, position, 1)

	engine := &StandardBattleEngine{}
	engine.Run(w, FindEngagements(w), rng)

	// The lone laser of the defender lands one volley of 9
	// before dying, spread over the 135 pooled armor points of
	// the three attackers.
	for _, token := range attacker.Tokens {
		assert.Equal(t, 42, token.Armor)
	}
}

func TestDeepSpaceWreckLeavesSalvage(t *testing.T) {
	w := newTestWorld(t)
	rng := rand.New(rand.NewSource(1))

	position := Position{X: 30, Y: 30}
	addArmedFleet(t, w, 1, position, 3)
	addArmedFleet(t, w, 2, position, 1)

	engine := &StandardBattleEngine{}
	engine.Run(w, FindEngagements(w), rng)

	var salvage *Fleet
	for _, fleet := range w.AllFleets() {
		if fleet.IsSalvage() {
			salvage = fleet
		}
	}

	require.NotNil(t, salvage)
	assert.Equal(t, position, salvage.Position)
	assert.Greater(t, salvage.Cargo.Boranium, 0)
}

func TestWreckOverAStarFeedsItsStockpile(t *testing.T) {
	w := newTestWorld(t)
	rng := rand.New(rand.NewSource(1))

	position := Position{X: 10, Y: 10}
	addArmedFleet(t, w, 1, position, 3)
	addArmedFleet(t, w, 2, position, 1)

	engine := &StandardBattleEngine{}
	engine.Run(w, FindEngagements(w), rng)

	// The minerals of the wreck land on Alkaid instead of
	// floating as salvage.
	assert.Greater(t, w.Stars["Alkaid"].ResourcesOnHand.Boranium, 0)
	for _, fleet := range w.AllFleets() {
		assert.False(t, fleet.IsSalvage())
	}
}

func TestSpeedClassMapping(t *testing.T) {
	assert.Equal(t, 0, speedClassOf(0.5))
	assert.Equal(t, 2, speedClassOf(1.0))
	assert.Equal(t, 8, speedClassOf(2.5))
	assert.Equal(t, 8, speedClassOf(3.0))
}
