package game

import (
	"testing"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addBomberFleet :
// Adds a fleet of mini bombers in orbit of the input star for
// the input empire.
func addBomberFleet(t *testing.T, w *World, empireID int, star *Star, quantity int) *Fleet {
	catalog := model.DefaultCatalog()
	empire := w.Empires[empireID]

	bomber := &ShipDesign{
		Key:  empire.NextDesignKey(),
		Name: "Mini Bomber",
		Hull: "Mini Bomber",
		Slots: []ModuleAllocation{
			{Component: "Quick Jump 5", Count: 1},
			{Component: "Lady Finger Bomb", Count: 2},
		},
	}
	require.NoError(t, bomber.UpdateSummary(catalog))
	empire.Designs[bomber.Key] = bomber

	fleet := &Fleet{
		Key:      empire.NextFleetKey(),
		Name:     bomber.Name,
		Position: star.Position,
		InOrbit:  star.Name,
		Tokens: map[DesignKey]*ShipToken{
			bomber.Key: {
				Design:     bomber.Key,
				Quantity:   quantity,
				Armor:      bomber.Summary.Armor,
				MaxArmor:   bomber.Summary.Armor,
				MaxShields: bomber.Summary.Shields,
			},
		},
		Waypoints:       []Waypoint{NoTaskWaypoint(star.Position)},
		FuelAvailable:   bomber.Summary.FuelCapacity,
		BattlePlanName:  DefaultBattlePlanName,
		TurnYearCreated: w.TurnYear,
	}
	empire.Fleets[fleet.Key] = fleet

	return fleet
}

// addColonyShip :
// Adds a colony ship fleet of the input empire at the input
// position, loaded with the input kilotons of colonists.
func addColonyShip(t *testing.T, w *World, empireID int, position Position, colonists int) *Fleet {
	catalog := model.DefaultCatalog()
	empire := w.Empires[empireID]

	ship := &ShipDesign{
		Key:  empire.NextDesignKey(),
		Name: "Santa Maria",
		Hull: "Colony Ship",
		Slots: []ModuleAllocation{
			{Component: "Quick Jump 5", Count: 1},
			{Component: "Colonization Module", Count: 1},
		},
	}
	require.NoError(t, ship.UpdateSummary(catalog))
	empire.Designs[ship.Key] = ship

	fleet := &Fleet{
		Key:      empire.NextFleetKey(),
		Name:     ship.Name,
		Position: position,
		Tokens: map[DesignKey]*ShipToken{
			ship.Key: {
				Design:     ship.Key,
				Quantity:   1,
				Armor:      ship.Summary.Armor,
				MaxArmor:   ship.Summary.Armor,
				MaxShields: ship.Summary.Shields,
			},
		},
		Cargo:           Cargo{Colonists: colonists},
		Waypoints:       []Waypoint{NoTaskWaypoint(position)},
		FuelAvailable:   ship.Summary.FuelCapacity,
		BattlePlanName:  DefaultBattlePlanName,
		TurnYearCreated: w.TurnYear,
	}
	empire.Fleets[fleet.Key] = fleet

	if star := w.StarAt(position); star != nil {
		fleet.InOrbit = star.Name
	}

	return fleet
}

func TestBombingErodesAHostileColony(t *testing.T) {
	w := newTestWorld(t)
	star := w.Stars["Bellatrix"]
	star.Colonists = 10000
	star.Defenses = 0

	addBomberFleet(t, w, 1, star, 1)

	messages := bombStars(w)

	// Two lady fingers kill 1.2% of the population.
	assert.Equal(t, 10000-120, star.Colonists)
	require.Len(t, messages, 1)
	assert.Equal(t, 1, messages[0].Audience)
	assert.NotEmpty(t, w.Empires[2].Messages)
}

func TestDefensesAbsorbBombing(t *testing.T) {
	w := newTestWorld(t)
	star := w.Stars["Bellatrix"]
	star.Colonists = 10000
	star.Defenses = 50

	addBomberFleet(t, w, 1, star, 1)

	bombStars(w)

	// Half the defenses halve the kill rate.
	assert.Equal(t, 10000-60, star.Colonists)
}

func TestBombingCanWipeOutAColony(t *testing.T) {
	w := newTestWorld(t)
	star := w.Stars["Bellatrix"]
	star.Colonists = 80
	star.Defenses = 0

	addBomberFleet(t, w, 1, star, 100)

	bombStars(w)

	assert.False(t, star.Owned())
	assert.Equal(t, 0, star.Factories)
	assert.NotContains(t, w.Empires[2].Stars, "Bellatrix")
}

func TestBombersSpareOwnAndFriendlyStars(t *testing.T) {
	w := newTestWorld(t)
	star := w.Stars["Bellatrix"]
	colonists := star.Colonists

	w.Empires[1].Relations[2] = RelationFriend
	addBomberFleet(t, w, 1, star, 1)

	messages := bombStars(w)

	assert.Equal(t, colonists, star.Colonists)
	assert.Empty(t, messages)
}

func TestColonisationClaimsAnUnownedStar(t *testing.T) {
	w := newTestWorld(t)
	star := w.Stars["Bellatrix"]
	star.Abandon()
	delete(w.Empires[2].Stars, star.Name)

	fleet := addColonyShip(t, w, 1, star.Position, 25)
	fleet.Cargo.Ironium = 30
	fleet.Waypoints[0].Task = Task{Kind: ColoniseTask}

	messages := coloniseAndInvade(w)

	assert.Equal(t, 1, star.Owner)
	assert.Equal(t, 2500, star.Colonists)
	assert.Equal(t, 30, star.ResourcesOnHand.Ironium)
	assert.Contains(t, w.Empires[1].Stars, star.Name)

	// The landing consumed both the cargo and the ship.
	assert.Equal(t, Cargo{}, fleet.Cargo)
	assert.Empty(t, fleet.Tokens)

	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Text, "founded a new colony")
}

func TestColonisingWithTheLastShipDisbandsTheFleet(t *testing.T) {
	w := newTestWorld(t)
	o := newTestOrchestrator(1)

	star := w.Stars["Bellatrix"]
	star.Abandon()
	delete(w.Empires[2].Stars, star.Name)
	delete(w.Empires[2].Fleets, NewFleetKey(2, 1))

	fleet := addColonyShip(t, w, 1, star.Position, 25)
	fleet.Waypoints[0].Task = Task{Kind: ColoniseTask}

	next := generate(t, o, w, nil)

	landed := next.Stars["Bellatrix"]
	assert.Equal(t, 1, landed.Owner)
	assert.Equal(t, 2500, landed.Colonists)
	assert.NotContains(t, next.Empires[1].Fleets, fleet.Key)

	founded := false
	for _, message := range next.Empires[1].Messages {
		if message.Kind == ColonyMessage {
			founded = true
		}
	}
	assert.True(t, founded)
}

func TestColonisationRejectsAnInhabitedStar(t *testing.T) {
	w := newTestWorld(t)
	star := w.Stars["Bellatrix"]

	fleet := addColonyShip(t, w, 1, star.Position, 25)
	fleet.Waypoints[0].Task = Task{Kind: ColoniseTask}

	messages := coloniseAndInvade(w)

	assert.Equal(t, 2, star.Owner)
	assert.Equal(t, NoTask, fleet.Waypoints[0].Task.Kind)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Text, "already inhabited")
}

func TestColonisationRequiresColonists(t *testing.T) {
	w := newTestWorld(t)
	star := w.Stars["Bellatrix"]
	star.Abandon()
	delete(w.Empires[2].Stars, star.Name)

	fleet := addColonyShip(t, w, 1, star.Position, 0)
	fleet.Waypoints[0].Task = Task{Kind: ColoniseTask}

	messages := coloniseAndInvade(w)

	assert.False(t, star.Owned())
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Text, "carries no colonists")
}

func TestSuccessfulInvasionTransfersOwnership(t *testing.T) {
	w := newTestWorld(t)
	star := w.Stars["Bellatrix"]
	star.Colonists = 10000

	fleet := addColonyShip(t, w, 1, star.Position, 100)
	fleet.Waypoints[0].Task = Task{Kind: InvadeTask}

	coloniseAndInvade(w)

	// 10 000 invaders at strength 11 000 against 10 000
	// defenders: the invaders take the star with 1 818
	// survivors.
	assert.Equal(t, 1, star.Owner)
	assert.Equal(t, 1818, star.Colonists)
	assert.Contains(t, w.Empires[1].Stars, star.Name)
	assert.NotContains(t, w.Empires[2].Stars, star.Name)
	assert.Equal(t, 0, fleet.Cargo.Colonists)
}

func TestRepelledInvasionLeavesOwnershipAlone(t *testing.T) {
	w := newTestWorld(t)
	star := w.Stars["Bellatrix"]
	star.Colonists = 10000

	fleet := addColonyShip(t, w, 1, star.Position, 10)
	fleet.Waypoints[0].Task = Task{Kind: InvadeTask}

	messages := coloniseAndInvade(w)

	// 1 000 invaders at strength 1 100 die against 10 000
	// defenders, who lose colonists in proportion.
	assert.Equal(t, 2, star.Owner)
	assert.InDelta(t, 9010, star.Colonists, 1)
	assert.Equal(t, 0, fleet.Cargo.Colonists)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Text, "repelled")
}
