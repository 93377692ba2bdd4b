package game

import (
	"testing"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addScannerFleet :
// Adds a scout carrying a penetrating scanner for the input
// empire at the input position.
func addScannerFleet(t *testing.T, w *World, empireID int, position Position) *Fleet {
	catalog := model.DefaultCatalog()
	empire := w.Empires[empireID]

	scout := &ShipDesign{
		Key:  empire.NextDesignKey(),
		Name: "Long Eye",
		Hull: "Scout",
		Slots: []ModuleAllocation{
			{Component: "Quick Jump 5", Count: 1},
			{Component: "Rhino Scanner", Count: 1},
		},
	}
	require.NoError(t, scout.UpdateSummary(catalog))
	empire.Designs[scout.Key] = scout

	fleet := &Fleet{
		Key:      empire.NextFleetKey(),
		Name:     scout.Name,
		Position: position,
		Tokens: map[DesignKey]*ShipToken{
			scout.Key: {
				Design:     scout.Key,
				Quantity:   1,
				Armor:      scout.Summary.Armor,
				MaxArmor:   scout.Summary.Armor,
				MaxShields: scout.Summary.Shields,
			},
		},
		Waypoints:       []Waypoint{NoTaskWaypoint(position)},
		FuelAvailable:   scout.Summary.FuelCapacity,
		BattlePlanName:  DefaultBattlePlanName,
		TurnYearCreated: w.TurnYear,
	}
	empire.Fleets[fleet.Key] = fleet

	return fleet
}

func TestOwnedStarsReportInFull(t *testing.T) {
	w := newTestWorld(t)

	updateIntel(w)

	report, ok := w.Empires[1].StarReports["Alkaid"]
	require.True(t, ok)
	assert.Equal(t, ScanOwned, report.Scan)
	assert.Equal(t, 100000, report.Colonists)
	assert.Equal(t, 50, report.Factories)
}

func TestScannerSpotsForeignFleets(t *testing.T) {
	w := newTestWorld(t)

	updateIntel(w)

	// The bat scanner reaches 50 light years; the foreign scout
	// sits 40 away.
	report, ok := w.Empires[1].FleetReports[NewFleetKey(2, 1)]
	require.True(t, ok)
	assert.Equal(t, 2, report.Owner)
	assert.Equal(t, 1, report.ShipCount)
}

func TestRegularScanOnlyRevealsThatAStarExists(t *testing.T) {
	w := newTestWorld(t)

	updateIntel(w)

	report, ok := w.Empires[1].StarReports["Bellatrix"]
	require.True(t, ok)
	assert.Equal(t, ScanInScan, report.Scan)
	assert.Equal(t, 0, report.Colonists)
	assert.Equal(t, 0, report.Gravity)
}

func TestPenetratingScanRevealsTheEnvironment(t *testing.T) {
	w := newTestWorld(t)

	// A penetrating scanner 10 light years from Bellatrix.
	addScannerFleet(t, w, 1, Position{X: 40, Y: 10})

	updateIntel(w)

	report, ok := w.Empires[1].StarReports["Bellatrix"]
	require.True(t, ok)
	assert.Equal(t, ScanDeep, report.Scan)
	assert.Equal(t, 50, report.Gravity)
	assert.Equal(t, 80, report.IroniumConcentration)

	// Infrastructure stays hidden even to a deep scan.
	assert.Equal(t, 0, report.Factories)
}

func TestForeignFleetReportsGoStale(t *testing.T) {
	w := newTestWorld(t)

	// Yesterday's sighting of a fleet that has since left the
	// scanner range.
	foreign := NewFleetKey(2, 1)
	w.Empires[1].FleetReports[foreign] = &FleetReport{Key: foreign, Owner: 2}
	w.Empires[2].Fleets[foreign].Position = Position{X: 190, Y: 10}

	updateIntel(w)

	assert.NotContains(t, w.Empires[1].FleetReports, foreign)
}

func TestOwnFleetReportsAreAlwaysFresh(t *testing.T) {
	w := newTestWorld(t)

	updateIntel(w)

	report, ok := w.Empires[1].FleetReports[NewFleetKey(1, 1)]
	require.True(t, ok)
	assert.Equal(t, w.TurnYear, report.Year)
}

func TestMinefieldVisibilityRebuild(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]

	own := w.AddMinefield(1, Position{X: 100, Y: 100}, model.StandardMine, 500)
	near := w.AddMinefield(2, Position{X: 60, Y: 10}, model.StandardMine, 100)
	far := w.AddMinefield(2, Position{X: 200, Y: 200}, model.StandardMine, 100)

	refreshMinefieldVisibility(w)

	// Own fields are always visible; the near enemy field sits
	// at the edge of the scanner range plus its radius; the far
	// one stays hidden.
	assert.Contains(t, empire.VisibleMinefields, own.Key)
	assert.Contains(t, empire.VisibleMinefields, near.Key)
	assert.NotContains(t, empire.VisibleMinefields, far.Key)
}

func TestSpottedMinefieldSurvivesOneRebuild(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]

	far := w.AddMinefield(2, Position{X: 200, Y: 200}, model.StandardMine, 100)
	empire.SpotMinefield(far.Key)

	refreshMinefieldVisibility(w)
	assert.Contains(t, empire.VisibleMinefields, far.Key)

	// The sighting is not refreshed: the next rebuild drops it.
	refreshMinefieldVisibility(w)
	assert.NotContains(t, empire.VisibleMinefields, far.Key)
}
