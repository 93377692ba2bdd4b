package game

import (
	"testing"
	"time"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
	"github.com/stellarshenson/stars-ultranova-web-sub000/pkg/logger"
	"github.com/stretchr/testify/require"
)

// nopLogger :
// Logger swallowing everything, used by the tests.
type nopLogger struct{}

func (l nopLogger) Trace(level logger.Severity, module string, message string) {}

// newTestOrchestrator :
// Builds an orchestrator with a fixed seed and no budget.
func newTestOrchestrator(seed int64) *Orchestrator {
	return NewOrchestrator(model.DefaultCatalog(), seed, 0, nopLogger{})
}

// newTestWorld :
// Builds a small two-empire world: each empire owns one star
// and an orbiting scout fleet, the stars sit forty light
// years apart.
func newTestWorld(t *testing.T) *World {
	catalog := model.DefaultCatalog()
	w := NewWorld()

	positions := []Position{{X: 10, Y: 10}, {X: 50, Y: 10}}
	names := []string{"Alkaid", "Bellatrix"}

	for id := 1; id <= 2; id++ {
		empire, err := NewEmpire(id, model.Humanoid())
		require.NoError(t, err)

		star := &Star{
			Name:     names[id-1],
			Position: positions[id-1],

			Gravity:     50,
			Temperature: 50,
			Radiation:   50,

			OriginalGravity:     50,
			OriginalTemperature: 50,
			OriginalRadiation:   50,

			IroniumConcentration:   80,
			BoraniumConcentration:  80,
			GermaniumConcentration: 80,

			Colonists: 100000,
			Factories: 50,
			Mines:     50,

			Owner: id,
		}
		w.Stars[star.Name] = star
		empire.Stars[star.Name] = true

		scout := &ShipDesign{
			Key:  empire.NextDesignKey(),
			Name: "Scout",
			Hull: "Scout",
			Slots: []ModuleAllocation{
				{Component: "Quick Jump 5", Count: 1},
				{Component: "Bat Scanner", Count: 1},
			},
		}
		require.NoError(t, scout.UpdateSummary(catalog))
		empire.Designs[scout.Key] = scout

		fleet := &Fleet{
			Key:      empire.NextFleetKey(),
			Name:     scout.Name,
			Position: star.Position,
			InOrbit:  star.Name,
			Tokens: map[DesignKey]*ShipToken{
				scout.Key: {
					Design:     scout.Key,
					Quantity:   1,
					Shields:    scout.Summary.Shields,
					Armor:      scout.Summary.Armor,
					MaxShields: scout.Summary.Shields,
					MaxArmor:   scout.Summary.Armor,
				},
			},
			Waypoints:       []Waypoint{NoTaskWaypoint(star.Position)},
			FuelAvailable:   scout.Summary.FuelCapacity,
			BattlePlanName:  DefaultBattlePlanName,
			TurnYearCreated: w.TurnYear,
		}
		empire.Fleets[fleet.Key] = fleet

		w.Empires[id] = empire
	}

	return w
}

// addArmedFleet :
// Adds a frigate fleet to the input empire at the input
// position, returning the fleet.
func addArmedFleet(t *testing.T, w *World, empireID int, position Position, quantity int) *Fleet {
	catalog := model.DefaultCatalog()
	empire, err := w.Empire(empireID)
	require.NoError(t, err)

	frigate := &ShipDesign{
		Key:  empire.NextDesignKey(),
		Name: "Stalwart Defender",
		Hull: "Frigate",
		Slots: []ModuleAllocation{
			{Component: "Quick Jump 5", Count: 1},
			{Component: "Laser", Count: 1},
		},
	}
	require.NoError(t, frigate.UpdateSummary(catalog))
	empire.Designs[frigate.Key] = frigate

	fleet := &Fleet{
		Key:      empire.NextFleetKey(),
		Name:     frigate.Name,
		Position: position,
		Tokens: map[DesignKey]*ShipToken{
			frigate.Key: {
				Design:     frigate.Key,
				Quantity:   quantity,
				Shields:    frigate.Summary.Shields,
				Armor:      frigate.Summary.Armor,
				MaxShields: frigate.Summary.Shields,
				MaxArmor:   frigate.Summary.Armor,
			},
		},
		Waypoints:       []Waypoint{NoTaskWaypoint(position)},
		FuelAvailable:   frigate.Summary.FuelCapacity,
		BattlePlanName:  DefaultBattlePlanName,
		TurnYearCreated: w.TurnYear,
	}
	empire.Fleets[fleet.Key] = fleet

	if star := w.StarAt(position); star != nil {
		fleet.InOrbit = star.Name
	}

	return fleet
}

// generate :
// Runs one turn against the input world and requires success.
func generate(t *testing.T, o *Orchestrator, w *World, commands map[int][]Command) *World {
	next, err := o.GenerateTurn(w, commands)
	require.NoError(t, err)
	return next
}

// almostInstantly : Budget small enough to trip on any turn.
const almostInstantly = time.Nanosecond
