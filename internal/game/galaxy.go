package game

import (
	"fmt"
	"math/rand"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
)

// UniverseSize :
// Describes the extent of a generated galaxy.
type UniverseSize string

// Possible values for the size of a galaxy.
const (
	SmallUniverse  UniverseSize = "small"
	MediumUniverse UniverseSize = "medium"
	LargeUniverse  UniverseSize = "large"
)

// starNames :
// Names handed out to generated stars, in order. Galaxies
// larger than the list fall back to numbered names.
var starNames = []string{
	"Acamar", "Achernar", "Adhara", "Aldebaran", "Algol", "Alkaid",
	"Altair", "Antares", "Arcturus", "Atria", "Bellatrix", "Betelgeuse",
	"Canopus", "Capella", "Castor", "Deneb", "Dubhe", "Electra",
	"Fomalhaut", "Hadar", "Izar", "Kastra", "Kochab", "Markab",
	"Megrez", "Merope", "Mimosa", "Mintaka", "Mirach", "Nashira",
	"Nunki", "Orion", "Phecda", "Polaris", "Pollux", "Procyon",
	"Rigel", "Sabik", "Sargas", "Scheat", "Shaula", "Sirius",
	"Spica", "Talitha", "Tarazed", "Thuban", "Vega", "Wezen",
	"Yildun", "Zosma",
}

// universeDimensions :
// Maps a universe size to its side in light-years and its
// star count.
//
// The `size` defines the size to map.
//
// Returns the side and the star count.
func universeDimensions(size UniverseSize) (int, int) {
	switch size {
	case SmallUniverse:
		return 200, 24
	case LargeUniverse:
		return 800, 48
	default:
		return 400, 32
	}
}

// Generate :
// Builds a fresh world: a galaxy of stars, one homeworld per
// player with its starting infrastructure, and the starting
// designs and scout fleet of every empire. The input seed
// fully determines the output.
//
// The `playerCount` defines how many empires to create, in
// the `1..127` range.
//
// The `size` defines the extent of the galaxy.
//
// The `seed` drives the random layout.
//
// Returns the world along with any error.
func Generate(playerCount int, size UniverseSize, seed int64) (*World, error) {
	if playerCount < 1 || playerCount > MaxEmpireID {
		return nil, ErrInvalidEmpireID
	}

	rng := rand.New(rand.NewSource(seed))
	side, starCount := universeDimensions(size)
	if starCount < playerCount {
		starCount = playerCount
	}

	w := NewWorld()
	catalog := model.DefaultCatalog()

	// Lay out the stars, keeping a minimal distance between
	// any two of them so that homeworlds do not touch.
	positions := make([]Position, 0, starCount)
	for len(positions) < starCount {
		candidate := Position{
			X: rng.Intn(side),
			Y: rng.Intn(side),
		}

		tooClose := false
		for _, existing := range positions {
			if existing.DistanceTo(candidate) < 10 {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}

		positions = append(positions, candidate)
	}

	for id, position := range positions {
		name := fmt.Sprintf("Star %d", id+1)
		if id < len(starNames) {
			name = starNames[id]
		}

		star := &Star{
			Name:     name,
			Position: position,

			Gravity:     1 + rng.Intn(100),
			Temperature: 1 + rng.Intn(100),
			Radiation:   1 + rng.Intn(100),

			IroniumConcentration:   1 + rng.Intn(100),
			BoraniumConcentration:  1 + rng.Intn(100),
			GermaniumConcentration: 1 + rng.Intn(100),

			SpectralClass: string("OBAFGKM"[rng.Intn(7)]),
		}
		star.OriginalGravity = star.Gravity
		star.OriginalTemperature = star.Temperature
		star.OriginalRadiation = star.Radiation

		w.Stars[star.Name] = star
	}

	names := w.SortedStarNames()

	for player := 1; player <= playerCount; player++ {
		empire, err := NewEmpire(player, model.Humanoid())
		if err != nil {
			return nil, err
		}

		// Each empire gets a distinct homeworld, terraformed to
		// the ideal of its race.
		home := w.Stars[names[(player-1)*len(names)/playerCount]]
		home.Gravity = empire.Race.Gravity.Center
		home.Temperature = empire.Race.Temperature.Center
		home.Radiation = empire.Race.Radiation.Center
		home.OriginalGravity = home.Gravity
		home.OriginalTemperature = home.Temperature
		home.OriginalRadiation = home.Radiation

		home.Owner = empire.ID
		home.Colonists = 25000
		home.Factories = 10
		home.Mines = 10
		home.ResourcesOnHand = Resources{Ironium: 50, Boranium: 25, Germanium: 50}
		empire.Stars[home.Name] = true

		scout := &ShipDesign{
			Key:  empire.NextDesignKey(),
			Name: "Scout",
			Hull: "Scout",
			Slots: []ModuleAllocation{
				{Component: "Quick Jump 5", Count: 1},
				{Component: "Bat Scanner", Count: 1},
				{Component: "Fuel Tank", Count: 1},
			},
		}
		if err := scout.UpdateSummary(catalog); err != nil {
			return nil, err
		}
		empire.Designs[scout.Key] = scout

		colonyShip := &ShipDesign{
			Key:  empire.NextDesignKey(),
			Name: "Santa Maria",
			Hull: "Colony Ship",
			Slots: []ModuleAllocation{
				{Component: "Quick Jump 5", Count: 1},
				{Component: "Colonization Module", Count: 1},
			},
		}
		if err := colonyShip.UpdateSummary(catalog); err != nil {
			return nil, err
		}
		empire.Designs[colonyShip.Key] = colonyShip

		fleet := &Fleet{
			Key:      empire.NextFleetKey(),
			Name:     scout.Name,
			Position: home.Position,
			InOrbit:  home.Name,
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
			Waypoints:       []Waypoint{NoTaskWaypoint(home.Position)},
			FuelAvailable:   scout.Summary.FuelCapacity,
			BattlePlanName:  DefaultBattlePlanName,
			TurnYearCreated: w.TurnYear,
		}
		empire.Fleets[fleet.Key] = fleet

		w.Empires[empire.ID] = empire
	}

	return w, nil
}
