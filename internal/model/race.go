package model

import "math"

// HabRange :
// Describes the tolerance of a race along a single axis of the
// environment of a star (gravity, temperature or radiation).
//
// The `Center` defines the ideal value for the race, expressed
// in the `0..100` environment scale.
//
// The `Width` defines the half-width of the habitable band on
// each side of the center.
//
// The `Immune` marks a race that simply ignores this axis: the
// axis always counts as ideal.
type HabRange struct {
	Center int  `json:"center"`
	Width  int  `json:"width"`
	Immune bool `json:"immune,omitempty"`
}

// Race :
// Describes the immutable properties of a race playing in a
// game. The race drives the economy (colonists needed for one
// resource, factory and mine throughput and operability), the
// population dynamics (growth rate, habitability ranges) and a
// set of traits altering specific engine rules.
//
// The `Name` and `PluralName` identify the race in messages.
//
// The `GrowthRate` defines the maximum yearly growth of the
// population in percent, applied on ideal worlds at low
// capacity.
//
// The `ColonistsPerResource` defines how many colonists are
// needed to produce one resource per year.
//
// The `FactoryProduction` defines how many resources ten
// factories produce per year while `OperableFactories` defines
// how many factories ten thousand colonists can operate. The
// `MineProduction` and `OperableMines` fill the same purpose
// for mines, with the production expressed in kT of minerals
// for ten mines at full concentration.
//
// The `Gravity`, `Temperature` and `Radiation` describe the
// habitability bands of the race.
//
// The `HyperExpansion` marks the primary trait doubling the
// growth rate at the price of halved maximum population.
//
// The `ImprovedFuelEfficiency` reduces all fuel consumption
// by 15%.
//
// The `CheapEngines` makes engines cheaper but introduces a
// 1-in-10 chance that they fail to start above warp 6.
//
// The `NoRamScoopEngines` forbids the use of fuel-generating
// engines when designing ships.
//
// The `OnlyLeftoverResearch` routes only the manufacturing
// leftovers to research instead of a dedicated budget share.
type Race struct {
	Name       string `json:"name"`
	PluralName string `json:"plural_name"`

	GrowthRate           int `json:"growth_rate"`
	ColonistsPerResource int `json:"colonists_per_resource"`
	FactoryProduction    int `json:"factory_production"`
	OperableFactories    int `json:"operable_factories"`
	MineProduction       int `json:"mine_production"`
	OperableMines        int `json:"operable_mines"`

	Gravity     HabRange `json:"gravity"`
	Temperature HabRange `json:"temperature"`
	Radiation   HabRange `json:"radiation"`

	HyperExpansion         bool `json:"hyper_expansion,omitempty"`
	ImprovedFuelEfficiency bool `json:"improved_fuel_efficiency,omitempty"`
	CheapEngines           bool `json:"cheap_engines,omitempty"`
	NoRamScoopEngines      bool `json:"no_ram_scoop_engines,omitempty"`
	OnlyLeftoverResearch   bool `json:"only_leftover_research,omitempty"`
}

// habCloseness :
// Computes the closeness of a single environment value to the
// ideal of the input range. The result is `1` at the center,
// decreases linearly to `0` at the edge of the band and is
// clamped at `-0.15` outside of it, which represents a hostile
// axis slowly killing the colonists.
//
// The `value` defines the environment value of the star.
//
// Returns the closeness in `[-0.15, 1]`.
func (r HabRange) habCloseness(value int) float64 {
	if r.Immune {
		return 1.0
	}

	distance := math.Abs(float64(value - r.Center))
	closeness := 1.0 - distance/float64(r.Width)

	if closeness < -0.15 {
		closeness = -0.15
	}

	return closeness
}

// HabValue :
// Computes the habitability of a star for this race from its
// environment triple. The result lies in `[-1, 1]`: positive
// values allow growth, negative values kill colonists.
// When all axes are habitable the value is the product of the
// per-axis closenesses; as soon as one axis is hostile the
// most hostile axis wins.
//
// The `gravity`, `temperature` and `radiation` describe the
// environment of the star in the `0..100` scale.
//
// Returns the habitability value.
func (r Race) HabValue(gravity int, temperature int, radiation int) float64 {
	axes := []float64{
		r.Gravity.habCloseness(gravity),
		r.Temperature.habCloseness(temperature),
		r.Radiation.habCloseness(radiation),
	}

	worst := axes[0]
	product := 1.0
	for _, axis := range axes {
		if axis < worst {
			worst = axis
		}
		product *= axis
	}

	if worst < 0 {
		return math.Max(worst, -1.0)
	}

	return math.Min(product, 1.0)
}

// Humanoid :
// Provides the balanced reference race used as a default when
// creating games and in tests.
//
// Returns the race.
func Humanoid() Race {
	return Race{
		Name:       "Humanoid",
		PluralName: "Humanoids",

		GrowthRate:           15,
		ColonistsPerResource: 1000,
		FactoryProduction:    10,
		OperableFactories:    10,
		MineProduction:       10,
		OperableMines:        10,

		Gravity:     HabRange{Center: 50, Width: 35},
		Temperature: HabRange{Center: 50, Width: 35},
		Radiation:   HabRange{Center: 50, Width: 35},
	}
}

// Silicanoid :
// Provides an all-immune hyper-expansion race with efficient
// factories, used to exercise the trait paths of the engine.
//
// Returns the race.
func Silicanoid() Race {
	return Race{
		Name:       "Silicanoid",
		PluralName: "Silicanoids",

		GrowthRate:           6,
		ColonistsPerResource: 800,
		FactoryProduction:    12,
		OperableFactories:    12,
		MineProduction:       10,
		OperableMines:        10,

		Gravity:     HabRange{Immune: true},
		Temperature: HabRange{Immune: true},
		Radiation:   HabRange{Immune: true},

		HyperExpansion:         true,
		ImprovedFuelEfficiency: true,
	}
}
