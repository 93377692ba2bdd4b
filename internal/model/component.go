package model

import "fmt"

// ItemType :
// Describes the family a component belongs to. The type of a
// component drives both which hull slots can receive it and
// how its properties are aggregated in a ship design summary.
type ItemType string

// Possible values for the type of a component.
const (
	Engine     ItemType = "engine"
	BeamWeapon ItemType = "beam_weapon"
	Missile    ItemType = "missile"
	Bomb       ItemType = "bomb"
	Scanner    ItemType = "scanner"
	MineLayer  ItemType = "mine_layer"
	Shield     ItemType = "shield"
	Armor      ItemType = "armor"
	Mechanical ItemType = "mechanical"
	Electrical ItemType = "electrical"
	Hull       ItemType = "hull"
)

// MineType :
// Describes the kind of mines laid by a mine layer. The kind
// determines the per-light-year hit chance applied to fleets
// crossing the resulting minefield.
type MineType int

// Possible values for the type of a minefield.
const (
	StandardMine MineType = iota
	HeavyMine
	SpeedBumpMine
)

// Cost :
// Describes the amount of each resource needed to build one
// unit of a component. The energy part measures the industrial
// output to invest while the three minerals are consumed from
// the stockpile of the producing star.
type Cost struct {
	Ironium   int `json:"ironium"`
	Boranium  int `json:"boranium"`
	Germanium int `json:"germanium"`
	Energy    int `json:"energy"`
}

// HullSlot :
// Describes a single module slot of a hull. A slot accepts a
// set of component families and can hold a bounded number of
// items of a single component.
//
// The `Allowed` lists the component types that can be fitted
// in this slot.
//
// The `Max` defines the maximum count of components that the
// slot can hold.
type HullSlot struct {
	Allowed []ItemType `json:"allowed"`
	Max     int        `json:"max"`
}

// Component :
// Describes a single entry of the component catalog. The same
// structure describes engines, weapons, hulls and all other
// families: fields that do not apply to a given family are
// simply left at their zero value. This mirrors the way the
// catalog is presented to the client where every item carries
// the full property sheet.
//
// The `Name` uniquely identifies the component in the catalog.
//
// The `Type` defines the family of the component.
//
// The `Mass` defines the mass in kT of a single item.
//
// The `Cost` defines the construction cost of a single item.
//
// The `FuelUsage` is only relevant for engines and defines the
// fuel consumption table indexed by warp factor, expressed in
// mg of fuel per light-year for a reference mass of 200 kT. A
// negative value indicates that the engine generates fuel at
// this speed (ram-scoop behavior).
//
// The `Power` defines the damage inflicted by one shot of a
// weapon.
//
// The `Range` defines the maximum firing distance of a weapon
// in battle-board squares.
//
// The `Initiative` defines the firing precedence of a weapon
// or the base initiative of a hull. Lower values fire first.
//
// The `Accuracy` defines the base hit probability of a missile
// in the `[0, 1]` range.
//
// The `KillRate` defines the fraction of a star's population
// destroyed per bombing run by one bomb.
//
// The `ScanRange` and `PenScanRange` define the distances at
// which a scanner reports fleets and deep star data.
//
// The `MinesPerYear` defines the laying rate of a mine layer
// and `Mines` its associated mine type.
//
// The `ArmorStrength` and `ShieldStrength` define the defensive
// points contributed by armor plates and shield generators.
//
// The `CargoCapacity` and `FuelCapacity` define the carrying
// abilities contributed by mechanical components or hulls.
//
// The `Colonizer` marks a colonization module.
//
// The `ComputerAccuracy` defines the relative improvement of
// missile accuracy contributed by a battle computer while the
// `Jamming` defines the relative degradation applied to the
// missiles of the opponents.
//
// The `BattleMovement` defines the battle-board speed class
// contributed by an engine.
//
// The `Slots` describes the module layout for hulls.
//
// The `Starbase` marks starbase hulls: fleets built on such a
// hull never move and act as orbital installations.
//
// The `Dock` marks hulls providing an orbital dock, which is
// what allows full refuelling and fast repairs of the fleets
// in orbit.
type Component struct {
	Name string   `json:"name"`
	Type ItemType `json:"type"`
	Mass int      `json:"mass"`
	Cost Cost     `json:"cost"`

	FuelUsage [11]int `json:"fuel_usage,omitempty"`

	Power      int     `json:"power,omitempty"`
	Range      int     `json:"range,omitempty"`
	Initiative int     `json:"initiative,omitempty"`
	Accuracy   float64 `json:"accuracy,omitempty"`

	KillRate float64 `json:"kill_rate,omitempty"`

	ScanRange    int `json:"scan_range,omitempty"`
	PenScanRange int `json:"pen_scan_range,omitempty"`

	MinesPerYear int      `json:"mines_per_year,omitempty"`
	Mines        MineType `json:"mine_type,omitempty"`

	ArmorStrength  int `json:"armor_strength,omitempty"`
	ShieldStrength int `json:"shield_strength,omitempty"`

	CargoCapacity int  `json:"cargo_capacity,omitempty"`
	FuelCapacity  int  `json:"fuel_capacity,omitempty"`
	Colonizer     bool `json:"colonizer,omitempty"`

	ComputerAccuracy float64 `json:"computer_accuracy,omitempty"`
	Jamming          float64 `json:"jamming,omitempty"`

	BattleMovement float64 `json:"battle_movement,omitempty"`

	Slots    []HullSlot `json:"slots,omitempty"`
	Starbase bool       `json:"starbase,omitempty"`
	Dock     bool       `json:"dock,omitempty"`
}

// ErrComponentNotFound : Indicates that the requested component
// does not exist in the catalog.
var ErrComponentNotFound = fmt.Errorf("Component not found in catalog")

// IsWeapon :
// Determines whether this component can deal damage in battle.
//
// Returns `true` for beam weapons and missiles.
func (c *Component) IsWeapon() bool {
	return c.Type == BeamWeapon || c.Type == Missile
}

// FreeWarpSpeed :
// Provides the highest warp factor at which this engine does
// not consume any fuel. Fleets that run dry fall back to this
// speed until they can refuel.
//
// Returns the free warp speed, `0` for non-engine components.
func (c *Component) FreeWarpSpeed() int {
	if c.Type != Engine {
		return 0
	}

	free := 0
	for warp := 1; warp <= 10; warp++ {
		if c.FuelUsage[warp] <= 0 {
			free = warp
		}
	}

	return free
}
