package game

import "sort"

// ShipToken :
// Describes a group of identical ships inside a fleet. A
// token aggregates the ships built from one design and keeps
// track of their current defensive state.
//
// The `Design` references the design of the ships.
//
// The `Quantity` defines how many ships the token holds.
//
// The `Shields` and `Armor` describe the current per-ship
// defensive points. Shields fully regenerate at the start of
// every battle; armor only recovers through repairs.
//
// The `MaxShields` and `MaxArmor` cache the design values so
// that repair and battle code does not need to resolve the
// design.
type ShipToken struct {
	Design     DesignKey `json:"design"`
	Quantity   int       `json:"quantity"`
	Shields    int       `json:"shields"`
	Armor      int       `json:"armor"`
	MaxShields int       `json:"max_shields"`
	MaxArmor   int       `json:"max_armor"`
}

// Fleet :
// Describes a group of ships moving and acting as one unit.
// A fleet exclusively owns its tokens and an empire
// exclusively owns its fleets.
//
// The `Key` uniquely identifies the fleet and encodes its
// owner.
//
// The `Name` is the player-facing name of the fleet. Salvage
// and mineral packets carry reserved names.
//
// The `Position` locates the fleet in the galaxy.
//
// The `InOrbit` names the star the fleet is orbiting, empty
// in deep space.
//
// The `Tokens` maps design keys to the ship tokens of the
// fleet. A fleet whose tokens are all gone is destroyed by
// the next cleanup step.
//
// The `Waypoints` describe the route of the fleet; the first
// waypoint of an idle fleet is its current position.
//
// The `Cargo` describes the content of the cargo bays.
//
// The `FuelAvailable` defines the fuel on board in mg.
//
// The `BattlePlanName` names the battle plan of the owning
// empire this fleet follows in combat.
//
// The `TurnYearCreated` records the year the fleet appeared,
// which drives the decay of salvage.
//
// The `Packet` marks mineral packets, which move without fuel
// and are not proper fleets.
type Fleet struct {
	Key             FleetKey                 `json:"key"`
	Name            string                   `json:"name"`
	Position        Position                 `json:"position"`
	InOrbit         string                   `json:"in_orbit,omitempty"`
	Tokens          map[DesignKey]*ShipToken `json:"tokens"`
	Waypoints       []Waypoint               `json:"waypoints"`
	Cargo           Cargo                    `json:"cargo"`
	FuelAvailable   int                      `json:"fuel_available"`
	BattlePlanName  string                   `json:"battle_plan_name,omitempty"`
	TurnYearCreated int                      `json:"turn_year_created"`
	Packet          bool                     `json:"packet,omitempty"`

	// travelled records the distance covered by the last
	// movement step and lastWarp the warp factor it was flown
	// at; used by the minefield check. Not persisted.
	travelled float64
	lastWarp  int
}

// Owner :
// Extracts the identifier of the owning empire from the key
// of the fleet.
//
// Returns the empire identifier.
func (f *Fleet) Owner() int {
	return f.Key.Owner()
}

// ShipCount :
// Counts the ships of the fleet across all its tokens.
//
// Returns the count.
func (f *Fleet) ShipCount() int {
	count := 0
	for _, token := range f.Tokens {
		count += token.Quantity
	}

	return count
}

// Empty :
// Determines whether the fleet holds no ship anymore. Mineral
// packets are never empty as long as they carry minerals.
//
// Returns `true` for fleets to be destroyed by cleanup.
func (f *Fleet) Empty() bool {
	if f.Packet || f.IsSalvage() {
		return f.Cargo.Mass() == 0
	}

	return f.ShipCount() == 0
}

// IsSalvage :
// Determines whether the fleet is a salvage deposit.
//
// Returns `true` for salvage.
func (f *Fleet) IsSalvage() bool {
	return f.Name == SalvageFleetName
}

// SortedTokenKeys :
// Provides the design keys of the tokens of the fleet in
// ascending order, which is the deterministic traversal used
// by the pipeline.
//
// Returns the ordered keys.
func (f *Fleet) SortedTokenKeys() []DesignKey {
	keys := make([]DesignKey, 0, len(f.Tokens))
	for key := range f.Tokens {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

// summarize :
// Aggregates the design-derived values of the fleet needed by
// the movement step.
//
// The `designs` allows to resolve the designs of the tokens.
//
// Returns the total ship mass, the total fuel capacity and a
// design carrying an engine to read the fuel table from.
func (f *Fleet) summarize(designs map[DesignKey]*ShipDesign) (int, int, *ShipDesign) {
	mass := 0
	capacity := 0
	var withEngine *ShipDesign

	for _, key := range f.SortedTokenKeys() {
		token := f.Tokens[key]
		design, ok := designs[key]
		if !ok {
			continue
		}

		mass += design.Summary.Mass * token.Quantity
		capacity += design.Summary.FuelCapacity * token.Quantity
		if len(design.Summary.Engine) > 0 && withEngine == nil {
			withEngine = design
		}
	}

	return mass, capacity, withEngine
}

// HasColonizer :
// Determines whether any token of the fleet is built from a
// design carrying a colonization module.
//
// The `designs` allows to resolve the designs of the tokens.
//
// Returns `true` along with the key of the colonizing token.
func (f *Fleet) HasColonizer(designs map[DesignKey]*ShipDesign) (bool, DesignKey) {
	for _, key := range f.SortedTokenKeys() {
		design, ok := designs[key]
		if ok && design.Summary.Colonizer {
			return true, key
		}
	}

	return false, 0
}
