package model

import "fmt"

// Catalog :
// Describes the read-only component catalog provided to the
// engine. The catalog contains the description of every item
// that can be fitted on a ship design along with the module
// layout of the hulls. It is built once at startup and never
// mutated afterwards so that it can be shared freely between
// game instances.
//
// The `byName` allows to retrieve a component from its name,
// which is how ship designs reference their modules.
//
// The `byType` groups the components by family, which is the
// view used by the client when presenting the designer.
type Catalog struct {
	byName map[string]*Component
	byType map[ItemType][]*Component
}

// NewCatalog :
// Builds a catalog from the input list of components. Items
// with duplicated names are rejected.
//
// The `components` define the items to register.
//
// Returns the catalog along with any error.
func NewCatalog(components []Component) (*Catalog, error) {
	c := Catalog{
		byName: make(map[string]*Component),
		byType: make(map[ItemType][]*Component),
	}

	for id := range components {
		comp := &components[id]

		if _, ok := c.byName[comp.Name]; ok {
			return nil, fmt.Errorf("Duplicated component \"%s\" in catalog", comp.Name)
		}

		c.byName[comp.Name] = comp
		c.byType[comp.Type] = append(c.byType[comp.Type], comp)
	}

	return &c, nil
}

// ByName :
// Retrieves a component from its name.
//
// The `name` defines the name of the component to fetch.
//
// Returns the component along with any error.
func (c *Catalog) ByName(name string) (*Component, error) {
	comp, ok := c.byName[name]
	if !ok {
		return nil, ErrComponentNotFound
	}

	return comp, nil
}

// ByType :
// Retrieves the components belonging to the input family.
//
// The `itemType` defines the family to fetch.
//
// Returns the list of components, possibly empty.
func (c *Catalog) ByType(itemType ItemType) []*Component {
	return c.byType[itemType]
}

// DefaultCatalog :
// Builds the standard component catalog used by the engine.
// The list is intentionally small compared to the full game
// data but covers every component family so that all of the
// turn subsystems can be exercised.
//
// Returns the catalog.
func DefaultCatalog() *Catalog {
	components := []Component{
		// Engines. Fuel tables are expressed in mg per light-year
		// for a reference mass of 200 kT.
		{
			Name: "Quick Jump 5", Type: Engine, Mass: 4,
			Cost:           Cost{Ironium: 3, Boranium: 0, Germanium: 1, Energy: 3},
			FuelUsage:      [11]int{0, 0, 25, 100, 100, 100, 180, 500, 800, 900, 1080},
			BattleMovement: 0.5,
		},
		{
			Name: "Long Hump 6", Type: Engine, Mass: 9,
			Cost:           Cost{Ironium: 5, Boranium: 0, Germanium: 1, Energy: 6},
			FuelUsage:      [11]int{0, 0, 20, 60, 70, 100, 100, 110, 600, 750, 900},
			BattleMovement: 1.0,
		},
		{
			Name: "Fuel Mizer", Type: Engine, Mass: 6,
			Cost:           Cost{Ironium: 8, Boranium: 0, Germanium: 0, Energy: 11},
			FuelUsage:      [11]int{0, 0, 0, 0, 0, 35, 120, 175, 235, 360, 420},
			BattleMovement: 1.0,
		},
		{
			Name: "Trans-Galactic Drive", Type: Engine, Mass: 25,
			Cost:           Cost{Ironium: 20, Boranium: 20, Germanium: 9, Energy: 50},
			FuelUsage:      [11]int{0, 0, 15, 35, 45, 55, 70, 80, 90, 100, 110},
			BattleMovement: 1.5,
		},

		// Beam weapons.
		{
			Name: "Laser", Type: BeamWeapon, Mass: 1,
			Cost:  Cost{Ironium: 0, Boranium: 6, Germanium: 0, Energy: 5},
			Power: 10, Range: 1, Initiative: 9,
		},
		{
			Name: "Colloidal Phaser", Type: BeamWeapon, Mass: 2,
			Cost:  Cost{Ironium: 0, Boranium: 14, Germanium: 0, Energy: 18},
			Power: 26, Range: 3, Initiative: 5,
		},
		{
			Name: "Heavy Blaster", Type: BeamWeapon, Mass: 2,
			Cost:  Cost{Ironium: 0, Boranium: 20, Germanium: 0, Energy: 25},
			Power: 66, Range: 2, Initiative: 7,
		},

		// Missiles.
		{
			Name: "Alpha Torpedo", Type: Missile, Mass: 25,
			Cost:  Cost{Ironium: 9, Boranium: 3, Germanium: 3, Energy: 5},
			Power: 12, Range: 4, Initiative: 0, Accuracy: 0.35,
		},
		{
			Name: "Jihad Missile", Type: Missile, Mass: 35,
			Cost:  Cost{Ironium: 37, Boranium: 13, Germanium: 9, Energy: 13},
			Power: 85, Range: 5, Initiative: 0, Accuracy: 0.20,
		},

		// Bombs.
		{
			Name: "Lady Finger Bomb", Type: Bomb, Mass: 40,
			Cost:     Cost{Ironium: 1, Boranium: 20, Germanium: 0, Energy: 5},
			KillRate: 0.006,
		},
		{
			Name: "Black Cat Bomb", Type: Bomb, Mass: 45,
			Cost:     Cost{Ironium: 1, Boranium: 22, Germanium: 0, Energy: 7},
			KillRate: 0.009,
		},

		// Scanners.
		{
			Name: "Bat Scanner", Type: Scanner, Mass: 2,
			Cost:      Cost{Ironium: 1, Boranium: 0, Germanium: 1, Energy: 1},
			ScanRange: 50,
		},
		{
			Name: "Rhino Scanner", Type: Scanner, Mass: 5,
			Cost:      Cost{Ironium: 3, Boranium: 0, Germanium: 2, Energy: 3},
			ScanRange: 100, PenScanRange: 50,
		},

		// Mine layers.
		{
			Name: "Mine Dispenser 40", Type: MineLayer, Mass: 25,
			Cost:         Cost{Ironium: 2, Boranium: 9, Germanium: 7, Energy: 40},
			MinesPerYear: 40, Mines: StandardMine,
		},
		{
			Name: "Heavy Dispenser 50", Type: MineLayer, Mass: 30,
			Cost:         Cost{Ironium: 2, Boranium: 14, Germanium: 5, Energy: 50},
			MinesPerYear: 50, Mines: HeavyMine,
		},
		{
			Name: "Speed Trap 20", Type: MineLayer, Mass: 100,
			Cost:         Cost{Ironium: 29, Boranium: 0, Germanium: 12, Energy: 58},
			MinesPerYear: 20, Mines: SpeedBumpMine,
		},

		// Shields and armor.
		{
			Name: "Mole-skin Shield", Type: Shield, Mass: 1,
			Cost:           Cost{Ironium: 1, Boranium: 0, Germanium: 1, Energy: 4},
			ShieldStrength: 25,
		},
		{
			Name: "Cow-hide Shield", Type: Shield, Mass: 1,
			Cost:           Cost{Ironium: 2, Boranium: 0, Germanium: 2, Energy: 5},
			ShieldStrength: 40,
		},
		{
			Name: "Tritanium", Type: Armor, Mass: 60,
			Cost:          Cost{Ironium: 5, Boranium: 0, Germanium: 0, Energy: 10},
			ArmorStrength: 50,
		},
		{
			Name: "Crobmnium", Type: Armor, Mass: 56,
			Cost:          Cost{Ironium: 6, Boranium: 0, Germanium: 0, Energy: 13},
			ArmorStrength: 75,
		},

		// Mechanical.
		{
			Name: "Cargo Pod", Type: Mechanical, Mass: 5,
			Cost:          Cost{Ironium: 5, Boranium: 0, Germanium: 2, Energy: 10},
			CargoCapacity: 50,
		},
		{
			Name: "Fuel Tank", Type: Mechanical, Mass: 3,
			Cost:         Cost{Ironium: 6, Boranium: 0, Germanium: 0, Energy: 4},
			FuelCapacity: 250,
		},
		{
			Name: "Colonization Module", Type: Mechanical, Mass: 32,
			Cost:      Cost{Ironium: 12, Boranium: 10, Germanium: 10, Energy: 10},
			Colonizer: true,
		},

		// Electrical.
		{
			Name: "Battle Computer", Type: Electrical, Mass: 1,
			Cost:             Cost{Ironium: 0, Boranium: 0, Germanium: 13, Energy: 5},
			ComputerAccuracy: 0.20,
		},
		{
			Name: "Jammer 20", Type: Electrical, Mass: 1,
			Cost:    Cost{Ironium: 1, Boranium: 0, Germanium: 5, Energy: 10},
			Jamming: 0.20,
		},

		// Hulls.
		{
			Name: "Scout", Type: Hull, Mass: 8,
			Cost:       Cost{Ironium: 4, Boranium: 2, Germanium: 4, Energy: 10},
			Initiative: 1, FuelCapacity: 50, ArmorStrength: 20,
			Slots: []HullSlot{
				{Allowed: []ItemType{Engine}, Max: 1},
				{Allowed: []ItemType{Scanner}, Max: 1},
				{Allowed: []ItemType{BeamWeapon, Missile, Shield, Armor, Mechanical, Electrical}, Max: 1},
			},
		},
		{
			Name: "Medium Freighter", Type: Hull, Mass: 60,
			Cost:       Cost{Ironium: 20, Boranium: 0, Germanium: 19, Energy: 40},
			Initiative: 0, FuelCapacity: 450, CargoCapacity: 210, ArmorStrength: 50,
			Slots: []HullSlot{
				{Allowed: []ItemType{Engine}, Max: 1},
				{Allowed: []ItemType{Scanner, Shield, Armor, Mechanical, Electrical}, Max: 1},
			},
		},
		{
			Name: "Colony Ship", Type: Hull, Mass: 20,
			Cost:       Cost{Ironium: 9, Boranium: 0, Germanium: 13, Energy: 18},
			Initiative: 0, FuelCapacity: 200, CargoCapacity: 25, ArmorStrength: 20,
			Slots: []HullSlot{
				{Allowed: []ItemType{Engine}, Max: 1},
				{Allowed: []ItemType{Mechanical}, Max: 1},
			},
		},
		{
			Name: "Frigate", Type: Hull, Mass: 8,
			Cost:       Cost{Ironium: 4, Boranium: 2, Germanium: 4, Energy: 12},
			Initiative: 4, FuelCapacity: 125, ArmorStrength: 45,
			Slots: []HullSlot{
				{Allowed: []ItemType{Engine}, Max: 1},
				{Allowed: []ItemType{BeamWeapon, Missile}, Max: 2},
				{Allowed: []ItemType{Shield, Armor}, Max: 2},
				{Allowed: []ItemType{Scanner, Electrical, Mechanical}, Max: 1},
			},
		},
		{
			Name: "Cruiser", Type: Hull, Mass: 90,
			Cost:       Cost{Ironium: 40, Boranium: 5, Germanium: 8, Energy: 85},
			Initiative: 5, FuelCapacity: 600, ArmorStrength: 700,
			Slots: []HullSlot{
				{Allowed: []ItemType{Engine}, Max: 2},
				{Allowed: []ItemType{BeamWeapon, Missile}, Max: 2},
				{Allowed: []ItemType{BeamWeapon, Missile}, Max: 2},
				{Allowed: []ItemType{Shield, Armor}, Max: 2},
				{Allowed: []ItemType{Scanner, Electrical, Mechanical}, Max: 2},
			},
		},
		{
			Name: "Mini Bomber", Type: Hull, Mass: 28,
			Cost:       Cost{Ironium: 20, Boranium: 5, Germanium: 10, Energy: 35},
			Initiative: 0, FuelCapacity: 120, ArmorStrength: 50,
			Slots: []HullSlot{
				{Allowed: []ItemType{Engine}, Max: 1},
				{Allowed: []ItemType{Bomb}, Max: 2},
			},
		},
		{
			Name: "Mini Mine Layer", Type: Hull, Mass: 10,
			Cost:       Cost{Ironium: 8, Boranium: 2, Germanium: 5, Energy: 20},
			Initiative: 0, FuelCapacity: 400, ArmorStrength: 60,
			Slots: []HullSlot{
				{Allowed: []ItemType{Engine}, Max: 1},
				{Allowed: []ItemType{MineLayer}, Max: 2},
				{Allowed: []ItemType{MineLayer}, Max: 2},
			},
		},
		{
			Name: "Space Station", Type: Hull, Mass: 0,
			Cost:       Cost{Ironium: 120, Boranium: 80, Germanium: 250, Energy: 600},
			Initiative: 14, ArmorStrength: 500, Starbase: true, Dock: true,
			Slots: []HullSlot{
				{Allowed: []ItemType{BeamWeapon, Missile}, Max: 6},
				{Allowed: []ItemType{BeamWeapon, Missile}, Max: 6},
				{Allowed: []ItemType{Shield, Armor}, Max: 6},
				{Allowed: []ItemType{Scanner, Electrical}, Max: 2},
			},
		},
		{
			Name: "Orbital Fort", Type: Hull, Mass: 0,
			Cost:       Cost{Ironium: 24, Boranium: 0, Germanium: 34, Energy: 80},
			Initiative: 10, ArmorStrength: 100, Starbase: true,
			Slots: []HullSlot{
				{Allowed: []ItemType{BeamWeapon, Missile}, Max: 12},
				{Allowed: []ItemType{Shield, Armor}, Max: 12},
			},
		},
	}

	catalog, err := NewCatalog(components)
	if err != nil {
		// The default catalog is hard-coded: failing to build it
		// is a programming error.
		panic(err)
	}

	return catalog
}
