package game

// OrderKind :
// Describes what a production order builds.
type OrderKind string

// Possible values for the kind of a production order.
const (
	FactoryOrder   OrderKind = "factory"
	MineOrder      OrderKind = "mine"
	DefenseOrder   OrderKind = "defense"
	TerraformOrder OrderKind = "terraform"
	ShipOrder      OrderKind = "ship"
	StarbaseOrder  OrderKind = "starbase"
	PacketOrder    OrderKind = "packet"
	AlchemyOrder   OrderKind = "alchemy"
)

// ProductionOrder :
// Describes one entry of the manufacturing queue of a star.
// An order can span several turns: the resources invested so
// far are recorded so that the remaining cost shrinks as the
// turns pass.
//
// The `Kind` defines what the order builds.
//
// The `Quantity` defines how many items are still to build.
//
// The `Design` references the ship design for `ShipOrder` and
// `StarbaseOrder` kinds and is zero otherwise.
//
// The `Allocated` records the resources already invested in
// the item currently under construction.
//
// The `AutoBuild` marks an order that never blocks the queue:
// when it cannot be afforded the following orders still get a
// chance to run this turn.
type ProductionOrder struct {
	Kind      OrderKind `json:"kind"`
	Quantity  int       `json:"quantity"`
	Design    DesignKey `json:"design,omitempty"`
	Allocated Resources `json:"allocated"`
	AutoBuild bool      `json:"auto_build,omitempty"`
}

// Star :
// Describes a star of the galaxy. Stars are the only places
// where colonists can live and resources can be produced. A
// star is identified by its name, which is unique across the
// whole galaxy and immutable.
//
// The `Name` uniquely identifies the star.
//
// The `Position` locates the star in the galaxy.
//
// The `Gravity`, `Temperature` and `Radiation` describe the
// current environment of the star in the `0..100` scale while
// the `Original*` counterparts record the values the star had
// when the galaxy was generated, which is what terraforming
// is measured against.
//
// The `IroniumConcentration`, `BoraniumConcentration` and
// `GermaniumConcentration` describe the richness of the soil
// in the `1..100` range. Concentrations decay as minerals are
// extracted.
//
// The `ResourcesOnHand` describes the mineral stockpile and
// the industrial output available for manufacturing.
//
// The `Colonists` defines the population of the star. A star
// with no colonist is unowned.
//
// The `Factories`, `Mines` and `Defenses` count the built
// installations; defenses saturate at `MaxDefenses`.
//
// The `ProductionQueue` lists the manufacturing orders of the
// star in execution order.
//
// The `Starbase` references the fleet acting as the orbital
// starbase of the star, `0` when there is none.
//
// The `Owner` defines the identifier of the owning empire or
// `Nobody`.
//
// The `PacketTarget` names the star mineral packets built
// here are flung to.
//
// The `SpectralClass` is a cosmetic classification reported
// by scans.
type Star struct {
	Name     string   `json:"name"`
	Position Position `json:"position"`

	Gravity     int `json:"gravity"`
	Temperature int `json:"temperature"`
	Radiation   int `json:"radiation"`

	OriginalGravity     int `json:"original_gravity"`
	OriginalTemperature int `json:"original_temperature"`
	OriginalRadiation   int `json:"original_radiation"`

	IroniumConcentration   int `json:"ironium_concentration"`
	BoraniumConcentration  int `json:"boranium_concentration"`
	GermaniumConcentration int `json:"germanium_concentration"`

	ResourcesOnHand Resources `json:"resources_on_hand"`

	Colonists int `json:"colonists"`
	Factories int `json:"factories"`
	Mines     int `json:"mines"`
	Defenses  int `json:"defenses"`

	ProductionQueue []ProductionOrder `json:"production_queue"`

	Starbase FleetKey `json:"starbase,omitempty"`
	Owner    int      `json:"owner"`

	PacketTarget  string `json:"packet_target,omitempty"`
	SpectralClass string `json:"spectral_class,omitempty"`
}

// Owned :
// Determines whether the star belongs to an empire.
//
// Returns `true` if the star has an owner.
func (s *Star) Owned() bool {
	return s.Owner != Nobody
}

// Abandon :
// Strips the star from everything tied to its previous owner.
// Called when the population reaches zero or when the star is
// conquered: infrastructure does not survive the transition.
func (s *Star) Abandon() {
	s.Owner = Nobody
	s.Colonists = 0
	s.Factories = 0
	s.Mines = 0
	s.Defenses = 0
	s.Starbase = 0
	s.ProductionQueue = nil
	s.PacketTarget = ""
}

// DefenseCoverage :
// Computes the share of incoming population damage absorbed
// by the defense installations of the star, in `[0, 0.9]`.
//
// Returns the coverage.
func (s *Star) DefenseCoverage() float64 {
	coverage := float64(s.Defenses) / float64(MaxDefenses)
	if coverage > 0.9 {
		coverage = 0.9
	}

	return coverage
}
