package game

// ScanLevel :
// Describes how much of a star is known to an empire. Higher
// levels carry more fields in the star report.
type ScanLevel string

// Possible values for the scan level of a star report.
const (
	ScanNone   ScanLevel = "none"
	ScanInScan ScanLevel = "in_scan"
	ScanDeep   ScanLevel = "deep_scan"
	ScanOwned  ScanLevel = "owned"
)

// StarReport :
// Describes what an empire knows about a star. The fields
// that are set depend on the scan level: a `none` report only
// carries the name, position and year; deep scans add the
// environment, the concentrations and the owner; owned stars
// also expose their infrastructure and stockpiles.
type StarReport struct {
	Name      string    `json:"name"`
	PositionX int       `json:"position_x"`
	PositionY int       `json:"position_y"`
	Year      int       `json:"year"`
	Scan      ScanLevel `json:"scan_level"`

	Owner       int `json:"owner,omitempty"`
	Colonists   int `json:"colonists,omitempty"`
	Gravity     int `json:"gravity,omitempty"`
	Temperature int `json:"temperature,omitempty"`
	Radiation   int `json:"radiation,omitempty"`

	IroniumConcentration   int `json:"ironium_concentration,omitempty"`
	BoraniumConcentration  int `json:"boranium_concentration,omitempty"`
	GermaniumConcentration int `json:"germanium_concentration,omitempty"`

	Factories int `json:"factories,omitempty"`
	Mines     int `json:"mines,omitempty"`
	Defenses  int `json:"defenses,omitempty"`

	IroniumStockpile   int `json:"ironium_stockpile,omitempty"`
	BoraniumStockpile  int `json:"boranium_stockpile,omitempty"`
	GermaniumStockpile int `json:"germanium_stockpile,omitempty"`
}

// FleetReport :
// Describes what an empire knows about a foreign fleet: its
// last seen position, heading and size.
type FleetReport struct {
	Key       FleetKey `json:"key"`
	Name      string   `json:"name"`
	Owner     int      `json:"owner"`
	PositionX int      `json:"position_x"`
	PositionY int      `json:"position_y"`
	Year      int      `json:"year"`
	ShipCount int      `json:"ship_count"`
	Bearing   float64  `json:"bearing"`
	Warp      int      `json:"warp"`
}

// BattleParticipant :
// Describes one stack entering a battle.
type BattleParticipant struct {
	Stack    uint64   `json:"stack"`
	Owner    int      `json:"owner"`
	Fleet    FleetKey `json:"fleet"`
	Design   string   `json:"design"`
	Quantity int      `json:"quantity"`
}

// StackMove :
// Describes the position of a stack after a movement phase.
type StackMove struct {
	Stack uint64  `json:"stack"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// TargetPick :
// Describes the target a stack selected for a round.
type TargetPick struct {
	Stack  uint64 `json:"stack"`
	Target uint64 `json:"target"`
}

// WeaponFire :
// Describes one weapon volley: the damage dealt and the
// defence of the target once it landed.
type WeaponFire struct {
	Stack         uint64 `json:"stack"`
	Target        uint64 `json:"target"`
	Weapon        string `json:"weapon"`
	Damage        int    `json:"damage"`
	TargetShields int    `json:"target_shields"`
	TargetArmor   int    `json:"target_armor"`
}

// BattleRound :
// Describes everything that happened during one battle round.
type BattleRound struct {
	Round     int          `json:"round"`
	Moves     []StackMove  `json:"moves,omitempty"`
	Targets   []TargetPick `json:"targets,omitempty"`
	Fire      []WeaponFire `json:"fire,omitempty"`
	Destroyed []uint64     `json:"destroyed,omitempty"`
}

// BattleReport :
// Describes a whole battle for the participant empires: the
// stacks, the per-round events and the losses per empire.
type BattleReport struct {
	Year         int                 `json:"year"`
	PositionX    int                 `json:"position_x"`
	PositionY    int                 `json:"position_y"`
	Participants []BattleParticipant `json:"participants"`
	Rounds       []BattleRound       `json:"rounds"`
	Losses       map[int]int         `json:"losses"`
}

// EmpireReport :
// Describes what an empire knows about another empire: the
// diplomatic relation and the enemy designs observed in
// battle.
type EmpireReport struct {
	ID           int                       `json:"id"`
	Relation     Relation                  `json:"relation"`
	KnownDesigns map[DesignKey]*ShipDesign `json:"known_designs,omitempty"`
}
