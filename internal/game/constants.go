package game

// Engine-wide constants. These values are part of the wire
// contract with the clients and of the persisted state so
// they must not be changed for a running game.
const (
	// ColonistsPerKiloton defines how many actual colonists
	// are represented by one kT of colonist cargo.
	ColonistsPerKiloton = 100

	// StartingYear defines the turn year of a freshly
	// generated game.
	StartingYear = 2100

	// MaxDefenses defines the saturation value for the
	// defense installations of a star.
	MaxDefenses = 100

	// MaxWeaponRange defines the reach of the longest-range
	// weapon, used to size the battle board.
	MaxWeaponRange = 7

	// MinefieldSnapToGridSize defines the side of the grid
	// cells minefield positions are snapped to.
	MinefieldSnapToGridSize = 5

	// BaseCrowdingFactor scales the growth penalty once a
	// star is more than a quarter full.
	BaseCrowdingFactor = 16.0 / 9.0

	// PopulationFactorHyperExpansion halves the maximum
	// population of hyper-expansion races.
	PopulationFactorHyperExpansion = 0.5

	// GrowthFactorHyperExpansion doubles the growth rate of
	// hyper-expansion races.
	GrowthFactorHyperExpansion = 2.0

	// Nobody is the owner of unowned stars.
	Nobody = 0

	// SalvageFleetName is the name carried by the cargo
	// fleets deposited by battles.
	SalvageFleetName = "S A L V A G E"

	// SalvageDecayRate is the share of a salvage cargo lost
	// per turn; salvage older than SalvageMaxAge turns is
	// deleted outright.
	SalvageDecayRate = 0.30
	SalvageMaxAge    = 3

	// MineralPacketName is the name carried by the mineral
	// packets flung by mass drivers.
	MineralPacketName = "Mineral Packet"

	// MineralPacketDecayRate is the share of a packet lost
	// in flight per turn.
	MineralPacketDecayRate = 0.05

	// MinefieldDecayRate is the share of the mines of every
	// minefield lost per turn; fields at or below
	// MinefieldMinimumMines mines after decay are removed.
	MinefieldDecayRate    = 0.01
	MinefieldMinimumMines = 10

	// MaxBattleRounds bounds the standard battle engine.
	MaxBattleRounds = 16

	// MaxEmpireID bounds the valid empire identifiers.
	MaxEmpireID = 127
)
