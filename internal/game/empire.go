package game

import (
	"fmt"
	"sort"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
)

// ErrInvalidEmpireID : Indicates that an empire identifier
// lies outside the valid `1..127` range.
var ErrInvalidEmpireID = fmt.Errorf("Empire identifier out of range")

// TerraformAbility :
// Describes how far an empire can push each environment axis
// away from the original value of a star.
type TerraformAbility struct {
	Gravity     int `json:"gravity"`
	Temperature int `json:"temperature"`
	Radiation   int `json:"radiation"`
}

// Empire :
// Describes the state of a player inside a single game. The
// empire owns its fleets and designs outright; stars live in
// the world arena and are referenced by name.
//
// The `ID` identifies the empire, in the `1..127` range.
//
// The `Race` describes the immutable racial properties.
//
// The `TurnYear` records the last turn the empire was
// generated for.
//
// The `ResearchBudget` defines the percentage of the yearly
// resources routed to research and `ResearchPriority` the
// per-field weights deciding which field receives them.
//
// The `ResearchResources` accumulates the invested resources
// not yet converted into a level.
//
// The `TechLevels` records the attained levels.
//
// The `Stars` holds the names of the owned stars.
//
// The `Fleets` and `Designs` hold the owned entities keyed by
// their 64-bit keys.
//
// The `StarReports`, `FleetReports` and `EmpireReports` hold
// the intel of the empire.
//
// The `BattlePlans` holds the named combat doctrines and
// `BattleReports` the battles the empire took part in.
//
// The `VisibleMinefields` holds the minefields known to the
// empire, rebuilt at the end of every turn.
//
// The `Relations` records the diplomatic stance towards the
// other empires; missing entries default to enemy.
//
// The `FleetCounter` and `DesignCounter` are the monotonic
// counters feeding the key encoding.
//
// The `Terraform` describes the terraforming reach.
//
// The `Submitted` records whether the empire handed in its
// commands for the current turn.
//
// The `Messages` accumulates the report delivered with the
// next generated turn.
type Empire struct {
	ID   int        `json:"id"`
	Race model.Race `json:"race"`

	TurnYear int `json:"turn_year"`

	ResearchBudget    int       `json:"research_budget"`
	ResearchPriority  TechLevel `json:"research_priority"`
	ResearchResources int       `json:"research_resources"`
	TechLevels        TechLevel `json:"tech_levels"`

	Stars   map[string]bool           `json:"stars"`
	Fleets  map[FleetKey]*Fleet       `json:"fleets"`
	Designs map[DesignKey]*ShipDesign `json:"designs"`

	StarReports   map[string]*StarReport    `json:"star_reports"`
	FleetReports  map[FleetKey]*FleetReport `json:"fleet_reports"`
	EmpireReports map[int]*EmpireReport     `json:"empire_reports"`

	BattlePlans       map[string]*BattlePlan `json:"battle_plans"`
	BattleReports     []*BattleReport        `json:"battle_reports,omitempty"`
	VisibleMinefields map[uint64]*Minefield  `json:"visible_minefields"`

	Relations map[int]Relation `json:"relations"`

	FleetCounter  uint32 `json:"fleet_counter"`
	DesignCounter uint32 `json:"design_counter"`

	Terraform TerraformAbility `json:"terraform"`

	Submitted bool      `json:"submitted"`
	Messages  []Message `json:"messages"`

	// spotted records the minefields opportunistically sighted
	// during the movement step of the current turn, so that the
	// end-of-turn visibility rebuild keeps them. Not persisted.
	spotted map[uint64]bool
}

// SpotMinefield :
// Records an opportunistic minefield sighting for the current
// turn.
//
// The `key` defines the key of the sighted minefield.
func (e *Empire) SpotMinefield(key uint64) {
	if e.spotted == nil {
		e.spotted = make(map[uint64]bool)
	}
	e.spotted[key] = true
}

// NewEmpire :
// Builds an empty empire with the input identifier and race.
// The empire starts with the default battle plan and no
// possession.
//
// The `id` defines the identifier of the empire.
//
// The `race` defines the race of the empire.
//
// Returns the empire along with any error.
func NewEmpire(id int, race model.Race) (*Empire, error) {
	if id < 1 || id > MaxEmpireID {
		return nil, ErrInvalidEmpireID
	}

	return &Empire{
		ID:   id,
		Race: race,

		TurnYear: StartingYear,

		ResearchBudget:   10,
		ResearchPriority: TechLevel{Energy: 1},
		TechLevels:       NewTechLevel(),

		Stars:   make(map[string]bool),
		Fleets:  make(map[FleetKey]*Fleet),
		Designs: make(map[DesignKey]*ShipDesign),

		StarReports:   make(map[string]*StarReport),
		FleetReports:  make(map[FleetKey]*FleetReport),
		EmpireReports: make(map[int]*EmpireReport),

		BattlePlans: map[string]*BattlePlan{
			DefaultBattlePlanName: DefaultBattlePlan(),
		},
		VisibleMinefields: make(map[uint64]*Minefield),

		Relations: make(map[int]Relation),

		Terraform: TerraformAbility{Gravity: 3, Temperature: 3, Radiation: 3},
	}, nil
}

// NextFleetKey :
// Allocates the key of the next fleet of the empire. The
// counter is strictly monotonic within the empire.
//
// Returns the key.
func (e *Empire) NextFleetKey() FleetKey {
	e.FleetCounter++
	return NewFleetKey(e.ID, e.FleetCounter)
}

// NextDesignKey :
// Allocates the key of the next design of the empire.
//
// Returns the key.
func (e *Empire) NextDesignKey() DesignKey {
	e.DesignCounter++
	return NewDesignKey(e.ID, e.DesignCounter)
}

// RelationTo :
// Provides the diplomatic stance of the empire towards the
// input one. Unknown empires are treated as enemies, which
// is also what makes battles resolve for empires that never
// submitted any relation.
//
// The `other` defines the identifier of the other empire.
//
// Returns the relation.
func (e *Empire) RelationTo(other int) Relation {
	if other == e.ID {
		return RelationFriend
	}
	if relation, ok := e.Relations[other]; ok {
		return relation
	}

	return RelationEnemy
}

// IsEnemy :
// Determines whether the input empire is considered hostile.
//
// The `other` defines the identifier of the other empire.
//
// Returns `true` for enemies.
func (e *Empire) IsEnemy(other int) bool {
	return e.RelationTo(other) == RelationEnemy
}

// PlanFor :
// Resolves the battle plan a fleet follows, falling back to
// the default plan when the referenced plan does not exist.
//
// The `fleet` defines the fleet to resolve the plan of.
//
// Returns the plan.
func (e *Empire) PlanFor(fleet *Fleet) *BattlePlan {
	if plan, ok := e.BattlePlans[fleet.BattlePlanName]; ok {
		return plan
	}

	return e.BattlePlans[DefaultBattlePlanName]
}

// Notify :
// Appends a message to the report of the empire.
//
// The `message` defines the message to append.
func (e *Empire) Notify(message Message) {
	message.Audience = e.ID
	e.Messages = append(e.Messages, message)
}

// SortedFleetKeys :
// Provides the keys of the fleets of the empire in ascending
// order.
//
// Returns the ordered keys.
func (e *Empire) SortedFleetKeys() []FleetKey {
	keys := make([]FleetKey, 0, len(e.Fleets))
	for key := range e.Fleets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

// SortedStarNames :
// Provides the names of the owned stars in ascending order.
//
// Returns the ordered names.
func (e *Empire) SortedStarNames() []string {
	names := make([]string, 0, len(e.Stars))
	for name := range e.Stars {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// MaxPopulation :
// Computes the maximum population the input star can support
// for this empire. Hostile worlds cap at a fixed survival
// threshold; hyper-expansion races only support half of the
// standard capacity.
//
// The `hab` defines the habitability of the star for the
// race of the empire.
//
// Returns the maximum population.
func (e *Empire) MaxPopulation(hab float64) int {
	maxPop := 1000000

	if e.Race.HyperExpansion {
		maxPop = int(float64(maxPop) * PopulationFactorHyperExpansion)
	}
	if hab < 0 {
		maxPop = 250000
	}

	return maxPop
}
