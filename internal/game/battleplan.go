package game

// TargetCategory :
// Describes a category of enemy stacks a battle plan can
// prioritize.
type TargetCategory string

// Possible values for a target category.
const (
	TargetStarbase    TargetCategory = "starbase"
	TargetBomber      TargetCategory = "bomber"
	TargetCapitalShip TargetCategory = "capital_ship"
	TargetEscort      TargetCategory = "escort"
	TargetArmedShip   TargetCategory = "armed_ship"
	TargetAnyShip     TargetCategory = "any_ship"
	TargetSupportShip TargetCategory = "support_ship"
	TargetNone        TargetCategory = "none"
)

// AttackWho :
// Describes which empires a fleet following a battle plan
// engages.
type AttackWho string

// Possible values for the attack policy of a battle plan.
const (
	AttackNobody   AttackWho = "nobody"
	AttackEnemies  AttackWho = "enemies"
	AttackEveryone AttackWho = "everyone"
)

// Relation :
// Describes the diplomatic stance of an empire towards
// another one.
type Relation string

// Possible values for a relation. Empires with no recorded
// relation are treated as enemies.
const (
	RelationFriend  Relation = "friend"
	RelationNeutral Relation = "neutral"
	RelationEnemy   Relation = "enemy"
)

// BattlePlan :
// Describes how the fleets of an empire behave in combat.
//
// The `Name` identifies the plan within the empire; fleets
// reference it by name.
//
// The `Targets` lists up to five target categories in
// decreasing priority.
//
// The `Attack` defines which empires the plan engages.
type BattlePlan struct {
	Name    string           `json:"name"`
	Targets []TargetCategory `json:"targets"`
	Attack  AttackWho        `json:"attack"`
}

// DefaultBattlePlanName : The name of the plan every empire
// starts with and fleets fall back to.
const DefaultBattlePlanName = "Default"

// DefaultBattlePlan :
// Builds the plan every empire starts with.
//
// Returns the plan.
func DefaultBattlePlan() *BattlePlan {
	return &BattlePlan{
		Name: DefaultBattlePlanName,
		Targets: []TargetCategory{
			TargetArmedShip,
			TargetAnyShip,
		},
		Attack: AttackEnemies,
	}
}

// priorityOf :
// Computes the priority score of a target category relative
// to this plan, the lexicographically dominant part of the
// target selection. Categories listed earlier in the plan
// score higher; categories not listed score zero.
//
// The `category` defines the category to score.
//
// Returns the score in `[0, 7]`.
func (p *BattlePlan) priorityOf(category TargetCategory) int {
	for id, candidate := range p.Targets {
		if candidate == category {
			return 7 - id
		}
	}

	return 0
}
