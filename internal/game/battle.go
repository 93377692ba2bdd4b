package game

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// BattleEngine :
// Contract shared by the two combat resolvers: given the
// engagements of the turn, run each of them to termination,
// mutate the participating fleets and append a battle report
// to every participant empire.
type BattleEngine interface {
	Run(w *World, engagements []*Engagement, rng *rand.Rand) []Message
}

// Engagement :
// Describes one potential battle: the fleets colocated at a
// point with at least two empires willing to fight.
//
// The `Position` defines where the battle takes place.
//
// The `Fleets` lists the participating fleets in the
// deterministic world order.
type Engagement struct {
	Position Position
	Fleets   []*Fleet
}

// FindEngagements :
// Scans the world for points where hostile fleets meet. An
// engagement forms when the colocated fleets span at least
// two empires and at least one armed fleet follows a plan
// that attacks another present empire.
//
// The `w` defines the world to scan.
//
// Returns the engagements in deterministic order.
func FindEngagements(w *World) []*Engagement {
	groups := make(map[Position][]*Fleet)
	positions := make([]Position, 0)

	for _, fleet := range w.AllFleets() {
		if fleet.Packet || fleet.IsSalvage() || fleet.ShipCount() == 0 {
			continue
		}

		if _, ok := groups[fleet.Position]; !ok {
			positions = append(positions, fleet.Position)
		}
		groups[fleet.Position] = append(groups[fleet.Position], fleet)
	}

	sort.Slice(positions, func(i, j int) bool {
		if positions[i].X != positions[j].X {
			return positions[i].X < positions[j].X
		}
		return positions[i].Y < positions[j].Y
	})

	engagements := make([]*Engagement, 0)

	for _, position := range positions {
		fleets := groups[position]
		if !hostilityAt(w, fleets) {
			continue
		}

		engagements = append(engagements, &Engagement{
			Position: position,
			Fleets:   fleets,
		})
	}

	return engagements
}

// hostilityAt :
// Determines whether the input colocated fleets contain an
// armed fleet whose battle plan engages another present
// empire.
//
// The `w` defines the world.
//
// The `fleets` defines the colocated fleets.
//
// Returns `true` when a battle should take place.
func hostilityAt(w *World, fleets []*Fleet) bool {
	for _, wolf := range fleets {
		aggressor, err := w.Empire(wolf.Owner())
		if err != nil {
			continue
		}

		if !fleetArmed(wolf, aggressor) {
			continue
		}

		plan := aggressor.PlanFor(wolf)
		if plan.Attack == AttackNobody {
			continue
		}

		for _, lamb := range fleets {
			if lamb.Owner() == wolf.Owner() {
				continue
			}
			if plan.Attack == AttackEveryone || aggressor.IsEnemy(lamb.Owner()) {
				return true
			}
		}
	}

	return false
}

// fleetArmed :
// Determines whether any token of the fleet carries weapons.
func fleetArmed(f *Fleet, e *Empire) bool {
	for _, key := range f.SortedTokenKeys() {
		design, ok := e.Designs[key]
		if ok && design.Summary.Armed() {
			return true
		}
	}

	return false
}

// battleStack :
// Battle-scope slice of one fleet holding the ships of a
// single design, with mutable pooled shields and armor. The
// key encodes the owner and a battle-local counter the same
// way fleet keys do.
type battleStack struct {
	key    uint64
	owner  int
	fleet  *Fleet
	token  *ShipToken
	design *ShipDesign
	plan   *BattlePlan

	quantity int
	shields  int
	armor    int

	x float64
	y float64

	target    *battleStack
	fleeing   bool
	destroyed bool
}

// armed :
// Determines whether the stack carries weapons.
func (s *battleStack) armed() bool {
	return s.design.Summary.Armed()
}

// matches :
// Determines whether the stack belongs to the input target
// category.
//
// The `category` defines the category to test.
//
// Returns `true` on a match.
func (s *battleStack) matches(category TargetCategory) bool {
	summary := &s.design.Summary

	switch category {
	case TargetAnyShip:
		return true
	case TargetStarbase:
		return summary.Starbase
	case TargetBomber:
		return summary.Bomber()
	case TargetArmedShip:
		return summary.Armed()
	case TargetSupportShip:
		return !summary.Armed()
	case TargetCapitalShip:
		// Capital ships are the missile platforms of a fleet.
		for _, weapon := range summary.Weapons {
			if weapon.Missile {
				return true
			}
		}
		return false
	case TargetEscort:
		if !summary.Armed() || summary.Starbase {
			return false
		}
		for _, weapon := range summary.Weapons {
			if weapon.Missile {
				return false
			}
		}
		return true
	}

	return false
}

// attractiveness :
// Computes the tie-breaking score of a candidate target: how
// much value it packs per point of defence.
//
// Returns the score.
func (s *battleStack) attractiveness() float64 {
	value := float64(s.design.Summary.Mass*s.quantity + s.design.Summary.Cost.Energy*s.quantity)
	defence := float64(s.shields + s.armor)
	if defence < 1 {
		defence = 1
	}

	return value / defence
}

// distanceTo :
// Computes the Euclidean distance to another stack on the
// battle board.
func (s *battleStack) distanceTo(other *battleStack) float64 {
	dx := s.x - other.x
	dy := s.y - other.y

	return math.Sqrt(dx*dx + dy*dy)
}

// battle :
// Holds the shared running state of one battle: the stacks,
// the board size and the report under construction.
type battle struct {
	w        *World
	position Position
	stacks   []*battleStack
	board    float64
	report   *BattleReport
	losses   map[int]int
}

// newBattle :
// Builds the battle state from an engagement: one stack per
// (fleet, design) pair, placed in per-empire boxes on the
// board. Shields fully regenerate when the battle starts.
//
// The `w` defines the world.
//
// The `engagement` defines the engagement to resolve.
//
// The `board` defines the side of the battle board.
//
// Returns the battle state.
func newBattle(w *World, engagement *Engagement, board float64) *battle {
	b := &battle{
		w:        w,
		position: engagement.Position,
		board:    board,
		losses:   make(map[int]int),
		report: &BattleReport{
			Year:      w.TurnYear,
			PositionX: engagement.Position.X,
			PositionY: engagement.Position.Y,
		},
	}

	// Owners in ascending order drive the box assignment.
	owners := make([]int, 0)
	seen := make(map[int]bool)
	for _, fleet := range engagement.Fleets {
		if !seen[fleet.Owner()] {
			seen[fleet.Owner()] = true
			owners = append(owners, fleet.Owner())
		}
	}
	sort.Ints(owners)

	boxes := int(math.Ceil(math.Sqrt(float64(len(owners)))))
	boxOf := make(map[int]int)
	for id, owner := range owners {
		boxOf[owner] = id
	}

	counter := uint64(0)
	for _, fleet := range engagement.Fleets {
		empire, err := w.Empire(fleet.Owner())
		if err != nil {
			continue
		}
		plan := empire.PlanFor(fleet)

		for _, key := range fleet.SortedTokenKeys() {
			token := fleet.Tokens[key]
			design, ok := empire.Designs[key]
			if !ok || token.Quantity == 0 {
				continue
			}

			counter++
			box := boxOf[fleet.Owner()]
			cellX := float64(box%boxes) + 0.5
			cellY := float64(box/boxes) + 0.5

			stack := &battleStack{
				key:      uint64(fleet.Owner())<<32 | counter,
				owner:    fleet.Owner(),
				fleet:    fleet,
				token:    token,
				design:   design,
				plan:     plan,
				quantity: token.Quantity,
				shields:  token.MaxShields * token.Quantity,
				armor:    token.Armor * token.Quantity,
				x:        cellX * board / float64(boxes),
				y:        cellY * board / float64(boxes),
			}

			b.stacks = append(b.stacks, stack)
			b.report.Participants = append(b.report.Participants, BattleParticipant{
				Stack:    stack.key,
				Owner:    stack.owner,
				Fleet:    fleet.Key,
				Design:   design.Name,
				Quantity: stack.quantity,
			})
		}
	}

	return b
}

// empireOf :
// Resolves the empire owning a stack.
func (b *battle) empireOf(s *battleStack) *Empire {
	empire, _ := b.w.Empire(s.owner)
	return empire
}

// selectTargets :
// Re-runs target selection for every surviving stack. Armed
// stacks pick the enemy maximising (priority, attractiveness)
// lexicographically; unarmed stacks pick the same kind of
// candidate but flee from it instead.
//
// Returns `true` while at least one armed stack has a valid
// target, which is the termination condition of both engines.
func (b *battle) selectTargets(round *BattleRound) bool {
	alive := false

	for _, wolf := range b.stacks {
		if wolf.destroyed {
			continue
		}

		wolf.target = nil
		wolf.fleeing = !wolf.armed()

		aggressor := b.empireOf(wolf)
		if aggressor == nil || wolf.plan.Attack == AttackNobody {
			continue
		}

		bestPriority := -1
		bestScore := 0.0

		for _, lamb := range b.stacks {
			if lamb.destroyed || lamb.owner == wolf.owner {
				continue
			}
			if wolf.plan.Attack == AttackEnemies && !aggressor.IsEnemy(lamb.owner) {
				continue
			}

			priority := 0
			for _, category := range wolf.plan.Targets {
				if lamb.matches(category) && wolf.plan.priorityOf(category) > priority {
					priority = wolf.plan.priorityOf(category)
				}
			}

			score := lamb.attractiveness()

			if priority > bestPriority || (priority == bestPriority && score > bestScore) {
				bestPriority = priority
				bestScore = score
				wolf.target = lamb
			}
		}

		if wolf.target != nil {
			if wolf.armed() {
				alive = true
			}
			round.Targets = append(round.Targets, TargetPick{
				Stack:  wolf.key,
				Target: wolf.target.key,
			})
		}
	}

	return alive
}

// fireWeapons :
// Resolves the weapon fire of one round: every battery of
// every surviving stack fires in (initiative ascending, stack
// key ascending) order. Beams lose power with the square of
// the distance; missiles roll their accuracy per shot.
//
// The `round` accumulates the report entries.
//
// The `scale` converts weapon ranges to board units.
//
// The `rng` drives the missile accuracy rolls.
func (b *battle) fireWeapons(round *BattleRound, scale float64, rng *rand.Rand) {
	type battery struct {
		stack  *battleStack
		weapon WeaponSpec
	}

	batteries := make([]battery, 0)
	for _, stack := range b.stacks {
		if stack.destroyed || stack.target == nil || stack.fleeing {
			continue
		}
		for _, weapon := range stack.design.Summary.Weapons {
			batteries = append(batteries, battery{stack: stack, weapon: weapon})
		}
	}

	sort.SliceStable(batteries, func(i, j int) bool {
		if batteries[i].weapon.Initiative != batteries[j].weapon.Initiative {
			return batteries[i].weapon.Initiative < batteries[j].weapon.Initiative
		}
		return batteries[i].stack.key < batteries[j].stack.key
	})

	for _, battery := range batteries {
		wolf := battery.stack
		lamb := wolf.target

		if wolf.destroyed || lamb == nil || lamb.destroyed {
			continue
		}

		distance := wolf.distanceTo(lamb)
		reach := float64(battery.weapon.Range) * scale
		if distance > reach {
			continue
		}

		power := battery.weapon.Power * battery.weapon.Count * wolf.quantity

		var toShields, toArmor int
		if battery.weapon.Missile {
			toShields, toArmor = resolveMissile(battery.weapon, wolf, lamb, power, rng)
		} else {
			toShields, toArmor = resolveBeam(power, distance, reach, lamb)
		}

		lamb.shields -= toShields
		if lamb.shields < 0 {
			lamb.shields = 0
		}
		lamb.armor -= toArmor

		round.Fire = append(round.Fire, WeaponFire{
			Stack:         wolf.key,
			Target:        lamb.key,
			Weapon:        battery.weapon.Name,
			Damage:        toShields + toArmor,
			TargetShields: lamb.shields,
			TargetArmor:   lamb.armor,
		})

		if lamb.armor <= 0 {
			b.destroyStack(lamb, round)
		}
	}
}

// resolveBeam :
// Computes the damage split of a beam volley. The power fades
// with the square of the distance, down to 90% of the rated
// power at maximum range. Shields absorb first and the rest
// hits the armor.
//
// Returns the damage to shields and to armor.
func resolveBeam(power int, distance float64, reach float64, lamb *battleStack) (int, int) {
	factor := 1.0
	if reach > 0 {
		factor = 1.0 - 0.1*(distance*distance)/(reach*reach)
	}

	damage := int(float64(power) * factor)

	toShields := damage
	toArmor := 0
	if toShields > lamb.shields {
		toArmor = toShields - lamb.shields
		toShields = lamb.shields
	}

	return toShields, toArmor
}

// resolveMissile :
// Computes the damage split of a missile volley. The accuracy
// improves with the battle computers of the shooter and
// degrades with the jammers of the target. A hit splits the
// damage between shields and armor; a miss only shakes the
// shields at an eighth of the power.
//
// Returns the damage to shields and to armor.
func resolveMissile(weapon WeaponSpec, wolf *battleStack, lamb *battleStack, power int, rng *rand.Rand) (int, int) {
	accuracy := weapon.Accuracy * (1 + wolf.design.Summary.Computer) * (1 - lamb.design.Summary.Jamming)
	if accuracy > 1 {
		accuracy = 1
	}
	if accuracy < 0 {
		accuracy = 0
	}

	if rng.Float64() < accuracy {
		return power / 2, power - power/2
	}

	return power / 8, 0
}

// destroyStack :
// Marks a stack destroyed, removes its token from the parent
// fleet and deposits the salvage.
//
// The `stack` defines the stack to destroy.
//
// The `round` accumulates the report entries.
func (b *battle) destroyStack(stack *battleStack, round *BattleRound) {
	stack.destroyed = true
	stack.armor = 0
	stack.shields = 0

	b.losses[stack.owner] += stack.quantity
	round.Destroyed = append(round.Destroyed, stack.key)

	delete(stack.fleet.Tokens, stack.token.Design)

	b.depositSalvage(stack)
}

// depositSalvage :
// Converts three quarters of the cost of a destroyed stack
// into minerals at the battle position. A star at the
// position collects them at a 0.9 factor; in deep space a
// salvage fleet is created or extended.
//
// The `stack` defines the destroyed stack.
func (b *battle) depositSalvage(stack *battleStack) {
	value := stack.design.Summary.Cost.MultiplyInt(stack.quantity).MultiplyFloat(0.75)

	if star := b.w.StarAt(b.position); star != nil {
		star.ResourcesOnHand = star.ResourcesOnHand.Add(Resources{
			Ironium:   value.Ironium,
			Boranium:  value.Boranium,
			Germanium: value.Germanium,
		}.MultiplyFloat(0.9))
		return
	}

	minerals := Cargo{
		Ironium:   value.Ironium,
		Boranium:  value.Boranium,
		Germanium: value.Germanium,
	}

	// Extend the existing salvage deposit at this position if
	// any, in deterministic order.
	for _, fleet := range b.w.AllFleets() {
		if fleet.IsSalvage() && fleet.Position == b.position {
			fleet.Cargo = fleet.Cargo.Add(minerals)
			return
		}
	}

	owner := b.empireOf(stack)
	if owner == nil {
		return
	}

	salvage := &Fleet{
		Key:             owner.NextFleetKey(),
		Name:            SalvageFleetName,
		Position:        b.position,
		Tokens:          make(map[DesignKey]*ShipToken),
		Waypoints:       []Waypoint{NoTaskWaypoint(b.position)},
		Cargo:           minerals,
		TurnYearCreated: b.w.TurnYear,
	}
	owner.Fleets[salvage.Key] = salvage
}

// finish :
// Writes the battle outcome back to the world: surviving
// stacks update their tokens, every participant empire gets
// the report, a summary message and the enemy designs it saw.
//
// Returns the messages produced by the battle.
func (b *battle) finish() []Message {
	messages := make([]Message, 0)

	b.report.Losses = b.losses

	participants := make([]int, 0)
	seen := make(map[int]bool)

	for _, stack := range b.stacks {
		if !seen[stack.owner] {
			seen[stack.owner] = true
			participants = append(participants, stack.owner)
		}

		if stack.destroyed {
			continue
		}

		// Write the pooled defence back to the token.
		stack.token.Armor = stack.armor / maxInt(stack.quantity, 1)
		if stack.token.Armor < 1 {
			stack.token.Armor = 1
		}
		stack.token.Shields = stack.shields / maxInt(stack.quantity, 1)
	}

	sort.Ints(participants)

	for _, id := range participants {
		empire, err := b.w.Empire(id)
		if err != nil {
			continue
		}

		empire.BattleReports = append(empire.BattleReports, b.report)

		// Enemy designs observed in the battle feed the intel of
		// the empire.
		for _, stack := range b.stacks {
			if stack.owner == id {
				continue
			}

			report, ok := empire.EmpireReports[stack.owner]
			if !ok {
				report = &EmpireReport{
					ID:       stack.owner,
					Relation: empire.RelationTo(stack.owner),
				}
				empire.EmpireReports[stack.owner] = report
			}
			if report.KnownDesigns == nil {
				report.KnownDesigns = make(map[DesignKey]*ShipDesign)
			}
			report.KnownDesigns[stack.design.Key] = stack.design
		}

		messages = append(messages, Message{
			Audience: id,
			Text: fmt.Sprintf("A battle took place at (%d, %d) in %d; we lost %d ships.",
				b.position.X, b.position.Y, b.w.TurnYear, b.losses[id]),
			Kind: BattleMessage,
		})
	}

	return messages
}
