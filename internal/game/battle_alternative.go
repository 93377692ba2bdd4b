package game

import (
	"math"
	"math/rand"
)

// Alternative engine parameters: a 1000-unit board where one
// weapon range unit spans 100 board units, resolved over up
// to 60 rounds of continuous movement.
const (
	alternativeBoardSize  = 1000.0
	alternativeBoardScale = 100.0
	alternativeMaxRounds  = 60

	// alternativeJitterRounds is the count of early rounds
	// during which the trajectories are randomly perturbed so
	// that the stacks do not converge on a single line.
	alternativeJitterRounds = 10
)

// AlternativeBattleEngine :
// The continuous combat resolver: stacks move a fractional
// velocity vector each round on a large board, with a
// randomised jitter during the opening rounds. Unarmed
// stacks steer away from the nearest armed enemy.
type AlternativeBattleEngine struct{}

// Run :
// Implementation of the `BattleEngine` interface.
func (engine *AlternativeBattleEngine) Run(w *World, engagements []*Engagement, rng *rand.Rand) []Message {
	messages := make([]Message, 0)

	for _, engagement := range engagements {
		b := newBattle(w, engagement, alternativeBoardSize)

		for roundID := 0; roundID < alternativeMaxRounds; roundID++ {
			round := BattleRound{Round: roundID}

			if !b.selectTargets(&round) {
				break
			}

			engine.moveStacks(b, roundID, &round, rng)
			b.fireWeapons(&round, alternativeBoardScale, rng)

			b.report.Rounds = append(b.report.Rounds, round)
		}

		messages = append(messages, b.finish()...)
	}

	return messages
}

// moveStacks :
// Advances every surviving stack by its velocity vector for
// the round. The speed scales with the battle movement of the
// design; armed stacks head for their target, unarmed stacks
// steer away from the nearest armed enemy. Starbases never
// move.
//
// The `b` defines the battle.
//
// The `roundID` defines the index of the round.
//
// The `round` accumulates the report entries.
//
// The `rng` drives the early-game jitter.
func (engine *AlternativeBattleEngine) moveStacks(b *battle, roundID int, round *BattleRound, rng *rand.Rand) {
	for _, stack := range b.stacks {
		if stack.destroyed {
			continue
		}
		if stack.design.Summary.Starbase {
			continue
		}

		var dx, dy float64

		if stack.fleeing {
			threat := engine.nearestArmedEnemy(b, stack)
			if threat == nil {
				continue
			}
			dx = stack.x - threat.x
			dy = stack.y - threat.y
		} else {
			if stack.target == nil {
				continue
			}
			dx = stack.target.x - stack.x
			dy = stack.target.y - stack.y
		}

		distance := math.Sqrt(dx*dx + dy*dy)
		if distance == 0 {
			continue
		}

		speed := stack.design.Summary.Movement * alternativeBoardScale

		// Perturb the opening trajectories so that the two
		// fronts do not collapse on a single line.
		if roundID < alternativeJitterRounds {
			angle := (rng.Float64() - 0.5) * math.Pi / 4
			cos := math.Cos(angle)
			sin := math.Sin(angle)
			dx, dy = dx*cos-dy*sin, dx*sin+dy*cos
			distance = math.Sqrt(dx*dx + dy*dy)
		}

		step := speed
		if !stack.fleeing && distance < speed {
			step = distance
		}

		stack.x = clampToBoard(stack.x+dx/distance*step, b.board)
		stack.y = clampToBoard(stack.y+dy/distance*step, b.board)

		round.Moves = append(round.Moves, StackMove{
			Stack: stack.key,
			X:     stack.x,
			Y:     stack.y,
		})
	}
}

// nearestArmedEnemy :
// Finds the closest surviving armed stack of another empire,
// which is what unarmed stacks flee from.
//
// The `b` defines the battle.
//
// The `stack` defines the fleeing stack.
//
// Returns the threat or `nil`.
func (engine *AlternativeBattleEngine) nearestArmedEnemy(b *battle, stack *battleStack) *battleStack {
	var nearest *battleStack
	best := math.Inf(1)

	for _, candidate := range b.stacks {
		if candidate.destroyed || candidate.owner == stack.owner || !candidate.armed() {
			continue
		}

		distance := stack.distanceTo(candidate)
		if distance < best {
			best = distance
			nearest = candidate
		}
	}

	return nearest
}
