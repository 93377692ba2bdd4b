package game

import (
	"math"
	"math/rand"
)

// standardBoardSize : Side of the battle board of the
// standard engine, in board units.
const standardBoardSize = 10.0

// movementPhasesPerRound : The standard engine splits each
// round in three movement phases; the movement table decides
// how many of them a stack uses.
const movementPhasesPerRound = 3

// movementTable :
// Phases moved per round for each battle speed class, indexed
// by the round modulo eight. Rows cover the classes from 0.5
// to 2.5 and above in steps of 0.25.
var movementTable = [9][8]int{
	{0, 1, 0, 1, 0, 1, 0, 1},
	{1, 1, 1, 0, 1, 1, 1, 0},
	{1, 1, 1, 1, 1, 1, 1, 1},
	{1, 2, 1, 1, 1, 2, 1, 1},
	{1, 2, 1, 2, 1, 2, 1, 2},
	{2, 2, 2, 1, 2, 2, 2, 1},
	{2, 2, 2, 2, 2, 2, 2, 2},
	{2, 3, 2, 2, 2, 3, 2, 2},
	{2, 3, 2, 3, 2, 3, 2, 3},
}

// speedClassOf :
// Maps the battle movement of a design to a row of the
// movement table.
//
// The `movement` defines the battle movement of the design.
//
// Returns the row index.
func speedClassOf(movement float64) int {
	class := int(math.Round((movement - 0.5) / 0.25))
	if class < 0 {
		class = 0
	}
	if class > 8 {
		class = 8
	}

	return class
}

// StandardBattleEngine :
// The round-based combat resolver: a 10-unit board, up to 16
// rounds of 3 movement phases each, with the movement table
// rationing the phases per speed class.
type StandardBattleEngine struct{}

// Run :
// Implementation of the `BattleEngine` interface.
func (engine *StandardBattleEngine) Run(w *World, engagements []*Engagement, rng *rand.Rand) []Message {
	messages := make([]Message, 0)

	for _, engagement := range engagements {
		b := newBattle(w, engagement, standardBoardSize)

		for roundID := 0; roundID < MaxBattleRounds; roundID++ {
			round := BattleRound{Round: roundID}

			if !b.selectTargets(&round) {
				break
			}

			engine.moveStacks(b, roundID, &round)
			b.fireWeapons(&round, 1.0, rng)

			b.report.Rounds = append(b.report.Rounds, round)
		}

		messages = append(messages, b.finish()...)
	}

	return messages
}

// moveStacks :
// Runs the three movement phases of a round. A stack moves
// one board unit per phase, towards its target or away from
// it when fleeing; the movement table caps how many phases
// the stack uses this round. Starbases never move.
//
// The `b` defines the battle.
//
// The `roundID` defines the index of the round.
//
// The `round` accumulates the report entries.
func (engine *StandardBattleEngine) moveStacks(b *battle, roundID int, round *BattleRound) {
	for phase := 0; phase < movementPhasesPerRound; phase++ {
		for _, stack := range b.stacks {
			if stack.destroyed || stack.target == nil {
				continue
			}
			if stack.design.Summary.Starbase {
				continue
			}

			class := speedClassOf(stack.design.Summary.Movement)
			if movementTable[class][roundID%8] <= phase {
				continue
			}

			dx := stack.target.x - stack.x
			dy := stack.target.y - stack.y
			distance := math.Sqrt(dx*dx + dy*dy)
			if distance == 0 {
				continue
			}

			step := 1.0
			if stack.fleeing {
				step = -1.0
			} else if distance < 1.0 {
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
}

// clampToBoard :
// Keeps a coordinate inside the battle board.
func clampToBoard(value float64, board float64) float64 {
	if value < 0 {
		return 0
	}
	if value > board {
		return board
	}

	return value
}
