package game

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
	"github.com/stellarshenson/stars-ultranova-web-sub000/pkg/logger"
)

// ErrTurnBudgetExceeded : Indicates that the turn generation
// exceeded its wall-clock budget and was rolled back.
var ErrTurnBudgetExceeded = fmt.Errorf("Turn generation exceeded its time budget")

// ErrEngineInvariant : Indicates that the generated turn
// violated an engine invariant and was rolled back.
var ErrEngineInvariant = fmt.Errorf("Turn generation violated an engine invariant")

// Orchestrator :
// Drives the generation of turns for one game. The pipeline
// is a strictly ordered sequence of steps, each of which sees
// the output of every prior one. The orchestrator works on a
// copy of the world so that a failed turn leaves the input
// state untouched.
//
// The `catalog` allows the steps to resolve components.
//
// The `seed` drives the per-turn random source: each turn
// uses a generator seeded with the seed combined with the
// turn year so that replaying a turn is deterministic.
//
// The `budget` bounds the wall-clock duration of a turn.
//
// The `log` allows to notify errors and debugging information
// to the user.
type Orchestrator struct {
	catalog *model.Catalog
	seed    int64
	budget  time.Duration
	log     logger.Logger
}

// turnModule : The logging module of the orchestrator.
const turnModule = "turn"

// NewOrchestrator :
// Builds an orchestrator for one game.
//
// The `catalog` defines the component catalog of the game.
//
// The `seed` defines the random seed of the game.
//
// The `budget` defines the wall-clock budget of a turn; a
// non-positive budget disables the check.
//
// The `log` defines the logger.
//
// Returns the orchestrator.
func NewOrchestrator(catalog *model.Catalog, seed int64, budget time.Duration, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		catalog: catalog,
		seed:    seed,
		budget:  budget,
		log:     log,
	}
}

// pipelineStep :
// One named step of the turn pipeline.
type pipelineStep struct {
	name string
	run  func() []Message
}

// GenerateTurn :
// Runs the whole turn pipeline against a copy of the input
// world. On success the copy becomes the new authoritative
// state. A budget overrun or an invariant violation rolls
// back: the input world is returned unchanged along with the
// error, and the players are notified.
//
// The `w` defines the world to generate a turn for.
//
// The `commands` holds the commands of each empire in
// submission order; they are drained in LIFO order.
//
// Returns the resulting world along with any error.
func (o *Orchestrator) GenerateTurn(w *World, commands map[int][]Command) (*World, error) {
	start := time.Now()

	next, err := w.Clone(o.catalog)
	if err != nil {
		return w, err
	}

	rng := rand.New(rand.NewSource(o.seed ^ int64(next.TurnYear)))

	// A fresh turn starts with a clean report for everybody.
	for _, id := range next.SortedEmpireIDs() {
		empire := next.Empires[id]
		empire.Messages = nil
		empire.BattleReports = nil
	}

	var engine BattleEngine = &StandardBattleEngine{}
	if next.AlternateBattleEngine {
		engine = &AlternativeBattleEngine{}
	}

	steps := []pipelineStep{
		{"apply-commands", func() []Message { return o.applyCommands(next, commands) }},
		{"first-step", func() []Message { return o.firstStep(next) }},
		{"split-merge", func() []Message { return processTransfersAndMerges(next) }},
		{"scrap", func() []Message { return scrapFleets(next) }},
		{"move-fleets", func() []Message { return o.moveFleets(next, rng) }},
		{"minefield-check", func() []Message { return o.checkAllMinefields(next, rng) }},
		{"cleanup-fleets", func() []Message { cleanupFleets(next); return nil }},
		{"battles", func() []Message { return engine.Run(next, FindEngagements(next), rng) }},
		{"cleanup-fleets", func() []Message { cleanupFleets(next); return nil }},
		{"victory-check", func() []Message { return o.victoryCheck(next) }},
		{"new-year", func() []Message { return o.newYear(next) }},
		{"star-update", func() []Message { return o.updateStars(next) }},
		{"bombing", func() []Message { return bombStars(next) }},
		{"post-bombing", func() []Message { return coloniseAndInvade(next) }},
		{"scan", func() []Message { updateIntel(next); return nil }},
		{"packets", func() []Message { return movePackets(next) }},
		{"minefield-visibility", func() []Message { refreshMinefieldVisibility(next); return nil }},
	}

	for _, step := range steps {
		if o.budget > 0 && time.Since(start) > o.budget {
			o.log.Trace(logger.Error, turnModule, fmt.Sprintf("Turn %d aborted during \"%s\" after %v", next.TurnYear, step.name, time.Since(start)))
			o.notifyRollback(w, "The turn could not be generated in time and was rolled back.")
			return w, ErrTurnBudgetExceeded
		}

		deliver(next, step.run())
	}

	if err := checkInvariants(next); err != nil {
		o.log.Trace(logger.Error, turnModule, fmt.Sprintf("Turn %d rolled back: %v", next.TurnYear, err))
		o.notifyRollback(w, "An internal error occurred while generating the turn; it was rolled back.")
		return w, ErrEngineInvariant
	}

	o.log.Trace(logger.Verbose, turnModule, fmt.Sprintf("Generated turn %d in %v", next.TurnYear, time.Since(start)))

	return next, nil
}

// deliver :
// Routes the messages of a step to the empires they address.
func deliver(w *World, messages []Message) {
	for _, message := range messages {
		if empire, err := w.Empire(message.Audience); err == nil {
			empire.Messages = append(empire.Messages, message)
		}
	}
}

// notifyRollback :
// Tells every empire of the input world that the turn was
// rolled back.
func (o *Orchestrator) notifyRollback(w *World, reason string) {
	for _, id := range w.SortedEmpireIDs() {
		w.Empires[id].Notify(Message{
			Text: reason,
			Kind: InternalErrorMessage,
		})
	}
}

// applyCommands :
// Drains the submitted commands. Empires are processed in
// ascending identifier order; within one empire the commands
// are applied in LIFO submission order so that the last
// submission wins conflicts. Each validation failure costs
// exactly one message and nothing else.
//
// The `w` defines the world.
//
// The `commands` holds the commands per empire in submission
// order.
//
// Returns the messages produced by the step.
func (o *Orchestrator) applyCommands(w *World, commands map[int][]Command) []Message {
	messages := make([]Message, 0)

	for _, id := range w.SortedEmpireIDs() {
		empire := w.Empires[id]
		queue := commands[id]

		for cmdID := len(queue) - 1; cmdID >= 0; cmdID-- {
			cmd := queue[cmdID]

			ok, failure := cmd.Validate(empire, w)
			if !ok {
				if failure != nil {
					failure.Audience = id
					messages = append(messages, *failure)
				}
				continue
			}

			if outcome := cmd.Apply(empire, w); outcome != nil {
				outcome.Audience = id
				messages = append(messages, *outcome)
			}
		}

		// Freshly added designs carry a stale summary; designs
		// that do not resolve against the catalog are dropped.
		for _, key := range sortedDesignKeys(empire) {
			design := empire.Designs[key]
			if !design.Dirty {
				continue
			}
			if err := design.UpdateSummary(o.catalog); err != nil {
				delete(empire.Designs, key)
				messages = append(messages, Message{
					Audience: id,
					Text:     fmt.Sprintf("Invalid Command: design \"%s\" does not resolve against the catalog", design.Name),
					Kind:     InvalidCommandMessage,
				})
			}
		}
	}

	return messages
}

// sortedDesignKeys :
// Provides the design keys of an empire in ascending order.
func sortedDesignKeys(e *Empire) []DesignKey {
	keys := make([]DesignKey, 0, len(e.Designs))
	for key := range e.Designs {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

// firstStep :
// Lays the mines of the turn, then decays every minefield and
// drops the ones too small to matter.
//
// The `w` defines the world.
//
// Returns the messages produced by the step.
func (o *Orchestrator) firstStep(w *World) []Message {
	messages := layMines(w)

	for _, key := range w.SortedMinefieldKeys() {
		field := w.Minefields[key]
		field.Decay()
		if field.Mines <= MinefieldMinimumMines {
			delete(w.Minefields, key)
		}
	}

	return messages
}

// moveFleets :
// Moves every fleet of the world except packets, salvage and
// starbases, then refuels and repairs everything.
//
// The `w` defines the world.
//
// The `rng` drives the cheap-engines failure checks.
//
// Returns the messages produced by the step.
func (o *Orchestrator) moveFleets(w *World, rng *rand.Rand) []Message {
	messages := make([]Message, 0)

	for _, fleet := range w.AllFleets() {
		empire, err := w.Empire(fleet.Owner())
		if err != nil {
			continue
		}

		if fleet.Packet || fleet.IsSalvage() {
			continue
		}

		if !isStarbase(fleet, empire) {
			messages = append(messages, moveFleet(w, empire, fleet, o.catalog, rng)...)
		}

		refuelAndRepair(w, empire, fleet)
	}

	return messages
}

// isStarbase :
// Determines whether any token of the fleet is built on a
// starbase hull.
func isStarbase(f *Fleet, e *Empire) bool {
	for _, key := range f.SortedTokenKeys() {
		design, ok := e.Designs[key]
		if ok && design.Summary.Starbase {
			return true
		}
	}

	return false
}

// checkAllMinefields :
// Applies the minefield hazard to every fleet that moved.
//
// The `w` defines the world.
//
// The `rng` drives the hit rolls.
//
// Returns the messages produced by the step.
func (o *Orchestrator) checkAllMinefields(w *World, rng *rand.Rand) []Message {
	messages := make([]Message, 0)

	for _, fleet := range w.AllFleets() {
		empire, err := w.Empire(fleet.Owner())
		if err != nil {
			continue
		}

		messages = append(messages, checkMinefields(w, empire, fleet, rng)...)
	}

	return messages
}

// victoryCheck :
// Reserved hook: victory conditions are evaluated here once
// they are specified.
func (o *Orchestrator) victoryCheck(w *World) []Message {
	return nil
}

// newYear :
// Advances the calendar and resets the submission state of
// every empire.
//
// The `w` defines the world.
//
// Returns the messages produced by the step.
func (o *Orchestrator) newYear(w *World) []Message {
	w.TurnYear++

	for _, id := range w.SortedEmpireIDs() {
		empire := w.Empires[id]
		empire.Submitted = false
		empire.TurnYear = w.TurnYear
	}

	return nil
}

// updateStars :
// Runs the yearly economy of every owned star.
//
// The `w` defines the world.
//
// Returns the messages produced by the step.
func (o *Orchestrator) updateStars(w *World) []Message {
	messages := make([]Message, 0)

	for _, id := range w.SortedEmpireIDs() {
		empire := w.Empires[id]

		for _, name := range empire.SortedStarNames() {
			star, err := w.Star(name)
			if err != nil || star.Owner != empire.ID {
				continue
			}

			messages = append(messages, updateStar(w, empire, star, o.catalog)...)
		}
	}

	return messages
}

// checkInvariants :
// Verifies the engine invariants on the generated world: no
// negative stockpile or population anywhere, and no empty
// fleet surviving the cleanup steps.
//
// The `w` defines the world to verify.
//
// Returns an error on the first violation.
func checkInvariants(w *World) error {
	for _, name := range w.SortedStarNames() {
		star := w.Stars[name]
		if star.ResourcesOnHand.Ironium < 0 || star.ResourcesOnHand.Boranium < 0 ||
			star.ResourcesOnHand.Germanium < 0 || star.ResourcesOnHand.Energy < 0 {
			return fmt.Errorf("star \"%s\" holds negative resources", name)
		}
		if star.Colonists < 0 {
			return fmt.Errorf("star \"%s\" holds a negative population", name)
		}
		if star.Owned() != (star.Colonists > 0) {
			return fmt.Errorf("star \"%s\" ownership does not match its population", name)
		}
	}

	for _, fleet := range w.AllFleets() {
		if fleet.Empty() {
			return fmt.Errorf("fleet %d survived cleanup while empty", fleet.Key)
		}
		if fleet.FuelAvailable < 0 {
			return fmt.Errorf("fleet %d holds negative fuel", fleet.Key)
		}
	}

	return nil
}
