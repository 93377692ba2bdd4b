package data

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/game"
	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
	"github.com/stellarshenson/stars-ultranova-web-sub000/pkg/background"
	"github.com/stellarshenson/stars-ultranova-web-sub000/pkg/logger"
)

// Game :
// One live game instance: the authoritative world, its intake
// queue and the orchestrator generating its turns. The world
// is only mutated inside `GenerateTurn`; external readers go
// through `Snapshot` which serialises under the lock so they
// never observe a half-generated turn.
type Game struct {
	ID   string
	Seed int64

	locker       sync.RWMutex
	world        *game.World
	queue        *CommandQueue
	orchestrator *game.Orchestrator
}

// Snapshot :
// Serialises a consistent view of the world of the game.
//
// Returns the snapshot along with any error.
func (g *Game) Snapshot() ([]byte, error) {
	g.locker.RLock()
	defer g.locker.RUnlock()

	return g.world.Snapshot()
}

// TurnYear :
// Provides the current year of the game.
//
// Returns the year.
func (g *Game) TurnYear() int {
	g.locker.RLock()
	defer g.locker.RUnlock()

	return g.world.TurnYear
}

// MarkSubmitted :
// Records that an empire handed in its commands for the
// current turn.
//
// The `empireID` defines the empire to mark.
//
// Returns whether every empire has now submitted.
func (g *Game) MarkSubmitted(empireID int) bool {
	g.locker.Lock()
	defer g.locker.Unlock()

	if empire, err := g.world.Empire(empireID); err == nil {
		empire.Submitted = true
	}

	all := true
	for _, id := range g.world.SortedEmpireIDs() {
		if !g.world.Empires[id].Submitted {
			all = false
		}
	}

	return all
}

// AllSubmitted :
// Determines whether every empire of the game handed in its
// commands for the current turn.
//
// Returns `true` when the turn is ready to be generated.
func (g *Game) AllSubmitted() bool {
	g.locker.RLock()
	defer g.locker.RUnlock()

	for _, id := range g.world.SortedEmpireIDs() {
		if !g.world.Empires[id].Submitted {
			return false
		}
	}

	return true
}

// snapshotStore :
// The slice of the persistence adapter the games proxy relies
// on, satisfied by `SnapshotProxy`.
type snapshotStore interface {
	SaveSnapshot(gameID string, turnYear int, snapshot []byte) error
	LoadSnapshot(gameID string) ([]byte, int, error)
	AppendCommands(gameID string, turnYear int, empireID int, commands [][]byte) error
	DrainCommands(gameID string, turnYear int) (map[int][][]byte, error)
}

// GamesProxy :
// Owns the live games of the server: creation, lookup,
// command intake and turn generation. Games are independent
// of each other; the proxy only serialises the accesses to
// its own map.
//
// The `games` holds the live games keyed by identifier.
//
// The `snapshots` defines the persistence adapter.
//
// The `notifier` publishes the turn-generated events.
//
// The `catalog` defines the component catalog shared by the
// games.
//
// The `budget` bounds the wall-clock duration of a turn.
//
// The `log` allows to notify errors and information.
type GamesProxy struct {
	locker sync.Mutex
	games  map[string]*Game

	snapshots snapshotStore
	notifier  *Notifier
	catalog   *model.Catalog
	budget    time.Duration
	log       logger.Logger
}

// gamesModule : The logging module of the proxy.
const gamesModule = "games"

// persistAttempts : How many times a failing snapshot write
// is retried before the turn is rolled back.
const persistAttempts = 3

// NewGamesProxy :
// Builds a proxy from its dependencies.
//
// The `snapshots` defines the persistence adapter.
//
// The `notifier` defines the event publisher.
//
// The `budget` defines the wall-clock budget of a turn.
//
// The `log` defines the logger.
//
// Returns the proxy.
func NewGamesProxy(snapshots snapshotStore, notifier *Notifier, budget time.Duration, log logger.Logger) *GamesProxy {
	return &GamesProxy{
		games:     make(map[string]*Game),
		snapshots: snapshots,
		notifier:  notifier,
		catalog:   model.DefaultCatalog(),
		budget:    budget,
		log:       log,
	}
}

// CreateGame :
// Generates a fresh galaxy and registers it as a live game.
//
// The `playerCount` defines how many empires to create.
//
// The `size` defines the extent of the galaxy.
//
// The `seed` drives the galaxy layout and the per-turn random
// sources.
//
// The `alternateEngine` selects the battle engine.
//
// Returns the game along with any error.
func (p *GamesProxy) CreateGame(playerCount int, size game.UniverseSize, seed int64, alternateEngine bool) (*Game, error) {
	world, err := game.Generate(playerCount, size, seed)
	if err != nil {
		return nil, fmt.Errorf("Could not generate galaxy (err: %v)", err)
	}
	world.AlternateBattleEngine = alternateEngine

	g := &Game{
		ID:           uuid.New().String(),
		Seed:         seed,
		world:        world,
		queue:        NewCommandQueue(),
		orchestrator: game.NewOrchestrator(p.catalog, seed, p.budget, p.log),
	}

	snapshot, err := world.Snapshot()
	if err != nil {
		return nil, err
	}
	if err := p.snapshots.SaveSnapshot(g.ID, world.TurnYear, snapshot); err != nil {
		return nil, err
	}

	p.locker.Lock()
	p.games[g.ID] = g
	p.locker.Unlock()

	p.log.Trace(logger.Info, gamesModule, fmt.Sprintf("Created game \"%s\" with %d players", g.ID, playerCount))

	return g, nil
}

// Game :
// Fetches a live game from its identifier, reloading it from
// the persisted snapshot when it is not in memory.
//
// The `id` defines the identifier of the game.
//
// Returns the game along with any error.
func (p *GamesProxy) Game(id string) (*Game, error) {
	p.locker.Lock()
	defer p.locker.Unlock()

	if g, ok := p.games[id]; ok {
		return g, nil
	}

	snapshot, _, err := p.snapshots.LoadSnapshot(id)
	if err != nil {
		return nil, fmt.Errorf("Could not find game \"%s\" (err: %v)", id, err)
	}

	world, err := game.WorldFromSnapshot(snapshot, p.catalog)
	if err != nil {
		return nil, fmt.Errorf("Could not restore game \"%s\" (err: %v)", id, err)
	}

	g := &Game{
		ID:           id,
		world:        world,
		queue:        NewCommandQueue(),
		orchestrator: game.NewOrchestrator(p.catalog, 0, p.budget, p.log),
	}

	if err := p.reloadCommands(g); err != nil {
		return nil, err
	}

	p.games[id] = g

	return g, nil
}

// reloadCommands :
// Puts the commands persisted before a restart back into the
// intake queue of a restored game, and persists them again so
// that they survive the next restart too.
//
// The `g` defines the restored game.
//
// Returns any error.
func (p *GamesProxy) reloadCommands(g *Game) error {
	pending, err := p.snapshots.DrainCommands(g.ID, g.world.TurnYear)
	if err != nil {
		return fmt.Errorf("Could not restore commands of \"%s\" (err: %v)", g.ID, err)
	}

	empireIDs := make([]int, 0, len(pending))
	for empireID := range pending {
		empireIDs = append(empireIDs, empireID)
	}
	sort.Ints(empireIDs)

	for _, empireID := range empireIDs {
		raw := pending[empireID]

		commands := make([]game.Command, 0, len(raw))
		for _, data := range raw {
			cmd, err := game.UnmarshalCommand(data)
			if err != nil {
				return fmt.Errorf("Could not restore commands of \"%s\" (err: %v)", g.ID, err)
			}
			commands = append(commands, cmd)
		}

		if err := g.queue.Push(empireID, commands); err != nil {
			return err
		}
		if err := p.snapshots.AppendCommands(g.ID, g.world.TurnYear, empireID, raw); err != nil {
			return err
		}
	}

	return nil
}

// SubmitCommands :
// Queues the raw commands of an empire for the next turn and
// persists them. Commands that do not parse are rejected as a
// whole so that the persisted and in-memory queues stay in
// sync.
//
// The `gameID` defines the identifier of the game.
//
// The `empireID` defines the submitting empire.
//
// The `raw` holds the JSON commands in submission order.
//
// Returns any error.
func (p *GamesProxy) SubmitCommands(gameID string, empireID int, raw [][]byte) error {
	g, err := p.Game(gameID)
	if err != nil {
		return err
	}

	commands := make([]game.Command, 0, len(raw))
	for _, data := range raw {
		cmd, err := game.UnmarshalCommand(data)
		if err != nil {
			return fmt.Errorf("Could not parse command for empire %d (err: %v)", empireID, err)
		}
		commands = append(commands, cmd)
	}

	if err := g.queue.Push(empireID, commands); err != nil {
		return err
	}

	if err := p.snapshots.AppendCommands(gameID, g.TurnYear(), empireID, raw); err != nil {
		return err
	}

	g.MarkSubmitted(empireID)

	return nil
}

// GenerateTurn :
// Runs the turn pipeline of a game: drains the intake queue,
// generates the turn, persists the new snapshot and publishes
// the event. A snapshot write that keeps failing rolls the
// turn back so that the persisted state and the in-memory
// state never diverge.
//
// The `gameID` defines the identifier of the game.
//
// Returns the per-empire messages of the turn along with any
// error.
func (p *GamesProxy) GenerateTurn(gameID string) (map[int][]game.Message, error) {
	g, err := p.Game(gameID)
	if err != nil {
		return nil, err
	}

	g.locker.Lock()
	defer g.locker.Unlock()

	previousYear := g.world.TurnYear
	commands := g.queue.Drain()

	next, err := g.orchestrator.GenerateTurn(g.world, commands)
	if err != nil {
		return nil, err
	}

	snapshot, err := next.Snapshot()
	if err != nil {
		return nil, err
	}

	persisted := false
	backoff := 100 * time.Millisecond
	for attempt := 0; attempt < persistAttempts; attempt++ {
		if err = p.snapshots.SaveSnapshot(g.ID, next.TurnYear, snapshot); err == nil {
			persisted = true
			break
		}

		p.log.Trace(logger.Warning, gamesModule, fmt.Sprintf("Failed to persist turn %d of \"%s\" (err: %v)", next.TurnYear, g.ID, err))
		time.Sleep(backoff)
		backoff *= 2
	}

	if !persisted {
		return nil, fmt.Errorf("Could not persist turn %d of \"%s\"; the turn was rolled back", next.TurnYear, g.ID)
	}

	// Drop the drained commands from the persisted queue now
	// that the turn they fed is durable.
	if _, err := p.snapshots.DrainCommands(g.ID, previousYear); err != nil {
		p.log.Trace(logger.Warning, gamesModule, fmt.Sprintf("Could not purge commands of \"%s\" (err: %v)", g.ID, err))
	}

	g.world = next

	messages := make(map[int][]game.Message)
	for _, id := range next.SortedEmpireIDs() {
		messages[id] = next.Empires[id].Messages
	}

	p.notifier.TurnGenerated(TurnEvent{
		GameID:   g.ID,
		TurnYear: next.TurnYear,
		Messages: messages,
	})

	return messages, nil
}

// StartScheduler :
// Starts the background process driving the automatic turn
// generation: at every interval the live games whose empires
// have all submitted get their next turn generated.
//
// The `interval` defines the polling period.
//
// Returns the process along with any error.
func (p *GamesProxy) StartScheduler(interval time.Duration) (*background.Process, error) {
	process := background.NewProcess(interval, p.log).
		WithModule(gamesModule).
		WithOperation(p.generateReadyTurns)

	return process, process.Start()
}

// generateReadyTurns :
// Generates a turn for every live game whose empires all
// handed in their commands.
//
// Returns whether every ready game generated successfully,
// along with the last error.
func (p *GamesProxy) generateReadyTurns() (bool, error) {
	p.locker.Lock()
	ready := make([]*Game, 0)
	for _, g := range p.games {
		if g.AllSubmitted() {
			ready = append(ready, g)
		}
	}
	p.locker.Unlock()

	success := true
	var lastErr error

	for _, g := range ready {
		if _, err := p.GenerateTurn(g.ID); err != nil {
			p.log.Trace(logger.Error, gamesModule, fmt.Sprintf("Could not generate scheduled turn for \"%s\" (err: %v)", g.ID, err))
			success = false
			lastErr = err
		}
	}

	return success, lastErr
}
