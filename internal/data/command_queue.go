package data

import (
	"fmt"
	"sync"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/game"
)

// CommandQueue :
// In-memory intake buffer of a game. Commands are accumulated
// per empire between turns and handed to the orchestrator in
// one batch when the turn is generated: submissions are never
// live-applied, which is what keeps the outcome independent
// of the interleaving of the players.
//
// The `locker` protects the concurrent accesses to the
// pending commands.
//
// The `pending` holds the commands of each empire in
// submission order.
type CommandQueue struct {
	locker  sync.Mutex
	pending map[int][]game.Command
}

// NewCommandQueue :
// Builds an empty queue.
//
// Returns the queue.
func NewCommandQueue() *CommandQueue {
	return &CommandQueue{
		pending: make(map[int][]game.Command),
	}
}

// Push :
// Appends commands for an empire. The submission order is
// preserved; the orchestrator drains it in LIFO order so the
// last submission wins conflicts.
//
// The `empireID` defines the submitting empire.
//
// The `commands` defines the commands to queue.
//
// Returns any error.
func (q *CommandQueue) Push(empireID int, commands []game.Command) error {
	if empireID < 1 || empireID > game.MaxEmpireID {
		return fmt.Errorf("Cannot queue commands for invalid empire %d", empireID)
	}

	q.locker.Lock()
	defer q.locker.Unlock()

	q.pending[empireID] = append(q.pending[empireID], commands...)

	return nil
}

// Drain :
// Removes and returns every pending command, grouped per
// empire in submission order.
//
// Returns the drained commands.
func (q *CommandQueue) Drain() map[int][]game.Command {
	q.locker.Lock()
	defer q.locker.Unlock()

	drained := q.pending
	q.pending = make(map[int][]game.Command)

	return drained
}
