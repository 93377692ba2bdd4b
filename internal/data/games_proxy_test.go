package data

import (
	"fmt"
	"testing"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/game"
	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore :
// In-memory stand-in for the persistence adapter, good enough
// to drive the proxy through a simulated restart.
type memoryStore struct {
	snapshot []byte
	turnYear int
	commands map[int][][]byte
}

func (s *memoryStore) SaveSnapshot(gameID string, turnYear int, snapshot []byte) error {
	s.snapshot = snapshot
	s.turnYear = turnYear
	return nil
}

func (s *memoryStore) LoadSnapshot(gameID string) ([]byte, int, error) {
	if s.snapshot == nil {
		return nil, 0, fmt.Errorf("no snapshot for \"%s\"", gameID)
	}
	return s.snapshot, s.turnYear, nil
}

func (s *memoryStore) AppendCommands(gameID string, turnYear int, empireID int, commands [][]byte) error {
	if s.commands == nil {
		s.commands = make(map[int][][]byte)
	}
	s.commands[empireID] = append(s.commands[empireID], commands...)
	return nil
}

func (s *memoryStore) DrainCommands(gameID string, turnYear int) (map[int][][]byte, error) {
	drained := s.commands
	s.commands = nil
	return drained, nil
}

func newTestGame(t *testing.T) *Game {
	w := game.NewWorld()
	for id := 1; id <= 2; id++ {
		empire, err := game.NewEmpire(id, model.Humanoid())
		require.NoError(t, err)
		w.Empires[id] = empire
	}

	return &Game{
		ID:    "test",
		world: w,
		queue: NewCommandQueue(),
	}
}

func TestAllSubmittedTracksEveryEmpire(t *testing.T) {
	g := newTestGame(t)

	assert.False(t, g.AllSubmitted())
	assert.False(t, g.MarkSubmitted(1))
	assert.False(t, g.AllSubmitted())
	assert.True(t, g.MarkSubmitted(2))
	assert.True(t, g.AllSubmitted())
}

func TestMarkSubmittedIgnoresUnknownEmpires(t *testing.T) {
	g := newTestGame(t)

	assert.False(t, g.MarkSubmitted(7))
	assert.False(t, g.AllSubmitted())
}

func TestRestoredGameKeepsItsPendingCommands(t *testing.T) {
	store := &memoryStore{}
	proxy := NewGamesProxy(store, NewNotifier(silentLogger{}), 0, silentLogger{})

	g, err := proxy.CreateGame(2, game.SmallUniverse, 4, false)
	require.NoError(t, err)

	raw := [][]byte{[]byte(`{"type":"Research","budget":20}`)}
	require.NoError(t, proxy.SubmitCommands(g.ID, 1, raw))

	// A restart drops the in-memory state; the game is rebuilt
	// from the store on the next lookup.
	proxy.locker.Lock()
	delete(proxy.games, g.ID)
	proxy.locker.Unlock()

	restored, err := proxy.Game(g.ID)
	require.NoError(t, err)

	pending := restored.queue.Drain()
	require.Len(t, pending[1], 1)

	// The reloaded commands are persisted again so that another
	// restart keeps them too.
	assert.Len(t, store.commands[1], 1)
}
