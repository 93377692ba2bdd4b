package game

import (
	"testing"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFleetKeyEncoding(t *testing.T) {
	key := NewFleetKey(3, 7)

	assert.Equal(t, FleetKey(12884901895), key)
	assert.Equal(t, 3, key.Owner())
	assert.Equal(t, uint32(7), key.Counter())
}

func TestFleetKeysNeverCollideAcrossEmpires(t *testing.T) {
	assert.NotEqual(t, NewFleetKey(1, 2), NewFleetKey(2, 1))
}

func TestFleetKeysOrderByOwnerFirst(t *testing.T) {
	// Sorting keys groups the fleets of an empire together.
	assert.Less(t, NewFleetKey(1, 4000000000), NewFleetKey(2, 1))
}

func TestDesignKeyEncoding(t *testing.T) {
	key := NewDesignKey(5, 12)

	assert.Equal(t, 5, key.Owner())
	assert.Equal(t, uint32(12), key.Counter())
}

func TestMinefieldKeySnapsToGrid(t *testing.T) {
	// Positions within the same grid cell produce the same key.
	a := NewMinefield(1, Position{X: 11, Y: 12}, model.StandardMine, 100)
	b := NewMinefield(1, Position{X: 14, Y: 10}, model.StandardMine, 200)

	assert.Equal(t, a.Key, b.Key)
	assert.Equal(t, Position{X: 10, Y: 10}, a.Position)
}

func TestMinefieldKeyVariesWithOwnerAndType(t *testing.T) {
	position := Position{X: 10, Y: 10}

	mine := NewMinefield(1, position, model.StandardMine, 100)
	heavy := NewMinefield(1, position, model.HeavyMine, 100)
	foreign := NewMinefield(2, position, model.StandardMine, 100)

	assert.NotEqual(t, mine.Key, heavy.Key)
	assert.NotEqual(t, mine.Key, foreign.Key)
}
