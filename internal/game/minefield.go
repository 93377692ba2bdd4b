package game

import (
	"math"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
)

// Minefield :
// Describes a cloud of mines laid by an empire. Minefields
// are identified by a key encoding their owner, mine type and
// the grid cell their position snaps to: laying mines twice
// in the same cell grows the existing field instead of
// creating a second one.
//
// The `Key` uniquely identifies the minefield.
//
// The `Owner` defines the identifier of the owning empire.
//
// The `Position` locates the center of the field, snapped to
// the minefield grid.
//
// The `Mines` counts the mines in the field; the radius of
// the field is the square root of this count.
//
// The `Type` defines the kind of mines in the field.
type Minefield struct {
	Key      uint64         `json:"key"`
	Owner    int            `json:"owner"`
	Position Position       `json:"position"`
	Mines    int            `json:"mines"`
	Type     model.MineType `json:"type"`
}

// NewMinefield :
// Builds a minefield for the input owner at the input
// position. The position is snapped to the minefield grid
// before the key is computed.
//
// The `owner` defines the identifier of the owning empire.
//
// The `position` defines where the mines are laid.
//
// The `mineType` defines the kind of mines.
//
// The `mines` defines the initial mine count.
//
// Returns the minefield.
func NewMinefield(owner int, position Position, mineType model.MineType, mines int) *Minefield {
	gridX, gridY := SnapToMinefieldGrid(position)

	return &Minefield{
		Key:   MinefieldKey(owner, mineType, gridX, gridY),
		Owner: owner,
		Position: Position{
			X: gridX * MinefieldSnapToGridSize,
			Y: gridY * MinefieldSnapToGridSize,
		},
		Mines: mines,
		Type:  mineType,
	}
}

// Radius :
// Computes the radius of the minefield in light-years.
//
// Returns the radius.
func (m *Minefield) Radius() float64 {
	return math.Sqrt(float64(m.Mines))
}

// Contains :
// Determines whether the input position lies within the
// radius of the minefield.
//
// The `p` defines the position to test.
//
// Returns `true` if the position is covered.
func (m *Minefield) Contains(p Position) bool {
	return m.Position.DistanceTo(p) <= m.Radius()
}

// Decay :
// Applies the yearly decay to the minefield.
func (m *Minefield) Decay() {
	m.Mines -= int(math.Ceil(float64(m.Mines) * MinefieldDecayRate))
}

// HitChancePerLightYear :
// Provides the chance per light-year and per warp factor that
// a fleet crossing a minefield of this type strikes a mine.
//
// Returns the chance.
func (m *Minefield) HitChancePerLightYear() float64 {
	switch m.Type {
	case model.HeavyMine:
		return 0.010
	case model.SpeedBumpMine:
		return 0.035
	default:
		return 0.003
	}
}
