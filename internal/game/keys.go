package game

import "github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"

// FleetKey :
// Describes the 64-bit identifier of a fleet. The high 32 bits
// carry the identifier of the owning empire while the low 32
// bits carry an empire-scoped monotonic counter, so that keys
// never collide across empires and owner extraction does not
// require a lookup.
type FleetKey uint64

// DesignKey :
// Describes the 64-bit identifier of a ship design, encoded
// exactly like a fleet key.
type DesignKey uint64

// NewFleetKey :
// Builds the key of a fleet from its owner and the counter
// allocated by the empire.
//
// The `owner` defines the identifier of the owning empire.
//
// The `counter` defines the empire-scoped counter.
//
// Returns the key.
func NewFleetKey(owner int, counter uint32) FleetKey {
	return FleetKey(uint64(owner)<<32 | uint64(counter))
}

// Owner :
// Extracts the identifier of the owning empire from the key.
//
// Returns the empire identifier.
func (k FleetKey) Owner() int {
	return int(uint64(k) >> 32)
}

// Counter :
// Extracts the empire-scoped counter from the key.
//
// Returns the counter.
func (k FleetKey) Counter() uint32 {
	return uint32(uint64(k) & 0xFFFFFFFF)
}

// NewDesignKey :
// Builds the key of a design from its owner and the counter
// allocated by the empire.
//
// The `owner` defines the identifier of the owning empire.
//
// The `counter` defines the empire-scoped counter.
//
// Returns the key.
func NewDesignKey(owner int, counter uint32) DesignKey {
	return DesignKey(uint64(owner)<<32 | uint64(counter))
}

// Owner :
// Extracts the identifier of the owning empire from the key.
//
// Returns the empire identifier.
func (k DesignKey) Owner() int {
	return int(uint64(k) >> 32)
}

// Counter :
// Extracts the empire-scoped counter from the key.
//
// Returns the counter.
func (k DesignKey) Counter() uint32 {
	return uint32(uint64(k) & 0xFFFFFFFF)
}

// MinefieldKey :
// Builds the 64-bit identifier of a minefield from its owner,
// mine type and the grid cell its position snaps to. Two
// minefields producing the same key are the same field and
// must be merged.
//
// The `owner` defines the identifier of the owning empire.
//
// The `mineType` defines the kind of mines in the field.
//
// The `gridX` and `gridY` define the cell coordinates of the
// position snapped to `MinefieldSnapToGridSize`.
//
// Returns the key.
func MinefieldKey(owner int, mineType model.MineType, gridX int, gridY int) uint64 {
	return uint64(owner)<<54 |
		uint64(mineType)<<26 |
		uint64(uint32(gridX)&0x3FFFFFF)<<28 |
		uint64(uint32(gridY)&0x3FFFFFF)
}

// SnapToMinefieldGrid :
// Snaps a position to the minefield grid.
//
// The `p` defines the position to snap.
//
// Returns the grid cell coordinates.
func SnapToMinefieldGrid(p Position) (int, int) {
	return p.X / MinefieldSnapToGridSize, p.Y / MinefieldSnapToGridSize
}
