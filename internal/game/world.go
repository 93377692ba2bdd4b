package game

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
)

// ErrUnknownStar : Indicates that a star name does not exist
// in the world.
var ErrUnknownStar = fmt.Errorf("Unknown star")

// ErrUnknownEmpire : Indicates that an empire identifier does
// not exist in the world.
var ErrUnknownEmpire = fmt.Errorf("Unknown empire")

// World :
// Describes the authoritative state of a single game. The
// world is an arena: stars are keyed by name, empires by
// identifier, minefields by their encoded key, and every
// cross-entity link is a key. The world is only mutated by
// the turn pipeline.
//
// The `TurnYear` defines the current year of the game.
//
// The `Stars` holds every star of the galaxy keyed by name.
//
// The `Empires` holds the playing empires keyed by id.
//
// The `Minefields` holds the laid minefields keyed by their
// encoded key.
//
// The `AlternateBattleEngine` selects which of the two battle
// engines resolves the combats of this game.
type World struct {
	TurnYear              int                   `json:"turn_year"`
	Stars                 map[string]*Star      `json:"stars"`
	Empires               map[int]*Empire       `json:"empires"`
	Minefields            map[uint64]*Minefield `json:"minefields"`
	AlternateBattleEngine bool                  `json:"alternate_battle_engine"`
}

// NewWorld :
// Builds an empty world at the starting year.
//
// Returns the world.
func NewWorld() *World {
	return &World{
		TurnYear:   StartingYear,
		Stars:      make(map[string]*Star),
		Empires:    make(map[int]*Empire),
		Minefields: make(map[uint64]*Minefield),
	}
}

// Star :
// Retrieves a star from its name.
//
// The `name` defines the name of the star.
//
// Returns the star along with any error.
func (w *World) Star(name string) (*Star, error) {
	star, ok := w.Stars[name]
	if !ok {
		return nil, ErrUnknownStar
	}

	return star, nil
}

// Empire :
// Retrieves an empire from its identifier.
//
// The `id` defines the identifier of the empire.
//
// Returns the empire along with any error.
func (w *World) Empire(id int) (*Empire, error) {
	empire, ok := w.Empires[id]
	if !ok {
		return nil, ErrUnknownEmpire
	}

	return empire, nil
}

// SortedEmpireIDs :
// Provides the identifiers of the empires in ascending order,
// which is the deterministic traversal used by the pipeline.
//
// Returns the ordered identifiers.
func (w *World) SortedEmpireIDs() []int {
	ids := make([]int, 0, len(w.Empires))
	for id := range w.Empires {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}

// SortedStarNames :
// Provides the names of the stars in ascending order.
//
// Returns the ordered names.
func (w *World) SortedStarNames() []string {
	names := make([]string, 0, len(w.Stars))
	for name := range w.Stars {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// SortedMinefieldKeys :
// Provides the keys of the minefields in ascending order.
//
// Returns the ordered keys.
func (w *World) SortedMinefieldKeys() []uint64 {
	keys := make([]uint64, 0, len(w.Minefields))
	for key := range w.Minefields {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

// AllFleets :
// Provides every fleet of the world in deterministic order
// (empires ascending, fleet keys ascending).
//
// Returns the fleets.
func (w *World) AllFleets() []*Fleet {
	fleets := make([]*Fleet, 0)
	for _, id := range w.SortedEmpireIDs() {
		empire := w.Empires[id]
		for _, key := range empire.SortedFleetKeys() {
			fleets = append(fleets, empire.Fleets[key])
		}
	}

	return fleets
}

// FleetsAt :
// Provides every fleet located at the input position, in the
// same deterministic order as `AllFleets`.
//
// The `position` defines the position to inspect.
//
// Returns the fleets.
func (w *World) FleetsAt(position Position) []*Fleet {
	fleets := make([]*Fleet, 0)
	for _, fleet := range w.AllFleets() {
		if fleet.Position == position {
			fleets = append(fleets, fleet)
		}
	}

	return fleets
}

// StarAt :
// Provides the star located at the input position if any.
//
// The `position` defines the position to inspect.
//
// Returns the star or `nil`.
func (w *World) StarAt(position Position) *Star {
	for _, name := range w.SortedStarNames() {
		star := w.Stars[name]
		if star.Position == position {
			return star
		}
	}

	return nil
}

// FleetByKey :
// Resolves a fleet from its key by looking up its owner.
//
// The `key` defines the key of the fleet.
//
// Returns the fleet or `nil`.
func (w *World) FleetByKey(key FleetKey) *Fleet {
	empire, ok := w.Empires[key.Owner()]
	if !ok {
		return nil
	}

	return empire.Fleets[key]
}

// AddMinefield :
// Registers mines at the input position for the input owner,
// merging with the existing field of the same key if any.
//
// The `owner` defines the identifier of the laying empire.
//
// The `position` defines where the mines are laid.
//
// The `mineType` defines the kind of mines.
//
// The `mines` defines the count of mines to add.
//
// Returns the resulting minefield.
func (w *World) AddMinefield(owner int, position Position, mineType model.MineType, mines int) *Minefield {
	field := NewMinefield(owner, position, mineType, mines)

	if existing, ok := w.Minefields[field.Key]; ok {
		existing.Mines += mines
		return existing
	}

	w.Minefields[field.Key] = field

	return field
}

// Snapshot :
// Serialises the world to its canonical JSON form. The JSON
// encoder sorts map keys so that two identical worlds always
// produce byte-identical snapshots, which is what the replay
// determinism law relies on.
//
// Returns the snapshot along with any error.
func (w *World) Snapshot() ([]byte, error) {
	return json.Marshal(w)
}

// WorldFromSnapshot :
// Rebuilds a world from a snapshot produced by `Snapshot`.
// The derived design summaries are recomputed against the
// input catalog since they are not trusted from the wire.
//
// The `data` defines the snapshot to parse.
//
// The `catalog` allows to recompute the design summaries.
//
// Returns the world along with any error.
func WorldFromSnapshot(data []byte, catalog *model.Catalog) (*World, error) {
	var w World
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}

	for _, id := range w.SortedEmpireIDs() {
		empire := w.Empires[id]
		for _, design := range empire.Designs {
			if err := design.UpdateSummary(catalog); err != nil {
				return nil, err
			}
		}
	}

	return &w, nil
}

// Clone :
// Produces a deep copy of the world through a snapshot round
// trip. Used by the orchestrator to keep the pre-turn state
// available for rollback.
//
// The `catalog` allows to recompute the design summaries of
// the copy.
//
// Returns the copy along with any error.
func (w *World) Clone(catalog *model.Catalog) (*World, error) {
	data, err := w.Snapshot()
	if err != nil {
		return nil, err
	}

	return WorldFromSnapshot(data, catalog)
}
