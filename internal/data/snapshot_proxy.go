package data

import (
	"fmt"

	"github.com/stellarshenson/stars-ultranova-web-sub000/pkg/db"
	"github.com/stellarshenson/stars-ultranova-web-sub000/pkg/logger"
)

// SnapshotProxy :
// Persistence adapter of the engine. A single serialised
// snapshot is stored per game and overwritten at every turn,
// along with the pending commands of the next turn. Both
// writes are idempotent per (game, turn) so that a retried
// turn does not duplicate anything.
//
// The `dbase` defines the DB to use to fetch and store data.
//
// The `log` allows to notify errors and information.
type SnapshotProxy struct {
	dbase *db.DB
	log   logger.Logger
}

// snapshotModule : The logging module of the proxy.
const snapshotModule = "snapshots"

// NewSnapshotProxy :
// Builds a proxy from its dependencies.
//
// The `dbase` defines the DB to use. We assume this value is
// valid (i.e. not `nil`); a panic may be issued if this is
// not the case.
//
// The `log` defines the logger.
//
// Returns the proxy.
func NewSnapshotProxy(dbase *db.DB, log logger.Logger) SnapshotProxy {
	if dbase == nil {
		panic(fmt.Errorf("Cannot create snapshot proxy from invalid DB"))
	}

	return SnapshotProxy{
		dbase: dbase,
		log:   log,
	}
}

// SaveSnapshot :
// Stores the snapshot of a game, replacing the previous one.
//
// The `gameID` defines the identifier of the game.
//
// The `turnYear` defines the year of the snapshot.
//
// The `snapshot` defines the serialised world.
//
// Returns any error.
func (p SnapshotProxy) SaveSnapshot(gameID string, turnYear int, snapshot []byte) error {
	query := `
		insert into game_snapshots (game, turn_year, snapshot)
		values ($1, $2, $3)
		on conflict (game) do update
		set turn_year = excluded.turn_year, snapshot = excluded.snapshot`

	err := p.dbase.DBExecute(query, gameID, turnYear, snapshot)
	if err != nil {
		return fmt.Errorf("Could not save snapshot for \"%s\" (err: %v)", gameID, err)
	}

	return nil
}

// LoadSnapshot :
// Fetches the stored snapshot of a game.
//
// The `gameID` defines the identifier of the game.
//
// Returns the snapshot, its turn year and any error. A game
// with no stored snapshot yields `db.ErrNoRows`.
func (p SnapshotProxy) LoadSnapshot(gameID string) ([]byte, int, error) {
	query := "select turn_year, snapshot from game_snapshots where game=$1"

	rows := p.dbase.DBQuery(query, gameID)
	defer rows.Close()

	if rows.Err != nil {
		return nil, 0, fmt.Errorf("Could not load snapshot for \"%s\" (err: %v)", gameID, rows.Err)
	}

	if !rows.Next() {
		return nil, 0, db.ErrNoRows
	}

	var turnYear int
	var snapshot []byte

	err := rows.Scan(&turnYear, &snapshot)
	if err != nil {
		return nil, 0, fmt.Errorf("Could not parse snapshot for \"%s\" (err: %v)", gameID, err)
	}

	return snapshot, turnYear, nil
}

// AppendCommands :
// Stores the submitted commands of an empire for the next
// turn. The submission order is preserved through a serial
// column.
//
// The `gameID` defines the identifier of the game.
//
// The `turnYear` defines the turn the commands target.
//
// The `empireID` defines the submitting empire.
//
// The `commands` holds the raw commands in submission order.
//
// Returns any error.
func (p SnapshotProxy) AppendCommands(gameID string, turnYear int, empireID int, commands [][]byte) error {
	query := `
		insert into game_commands (game, turn_year, empire, command)
		values ($1, $2, $3, $4)`

	for _, command := range commands {
		err := p.dbase.DBExecute(query, gameID, turnYear, empireID, command)
		if err != nil {
			return fmt.Errorf("Could not append command for \"%s\" (err: %v)", gameID, err)
		}
	}

	return nil
}

// DrainCommands :
// Fetches and removes the stored commands of a turn, grouped
// by empire in submission order.
//
// The `gameID` defines the identifier of the game.
//
// The `turnYear` defines the turn to drain.
//
// Returns the raw commands per empire along with any error.
func (p SnapshotProxy) DrainCommands(gameID string, turnYear int) (map[int][][]byte, error) {
	query := `
		select empire, command from game_commands
		where game=$1 and turn_year=$2
		order by id`

	rows := p.dbase.DBQuery(query, gameID, turnYear)
	defer rows.Close()

	if rows.Err != nil {
		return nil, fmt.Errorf("Could not drain commands for \"%s\" (err: %v)", gameID, rows.Err)
	}

	commands := make(map[int][][]byte)

	for rows.Next() {
		var empire int
		var command []byte

		err := rows.Scan(&empire, &command)
		if err != nil {
			return nil, fmt.Errorf("Could not parse command for \"%s\" (err: %v)", gameID, err)
		}

		commands[empire] = append(commands[empire], command)
	}

	purge := "delete from game_commands where game=$1 and turn_year=$2"
	err := p.dbase.DBExecute(purge, gameID, turnYear)
	if err != nil {
		return nil, fmt.Errorf("Could not purge commands for \"%s\" (err: %v)", gameID, err)
	}

	return commands, nil
}
