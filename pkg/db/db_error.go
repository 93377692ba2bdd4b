package db

import "fmt"

// ErrDatabaseUnavailable : Indicates that no connection to
// the database is currently established.
var ErrDatabaseUnavailable = fmt.Errorf("No available connection to the database")

// ErrNoRows : Indicates that a query expected to return at
// least one row returned none.
var ErrNoRows = fmt.Errorf("No rows returned by the query")
