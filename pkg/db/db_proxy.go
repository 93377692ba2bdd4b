package db

import "github.com/jackc/pgx"

// QueryResult :
// Defines the result of a query as executed by the main DB.
// This small wrapper allows to automatically cycle through
// remaining rows when it goes out of scope through the
// `Closer` interface.
//
// The `rows` defines the low level rows returned by the
// execution of the query.
//
// The `Err` defines the error that was associated with the
// query itself.
type QueryResult struct {
	rows *pgx.Rows
	Err  error
}

// Next :
// Forwards the call to the internal rows object so that we
// move to the next row of the result.
//
// Returns `true` if there are more rows.
func (q QueryResult) Next() bool {
	return q.rows.Next()
}

// Scan :
// Forwards the call to the internal rows object so that the
// content of the row is retrieved.
//
// The `dest` defines the destination elements where the
// current row should be scanned.
//
// Returns any error.
func (q QueryResult) Scan(dest ...interface{}) error {
	return q.rows.Scan(dest...)
}

// Close :
// Implementation of the `Closer` interface which will release
// the remaining rows described by this object if any, making
// sure that the connection to the DB is released.
func (q QueryResult) Close() {
	if q.rows != nil {
		q.rows.Close()
	}
}
