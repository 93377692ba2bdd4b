package db

import (
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx"
	"github.com/spf13/viper"

	"github.com/stellarshenson/stars-ultranova-web-sub000/pkg/logger"
)

// configuration :
// Defines the possible options to define the way this DB
// object should try to connect to the underlying database.
// Common parameters allow to locate the database through a
// network address and provide some information about a set
// of connection parameters (username, DB name and password).
//
// The `host` references the address at which the database
// is hosted and thus where we should try to connect to it.
// The default value is "localhost".
//
// The `port` describes the exposed port to connect to the
// database.
// The default value is 5432.
//
// The `name` defines the name of the database. This value
// should be set as we cannot assume anything regarding its
// value in general.
//
// The `user` defines the role that this object should use
// to connect to the DB. It should be specified from the
// configuration file.
//
// The `password` defines the password to use to access to
// the DB given the specified username.
//
// The `timeout` separates two successive connection attempts
// to the DB, in seconds.
// The default value is `5` seconds.
//
// The `connectionsPool` defines the number of concurrent
// connections that can be issued on the underlying DB.
// The default value is `5`.
type configuration struct {
	host            string
	port            int
	name            string
	user            string
	password        string
	timeout         int
	connectionsPool int
}

// DB :
// Describes a database object providing a wrapper on the pgx
// handler. This is used as a convenience way to hide part of
// the DB implementation from the rest of the application.
// Compared to the base wrapper it handles a mechanism to try
// connecting to the DB until it comes online and retrieves
// the connection parameters from the configuration file.
//
// The `pool` holds a reference on the database object. This
// value is not `nil` whenever a connection to the DB has been
// successfully established.
//
// The `lock` allows to protect the `pool` value from some
// concurrent accesses, typically when the connection to the
// DB is lost and we try to establish it again.
//
// The `logger` allows to notify information and errors.
//
// The `config` describes the connection properties to use to
// perform the connection to the DB object. It is parsed upon
// building the object.
type DB struct {
	pool   *pgx.ConnPool
	lock   sync.Mutex
	logger logger.Logger
	config configuration
}

// parseConfiguration :
// Attempts to parse the configuration provided to this app to
// extract connection parameters to use for the DB. It relies
// on default values in case some values are not set and panics
// if some mandatory values cannot be found.
//
// Returns the built-in configuration object.
func parseConfiguration() configuration {
	config := configuration{
		"localhost",
		5432,
		"",
		"",
		"",
		5,
		5,
	}

	if viper.IsSet("Database.Host") {
		config.host = viper.GetString("Database.Host")
	}
	if viper.IsSet("Database.Port") {
		config.port = viper.GetInt("Database.Port")
	}
	if viper.IsSet("Database.Name") {
		config.name = viper.GetString("Database.Name")
	}
	if viper.IsSet("Database.User") {
		config.user = viper.GetString("Database.User")
	}
	if viper.IsSet("Database.Password") {
		config.password = viper.GetString("Database.Password")
	}
	if viper.IsSet("Database.Timeout") {
		config.timeout = viper.GetInt("Database.Timeout")
	}
	if viper.IsSet("Database.ConnectionsPool") {
		config.connectionsPool = viper.GetInt("Database.ConnectionsPool")
	}

	// Check whether we could find all the mandatory
	// configuration properties.
	if len(config.name) == 0 {
		panic(fmt.Errorf("invalid DB name fetched from configuration \"%s\"", config.name))
	}
	if len(config.user) == 0 {
		panic(fmt.Errorf("invalid DB user fetched from configuration \"%s\"", config.user))
	}
	if len(config.password) == 0 {
		panic(fmt.Errorf("invalid DB password fetched from configuration \"%s\"", config.password))
	}
	if config.port < 0 || config.port >= 1<<16 {
		panic(fmt.Errorf("invalid DB port fetched from configuration %d", config.port))
	}
	if config.connectionsPool <= 0 {
		panic(fmt.Errorf("invalid DB connections pool fetched from configuration %d", config.connectionsPool))
	}

	return config
}

// NewPool :
// Performs the creation of a new database object. The created
// object will try to connect to the database described in the
// configuration file until a connection is established. Until
// then, calls to `DBExecute` or `DBQuery` will fail.
//
// The `log` allows to specify the logging device to use.
//
// Returns the created database object.
func NewPool(log logger.Logger) *DB {
	config := parseConfiguration()

	dbase := DB{
		logger: log,
		config: config,
	}

	// Try to connect to the DB.
	dbase.createPoolAttempt()

	// Create a ticker to maintain the connection with the DB
	// healthy in case of a disconnection later on.
	ticker := time.NewTicker(time.Second * time.Duration(config.timeout))
	go func() {
		for range ticker.C {
			dbase.Healthcheck()
		}
	}()

	return &dbase
}

// createPoolAttempt :
// Used to try to connect to the database described in the
// configuration file. The connection is assigned to the
// internal attribute only if it has succeeded.
//
// Returns `true` if the attempt succeeded and `false`
// otherwise.
func (dbase *DB) createPoolAttempt() bool {
	config := dbase.config
	dbase.logger.Trace(logger.Info, "db", fmt.Sprintf("Attempting to connect to \"%s\" (user: \"%s\", host: \"%s:%d\")", config.name, config.user, config.host, config.port))

	pool, err := pgx.NewConnPool(pgx.ConnPoolConfig{
		ConnConfig: pgx.ConnConfig{
			Host:     config.host,
			Database: config.name,
			Port:     uint16(config.port),
			User:     config.user,
			Password: config.password,
		},
		MaxConnections: config.connectionsPool,
		AcquireTimeout: 0,
	})

	if err != nil {
		dbase.logger.Trace(logger.Warning, "db", fmt.Sprintf("Failed to connect to DB \"%s\" (err: %v)", config.name, err))
		return false
	}

	dbase.logger.Trace(logger.Info, "db", fmt.Sprintf("Connection to DB \"%s\" with username \"%s\" succeeded", config.name, config.user))

	dbase.lock.Lock()
	defer dbase.lock.Unlock()
	dbase.pool = pool

	return true
}

// Healthcheck :
// Used to check the health of the connection to the DB. In
// case the connection is found not to be healthy, a new
// attempt is scheduled immediately.
func (dbase *DB) Healthcheck() {
	dbase.lock.Lock()
	healthy := dbase.pool != nil && dbase.pool.Stat().CurrentConnections > 0
	dbase.lock.Unlock()

	if !healthy {
		dbase.createPoolAttempt()
	}
}

// DBQuery :
// Attempts to perform the input query on the database and
// wraps the result in a `QueryResult` object.
//
// The `query` defines the SQL query to execute.
//
// The `args` define the positional arguments of the query.
//
// Returns the result of the query.
func (dbase *DB) DBQuery(query string, args ...interface{}) QueryResult {
	dbase.lock.Lock()
	pool := dbase.pool
	dbase.lock.Unlock()

	if pool == nil {
		return QueryResult{Err: ErrDatabaseUnavailable}
	}

	rows, err := pool.Query(query, args...)

	return QueryResult{
		rows: rows,
		Err:  err,
	}
}

// DBExecute :
// Attempts to execute the input statement on the database.
//
// The `query` defines the SQL statement to execute.
//
// The `args` define the positional arguments of the query.
//
// Returns any error.
func (dbase *DB) DBExecute(query string, args ...interface{}) error {
	dbase.lock.Lock()
	pool := dbase.pool
	dbase.lock.Unlock()

	if pool == nil {
		return ErrDatabaseUnavailable
	}

	_, err := pool.Exec(query, args...)

	return err
}
