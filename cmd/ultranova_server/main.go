package main

import (
	"flag"
	"fmt"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/data"
	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/routes"
	"github.com/stellarshenson/stars-ultranova-web-sub000/pkg/arguments"
	"github.com/stellarshenson/stars-ultranova-web-sub000/pkg/db"
	"github.com/stellarshenson/stars-ultranova-web-sub000/pkg/logger"
)

// usage :
// Displays the usage of the server. Typically requires a
// configuration file to be able to fetch the configuration
// variables to use during the execution of the server.
func usage() {
	fmt.Println("Usage:")
	fmt.Println("-config=[file] for configuration file to use (local/master/staging/production)")
}

// main :
// Wires the engine together and starts serving: parses the
// configuration, connects the persistence layer and exposes
// the HTTP surface.
func main() {
	help := flag.Bool("h", false, "Print usage")
	config := flag.String("config", "local", "Configuration file to customize the server")
	flag.Parse()

	if *help {
		usage()
		return
	}

	metadata := arguments.Parse(*config)

	log := logger.NewStdLogger()
	defer log.Release()

	log.Trace(logger.Notice, "main", fmt.Sprintf("Starting instance \"%s\" in environment \"%s\"", metadata.InstanceID, metadata.Environment))

	dbase := db.NewPool(log)

	snapshots := data.NewSnapshotProxy(dbase, log)
	notifier := data.NewNotifier(log)
	games := data.NewGamesProxy(snapshots, notifier, metadata.TurnBudget, log)

	scheduler, err := games.StartScheduler(metadata.ScheduleInterval)
	if err != nil {
		log.Trace(logger.Fatal, "main", fmt.Sprintf("Could not start turn scheduler (err: %v)", err))
		return
	}
	defer scheduler.Stop()

	server := routes.NewServer(metadata.Port, games, log)

	err = server.Serve()
	if err != nil {
		log.Trace(logger.Fatal, "main", fmt.Sprintf("Could not serve (err: %v)", err))
	}
}
