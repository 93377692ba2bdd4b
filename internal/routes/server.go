package routes

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/data"
	"github.com/stellarshenson/stars-ultranova-web-sub000/pkg/logger"
)

// Server :
// Defines the HTTP surface of the engine. The server is a
// thin shell: every route parses its payload, calls into the
// games proxy and serialises the answer. The game semantics
// live entirely below the proxy.
//
// The `port` allows to determine which port should be used by
// the server to accept incoming requests.
//
// The `games` represents the proxy holding the live games.
//
// The `log` allows to perform most of the logging on any
// action done by the server.
type Server struct {
	port  int
	games *data.GamesProxy
	log   logger.Logger
}

// serverModule : The logging module of the server.
const serverModule = "server"

// NewServer :
// Create a new server from the input elements.
// In case any of the arguments are not valid a panic is
// issued to indicate the failure.
//
// The `port` defines the port to listen to by the server.
//
// The `games` defines the proxy holding the live games.
//
// The `log` is used to notify from various processes in the
// server and keep track of the activity.
//
// Returns the server.
func NewServer(port int, games *data.GamesProxy, log logger.Logger) Server {
	if games == nil {
		panic(fmt.Errorf("Cannot create server from invalid games proxy"))
	}

	return Server{
		port:  port,
		games: games,
		log:   log,
	}
}

// routes :
// Used to setup all the routes able to be served by this
// server on the input mux.
//
// The `mux` defines the mux to register the routes on.
func (s *Server) routes(mux *http.ServeMux) {
	// Create a game.
	mux.HandleFunc("/games", s.withSafetyNet(s.createGame()))

	// Everything below a game identifier: snapshot fetch,
	// command submission, turn generation and reports.
	mux.HandleFunc("/games/", s.withSafetyNet(s.routeGame()))
}

// Serve :
// Used to start listening to the port associated to this
// server and handle incoming requests. Requests are logged
// and panics recovered by the wrapping middleware. This will
// return an error in case something went wrong while
// listening to the port.
func (s *Server) Serve() error {
	mux := http.NewServeMux()
	s.routes(mux)

	handler := handlers.CombinedLoggingHandler(os.Stdout, mux)
	handler = handlers.CORS(
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
	)(handler)
	handler = handlers.RecoveryHandler()(handler)

	return http.ListenAndServe(":"+strconv.Itoa(s.port), handler)
}

// withSafetyNet :
// Wraps a handler so that a panic while serving a request is
// reported as an internal error instead of killing the
// serving goroutine.
//
// The `handler` defines the handler to wrap.
//
// Returns the wrapped handler.
func (s *Server) withSafetyNet(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				s.log.Trace(logger.Error, serverModule, fmt.Sprintf("Recovered from panic serving \"%s\" (err: %v)", r.URL.String(), recovered))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()

		handler(w, r)
	}
}
