package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/game"
	"github.com/stellarshenson/stars-ultranova-web-sub000/pkg/logger"
)

// createGameRequest :
// Wire shape of a game creation request.
type createGameRequest struct {
	Players         int               `json:"players"`
	Size            game.UniverseSize `json:"size"`
	Seed            int64             `json:"seed"`
	AlternateEngine bool              `json:"alternate_engine"`
}

// createGame :
// Builds the handler creating games.
//
// Returns the handler.
func (s *Server) createGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var request createGameRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}
		if len(request.Size) == 0 {
			request.Size = game.MediumUniverse
		}

		g, err := s.games.CreateGame(request.Players, request.Size, request.Seed, request.AlternateEngine)
		if err != nil {
			s.log.Trace(logger.Error, serverModule, fmt.Sprintf("Could not create game (err: %v)", err))
			http.Error(w, "Could not create game", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":        g.ID,
			"turn_year": g.TurnYear(),
		})
	}
}

// routeGame :
// Builds the handler dispatching the requests below a game
// identifier: the snapshot fetch, the command submission, the
// turn generation and the per-empire reports.
//
// Returns the handler.
func (s *Server) routeGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/games/")
		parts := strings.SplitN(path, "/", 2)
		gameID := parts[0]

		if len(gameID) == 0 {
			http.Error(w, "Missing game identifier", http.StatusBadRequest)
			return
		}

		action := ""
		if len(parts) > 1 {
			action = parts[1]
		}

		switch {
		case action == "" && r.Method == http.MethodGet:
			s.serveSnapshot(w, gameID)
		case action == "commands" && r.Method == http.MethodPost:
			s.serveCommands(w, r, gameID)
		case action == "turn" && r.Method == http.MethodPost:
			s.serveTurn(w, gameID)
		case action == "reports" && r.Method == http.MethodGet:
			s.serveReports(w, r, gameID)
		default:
			http.Error(w, "Unknown route", http.StatusNotFound)
		}
	}
}

// serveSnapshot :
// Answers with a consistent snapshot of the game.
func (s *Server) serveSnapshot(w http.ResponseWriter, gameID string) {
	g, err := s.games.Game(gameID)
	if err != nil {
		http.Error(w, "Unknown game", http.StatusNotFound)
		return
	}

	snapshot, err := g.Snapshot()
	if err != nil {
		http.Error(w, "Could not serialise game", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(snapshot)
}

// serveCommands :
// Queues the submitted commands of an empire. The payload is
// a JSON array of command envelopes; the `empire` query
// parameter identifies the submitter.
func (s *Server) serveCommands(w http.ResponseWriter, r *http.Request, gameID string) {
	empireID, err := strconv.Atoi(r.URL.Query().Get("empire"))
	if err != nil {
		http.Error(w, "Missing empire identifier", http.StatusBadRequest)
		return
	}

	var payload []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid commands payload", http.StatusBadRequest)
		return
	}

	raw := make([][]byte, 0, len(payload))
	for _, command := range payload {
		raw = append(raw, []byte(command))
	}

	if err := s.games.SubmitCommands(gameID, empireID, raw); err != nil {
		s.log.Trace(logger.Warning, serverModule, fmt.Sprintf("Rejected commands for \"%s\" (err: %v)", gameID, err))
		http.Error(w, "Could not queue commands", http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// serveTurn :
// Triggers the generation of the next turn of the game.
func (s *Server) serveTurn(w http.ResponseWriter, gameID string) {
	messages, err := s.games.GenerateTurn(gameID)
	if err != nil {
		s.log.Trace(logger.Error, serverModule, fmt.Sprintf("Could not generate turn for \"%s\" (err: %v)", gameID, err))
		http.Error(w, "Could not generate turn", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}

// serveReports :
// Answers with the intel of one empire: its star, fleet and
// empire reports, its battle reports and the messages of the
// last generated turn.
func (s *Server) serveReports(w http.ResponseWriter, r *http.Request, gameID string) {
	empireID, err := strconv.Atoi(r.URL.Query().Get("empire"))
	if err != nil {
		http.Error(w, "Missing empire identifier", http.StatusBadRequest)
		return
	}

	g, err := s.games.Game(gameID)
	if err != nil {
		http.Error(w, "Unknown game", http.StatusNotFound)
		return
	}

	snapshot, err := g.Snapshot()
	if err != nil {
		http.Error(w, "Could not serialise game", http.StatusInternalServerError)
		return
	}

	// Rebuild a world view to extract the empire from the
	// consistent snapshot rather than the live state.
	var view struct {
		Empires map[int]json.RawMessage `json:"empires"`
	}
	if err := json.Unmarshal(snapshot, &view); err != nil {
		http.Error(w, "Could not parse game", http.StatusInternalServerError)
		return
	}

	empire, ok := view.Empires[empireID]
	if !ok {
		http.Error(w, "Unknown empire", http.StatusNotFound)
		return
	}

	var reports struct {
		StarReports   json.RawMessage `json:"star_reports"`
		FleetReports  json.RawMessage `json:"fleet_reports"`
		EmpireReports json.RawMessage `json:"empire_reports"`
		BattleReports json.RawMessage `json:"battle_reports"`
		Messages      json.RawMessage `json:"messages"`
	}
	if err := json.Unmarshal(empire, &reports); err != nil {
		http.Error(w, "Could not parse empire", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reports)
}
