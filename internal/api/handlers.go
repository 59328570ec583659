/*
Package api
File: handlers.go
Description:
    Contains the HTTP handlers for the REST API.
    Handlers decode the JSON request, act on the game state and mission
    control, and return JSON responses.

    Key Responsibilities:
    - Input Validation (Is the JSON valid? Does the entity exist?)
    - State Modification (flight, cargo, equipment, missions, combat)
    - Serialization: everything that can touch the current mission runs
      on the frame loop through Loop.Do.
*/

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/everforgeworks/galaxies-mission-control/internal/game"
	"github.com/everforgeworks/galaxies-mission-control/internal/mission"
)

// Request DTOs

type TravelRequest struct {
	DestinationKey string `json:"destination_key"`
}

type BuyModuleRequest struct {
	ModuleKey string `json:"module_key"`
}

type JettisonRequest struct {
	Key string `json:"key"`
}

type MissionRequest struct {
	Employer string `json:"employer"`
}

type KillRequest struct {
	ContactID string `json:"contact_id"`
}

// MissionResponse wraps the current mission; Mission is null when there is none.
type MissionResponse struct {
	Mission *mission.Snapshot `json:"mission"`
}

// History is the read side of the mission journal.
type History interface {
	Recent(limit int) ([]mission.Outcome, error)
	Standing(employer string) (completed int, earned int, err error)
}

// StandingResponse summarises the pilot's record with one employer.
type StandingResponse struct {
	Employer  string `json:"employer"`
	Completed int    `json:"completed"`
	Earned    int    `json:"earned"`
}

// Server holds everything the handlers need.
type Server struct {
	State   *game.State
	Loop    *mission.Loop
	Hub     *Hub
	History History // may be nil
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Information Endpoints
	mux.HandleFunc("GET /api/ship", s.HandleGetShip)
	mux.HandleFunc("GET /api/planets", s.HandleGetPlanets)
	mux.HandleFunc("GET /api/factions", s.HandleGetFactions)
	mux.HandleFunc("GET /api/contacts", s.HandleGetContacts)
	mux.HandleFunc("GET /api/modules", s.HandleGetModules)
	mux.HandleFunc("GET /api/mission", s.HandleGetMission)
	mux.HandleFunc("GET /api/missions/history", s.HandleGetHistory)
	mux.HandleFunc("GET /api/factions/{key}/standing", s.HandleGetStanding)

	// Action Endpoints
	mux.HandleFunc("POST /api/travel", s.HandleTravel)
	mux.HandleFunc("POST /api/travel/quote", s.HandleTravelQuote)
	mux.HandleFunc("POST /api/refuel", s.HandleRefuel)
	mux.HandleFunc("POST /api/modules/buy", s.HandleBuyModule)
	mux.HandleFunc("POST /api/cargo/jettison", s.HandleJettison)
	mux.HandleFunc("POST /api/mission/request", s.HandleRequestMission)
	mux.HandleFunc("POST /api/mission/drop", s.HandleDropMission)
	mux.HandleFunc("POST /api/combat/kill", s.HandleKill)

	// Real-Time WebSocket Endpoint
	if s.Hub != nil {
		mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
			ServeWs(s.Hub, w, r)
		})
	}

	return corsMiddleware(mux)
}

// corsMiddleware lets the desktop client talk to the server across domains.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrUnknownPlanet),
		errors.Is(err, game.ErrUnknownModule),
		errors.Is(err, game.ErrUnknownContact),
		errors.Is(err, game.ErrNotInHold),
		errors.Is(err, mission.ErrUnknownEmployer),
		errors.Is(err, mission.ErrNoMission):
		code = http.StatusNotFound
	case errors.Is(err, game.ErrInsufficientFuel),
		errors.Is(err, game.ErrInsufficientCredits):
		code = http.StatusPaymentRequired
	case errors.Is(err, game.ErrNoUpgradeService):
		code = http.StatusForbidden
	case errors.Is(err, game.ErrHoldFull),
		errors.Is(err, game.ErrNoModuleSlots),
		errors.Is(err, game.ErrAlreadyDocked),
		errors.Is(err, mission.ErrGenerationExhausted):
		code = http.StatusConflict
	case errors.Is(err, game.ErrTankFull):
		code = http.StatusBadRequest
	}
	http.Error(w, err.Error(), code)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) HandleGetShip(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.State.Ship())
}

func (s *Server) HandleGetPlanets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.State.Planets())
}

func (s *Server) HandleGetFactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.State.FactionList())
}

func (s *Server) HandleGetContacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.State.Contacts())
}

// HandleGetModules lists upgrades for sale; empty away from the hub.
func (s *Server) HandleGetModules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.State.ModulesForSale())
}

// HandleTravel jumps the ship and reports the arrival to mission control.
func (s *Server) HandleTravel(w http.ResponseWriter, r *http.Request) {
	var req TravelRequest
	if !decode(w, r, &req) {
		return
	}
	var ship game.Ship
	err := s.Loop.Do(r.Context(), func(c *mission.Control) error {
		var err error
		ship, err = s.State.Travel(req.DestinationKey)
		if err != nil {
			return err
		}
		c.Docked(ship.LocationKey)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, ship)
}

// HandleTravelQuote is the pre-flight check; nothing moves.
func (s *Server) HandleTravelQuote(w http.ResponseWriter, r *http.Request) {
	var req TravelRequest
	if !decode(w, r, &req) {
		return
	}
	q, err := s.State.Quote(req.DestinationKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, q)
}

func (s *Server) HandleRefuel(w http.ResponseWriter, r *http.Request) {
	ship, err := s.State.Refuel()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, ship)
}

func (s *Server) HandleBuyModule(w http.ResponseWriter, r *http.Request) {
	var req BuyModuleRequest
	if !decode(w, r, &req) {
		return
	}
	ship, err := s.State.BuyModule(req.ModuleKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, ship)
}

// HandleJettison dumps cargo. Dumping a mission consignment fails that mission.
func (s *Server) HandleJettison(w http.ResponseWriter, r *http.Request) {
	var req JettisonRequest
	if !decode(w, r, &req) {
		return
	}
	err := s.Loop.Do(r.Context(), func(*mission.Control) error {
		_, err := s.State.JettisonCargo(req.Key)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, s.State.Ship())
}

func (s *Server) HandleGetMission(w http.ResponseWriter, r *http.Request) {
	var resp MissionResponse
	err := s.Loop.Do(r.Context(), func(c *mission.Control) error {
		if m := c.Current(); m != nil {
			snap := mission.Describe(m)
			resp.Mission = &snap
		}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

// HandleRequestMission asks an employer for work; it replaces any current job.
func (s *Server) HandleRequestMission(w http.ResponseWriter, r *http.Request) {
	var req MissionRequest
	if !decode(w, r, &req) {
		return
	}
	var resp MissionResponse
	err := s.Loop.Do(r.Context(), func(c *mission.Control) error {
		m, err := c.Request(req.Employer)
		if err != nil {
			return err
		}
		snap := mission.Describe(m)
		resp.Mission = &snap
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (s *Server) HandleDropMission(w http.ResponseWriter, r *http.Request) {
	err := s.Loop.Do(r.Context(), func(c *mission.Control) error {
		return c.Drop()
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, MissionResponse{})
}

// HandleKill destroys a contact and reports the kill to mission control.
func (s *Server) HandleKill(w http.ResponseWriter, r *http.Request) {
	var req KillRequest
	if !decode(w, r, &req) {
		return
	}
	var killed game.Contact
	err := s.Loop.Do(r.Context(), func(c *mission.Control) error {
		var err error
		killed, err = s.State.RemoveContact(req.ContactID)
		if err != nil {
			return err
		}
		c.RegisterKill(killed)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, killed)
}

// HandleGetHistory returns the latest finished missions (?limit=, default 20).
func (s *Server) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		writeJSON(w, []mission.Outcome{})
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		limit = n
	}
	outcomes, err := s.History.Recent(limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, outcomes)
}

// HandleGetStanding reports completed jobs and earnings for one employer.
func (s *Server) HandleGetStanding(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if _, ok := s.State.Faction(key); !ok {
		writeError(w, fmt.Errorf("%w: %s", mission.ErrUnknownEmployer, key))
		return
	}
	resp := StandingResponse{Employer: key}
	if s.History != nil {
		var err error
		resp.Completed, resp.Earned, err = s.History.Standing(key)
		if err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, resp)
}
