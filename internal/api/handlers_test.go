package api

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/everforgeworks/galaxies-mission-control/internal/game"
	"github.com/everforgeworks/galaxies-mission-control/internal/mission"
	"github.com/everforgeworks/galaxies-mission-control/internal/persistence"
)

func testUniverse() game.Universe {
	return game.Universe{
		BalanceConfig: game.GameBalance{StartingCredits: 1000, FuelCostPerUnit: 1, HubPlanet: "planet_a"},
		MissionConfig: game.MissionConfig{MaxAttempts: 8, PatrolWaypoints: 2, DeadlinePerLY: 60, RewardPerLY: 10},
		PlayerShipConfig: game.Ship{
			MaxFuel: 100000, BaseBurnRate: 100, BurnDamping: 100, BaseMass: 1000, CargoCapacity: 50, MaxModuleSlots: 1,
		},
		Commodities: []game.Commodity{{Key: "item_water", Name: "Water", BaseValue: 20, Mass: 10}},
		Planets: []game.Planet{
			{Key: "planet_a", Name: "A", Coordinates: []int{0, 0}},
			{Key: "planet_b", Name: "B", Coordinates: []int{3, 4}},
		},
		ShipModules: []game.ShipModule{{Key: "mod_bay", Cost: 100, StatModifier: "cargo_capacity", StatValue: 10}},
		Factions: []game.Faction{
			{Key: "union", Relations: map[string]int{"traders": 5, "raiders": -50}},
			{Key: "traders"},
			{Key: "raiders"},
		},
		Contacts: []game.Contact{
			{ID: "r1", Name: "Red Fang", Faction: "raiders", LocationKey: "planet_b", Bounty: 100},
			{ID: "t1", Name: "Kestrel", Faction: "traders", LocationKey: "planet_a"},
		},
	}
}

type fixture struct {
	srv     *Server
	handler http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	state := game.NewState(testUniverse())
	hub := NewHub()
	journal, err := persistence.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { journal.Close() })

	ctl := mission.NewControl(state, mission.NewFactory(state, rand.New(rand.NewSource(7))), hub, journal)
	loop := mission.NewLoop(ctl, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	srv := &Server{State: state, Loop: loop, Hub: hub, History: journal}
	return &fixture{srv: srv, handler: srv.Routes()}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func decodeMission(t *testing.T, rr *httptest.ResponseRecorder) *mission.Snapshot {
	t.Helper()
	var resp MissionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return resp.Mission
}

func TestMissionRequestAndFriendlyFire(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodPost, "/api/mission/request", `{"employer":"union"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("request: %d %s", rr.Code, rr.Body.String())
	}
	assigned := decodeMission(t, rr)
	if assigned == nil || assigned.Employer != "union" || assigned.Status != mission.StatusActive {
		t.Fatalf("assigned = %+v", assigned)
	}

	rr = f.do(t, http.MethodGet, "/api/mission", "")
	if got := decodeMission(t, rr); got == nil || got.ID != assigned.ID {
		t.Fatalf("current = %+v, want %s", got, assigned.ID)
	}

	rr = f.do(t, http.MethodPost, "/api/combat/kill", `{"contact_id":"t1"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("kill: %d %s", rr.Code, rr.Body.String())
	}

	rr = f.do(t, http.MethodGet, "/api/mission", "")
	if got := decodeMission(t, rr); got != nil {
		t.Fatalf("mission should be gone, got %+v", got)
	}

	// The hub is not running, so its queue still holds everything published.
	var friendlyFire int
	for len(f.srv.Hub.Broadcast) > 0 {
		var msg struct {
			Type    string       `json:"type"`
			Payload Notification `json:"payload"`
		}
		if err := json.Unmarshal(<-f.srv.Hub.Broadcast, &msg); err != nil {
			t.Fatal(err)
		}
		if msg.Type == TypeNotification && msg.Payload.Text == mission.FriendlyFireMessage {
			friendlyFire++
		}
	}
	if friendlyFire != 1 {
		t.Errorf("friendly fire notifications = %d, want 1", friendlyFire)
	}

	rr = f.do(t, http.MethodGet, "/api/missions/history", "")
	var history []mission.Outcome
	if err := json.Unmarshal(rr.Body.Bytes(), &history); err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Status != "aborted" {
		t.Errorf("history = %+v", history)
	}
}

func TestErrorStatusCodes(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"bad json", http.MethodPost, "/api/travel", `{`, http.StatusBadRequest},
		{"unknown planet", http.MethodPost, "/api/travel", `{"destination_key":"nowhere"}`, http.StatusNotFound},
		{"already docked", http.MethodPost, "/api/travel", `{"destination_key":"planet_a"}`, http.StatusConflict},
		{"unknown employer", http.MethodPost, "/api/mission/request", `{"employer":"ghosts"}`, http.StatusNotFound},
		{"drop without mission", http.MethodPost, "/api/mission/drop", ``, http.StatusNotFound},
		{"kill unknown contact", http.MethodPost, "/api/combat/kill", `{"contact_id":"nope"}`, http.StatusNotFound},
		{"tank full", http.MethodPost, "/api/refuel", ``, http.StatusBadRequest},
		{"jettison missing cargo", http.MethodPost, "/api/cargo/jettison", `{"key":"item_ore"}`, http.StatusNotFound},
		{"unknown module", http.MethodPost, "/api/modules/buy", `{"module_key":"mod_x"}`, http.StatusNotFound},
		{"bad history limit", http.MethodGet, "/api/missions/history?limit=x", ``, http.StatusBadRequest},
		{"standing unknown faction", http.MethodGet, "/api/factions/ghosts/standing", ``, http.StatusNotFound},
		{"wrong method", http.MethodGet, "/api/travel", ``, http.StatusMethodNotAllowed},
		{"preflight", http.MethodOptions, "/api/travel", ``, http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := f.do(t, tc.method, tc.path, tc.body)
			if rr.Code != tc.want {
				t.Errorf("%s %s = %d (%s), want %d", tc.method, tc.path, rr.Code, strings.TrimSpace(rr.Body.String()), tc.want)
			}
		})
	}
}

func TestTravelAndEquipment(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodPost, "/api/modules/buy", `{"module_key":"mod_bay"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("buy: %d %s", rr.Code, rr.Body.String())
	}

	rr = f.do(t, http.MethodPost, "/api/travel/quote", `{"destination_key":"planet_b"}`)
	var q game.TravelQuote
	if err := json.Unmarshal(rr.Body.Bytes(), &q); err != nil {
		t.Fatal(err)
	}
	if q.Distance != 5 || !q.CanAfford {
		t.Errorf("quote = %+v", q)
	}

	rr = f.do(t, http.MethodPost, "/api/travel", `{"destination_key":"planet_b"}`)
	var ship game.Ship
	if err := json.Unmarshal(rr.Body.Bytes(), &ship); err != nil {
		t.Fatal(err)
	}
	if ship.LocationKey != "planet_b" || ship.CargoCapacity != 60 || ship.Credits != 900 {
		t.Errorf("ship = %+v", ship)
	}

	rr = f.do(t, http.MethodGet, "/api/modules", "")
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Errorf("modules away from hub = %s", rr.Body.String())
	}

	rr = f.do(t, http.MethodGet, "/api/factions/union/standing", "")
	var st StandingResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.Employer != "union" || st.Completed != 0 {
		t.Errorf("standing = %+v", st)
	}
}

func TestHubNotifier(t *testing.T) {
	hub := NewHub()
	var _ mission.Notifier = hub

	hub.SetMissionPanelVisible(true)
	var msg struct {
		Type    string     `json:"type"`
		Payload PanelState `json:"payload"`
		Sender  string     `json:"sender"`
	}
	if err := json.Unmarshal(<-hub.Broadcast, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != TypeMissionPanel || !msg.Payload.Visible || msg.Sender != "system" {
		t.Errorf("message = %+v", msg)
	}

	// A full queue drops instead of blocking the caller.
	for i := 0; i < cap(hub.Broadcast)+10; i++ {
		hub.PostMessage("spam", mission.SeverityInfo)
	}
	if len(hub.Broadcast) != cap(hub.Broadcast) {
		t.Errorf("queue length = %d", len(hub.Broadcast))
	}
}
