package mission

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/everforgeworks/galaxies-mission-control/internal/game"
)

func TestPatrolVisitsWaypointsInOrder(t *testing.T) {
	ctl, state, _ := newTestControl(KindPatrol)
	m, err := ctl.Request("union")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	p := m.(*Patrol)
	if got := strings.Join(p.Waypoints, ","); got != "planet_b,planet_c" {
		t.Fatalf("waypoints = %s", got)
	}
	if p.Reward() != 100 {
		t.Errorf("reward = %d, want 100", p.Reward())
	}

	// Docking out of order does not count.
	if _, err := state.Travel("planet_c"); err != nil {
		t.Fatal(err)
	}
	ctl.Tick(t0.Add(time.Second))
	if done, _ := p.Progress(); done != 0 {
		t.Fatalf("progress = %d after wrong waypoint", done)
	}

	for i, wp := range p.Waypoints {
		if _, err := state.Travel(wp); err != nil {
			t.Fatalf("Travel %s: %v", wp, err)
		}
		ctl.Tick(t0.Add(time.Duration(i+2) * time.Second))
	}

	if p.Status() != StatusCompleted || ctl.Current() != nil {
		t.Errorf("status = %v, current = %v", p.Status(), ctl.Current())
	}
}

func TestPatrolNeedsAnotherPlanet(t *testing.T) {
	u := testUniverse()
	u.Planets = u.Planets[:1]
	state := game.NewState(u)

	err := NewPatrol("union").Generate(state, &seqRand{vals: []int{0}})
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("err = %v, want ErrNoCandidates", err)
	}
}

func TestAssassinationFailsWhenTargetLeaves(t *testing.T) {
	ctl, state, rec := newTestControl(KindAssassination)
	m, err := ctl.Request("union")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	if _, err := state.RemoveContact(m.(*Assassination).Target.ID); err != nil {
		t.Fatal(err)
	}
	ctl.Tick(t0.Add(time.Second))

	if m.Status() != StatusFailed {
		t.Errorf("status = %v, want failed", m.Status())
	}
	if rec.count(SeverityError) != 1 {
		t.Errorf("failure notifications = %d, want 1", rec.count(SeverityError))
	}
}

func TestAssassinationOnlyTargetsHostiles(t *testing.T) {
	state := game.NewState(testUniverse())
	for roll := 0; roll < 4; roll++ {
		a := NewAssassination("union").(*Assassination)
		if err := a.Generate(state, &seqRand{vals: []int{roll}}); err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if a.Target.Faction != "raiders" {
			t.Errorf("roll %d picked %s (%s)", roll, a.Target.ID, a.Target.Faction)
		}
	}
}

func TestCargoDeliveryLifecycle(t *testing.T) {
	tests := []struct {
		name       string
		jettison   bool
		wantStatus Status
	}{
		{"delivered", false, StatusCompleted},
		{"cargo lost", true, StatusFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl, state, _ := newTestControl(KindCargoDelivery)
			m, err := ctl.Request("union")
			if err != nil {
				t.Fatalf("Request: %v", err)
			}
			d := m.(*CargoDelivery)
			if d.Cargo.Quantity != 7 || d.Destination != "planet_b" {
				t.Fatalf("consignment = %+v to %s", d.Cargo, d.Destination)
			}

			if tc.jettison {
				if _, err := state.JettisonCargo(d.Cargo.Key); err != nil {
					t.Fatal(err)
				}
			}
			if _, err := state.Travel(d.Destination); err != nil {
				t.Fatal(err)
			}
			ctl.Tick(t0.Add(time.Second))

			if m.Status() != tc.wantStatus {
				t.Errorf("status = %v, want %v", m.Status(), tc.wantStatus)
			}
			if len(state.Ship().Hold) != 0 {
				t.Errorf("hold = %+v, want empty", state.Ship().Hold)
			}
		})
	}
}

func TestCargoDeliveryNeedsHoldSpace(t *testing.T) {
	state := game.NewState(testUniverse())
	if err := state.LoadCargo(game.CargoItem{Key: "item_water", Quantity: 30}); err != nil {
		t.Fatal(err)
	}

	err := NewCargoDelivery("union").Generate(state, &seqRand{vals: []int{0}})
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("err = %v, want ErrNoCandidates", err)
	}
}

func TestDescribe(t *testing.T) {
	ctl, _, _ := newTestControl(KindCourier)
	m, err := ctl.Request("union")
	if err != nil {
		t.Fatal(err)
	}
	s := Describe(m)
	if s.Kind != KindCourier || s.Status != StatusActive || s.Reward != 150 {
		t.Errorf("snapshot = %+v", s)
	}
	if !s.Deadline.Equal(t0.Add(time.Minute)) {
		t.Errorf("deadline = %v", s.Deadline)
	}
	if !strings.Contains(s.Briefing, "C") {
		t.Errorf("briefing = %q", s.Briefing)
	}
}
