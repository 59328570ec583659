package mission

import (
	"errors"
	"time"

	"github.com/everforgeworks/galaxies-mission-control/internal/game"
)

var t0 = time.Date(2300, 1, 1, 12, 0, 0, 0, time.UTC)

// seqRand replays vals in a loop, reduced modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

type note struct {
	text     string
	severity Severity
}

// recorder is a Notifier and a Journal.
type recorder struct {
	notes    []note
	panel    []bool
	outcomes []Outcome
	fail     bool
}

func (r *recorder) PostMessage(text string, s Severity) {
	r.notes = append(r.notes, note{text, s})
}

func (r *recorder) SetMissionPanelVisible(v bool) { r.panel = append(r.panel, v) }

func (r *recorder) Record(o Outcome) error {
	if r.fail {
		return errors.New("disk full")
	}
	r.outcomes = append(r.outcomes, o)
	return nil
}

func (r *recorder) count(s Severity) int {
	n := 0
	for _, x := range r.notes {
		if x.severity == s {
			n++
		}
	}
	return n
}

func (r *recorder) panelVisible() bool {
	return len(r.panel) > 0 && r.panel[len(r.panel)-1]
}

// testUniverse: three planets in a line (A-B 5 LY, B-C 5 LY, A-C 10 LY),
// union employs; traders are friendly (+5), raiders hostile.
func testUniverse() game.Universe {
	return game.Universe{
		BalanceConfig: game.GameBalance{
			StartingCredits:    1000,
			FuelCostPerUnit:    1,
			DistancePayoutMult: 10,
			HubPlanet:          "planet_a",
		},
		MissionConfig: game.MissionConfig{
			MaxAttempts:     5,
			PatrolWaypoints: 3,
			DeadlinePerLY:   6,
			RewardPerLY:     10,
			BountyReward:    100,
			CourierBonus:    50,
		},
		PlayerShipConfig: game.Ship{
			Name:           "Test",
			MaxFuel:        100000,
			BaseBurnRate:   100,
			BurnDamping:    100,
			BaseMass:       1000,
			CargoCapacity:  30,
			MaxModuleSlots: 2,
		},
		Commodities: []game.Commodity{
			{Key: "item_water", Name: "Water", BaseValue: 20, Mass: 10},
		},
		Planets: []game.Planet{
			{Key: "planet_a", Name: "A", Coordinates: []int{0, 0}, Production: []string{"item_water"}},
			{Key: "planet_b", Name: "B", Coordinates: []int{3, 4}},
			{Key: "planet_c", Name: "C", Coordinates: []int{6, 8}},
		},
		Factions: []game.Faction{
			{Key: "union", Name: "Union", Relations: map[string]int{"traders": 5, "raiders": -50}},
			{Key: "traders", Name: "Traders"},
			{Key: "raiders", Name: "Raiders"},
			{Key: "drifters", Name: "Drifters"},
		},
		Contacts: []game.Contact{
			{ID: "r1", Name: "Red Fang", Faction: "raiders", LocationKey: "planet_c", Bounty: 500},
			{ID: "r2", Name: "Hollow Star", Faction: "raiders", LocationKey: "planet_b", Bounty: 300},
			{ID: "t1", Name: "Kestrel", Faction: "traders", LocationKey: "planet_b"},
			{ID: "d1", Name: "Vagrant", Faction: "drifters", LocationKey: "planet_a"},
		},
	}
}

// newTestControl wires Control over a fresh state. The random source always
// answers kind (mod n), so the factory picks that kind.
func newTestControl(kind Kind) (*Control, *game.State, *recorder) {
	vals := []int{int(kind)}
	state := game.NewState(testUniverse())
	rec := &recorder{}
	ctl := NewControl(state, NewFactory(state, &seqRand{vals: vals}), rec, rec)
	ctl.Now = func() time.Time { return t0 }
	return ctl, state, rec
}
