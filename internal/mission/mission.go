/*
Package mission
File: mission.go
Description:
    The mission core. A Mission is one job issued by an employer faction.
    Four kinds exist (Patrol, Assassination, CargoDelivery, Courier); the set
    is closed, every kind embeds base and is created by the Factory.

    Lifecycle: Generating -> Active -> {Completed, Failed, Aborted}.
    Missions move themselves to Completed/Failed from Update or RegisterKill;
    only Control aborts them.
*/

package mission

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/everforgeworks/galaxies-mission-control/internal/game"
)

var (
	// ErrNoCandidates is the generation failure: the sector has nothing this
	// kind of mission can be built around.
	ErrNoCandidates = errors.New("no candidates for mission")

	// ErrGenerationExhausted is returned by the Factory when every attempt failed.
	ErrGenerationExhausted = errors.New("mission generation exhausted")

	ErrUnknownEmployer = errors.New("unknown employer faction")
	ErrNoMission       = errors.New("no active mission")
	ErrNotActive       = errors.New("mission is not active")
)

// Kind identifies a mission type. The numeric order is the random selector's.
type Kind int

const (
	KindPatrol Kind = iota
	KindAssassination
	KindCargoDelivery
	KindCourier

	numKinds = 4
)

var kindNames = [numKinds]string{"patrol", "assassination", "cargo_delivery", "courier"}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mission kind %q", b)
}

// Status is a mission's lifecycle state.
type Status int

const (
	StatusGenerating Status = iota
	StatusActive
	StatusCompleted
	StatusFailed
	StatusAborted
)

var statusNames = [...]string{"generating", "active", "completed", "failed", "aborted"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mission status %q", b)
}

// Terminal reports whether the mission is over.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusAborted
}

// World is everything a mission reads from or changes in the game.
// *game.State implements it.
type World interface {
	PlayerLocation() string
	Ship() game.Ship
	Planet(key string) (game.Planet, bool)
	Planets() []game.Planet
	Commodities() []game.Commodity
	Faction(key string) (game.Faction, bool)
	Contact(id string) (game.Contact, bool)
	Contacts() []game.Contact
	RelationWith(a, b string) int
	MissionConfig() game.MissionConfig

	LoadCargo(item game.CargoItem) error
	HasMissionCargo(missionID string) bool
	UnloadCargo(missionID string) []game.CargoItem
	Credit(amount int) int
}

// Rand is the random source. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Mission is one job. The unexported core method closes the set of
// implementations to this package.
type Mission interface {
	ID() string
	Kind() Kind
	Employer() string
	Status() Status
	Reward() int
	Deadline() time.Time
	Reason() string
	Briefing() string

	// Generate picks the mission's parameters. It may fail with ErrNoCandidates.
	Generate(w World, rng Rand) error
	// Start is called once when the mission becomes current.
	Start(now time.Time, w World) error
	// Update is the per-frame progress check.
	Update(now time.Time, w World)
	// Docked is the per-arrival progress check. It sees every jump, even
	// several inside one frame.
	Docked(now time.Time, planet string, w World)
	// RegisterKill is the per-kill progress check.
	RegisterKill(killed game.Contact)
	// Release returns anything the mission placed in the world.
	Release(w World)

	core() *base
}

// base carries the state shared by every kind.
type base struct {
	id       string
	kind     Kind
	employer string
	status   Status
	reward   int
	window   time.Duration
	deadline time.Time
	reason   string
}

func newBase(kind Kind, employer string) base {
	return base{
		id:       uuid.New().String()[:8],
		kind:     kind,
		employer: employer,
		status:   StatusGenerating,
	}
}

func (b *base) ID() string          { return b.id }
func (b *base) Kind() Kind          { return b.kind }
func (b *base) Employer() string    { return b.employer }
func (b *base) Status() Status      { return b.status }
func (b *base) Reward() int         { return b.reward }
func (b *base) Deadline() time.Time { return b.deadline }
func (b *base) Reason() string      { return b.reason }
func (b *base) core() *base         { return b }

// Start arms the deadline. Kinds that place things in the world wrap it.
func (b *base) Start(now time.Time, _ World) error {
	if b.status != StatusActive {
		return ErrNotActive
	}
	if b.window > 0 {
		b.deadline = now.Add(b.window)
	}
	return nil
}

func (b *base) Docked(time.Time, string, World) {}

func (b *base) RegisterKill(game.Contact) {}

func (b *base) Release(World) {}

func (b *base) activate() { b.status = StatusActive }

func (b *base) complete() {
	if b.status == StatusActive {
		b.status = StatusCompleted
	}
}

func (b *base) fail(reason string) {
	if b.status == StatusActive {
		b.status = StatusFailed
		b.reason = reason
	}
}

func (b *base) abort(reason string) {
	if !b.status.Terminal() {
		b.status = StatusAborted
		b.reason = reason
	}
}

func (b *base) expired(now time.Time) bool {
	return !b.deadline.IsZero() && now.After(b.deadline)
}

// minWindow keeps short hops from expiring before the player can react.
const minWindow = time.Minute

func windowFor(ly int64, perLY, factor int) time.Duration {
	w := time.Duration(ly*int64(perLY)*int64(factor)) * time.Second
	if w < minWindow {
		return minWindow
	}
	return w
}

// Snapshot is the JSON view of a mission.
type Snapshot struct {
	ID       string    `json:"id"`
	Kind     Kind      `json:"kind"`
	Employer string    `json:"employer"`
	Status   Status    `json:"status"`
	Reward   int       `json:"reward"`
	Deadline time.Time `json:"deadline,omitzero"`
	Briefing string    `json:"briefing"`
	Reason   string    `json:"reason,omitempty"`
}

// Describe builds the JSON view of m.
func Describe(m Mission) Snapshot {
	return Snapshot{
		ID:       m.ID(),
		Kind:     m.Kind(),
		Employer: m.Employer(),
		Status:   m.Status(),
		Reward:   m.Reward(),
		Deadline: m.Deadline(),
		Briefing: m.Briefing(),
		Reason:   m.Reason(),
	}
}

// distance is the jump length between two planet keys, 0 if either is unknown.
func distance(w World, from, to string) int64 {
	a, ok := w.Planet(from)
	if !ok {
		return 0
	}
	b, ok := w.Planet(to)
	if !ok {
		return 0
	}
	return game.Distance(a, b)
}

// otherPlanets lists every planet key except the player's current dock.
func otherPlanets(w World) []string {
	loc := w.PlayerLocation()
	var keys []string
	for _, p := range w.Planets() {
		if p.Key != loc {
			keys = append(keys, p.Key)
		}
	}
	return keys
}

func planetName(w World, key string) string {
	if p, ok := w.Planet(key); ok && p.Name != "" {
		return p.Name
	}
	return key
}
