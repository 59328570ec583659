/*
Package mission
File: assassination.go
Description:
    Assassination: destroy one ship belonging to a faction hostile to the employer.
*/

package mission

import (
	"fmt"
	"time"

	"github.com/everforgeworks/galaxies-mission-control/internal/game"
)

// assassinationFactor scales the deadline relative to plain travel time.
const assassinationFactor = 3

// Assassination completes when Target is killed.
type Assassination struct {
	base
	Target game.Contact
}

// NewAssassination returns an ungenerated assassination for employer.
func NewAssassination(employer string) Mission {
	return &Assassination{base: newBase(KindAssassination, employer)}
}

// Generate picks a target among contacts hostile to the employer.
func (a *Assassination) Generate(w World, rng Rand) error {
	var hostile []game.Contact
	for _, c := range w.Contacts() {
		if w.RelationWith(a.employer, c.Faction) < 0 {
			hostile = append(hostile, c)
		}
	}
	if len(hostile) == 0 {
		return fmt.Errorf("assassination: %w: no hostile contacts", ErrNoCandidates)
	}

	a.Target = hostile[rng.Intn(len(hostile))]
	cfg := w.MissionConfig()
	a.reward = a.Target.Bounty + cfg.BountyReward
	a.window = windowFor(distance(w, w.PlayerLocation(), a.Target.LocationKey), cfg.DeadlinePerLY, assassinationFactor)
	return nil
}

// Update fails the job if the deadline passes or the target leaves the sector.
func (a *Assassination) Update(now time.Time, w World) {
	if a.status != StatusActive {
		return
	}
	if a.expired(now) {
		a.fail("target was not eliminated in time")
		return
	}
	if _, ok := w.Contact(a.Target.ID); !ok {
		a.fail("target is no longer in the sector")
	}
}

// RegisterKill completes the job when the target dies.
func (a *Assassination) RegisterKill(killed game.Contact) {
	if killed.ID == a.Target.ID {
		a.complete()
	}
}

func (a *Assassination) Briefing() string {
	return fmt.Sprintf("Eliminate %s (%s). Reward: %d credits.", a.Target.Name, a.Target.Faction, a.reward)
}
