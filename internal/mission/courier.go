/*
Package mission
File: courier.go
Description:
    Courier: reach a destination on a tight timer.
*/

package mission

import (
	"fmt"
	"time"
)

// Courier completes on docking at Destination before the deadline.
type Courier struct {
	base
	Destination string
	destName    string
}

// NewCourier returns an ungenerated courier job for employer.
func NewCourier(employer string) Mission {
	return &Courier{base: newBase(KindCourier, employer)}
}

func (c *Courier) Generate(w World, rng Rand) error {
	dests := otherPlanets(w)
	if len(dests) == 0 {
		return fmt.Errorf("courier: %w: no destinations", ErrNoCandidates)
	}
	c.Destination = dests[rng.Intn(len(dests))]
	c.destName = planetName(w, c.Destination)

	cfg := w.MissionConfig()
	dist := distance(w, w.PlayerLocation(), c.Destination)
	c.reward = int(dist)*cfg.RewardPerLY + cfg.CourierBonus
	c.window = windowFor(dist, cfg.DeadlinePerLY, 1)
	return nil
}

func (c *Courier) Update(now time.Time, w World) {
	if c.status != StatusActive {
		return
	}
	if c.expired(now) {
		c.fail("the package arrived too late")
		return
	}
	c.Docked(now, w.PlayerLocation(), w)
}

func (c *Courier) Docked(now time.Time, planet string, _ World) {
	if c.status == StatusActive && !c.expired(now) && planet == c.Destination {
		c.complete()
	}
}

func (c *Courier) Briefing() string {
	return fmt.Sprintf("Rush a sealed package to %s. Reward: %d credits.", c.destName, c.reward)
}
