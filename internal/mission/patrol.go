/*
Package mission
File: patrol.go
Description:
    Patrol: dock at a route of planets in order before the deadline.
*/

package mission

import (
	"fmt"
	"strings"
	"time"
)

// Patrol visits Waypoints in order.
type Patrol struct {
	base
	Waypoints []string
	names     []string
	next      int
}

// NewPatrol returns an ungenerated patrol for employer.
func NewPatrol(employer string) Mission {
	return &Patrol{base: newBase(KindPatrol, employer)}
}

// Generate draws distinct waypoints other than the player's dock.
func (p *Patrol) Generate(w World, rng Rand) error {
	cands := otherPlanets(w)
	if len(cands) == 0 {
		return fmt.Errorf("patrol: %w: no planets to visit", ErrNoCandidates)
	}
	cfg := w.MissionConfig()
	n := min(cfg.PatrolWaypoints, len(cands))

	// Partial Fisher-Yates: the first n entries become the route.
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(cands)-i)
		cands[i], cands[j] = cands[j], cands[i]
	}
	p.Waypoints = cands[:n]

	var route int64
	prev := w.PlayerLocation()
	p.names = p.names[:0]
	for _, wp := range p.Waypoints {
		route += distance(w, prev, wp)
		prev = wp
		p.names = append(p.names, planetName(w, wp))
	}

	p.reward = int(route) * cfg.RewardPerLY
	p.window = windowFor(route, cfg.DeadlinePerLY, 2)
	return nil
}

// Update advances the route when the player docks at the next waypoint.
func (p *Patrol) Update(now time.Time, w World) {
	if p.status != StatusActive {
		return
	}
	if p.expired(now) {
		p.fail("patrol route not completed in time")
		return
	}
	p.Docked(now, w.PlayerLocation(), w)
}

// Docked ticks off planet if it is the next waypoint.
func (p *Patrol) Docked(now time.Time, planet string, _ World) {
	if p.status != StatusActive || p.expired(now) {
		return
	}
	if p.next < len(p.Waypoints) && planet == p.Waypoints[p.next] {
		p.next++
	}
	if p.next == len(p.Waypoints) {
		p.complete()
	}
}

// Progress returns visited and total waypoints.
func (p *Patrol) Progress() (int, int) { return p.next, len(p.Waypoints) }

func (p *Patrol) Briefing() string {
	return fmt.Sprintf("Patrol %s. Reward: %d credits.", strings.Join(p.names, " -> "), p.reward)
}
