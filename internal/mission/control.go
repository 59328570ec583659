/*
Package mission
File: control.go
Description:
    Control owns the one current mission. It routes frame ticks and kill
    events to it, aborts it on friendly fire and settles it when it ends:
    reward payout, player notification, mission panel and the journal.

    Control is not safe for concurrent use. The server drives it from a
    single goroutine (see Loop).
*/

package mission

import (
	"fmt"
	"log"
	"time"

	"github.com/everforgeworks/galaxies-mission-control/internal/game"
)

// Severity grades a player notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// FriendlyFireMessage is posted when the player destroys an ally of the employer.
const FriendlyFireMessage = "Mission failed! You have destroyed a friendly ship!"

// Notifier is the presentation service.
type Notifier interface {
	PostMessage(text string, severity Severity)
	SetMissionPanelVisible(visible bool)
}

// Outcome is the record of a finished mission.
type Outcome struct {
	MissionID  string    `json:"mission_id" db:"mission_id"`
	Kind       string    `json:"kind" db:"kind"`
	Employer   string    `json:"employer" db:"employer"`
	Status     string    `json:"status" db:"status"`
	Reason     string    `json:"reason" db:"reason"`
	Reward     int       `json:"reward" db:"reward"`
	FinishedAt time.Time `json:"finished_at" db:"finished_at"`
}

// Journal stores outcomes.
type Journal interface {
	Record(o Outcome) error
}

// Control is the mission dispatcher.
type Control struct {
	world   World
	factory *Factory
	notify  Notifier
	journal Journal // may be nil
	current Mission

	// Now is the clock used when a mission starts outside a tick.
	Now func() time.Time
}

// NewControl wires a dispatcher. journal may be nil.
func NewControl(w World, f *Factory, n Notifier, j Journal) *Control {
	return &Control{
		world:   w,
		factory: f,
		notify:  n,
		journal: j,
		Now:     time.Now,
	}
}

// Current returns the active mission or nil.
func (c *Control) Current() Mission {
	return c.current
}

// Request creates a mission for employer and makes it current.
func (c *Control) Request(employer string) (Mission, error) {
	m, err := c.factory.Create(employer)
	if err != nil {
		return nil, err
	}
	if err := c.Assign(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Assign makes m the current mission, superseding any previous one.
func (c *Control) Assign(m Mission) error {
	if m.Status() != StatusActive {
		return ErrNotActive
	}
	if err := m.Start(c.Now(), c.world); err != nil {
		m.Release(c.world)
		return fmt.Errorf("start mission %s: %w", m.ID(), err)
	}

	if old := c.current; old != nil && !c.settle(old) {
		old.core().abort("superseded by a new mission")
		c.finish(old)
		log.Printf("MISSION: %s superseded by %s", old.ID(), m.ID())
		c.notify.PostMessage("Previous mission abandoned.", SeverityInfo)
	}

	c.current = m
	log.Printf("MISSION: Assigned %s %s for %s", m.Kind(), m.ID(), m.Employer())
	c.notify.PostMessage("New mission: "+m.Briefing(), SeverityInfo)
	c.notify.SetMissionPanelVisible(true)
	return nil
}

// Drop abandons the current mission.
func (c *Control) Drop() error {
	m := c.current
	if m == nil {
		return ErrNoMission
	}
	if c.settle(m) {
		return nil
	}
	m.core().abort("abandoned by the pilot")
	c.current = nil
	c.finish(m)
	c.notify.PostMessage("Mission abandoned.", SeverityInfo)
	c.notify.SetMissionPanelVisible(false)
	return nil
}

// Tick runs the current mission's per-frame update and settles it if it ended.
func (c *Control) Tick(now time.Time) {
	m := c.current
	if m == nil {
		return
	}
	if m.Status() == StatusActive {
		m.Update(now, c.world)
	}
	c.settle(m)
}

// settle clears a mission that completed or failed on its own.
// It reports false if m is still running.
func (c *Control) settle(m Mission) bool {
	switch m.Status() {
	case StatusCompleted:
		c.current = nil
		c.finish(m)
		credits := c.world.Credit(m.Reward())
		log.Printf("MISSION: %s completed, paid %d (balance %d)", m.ID(), m.Reward(), credits)
		c.notify.PostMessage(fmt.Sprintf("Mission complete! %d credits transferred.", m.Reward()), SeveritySuccess)
		c.notify.SetMissionPanelVisible(false)
	case StatusFailed:
		c.current = nil
		c.finish(m)
		log.Printf("MISSION: %s failed: %s", m.ID(), m.Reason())
		c.notify.PostMessage("Mission failed! "+m.Reason(), SeverityError)
		c.notify.SetMissionPanelVisible(false)
	default:
		return false
	}
	return true
}

// Docked routes an arrival at planet to the current mission. Settlement
// waits for the next Tick, as with kills.
func (c *Control) Docked(planet string) {
	m := c.current
	if m == nil || m.Status() != StatusActive {
		return
	}
	m.Docked(c.Now(), planet, c.world)
}

// RegisterKill routes a kill. Destroying a ship the employer is friendly
// with aborts the mission; any other kill goes to the mission itself.
func (c *Control) RegisterKill(killed game.Contact) {
	m := c.current
	if m == nil || m.Status() != StatusActive {
		return
	}
	if c.world.RelationWith(m.Employer(), killed.Faction) > 0 {
		m.core().abort("destroyed a friendly ship")
		c.current = nil
		c.finish(m)
		log.Printf("MISSION: %s aborted, %s (%s) was friendly to %s", m.ID(), killed.Name, killed.Faction, m.Employer())
		c.notify.PostMessage(FriendlyFireMessage, SeverityError)
		c.notify.SetMissionPanelVisible(false)
		return
	}
	m.RegisterKill(killed)
}

// finish releases world resources and journals the outcome.
func (c *Control) finish(m Mission) {
	m.Release(c.world)
	if c.journal == nil {
		return
	}
	o := Outcome{
		MissionID:  m.ID(),
		Kind:       m.Kind().String(),
		Employer:   m.Employer(),
		Status:     m.Status().String(),
		Reason:     m.Reason(),
		FinishedAt: c.Now(),
	}
	if m.Status() == StatusCompleted {
		o.Reward = m.Reward()
	}
	if err := c.journal.Record(o); err != nil {
		log.Printf("MISSION: Journal error for %s: %v", m.ID(), err)
	}
}
