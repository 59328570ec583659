/*
Package game
File: state.go
Description:
    Manages the runtime state of the universe: the static configuration,
    the player's ship and the NPC contacts present in the sector.

    It also handles loading 'universe.yaml' (LoadUniverse) and hot reloads.
*/

package game

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownPlanet       = errors.New("unknown planet")
	ErrUnknownModule       = errors.New("unknown module")
	ErrUnknownContact      = errors.New("unknown contact")
	ErrInsufficientFuel    = errors.New("insufficient fuel for current mass")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrTankFull            = errors.New("tank is already full")
	ErrHoldFull            = errors.New("insufficient cargo space")
	ErrNoModuleSlots       = errors.New("no module slots available")
	ErrNoUpgradeService    = errors.New("upgrade service unavailable at this location")
	ErrAlreadyDocked       = errors.New("already docked at destination")
	ErrNotInHold           = errors.New("cargo not in hold")
)

// DefaultHub is used when the YAML does not name a hub planet.
const DefaultHub = "planet_prime"

// LoadUniverse reads and parses a universe file.
func LoadUniverse(path string) (Universe, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Universe{}, fmt.Errorf("read universe: %w", err)
	}

	var u Universe
	if err := yaml.Unmarshal(f, &u); err != nil {
		return Universe{}, fmt.Errorf("parse universe: %w", err)
	}
	applyDefaults(&u)
	return u, nil
}

// applyDefaults fills tuning values the YAML left empty.
func applyDefaults(u *Universe) {
	if u.BalanceConfig.HubPlanet == "" {
		u.BalanceConfig.HubPlanet = DefaultHub
	}
	mc := &u.MissionConfig
	if mc.MaxAttempts <= 0 {
		mc.MaxAttempts = 16
	}
	if mc.PatrolWaypoints <= 0 {
		mc.PatrolWaypoints = 3
	}
	if mc.DeadlinePerLY <= 0 {
		mc.DeadlinePerLY = 6
	}
	if mc.RewardPerLY <= 0 {
		mc.RewardPerLY = u.BalanceConfig.DistancePayoutMult
	}
}

// State is the live game. All methods are safe for concurrent use.
type State struct {
	mu       sync.RWMutex
	universe Universe
	factions Factions
	ship     Ship
	contacts []Contact
}

// NewState boots a fresh game from the universe: the player ship is built from
// the template and docked at the hub planet.
func NewState(u Universe) *State {
	applyDefaults(&u)
	s := &State{}
	s.install(u)

	s.ship = u.PlayerShipConfig
	s.ship.Fuel = s.ship.MaxFuel
	s.ship.LocationKey = u.BalanceConfig.HubPlanet
	s.ship.Credits = u.BalanceConfig.StartingCredits
	s.ship.InstalledModules = []ShipModule{}
	s.ship.Hold = []CargoItem{}
	return s
}

// Reload swaps in a new universe while keeping the player's progress.
// The sector's contacts are re-seeded from the new configuration.
func (s *State) Reload(u Universe) {
	applyDefaults(&u)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.install(u)
}

func (s *State) install(u Universe) {
	s.universe = u
	s.factions = NewFactions(u.Factions)
	s.contacts = append([]Contact(nil), u.Contacts...)
}

// Ship returns a snapshot of the player's ship.
func (s *State) Ship() Ship {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ship.clone()
}

func (sh Ship) clone() Ship {
	sh.InstalledModules = append([]ShipModule{}, sh.InstalledModules...)
	sh.Hold = append([]CargoItem{}, sh.Hold...)
	return sh
}

// PlayerLocation returns the planet the player is docked at.
func (s *State) PlayerLocation() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ship.LocationKey
}

func (s *State) Planets() []Planet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Planet(nil), s.universe.Planets...)
}

func (s *State) Commodities() []Commodity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Commodity(nil), s.universe.Commodities...)
}

func (s *State) FactionList() []Faction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Faction(nil), s.universe.Factions...)
}

func (s *State) Balance() GameBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.universe.BalanceConfig
}

func (s *State) MissionConfig() MissionConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.universe.MissionConfig
}

// Planet looks up a planet by key.
func (s *State) Planet(key string) (Planet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.planet(key)
	if p == nil {
		return Planet{}, false
	}
	return *p, true
}

// Faction looks up a faction by key.
func (s *State) Faction(key string) (Faction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.factions[key]
	return f, ok
}

// RelationWith returns the affinity between two factions.
func (s *State) RelationWith(a, b string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.factions.RelationWith(a, b)
}

// Contacts returns the NPC ships currently in the sector.
func (s *State) Contacts() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Contact(nil), s.contacts...)
}

// Contact looks up a contact by ID.
func (s *State) Contact(id string) (Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.contacts {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}

// RemoveContact takes a destroyed contact out of the sector.
func (s *State) RemoveContact(id string) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.contacts {
		if c.ID == id {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			return c, nil
		}
	}
	return Contact{}, fmt.Errorf("%w: %s", ErrUnknownContact, id)
}

// Credit adds (or with a negative amount, removes) credits from the wallet.
func (s *State) Credit(amount int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ship.Credits += amount
	return s.ship.Credits
}

// planet requires s.mu held.
func (s *State) planet(key string) *Planet {
	for i := range s.universe.Planets {
		if s.universe.Planets[i].Key == key {
			return &s.universe.Planets[i]
		}
	}
	return nil
}

// commodity requires s.mu held.
func (s *State) commodity(key string) *Commodity {
	for i := range s.universe.Commodities {
		if s.universe.Commodities[i].Key == key {
			return &s.universe.Commodities[i]
		}
	}
	return nil
}
