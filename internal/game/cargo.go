/*
Package game
File: cargo.go
Description:
    The cargo hold. Capacity is counted in units, not mass; mass only
    affects the burn rate.
*/

package game

import "fmt"

// LoadCargo stows an item in the hold. Items with no declared mass take the
// commodity's configured mass.
func (s *State) LoadCargo(item CargoItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Quantity <= 0 {
		return fmt.Errorf("load %s: quantity must be positive", item.Key)
	}
	if item.MassPerUnit == 0 {
		if c := s.commodity(item.Key); c != nil {
			item.MassPerUnit = c.Mass
		}
	}
	if s.ship.HoldUnits()+item.Quantity > s.ship.CargoCapacity {
		return ErrHoldFull
	}
	s.ship.Hold = append(s.ship.Hold, item)
	return nil
}

// HasMissionCargo reports whether any cargo tagged with missionID is aboard.
func (s *State) HasMissionCargo(missionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.ship.Hold {
		if c.MissionID == missionID {
			return true
		}
	}
	return false
}

// UnloadCargo removes and returns every item tagged with missionID.
func (s *State) UnloadCargo(missionID string) []CargoItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []CargoItem
	kept := s.ship.Hold[:0]
	for _, c := range s.ship.Hold {
		if c.MissionID == missionID {
			out = append(out, c)
			continue
		}
		kept = append(kept, c)
	}
	s.ship.Hold = kept
	return out
}

// JettisonCargo dumps the first stack with the given key into space.
func (s *State) JettisonCargo(key string) (CargoItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.ship.Hold {
		if c.Key == key {
			s.ship.Hold = append(s.ship.Hold[:i], s.ship.Hold[i+1:]...)
			return c, nil
		}
	}
	return CargoItem{}, fmt.Errorf("%w: %s", ErrNotInHold, key)
}
