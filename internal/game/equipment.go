/*
Package game
File: equipment.go
Description:
    Ship modules. Upgrades are only sold at the hub planet and permanently
    raise one ship stat.
*/

package game

import "fmt"

// ModulesForSale lists the modules on offer at the player's location.
// Anywhere but the hub the list is empty.
func (s *State) ModulesForSale() []ShipModule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ship.LocationKey != s.universe.BalanceConfig.HubPlanet {
		return []ShipModule{}
	}
	return append([]ShipModule{}, s.universe.ShipModules...)
}

// BuyModule purchases and installs a module.
func (s *State) BuyModule(key string) (Ship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ship.LocationKey != s.universe.BalanceConfig.HubPlanet {
		return Ship{}, ErrNoUpgradeService
	}
	if len(s.ship.InstalledModules) >= s.ship.MaxModuleSlots {
		return Ship{}, ErrNoModuleSlots
	}

	var mod *ShipModule
	for i := range s.universe.ShipModules {
		if s.universe.ShipModules[i].Key == key {
			mod = &s.universe.ShipModules[i]
			break
		}
	}
	if mod == nil {
		return Ship{}, fmt.Errorf("%w: %s", ErrUnknownModule, key)
	}
	if s.ship.Credits < mod.Cost {
		return Ship{}, ErrInsufficientCredits
	}

	s.ship.Credits -= mod.Cost
	s.ship.InstalledModules = append(s.ship.InstalledModules, *mod)
	switch mod.StatModifier {
	case "cargo_capacity":
		s.ship.CargoCapacity += mod.StatValue
	case "passenger_slots":
		s.ship.PassengerSlots += mod.StatValue
	case "max_fuel":
		s.ship.MaxFuel += int64(mod.StatValue)
	}
	return s.ship.clone(), nil
}
