/*
Package game
File: flight.go
Description:
    Flight and docking. A ship is always docked somewhere; travelling burns
    fuel proportional to distance and current mass and docks at the destination.
*/

package game

import "fmt"

// TravelQuote is the pre-flight check for a jump.
type TravelQuote struct {
	Distance  int64 `json:"distance"`
	FuelCost  int64 `json:"fuel_cost"`
	CanAfford bool  `json:"can_afford"`
	BurnRate  int64 `json:"burn_rate"`
}

// Quote prices a jump to dest without moving the ship.
func (s *State) Quote(dest string) (TravelQuote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quote(dest)
}

func (s *State) quote(dest string) (TravelQuote, error) {
	to := s.planet(dest)
	if to == nil {
		return TravelQuote{}, fmt.Errorf("%w: %s", ErrUnknownPlanet, dest)
	}
	from := s.planet(s.ship.LocationKey)
	if from == nil {
		return TravelQuote{}, fmt.Errorf("%w: %s", ErrUnknownPlanet, s.ship.LocationKey)
	}

	dist := Distance(*from, *to)
	burn := s.ship.Burn(s.universe.BalanceConfig)
	cost := dist * burn
	return TravelQuote{
		Distance:  dist,
		FuelCost:  cost,
		CanAfford: s.ship.Fuel >= cost,
		BurnRate:  burn,
	}, nil
}

// Travel jumps to dest and docks there.
func (s *State) Travel(dest string) (Ship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dest == s.ship.LocationKey {
		return Ship{}, ErrAlreadyDocked
	}
	q, err := s.quote(dest)
	if err != nil {
		return Ship{}, err
	}
	if !q.CanAfford {
		return Ship{}, ErrInsufficientFuel
	}

	s.ship.Fuel -= q.FuelCost
	s.ship.LocationKey = dest
	return s.ship.clone(), nil
}

// Refuel fills the tank. The price is per 100 units, rounded down.
func (s *State) Refuel() (Ship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needed := s.ship.MaxFuel - s.ship.Fuel
	if needed <= 0 {
		return Ship{}, ErrTankFull
	}
	cost := int(needed/100) * s.universe.BalanceConfig.FuelCostPerUnit
	if s.ship.Credits < cost {
		return Ship{}, ErrInsufficientCredits
	}

	s.ship.Credits -= cost
	s.ship.Fuel = s.ship.MaxFuel
	return s.ship.clone(), nil
}
