/*
Package game
File: mechanics.go
Description:
    The physical rules of flight: distances, ship mass and fuel burn.
*/

package game

import "math"

// MinBurn stops extremely light ships from travelling for free.
const MinBurn = 100

// Distance computes the Euclidean distance between two planets in Light Years,
// rounded to the nearest integer.
func Distance(a, b Planet) int64 {
	p1, p2 := a.Coordinates, b.Coordinates
	if len(p1) < 2 || len(p2) < 2 {
		return 0
	}
	dx := float64(p2[0] - p1[0])
	dy := float64(p2[1] - p1[1])
	return int64(math.Round(math.Hypot(dx, dy)))
}

// HoldUnits is the number of cargo units aboard.
func (sh Ship) HoldUnits() int {
	n := 0
	for _, c := range sh.Hold {
		n += c.Quantity
	}
	return n
}

// TotalMass is chassis + cargo + fuel.
func (sh Ship) TotalMass(b GameBalance) int64 {
	total := sh.BaseMass
	for _, c := range sh.Hold {
		total += int64(c.MassPerUnit * c.Quantity)
	}
	return total + sh.Fuel*int64(b.FuelMassPerUnit)
}

// Burn is the fuel cost per Light Year at the ship's current mass.
// The engine is tuned to burn BaseBurnRate with an empty hold and half a tank;
// every BurnDamping of mass above (or below) that shifts the burn by one.
func (sh Ship) Burn(b GameBalance) int64 {
	reference := sh.BaseMass + (sh.MaxFuel/2)*int64(b.FuelMassPerUnit)
	delta := sh.TotalMass(b) - reference

	damping := sh.BurnDamping
	if damping <= 0 {
		damping = 1
	}
	burn := sh.BaseBurnRate + delta/damping
	if burn < MinBurn {
		return MinBurn
	}
	return burn
}
