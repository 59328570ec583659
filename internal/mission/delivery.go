/*
Package mission
File: delivery.go
Description:
    CargoDelivery: carry a consignment to a destination planet.
    The cargo is loaded into the player's hold when the mission starts
    and removed from it again when the mission ends for any reason.
*/

package mission

import (
	"fmt"
	"time"

	"github.com/everforgeworks/galaxies-mission-control/internal/game"
)

const (
	// 80% of consignments come from the origin's own production.
	localProductionChance = 80

	minConsignment = 5
	maxConsignment = 25
)

// CargoDelivery completes on docking at Destination with Cargo still aboard.
type CargoDelivery struct {
	base
	Cargo       game.CargoItem
	Destination string
	destName    string
}

// NewCargoDelivery returns an ungenerated delivery for employer.
func NewCargoDelivery(employer string) Mission {
	return &CargoDelivery{base: newBase(KindCargoDelivery, employer)}
}

// Generate sizes a consignment to the free space in the hold.
func (d *CargoDelivery) Generate(w World, rng Rand) error {
	commodities := w.Commodities()
	if len(commodities) == 0 {
		return fmt.Errorf("cargo delivery: %w: no commodities", ErrNoCandidates)
	}
	dests := otherPlanets(w)
	if len(dests) == 0 {
		return fmt.Errorf("cargo delivery: %w: no destinations", ErrNoCandidates)
	}
	ship := w.Ship()
	free := ship.CargoCapacity - ship.HoldUnits()
	if free <= 0 {
		return fmt.Errorf("cargo delivery: %w: hold is full", ErrNoCandidates)
	}

	comm := commodities[rng.Intn(len(commodities))]
	if origin, ok := w.Planet(w.PlayerLocation()); ok && len(origin.Production) > 0 && rng.Intn(100) < localProductionChance {
		key := origin.Production[rng.Intn(len(origin.Production))]
		for _, c := range commodities {
			if c.Key == key {
				comm = c
				break
			}
		}
	}

	qty := min(free, rng.Intn(maxConsignment-minConsignment+1)+minConsignment)
	d.Destination = dests[rng.Intn(len(dests))]
	d.destName = planetName(w, d.Destination)
	d.Cargo = game.CargoItem{
		Key:         comm.Key,
		Name:        comm.Name,
		Quantity:    qty,
		MassPerUnit: comm.Mass,
		MissionID:   d.id,
	}

	cfg := w.MissionConfig()
	dist := distance(w, w.PlayerLocation(), d.Destination)
	d.reward = int(dist)*cfg.RewardPerLY + comm.BaseValue*qty/2
	d.window = windowFor(dist, cfg.DeadlinePerLY, 2)
	return nil
}

// Start loads the consignment.
func (d *CargoDelivery) Start(now time.Time, w World) error {
	if err := d.base.Start(now, w); err != nil {
		return err
	}
	if err := w.LoadCargo(d.Cargo); err != nil {
		return fmt.Errorf("load consignment: %w", err)
	}
	return nil
}

func (d *CargoDelivery) Update(now time.Time, w World) {
	if d.status != StatusActive {
		return
	}
	if d.expired(now) {
		d.fail("consignment was not delivered in time")
		return
	}
	if !w.HasMissionCargo(d.id) {
		d.fail("consignment was lost")
		return
	}
	d.Docked(now, w.PlayerLocation(), w)
}

// Docked hands the consignment over at the destination.
func (d *CargoDelivery) Docked(now time.Time, planet string, w World) {
	if d.status != StatusActive || d.expired(now) || planet != d.Destination {
		return
	}
	if !w.HasMissionCargo(d.id) {
		return
	}
	w.UnloadCargo(d.id)
	d.complete()
}

// Release clears any consignment left in the hold.
func (d *CargoDelivery) Release(w World) {
	w.UnloadCargo(d.id)
}

func (d *CargoDelivery) Briefing() string {
	return fmt.Sprintf("Deliver %d x %s to %s. Reward: %d credits.", d.Cargo.Quantity, d.Cargo.Name, d.destName, d.reward)
}
