/*
Package game
File: models.go
Description:
    Defines the data structures of the Galaxies universe.
    These map directly to 'universe.yaml' and to the JSON API responses.

    No logic is performed here; this file is strictly for type definitions.
*/

package game

// GameBalance stores global tuning variables loaded from 'universe.yaml'.
type GameBalance struct {
	StartingCredits    int    `yaml:"starting_credits" json:"starting_credits"`         // Credits given to a new player
	FuelCostPerUnit    int    `yaml:"fuel_cost_per_unit" json:"fuel_cost_per_unit"`     // Cost of 100 fuel at a depot
	FuelMassPerUnit    int    `yaml:"fuel_mass_per_unit" json:"fuel_mass_per_unit"`     // Weight of 1 fuel (impacts burn rate)
	DistancePayoutMult int    `yaml:"distance_payout_mult" json:"distance_payout_mult"` // Credits earned per Light Year
	HubPlanet          string `yaml:"hub_planet" json:"hub_planet"`                     // Where ships spawn and modules are sold
}

// MissionConfig tunes mission generation.
type MissionConfig struct {
	MaxAttempts     int `yaml:"max_attempts" json:"max_attempts"`         // Generation attempts before giving up
	PatrolWaypoints int `yaml:"patrol_waypoints" json:"patrol_waypoints"` // Planets on a patrol route
	DeadlinePerLY   int `yaml:"deadline_per_ly" json:"deadline_per_ly"`   // Seconds granted per Light Year
	RewardPerLY     int `yaml:"reward_per_ly" json:"reward_per_ly"`       // Credits per Light Year of route
	BountyReward    int `yaml:"bounty_reward" json:"bounty_reward"`       // Flat fee on top of a contact's bounty
	CourierBonus    int `yaml:"courier_bonus" json:"courier_bonus"`       // Flat fee for time-critical deliveries
}

// ShipModule is an installable piece of equipment.
type ShipModule struct {
	Key          string `yaml:"key" json:"key"`                     // Unique ID (e.g., "mod_cargo_bay")
	Name         string `yaml:"name" json:"name"`                   // Display name
	Description  string `yaml:"description" json:"description"`     // Flavor text
	Cost         int    `yaml:"cost" json:"cost"`                   // Purchase price in Credits
	StatModifier string `yaml:"stat_modifier" json:"stat_modifier"` // Ship stat this module raises
	StatValue    int    `yaml:"stat_value" json:"stat_value"`       // Amount added to the stat
}

// Planet is a static dock location on the starmap.
type Planet struct {
	Key         string   `json:"key" yaml:"key"`                 // Unique ID (e.g., "planet_prime")
	Name        string   `json:"name" yaml:"name"`               // Display Name
	Faction     string   `json:"faction" yaml:"faction"`         // Controlling faction key
	Coordinates []int    `json:"coordinates" yaml:"coordinates"` // [X, Y] position on the starmap
	Production  []string `json:"production" yaml:"production"`   // Commodity keys shipped from here
}

// Commodity is a tradeable good.
type Commodity struct {
	Key       string `yaml:"key" json:"key"`
	Name      string `yaml:"name" json:"name"`
	BaseValue int    `yaml:"base_value" json:"base_value"`
	Mass      int    `yaml:"mass" json:"mass"` // Weight per unit
}

// Faction is a political identity. Relations run from -100 (war) to +100 (allied).
type Faction struct {
	Key       string         `yaml:"key" json:"key"`
	Name      string         `yaml:"name" json:"name"`
	Relations map[string]int `yaml:"relations" json:"relations"`
}

// Contact is a non-player ship present in the sector.
type Contact struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Faction     string `yaml:"faction" json:"faction"`
	LocationKey string `yaml:"location" json:"location_key"`
	Bounty      int    `yaml:"bounty" json:"bounty"`
}

// CargoItem is one stack in the ship's hold.
type CargoItem struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	MassPerUnit int    `json:"mass_per_unit"`
	MissionID   string `json:"mission_id,omitempty"` // Set when the cargo belongs to a mission
}

// Ship represents the player's vessel.
type Ship struct {
	Name        string `json:"name" yaml:"name"`
	LocationKey string `json:"location_key"` // Planet where the ship is docked
	Credits     int    `json:"credits"`
	Fuel        int64  `json:"fuel"`
	MaxFuel     int64  `json:"max_fuel" yaml:"max_fuel"`

	// Engine / Physics Stats
	BaseBurnRate int64 `json:"base_burn_rate" yaml:"base_burn_rate"` // Fuel per LY at Reference Mass
	BurnDamping  int64 `json:"burn_damping" yaml:"burn_damping"`     // Higher = Mass matters less
	BaseMass     int64 `json:"base_mass" yaml:"base_mass"`

	CargoCapacity  int `json:"cargo_capacity" yaml:"cargo_capacity"`
	PassengerSlots int `json:"passenger_slots" yaml:"passenger_slots"`
	MaxModuleSlots int `json:"max_module_slots" yaml:"max_module_slots"`

	InstalledModules []ShipModule `json:"installed_modules"`
	Hold             []CargoItem  `json:"hold"`
}

// Universe is the root of 'universe.yaml'.
type Universe struct {
	BalanceConfig    GameBalance   `yaml:"game_balance"`
	MissionConfig    MissionConfig `yaml:"mission_config"`
	PlayerShipConfig Ship          `yaml:"player_ship"`
	Commodities      []Commodity   `yaml:"commodities"`
	Planets          []Planet      `yaml:"planets"`
	ShipModules      []ShipModule  `yaml:"ship_modules"`
	Factions         []Faction     `yaml:"factions"`
	Contacts         []Contact     `yaml:"contacts"`
}
