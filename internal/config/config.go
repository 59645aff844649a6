package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Simulation SimulationConfig `toml:"simulation"`
	Floor      FloorConfig      `toml:"floor"`
	Staff      StaffConfig      `toml:"staff"`
	Guests     GuestConfig      `toml:"guests"`
	Kitchen    KitchenConfig    `toml:"kitchen"`
	Service    ServiceConfig    `toml:"service"`
	Scripting  ScriptingConfig  `toml:"scripting"`
	Logging    LoggingConfig    `toml:"logging"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
}

type SimulationConfig struct {
	TickRate         Duration `toml:"tick_rate"`  // wall-clock period between ticks
	TimeScale        float64  `toml:"time_scale"` // simulated seconds per wall second
	Realtime         bool     `toml:"realtime"`   // false = run ticks back to back
	RunFor           Duration `toml:"run_for"`    // simulated time limit, 0 = forever
	Seed             int64    `toml:"seed"`       // 0 = seed from the clock
	StrictInvariants bool     `toml:"strict_invariants"`
	ReportEvery      Duration `toml:"report_every"`
}

type FloorConfig struct {
	TableXCount  int     `toml:"table_x_count"`
	TableYCount  int     `toml:"table_y_count"`
	TableSpacing float64 `toml:"table_spacing"`
	LayoutFile   string  `toml:"layout_file"` // optional YAML layout, overrides the grid
}

type StaffConfig struct {
	Chefs   int `toml:"chefs"`
	Waiters int `toml:"waiters"`
}

type GuestConfig struct {
	ArrivalInterval   Duration `toml:"arrival_interval"`
	MaxPartySize      int      `toml:"max_party_size"`
	HappinessCooldown float64  `toml:"happiness_cooldown"` // per second
}

type KitchenConfig struct {
	PlatePreparationTime    float64 `toml:"plate_preparation_time"` // seconds per guest
	PlateInitialTemperature float64 `toml:"plate_initial_temperature"`
	PlateCooldownFactor     float64 `toml:"plate_cooldown_factor"`
	RoomTemperature         float64 `toml:"room_temperature"`
}

type ServiceConfig struct {
	WaiterSpeed               float64 `toml:"waiter_speed"` // meters per second
	DiningTime                float64 `toml:"dining_time"`  // seconds
	PlateTemperatureThreshold float64 `toml:"plate_temperature_threshold"`
	ColdPlateHappinessPenalty float64 `toml:"cold_plate_happiness_penalty"`
}

type ScriptingConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Duration lets TOML carry Go duration strings ("16ms", "5s").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load reads a TOML file over the defaults. A missing file is an error; use
// Default for a config-less run.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := defaults()
	cfg.Server.StartTime = time.Now().Unix()
	return cfg
}

// Rules is the flat set of tunables every simulation rule reads. Times are
// in simulated seconds.
type Rules struct {
	ArrivalInterval           float64
	MaxPartySize              int
	HappinessCooldown         float64
	PlatePreparationTime      float64
	PlateInitialTemperature   float64
	PlateCooldownFactor       float64
	RoomTemperature           float64
	WaiterSpeed               float64
	DiningTime                float64
	PlateTemperatureThreshold float64
	ColdPlateHappinessPenalty float64
	StrictInvariants          bool
}

// Rules flattens the rule tunables out of the sectioned config.
func (c *Config) Rules() Rules {
	return Rules{
		ArrivalInterval:           c.Guests.ArrivalInterval.Seconds(),
		MaxPartySize:              c.Guests.MaxPartySize,
		HappinessCooldown:         c.Guests.HappinessCooldown,
		PlatePreparationTime:      c.Kitchen.PlatePreparationTime,
		PlateInitialTemperature:   c.Kitchen.PlateInitialTemperature,
		PlateCooldownFactor:       c.Kitchen.PlateCooldownFactor,
		RoomTemperature:           c.Kitchen.RoomTemperature,
		WaiterSpeed:               c.Service.WaiterSpeed,
		DiningTime:                c.Service.DiningTime,
		PlateTemperatureThreshold: c.Service.PlateTemperatureThreshold,
		ColdPlateHappinessPenalty: c.Service.ColdPlateHappinessPenalty,
		StrictInvariants:          c.Simulation.StrictInvariants,
	}
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}

	positive("simulation.tick_rate", c.Simulation.TickRate.Seconds())
	positive("simulation.time_scale", c.Simulation.TimeScale)
	nonNegative("simulation.run_for", c.Simulation.RunFor.Seconds())
	if c.Floor.LayoutFile == "" {
		positive("floor.table_x_count", float64(c.Floor.TableXCount))
		positive("floor.table_y_count", float64(c.Floor.TableYCount))
	}
	positive("floor.table_spacing", c.Floor.TableSpacing)
	nonNegative("staff.chefs", float64(c.Staff.Chefs))
	nonNegative("staff.waiters", float64(c.Staff.Waiters))
	positive("guests.arrival_interval", c.Guests.ArrivalInterval.Seconds())
	positive("guests.max_party_size", float64(c.Guests.MaxPartySize))
	nonNegative("guests.happiness_cooldown", c.Guests.HappinessCooldown)
	nonNegative("kitchen.plate_preparation_time", c.Kitchen.PlatePreparationTime)
	nonNegative("kitchen.plate_cooldown_factor", c.Kitchen.PlateCooldownFactor)
	positive("service.waiter_speed", c.Service.WaiterSpeed)
	nonNegative("service.dining_time", c.Service.DiningTime)
	nonNegative("service.cold_plate_happiness_penalty", c.Service.ColdPlateHappinessPenalty)
	if c.Kitchen.PlateInitialTemperature < c.Kitchen.RoomTemperature {
		errs = append(errs, fmt.Errorf("kitchen.plate_initial_temperature %v is below room temperature %v",
			c.Kitchen.PlateInitialTemperature, c.Kitchen.RoomTemperature))
	}
	return errors.Join(errs...)
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "kitchensim",
		},
		Simulation: SimulationConfig{
			TickRate:    Duration{time.Second / 60},
			TimeScale:   1.0,
			Realtime:    true,
			ReportEvery: Duration{time.Minute},
		},
		Floor: FloorConfig{
			TableXCount:  6,
			TableYCount:  4,
			TableSpacing: 5,
		},
		Staff: StaffConfig{
			Chefs:   10,
			Waiters: 4,
		},
		Guests: GuestConfig{
			ArrivalInterval:   Duration{5 * time.Second},
			MaxPartySize:      5,
			HappinessCooldown: 0.01,
		},
		Kitchen: KitchenConfig{
			PlatePreparationTime:    8.0,
			PlateInitialTemperature: 80,
			PlateCooldownFactor:     0.01,
			RoomTemperature:         20,
		},
		Service: ServiceConfig{
			WaiterSpeed:               1.0,
			DiningTime:                60.0,
			PlateTemperatureThreshold: 55,
			ColdPlateHappinessPenalty: 0.25,
		},
		Scripting: ScriptingConfig{
			Enabled: true,
			Dir:     "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
