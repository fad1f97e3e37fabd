package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Simulator holds all configuration for the battle simulator.
type Simulator struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Rules      Rules      `yaml:"rules"`
	Simulation Simulation `yaml:"simulation"`
	Teams      Teams      `yaml:"teams"`
	Catalog    Catalog    `yaml:"catalog"`
	Trace      Trace      `yaml:"trace"`

	// Database is used when Catalog.Source is "postgres".
	Database DatabaseConfig `yaml:"database"`
}

// Rules holds the battle tunables.
type Rules struct {
	MaxCycles            int     `yaml:"max_cycles"`
	DefaultPoisonPercent float64 `yaml:"default_poison_percent"`
	PoisonStackFactor    float64 `yaml:"poison_stack_factor"`
	PoisonMaxDamage      float64 `yaml:"poison_max_damage"`
	DebuffFloorFactor    float64 `yaml:"debuff_floor_factor"` // new-logic debuffs stop at base × factor
	VarianceMin          float64 `yaml:"variance_min"`
	VarianceMax          float64 `yaml:"variance_max"`
	DamageFloorFactor    float64 `yaml:"damage_floor_factor"`
	BloodClashProbBonus  float64 `yaml:"blood_clash_prob_bonus"` // percent added per cycle
}

// Simulation controls the Monte-Carlo run.
type Simulation struct {
	Battles int `yaml:"battles"`
	// Workers is the number of parallel battles. 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
	// Seed is the base seed of the run. 0 picks a random one.
	Seed      uint64 `yaml:"seed"`
	Mode      string `yaml:"mode"`       // standard, blood_clash
	ProcOrder string `yaml:"proc_order"` // android, ios
	// FailFast cancels the whole run on the first failed battle.
	FailFast bool `yaml:"fail_fast"`
}

// Teams holds both compositions.
type Teams struct {
	P1 Team `yaml:"p1"`
	P2 Team `yaml:"p2"`
}

// Team is one side's composition. Cards holds 5 ids (10 for blood clash, reserves last).
type Team struct {
	Formation     string `yaml:"formation"`
	Cards         []int  `yaml:"cards"`
	WarlordSkills []int  `yaml:"warlord_skills"`
}

// Catalog selects where card and skill templates come from.
type Catalog struct {
	Source string `yaml:"source"` // yaml, postgres
	Path   string `yaml:"path"`
}

// Trace controls the zap combat trace.
type Trace struct {
	// FirstBattle traces the first battle of the run.
	FirstBattle bool   `yaml:"first_battle"`
	Development bool   `yaml:"development"`
	Level       string `yaml:"level"`
	// Output is a file path, or stdout/stderr.
	Output string `yaml:"output"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultRules returns the stock battle tunables.
func DefaultRules() Rules {
	return Rules{
		MaxCycles:            5,
		DefaultPoisonPercent: 5,
		PoisonStackFactor:    2,
		PoisonMaxDamage:      99999,
		DebuffFloorFactor:    0.4,
		VarianceMin:          0.9,
		VarianceMax:          1.1,
		DamageFloorFactor:    0.1,
		BloodClashProbBonus:  10,
	}
}

// Validate rejects tunables the battle loop cannot work with.
func (r Rules) Validate() error {
	var errs []error
	if r.MaxCycles <= 0 {
		errs = append(errs, fmt.Errorf("max_cycles must be positive, got %d", r.MaxCycles))
	}
	if r.VarianceMin <= 0 || r.VarianceMax < r.VarianceMin {
		errs = append(errs, fmt.Errorf("variance band [%g,%g) is invalid", r.VarianceMin, r.VarianceMax))
	}
	if r.DamageFloorFactor < 0 {
		errs = append(errs, fmt.Errorf("damage_floor_factor must not be negative, got %g", r.DamageFloorFactor))
	}
	if r.DebuffFloorFactor < 0 || r.DebuffFloorFactor > 1 {
		errs = append(errs, fmt.Errorf("debuff_floor_factor must be in [0,1], got %g", r.DebuffFloorFactor))
	}
	if r.DefaultPoisonPercent <= 0 || r.PoisonStackFactor <= 0 || r.PoisonMaxDamage <= 0 {
		errs = append(errs, errors.New("poison tunables must be positive"))
	}
	if r.BloodClashProbBonus < 0 {
		errs = append(errs, fmt.Errorf("blood_clash_prob_bonus must not be negative, got %g", r.BloodClashProbBonus))
	}
	return errors.Join(errs...)
}

// DefaultSimulator returns Simulator config with sensible defaults.
func DefaultSimulator() Simulator {
	return Simulator{
		LogLevel: "info",
		Rules:    DefaultRules(),
		Simulation: Simulation{
			Battles:   1000,
			Mode:      "standard",
			ProcOrder: "android",
		},
		Catalog: Catalog{
			Source: "yaml",
			Path:   "data/catalog.yaml",
		},
		Trace: Trace{
			FirstBattle: false,
			Development: true,
			Level:       "debug",
			Output:      "stderr",
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "famsim",
			Password: "famsim",
			DBName:   "famsim",
			SSLMode:  "disable",
		},
	}
}

// Validate checks the parts of the config that do not need the catalog.
func (s Simulator) Validate() error {
	var errs []error
	if err := s.Rules.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rules: %w", err))
	}
	if s.Simulation.Battles <= 0 {
		errs = append(errs, fmt.Errorf("simulation.battles must be positive, got %d", s.Simulation.Battles))
	}
	if s.Simulation.Workers < 0 {
		errs = append(errs, fmt.Errorf("simulation.workers must not be negative, got %d", s.Simulation.Workers))
	}
	switch s.Catalog.Source {
	case "yaml", "postgres":
	default:
		errs = append(errs, fmt.Errorf("catalog.source %q: want yaml or postgres", s.Catalog.Source))
	}
	return errors.Join(errs...)
}

// LoadSimulator loads simulator config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulator(path string) (Simulator, error) {
	cfg := DefaultSimulator()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
