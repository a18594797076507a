package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingDSN indicates the DSN environment variable named in the config
// is unset or empty. The warehouse cannot be opened without it.
var ErrMissingDSN = errors.New("warehouse DSN not set")

// Default values applied when fields are absent from the config file.
const (
	DefaultDSNEnv             = "ACIDOSCAN_DB_DSN"
	DefaultSchema             = "mimiciv_hosp"
	DefaultLactateAbove       = 4.0
	DefaultPHAtOrBelow        = 7.35
	DefaultMinEpisodeDuration = 120 * time.Minute
	DefaultDiagnosisCode      = "E872"
	DefaultHTTPPort           = 8080
	DefaultRunInterval        = 6 * time.Hour
	DefaultRetention          = 24 * time.Hour
)

// DefaultMedications is the curated vasoactive medication vocabulary used
// when the config file does not override it.
var DefaultMedications = []string{
	"dopamine", "milrinone", "vasopressin", "nitroglycerin", "nitroprusside",
	"epinephrine", "norepinephrine", "levophed", "dobutamine", "hydralazine",
	"labetalol", "methylene blue", "terlipressin", "angiotensin ii",
}

// Config is the top-level configuration for the screening pipeline.
type Config struct {
	Warehouse WarehouseConfig `yaml:"warehouse"`
	Screening ScreeningConfig `yaml:"screening"`
	Serve     ServeConfig     `yaml:"serve"`
}

// WarehouseConfig locates the analytical store.
type WarehouseConfig struct {
	// DSNEnv is the name of the environment variable that holds the
	// Postgres connection string. The DSN itself never lives in the file.
	DSNEnv string `yaml:"dsn_env"`

	// Schema is the namespace holding the clinical tables.
	Schema string `yaml:"schema"`
}

// DSN returns the connection string resolved from the environment, or
// ErrMissingDSN naming the variable when it is unset or empty.
func (w WarehouseConfig) DSN() (string, error) {
	dsn := os.Getenv(w.DSNEnv)
	if dsn == "" {
		return "", fmt.Errorf("%w: environment variable %s is empty", ErrMissingDSN, w.DSNEnv)
	}
	return dsn, nil
}

// ItemFilterConfig selects reference lab items by substring match.
type ItemFilterConfig struct {
	// Label is matched case-insensitively against the item label.
	Label string `yaml:"label"`

	// Category, when non-empty, additionally matches the item category.
	Category string `yaml:"category"`
}

// ScreeningConfig holds the clinical parameters of a run.
type ScreeningConfig struct {
	// LactateAbove marks a lactate value abnormal when value > LactateAbove.
	LactateAbove float64 `yaml:"lactate_above"`

	// PHAtOrBelow marks a pH value abnormal when value <= PHAtOrBelow.
	PHAtOrBelow float64 `yaml:"ph_at_or_below"`

	// MinEpisodeDuration is the minimum abnormal-run length for an episode.
	MinEpisodeDuration time.Duration `yaml:"min_episode_duration"`

	// Medications is the vasoactive medication vocabulary; names are
	// matched case-insensitively against the administration record.
	Medications []string `yaml:"medications"`

	// DiagnosisCode is the ICD code prefix used in the cohort cross-check.
	DiagnosisCode string `yaml:"diagnosis_code"`

	// LactateItems and PHItems select the reference items per kind.
	LactateItems ItemFilterConfig `yaml:"lactate_items"`
	PHItems      ItemFilterConfig `yaml:"ph_items"`
}

// ServeConfig holds the serve-mode settings. Ignored in one-shot runs.
type ServeConfig struct {
	// HTTPPort is the port the report API and /metrics listen on.
	HTTPPort int `yaml:"http_port"`

	// Interval is how often the screening run repeats.
	Interval time.Duration `yaml:"interval"`

	// Retention is how long completed run reports are kept in memory.
	Retention time.Duration `yaml:"retention"`

	// Auth configures API access: apikey | none.
	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig controls access to the serve-mode HTTP API.
type AuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode"`

	// KeyEnv is the name of the environment variable holding the expected
	// API key. Used when Mode == "apikey".
	KeyEnv string `yaml:"key_env"`

	// Header is the HTTP header the key is read from. Defaults to "x-api-key".
	Header string `yaml:"header"`
}

// Key returns the expected API key resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return "x-api-key"
}

// Load reads and parses the YAML config file at path. Missing fields are
// filled with defaults before validation. An empty path skips the file and
// returns the built-in defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Warehouse: WarehouseConfig{
			DSNEnv: DefaultDSNEnv,
			Schema: DefaultSchema,
		},
		Screening: ScreeningConfig{
			LactateAbove:       DefaultLactateAbove,
			PHAtOrBelow:        DefaultPHAtOrBelow,
			MinEpisodeDuration: DefaultMinEpisodeDuration,
			Medications:        append([]string(nil), DefaultMedications...),
			DiagnosisCode:      DefaultDiagnosisCode,
			LactateItems:       ItemFilterConfig{Label: "lactate"},
			PHItems:            ItemFilterConfig{Label: "ph", Category: "blood"},
		},
		Serve: ServeConfig{
			HTTPPort:  DefaultHTTPPort,
			Interval:  DefaultRunInterval,
			Retention: DefaultRetention,
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	if cfg.Warehouse.DSNEnv == "" {
		return fmt.Errorf("warehouse.dsn_env is required")
	}
	if cfg.Screening.LactateAbove <= 0 {
		return fmt.Errorf("screening.lactate_above must be positive")
	}
	if cfg.Screening.PHAtOrBelow <= 0 || cfg.Screening.PHAtOrBelow >= 14 {
		return fmt.Errorf("screening.ph_at_or_below %v is out of range (0, 14)", cfg.Screening.PHAtOrBelow)
	}
	if cfg.Screening.MinEpisodeDuration <= 0 {
		return fmt.Errorf("screening.min_episode_duration must be positive")
	}
	if len(cfg.Screening.Medications) == 0 {
		return fmt.Errorf("screening.medications must not be empty")
	}
	if cfg.Screening.DiagnosisCode == "" {
		return fmt.Errorf("screening.diagnosis_code is required")
	}
	if cfg.Screening.LactateItems.Label == "" {
		return fmt.Errorf("screening.lactate_items.label is required")
	}
	if cfg.Screening.PHItems.Label == "" {
		return fmt.Errorf("screening.ph_items.label is required")
	}
	if cfg.Serve.HTTPPort <= 0 || cfg.Serve.HTTPPort > 65535 {
		return fmt.Errorf("serve.http_port %d is out of range [1, 65535]", cfg.Serve.HTTPPort)
	}
	if cfg.Serve.Interval <= 0 {
		return fmt.Errorf("serve.interval must be positive")
	}
	if cfg.Serve.Retention <= 0 {
		return fmt.Errorf("serve.retention must be positive")
	}
	switch cfg.Serve.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("serve.auth.mode %q unknown: want apikey|none", cfg.Serve.Auth.Mode)
	}
	return nil
}
