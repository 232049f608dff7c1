// Package config loads CLI and library settings. Values come from the
// built-in defaults, then an optional YAML file, then SDUI_* environment
// variables (SDUI_LOG_LEVEL overrides log.level).
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/Mindburn-Labs/sdui/pkg/migrate"
	"github.com/Mindburn-Labs/sdui/pkg/schema"
	"github.com/Mindburn-Labs/sdui/pkg/store"
	"github.com/Mindburn-Labs/sdui/pkg/token"
	"github.com/Mindburn-Labs/sdui/pkg/tracing"
	"github.com/Mindburn-Labs/sdui/pkg/versioning"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SDUI"

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type MigrationConfig struct {
	TargetVersion int `mapstructure:"target_version" yaml:"target_version"`
}

type VersionsConfig struct {
	// MinSupported overrides the per-kind floor, keyed by kind name.
	MinSupported map[string]int `mapstructure:"min_supported" yaml:"min_supported"`
}

type SchemaConfig struct {
	ID          string `mapstructure:"id" yaml:"id"`
	Title       string `mapstructure:"title" yaml:"title"`
	Description string `mapstructure:"description" yaml:"description"`
}

type DecodeConfig struct {
	InferTypes bool `mapstructure:"infer_types" yaml:"infer_types"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
}

// Config is the full settings tree.
type Config struct {
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Migration MigrationConfig `mapstructure:"migration" yaml:"migration"`
	Versions  VersionsConfig  `mapstructure:"versions" yaml:"versions"`
	Schema    SchemaConfig    `mapstructure:"schema" yaml:"schema"`
	Decode    DecodeConfig    `mapstructure:"decode" yaml:"decode"`
	Store     StoreConfig     `mapstructure:"store" yaml:"store"`
	Tracing   tracing.Config  `mapstructure:"tracing" yaml:"tracing"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Config {
	opts := schema.DefaultOptions()
	return Config{
		Log:       LogConfig{Level: "info", Format: "text"},
		Migration: MigrationConfig{TargetVersion: migrate.LatestVersion()},
		Schema:    SchemaConfig{ID: opts.ID, Title: opts.Title, Description: opts.Description},
		Store:     StoreConfig{Driver: "sqlite", DSN: "sdui.db"},
		Tracing:   tracing.DefaultConfig(),
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("migration.target_version", d.Migration.TargetVersion)
	v.SetDefault("schema.id", d.Schema.ID)
	v.SetDefault("schema.title", d.Schema.Title)
	v.SetDefault("schema.description", d.Schema.Description)
	v.SetDefault("decode.infer_types", d.Decode.InferTypes)
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.dsn", d.Store.DSN)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// Load layers defaults, the YAML file at path (skipped when empty) and the
// environment, then validates the result.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Migration.TargetVersion < 1 {
		return fmt.Errorf("config: migration.target_version must be >= 1, got %d", c.Migration.TargetVersion)
	}
	if _, err := c.Floors(); err != nil {
		return err
	}
	if c.Store.Driver != "" {
		if _, err := store.DialectOf(c.Store.Driver); err != nil {
			return fmt.Errorf("config: store.driver: %w", err)
		}
	}
	switch c.Tracing.Exporter {
	case "", "none", "stdout", "otlp":
	default:
		return fmt.Errorf("config: tracing.exporter must be none, stdout or otlp, got %q", c.Tracing.Exporter)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: log.level: %w", err)
	}
	return l, nil
}

// Logger builds the slog logger described by Log.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Floors returns the min_supported overrides keyed by kind. Kind names
// match case-insensitively because viper lowercases map keys.
func (c Config) Floors() (map[token.Kind]int, error) {
	raw := make(map[string]int, len(c.Versions.MinSupported))
	for name, floor := range c.Versions.MinSupported {
		raw[canonicalKind(name)] = floor
	}
	floors, err := versioning.ParseFloors(raw)
	if err != nil {
		return nil, fmt.Errorf("config: versions.min_supported: %w", err)
	}
	return floors, nil
}

func canonicalKind(name string) string {
	for _, k := range token.Kinds() {
		if strings.EqualFold(string(k), name) {
			return string(k)
		}
	}
	return name
}

// Gate returns the version gate with the configured floors.
func (c Config) Gate() (*versioning.Gate, error) {
	floors, err := c.Floors()
	if err != nil {
		return nil, err
	}
	return versioning.NewGate(floors), nil
}

// SchemaOptions returns the schema header settings.
func (c Config) SchemaOptions() schema.Options {
	return schema.Options{ID: c.Schema.ID, Title: c.Schema.Title, Description: c.Schema.Description}
}

// DecodeOptions returns the token decode options.
func (c Config) DecodeOptions() []token.DecodeOption {
	if c.Decode.InferTypes {
		return []token.DecodeOption{token.WithShapeInference()}
	}
	return nil
}
