// Package config resolves the effective runtime configuration from
// defaults, an optional YAML file, environment variables and CLI flags,
// in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no explicit
// config path is given.
const DefaultConfigFile = "m2t.yaml"

const (
	EngineWhisperCpp = "whisper_cpp"
	EngineOpenAI     = "openai"
)

type Config struct {
	// Engine selects the transcription backend.
	Engine string `yaml:"engine" validate:"required,oneof=whisper_cpp openai"`
	// Model is the whisper model name; engine-specific validity is checked
	// when the engine is constructed.
	Model string `yaml:"model" validate:"required"`
	// ModelDir caches downloaded model weights.
	ModelDir string `yaml:"model_dir" validate:"required"`
	// OutputDir receives the .txt transcripts.
	OutputDir string `yaml:"output_dir" validate:"required"`
	Verbose   bool   `yaml:"verbose"`

	DB    DBConfig    `yaml:"db"`
	Serve ServeConfig `yaml:"serve"`
}

type DBConfig struct {
	Driver string `yaml:"driver" validate:"required,oneof=sqlite3 postgres"`
	DSN    string `yaml:"dsn" validate:"required"`
}

type ServeConfig struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

var validate = validator.New()

// Default returns the configuration used when nothing else is specified:
// local whisper.cpp with the small model, transcripts next to the working
// directory, history in a per-user sqlite database.
func Default() Config {
	cacheDir := defaultCacheDir()
	return Config{
		Engine:    EngineWhisperCpp,
		Model:     "small",
		ModelDir:  filepath.Join(cacheDir, "models"),
		OutputDir: "transcripts",
		DB: DBConfig{
			Driver: "sqlite3",
			DSN:    filepath.Join(cacheDir, "transcription.db"),
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// Load builds the effective configuration: defaults, overlaid with the YAML
// file at path (or DefaultConfigFile if present and path is empty), overlaid
// with M2T_* environment variables. Flag values are applied by the CLI layer
// on top of the result.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case explicit:
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// Validate checks the assembled configuration before anything is wired.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Engine, "M2T_ENGINE")
	setFromEnv(&c.Model, "M2T_MODEL")
	setFromEnv(&c.ModelDir, "M2T_MODEL_DIR")
	setFromEnv(&c.OutputDir, "M2T_OUTPUT_DIR")
	setFromEnv(&c.DB.Driver, "M2T_DB_DRIVER")
	setFromEnv(&c.DB.DSN, "M2T_DB_DSN")
	setFromEnv(&c.Serve.Addr, "M2T_SERVE_ADDR")
}

func setFromEnv(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func defaultCacheDir() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return ".m2t"
	}
	return filepath.Join(cacheDir, "m2t")
}
