package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearOverlayEnv blanks every M2T_* variable so a developer's shell does
// not leak into the test.
func clearOverlayEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"M2T_ENGINE", "M2T_MODEL", "M2T_MODEL_DIR", "M2T_OUTPUT_DIR",
		"M2T_DB_DRIVER", "M2T_DB_DSN", "M2T_SERVE_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, EngineWhisperCpp, cfg.Engine)
	assert.Equal(t, "small", cfg.Model)
	assert.Equal(t, "transcripts", cfg.OutputDir)
	assert.Equal(t, "models", filepath.Base(cfg.ModelDir))
	assert.Equal(t, "sqlite3", cfg.DB.Driver)
	assert.NotEmpty(t, cfg.DB.DSN)
	assert.Equal(t, ":8080", cfg.Serve.Addr)
}

func TestLoad(t *testing.T) {
	t.Run("no_file_and_no_env_yields_defaults", func(t *testing.T) {
		clearOverlayEnv(t)

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("yaml_file_overrides_defaults", func(t *testing.T) {
		clearOverlayEnv(t)
		path := filepath.Join(t.TempDir(), "m2t.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`engine: openai
output_dir: out
db:
  driver: postgres
  dsn: postgres://localhost/transcriptions
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, EngineOpenAI, cfg.Engine)
		assert.Equal(t, "out", cfg.OutputDir)
		assert.Equal(t, "postgres", cfg.DB.Driver)
		assert.Equal(t, "postgres://localhost/transcriptions", cfg.DB.DSN)
		// Untouched fields keep their defaults.
		assert.Equal(t, "small", cfg.Model)
		assert.Equal(t, ":8080", cfg.Serve.Addr)
	})

	t.Run("environment_beats_yaml", func(t *testing.T) {
		clearOverlayEnv(t)
		path := filepath.Join(t.TempDir(), "m2t.yaml")
		require.NoError(t, os.WriteFile(path, []byte("engine: openai\nmodel: tiny\n"), 0o644))
		t.Setenv("M2T_ENGINE", "whisper_cpp")
		t.Setenv("M2T_MODEL", "medium.en")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, EngineWhisperCpp, cfg.Engine)
		assert.Equal(t, "medium.en", cfg.Model)
	})

	t.Run("explicit_missing_file_is_an_error", func(t *testing.T) {
		clearOverlayEnv(t)

		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("malformed_yaml_is_an_error", func(t *testing.T) {
		clearOverlayEnv(t)
		path := filepath.Join(t.TempDir(), "m2t.yaml")
		require.NoError(t, os.WriteFile(path, []byte("engine: [unclosed"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config file")
	})
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name          string
		mutate        func(*Config)
		errorContains string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:          "unknown engine",
			mutate:        func(c *Config) { c.Engine = "gpu_farm" },
			errorContains: "Engine",
		},
		{
			name:          "empty model",
			mutate:        func(c *Config) { c.Model = "" },
			errorContains: "Model",
		},
		{
			name:          "unknown db driver",
			mutate:        func(c *Config) { c.DB.Driver = "oracle" },
			errorContains: "Driver",
		},
		{
			name:          "serve address without port",
			mutate:        func(c *Config) { c.Serve.Addr = "localhost" },
			errorContains: "Addr",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.errorContains == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
			}
		})
	}
}

func TestGetOpenAIKey(t *testing.T) {
	testCases := []struct {
		name          string
		key           string
		errorContains string
	}{
		{
			name: "valid key",
			key:  "sk-1234567890abcdef1234567890abcdef",
		},
		{
			name:          "missing key",
			key:           "",
			errorContains: "OPENAI_API_KEY is required",
		},
		{
			name:          "wrong prefix",
			key:           "pk-1234567890abcdef1234567890abcdef",
			errorContains: "must start with 'sk-'",
		},
		{
			name:          "too short",
			key:           "sk-short",
			errorContains: "too short",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", tc.key)

			apiKey, err := GetOpenAIKey()
			if tc.errorContains == "" {
				require.NoError(t, err)
				assert.Equal(t, tc.key, apiKey)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("M2T_DOTENV_PROBE=from-dotenv\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() {
		assert.NoError(t, os.Chdir(wd))
		os.Unsetenv("M2T_DOTENV_PROBE")
	}()

	require.NoError(t, LoadEnv())
	assert.Equal(t, "from-dotenv", os.Getenv("M2T_DOTENV_PROBE"))
}
