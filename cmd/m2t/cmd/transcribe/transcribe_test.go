package transcribe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTranscribe(t *testing.T, args ...string) error {
	t.Helper()
	Cmd.SilenceUsage = true
	Cmd.SilenceErrors = true
	Cmd.SetArgs(args)
	return Cmd.Execute()
}

func TestTranscribeCmd(t *testing.T) {
	t.Run("missing_input_dir_fails_before_the_engine_loads", func(t *testing.T) {
		tmp := t.TempDir()
		missing := filepath.Join(tmp, "nope")
		outputDir := filepath.Join(tmp, "transcripts")
		modelDir := filepath.Join(tmp, "models")

		// The model name is bogus on purpose: if the engine were built
		// first, its diagnostic would mask the directory one.
		err := runTranscribe(t,
			"--engine", "whisper_cpp",
			"--model", "bogus",
			"--model-dir", modelDir,
			"--output", outputDir,
			missing)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input directory does not exist")
		assert.NotContains(t, err.Error(), "unknown whisper model")
		assert.NoDirExists(t, outputDir)
		assert.NoDirExists(t, modelDir)
	})

	t.Run("engine_errors_surface_once_the_directories_check_out", func(t *testing.T) {
		tmp := t.TempDir()
		inputDir := filepath.Join(tmp, "voice")
		require.NoError(t, os.Mkdir(inputDir, 0o755))
		outputDir := filepath.Join(tmp, "transcripts")

		err := runTranscribe(t,
			"--engine", "whisper_cpp",
			"--model", "bogus",
			"--model-dir", filepath.Join(tmp, "models"),
			"--output", outputDir,
			inputDir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown whisper model")
		assert.DirExists(t, outputDir)
	})
}
