package transcribe

import (
	"fmt"

	"github.com/spf13/cobra"

	"memo-whisper/internal/app"
	"memo-whisper/internal/app/util/files"
	"memo-whisper/internal/config"
)

var (
	outputDir string
	modelName string
	engine    string
	modelDir  string
)

func init() {
	Cmd.Flags().StringVarP(&outputDir, "output", "o", "transcripts",
		"directory receiving the .txt transcripts, created if missing")
	Cmd.Flags().StringVarP(&modelName, "model", "m", "small",
		"whisper model name (tiny, base, small, medium, large or their .en variants)")
	Cmd.Flags().StringVarP(&engine, "engine", "e", "whisper_cpp",
		"transcription engine: whisper_cpp (local) or openai (remote API)")
	Cmd.Flags().StringVar(&modelDir, "model-dir", "",
		"directory caching downloaded model weights (default is the user cache dir)")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe [inputDir]",
	Short: "Transcribe every M4A file in a directory to text",
	Long: `Transcribe every M4A file in a directory to text.

- Iterate over the .m4a files directly inside inputDir
- Decode each one to a temporary 16kHz wav and run it through whisper
- Write one .txt transcript per file into the output directory
- Skip files whose transcript already exists`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		// Explicit flags win over the config file and environment.
		if cmd.Flags().Changed("output") {
			cfg.OutputDir = outputDir
		}
		if cmd.Flags().Changed("model") {
			cfg.Model = modelName
		}
		if cmd.Flags().Changed("engine") {
			cfg.Engine = engine
		}
		if cmd.Flags().Changed("model-dir") {
			cfg.ModelDir = modelDir
		}
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			cfg.Verbose = true
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// A bad path must fail here, before any model weights are
		// fetched or loaded.
		if !files.DirExists(args[0]) {
			return fmt.Errorf("input directory does not exist: %s", args[0])
		}
		if err := files.EnsureDir(cfg.OutputDir); err != nil {
			return err
		}

		conv, cleanup, err := app.InitializeConverter(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		_, err = conv.Run(args[0], cfg.OutputDir)
		return err
	},
}
