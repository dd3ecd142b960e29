package models

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"memo-whisper/internal/app/api/whisper_cpp"
	"memo-whisper/internal/app/util/logging"
	"memo-whisper/internal/config"
)

// pullCmd represents the models pull command
var pullCmd = &cobra.Command{
	Use:   "pull [model]",
	Short: "Download a whisper model into the local cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			cfg.Verbose = true
		}

		logger, err := logging.NewLogger(cfg.Verbose)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		modelPath, err := whisper_cpp.NewDownloader(logger).EnsureModel(ctx, args[0], cfg.ModelDir)
		if err != nil {
			return err
		}
		fmt.Printf("model %q ready at %s\n", args[0], modelPath)
		return nil
	},
}
