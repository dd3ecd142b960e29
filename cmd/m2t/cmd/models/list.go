package models

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"memo-whisper/internal/app/api/whisper_cpp"
	"memo-whisper/internal/app/util/files"
	"memo-whisper/internal/config"
)

// listCmd represents the models list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List known whisper models and their cache status",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		for _, name := range whisper_cpp.ModelNames {
			marker := ""
			if name == whisper_cpp.DefaultModel {
				marker += " (default)"
			}
			if files.Exists(filepath.Join(cfg.ModelDir, whisper_cpp.ModelFileName(name))) {
				marker += " [cached]"
			}
			fmt.Printf("%-10s%s\n", name, marker)
		}
		return nil
	},
}
