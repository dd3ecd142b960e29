package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"memo-whisper/internal/app"
	"memo-whisper/internal/app/converter/export"
	"memo-whisper/internal/app/model"
	"memo-whisper/internal/config"
)

var (
	outputFilePath string
	inputDir       string
	limit          int
)

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "output", "o", "", "path of the .xlsx file to write")
	Cmd.Flags().StringVar(&inputDir, "input-dir", "", "only export history rows for this input directory")
	Cmd.Flags().IntVar(&limit, "limit", 1000, "maximum number of rows to export")

	Cmd.MarkFlagRequired("output")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export transcription history to an Excel workbook",
	Long: `Export transcription history to an Excel workbook.

- Without filters, the most recent rows are exported
- With --input-dir, only rows produced from that directory are exported`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		db, cleanup, err := app.InitializeDAO(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		var transcriptions []model.Transcription
		if inputDir != "" {
			transcriptions, err = db.GetByInputDir(inputDir, limit)
		} else {
			transcriptions, err = db.GetRecent(limit)
		}
		if err != nil {
			return err
		}

		if err := export.ToExcel(transcriptions, outputFilePath); err != nil {
			return err
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
		return nil
	},
}
