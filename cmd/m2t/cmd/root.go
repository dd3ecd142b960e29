package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"memo-whisper/cmd/m2t/cmd/export"
	"memo-whisper/cmd/m2t/cmd/models"
	"memo-whisper/cmd/m2t/cmd/serve"
	"memo-whisper/cmd/m2t/cmd/transcribe"
	"memo-whisper/cmd/m2t/cmd/version"
)

var (
	verbose bool
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "m2t",
	Short: "Batch-convert M4A voice memos to text with whisper",
	Long: `Batch-convert M4A voice memos to text.

- Point m2t at a directory of .m4a recordings
- Each file is decoded with ffmpeg and transcribed with whisper
- One .txt transcript per recording lands in the output directory
- Every outcome is recorded in a local history database`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(models.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./m2t.yaml)")
}
