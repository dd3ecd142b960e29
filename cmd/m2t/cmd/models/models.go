package models

import (
	"github.com/spf13/cobra"
)

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(pullCmd)
}

// Cmd represents the models command
var Cmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect and download whisper model weights",
	Long: `Inspect and download whisper model weights.

Weights are cached locally; the transcribe command downloads its model on
first use, 'models pull' just does it ahead of time.`,
}
