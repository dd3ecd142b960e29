package main

import (
	"fmt"
	"os"

	"memo-whisper/cmd/m2t/cmd"
	"memo-whisper/internal/config"
)

func main() {
	// Load the .env overlay before any command reads the environment.
	if err := config.InitializeConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration warning: %v\n", err)
	}

	cmd.Execute()
}
