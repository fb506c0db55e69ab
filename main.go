package main

import (
	"os"

	"github.com/curialabs/curia/internal/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if present; environment variables win otherwise
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
