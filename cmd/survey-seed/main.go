package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/rcliao/survey-seed/internal/cli"
)

func main() {
	// A missing .env is normal; settings then come from flags and the environment.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
