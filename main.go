package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ecfix/ecfix/internal/adapters/inbound/cli"
)

func main() {
	// A missing .env is fine; it only carries optional settings like the
	// proposal driver command.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
