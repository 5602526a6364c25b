package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/duxkit/dux/cmd/dux/commands"
)

func main() {
	// Env files are optional; flags and real env vars win.
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
	commands.Execute()
}
