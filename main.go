package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/rocketscienceinc/tictactoe-arbiter/cmd"
)

// main - loads an optional .env file and hands over to the command tree.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	// a missing .env is fine, the environment and config.yml still apply
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
