package main

import (
	"os"

	"tasksoak/cmd/tasksoak/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
