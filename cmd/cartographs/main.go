package main

import (
	"os"

	"cartographs/cmd/cartographs/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
