package main

import (
	"os"

	"github.com/dmitrymomot/mailbridge/cmd/mailbridge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
