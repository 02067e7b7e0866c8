package main

import (
	"os"

	"github.com/abhisek/tourpref/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
