package main

import (
	"os"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	if err := Execute(NewRootCmd()); err != nil {
		os.Exit(1)
	}
}
