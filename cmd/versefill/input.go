package main

import (
	"io"
	"os"
)

// readInput reads the named file, or stdin when name is "-".
func readInput(deps *Dependencies, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(deps.Stdin)
	}
	return os.ReadFile(name)
}

// sourceName is the name an input is recorded under.
func sourceName(name string) string {
	if name == "-" {
		return "stdin"
	}
	return name
}
