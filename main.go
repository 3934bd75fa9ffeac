// ABOUTME: Entry point for the birthday-tracker CLI
// ABOUTME: Terminal client for the Birthday Tracker backend API

package main

import (
	"fmt"
	"os"

	"github.com/krills/birthday-tracker/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
