// Package main is the entry point for the htsmail CLI.
package main

import (
	"os"

	"github.com/zxzuuup/htsmail/cmd/htsmail/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
