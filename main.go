package main

import (
	"os"

	"github.com/error402-ai/intellitest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
