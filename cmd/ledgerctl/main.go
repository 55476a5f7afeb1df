package main

import (
	"os"

	"github.com/SscSPs/erp_ledger/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
