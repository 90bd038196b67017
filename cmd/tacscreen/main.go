package main

import (
	"os"

	"github.com/sehyunkim/tacscreen/cmd/tacscreen/commands"
)

// main is the entry point for the tacscreen CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/tacscreen [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
