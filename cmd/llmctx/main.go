package main

import (
	"os"

	"github.com/llmctx/llmctx/internal/command"
)

func main() {
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
