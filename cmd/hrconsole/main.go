package main

import (
	"log/slog"
	"os"

	"github.com/JonMunkholm/hrconsole/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		slog.Error("hrconsole failed", "error", err)
		os.Exit(1)
	}
}
