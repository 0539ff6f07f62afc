package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Antari-yan/sinklog"
)

const logDir = "./demo_logs"

func main() {
	fmt.Println("--- sinklog demo ---")

	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		os.Exit(1)
	}

	registry, err := sinklog.NewBuilder().
		Level("debug").
		TimeZone("local").
		FilePath(filepath.Join(logDir, "demo.log")).
		MaxBytes(512). // Tiny threshold so rotation is visible immediately
		BackupCount(3).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build registry: %v\n", err)
		os.Exit(1)
	}
	defer registry.Close()

	console, _ := registry.Get("root")
	console.Debug("console sink up, colors on")
	console.Info("hello from the demo")
	console.Warning("a warning line")
	console.Error("an error line")
	console.Critical("a critical line")

	file, _ := registry.Get("File")
	for i := 0; i < 32; i++ {
		file.Info("file record", i, "padding to force a few rollovers")
	}

	entries, err := os.ReadDir(logDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list log directory: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("log directory after rotation:")
	for _, e := range entries {
		fmt.Println("  ", e.Name())
	}
}
