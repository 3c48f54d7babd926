package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"playground/internal/catalog"
)

func main() {
	out := flag.String("out", catalog.DefaultManifest, "manifest file to write")
	flag.Parse()

	if _, err := os.Stat(*out); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists. Refusing to overwrite.\n", *out)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", filepath.Dir(*out), err)
		os.Exit(1)
	}
	data := catalog.FallbackManifest()
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Manifest written to %s (version %s)\n", *out, catalog.Fingerprint(data))
}
