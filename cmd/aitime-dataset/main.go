package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/adlerOmonte1/AItime/internal/dataset"
)

func main() {
	var (
		in     = flag.String("in", "", "Source dataset: JSON or MessagePack file (optionally .zst) or Badger directory (required)")
		out    = flag.String("out", "", "Target dataset file; the extension selects the encoding (required)")
		badger = flag.Bool("badger", false, "Write -out as a Badger directory instead of a file")
		force  = flag.Bool("force", false, "Overwrite an existing target")
	)
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -in <dataset> -out <target> [-badger] [-force]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if _, err := os.Stat(*out); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "Error: target already exists: %s\n", *out)
		fmt.Fprintf(os.Stderr, "Use -force to overwrite or choose a different path\n")
		os.Exit(1)
	}

	fmt.Printf("Loading %s...\n", *in)
	ds, err := dataset.Load(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}
	first, last, _ := ds.Range()
	fmt.Printf("  Loaded %d days (%s..%s)\n", ds.Len(), first, last)

	if *badger {
		if *force {
			if err := os.RemoveAll(*out); err != nil {
				fmt.Fprintf(os.Stderr, "Error removing %s: %v\n", *out, err)
				os.Exit(1)
			}
		}
		err = dataset.WriteBadger(*out, ds)
	} else {
		err = dataset.WriteFile(*out, ds)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", *out)
}
