// Command hcdump decodes a HyperCard stack file and prints its global
// script followed by every card's script to standard output.
//
// Usage:
//
//	hcdump --path <file>
package main

import (
	"flag"
	"fmt"
	"os"

	"hypercard.dev/hcdecode"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "hcdump:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr *os.File) error {
	fs := flag.NewFlagSet("hcdump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("path", "", "path to a HyperCard stack file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		fs.Usage()
		return fmt.Errorf("--path is required")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *path, err)
	}

	stack, err := hcdecode.Parse(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", *path, err)
	}

	fmt.Fprintln(stdout, "-- stack script --")
	fmt.Fprintln(stdout, stack.Script)

	for _, card := range stack.Cards {
		fmt.Fprintf(stdout, "-- card %d script --\n", card.ID)
		fmt.Fprintln(stdout, card.Script)
	}

	return nil
}
