// Command groove-hash computes or verifies the integrity hash of a groove
// profile JSON file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/groove-engine/groovehash"
	"github.com/cwbudde/groove-engine/preset"
)

func main() {
	profilePath := flag.String("profile", "", "Groove profile JSON file path (required)")
	verify := flag.Bool("verify", false, "Verify the stored groove_hash instead of printing the computed one")
	flag.Parse()

	if *profilePath == "" {
		fmt.Fprintln(os.Stderr, "groove-hash: -profile is required")
		os.Exit(1)
	}

	result, err := preset.Load(*profilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "groove-hash: %v\n", err)
		os.Exit(1)
	}

	hash, err := groovehash.Compute(result.Profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "groove-hash: computing hash: %v\n", err)
		os.Exit(1)
	}

	if !*verify {
		fmt.Println(hash)
		return
	}

	if len(result.Warnings) > 0 {
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "groove-hash: %s\n", w)
		}
		fmt.Fprintln(os.Stderr, "groove-hash: FAIL")
		os.Exit(1)
	}
	fmt.Println("OK")
}
