// Command groove-render is an offline driver for the groove scheduler: it
// loads a profile JSON envelope and a flat step-grid file, runs
// ApplyGroove once per row with a freshly seeded RNG, and prints the
// resulting event stream plus the profile's integrity hash.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/groove-engine/grooveengine"
	"github.com/cwbudde/groove-engine/groovehash"
	"github.com/cwbudde/groove-engine/preset"
	"github.com/cwbudde/groove-engine/rng"
)

// gridRow is one line of the step-grid file: step,channel,velocity,bar.
type gridRow struct {
	step     int
	channel  string
	velocity float64
	bar      int
}

func main() {
	profilePath := flag.String("profile", "", "Groove profile JSON file path (required)")
	presetName := flag.String("preset", "", "Named built-in preset to use instead of -profile")
	gridPath := flag.String("grid", "", "Step-grid file path (required): step,channel,velocity,bar rows")
	scaleMode := flag.String("scale-mode", "major", "Scale/mode name for harmonic-gravity lookups")
	stepDurationSeconds := flag.Float64("step-duration", 0.25, "Seconds per grid step at the profile's bpm")
	rootNote := flag.Int("root-note", 60, "MIDI root note, reported as a reference pitch in the diagnostic header")
	flag.Parse()

	if *gridPath == "" {
		fmt.Fprintln(os.Stderr, "groove-render: -grid is required")
		os.Exit(1)
	}

	var profile *grooveengine.Profile
	switch {
	case *presetName != "":
		p, ok := preset.Named(*presetName)
		if !ok {
			fmt.Fprintf(os.Stderr, "groove-render: unknown preset %q (known: %s)\n", *presetName, strings.Join(preset.Names(), ", "))
			os.Exit(1)
		}
		profile = p
	case *profilePath != "":
		result, err := preset.Load(*profilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "groove-render: loading profile %q: %v\n", *profilePath, err)
			os.Exit(1)
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "groove-render: warning: %s\n", w)
		}
		profile = result.Profile
	default:
		fmt.Fprintln(os.Stderr, "groove-render: one of -profile or -preset is required")
		os.Exit(1)
	}

	rows, err := readGrid(*gridPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "groove-render: reading grid %q: %v\n", *gridPath, err)
		os.Exit(1)
	}

	hash, err := groovehash.Compute(profile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "groove-render: computing profile hash: %v\n", err)
		os.Exit(1)
	}
	rootFreq := grooveengine.MidiNoteToFreq(*rootNote)
	fmt.Printf("# groove_hash=%s bpm=%.2f feel_bias=%s root=%.2fHz\n", hash, profile.BPM, profile.FeelBias, rootFreq)
	fmt.Println("time_seconds,velocity,should_play")

	r := rng.New(profile.RandomizationSeed)
	for _, row := range rows {
		gridTime := float64(row.step) * (*stepDurationSeconds)
		evt := grooveengine.ApplyGroove(gridTime, row.step, row.channel, profile, row.bar, r, *scaleMode, row.velocity)
		fmt.Printf("%.6f,%.4f,%t\n", evt.TimeSeconds, evt.Velocity, evt.ShouldPlay)
	}
}

func readGrid(path string) ([]gridRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []gridRow
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: expected 4 comma-separated fields, got %d", lineNo, len(fields))
		}
		step, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid step: %w", lineNo, err)
		}
		velocity, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid velocity: %w", lineNo, err)
		}
		bar, err := strconv.Atoi(strings.TrimSpace(fields[3]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid bar: %w", lineNo, err)
		}
		rows = append(rows, gridRow{
			step:     step,
			channel:  strings.TrimSpace(fields[1]),
			velocity: velocity,
			bar:      bar,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
