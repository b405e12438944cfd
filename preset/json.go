// Package preset loads and saves groove profiles as a versioned JSON
// envelope, validates the schema marker, and verifies the stored integrity
// hash on import. It is the persistence boundary for grooveengine.Profile,
// mirroring the teacher's preset package's role as the JSON load/validate
// layer around a params struct.
package preset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/groove-engine/grooveengine"
	"github.com/cwbudde/groove-engine/groovehash"
)

// SchemaVersion is the only schema marker this package accepts on Load.
const SchemaVersion = "groove-profile-v1"

// ErrProfileInvalid is returned for malformed JSON, an envelope without a
// profile object, or a nil profile passed to Save. Field values are not
// range-checked.
var ErrProfileInvalid = fmt.Errorf("invalid groove profile")

// ErrSchemaMismatch is returned when an envelope's schema field is present
// but does not equal SchemaVersion.
var ErrSchemaMismatch = fmt.Errorf("groove profile schema mismatch")

// Envelope is the on-disk JSON shape: the schema marker and integrity hash
// wrap the profile content. GrooveHash is computed over Profile alone (the
// envelope's own fields are never hashed), so re-saving under a new schema
// marker does not require rehashing.
type Envelope struct {
	Schema            string                `json:"schema"`
	GrooveHash        string                `json:"groove_hash,omitempty"`
	RandomizationSeed int64                 `json:"randomization_seed"`
	Profile           *grooveengine.Profile `json:"profile"`
}

// LoadResult carries the parsed profile plus any non-fatal warnings
// accumulated while loading it (e.g. a hash mismatch), printed to stderr
// by the CLI callers rather than surfaced as an error.
type LoadResult struct {
	Profile  *grooveengine.Profile
	Warnings []string
}

// Load reads and validates a groove profile envelope from path. A missing
// or mismatched schema marker is a hard failure (ErrSchemaMismatch); a
// groove_hash mismatch is a non-blocking warning recorded on the result,
// per spec's "warn, don't reject" import contract.
func Load(path string) (*LoadResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset: read %s: %w", path, err)
	}

	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileInvalid, err)
	}

	if env.Schema == "" {
		return nil, fmt.Errorf("%w: missing schema marker", ErrSchemaMismatch)
	}
	if env.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: have %q, want %q", ErrSchemaMismatch, env.Schema, SchemaVersion)
	}
	if env.Profile == nil {
		return nil, fmt.Errorf("%w: missing profile object", ErrProfileInvalid)
	}

	if env.Profile.RandomizationSeed == 0 {
		env.Profile.RandomizationSeed = env.RandomizationSeed
	}

	result := &LoadResult{Profile: env.Profile}
	if env.GrooveHash != "" {
		if err := groovehash.Verify(env.Profile, env.GrooveHash); err != nil {
			result.Warnings = append(result.Warnings, err.Error())
		}
	}
	return result, nil
}

// Save computes the profile's integrity hash and writes it with the
// envelope wrapper to path as indented JSON.
func Save(path string, profile *grooveengine.Profile) error {
	if profile == nil {
		return fmt.Errorf("%w: nil profile", ErrProfileInvalid)
	}
	hash, err := groovehash.Compute(profile)
	if err != nil {
		return fmt.Errorf("preset: hashing profile: %w", err)
	}

	env := Envelope{
		Schema:            SchemaVersion,
		GrooveHash:        hash,
		RandomizationSeed: profile.RandomizationSeed,
		Profile:           profile,
	}
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("preset: marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("preset: write %s: %w", path, err)
	}
	return nil
}
