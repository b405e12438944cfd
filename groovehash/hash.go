// Package groovehash computes and verifies the integrity hash stamped on a
// groove profile: a SHA-256 digest over a stable, key-sorted JSON
// canonicalization of the profile's content, excluding the hash field
// itself. It lets a preset file detect hand-edits made outside the tool
// that produced it, the same way a build artifact carries a checksum of its
// own inputs.
package groovehash

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// ErrHashMismatch is returned by Verify when a profile's stored hash does
// not match its recomputed content hash.
var ErrHashMismatch = fmt.Errorf("groove profile content hash mismatch")

// ErrHashUnavailable is a typed warning value for callers that want to
// distinguish "no hash was stored to verify against" from an actual
// mismatch. It is never returned as a hard failure by Verify.
var ErrHashUnavailable = fmt.Errorf("groove profile has no stored content hash")

// Compute returns the lowercase hex SHA-256 digest of the stable
// canonicalization of v. v is typically a *grooveengine.Profile passed
// as is: the stored hash lives on the preset envelope, not on the profile,
// so there is no hash field to strip.
func Compute(v interface{}) (string, error) {
	canon, err := StableStringify(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}

// Verify recomputes the hash of v and compares it against want. It returns
// ErrHashMismatch (wrapped with the two digests) when they differ, nil
// otherwise.
func Verify(v interface{}, want string) error {
	if want == "" {
		return nil
	}
	got, err := Compute(v)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: have %s, want %s", ErrHashMismatch, got, want)
	}
	return nil
}

// StableStringify canonicalizes v into a deterministic byte sequence: object
// keys are emitted in sorted order at every nesting level, with no
// insignificant whitespace.
func StableStringify(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("groovehash: marshal: %w", err)
	}

	var generic interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("groovehash: decode for canonicalization: %w", err)
	}

	var buf bytes.Buffer
	if err := encodeCanonical(&buf, generic); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeCanonical(buf *bytes.Buffer, v interface{}) error {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyBytes, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(keyBytes)
			buf.WriteByte(':')
			if err := encodeCanonical(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case []interface{}:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeCanonical(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	default:
		b, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
}
