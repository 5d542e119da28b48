// Package config loads optional persistent engine options from a TOML
// file, a way to pre-set tuning knobs before the engine starts without
// typing UCI option commands every session.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Options holds the subset of engine tuning knobs worth persisting across
// runs. Zero values mean "use the engine's built-in default".
type Options struct {
	// HashSizeMB sizes the transposition table, mirroring the UCI "Hash"
	// option.
	HashSizeMB int `toml:"hash_size_mb"`
	// Contempt is the score assigned to a repeated position; 0 unless
	// deliberately tuned.
	Contempt int32 `toml:"contempt"`
	// MoveOverheadMS is subtracted from the remaining clock time
	// (wtime/btime) before the per-move budget is computed, to leave margin
	// for UCI I/O and process scheduling latency.
	MoveOverheadMS int `toml:"move_overhead_ms"`
}

// Default returns the engine's built-in defaults, used when no config file
// is present.
func Default() Options {
	return Options{HashSizeMB: 256, Contempt: 0, MoveOverheadMS: 0}
}

// Load parses path as a TOML options file. A missing or empty field keeps
// Default's value for that field.
func Load(path string) (Options, error) {
	opts := Default()
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return Options{}, fmt.Errorf("config: loading %q: %w", path, err)
	}
	return opts, nil
}
