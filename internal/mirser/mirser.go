// Package mirser serializes lowered MIR to disk for a caller that wants
// to persist component G's output between runs (§6.3: "the core has no
// persisted state of its own, but nothing prevents a caller from
// serializing MIRFunction/MIRModule for its own use"). Grounded on the
// teacher's own `internal/driver/dcache.go`: a schema-versioned payload
// struct, `msgpack.NewEncoder`/`NewDecoder` over a file handle, and an
// atomic temp-file-then-rename write so a crash mid-write never leaves a
// half-written module on disk.
package mirser

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"cppmir/internal/mir"
)

// schemaVersion guards against decoding a payload an older or newer
// build of this package wrote in an incompatible shape. Bump it whenever
// Module's field set changes in a way old readers can't tolerate.
const schemaVersion uint16 = 1

// Module is the on-disk unit: one translation unit's lowered functions,
// keyed by the name the caller lowered them under (a file path, in the
// common case).
type Module struct {
	Schema    uint16
	Name      string
	Functions []*mir.Function
}

// NewModule stamps fns with the current schema version.
func NewModule(name string, fns []*mir.Function) Module {
	return Module{Schema: schemaVersion, Name: name, Functions: fns}
}

// Encode marshals m to its msgpack wire form, for a caller that wants
// the bytes directly (over a network connection, say) rather than a
// file on disk.
func Encode(m Module) ([]byte, error) {
	return msgpack.Marshal(&m)
}

// Decode unmarshals a msgpack payload previously produced by Encode or
// WriteFile, rejecting a schema this build does not understand.
func Decode(data []byte) (Module, error) {
	var m Module
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return Module{}, err
	}
	if m.Schema != schemaVersion {
		return Module{}, fmt.Errorf("mirser: unsupported schema %d (this build writes %d)", m.Schema, schemaVersion)
	}
	return m, nil
}

// WriteFile writes m to path atomically: encode into a temp file in the
// same directory, then rename over the destination, so a reader never
// observes a partially written module. Mirrors DiskCache.Put's own
// create-temp/encode/close/rename sequence.
func WriteFile(path string, m Module) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "mir-*.mp.tmp")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err = enc.Encode(&m); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// ReadFile reads and decodes the module WriteFile wrote to path.
func ReadFile(path string) (Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return Module{}, err
	}
	defer f.Close()

	var m Module
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&m); err != nil {
		return Module{}, err
	}
	if m.Schema != schemaVersion {
		return Module{}, fmt.Errorf("mirser: unsupported schema %d (this build writes %d)", m.Schema, schemaVersion)
	}
	return m, nil
}
