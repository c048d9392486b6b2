package tables

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/hrconsole/internal/core"
)

// catalogFile is the on-disk layout of a table catalog.
type catalogFile struct {
	Tables []core.TableDefinition `yaml:"tables"`
}

// Parse decodes a YAML catalog. Unknown fields are rejected so that a typo
// in an override file does not silently fall back to a default.
func Parse(data []byte) ([]core.TableDefinition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: parse catalog: %v", core.ErrInvalidDefinition, err)
	}
	for _, def := range file.Tables {
		if err := core.ValidateDefinition(def); err != nil {
			return nil, err
		}
	}
	return file.Tables, nil
}

// Builtin returns the embedded definitions. It panics if the embedded
// catalog is broken, which is a build defect.
func Builtin() []core.TableDefinition {
	defs, err := Parse(builtinCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded table catalog: %v", err))
	}
	return defs
}

// LoadFile reads an override catalog from path.
func LoadFile(path string) ([]core.TableDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	defs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return defs, nil
}

// Merge applies overrides to base. An override replaces the base table with
// the same key as a whole; new keys are appended.
func Merge(base, overrides []core.TableDefinition) []core.TableDefinition {
	out := make([]core.TableDefinition, 0, len(base)+len(overrides))
	index := make(map[string]int, len(base))
	for _, def := range base {
		index[def.Info.Key] = len(out)
		out = append(out, def)
	}
	for _, def := range overrides {
		if i, ok := index[def.Info.Key]; ok {
			out[i] = def
			continue
		}
		index[def.Info.Key] = len(out)
		out = append(out, def)
	}
	return out
}

// Reload rebuilds the registry from the built-in catalog plus the override
// file at path. On error the registry is left untouched.
func Reload(path string) error {
	defs := Builtin()
	if path != "" {
		overrides, err := LoadFile(path)
		if err != nil {
			return err
		}
		defs = Merge(defs, overrides)
	}
	if err := core.Replace(defs); err != nil {
		return fmt.Errorf("reload catalog: %w", err)
	}
	slog.Info("table catalog loaded", "tables", len(defs), "file", path)
	return nil
}
