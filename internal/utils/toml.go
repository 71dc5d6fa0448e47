package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Section is one table of a TOML document decoded without a schema.
type Section map[string]any

// ReadTOML decodes the file at path into v. Keys v has no field for are
// reported but not fatal.
func ReadTOML(path string, v any) error {
	meta, err := toml.DecodeFile(path, v)
	if err != nil {
		log.Warnf("TOML parsing error in %s: %v", path, err)
		return err
	}
	for _, key := range meta.Undecoded() {
		log.Warnf("Unknown config key %q in %s", key.String(), path)
	}
	return nil
}

// ReadLooseTOML decodes the file at path into its top level tables. It is
// the fallback for documents whose values do not match the expected types.
func ReadLooseTOML(path string) (map[string]Section, error) {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, err
	}
	sections := make(map[string]Section, len(raw))
	for name, v := range raw {
		if table, ok := v.(map[string]any); ok {
			sections[name] = table
		}
	}
	return sections, nil
}

// Int returns key as an int. TOML integers decode as int64.
func (s Section) Int(key string) (int, bool) {
	v, ok := s[key].(int64)
	return int(v), ok
}

// Bool returns key as a bool.
func (s Section) Bool(key string) (bool, bool) {
	v, ok := s[key].(bool)
	return v, ok
}

// String returns key as a string.
func (s Section) String(key string) (string, bool) {
	v, ok := s[key].(string)
	return v, ok
}

// WriteTOML encodes v to path. The document is written to a temp file
// next to path first so readers never see a partial config.
func WriteTOML(v any, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*.toml")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
