// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package searchfile persists search queries to disk. A search file
// records the platform syntax string together with everything needed to
// reproduce the search later: platform, syntax version, the out-of-string
// general field, and the generic debug rendering of the parsed tree.
package searchfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// Record is the on-disk representation of one saved search.
type Record struct {
	// Platform names the syntax the search string is written in.
	Platform string `yaml:"platform" json:"platform"`
	// Version is the registered syntax generation, "" for latest.
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	// SearchString is the query in platform syntax.
	SearchString string `yaml:"search_string" json:"search_string"`
	// Field is the general field applied outside the search string.
	Field string `yaml:"field,omitempty" json:"field,omitempty"`
	// GenericQuery is the debug rendering of the parsed tree, stored for
	// human inspection only; the search string remains authoritative.
	GenericQuery string `yaml:"generic_query,omitempty" json:"generic_query,omitempty"`
	// Saved is the time the record was written.
	Saved time.Time `yaml:"saved,omitempty" json:"saved,omitempty"`
}

// Validate checks the fields a record cannot do without.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Platform) == "" {
		return fmt.Errorf("search file has no platform")
	}
	if strings.TrimSpace(r.SearchString) == "" {
		return fmt.Errorf("search file has no search string")
	}
	return nil
}

// Write saves the record. The extension selects the format: .json writes
// JSON, everything else YAML.
func Write(path string, r *Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	var data []byte
	var err error
	if isJSON(path) {
		data, err = json.MarshalIndent(r, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	} else {
		data, err = yaml.Marshal(r)
	}
	if err != nil {
		return fmt.Errorf("marshaling search file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a previously saved search file.
func Read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading search file: %w", err)
	}
	var r Record
	if isJSON(path) {
		err = json.Unmarshal(data, &r)
	} else {
		err = yaml.Unmarshal(data, &r)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing search file: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
