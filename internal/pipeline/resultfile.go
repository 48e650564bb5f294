// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// WriteResultFile saves a run result to disk so it can be re-examined
// without re-querying APIs. The format follows the file extension: .json
// writes indented JSON, anything else writes YAML.
func WriteResultFile(path string, result *Result) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".json") {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = yaml.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved run result.
func ReadResultFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}

	var result Result
	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(data, &result)
	} else {
		err = yaml.Unmarshal(data, &result)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing result file %s: %w", path, err)
	}
	return &result, nil
}
