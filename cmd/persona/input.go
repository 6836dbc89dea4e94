package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"reading-persona/internal/domain"
	"reading-persona/internal/service"
)

// readPreferences lee un PreferenceInput en JSON desde un archivo o stdin ("-").
func readPreferences(path string, stdin io.Reader) (domain.PreferenceInput, error) {
	var (
		content []byte
		err     error
	)
	if path == "-" {
		content, err = io.ReadAll(stdin)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.PreferenceInput{}, fmt.Errorf("read preferences %s: %w", path, err)
	}

	var p domain.PreferenceInput
	if err := json.Unmarshal(content, &p); err != nil {
		return domain.PreferenceInput{}, fmt.Errorf("unmarshal preferences: %w", err)
	}
	return service.NormalizePreferences(p), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
