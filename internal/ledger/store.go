package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Table file names under the data directory.
const (
	studentsFile   = "students.json"
	attendanceFile = "attendance.json"
	reportsFile    = "reports.json"
	settingsFile   = "settings.json"
)

// loadDocument decodes the JSON document at path into v. A missing file is
// not an error: v keeps its defaults and loaded is false. A file that exists
// but does not parse is reported via corrupt so the caller can fall back to
// defaults with a diagnostic instead of failing the whole load.
func loadDocument(path string, v interface{}) (loaded, corrupt bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, true, nil
	}
	return true, false, nil
}

// saveDocument rewrites the document at path in full, pretty-printed.
// A failed write is fatal to the caller: in-memory and on-disk state have
// diverged and there is no defined recovery.
func saveDocument(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
