package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// writeAtomic writes data to a uniquely named temporary file next to path
// and renames it into place, so readers never see a partial file.
func writeAtomic(path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tempPath := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
