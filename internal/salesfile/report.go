package salesfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteReport writes a rendered text report to path, creating the parent
// directory if needed.
func WriteReport(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
