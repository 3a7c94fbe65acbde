package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/getzep/contactner/pkg/models"
)

// runExtract processes the PDF at path and writes the record to out as JSON.
func runExtract(ctx context.Context, appState *models.AppState, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	record, err := appState.Processor.Process(ctx, filepath.Base(path), f)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}
