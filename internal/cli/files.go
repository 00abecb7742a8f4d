package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/masonry/pkg/grid"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

// stdio marks stdin or stdout in place of a file path.
const stdio = "-"

var stdin io.Reader = os.Stdin

// readInput reads a file, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == stdio {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// writeOutput writes data to path, creating parent directories, or to out
// for "-".
func writeOutput(path string, data []byte) error {
	if path == stdio {
		_, err := out.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// isLayoutDocument reports whether data is a serialized layout rather than
// a tiles document or search page.
func isLayoutDocument(data []byte) bool {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return false
	}
	var probe map[string]json.RawMessage
	if json.Unmarshal(data, &probe) != nil {
		return false
	}
	_, rows := probe["rows"]
	_, cfg := probe["config"]
	return rows && cfg
}

// loadLayout returns the layout in path. Tiles documents and search pages
// are laid out with opts first.
func (c *CLI) loadLayout(ctx context.Context, runner *pipeline.Runner, path string, opts pipeline.Options) (*pipeline.Result, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if isLayoutDocument(data) {
		l, err := grid.UnmarshalLayout(data)
		if err != nil {
			return nil, fmt.Errorf("load layout %s: %w", path, err)
		}
		return &pipeline.Result{Layout: l, Skipped: l.Skipped, Stats: pipeline.Stats{
			Tiles:   l.Count(),
			Rows:    len(l.Rows),
			Skipped: len(l.Skipped),
		}}, nil
	}

	tiles, err := grid.ParseTiles(data)
	if err != nil {
		return nil, fmt.Errorf("load tiles %s: %w", path, err)
	}

	opts.Logger = c.Logger
	opts.ConfigFile = c.configFile
	return runner.Layout(ctx, tiles, opts)
}
