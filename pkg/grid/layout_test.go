package grid

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
)

func sampleLayout(t *testing.T) Layout {
	t.Helper()
	tiles, err := ReadTilesFile("testdata/tiles.json")
	if err != nil {
		t.Fatal(err)
	}
	cfg := masonry.DefaultConfig(403)
	rows, err := masonry.CreateRows(tiles, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return FromRows(rows, cfg, masonry.Invalid(tiles))
}

func TestFromRows(t *testing.T) {
	l := sampleLayout(t)

	if l.Width != 403 || l.Height != 100 {
		t.Errorf("size = %vx%v, want 403x100", l.Width, l.Height)
	}
	if l.Count() != 4 {
		t.Errorf("Count() = %d, want 4", l.Count())
	}
	b := l.Rows[0].Blocks[1]
	if b.ID != "b" || b.Kind != masonry.KindClip || b.X != 101 || b.Width != 100 {
		t.Errorf("block = %+v", b)
	}
	if b.Content["url"] != "https://cdn.example.com/b.mp4" {
		t.Errorf("content not carried: %v", b.Content)
	}
	if len(l.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none", l.Skipped)
	}
}

func TestFromRowsSkipped(t *testing.T) {
	cfg := masonry.DefaultConfig(403)
	bad := []masonry.Tile{{ID: "x"}}
	l := FromRows(nil, cfg, bad)
	if l.Height != 0 || len(l.Rows) != 0 {
		t.Errorf("empty layout = %+v", l)
	}
	if !cmp.Equal(l.Skipped, []string{"x"}) {
		t.Errorf("Skipped = %v, want [x]", l.Skipped)
	}
}

func TestMasonryRowsRoundTrip(t *testing.T) {
	tiles, err := ReadTilesFile("testdata/tiles.json")
	if err != nil {
		t.Fatal(err)
	}
	cfg := masonry.DefaultConfig(403)
	rows, _ := masonry.CreateRows(tiles, cfg)

	got := FromRows(rows, cfg, nil).MasonryRows()
	if diff := cmp.Diff(rows, got); diff != "" {
		t.Errorf("MasonryRows() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(tiles, FromRows(rows, cfg, nil).Tiles()); diff != "" {
		t.Errorf("Tiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l := sampleLayout(t)
	l.ID = "0b6f9a52-4a2e-4d5c-9a53-3c1f1e1d2f10"
	l.Profile = ProfileGIFs
	l.CreatedAt = time.Date(2025, 1, 13, 12, 0, 0, 0, time.UTC)

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error = %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error = %v", err)
	}
	if diff := cmp.Diff(l, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errs.Code
	}{
		{"not json", `{`, errs.ErrCodeInvalidFormat},
		{"zero config", `{"rows":[]}`, errs.ErrCodeInvalidConfig},
		{"bad id", `{"id":"../x","config":{"container_width":100,"min_row_height":1,"max_row_height":2,"max_items_per_row":1},"rows":[]}`, errs.ErrCodeInvalidID},
		{"empty block id", `{"config":{"container_width":100,"min_row_height":1,"max_row_height":2,"max_items_per_row":1},"rows":[{"height":1,"blocks":[{"id":""}]}]}`, errs.ErrCodeInvalidTile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLayout([]byte(tt.data))
			if !errs.Is(err, tt.code) {
				t.Errorf("UnmarshalLayout() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadLayoutFileMissing(t *testing.T) {
	_, err := ReadLayoutFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadLayoutFile() error = %v, want not-exist", err)
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"svg", "PNG", "json", "txt"} {
		if !ValidFormat(f) {
			t.Errorf("ValidFormat(%q) = false", f)
		}
	}
	if ValidFormat("pdf") {
		t.Error("ValidFormat(pdf) = true")
	}
}
