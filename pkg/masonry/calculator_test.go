package masonry

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const eps = 1e-9

func square(id string) Tile {
	return Tile{ID: id, Kind: KindImage, IntrinsicWidth: 100, IntrinsicHeight: 100}
}

func ad(id string, w, h float64) Tile {
	return Tile{ID: id, Kind: KindAd, IntrinsicWidth: w, IntrinsicHeight: h}
}

func ids(row Row) []string {
	out := make([]string, len(row.Tiles))
	for i, t := range row.Tiles {
		out[i] = t.ID
	}
	return out
}

func mustCalc(t *testing.T, cfg Config) *Calculator {
	t.Helper()
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestCreateRowsEmpty(t *testing.T) {
	rows, err := CreateRows(nil, DefaultConfig(390))
	if err != nil {
		t.Fatalf("CreateRows() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("CreateRows(nil) = %d rows, want 0", len(rows))
	}
}

func TestCreateRowsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig(390)
	cfg.MaxItemsPerRow = 0
	if _, err := CreateRows([]Tile{square("a")}, cfg); err == nil {
		t.Error("CreateRows() with invalid config should fail")
	}
}

func TestCreateRowsExactFit(t *testing.T) {
	c := mustCalc(t, DefaultConfig(403))
	rows := c.CreateRows([]Tile{square("1"), square("2"), square("3"), square("4")})

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.Len() != 4 {
		t.Fatalf("row has %d tiles, want 4", row.Len())
	}
	if row.Height != 100 {
		t.Errorf("row height = %v, want 100", row.Height)
	}
	for i, tile := range row.Tiles {
		if tile.Width != 100 || tile.Height != 100 {
			t.Errorf("tile %d = %vx%v, want 100x100", i, tile.Width, tile.Height)
		}
		if tile.X != float64(i)*101 {
			t.Errorf("tile %d x = %v, want %v", i, tile.X, float64(i)*101)
		}
	}
	if got := row.Width(1); got != 403 {
		t.Errorf("row width = %v, want 403", got)
	}
}

func TestCreateRowsAdAtHead(t *testing.T) {
	cfg := DefaultConfig(360)
	cfg.MinItemWidth = 80
	cfg.AdMaxResizePercent = 20
	c := mustCalc(t, cfg)

	rows := c.CreateRows([]Tile{
		ad("ad", 320, 100),
		{ID: "a", Kind: KindImage, IntrinsicWidth: 200, IntrinsicHeight: 100},
		{ID: "b", Kind: KindImage, IntrinsicWidth: 200, IntrinsicHeight: 100},
	})
	if len(rows) == 0 {
		t.Fatal("no rows")
	}
	row := rows[0]
	adTile := row.Tiles[0]
	if adTile.ID != "ad" {
		t.Fatalf("first tile = %s, want ad", adTile.ID)
	}
	if adTile.Width < 256 || adTile.Width >= 320 {
		t.Errorf("ad width = %v, want within [256, 320)", adTile.Width)
	}
	if math.Abs(row.Width(cfg.Gap)-360) > eps {
		t.Errorf("row width = %v, want 360", row.Width(cfg.Gap))
	}
	wantHeight := 100 * adTile.Width / 320
	if math.Abs(row.Height-wantHeight) > eps {
		t.Errorf("row height = %v, want ad scaled height %v", row.Height, wantHeight)
	}
	for _, tile := range row.Tiles[1:] {
		if tile.Width < cfg.MinItemWidth {
			t.Errorf("tile %s width = %v, below min item width", tile.ID, tile.Width)
		}
		if tile.Height != row.Height {
			t.Errorf("tile %s height = %v, want row height %v", tile.ID, tile.Height, row.Height)
		}
	}
	if got := Count(rows); got != 3 {
		t.Errorf("placed %d tiles, want 3", got)
	}
}

func TestCreateRowsAdFloorFallback(t *testing.T) {
	cfg := DefaultConfig(300)
	cfg.MinItemWidth = 80
	cfg.AdMaxResizePercent = 20
	c := mustCalc(t, cfg)

	rows := c.CreateRows([]Tile{
		ad("ad", 320, 100),
		{ID: "a", Kind: KindImage, IntrinsicWidth: 40, IntrinsicHeight: 100},
		{ID: "b", Kind: KindImage, IntrinsicWidth: 40, IntrinsicHeight: 100},
	})
	row := rows[0]
	if got := ids(row); !cmp.Equal(got, []string{"ad", "a"}) {
		t.Fatalf("row = %v, want [ad a]", got)
	}
	if row.Tiles[0].Width != 256 {
		t.Errorf("ad width = %v, want floor 256", row.Tiles[0].Width)
	}
	if math.Abs(row.Tiles[1].Width-43) > eps {
		t.Errorf("clamped tile width = %v, want 43", row.Tiles[1].Width)
	}
	if math.Abs(row.Width(cfg.Gap)-300) > eps {
		t.Errorf("row width = %v, want 300", row.Width(cfg.Gap))
	}
	if math.Abs(row.Height-80) > eps {
		t.Errorf("row height = %v, want 80", row.Height)
	}
}

func TestCreateRowsAdDeepInWindow(t *testing.T) {
	c := mustCalc(t, DefaultConfig(403))
	rows := c.CreateRows([]Tile{square("1"), square("2"), ad("ad", 300, 250), square("4")})

	if len(rows) < 2 {
		t.Fatalf("got %d rows, want at least 2", len(rows))
	}
	if got := ids(rows[0]); !cmp.Equal(got, []string{"1", "2"}) {
		t.Errorf("first row = %v, want [1 2]", got)
	}
	if rows[1].Tiles[0].ID != "ad" {
		t.Errorf("second row starts with %s, want ad", rows[1].Tiles[0].ID)
	}
	if rows[1].Height != 250 {
		t.Errorf("ad row height = %v, want ad height 250", rows[1].Height)
	}
}

func TestCreateRowsOversizedTileAlone(t *testing.T) {
	c := mustCalc(t, DefaultConfig(403))
	wide := Tile{ID: "wide", Kind: KindImage, IntrinsicWidth: 2000, IntrinsicHeight: 100}
	rows := c.CreateRows([]Tile{wide, square("a"), square("b"), square("c")})

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if got := ids(rows[0]); !cmp.Equal(got, []string{"wide"}) {
		t.Errorf("first row = %v, want [wide]", got)
	}
	if rows[0].Tiles[0].Width != 403 {
		t.Errorf("wide tile width = %v, want 403", rows[0].Tiles[0].Width)
	}
	if got := ids(rows[1]); !cmp.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("second row = %v, want [a b c]", got)
	}
	for _, tile := range rows[1].Tiles {
		if tile.Width <= 0 {
			t.Errorf("tile %s has non-positive width %v", tile.ID, tile.Width)
		}
	}
}

func TestCreateRowsMixedAspectWindow(t *testing.T) {
	// A wide tile followed by two squares fits best as one row of three.
	c := mustCalc(t, DefaultConfig(403))
	wide := Tile{ID: "w", Kind: KindImage, IntrinsicWidth: 300, IntrinsicHeight: 100}
	rows := c.CreateRows([]Tile{wide, square("a"), square("b")})

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Len() != 3 {
		t.Errorf("row has %d tiles, want 3", rows[0].Len())
	}
	if rows[0].Height != 80 {
		t.Errorf("row height = %v, want 80", rows[0].Height)
	}
	if math.Abs(rows[0].Width(1)-403) > eps {
		t.Errorf("row width = %v, want 403", rows[0].Width(1))
	}
}

func TestCreateRowsSingleTile(t *testing.T) {
	c := mustCalc(t, DefaultConfig(360))
	rows := c.CreateRows([]Tile{{ID: "a", IntrinsicWidth: 200, IntrinsicHeight: 100}})
	if len(rows) != 1 || rows[0].Len() != 1 {
		t.Fatalf("rows = %+v", rows)
	}
	tile := rows[0].Tiles[0]
	if tile.Width != 360 || tile.Height != 180 {
		t.Errorf("tile = %vx%v, want 360x180", tile.Width, tile.Height)
	}
}

func TestCreateRowsSkipsInvalid(t *testing.T) {
	c := mustCalc(t, DefaultConfig(403))
	tiles := []Tile{
		square("1"),
		{ID: "zero", IntrinsicWidth: 0, IntrinsicHeight: 100},
		square("2"),
		{ID: "nan", IntrinsicWidth: math.NaN(), IntrinsicHeight: 100},
		square("3"),
		square("4"),
	}
	rows := c.CreateRows(tiles)
	var got []string
	for _, r := range rows {
		got = append(got, ids(r)...)
	}
	if want := []string{"1", "2", "3", "4"}; !cmp.Equal(got, want) {
		t.Errorf("placed %v, want %v", got, want)
	}
}

func TestCreateRowsAllAds(t *testing.T) {
	c := mustCalc(t, DefaultConfig(403))
	rows := c.CreateRows([]Tile{ad("a", 200, 100), ad("b", 150, 100)})
	if Count(rows) != 2 {
		t.Fatalf("placed %d tiles, want 2", Count(rows))
	}
	for _, r := range rows {
		for _, tile := range r.Tiles {
			if tile.Width != tile.IntrinsicWidth {
				t.Errorf("ad %s width = %v, want untouched %v", tile.ID, tile.Width, tile.IntrinsicWidth)
			}
		}
	}
}

func randomTiles(r *rand.Rand, n int) []Tile {
	tiles := make([]Tile, n)
	for i := range tiles {
		h := 100 + r.Float64()*400
		aspect := 0.6 + r.Float64()*1.2
		tiles[i] = Tile{
			ID:              fmt.Sprintf("t%d", i),
			Kind:            []Kind{KindImage, KindClip}[r.Intn(2)],
			IntrinsicWidth:  math.Round(h * aspect),
			IntrinsicHeight: math.Round(h),
		}
	}
	return tiles
}

func withAds(r *rand.Rand, tiles []Tile) []Tile {
	out := append([]Tile(nil), tiles...)
	for i := 3; i < len(out); i += 7 {
		out[i] = ad(out[i].ID, 240+float64(r.Intn(80)), 60+float64(r.Intn(60)))
	}
	return out
}

func TestCreateRowsProperties(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			r := rand.New(rand.NewSource(seed))
			cfg := DefaultConfig(390)
			c := mustCalc(t, cfg)
			tiles := randomTiles(r, 40)
			rows := c.CreateRows(tiles)

			// Coverage and order.
			var placed []string
			for _, row := range rows {
				placed = append(placed, ids(row)...)
			}
			want := make([]string, len(tiles))
			for i, tile := range tiles {
				want[i] = tile.ID
			}
			if diff := cmp.Diff(want, placed); diff != "" {
				t.Fatalf("placement mismatch (-want +got):\n%s", diff)
			}

			start := 0
			for ri, row := range rows {
				full := start+cfg.MaxItemsPerRow <= len(tiles)

				// Width convergence for multi-tile rows.
				if row.Len() > 1 && math.Abs(row.Width(cfg.Gap)-cfg.ContainerWidth) > 1e-6 {
					t.Errorf("row %d width = %v, want %v", ri, row.Width(cfg.Gap), cfg.ContainerWidth)
				}

				// Aspect preservation within the rounding and reconciliation slack.
				if full {
					for _, tile := range row.Tiles {
						want := tile.Aspect() * tile.Height
						if math.Abs(tile.Width-want) > 4 {
							t.Errorf("row %d tile %s width = %v, aspect wants %v", ri, tile.ID, tile.Width, want)
						}
					}
				}
				if row.Height < float64(cfg.MinRowHeight) || row.Height > float64(cfg.MaxRowHeight) {
					t.Errorf("row %d height %v outside search range", ri, row.Height)
				}
				start += row.Len()
			}
			checkPositions(t, rows, cfg.Gap)
		})
	}
}

func TestCreateRowsAdFloorProperty(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			r := rand.New(rand.NewSource(seed))
			cfg := DefaultConfig(390)
			cfg.MinItemWidth = 80
			c := mustCalc(t, cfg)
			tiles := withAds(r, randomTiles(r, 40))
			rows := c.CreateRows(tiles)

			if Count(rows) != len(tiles) {
				t.Fatalf("placed %d tiles, want %d", Count(rows), len(tiles))
			}
			for ri, row := range rows {
				for _, tile := range row.Tiles {
					if !tile.IsAd() {
						continue
					}
					floor := tile.IntrinsicWidth * (100 - cfg.AdMaxResizePercent) / 100
					if tile.Width < floor-eps {
						t.Errorf("row %d ad %s width %v below floor %v", ri, tile.ID, tile.Width, floor)
					}
					if tile.Width > tile.IntrinsicWidth+eps {
						t.Errorf("row %d ad %s grew to %v", ri, tile.ID, tile.Width)
					}
				}
			}
			checkPositions(t, rows, cfg.Gap)
		})
	}
}

func TestCreateRowsDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	tiles := withAds(r, randomTiles(r, 60))
	c := mustCalc(t, DefaultConfig(414))

	first := c.CreateRows(tiles)
	second := c.CreateRows(tiles)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("CreateRows not deterministic (-first +second):\n%s", diff)
	}
}

func checkPositions(t *testing.T, rows []Row, gap float64) {
	t.Helper()
	prevBottom := -gap
	for ri, row := range rows {
		for i, tile := range row.Tiles {
			if i == 0 && tile.X != 0 {
				t.Errorf("row %d starts at x=%v", ri, tile.X)
			}
			if i > 0 {
				prev := row.Tiles[i-1]
				if tile.X < prev.Right()+gap-1e-6 {
					t.Errorf("row %d tile %d overlaps previous: x=%v prev right=%v", ri, i, tile.X, prev.Right())
				}
			}
			if tile.Y != row.Tiles[0].Y {
				t.Errorf("row %d tile %d y=%v differs from row y=%v", ri, i, tile.Y, row.Tiles[0].Y)
			}
		}
		if y := row.Tiles[0].Y; y < prevBottom+gap-1e-6 {
			t.Errorf("row %d y=%v overlaps previous row ending at %v", ri, y, prevBottom)
		}
		prevBottom = row.Tiles[0].Y + row.Height
	}
}
