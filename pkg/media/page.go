package media

import (
	"bytes"
	"encoding/json"
	"io"

	errs "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
)

// Page is one page of search results.
type Page struct {
	Data        []Item `json:"data"`
	CurrentPage int    `json:"current_page"`
	PerPage     int    `json:"per_page"`
	HasNext     bool   `json:"has_next"`
}

// Tiles flattens the page's items in order.
func (p Page) Tiles() []masonry.Tile {
	return ToTiles(p.Data)
}

// envelope is the API response wrapper around a page.
type envelope struct {
	Result *bool           `json:"result"`
	Data   json.RawMessage `json:"data"`
}

// DecodePage reads a page either bare or wrapped in a {"result", "data"}
// envelope.
func DecodePage(r io.Reader) (Page, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Page{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "read page")
	}
	return ParsePage(b)
}

// ParsePage is DecodePage for an in-memory document.
func ParsePage(b []byte) (Page, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return Page{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode page")
	}
	body := b
	if env.Result != nil && len(env.Data) > 0 && bytes.TrimSpace(env.Data)[0] == '{' {
		if !*env.Result {
			return Page{}, errs.New(errs.ErrCodeInvalidInput, "api returned result=false")
		}
		body = env.Data
	}

	var p Page
	if err := json.Unmarshal(body, &p); err != nil {
		return Page{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode page")
	}
	return p, nil
}
