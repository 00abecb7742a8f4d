package media

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/matzehuels/masonry/pkg/masonry"
)

// Type is the media type reported by the API.
type Type string

const (
	TypeGIF     Type = "gif"
	TypeClip    Type = "clip"
	TypeSticker Type = "sticker"
	TypeAd      Type = "ad"
)

// Kind maps the media type onto a layout kind.
func (t Type) Kind() masonry.Kind {
	switch t {
	case TypeClip:
		return masonry.KindClip
	case TypeAd:
		return masonry.KindAd
	default:
		return masonry.KindImage
	}
}

// ID is an item identifier. The API sends numbers for gifs and stickers and
// may omit it for clips, so both JSON numbers and strings are accepted.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// FileMeta describes one encoded asset.
type FileMeta struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int    `json:"size,omitempty"`
}

// FileFormats holds one size variant in each encoding.
type FileFormats struct {
	MP4  *FileMeta `json:"mp4,omitempty"`
	GIF  FileMeta  `json:"gif"`
	WebP FileMeta  `json:"webp"`
}

// SizeVariants holds the renditions of a gif or sticker.
type SizeVariants struct {
	HD FileFormats `json:"hd"`
	MD FileFormats `json:"md"`
	SM FileFormats `json:"sm"`
	XS FileFormats `json:"xs"`
}

// ClipFile holds the asset URLs of a clip.
type ClipFile struct {
	MP4  string `json:"mp4"`
	GIF  string `json:"gif"`
	WebP string `json:"webp"`
}

// ClipMeta is the size of one clip encoding.
type ClipMeta struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ClipFileMeta holds the sizes of a clip's encodings.
type ClipFileMeta struct {
	MP4  ClipMeta `json:"mp4"`
	GIF  ClipMeta `json:"gif"`
	WebP ClipMeta `json:"webp"`
}

// AdContent is an inline ad creative with its declared size.
type AdContent struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Content string `json:"content"`
}

// Item is one search result. Exactly one of Variants, Clip or Ad is set,
// depending on Type.
type Item struct {
	ID          ID
	URL         string
	Title       string
	Slug        string
	BlurPreview string
	Type        Type

	Variants *SizeVariants
	Clip     *ClipFile
	ClipMeta *ClipFileMeta
	Ad       *AdContent
}

type itemJSON struct {
	ID          ID              `json:"id,omitempty"`
	URL         string          `json:"url,omitempty"`
	Title       string          `json:"title,omitempty"`
	Slug        string          `json:"slug,omitempty"`
	BlurPreview string          `json:"blur_preview,omitempty"`
	Type        Type            `json:"type"`
	File        json.RawMessage `json:"file,omitempty"`
	FileMeta    *ClipFileMeta   `json:"file_meta,omitempty"`
	Content     *AdContent      `json:"content,omitempty"`
}

// UnmarshalJSON decodes the type-dependent file layout.
func (it *Item) UnmarshalJSON(b []byte) error {
	var raw itemJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*it = Item{
		ID:          raw.ID,
		URL:         raw.URL,
		Title:       raw.Title,
		Slug:        raw.Slug,
		BlurPreview: raw.BlurPreview,
		Type:        raw.Type,
		ClipMeta:    raw.FileMeta,
		Ad:          raw.Content,
	}

	if len(raw.File) == 0 || bytes.Equal(raw.File, []byte("null")) {
		return nil
	}
	switch raw.Type {
	case TypeClip:
		it.Clip = new(ClipFile)
		if err := json.Unmarshal(raw.File, it.Clip); err != nil {
			return fmt.Errorf("clip %s file: %w", it.Slug, err)
		}
	case TypeAd:
	default:
		it.Variants = new(SizeVariants)
		if err := json.Unmarshal(raw.File, it.Variants); err != nil {
			return fmt.Errorf("%s %s file: %w", raw.Type, it.Slug, err)
		}
	}
	return nil
}

// MarshalJSON encodes the item in the API layout.
func (it Item) MarshalJSON() ([]byte, error) {
	raw := itemJSON{
		ID:          it.ID,
		URL:         it.URL,
		Title:       it.Title,
		Slug:        it.Slug,
		BlurPreview: it.BlurPreview,
		Type:        it.Type,
		FileMeta:    it.ClipMeta,
		Content:     it.Ad,
	}
	var file any
	switch {
	case it.Clip != nil:
		file = it.Clip
	case it.Variants != nil:
		file = it.Variants
	}
	if file != nil {
		b, err := json.Marshal(file)
		if err != nil {
			return nil, err
		}
		raw.File = b
	}
	return json.Marshal(raw)
}

// TileID returns the item ID, falling back to the slug for clips without one.
func (it Item) TileID() string {
	if it.ID != "" {
		return string(it.ID)
	}
	return it.Slug
}

// TileKind implements Source.
func (it Item) TileKind() masonry.Kind { return it.Type.Kind() }

// Dimensions implements Source.
func (it Item) Dimensions() (float64, float64) {
	switch it.Type {
	case TypeClip:
		if it.ClipMeta == nil {
			return 0, 0
		}
		return float64(it.ClipMeta.GIF.Width), float64(it.ClipMeta.GIF.Height)
	case TypeAd:
		if it.Ad == nil {
			return 0, 0
		}
		return float64(it.Ad.Width), float64(it.Ad.Height)
	default:
		if it.Variants == nil {
			return 0, 0
		}
		gif := it.Variants.XS.GIF
		return float64(gif.Width), float64(gif.Height)
	}
}

// TileContent implements Source.
func (it Item) TileContent() masonry.Content {
	c := masonry.Content{"type": string(it.Type)}
	set := func(k, v string) {
		if v != "" {
			c[k] = v
		}
	}
	set("title", it.Title)
	set("slug", it.Slug)
	set("blur_preview", it.BlurPreview)

	switch {
	case it.Clip != nil:
		set("url", it.Clip.GIF)
		set("mp4", it.Clip.MP4)
		set("webp", it.Clip.WebP)
		set("page_url", it.URL)
	case it.Variants != nil:
		xs := it.Variants.XS
		set("url", xs.GIF.URL)
		set("webp", xs.WebP.URL)
		if xs.MP4 != nil {
			set("mp4", xs.MP4.URL)
		}
		set("hd", it.Variants.HD.GIF.URL)
	case it.Ad != nil:
		set("html", it.Ad.Content)
		set("ad_size", strconv.Itoa(it.Ad.Width)+"x"+strconv.Itoa(it.Ad.Height))
	}
	return c
}

var _ Source = Item{}
