package cbz2pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	// Registered decoders for page images.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SupportedImageFormats lists the page encodings the assembler can decode.
var SupportedImageFormats = []string{"jpeg", "png", "gif", "bmp", "tiff", "webp"}

// documentAssembler decodes ordered entries into an in-memory document.
type documentAssembler interface {
	Assemble(ctx context.Context, dir string, pages PageSequence) (*Document, error)
}

// imageAssembler builds one page per decoded raster image.
type imageAssembler struct{}

// Assemble decodes every entry in order. It stops at the first entry that is not
// a decodable image and returns no document in that case.
func (a *imageAssembler) Assemble(_ context.Context, dir string, pages PageSequence) (*Document, error) {
	if len(pages) == 0 {
		return nil, ErrEmptyArchive
	}

	doc := &Document{Pages: make([]Page, 0, len(pages))}
	for i, name := range pages {
		page, err := decodePage(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: page %d (%s): %v", ErrUnsupportedImage, i+1, name, err)
		}
		page.Name = name
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

// decodePage reads and fully decodes one image file.
// JPEG data is kept as-is; other formats are re-encoded as 8-bit PNG.
func decodePage(path string) (Page, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Page{}, err
	}
	if info.IsDir() {
		return Page{}, fmt.Errorf("entry is a directory")
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path inside scratch directory
	if err != nil {
		return Page{}, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Page{}, err
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return Page{}, fmt.Errorf("image has no pixels")
	}

	page := Page{
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Data:   data,
	}
	if format == "jpeg" {
		return page, nil
	}

	encoded, err := encodePNG(img)
	if err != nil {
		return Page{}, fmt.Errorf("re-encoding %s: %w", format, err)
	}
	page.Format = "png"
	page.Data = encoded
	return page, nil
}

// encodePNG flattens any image model to 8-bit RGBA and encodes it as PNG.
func encodePNG(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
