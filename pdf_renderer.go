package cbz2pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// documentRenderer serializes an assembled document to bytes.
type documentRenderer interface {
	Render(doc *Document) ([]byte, error)
}

// fpdfRenderer renders one full-bleed page per image, sized to the image at
// 1 pixel = 1 point so no scaling is applied.
type fpdfRenderer struct {
	creator string
}

func newFPDFRenderer() *fpdfRenderer {
	return &fpdfRenderer{creator: "go-cbz2pdf"}
}

// imageTypes maps page formats to fpdf image type names.
var imageTypes = map[string]string{
	"jpeg": "JPG",
	"png":  "PNG",
}

// Render produces a PDF with doc.PageCount() pages in document order.
func (r *fpdfRenderer) Render(doc *Document) ([]byte, error) {
	if doc.PageCount() == 0 {
		return nil, ErrEmptyArchive
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator(r.creator, true)
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}

	for i, page := range doc.Pages {
		imageType, ok := imageTypes[page.Format]
		if !ok {
			return nil, fmt.Errorf("page %d (%s): unsupported page format %q", i+1, page.Name, page.Format)
		}

		w, h := float64(page.Width), float64(page.Height)
		imageName := fmt.Sprintf("page-%05d", i)
		opts := fpdf.ImageOptions{ImageType: imageType}

		pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(page.Data))
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		pdf.ImageOptions(imageName, 0, 0, w, h, false, opts, 0, "")

		if pdf.Err() {
			return nil, fmt.Errorf("page %d (%s): %w", i+1, page.Name, pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
