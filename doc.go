// Package cbz2pdf converts comic book archives (.cbz) to PDF documents.
//
// # Quick Start
//
// Create a converter and convert a batch of archives:
//
//	conv, err := cbz2pdf.NewConverter(cbz2pdf.WithOutputDir("/path/to/pdfs"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := conv.ConvertBatch(ctx, []string{"issue-01.cbz", "issue-02.cbz"})
//	for _, o := range result.Outcomes {
//	    if o.Err != nil {
//	        fmt.Println("FAILED", o.Archive.BaseName, o.Err)
//	        continue
//	    }
//	    fmt.Println("Created", o.OutputPath)
//	}
//
// Each archive is converted independently. A failure stops only that archive,
// and result.Outcomes always has one entry per input, in input order.
//
// # Conversion Pipeline
//
// Every archive goes through these stages:
//
//  1. Extraction into a scratch directory unique to the conversion
//  2. Page ordering of the extracted entry names
//  3. Assembly: each entry is decoded as an image and becomes one page
//  4. Writing <base name>.pdf to the output directory, replacing any prior file
//  5. Removal of the scratch directory
//
// The first failing stage ends the conversion with a *ConversionError wrapping
// ErrExtraction, ErrEmptyArchive, ErrUnsupportedImage or ErrWrite. The scratch
// directory of a failed conversion is kept for diagnosis under
// <scratch root>/<base name>-<handle>/.
//
// # Page Order
//
// Entries are sorted by byte comparison by default, which matches zero-padded
// page names (001.jpg, 002.jpg, ...). Archives with unpadded numbers can use
// natural ordering instead:
//
//	conv, err := cbz2pdf.NewConverter(cbz2pdf.WithOrdering(cbz2pdf.OrderNatural))
//
// # Images
//
// JPEG, PNG, GIF, BMP, TIFF and WebP entries are supported. Each page is sized
// to its image (1 pixel = 1 point) and the image is drawn without scaling.
//
// # Parallel Processing
//
// Batches run sequentially by default. Scratch locations never collide, so
// several archives may be converted at once with WithWorkers:
//
//	conv, err := cbz2pdf.NewConverter(cbz2pdf.WithWorkers(cbz2pdf.ResolveWorkers(0)))
package cbz2pdf
