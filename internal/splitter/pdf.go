package splitter

import (
	"context"
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/dgallion1/docsplit/internal/chapter"
	"github.com/dgallion1/docsplit/internal/outline"
	"github.com/dgallion1/docsplit/internal/splitplan"
)

func (s *Splitter) splitPDF(ctx context.Context, path string, opts Options) ([]string, error) {
	switch opts.Mode {
	case splitplan.ModePages:
		return s.splitPDFPages(ctx, path, opts, false)
	case splitplan.ModeEqual:
		if opts.PreserveChapter {
			// A deliberate rejection, not a silently dropped flag: equal
			// page parts and chapter snapping cannot both hold.
			return nil, fmt.Errorf("equal-parts pdf split cannot preserve chapters; use pages mode instead")
		}
		return s.splitPDFPages(ctx, path, opts, true)
	case splitplan.ModeChars:
		return s.splitPDFChars(ctx, path, opts)
	default:
		return nil, fmt.Errorf("%w: mode %q not applicable to pdf files", splitplan.ErrInvalidGranularity, opts.Mode)
	}
}

// splitPDFPages extracts page ranges into standalone PDFs, each carrying
// the pruned and remapped slice of the source's bookmark tree.
func (s *Splitter) splitPDFPages(ctx context.Context, path string, opts Options, equal bool) ([]string, error) {
	total, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("page count %s: %w", path, err)
	}

	var ranges []splitplan.Range
	if equal {
		ranges, err = splitplan.EqualRanges(total, opts.Value)
	} else {
		var bounds []chapter.Boundary
		if opts.PreserveChapter {
			texts, terr := pdfPageTexts(path)
			if terr != nil {
				// Unstructured split beats no split when text extraction
				// fails on a scanned or malformed file.
				s.log.Warn("page text extraction failed, splitting without chapter detection", "input", path, "error", terr)
			} else {
				bounds = chapter.FindInPages(texts)
			}
		}
		ranges, err = splitplan.UnitRanges(total, opts.Value, bounds, opts.PreserveChapter)
	}
	if err != nil {
		return nil, err
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("document %s has no pages", path)
	}

	forest, err := outline.ReadFile(path, s.conf)
	if err != nil {
		s.log.Warn("bookmark tree unreadable, outputs will carry no outline", "input", path, "error", err)
		forest = nil
	}

	outputs := make([]string, 0, len(ranges))
	for i, r := range ranges {
		if err := ctx.Err(); err != nil {
			return outputs, err
		}
		out := outputName(path, opts.OutputDir, i+1, "")
		if err := s.extractPageRange(path, out, r, forest); err != nil {
			return outputs, err
		}
		outputs = append(outputs, out)
	}
	s.log.Info("split complete", "input", path, "parts", len(outputs), "mode", opts.Mode)
	return outputs, nil
}

// extractPageRange copies pages r.Start..r.End into dst and attaches the
// relevant bookmark branches, with page targets rewritten into dst's page
// space. A source without bookmarks yields a dst without bookmarks.
func (s *Splitter) extractPageRange(src, dst string, r splitplan.Range, forest []*outline.Node) error {
	sel := fmt.Sprintf("%d-%d", r.Start+1, r.End) // pdfcpu selections are 1-based inclusive
	if err := api.TrimFile(src, dst, []string{sel}, s.conf); err != nil {
		return fmt.Errorf("extract pages %s from %s: %w", sel, src, err)
	}
	if len(forest) == 0 {
		return nil
	}

	pruned := outline.PruneAndRemap(forest, r.Start, r.End, func(old int) (int, bool) {
		if old >= r.Start && old < r.End {
			return old - r.Start, true
		}
		return 0, false
	})
	if len(pruned) == 0 {
		return nil
	}
	if err := outline.WriteFile(dst, pruned, s.conf); err != nil {
		// Outline attachment is best-effort; a library quirk must not
		// abort the split.
		s.log.Warn("could not attach outline", "output", dst, "error", err)
	}
	return nil
}

// splitPDFChars splits the extracted text of a PDF by characters and emits
// .txt parts. Re-rendering arbitrary text as PDF pages would fabricate
// content, so the textual representation is the output format here.
func (s *Splitter) splitPDFChars(ctx context.Context, path string, opts Options) ([]string, error) {
	texts, err := pdfPageTexts(path)
	if err != nil {
		return nil, fmt.Errorf("extract text %s: %w", path, err)
	}
	content := strings.Join(texts, "\n")

	var bounds []chapter.Boundary
	if opts.PreserveChapter {
		bounds = chapter.FindInText(content, opts.Lang)
	}
	return s.writeCharParts(ctx, path, content, bounds, opts, ".txt")
}

// pdfPageTexts extracts plain text per page, one entry per page. Pages
// whose text cannot be extracted yield an empty string, keeping indices
// aligned with page numbers.
func pdfPageTexts(path string) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	texts := make([]string, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		texts[i-1] = text
	}
	return texts, nil
}
