package splitter

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/docsplit/internal/chapter"
	"github.com/dgallion1/docsplit/internal/splitplan"
)

// Paragraph is one Word paragraph reduced to what splitting retains: its
// text and its style name. Full run formatting is out of scope.
type Paragraph struct {
	Text  string
	Style string
}

func (s *Splitter) splitDocx(ctx context.Context, path string, opts Options) ([]string, error) {
	paras, err := ReadDocxParagraphs(path)
	if err != nil {
		return nil, err
	}

	switch opts.Mode {
	case splitplan.ModeParagraphs:
		return s.writeParagraphParts(ctx, path, paras, opts)
	case splitplan.ModeChars, splitplan.ModeEqual:
		return s.writeDocxCharParts(ctx, path, paras, opts)
	default:
		return nil, fmt.Errorf("%w: mode %q not applicable to docx files", splitplan.ErrInvalidGranularity, opts.Mode)
	}
}

// writeParagraphParts splits in paragraph unit space, carrying each
// paragraph's style name into the output so headings stay headings.
func (s *Splitter) writeParagraphParts(ctx context.Context, path string, paras []Paragraph, opts Options) ([]string, error) {
	var bounds []chapter.Boundary
	if opts.PreserveChapter {
		texts := make([]string, len(paras))
		for i, p := range paras {
			texts[i] = p.Text
		}
		bounds = chapter.FindInParagraphs(texts)
	}
	ranges, err := splitplan.UnitRanges(len(paras), opts.Value, bounds, opts.PreserveChapter)
	if err != nil {
		return nil, err
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("document %s is empty", path)
	}

	outputs := make([]string, 0, len(ranges))
	for i, r := range ranges {
		if err := ctx.Err(); err != nil {
			return outputs, err
		}
		out := outputName(path, opts.OutputDir, i+1, "")
		if err := WriteDocxParagraphs(out, paras[r.Start:r.End]); err != nil {
			return outputs, fmt.Errorf("write part %d: %w", i+1, err)
		}
		outputs = append(outputs, out)
	}
	s.log.Info("split complete", "input", path, "parts", len(outputs), "mode", opts.Mode)
	return outputs, nil
}

// writeDocxCharParts joins paragraph text with newlines, plans rune-space
// ranges, and writes each range back as a fresh document with one paragraph
// per line. Style names do not survive character splits; a cut can land
// mid-paragraph.
func (s *Splitter) writeDocxCharParts(ctx context.Context, path string, paras []Paragraph, opts Options) ([]string, error) {
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = p.Text
	}
	content := strings.Join(texts, "\n")
	runes := []rune(content)
	total := len(runes)

	var bounds []chapter.Boundary
	if opts.PreserveChapter {
		bounds = chapter.FindInText(content, opts.Lang)
	}

	size := opts.Value
	if opts.Mode == splitplan.ModeEqual {
		size = ceilDiv(total, opts.Value)
	}
	ranges, err := splitplan.CharRanges(total, size, bounds, lineBreakOffsets(runes), opts.PreserveChapter)
	if err != nil {
		return nil, err
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("document %s is empty", path)
	}

	outputs := make([]string, 0, len(ranges))
	for i, r := range ranges {
		if err := ctx.Err(); err != nil {
			return outputs, err
		}
		var part []Paragraph
		for _, line := range strings.Split(string(runes[r.Start:r.End]), "\n") {
			if strings.TrimSpace(line) != "" {
				part = append(part, Paragraph{Text: line})
			}
		}
		out := outputName(path, opts.OutputDir, i+1, "")
		if err := WriteDocxParagraphs(out, part); err != nil {
			return outputs, fmt.Errorf("write part %d: %w", i+1, err)
		}
		outputs = append(outputs, out)
	}
	s.log.Info("split complete", "input", path, "parts", len(outputs), "mode", opts.Mode)
	return outputs, nil
}

// ReadDocxParagraphs extracts the body paragraphs of a .docx file in order.
func ReadDocxParagraphs(path string) ([]Paragraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parse docx %s: %w", path, err)
	}

	var paras []Paragraph
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		paras = append(paras, Paragraph{
			Text:  docxParagraphText(para),
			Style: docxParagraphStyle(para),
		})
	}
	return paras, nil
}

// WriteDocxParagraphs creates a fresh .docx file from paragraphs, restoring
// style names where present.
func WriteDocxParagraphs(path string, paras []Paragraph) error {
	w := docx.New().WithDefaultTheme()
	for _, p := range paras {
		np := w.AddParagraph()
		if p.Style != "" {
			np.Properties = &docx.ParagraphProperties{Style: &docx.Style{Val: p.Style}}
		}
		if p.Text != "" {
			np.AddText(p.Text)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := w.WriteTo(f); err != nil {
		return fmt.Errorf("write docx %s: %w", path, err)
	}
	return nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func docxParagraphStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}
