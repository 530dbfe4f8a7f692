package splitter

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/docsplit/internal/chapter"
	"github.com/dgallion1/docsplit/internal/splitplan"
)

// Markdown boundary detection uses the goldmark AST rather than the chapter
// grammars: a Markdown document already marks its own structure with
// heading syntax, which also recognizes headings the numbering patterns
// would miss.
func (s *Splitter) splitMarkdown(ctx context.Context, path string, opts Options) ([]string, error) {
	content, err := ReadTextFile(path)
	if err != nil {
		return nil, err
	}

	switch opts.Mode {
	case splitplan.ModeChars, splitplan.ModeEqual:
		var bounds []chapter.Boundary
		if opts.PreserveChapter {
			bounds, _ = markdownBoundaries([]byte(content))
		}
		return s.writeCharParts(ctx, path, content, bounds, opts, "")
	case splitplan.ModeLines:
		var bounds []chapter.Boundary
		if opts.PreserveChapter {
			_, bounds = markdownBoundaries([]byte(content))
		}
		lines := strings.SplitAfter(content, "\n")
		return s.writeLineParts(ctx, path, lines, bounds, opts)
	default:
		return nil, fmt.Errorf("%w: mode %q not applicable to markdown files", splitplan.ErrInvalidGranularity, opts.Mode)
	}
}

// markdownBoundaries locates top-level headings and returns their positions
// in rune-offset space and in line-index space. Offsets point at the start
// of the heading's line so cuts land before the heading marker.
func markdownBoundaries(src []byte) (charBounds, lineBounds []chapter.Boundary) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Lines().Len() == 0 {
			continue
		}
		seg := heading.Lines().At(0)
		lineStart := bytes.LastIndexByte(src[:seg.Start], '\n') + 1
		title := string(heading.Text(src))

		charBounds = append(charBounds, chapter.Boundary{
			Unit:  utf8.RuneCount(src[:lineStart]),
			Title: title,
		})
		lineBounds = append(lineBounds, chapter.Boundary{
			Unit:  bytes.Count(src[:lineStart], []byte("\n")),
			Title: title,
		})
	}
	return charBounds, lineBounds
}
