package splitter

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dgallion1/docsplit/internal/chapter"
	"github.com/dgallion1/docsplit/internal/splitplan"
)

func (s *Splitter) splitText(ctx context.Context, path string, opts Options) ([]string, error) {
	content, err := ReadTextFile(path)
	if err != nil {
		return nil, err
	}

	switch opts.Mode {
	case splitplan.ModeChars, splitplan.ModeEqual:
		var bounds []chapter.Boundary
		if opts.PreserveChapter {
			bounds = chapter.FindInText(content, opts.Lang)
		}
		return s.writeCharParts(ctx, path, content, bounds, opts, "")
	case splitplan.ModeLines:
		var bounds []chapter.Boundary
		lines := strings.SplitAfter(content, "\n")
		if opts.PreserveChapter {
			bounds = chapter.FindInLines(lines)
		}
		return s.writeLineParts(ctx, path, lines, bounds, opts)
	default:
		return nil, fmt.Errorf("%w: mode %q not applicable to text files", splitplan.ErrInvalidGranularity, opts.Mode)
	}
}

// writeCharParts plans rune-space ranges over content and writes one file
// per range. ModeEqual computes a ceil part size and then plans like
// ModeChars, so boundary preservation carries through to equal splits of
// character-based formats.
func (s *Splitter) writeCharParts(ctx context.Context, path, content string, bounds []chapter.Boundary, opts Options, ext string) ([]string, error) {
	runes := []rune(content)
	total := len(runes)

	var ranges []splitplan.Range
	var err error
	switch {
	case opts.Mode == splitplan.ModeEqual && !opts.PreserveChapter:
		ranges, err = splitplan.EqualRanges(total, opts.Value)
	case opts.Mode == splitplan.ModeEqual:
		size := ceilDiv(total, opts.Value)
		ranges, err = splitplan.CharRanges(total, size, bounds, lineBreakOffsets(runes), true)
	default:
		ranges, err = splitplan.CharRanges(total, opts.Value, bounds, lineBreakOffsets(runes), opts.PreserveChapter)
	}
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
		out := outputName(path, opts.OutputDir, i+1, ext)
		if err := os.WriteFile(out, []byte(string(runes[r.Start:r.End])), 0o644); err != nil {
			return outputs, fmt.Errorf("write part %d: %w", i+1, err)
		}
		outputs = append(outputs, out)
	}
	s.log.Info("split complete", "input", path, "parts", len(outputs), "mode", opts.Mode)
	return outputs, nil
}

func (s *Splitter) writeLineParts(ctx context.Context, path string, lines []string, bounds []chapter.Boundary, opts Options) ([]string, error) {
	ranges, err := splitplan.UnitRanges(len(lines), opts.Value, bounds, opts.PreserveChapter)
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
		part := strings.Join(lines[r.Start:r.End], "")
		if err := os.WriteFile(out, []byte(part), 0o644); err != nil {
			return outputs, fmt.Errorf("write part %d: %w", i+1, err)
		}
		outputs = append(outputs, out)
	}
	s.log.Info("split complete", "input", path, "parts", len(outputs), "mode", opts.Mode)
	return outputs, nil
}
