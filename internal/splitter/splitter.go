// Package splitter splits PDF, Word, text and Markdown documents into
// parts, dispatching on file extension.
package splitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/dgallion1/docsplit/internal/chapter"
	"github.com/dgallion1/docsplit/internal/splitplan"
)

// ErrUnsupportedFormat is returned for extensions outside the supported set.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// SupportedExtensions lists file extensions this service can split.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".txt":      true,
	".md":       true,
	".markdown": true,
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Options controls one split call.
type Options struct {
	Mode            splitplan.Mode
	Value           int // units per part, or the part count for ModeEqual
	PreserveChapter bool
	Lang            chapter.Lang // grammar for char-space detection; defaults to cn
	OutputDir       string       // defaults to the input file's directory
}

// Splitter performs split operations. Safe for concurrent use on distinct
// input files; nothing is shared across calls.
type Splitter struct {
	log  *slog.Logger
	conf *model.Configuration
}

// New creates a Splitter.
func New(log *slog.Logger) *Splitter {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Splitter{log: log, conf: conf}
}

// Split divides the document at path into parts named <stem>_partN<ext> and
// returns the output paths in range order. Validation errors surface before
// any output is written. Cancelling ctx stops the split between parts;
// parts already written stay on disk.
func (s *Splitter) Split(ctx context.Context, path string, opts Options) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("input file: %w", err)
	}
	if opts.Value <= 0 {
		return nil, fmt.Errorf("%w: %d", splitplan.ErrInvalidGranularity, opts.Value)
	}
	if opts.Lang == "" {
		opts.Lang = chapter.LangCN
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt":
		return s.splitText(ctx, path, opts)
	case ".md", ".markdown":
		return s.splitMarkdown(ctx, path, opts)
	case ".docx":
		return s.splitDocx(ctx, path, opts)
	case ".pdf":
		return s.splitPDF(ctx, path, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}
