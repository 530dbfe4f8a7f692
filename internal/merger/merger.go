// Package merger combines multiple documents of one format into a single
// output. PDF merging preserves the union of source bookmark trees and
// degrades through weaker strategies when a stronger one fails.
package merger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/dgallion1/docsplit/internal/splitter"
)

// Tier identifies which merge strategy satisfied a call. Higher tiers are
// weaker; they are reachable only by explicit escalation.
type Tier int

const (
	TierNone         Tier = iota // non-PDF merges have no tiers
	TierOutlineUnion             // whole-file append with outline union
	TierPlainAppend              // whole-file append, no outline
	TierPageCopy                 // page-by-page copy, failing pages skipped
	TierPageCopyCapped           // page-by-page copy, first 10 pages per source
	TierFirstFile                // copy the first source, or an empty document
)

func (t Tier) String() string {
	switch t {
	case TierOutlineUnion:
		return "outline-union"
	case TierPlainAppend:
		return "plain-append"
	case TierPageCopy:
		return "page-copy"
	case TierPageCopyCapped:
		return "page-copy-capped"
	case TierFirstFile:
		return "first-file"
	default:
		return "none"
	}
}

// Options controls one merge call.
type Options struct {
	// TryFallback enables the degradation ladder. When false, only the
	// strongest strategy runs and its failure surfaces directly.
	TryFallback bool
	// MaxDivergence, when positive, escalates a Tier-1 merge whose actual
	// bookmark count diverges from the expected count by more than this
	// fraction. Zero keeps divergence as a logged warning.
	MaxDivergence float64
}

// Result describes a completed merge.
type Result struct {
	OutputPath        string
	Tier              Tier
	ExpectedBookmarks int
	ActualBookmarks   int
}

// Merger performs merge operations. Safe for concurrent use on distinct
// files.
type Merger struct {
	log  *slog.Logger
	conf *model.Configuration
}

// New creates a Merger.
func New(log *slog.Logger) *Merger {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Merger{log: log, conf: conf}
}

// Merge combines inputs, which must all share one supported format, into
// outputPath. Cancelling ctx stops the merge between steps.
func (m *Merger) Merge(ctx context.Context, inputs []string, outputPath string, opts Options) (*Result, error) {
	if len(inputs) == 0 {
		return nil, errors.New("no input files to merge")
	}
	ext := strings.ToLower(filepath.Ext(inputs[0]))
	for _, in := range inputs {
		if _, err := os.Stat(in); err != nil {
			return nil, fmt.Errorf("input file: %w", err)
		}
		if strings.ToLower(filepath.Ext(in)) != ext {
			return nil, fmt.Errorf("%w: cannot merge %s with %s", splitter.ErrUnsupportedFormat, filepath.Ext(in), ext)
		}
	}

	switch ext {
	case ".pdf":
		return m.mergePDF(ctx, inputs, outputPath, opts)
	case ".txt", ".md", ".markdown":
		return m.mergeText(inputs, outputPath)
	case ".docx":
		return m.mergeDocx(inputs, outputPath)
	default:
		return nil, fmt.Errorf("%w: %s", splitter.ErrUnsupportedFormat, ext)
	}
}

// textMergeDivider visibly separates concatenated source files.
const textMergeDivider = "\n\n---\n\n"

func (m *Merger) mergeText(inputs []string, outputPath string) (*Result, error) {
	parts := make([]string, 0, len(inputs))
	for _, in := range inputs {
		content, err := splitter.ReadTextFile(in)
		if err != nil {
			return nil, err
		}
		if content != "" {
			parts = append(parts, content)
		}
	}
	if err := os.WriteFile(outputPath, []byte(strings.Join(parts, textMergeDivider)), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", outputPath, err)
	}
	m.log.Info("merge complete", "inputs", len(inputs), "output", outputPath)
	return &Result{OutputPath: outputPath, Tier: TierNone}, nil
}

func (m *Merger) mergeDocx(inputs []string, outputPath string) (*Result, error) {
	var merged []splitter.Paragraph
	for _, in := range inputs {
		paras, err := splitter.ReadDocxParagraphs(in)
		if err != nil {
			return nil, err
		}
		for _, p := range paras {
			if strings.TrimSpace(p.Text) != "" {
				merged = append(merged, p)
			}
		}
	}
	if err := splitter.WriteDocxParagraphs(outputPath, merged); err != nil {
		return nil, err
	}
	m.log.Info("merge complete", "inputs", len(inputs), "output", outputPath)
	return &Result{OutputPath: outputPath, Tier: TierNone}, nil
}
