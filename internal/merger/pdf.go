package merger

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/dgallion1/docsplit/internal/outline"
)

// cappedPagesPerSource bounds Tier 4's degraded-content copy.
const cappedPagesPerSource = 10

type mergeStrategy struct {
	tier Tier
	run  func(ctx context.Context) (*Result, error)
}

// mergePDF drives the degradation ladder: each strategy is attempted at
// most once, in order, and the first success returns immediately. A failed
// attempt removes its partial output before the next tier runs, so no
// unverified file is left behind.
func (m *Merger) mergePDF(ctx context.Context, inputs []string, outputPath string, opts Options) (*Result, error) {
	strategies := m.pdfStrategies(inputs, outputPath, opts)
	if !opts.TryFallback {
		strategies = strategies[:1]
	}
	res, failures := m.runTiers(ctx, outputPath, strategies)
	if res != nil {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, &MergeError{
		Attempts:    failures,
		Suspects:    m.suspectFiles(inputs),
		Remediation: "re-export the suspect files from their producing application, or merge without bookmarks",
	}
}

// runTiers is the ladder itself, kept free of strategy construction so the
// ordering is testable in isolation.
func (m *Merger) runTiers(ctx context.Context, outputPath string, strategies []mergeStrategy) (*Result, []TierFailure) {
	var failures []TierFailure
	for _, st := range strategies {
		if ctx.Err() != nil {
			return nil, failures
		}
		res, err := st.run(ctx)
		if err == nil {
			m.log.Info("merge complete", "tier", st.tier.String(), "output", res.OutputPath)
			return res, failures
		}
		m.log.Warn("merge tier failed, escalating", "tier", st.tier.String(), "error", err)
		failures = append(failures, TierFailure{Tier: st.tier, Err: err})
		os.Remove(outputPath)
	}
	return nil, failures
}

func (m *Merger) pdfStrategies(inputs []string, outputPath string, opts Options) []mergeStrategy {
	return []mergeStrategy{
		{TierOutlineUnion, func(ctx context.Context) (*Result, error) {
			return m.mergeWithOutlineUnion(inputs, outputPath, opts)
		}},
		{TierPlainAppend, func(ctx context.Context) (*Result, error) {
			return m.mergePlain(inputs, outputPath)
		}},
		{TierPageCopy, func(ctx context.Context) (*Result, error) {
			return m.mergePageByPage(ctx, inputs, outputPath, 0)
		}},
		{TierPageCopyCapped, func(ctx context.Context) (*Result, error) {
			return m.mergePageByPage(ctx, inputs, outputPath, cappedPagesPerSource)
		}},
		{TierFirstFile, func(ctx context.Context) (*Result, error) {
			return m.copyFirstFile(inputs, outputPath)
		}},
	}
}

// mergeWithOutlineUnion appends all inputs whole and rebuilds the union of
// their bookmark trees, each source's pages offset by the pages before it.
// The result is verified by recursively counting the output's bookmarks
// against the sum over the sources.
func (m *Merger) mergeWithOutlineUnion(inputs []string, outputPath string, opts Options) (*Result, error) {
	if err := api.MergeCreateFile(inputs, outputPath, false, m.mergeConf()); err != nil {
		return nil, fmt.Errorf("append files: %w", err)
	}

	expected := 0
	offset := 0
	var union []pdfcpu.Bookmark
	for _, in := range inputs {
		pages, err := api.PageCountFile(in)
		if err != nil {
			return nil, fmt.Errorf("page count %s: %w", in, err)
		}
		forest, err := outline.ReadFile(in, m.conf)
		if err != nil {
			return nil, fmt.Errorf("source outline %s: %w", in, err)
		}
		expected += outline.Count(forest)
		union = append(union, outline.ToBookmarks(forest, offset)...)
		offset += pages
	}

	if len(union) > 0 {
		if err := api.AddBookmarksFile(outputPath, "", union, true, m.conf); err != nil {
			return nil, fmt.Errorf("import outline: %w", err)
		}
	}

	actual := 0
	if forest, err := outline.ReadFile(outputPath, m.conf); err == nil {
		actual = outline.Count(forest)
	}
	if expected > 0 && actual == 0 {
		return nil, &BookmarkVerificationError{Expected: expected, Actual: actual}
	}
	if expected > 0 && actual != expected {
		divergence := math.Abs(float64(expected-actual)) / float64(expected)
		if opts.MaxDivergence > 0 && divergence > opts.MaxDivergence {
			return nil, &BookmarkVerificationError{Expected: expected, Actual: actual}
		}
		m.log.Warn("bookmark count diverges from sources", "expected", expected, "actual", actual)
	}

	return &Result{
		OutputPath:        outputPath,
		Tier:              TierOutlineUnion,
		ExpectedBookmarks: expected,
		ActualBookmarks:   actual,
	}, nil
}

// mergePlain appends all inputs whole with outline import disabled.
func (m *Merger) mergePlain(inputs []string, outputPath string) (*Result, error) {
	if err := api.MergeCreateFile(inputs, outputPath, false, m.mergeConf()); err != nil {
		return nil, fmt.Errorf("append files: %w", err)
	}
	return &Result{OutputPath: outputPath, Tier: TierPlainAppend}, nil
}

// mergePageByPage copies sources one page at a time into a fresh output,
// skipping individual pages that fail to copy. Page-level failures are
// logged and swallowed; only file-level failures escalate. A positive
// limit bounds how many pages each source contributes.
func (m *Merger) mergePageByPage(ctx context.Context, inputs []string, outputPath string, limit int) (*Result, error) {
	tmpDir, err := os.MkdirTemp("", "docsplit-merge-")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	var pages []string
	for _, in := range inputs {
		total, err := api.PageCountFile(in)
		if err != nil {
			return nil, fmt.Errorf("page count %s: %w", in, err)
		}
		if limit > 0 && total > limit {
			total = limit
		}
		for p := 1; p <= total; p++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			dst := filepath.Join(tmpDir, fmt.Sprintf("page%06d.pdf", len(pages)+1))
			if err := api.TrimFile(in, dst, []string{strconv.Itoa(p)}, m.conf); err != nil {
				m.log.Warn("skipping page that failed to copy", "file", in, "page", p, "error", err)
				continue
			}
			pages = append(pages, dst)
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages could be copied from any source")
	}

	if err := api.MergeCreateFile(pages, outputPath, false, m.mergeConf()); err != nil {
		return nil, fmt.Errorf("assemble pages: %w", err)
	}
	tier := TierPageCopy
	if limit > 0 {
		tier = TierPageCopyCapped
	}
	return &Result{OutputPath: outputPath, Tier: tier}, nil
}

// copyFirstFile is the terminal strategy: the first source verbatim, or a
// minimal empty document if even that cannot be read.
func (m *Merger) copyFirstFile(inputs []string, outputPath string) (*Result, error) {
	if data, err := os.ReadFile(inputs[0]); err == nil {
		if err := os.WriteFile(outputPath, data, 0o644); err == nil {
			m.log.Warn("merge degraded to copying the first source file", "file", inputs[0])
			return &Result{OutputPath: outputPath, Tier: TierFirstFile}, nil
		}
	}
	if err := writeEmptyPDF(outputPath); err != nil {
		return nil, fmt.Errorf("write empty fallback document: %w", err)
	}
	m.log.Warn("merge degraded to an empty document", "output", outputPath)
	return &Result{OutputPath: outputPath, Tier: TierFirstFile}, nil
}

// mergeConf clones the configuration with pdfcpu's own merge bookmarks
// disabled; the outline union (when wanted) is built explicitly.
func (m *Merger) mergeConf() *model.Configuration {
	conf := *m.conf
	conf.CreateBookmarks = false
	return &conf
}

// suspectFiles probes each source for the structural problems that make
// merges fail, for the diagnosis attached to an exhausted merge.
func (m *Merger) suspectFiles(inputs []string) []string {
	var suspects []string
	for _, in := range inputs {
		if err := api.ValidateFile(in, m.conf); err != nil {
			suspects = append(suspects, fmt.Sprintf("%s (invalid structure: %v)", in, err))
			continue
		}
		if _, err := outline.ReadFile(in, m.conf); err != nil {
			suspects = append(suspects, fmt.Sprintf("%s (unreadable outline: %v)", in, err))
		}
	}
	return suspects
}
