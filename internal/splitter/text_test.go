package splitter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docsplit/internal/chapter"
	"github.com/dgallion1/docsplit/internal/splitplan"
)

func testSplitter() *Splitter {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestSplit_TextByChars(t *testing.T) {
	path := writeTempFile(t, "doc.txt", "abcdefghij")
	outputs, err := testSplitter().Split(context.Background(), path, Options{
		Mode: splitplan.ModeChars, Value: 4,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outputs) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(outputs))
	}

	want := []string{"abcd", "efgh", "ij"}
	for i, out := range outputs {
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("read part %d: %v", i+1, err)
		}
		if string(data) != want[i] {
			t.Errorf("part %d: expected %q, got %q", i+1, want[i], data)
		}
	}
	if base := filepath.Base(outputs[0]); base != "doc_part1.txt" {
		t.Errorf("expected doc_part1.txt, got %s", base)
	}
}

func TestSplit_TextByCharsCountsRunes(t *testing.T) {
	// 6 CJK runes split in threes: byte-based slicing would sever them.
	path := writeTempFile(t, "cn.txt", "一二三四五六")
	outputs, err := testSplitter().Split(context.Background(), path, Options{
		Mode: splitplan.ModeChars, Value: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outputs) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(outputs))
	}
	data, _ := os.ReadFile(outputs[0])
	if string(data) != "一二三" {
		t.Errorf("expected first part 一二三, got %q", data)
	}
}

func TestSplit_TextByLines(t *testing.T) {
	path := writeTempFile(t, "doc.txt", "l1\nl2\nl3\nl4\nl5")
	outputs, err := testSplitter().Split(context.Background(), path, Options{
		Mode: splitplan.ModeLines, Value: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outputs) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(outputs))
	}
	data, _ := os.ReadFile(outputs[0])
	if string(data) != "l1\nl2\n" {
		t.Errorf("expected first part %q, got %q", "l1\nl2\n", data)
	}
	data, _ = os.ReadFile(outputs[2])
	if string(data) != "l5" {
		t.Errorf("expected last part %q, got %q", "l5", data)
	}
}

func TestSplit_TextEqualParts(t *testing.T) {
	path := writeTempFile(t, "doc.txt", strings.Repeat("x", 10))
	outputs, err := testSplitter().Split(context.Background(), path, Options{
		Mode: splitplan.ModeEqual, Value: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outputs) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(outputs))
	}
	wantLens := []int{4, 3, 3}
	for i, out := range outputs {
		data, _ := os.ReadFile(out)
		if len(data) != wantLens[i] {
			t.Errorf("part %d: expected %d chars, got %d", i+1, wantLens[i], len(data))
		}
	}
}

func TestSplit_PreserveChapterKeepsHeadingWithSection(t *testing.T) {
	// The second heading sits at rune 100; a 90-rune window with
	// preservation must cut at the line break before it, not inside
	// its section.
	content := "第一章\n" + strings.Repeat("甲", 95) + "\n第二章\n" + strings.Repeat("乙", 50)
	path := writeTempFile(t, "book.txt", content)

	outputs, err := testSplitter().Split(context.Background(), path, Options{
		Mode: splitplan.ModeChars, Value: 90, PreserveChapter: true, Lang: chapter.LangCN,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outputs) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(outputs))
	}

	first, _ := os.ReadFile(outputs[0])
	if strings.Contains(string(first), "第二章") {
		t.Errorf("first part must not contain the second chapter heading")
	}
	second, _ := os.ReadFile(outputs[1])
	if !strings.Contains(string(second), "第二章\n"+strings.Repeat("乙", 50)) {
		t.Errorf("second part must keep the heading attached to its section")
	}
}

func TestSplit_PartsConcatenateToOriginal(t *testing.T) {
	content := "第一章\nalpha beta\n第二章\ngamma delta\n三、结尾\nepsilon"
	path := writeTempFile(t, "doc.txt", content)
	outputs, err := testSplitter().Split(context.Background(), path, Options{
		Mode: splitplan.ModeChars, Value: 10, PreserveChapter: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var joined strings.Builder
	for _, out := range outputs {
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("read part: %v", err)
		}
		joined.Write(data)
	}
	if joined.String() != content {
		t.Errorf("parts do not concatenate back to the original document")
	}
}

func TestSplit_OutputDir(t *testing.T) {
	path := writeTempFile(t, "doc.txt", "abcdef")
	outDir := t.TempDir()
	outputs, err := testSplitter().Split(context.Background(), path, Options{
		Mode: splitplan.ModeChars, Value: 3, OutputDir: outDir,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, out := range outputs {
		if filepath.Dir(out) != outDir {
			t.Errorf("part written to %s, want directory %s", out, outDir)
		}
	}
}

func TestSplit_MissingFile(t *testing.T) {
	_, err := testSplitter().Split(context.Background(), "/nonexistent/doc.txt", Options{
		Mode: splitplan.ModeChars, Value: 10,
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestSplit_UnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "doc.xyz", "content")
	_, err := testSplitter().Split(context.Background(), path, Options{
		Mode: splitplan.ModeChars, Value: 10,
	})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSplit_InvalidValue(t *testing.T) {
	path := writeTempFile(t, "doc.txt", "content")
	_, err := testSplitter().Split(context.Background(), path, Options{
		Mode: splitplan.ModeChars, Value: 0,
	})
	if !errors.Is(err, splitplan.ErrInvalidGranularity) {
		t.Errorf("expected ErrInvalidGranularity, got %v", err)
	}
}

func TestSplit_ModeNotApplicable(t *testing.T) {
	path := writeTempFile(t, "doc.txt", "content")
	_, err := testSplitter().Split(context.Background(), path, Options{
		Mode: splitplan.ModePages, Value: 5,
	})
	if !errors.Is(err, splitplan.ErrInvalidGranularity) {
		t.Errorf("expected ErrInvalidGranularity for pages mode on text, got %v", err)
	}
}

func TestSplit_CancelledContext(t *testing.T) {
	path := writeTempFile(t, "doc.txt", strings.Repeat("x", 100))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testSplitter().Split(ctx, path, Options{
		Mode: splitplan.ModeChars, Value: 10,
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestIsSupportedExtension(t *testing.T) {
	for _, name := range []string{"a.pdf", "b.DOCX", "c.txt", "d.md", "e.markdown"} {
		if !IsSupportedExtension(name) {
			t.Errorf("expected %s to be supported", name)
		}
	}
	for _, name := range []string{"a.doc", "b.html", "noext"} {
		if IsSupportedExtension(name) {
			t.Errorf("expected %s to be unsupported", name)
		}
	}
}

func TestOutputName(t *testing.T) {
	got := outputName("/data/report.pdf", "", 2, "")
	if got != filepath.Join("/data", "report_part2.pdf") {
		t.Errorf("got %q", got)
	}
	got = outputName("/data/report.pdf", "/out", 1, ".txt")
	if got != filepath.Join("/out", "report_part1.txt") {
		t.Errorf("got %q", got)
	}
	got = outputName("notes.txt", "", 3, "")
	if got != "notes_part3.txt" {
		t.Errorf("got %q", got)
	}
}
