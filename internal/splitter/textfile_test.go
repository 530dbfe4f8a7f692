package splitter

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

func TestReadTextFile_UTF8(t *testing.T) {
	path := writeTempFile(t, "utf8.txt", "你好, world")
	got, err := ReadTextFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "你好, world" {
		t.Errorf("got %q", got)
	}
}

func TestReadTextFile_GBKFallback(t *testing.T) {
	encoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewEncoder(), []byte("中文编码测试"))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "gbk.txt")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := ReadTextFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "中文编码测试" {
		t.Errorf("expected decoded GBK content, got %q", got)
	}
}

func TestReadTextFile_Missing(t *testing.T) {
	if _, err := ReadTextFile("/nonexistent/file.txt"); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestLineBreakOffsets(t *testing.T) {
	got := lineBreakOffsets([]rune("ab\ncd\n"))
	if len(got) != 2 || got[0] != 2 || got[1] != 5 {
		t.Errorf("expected offsets [2 5], got %v", got)
	}
	if got := lineBreakOffsets([]rune("no breaks")); len(got) != 0 {
		t.Errorf("expected no offsets, got %v", got)
	}
}

func TestCeilDiv(t *testing.T) {
	cases := []struct{ total, parts, want int }{
		{1000, 3, 334},
		{9, 3, 3},
		{1, 5, 1},
		{0, 3, 1},
	}
	for _, c := range cases {
		if got := ceilDiv(c.total, c.parts); got != c.want {
			t.Errorf("ceilDiv(%d, %d): expected %d, got %d", c.total, c.parts, c.want, got)
		}
	}
}
