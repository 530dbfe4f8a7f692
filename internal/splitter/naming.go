package splitter

import (
	"fmt"
	"path/filepath"
	"strings"
)

// outputName builds <stem>_part<N><ext> under outputDir, falling back to
// the input file's directory. An empty ext keeps the input's extension;
// a non-empty ext overrides it (PDF char splits emit .txt parts).
func outputName(inputPath, outputDir string, part int, ext string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if ext == "" {
		ext = filepath.Ext(base)
	} else if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	return filepath.Join(dir, fmt.Sprintf("%s_part%d%s", stem, part, ext))
}
