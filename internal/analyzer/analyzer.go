// Package analyzer extracts per-file statistics: character counts for all
// supported formats, page counts where the format has pages.
package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/net/html"

	"github.com/dgallion1/docsplit/internal/splitter"
)

// wordCharsPerPage is the estimate used for Word documents, which have no
// fixed pagination until rendered.
const wordCharsPerPage = 2000

// FileInfo describes one analyzed file. PageCount is 0 for formats without
// pages. Err records a per-file failure; analysis of other files continues.
type FileInfo struct {
	Name      string
	CharCount int
	PageCount int
	Err       error
}

// Analyze inspects each path in order. Missing or unreadable files are
// reported in their FileInfo rather than aborting the batch.
func Analyze(paths []string) []FileInfo {
	out := make([]FileInfo, 0, len(paths))
	for _, p := range paths {
		info := FileInfo{Name: filepath.Base(p)}
		if _, err := os.Stat(p); err != nil {
			info.Err = err
			out = append(out, info)
			continue
		}
		chars, pages, err := fileStats(p)
		info.CharCount, info.PageCount, info.Err = chars, pages, err
		out = append(out, info)
	}
	return out
}

func fileStats(path string) (chars, pages int, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return pdfStats(path)
	case ".docx":
		return docxStats(path)
	case ".txt", ".md", ".markdown":
		content, err := splitter.ReadTextFile(path)
		if err != nil {
			return 0, 0, err
		}
		return utf8.RuneCountInString(content), 0, nil
	case ".html", ".htm":
		return htmlStats(path)
	default:
		return 0, 0, fmt.Errorf("%w: %s", splitter.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func pdfStats(path string) (int, int, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	chars := 0
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		chars += utf8.RuneCountInString(text)
	}
	return chars, numPages, nil
}

func docxStats(path string) (int, int, error) {
	paras, err := splitter.ReadDocxParagraphs(path)
	if err != nil {
		return 0, 0, err
	}
	chars := 0
	for _, p := range paras {
		chars += utf8.RuneCountInString(p.Text)
	}
	pages := (chars + wordCharsPerPage - 1) / wordCharsPerPage
	if pages < 1 {
		pages = 1
	}
	return chars, pages, nil
}

func htmlStats(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return 0, 0, fmt.Errorf("parse html: %w", err)
	}
	return utf8.RuneCountInString(htmlText(doc)), 0, nil
}

// htmlText collects the visible text of an HTML tree, skipping script and
// style subtrees.
func htmlText(n *html.Node) string {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		buf.WriteString(htmlText(c))
	}
	return buf.String()
}
