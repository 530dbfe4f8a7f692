package chapter

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Lang selects the heading grammar used for boundary detection.
type Lang string

const (
	LangCN Lang = "cn"
	LangEN Lang = "en"
)

// Boundary is a detected chapter heading, located in whatever unit space
// the input used: rune offset for text, line/paragraph/page index otherwise.
type Boundary struct {
	Unit  int
	Title string
}

// Heading patterns are matched against the trimmed start of a line,
// top to bottom; any match makes the line a heading.
var cnPatterns = []*regexp.Regexp{
	// 第X章 / 第X节 / 第X篇 with Chinese or Arabic numerals.
	regexp.MustCompile(`^第[一二三四五六七八九十百千0-9]+[章节篇]`),
	// Chinese numeral list markers: 一、 二.
	regexp.MustCompile(`^[一二三四五六七八九十百千]+[、.]`),
	regexp.MustCompile(`^[0-9]+\.`),
	// Multi-level numbering: 1.1, 2.3.4, optionally with a trailing dot.
	regexp.MustCompile(`^[0-9]+\.[0-9]+(\.[0-9]+)*\.?`),
}

var enPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(chapter|section|part)\s+[0-9]+`),
	regexp.MustCompile(`^[0-9]+\.`),
	regexp.MustCompile(`^[0-9]+\.[0-9]+(\.[0-9]+)*\.?`),
}

// IsHeading reports whether text looks like a chapter heading in the given
// language. Empty or whitespace-only text is never a heading.
func IsHeading(text string, lang Lang) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	patterns := cnPatterns
	if lang == LangEN {
		patterns = enPatterns
	}
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func isHeadingAny(text string) bool {
	return IsHeading(text, LangCN) || IsHeading(text, LangEN)
}

// FindInText scans text line by line and returns heading boundaries in rune
// offset space. The offset is the rune position of the heading's line start,
// so cuts placed at a boundary never land mid-heading.
func FindInText(text string, lang Lang) []Boundary {
	var out []Boundary
	pos := 0
	for _, line := range strings.Split(text, "\n") {
		if IsHeading(line, lang) {
			out = append(out, Boundary{Unit: pos, Title: strings.TrimSpace(line)})
		}
		pos += utf8.RuneCountInString(line) + 1 // +1 for the newline
	}
	return out
}

// FindInLines returns the indices of lines that are headings in either
// language.
func FindInLines(lines []string) []Boundary {
	var out []Boundary
	for i, line := range lines {
		if isHeadingAny(line) {
			out = append(out, Boundary{Unit: i, Title: strings.TrimSpace(line)})
		}
	}
	return out
}

// FindInParagraphs returns the indices of paragraphs whose text is a heading
// in either language.
func FindInParagraphs(paras []string) []Boundary {
	var out []Boundary
	for i, p := range paras {
		if isHeadingAny(p) {
			out = append(out, Boundary{Unit: i, Title: strings.TrimSpace(p)})
		}
	}
	return out
}

// FindInPages scans extracted page texts and records at most one boundary
// per page: the first heading line found on it.
func FindInPages(pageTexts []string) []Boundary {
	var out []Boundary
	for i, text := range pageTexts {
		for _, line := range strings.Split(text, "\n") {
			if isHeadingAny(line) {
				out = append(out, Boundary{Unit: i, Title: strings.TrimSpace(line)})
				break
			}
		}
	}
	return out
}
