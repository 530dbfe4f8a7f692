package splitter

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// ReadTextFile reads a text file as UTF-8, falling back to GBK for legacy
// Chinese-encoded files.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode %s: not valid UTF-8 or GBK: %w", path, err)
	}
	return string(decoded), nil
}

// lineBreakOffsets returns the rune offsets of every newline in runes,
// ascending.
func lineBreakOffsets(runes []rune) []int {
	var out []int
	for i, r := range runes {
		if r == '\n' {
			out = append(out, i)
		}
	}
	return out
}

func ceilDiv(total, parts int) int {
	size := (total + parts - 1) / parts
	if size < 1 {
		size = 1
	}
	return size
}
