package outline

import (
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ReadFile loads a PDF's bookmark tree as an outline forest. A PDF without
// bookmarks yields an empty forest and no error.
func ReadFile(path string, conf *model.Configuration) ([]*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	bms, err := api.Bookmarks(f, conf)
	if err != nil {
		if errors.Is(err, api.ErrNoOutlines) {
			return nil, nil
		}
		return nil, fmt.Errorf("read bookmarks %s: %w", path, err)
	}
	return fromBookmarks(bms), nil
}

// WriteFile replaces path's bookmark tree with the given forest, in place.
func WriteFile(path string, forest []*Node, conf *model.Configuration) error {
	if len(forest) == 0 {
		return nil
	}
	if err := api.AddBookmarksFile(path, "", ToBookmarks(forest, 0), true, conf); err != nil {
		return fmt.Errorf("write bookmarks %s: %w", path, err)
	}
	return nil
}

func fromBookmarks(bms []pdfcpu.Bookmark) []*Node {
	var out []*Node
	for _, bm := range bms {
		out = append(out, &Node{
			Title:    bm.Title,
			Page:     bm.PageFrom - 1, // pdfcpu pages are 1-based
			Children: fromBookmarks(bm.Kids),
		})
	}
	return out
}

// ToBookmarks converts a forest to pdfcpu's bookmark shape, shifting every
// page by offset. The offset is how merged sources keep their bookmarks
// pointing into the right region of the combined document.
func ToBookmarks(forest []*Node, offset int) []pdfcpu.Bookmark {
	var out []pdfcpu.Bookmark
	for _, n := range forest {
		out = append(out, pdfcpu.Bookmark{
			Title:    n.Title,
			PageFrom: n.Page + offset + 1,
			Kids:     ToBookmarks(n.Children, offset),
		})
	}
	return out
}
