package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dgallion1/docsplit/internal/analyzer"
	"github.com/dgallion1/docsplit/internal/chapter"
	"github.com/dgallion1/docsplit/internal/merger"
	"github.com/dgallion1/docsplit/internal/splitplan"
	"github.com/dgallion1/docsplit/internal/splitter"
)

type splitRequest struct {
	InputPath       string `json:"input_path"`
	Mode            string `json:"mode"`
	Value           int    `json:"value"`
	PreserveChapter *bool  `json:"preserve_chapter"`
	Lang            string `json:"lang"`
	OutputDir       string `json:"output_dir"`
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.InputPath == "" {
		jsonError(w, "input_path is required", http.StatusBadRequest)
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = s.cfg.DefaultMode
	}
	value := req.Value
	if value == 0 {
		value = s.cfg.ValueFor(mode)
	}
	preserve := s.cfg.PreserveChapter
	if req.PreserveChapter != nil {
		preserve = *req.PreserveChapter
	}
	lang := req.Lang
	if lang == "" {
		lang = s.cfg.Lang
	}
	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = s.cfg.OutputDir
	}

	outputs, err := s.splitter.Split(r.Context(), s.resolveInput(req.InputPath), splitter.Options{
		Mode:            splitplan.Mode(mode),
		Value:           value,
		PreserveChapter: preserve,
		Lang:            chapter.Lang(lang),
		OutputDir:       outputDir,
	})
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"outputs": outputs})
}

type mergeRequest struct {
	InputPaths    []string `json:"input_paths"`
	OutputPath    string   `json:"output_path"`
	TryFallback   *bool    `json:"try_fallback"`
	MaxDivergence *float64 `json:"max_divergence"`
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.InputPaths) == 0 || req.OutputPath == "" {
		jsonError(w, "input_paths and output_path are required", http.StatusBadRequest)
		return
	}

	opts := merger.Options{
		TryFallback:   s.cfg.MergeTryFallback,
		MaxDivergence: s.cfg.MergeMaxDivergence,
	}
	if req.TryFallback != nil {
		opts.TryFallback = *req.TryFallback
	}
	if req.MaxDivergence != nil {
		opts.MaxDivergence = *req.MaxDivergence
	}

	inputs := make([]string, len(req.InputPaths))
	for i, p := range req.InputPaths {
		inputs[i] = s.resolveInput(p)
	}

	res, err := s.merger.Merge(r.Context(), inputs, req.OutputPath, opts)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"output_path":        res.OutputPath,
		"tier":               res.Tier.String(),
		"expected_bookmarks": res.ExpectedBookmarks,
		"actual_bookmarks":   res.ActualBookmarks,
	})
}

type analyzeRequest struct {
	Paths []string `json:"paths"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Paths) == 0 {
		jsonError(w, "paths is required", http.StatusBadRequest)
		return
	}

	paths := make([]string, len(req.Paths))
	for i, p := range req.Paths {
		paths[i] = s.resolveInput(p)
	}

	var files []map[string]any
	for _, info := range analyzer.Analyze(paths) {
		entry := map[string]any{
			"name":       info.Name,
			"char_count": info.CharCount,
		}
		if info.PageCount > 0 {
			entry["page_count"] = info.PageCount
		}
		if info.Err != nil {
			entry["error"] = info.Err.Error()
		}
		files = append(files, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"files": files})
}

// resolveInput joins relative paths onto the configured input directory.
func (s *Server) resolveInput(path string) string {
	if s.cfg.InputDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.cfg.InputDir, path)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, splitter.ErrUnsupportedFormat),
		errors.Is(err, splitplan.ErrInvalidGranularity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
