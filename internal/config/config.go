package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Auth; empty disables API authentication.
	APIKey string

	// Split defaults, overridable per request.
	DefaultMode     string
	CharsValue      int
	PagesValue      int
	EqualValue      int
	LinesValue      int
	ParagraphsValue int
	PreserveChapter bool
	Lang            string

	// Directories
	InputDir  string
	OutputDir string

	// Merge policy
	MergeTryFallback   bool
	MergeMaxDivergence float64
}

var validModes = map[string]bool{
	"chars":      true,
	"lines":      true,
	"pages":      true,
	"paragraphs": true,
	"equal":      true,
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("DOCSPLIT_API_KEY"),

		DefaultMode:     envOr("SPLIT_MODE", "chars"),
		CharsValue:      envInt("CHARS_VALUE", 1000),
		PagesValue:      envInt("PAGES_VALUE", 10),
		EqualValue:      envInt("EQUAL_VALUE", 5),
		LinesValue:      envInt("LINES_VALUE", 100),
		ParagraphsValue: envInt("PARAGRAPHS_VALUE", 50),
		PreserveChapter: envBool("PRESERVE_CHAPTER", false),
		Lang:            envOr("SPLIT_LANG", "cn"),

		InputDir:  os.Getenv("INPUT_DIR"),
		OutputDir: os.Getenv("OUTPUT_DIR"),

		MergeTryFallback:   envBool("MERGE_TRY_FALLBACK", true),
		MergeMaxDivergence: envFloat("MERGE_MAX_DIVERGENCE", 0),
	}

	if cfg.CharsValue <= 0 {
		cfg.CharsValue = 1000
	}
	if cfg.PagesValue <= 0 {
		cfg.PagesValue = 10
	}
	if cfg.EqualValue <= 0 {
		cfg.EqualValue = 5
	}
	if cfg.LinesValue <= 0 {
		cfg.LinesValue = 100
	}
	if cfg.ParagraphsValue <= 0 {
		cfg.ParagraphsValue = 50
	}

	return cfg
}

func (c Config) Validate() error {
	if !validModes[c.DefaultMode] {
		return fmt.Errorf("SPLIT_MODE must be one of chars|lines|pages|paragraphs|equal, got %q", c.DefaultMode)
	}
	if c.Lang != "cn" && c.Lang != "en" {
		return fmt.Errorf("SPLIT_LANG must be cn or en, got %q", c.Lang)
	}
	if c.MergeMaxDivergence < 0 || c.MergeMaxDivergence > 1 {
		return fmt.Errorf("MERGE_MAX_DIVERGENCE must be in [0,1], got %v", c.MergeMaxDivergence)
	}
	return nil
}

// ValueFor returns the configured default granularity for a split mode.
func (c Config) ValueFor(mode string) int {
	switch mode {
	case "chars":
		return c.CharsValue
	case "lines":
		return c.LinesValue
	case "pages":
		return c.PagesValue
	case "paragraphs":
		return c.ParagraphsValue
	case "equal":
		return c.EqualValue
	default:
		return 0
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
