package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8091" {
		t.Errorf("expected default port 8091, got %s", cfg.Port)
	}
	if cfg.DefaultMode != "chars" || cfg.CharsValue != 1000 {
		t.Errorf("unexpected split defaults: %s/%d", cfg.DefaultMode, cfg.CharsValue)
	}
	if cfg.Lang != "cn" {
		t.Errorf("expected default lang cn, got %s", cfg.Lang)
	}
	if !cfg.MergeTryFallback {
		t.Errorf("merge fallback should default on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SPLIT_MODE", "pages")
	t.Setenv("PAGES_VALUE", "25")
	t.Setenv("SPLIT_LANG", "en")
	t.Setenv("PRESERVE_CHAPTER", "true")
	t.Setenv("MERGE_TRY_FALLBACK", "false")
	t.Setenv("MERGE_MAX_DIVERGENCE", "0.25")

	cfg := Load()
	if cfg.DefaultMode != "pages" || cfg.PagesValue != 25 {
		t.Errorf("env overrides not applied: %s/%d", cfg.DefaultMode, cfg.PagesValue)
	}
	if cfg.Lang != "en" || !cfg.PreserveChapter {
		t.Errorf("lang/preserve overrides not applied")
	}
	if cfg.MergeTryFallback || cfg.MergeMaxDivergence != 0.25 {
		t.Errorf("merge overrides not applied")
	}
}

func TestLoad_ClampsNonPositiveValues(t *testing.T) {
	t.Setenv("CHARS_VALUE", "-5")
	t.Setenv("EQUAL_VALUE", "0")
	cfg := Load()
	if cfg.CharsValue != 1000 || cfg.EqualValue != 5 {
		t.Errorf("non-positive values should fall back to defaults: %d/%d", cfg.CharsValue, cfg.EqualValue)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cfg := Load()
	cfg.DefaultMode = "sentences"
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected an error for an unknown mode")
	}

	cfg = Load()
	cfg.Lang = "fr"
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected an error for an unsupported lang")
	}

	cfg = Load()
	cfg.MergeMaxDivergence = 1.5
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected an error for divergence outside [0,1]")
	}
}

func TestValueFor(t *testing.T) {
	cfg := Load()
	cases := map[string]int{
		"chars":      cfg.CharsValue,
		"lines":      cfg.LinesValue,
		"pages":      cfg.PagesValue,
		"paragraphs": cfg.ParagraphsValue,
		"equal":      cfg.EqualValue,
	}
	for mode, want := range cases {
		if got := cfg.ValueFor(mode); got != want {
			t.Errorf("ValueFor(%q): expected %d, got %d", mode, want, got)
		}
	}
	if got := cfg.ValueFor("bogus"); got != 0 {
		t.Errorf("unknown mode should yield 0, got %d", got)
	}
}
