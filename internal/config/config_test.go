package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.ListingURL != "http://rest.kegg.jp/list/pathway/hsa" {
		t.Errorf("unexpected default listing URL: %s", cfg.ListingURL)
	}
	if cfg.Template != "http://rest.kegg.jp/get/{id}/kgml" {
		t.Errorf("unexpected default template: %s", cfg.Template)
	}
	if cfg.StripPrefix != 8 {
		t.Errorf("expected default strip prefix 8, got %d", cfg.StripPrefix)
	}
	if cfg.Extension != ".xml" {
		t.Errorf("expected default extension .xml, got %s", cfg.Extension)
	}
	if cfg.Workers != 1 {
		t.Errorf("expected default workers 1, got %d", cfg.Workers)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Timeout)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	yamlContent := `
listing_url: http://rest.kegg.jp/list/compound
template: http://rest.kegg.jp/get/{id}
strip_prefix: 4
output: compounds
extension: .txt
workers: 8
timeout: 10s
progress: true
manifest: true
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.ListingURL != "http://rest.kegg.jp/list/compound" {
		t.Errorf("unexpected listing URL: %s", cfg.ListingURL)
	}
	if cfg.StripPrefix != 4 {
		t.Errorf("expected strip prefix 4, got %d", cfg.StripPrefix)
	}
	if cfg.Output != "compounds" {
		t.Errorf("expected output 'compounds', got %s", cfg.Output)
	}
	if cfg.Extension != ".txt" {
		t.Errorf("expected extension .txt, got %s", cfg.Extension)
	}
	if cfg.Workers != 8 {
		t.Errorf("expected workers 8, got %d", cfg.Workers)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
	if !cfg.Progress {
		t.Error("expected progress true")
	}
	if !cfg.Manifest {
		t.Error("expected manifest true")
	}
}

func TestLoadFromYAMLPartial(t *testing.T) {
	// Unset fields keep their defaults
	yamlContent := "workers: 4\n"

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Workers != 4 {
		t.Errorf("expected workers 4, got %d", cfg.Workers)
	}
	if cfg.ListingURL != Default().ListingURL {
		t.Errorf("expected default listing URL, got %s", cfg.ListingURL)
	}
	if cfg.StripPrefix != 8 {
		t.Errorf("expected default strip prefix, got %d", cfg.StripPrefix)
	}
}

func TestLoadFromYAMLZeroStripPrefix(t *testing.T) {
	// An explicit zero must not fall back to the default
	yamlContent := "strip_prefix: 0\n"

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.StripPrefix != 0 {
		t.Errorf("expected strip prefix 0, got %d", cfg.StripPrefix)
	}
}

func TestLoadFromYAMLInvalidTimeout(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("timeout: nonsense\n"), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	if _, err := LoadFromFile(configPath); err == nil {
		t.Error("expected error for invalid timeout")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("KEGGX_LISTING_URL", "http://example.com/list")
	t.Setenv("KEGGX_WORKERS", "6")
	t.Setenv("KEGGX_TIMEOUT", "5s")
	t.Setenv("KEGGX_PROGRESS", "1")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.ListingURL != "http://example.com/list" {
		t.Errorf("unexpected listing URL: %s", cfg.ListingURL)
	}
	if cfg.Workers != 6 {
		t.Errorf("expected workers 6, got %d", cfg.Workers)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Timeout)
	}
	if !cfg.Progress {
		t.Error("expected progress true")
	}
}

func TestLoadFromEnvInvalidWorkers(t *testing.T) {
	t.Setenv("KEGGX_WORKERS", "lots")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err == nil {
		t.Error("expected error for invalid KEGGX_WORKERS")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"missing listing URL", func(c *Config) { c.ListingURL = "" }, true},
		{"missing template", func(c *Config) { c.Template = "" }, true},
		{"template without placeholder", func(c *Config) { c.Template = "http://example.com/get" }, true},
		{"negative strip prefix", func(c *Config) { c.StripPrefix = -1 }, true},
		{"missing output", func(c *Config) { c.Output = "" }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	merged := base.Merge(Config{
		Output:  "out",
		Workers: 4,
		Filter:  "hsa",
	})

	if merged.Output != "out" {
		t.Errorf("expected output 'out', got %s", merged.Output)
	}
	if merged.Workers != 4 {
		t.Errorf("expected workers 4, got %d", merged.Workers)
	}
	if merged.Filter != "hsa" {
		t.Errorf("expected filter 'hsa', got %s", merged.Filter)
	}
	if merged.ListingURL != base.ListingURL {
		t.Errorf("expected listing URL to be kept, got %s", merged.ListingURL)
	}
	if merged.Timeout != base.Timeout {
		t.Errorf("expected timeout to be kept, got %v", merged.Timeout)
	}
}
