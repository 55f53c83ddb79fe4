package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `exclude:
  - "*.tmp"
  - "node_modules/"
workers: 4
max_file_size_kb: 512
notebook_outputs: false
detect_binary: true
output:
  path: out/merged.html
  format: html
  tree: true
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	expectedExclude := []string{"*.tmp", "node_modules/"}
	if len(cfg.Exclude) != len(expectedExclude) {
		t.Fatalf("Expected %d exclude patterns, got %d", len(expectedExclude), len(cfg.Exclude))
	}
	for i, expected := range expectedExclude {
		if cfg.Exclude[i] != expected {
			t.Errorf("Exclude[%d]: expected %q, got %q", i, expected, cfg.Exclude[i])
		}
	}

	if cfg.Workers != 4 || cfg.MaxFileSizeKB != 512 {
		t.Errorf("Unexpected workers/max size: %d/%d", cfg.Workers, cfg.MaxFileSizeKB)
	}
	if cfg.NotebookOutputs || !cfg.DetectBinary {
		t.Errorf("Unexpected flags: notebook_outputs=%v detect_binary=%v", cfg.NotebookOutputs, cfg.DetectBinary)
	}
	if !cfg.PDF {
		t.Error("Expected pdf to keep its default of true")
	}
	if cfg.Output.Path != "out/merged.html" || cfg.Output.Format != FormatHTML || !cfg.Output.Tree {
		t.Errorf("Unexpected output section: %+v", cfg.Output)
	}
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig should return default config for nonexistent file, got error: %v", err)
	}

	if !cfg.NotebookOutputs || !cfg.PDF {
		t.Error("Default config should enable notebook outputs and pdf")
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("Expected default format %q, got %q", FormatText, cfg.Output.Format)
	}
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, []byte(""), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Exclude == nil {
		t.Error("Exclude should be initialized to empty slice, not nil")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":       "exclude: [",
		"negative count": "workers: -1",
		"bad format":     "output:\n  format: pdf\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}
			if _, err := LoadConfig(configPath); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
