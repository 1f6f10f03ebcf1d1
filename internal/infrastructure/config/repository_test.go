package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/entities"
	"github.com/MoAlkhateeb/image-pdf-combiner/internal/infrastructure/config"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	repo := config.NewRepository()

	cfg, err := repo.Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Merge.DPI != entities.DefaultDPI {
		t.Errorf("Expected DPI %d, got %d", entities.DefaultDPI, cfg.Merge.DPI)
	}
	if cfg.Merge.Algorithm != entities.AlgorithmPDFCPU {
		t.Errorf("Expected algorithm %s, got %s", entities.AlgorithmPDFCPU, cfg.Merge.Algorithm)
	}
	if cfg.Scanner.InputDirectory != "./input" {
		t.Errorf("Expected input directory ./input, got %s", cfg.Scanner.InputDirectory)
	}
	if !cfg.Output.LogToFile || cfg.Output.LogFileName != "combiner.log" {
		t.Errorf("Unexpected log defaults: %+v", cfg.Output)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `scanner:
  input_directory: /data/scans
  output_path: /data/result.pdf
merge:
  dpi: 150
  algorithm: unipdf
  max_edge_px: 2000
output:
  log_level: debug
  log_to_file: false
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	repo := config.NewRepository()
	cfg, err := repo.Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Scanner.InputDirectory != "/data/scans" {
		t.Errorf("Expected input directory /data/scans, got %s", cfg.Scanner.InputDirectory)
	}
	if cfg.Merge.DPI != 150 {
		t.Errorf("Expected DPI 150, got %d", cfg.Merge.DPI)
	}
	if cfg.Merge.Algorithm != entities.AlgorithmUniPDF {
		t.Errorf("Expected algorithm unipdf, got %s", cfg.Merge.Algorithm)
	}
	if cfg.Merge.MaxEdgePx != 2000 {
		t.Errorf("Expected max_edge_px 2000, got %d", cfg.Merge.MaxEdgePx)
	}
	if cfg.Output.LogLevel != "debug" || cfg.Output.LogToFile {
		t.Errorf("Unexpected output section: %+v", cfg.Output)
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	repo := config.NewRepository()

	original := &entities.Config{
		Scanner: entities.ScannerConfig{
			InputDirectory: "/scans",
			OutputPath:     "/out/combined.pdf",
		},
		Merge: entities.AppMergeConfig{
			DPI:       72,
			Algorithm: entities.AlgorithmPDFCPU,
			AutoStart: true,
			MaxEdgePx: 4096,
		},
		Output: entities.OutputConfig{
			LogLevel:    "warning",
			LogToFile:   true,
			LogFileName: "run.log",
		},
	}

	if err := repo.Save(configPath, original); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := repo.Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if *loaded != *original {
		t.Errorf("Roundtrip mismatch:\n  saved:  %+v\n  loaded: %+v", *original, *loaded)
	}
}
