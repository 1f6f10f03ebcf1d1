package entities_test

import (
	"errors"
	"testing"

	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/entities"
)

func TestConfig_ToMergeConfig(t *testing.T) {
	tests := []struct {
		name              string
		config            entities.Config
		expectedDPI       int
		expectedAlgorithm string
	}{
		{
			name:              "Defaults for empty config",
			config:            entities.Config{},
			expectedDPI:       300,
			expectedAlgorithm: entities.AlgorithmPDFCPU,
		},
		{
			name: "Explicit values",
			config: entities.Config{
				Merge: entities.AppMergeConfig{DPI: 150, Algorithm: entities.AlgorithmUniPDF},
			},
			expectedDPI:       150,
			expectedAlgorithm: entities.AlgorithmUniPDF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mergeConfig := tt.config.ToMergeConfig()
			if mergeConfig.DPI != tt.expectedDPI {
				t.Errorf("Expected DPI %d, got %d", tt.expectedDPI, mergeConfig.DPI)
			}
			if mergeConfig.Algorithm != tt.expectedAlgorithm {
				t.Errorf("Expected algorithm %q, got %q", tt.expectedAlgorithm, mergeConfig.Algorithm)
			}
		})
	}
}

func TestProcessingStatus_AddFile(t *testing.T) {
	status := entities.NewProcessingStatus(4)

	status.AddFile(entities.KindImage, 1)
	status.AddFile(entities.KindPDF, 2)

	if status.ProcessedFiles != 2 {
		t.Errorf("Expected 2 processed files, got %d", status.ProcessedFiles)
	}
	if status.ImageFiles != 1 || status.PDFFiles != 1 {
		t.Errorf("Expected 1 image and 1 PDF, got %d and %d", status.ImageFiles, status.PDFFiles)
	}
	if status.TotalPages != 3 {
		t.Errorf("Expected 3 pages, got %d", status.TotalPages)
	}
	if status.Progress != 50 {
		t.Errorf("Expected progress 50%%, got %f", status.Progress)
	}
}

func TestProcessingStatus_Complete(t *testing.T) {
	status := entities.NewProcessingStatus(1)
	status.AddFile(entities.KindImage, 1)
	status.Complete()

	if !status.IsComplete {
		t.Error("Expected status to be complete")
	}
	if status.Phase != entities.PhaseCompleted {
		t.Errorf("Expected phase %v, got %v", entities.PhaseCompleted, status.Phase)
	}
	if status.Progress != 100 {
		t.Errorf("Expected progress 100%%, got %f", status.Progress)
	}
}

func TestProcessingStatus_Fail(t *testing.T) {
	status := entities.NewProcessingStatus(2)
	status.Fail(entities.ErrImageDecode)

	if !status.IsComplete {
		t.Error("Expected status to be complete after failure")
	}
	if status.Phase != entities.PhaseFailed {
		t.Errorf("Expected phase %v, got %v", entities.PhaseFailed, status.Phase)
	}
	if !errors.Is(status.Error, entities.ErrImageDecode) {
		t.Errorf("Expected ErrImageDecode, got %v", status.Error)
	}
}

func TestProcessingPhase_String(t *testing.T) {
	phases := map[entities.ProcessingPhase]string{
		entities.PhaseInitializing: "Инициализация",
		entities.PhaseCollecting:   "Сбор файлов",
		entities.PhaseAssembling:   "Сборка страниц",
		entities.PhaseWriting:      "Запись результата",
		entities.PhaseCompleted:    "Завершено",
		entities.PhaseFailed:       "Ошибка",
	}

	for phase, expected := range phases {
		if phase.String() != expected {
			t.Errorf("Phase %d: expected %q, got %q", phase, expected, phase.String())
		}
	}
}
