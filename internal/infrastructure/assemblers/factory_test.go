package assemblers

import (
	"errors"
	"testing"

	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/entities"
)

func TestNewFactory_Algorithms(t *testing.T) {
	factory := NewFactory()

	t.Run("pdfcpu", func(t *testing.T) {
		config := entities.NewMergeConfig(300)
		config.Algorithm = entities.AlgorithmPDFCPU

		assembler, err := factory(config)
		if err != nil {
			t.Fatalf("factory() error: %v", err)
		}
		defer assembler.Close()

		if _, ok := assembler.(*PDFCPUAssembler); !ok {
			t.Errorf("Expected *PDFCPUAssembler, got %T", assembler)
		}
	})

	t.Run("Empty algorithm defaults to pdfcpu", func(t *testing.T) {
		config := entities.NewMergeConfig(300)
		config.Algorithm = ""

		assembler, err := factory(config)
		if err != nil {
			t.Fatalf("factory() error: %v", err)
		}
		defer assembler.Close()

		if _, ok := assembler.(*PDFCPUAssembler); !ok {
			t.Errorf("Expected *PDFCPUAssembler, got %T", assembler)
		}
	})

	t.Run("unipdf without license key", func(t *testing.T) {
		t.Setenv("UNIDOC_LICENSE_API_KEY", "")

		config := entities.NewMergeConfig(300)
		config.Algorithm = entities.AlgorithmUniPDF

		_, err := factory(config)
		if !errors.Is(err, entities.ErrUnsupportedAlgorithm) {
			t.Errorf("Expected ErrUnsupportedAlgorithm, got %v", err)
		}
	})

	t.Run("Unknown algorithm", func(t *testing.T) {
		config := entities.NewMergeConfig(300)
		config.Algorithm = "ghostscript"

		_, err := factory(config)
		if !errors.Is(err, entities.ErrUnsupportedAlgorithm) {
			t.Errorf("Expected ErrUnsupportedAlgorithm, got %v", err)
		}
	})
}
