package assemblers

import (
	"fmt"

	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/entities"
	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/repositories"
)

// NewFactory возвращает фабрику сборщиков страниц.
// Реализация выбирается по алгоритму из конфигурации запуска.
func NewFactory() repositories.AssemblerFactory {
	return func(config *entities.MergeConfig) (repositories.PageAssembler, error) {
		switch config.Algorithm {
		case entities.AlgorithmUniPDF:
			return NewUniPDFAssembler(config)
		case entities.AlgorithmPDFCPU, "":
			return NewPDFCPUAssembler(config)
		default:
			return nil, fmt.Errorf("%w: %s", entities.ErrUnsupportedAlgorithm, config.Algorithm)
		}
	}
}
