package repositories

import (
	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/entities"
)

// PageAssembler интерфейс для накопления страниц выходного документа.
// Файлы добавляются строго последовательно в порядке сортировки;
// Write фиксирует результат на диске, Close освобождает ресурсы сборки.
type PageAssembler interface {
	AppendImage(path string) (int, error)
	AppendPDF(path string) (int, error)
	Write(outputPath string) error
	Close() error
}

// AssemblerFactory создает сборщик страниц для одного запуска
type AssemblerFactory func(config *entities.MergeConfig) (PageAssembler, error)

// FileRepository интерфейс для работы с файловой системой
type FileRepository interface {
	ListSupportedFiles(directory string) ([]entities.InputFile, error)
	ResolveOutputPath(outputPath, inputDirectory string) (string, error)
	FileExists(path string) bool
	CreateDirectory(path string) error
}
