package repositories

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/entities"
)

// FileSystemRepository реализация репозитория для работы с файловой системой
type FileSystemRepository struct{}

// NewFileSystemRepository создает новый репозиторий файловой системы
func NewFileSystemRepository() *FileSystemRepository {
	return &FileSystemRepository{}
}

// ListSupportedFiles возвращает список поддерживаемых файлов директории,
// отсортированный по имени файла в восходящем побайтовом порядке.
// Вложенные директории не обходятся. Порядок сортировки полностью
// определяет порядок страниц в выходном документе.
func (r *FileSystemRepository) ListSupportedFiles(directory string) ([]entities.InputFile, error) {
	info, err := os.Stat(directory)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrInvalidInputPath, directory)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", entities.ErrInvalidInputPath, directory)
	}

	dirEntries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entities.ErrInvalidInputPath, directory, err)
	}

	var files []entities.InputFile
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}

		// Файлы с неподдерживаемыми расширениями молча пропускаются
		kind, ok := entities.DetectFileKind(entry.Name())
		if !ok {
			continue
		}

		files = append(files, entities.InputFile{
			Path: filepath.Join(directory, entry.Name()),
			Kind: kind,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name() < files[j].Name()
	})

	return files, nil
}

// ResolveOutputPath приводит выходной путь к конкретному пути файла
// до начала записи. Если указана существующая директория, имя файла
// выводится из имени входной директории.
func (r *FileSystemRepository) ResolveOutputPath(outputPath, inputDirectory string) (string, error) {
	if strings.TrimSpace(outputPath) == "" {
		return "", entities.ErrEmptyPath
	}

	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		base := filepath.Base(filepath.Clean(inputDirectory))
		outputPath = filepath.Join(outputPath, fmt.Sprintf("%s_combined_output.pdf", base))
	}

	return outputPath, nil
}

// FileExists проверяет существование файла
func (r *FileSystemRepository) FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// CreateDirectory создает директорию
func (r *FileSystemRepository) CreateDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}
