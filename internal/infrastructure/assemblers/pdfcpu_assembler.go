package assemblers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/entities"
)

// PDFCPUAssembler сборщик страниц на основе PDFCPU.
// Каждое изображение импортируется в одностраничный промежуточный PDF
// с размером страницы по исходным пикселям и DPI, после чего все части
// склеиваются в порядке добавления.
type PDFCPUAssembler struct {
	config *entities.MergeConfig
	conf   *model.Configuration
	tmpDir string
	parts  []string
}

// NewPDFCPUAssembler создает новый PDFCPU сборщик
func NewPDFCPUAssembler(config *entities.MergeConfig) (*PDFCPUAssembler, error) {
	tmpDir, err := os.MkdirTemp("", "combiner-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrOutputWrite, err)
	}

	return &PDFCPUAssembler{
		config: config,
		conf:   model.NewDefaultConfiguration(),
		tmpDir: tmpDir,
	}, nil
}

// AppendImage конвертирует изображение в одну страницу PDF
func (a *PDFCPUAssembler) AppendImage(path string) (int, error) {
	page, err := prepareImagePage(path, a.config, a.tmpDir)
	if err != nil {
		return 0, err
	}

	// В режиме Full размер страницы берется из пикселей изображения,
	// а PageDim игнорируется. Поэтому страница задается явно, а
	// изображение растягивается на всю страницу относительным
	// масштабом 1.0: пропорции страницы и изображения совпадают.
	imp := pdfcpu.DefaultImportConfig()
	imp.PageDim = &types.Dim{Width: page.WidthPt, Height: page.HeightPt}
	imp.UserDim = true
	imp.Pos = types.Center
	imp.Scale = 1.0
	imp.ScaleAbs = false
	imp.InpUnit = types.POINTS

	partPath := filepath.Join(a.tmpDir, fmt.Sprintf("page_%05d.pdf", len(a.parts)))
	if err := api.ImportImagesFile([]string{page.FilePath}, partPath, imp, a.conf); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", entities.ErrImageDecode, path, err)
	}

	a.parts = append(a.parts, partPath)
	return 1, nil
}

// AppendPDF добавляет все страницы исходного PDF в исходном порядке
func (a *PDFCPUAssembler) AppendPDF(path string) (int, error) {
	// Проверяем структуру файла до склейки: зашифрованный или
	// поврежденный PDF должен прервать весь запуск
	if err := api.ValidateFile(path, a.conf); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", entities.ErrPdfRead, path, err)
	}

	pages, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", entities.ErrPdfRead, path, err)
	}

	a.parts = append(a.parts, path)
	return pages, nil
}

// Write склеивает накопленные части и атомарно публикует результат.
// Запись идет во временный файл рядом с выходным, чтобы при сбое
// по финальному пути не остался усеченный документ.
func (a *PDFCPUAssembler) Write(outputPath string) error {
	if len(a.parts) == 0 {
		return entities.ErrNoInputFiles
	}

	tmpPath := outputPath + ".tmp"
	if err := api.MergeCreateFile(a.parts, tmpPath, false, a.conf); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %s: %v", entities.ErrOutputWrite, outputPath, err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %s: %v", entities.ErrOutputWrite, outputPath, err)
	}

	return nil
}

// Close удаляет промежуточные файлы сборки
func (a *PDFCPUAssembler) Close() error {
	return os.RemoveAll(a.tmpDir)
}
