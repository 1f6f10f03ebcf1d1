package assemblers

import (
	"bytes"
	"fmt"
	"os"

	"github.com/unidoc/unipdf/v3/common"
	"github.com/unidoc/unipdf/v3/creator"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/entities"
)

// UniPDFAssembler сборщик страниц на основе UniPDF.
// Требует лицензионный ключ, как и в алгоритме сжатия unipdf.
type UniPDFAssembler struct {
	config    *entities.MergeConfig
	pdfWriter model.PdfWriter
	tmpDir    string
	pages     int
}

// NewUniPDFAssembler создает новый UniPDF сборщик
func NewUniPDFAssembler(config *entities.MergeConfig) (*UniPDFAssembler, error) {
	// Проверяем лицензионный ключ из конфигурации или переменной окружения
	licenseKey := config.UniPDFLicenseKey
	if licenseKey == "" {
		licenseKey = os.Getenv("UNIDOC_LICENSE_API_KEY")
	}

	if licenseKey == "" {
		return nil, fmt.Errorf("%w: UniPDF требует лицензионный ключ. Установите его в конфигурации или в переменной UNIDOC_LICENSE_API_KEY, либо используйте алгоритм 'pdfcpu' для бесплатной обработки", entities.ErrUnsupportedAlgorithm)
	}

	os.Setenv("UNIDOC_LICENSE_API_KEY", licenseKey)
	common.SetLogger(common.NewConsoleLogger(common.LogLevelError))

	tmpDir, err := os.MkdirTemp("", "combiner-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrOutputWrite, err)
	}

	return &UniPDFAssembler{
		config:    config,
		pdfWriter: model.NewPdfWriter(),
		tmpDir:    tmpDir,
	}, nil
}

// AppendImage конвертирует изображение в одну страницу PDF
func (a *UniPDFAssembler) AppendImage(path string) (int, error) {
	page, err := prepareImagePage(path, a.config, a.tmpDir)
	if err != nil {
		return 0, err
	}

	// Рисуем изображение на странице точного размера и переносим
	// готовую страницу в общий writer
	c := creator.New()
	c.SetPageSize(creator.PageSize{page.WidthPt, page.HeightPt})
	c.NewPage()

	img, err := c.NewImageFromFile(page.FilePath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", entities.ErrImageDecode, path, err)
	}
	img.SetPos(0, 0)
	img.SetWidth(page.WidthPt)
	img.SetHeight(page.HeightPt)

	if err := c.Draw(img); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", entities.ErrImageDecode, path, err)
	}

	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", entities.ErrImageDecode, path, err)
	}

	pdfReader, err := model.NewPdfReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", entities.ErrImageDecode, path, err)
	}

	pdfPage, err := pdfReader.GetPage(1)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", entities.ErrImageDecode, path, err)
	}

	if err := a.pdfWriter.AddPage(pdfPage); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", entities.ErrImageDecode, path, err)
	}

	a.pages++
	return 1, nil
}

// AppendPDF добавляет все страницы исходного PDF в исходном порядке.
// Дескриптор исходного файла закрывается до перехода к следующему.
func (a *UniPDFAssembler) AppendPDF(path string) (int, error) {
	pdfReader, file, err := model.NewPdfReaderFromFile(path, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", entities.ErrPdfRead, path, err)
	}
	defer file.Close()

	encrypted, err := pdfReader.IsEncrypted()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", entities.ErrPdfRead, path, err)
	}
	if encrypted {
		ok, err := pdfReader.Decrypt([]byte(""))
		if err != nil || !ok {
			return 0, fmt.Errorf("%w: %s: файл зашифрован и требует пароль", entities.ErrPdfRead, path)
		}
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", entities.ErrPdfRead, path, err)
	}

	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: ошибка получения страницы %d: %v", entities.ErrPdfRead, path, i, err)
		}

		if err := a.pdfWriter.AddPage(page); err != nil {
			return 0, fmt.Errorf("%w: %s: ошибка добавления страницы %d: %v", entities.ErrPdfRead, path, i, err)
		}
	}

	a.pages += numPages
	return numPages, nil
}

// Write сохраняет накопленный документ и атомарно публикует результат
func (a *UniPDFAssembler) Write(outputPath string) error {
	if a.pages == 0 {
		return entities.ErrNoInputFiles
	}

	tmpPath := outputPath + ".tmp"
	outputFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", entities.ErrOutputWrite, outputPath, err)
	}

	if err := a.pdfWriter.Write(outputFile); err != nil {
		outputFile.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %s: %v", entities.ErrOutputWrite, outputPath, err)
	}

	if err := outputFile.Close(); err != nil {
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
func (a *UniPDFAssembler) Close() error {
	return os.RemoveAll(a.tmpDir)
}
