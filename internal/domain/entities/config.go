package entities

// DefaultDPI разрешение для конвертации изображений по умолчанию
const DefaultDPI = 300

// Поддерживаемые алгоритмы сборки
const (
	AlgorithmPDFCPU = "pdfcpu"
	AlgorithmUniPDF = "unipdf"
)

// MergeConfig представляет конфигурацию объединения.
// Значение неизменяемо после валидации и передается в сборщик явно.
type MergeConfig struct {
	DPI              int    // Разрешение для конвертации изображений (точек на дюйм)
	Algorithm        string // Алгоритм сборки: pdfcpu или unipdf
	MaxEdgePx        int    // Ограничение длинной стороны изображения в пикселях (0 - без ограничения)
	UniPDFLicenseKey string // Лицензионный ключ для UniPDF
}

// NewMergeConfig создает конфигурацию объединения с указанным DPI
func NewMergeConfig(dpi int) *MergeConfig {
	if dpi == 0 {
		dpi = DefaultDPI
	}

	return &MergeConfig{
		DPI:       dpi,
		Algorithm: AlgorithmPDFCPU,
	}
}

// Validate проверяет корректность конфигурации до начала обработки
func (c *MergeConfig) Validate() error {
	if c.DPI <= 0 {
		return ErrInvalidDPI
	}

	if c.MaxEdgePx < 0 {
		return ErrInvalidMaxEdge
	}

	switch c.Algorithm {
	case AlgorithmPDFCPU, AlgorithmUniPDF:
		return nil
	default:
		return ErrUnsupportedAlgorithm
	}
}

// PageDimensions вычисляет размер страницы в пунктах PDF (1/72 дюйма)
// для изображения с указанными размерами в пикселях:
// ширина страницы = px / DPI дюймов.
func (c *MergeConfig) PageDimensions(widthPx, heightPx int) (float64, float64) {
	return float64(widthPx) * 72.0 / float64(c.DPI),
		float64(heightPx) * 72.0 / float64(c.DPI)
}
