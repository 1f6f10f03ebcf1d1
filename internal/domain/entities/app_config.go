package entities

import "time"

// Config представляет конфигурацию приложения
type Config struct {
	Scanner ScannerConfig  `yaml:"scanner"`
	Merge   AppMergeConfig `yaml:"merge"`
	Output  OutputConfig   `yaml:"output"`
}

// ScannerConfig настройки сканирования входной директории
type ScannerConfig struct {
	InputDirectory string `yaml:"input_directory"`
	OutputPath     string `yaml:"output_path"`
}

// AppMergeConfig настройки объединения
type AppMergeConfig struct {
	DPI              int    `yaml:"dpi"`
	Algorithm        string `yaml:"algorithm"`
	AutoStart        bool   `yaml:"auto_start"`
	UniPDFLicenseKey string `yaml:"unipdf_license_key"`
	MaxEdgePx        int    `yaml:"max_edge_px"` // Ограничение длинной стороны изображения (0 - выключено)
}

// OutputConfig настройки вывода
type OutputConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogToFile   bool   `yaml:"log_to_file"`
	LogFileName string `yaml:"log_file_name"`
}

// ToMergeConfig собирает неизменяемую конфигурацию объединения
func (c *Config) ToMergeConfig() *MergeConfig {
	dpi := c.Merge.DPI
	if dpi == 0 {
		dpi = DefaultDPI
	}

	algorithm := c.Merge.Algorithm
	if algorithm == "" {
		algorithm = AlgorithmPDFCPU
	}

	return &MergeConfig{
		DPI:              dpi,
		Algorithm:        algorithm,
		MaxEdgePx:        c.Merge.MaxEdgePx,
		UniPDFLicenseKey: c.Merge.UniPDFLicenseKey,
	}
}

// ProcessingPhase фаза обработки
type ProcessingPhase int

const (
	PhaseInitializing ProcessingPhase = iota
	PhaseCollecting
	PhaseAssembling
	PhaseWriting
	PhaseCompleted
	PhaseFailed
)

// String возвращает название фазы
func (phase ProcessingPhase) String() string {
	switch phase {
	case PhaseInitializing:
		return "Инициализация"
	case PhaseCollecting:
		return "Сбор файлов"
	case PhaseAssembling:
		return "Сборка страниц"
	case PhaseWriting:
		return "Запись результата"
	case PhaseCompleted:
		return "Завершено"
	case PhaseFailed:
		return "Ошибка"
	default:
		return "Неизвестно"
	}
}

// UIScreen типы экранов UI
type UIScreen int

const (
	UIScreenMenu UIScreen = iota
	UIScreenConfig
	UIScreenProcessing
)

// ProcessingStatus статус обработки
type ProcessingStatus struct {
	// Текущая фаза обработки
	Phase ProcessingPhase

	// Информация о текущем файле
	CurrentFile     string
	CurrentFileSize int64

	// Общая статистика
	TotalFiles     int
	ProcessedFiles int
	ImageFiles     int
	PDFFiles       int
	TotalPages     int

	// Прогресс
	Progress float64

	// Время выполнения
	StartTime     time.Time
	ElapsedTime   time.Duration
	EstimatedTime time.Duration

	// Состояние
	IsComplete bool
	Error      error

	// Сообщение для UI
	Message string
}

// NewProcessingStatus создает новый статус обработки
func NewProcessingStatus(totalFiles int) *ProcessingStatus {
	return &ProcessingStatus{
		Phase:      PhaseInitializing,
		TotalFiles: totalFiles,
		StartTime:  time.Now(),
	}
}

// UpdateProgress обновляет прогресс обработки
func (ps *ProcessingStatus) UpdateProgress() {
	if ps.TotalFiles > 0 {
		ps.Progress = float64(ps.ProcessedFiles) / float64(ps.TotalFiles) * 100
	}

	ps.ElapsedTime = time.Since(ps.StartTime)

	// Оценка оставшегося времени
	if ps.ProcessedFiles > 0 && ps.ProcessedFiles < ps.TotalFiles {
		avgTimePerFile := ps.ElapsedTime / time.Duration(ps.ProcessedFiles)
		remainingFiles := ps.TotalFiles - ps.ProcessedFiles
		ps.EstimatedTime = avgTimePerFile * time.Duration(remainingFiles)
	}
}

// AddFile учитывает обработанный входной файл
func (ps *ProcessingStatus) AddFile(kind FileKind, pages int) {
	ps.ProcessedFiles++
	ps.TotalPages += pages

	switch kind {
	case KindImage:
		ps.ImageFiles++
	case KindPDF:
		ps.PDFFiles++
	}

	ps.UpdateProgress()
}

// SetPhase устанавливает фазу обработки
func (ps *ProcessingStatus) SetPhase(phase ProcessingPhase, message string) {
	ps.Phase = phase
	ps.Message = message
}

// SetCurrentFile устанавливает текущий обрабатываемый файл
func (ps *ProcessingStatus) SetCurrentFile(filePath string, size int64) {
	ps.CurrentFile = filePath
	ps.CurrentFileSize = size
}

// Complete завершает обработку
func (ps *ProcessingStatus) Complete() {
	ps.IsComplete = true
	ps.Phase = PhaseCompleted
	ps.Progress = 100
	ps.ElapsedTime = time.Since(ps.StartTime)
	ps.EstimatedTime = 0
}

// Fail отмечает обработку как неудачную
func (ps *ProcessingStatus) Fail(err error) {
	ps.IsComplete = true
	ps.Phase = PhaseFailed
	ps.Error = err
	ps.ElapsedTime = time.Since(ps.StartTime)
}

// FormatElapsedTime форматирует время выполнения
func (ps *ProcessingStatus) FormatElapsedTime() string {
	if ps.ElapsedTime < time.Second {
		return "< 1 сек"
	}
	return ps.ElapsedTime.Round(time.Second).String()
}

// FormatEstimatedTime форматирует оставшееся время
func (ps *ProcessingStatus) FormatEstimatedTime() string {
	if ps.EstimatedTime == 0 {
		return "N/A"
	}
	if ps.EstimatedTime < time.Second {
		return "< 1 сек"
	}
	return ps.EstimatedTime.Round(time.Second).String()
}
