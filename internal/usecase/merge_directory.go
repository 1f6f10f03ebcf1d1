package usecases

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/entities"
	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/repositories"
)

// MergeDirectoryUseCase сценарий объединения файлов директории в один PDF.
// Файлы обрабатываются строго последовательно в порядке сортировки имен:
// порядок страниц выходного документа определяется только этим порядком.
type MergeDirectoryUseCase struct {
	assemblerFactory repositories.AssemblerFactory
	fileRepo         repositories.FileRepository
	logger           repositories.Logger
	progressReporter func(entities.ProcessingStatus)
}

// NewMergeDirectoryUseCase создает новый сценарий объединения
func NewMergeDirectoryUseCase(
	assemblerFactory repositories.AssemblerFactory,
	fileRepo repositories.FileRepository,
	logger repositories.Logger,
) *MergeDirectoryUseCase {
	return &MergeDirectoryUseCase{
		assemblerFactory: assemblerFactory,
		fileRepo:         fileRepo,
		logger:           logger,
	}
}

// SetProgressReporter устанавливает функцию для отчета о прогрессе
func (uc *MergeDirectoryUseCase) SetProgressReporter(reporter func(entities.ProcessingStatus)) {
	uc.progressReporter = reporter
}

// reportProgress отправляет обновление прогресса
func (uc *MergeDirectoryUseCase) reportProgress(status *entities.ProcessingStatus) {
	if uc.progressReporter != nil {
		uc.progressReporter(*status)
	}
}

// Execute выполняет объединение согласно конфигурации.
// Любая ошибка прерывает весь запуск; частичный результат по финальному
// пути не публикуется.
func (uc *MergeDirectoryUseCase) Execute(config *entities.Config) (*entities.MergeResult, error) {
	// Фаза 1: Инициализация
	status := entities.NewProcessingStatus(0)
	status.SetPhase(entities.PhaseInitializing, "Инициализация обработки...")
	uc.reportProgress(status)

	mergeConfig := config.ToMergeConfig()

	uc.logInfo("╔════════════════════════════════════════════════════════════")
	uc.logInfo("║ Начало объединения файлов в PDF")
	uc.logInfo("╠════════════════════════════════════════════════════════════")
	uc.logInfo("║ Входная директория: %s", config.Scanner.InputDirectory)
	uc.logInfo("║ Выходной путь: %s", config.Scanner.OutputPath)
	uc.logInfo("║ Алгоритм: %s", mergeConfig.Algorithm)
	uc.logInfo("║ DPI изображений: %d", mergeConfig.DPI)
	if mergeConfig.MaxEdgePx > 0 {
		uc.logInfo("║ Ограничение стороны изображения: %d px", mergeConfig.MaxEdgePx)
	}
	uc.logInfo("╚════════════════════════════════════════════════════════════")

	// Конфигурация проверяется до любой обработки
	if err := mergeConfig.Validate(); err != nil {
		status.Fail(err)
		uc.reportProgress(status)
		return nil, err
	}

	// Фаза 2: Сбор файлов
	status.SetPhase(entities.PhaseCollecting, "Сбор поддерживаемых файлов...")
	uc.reportProgress(status)
	uc.logInfo("🔍 Сканирование директории...")

	if !uc.fileRepo.FileExists(config.Scanner.InputDirectory) {
		err := fmt.Errorf("%w: %s", entities.ErrInvalidInputPath, config.Scanner.InputDirectory)
		status.Fail(err)
		uc.reportProgress(status)
		return nil, err
	}

	files, err := uc.fileRepo.ListSupportedFiles(config.Scanner.InputDirectory)
	if err != nil {
		status.Fail(err)
		uc.reportProgress(status)
		return nil, err
	}

	if len(files) == 0 {
		err := fmt.Errorf("%w: %s", entities.ErrNoInputFiles, config.Scanner.InputDirectory)
		status.Fail(err)
		uc.reportProgress(status)
		return nil, err
	}

	status.TotalFiles = len(files)
	uc.logSuccess("✓ Найдено файлов для объединения: %d", len(files))

	// Выходной путь приводится к конкретному файлу до начала сборки
	outputPath, err := uc.fileRepo.ResolveOutputPath(config.Scanner.OutputPath, config.Scanner.InputDirectory)
	if err != nil {
		status.Fail(err)
		uc.reportProgress(status)
		return nil, err
	}

	// Родительская директория выходного файла должна существовать до записи
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := uc.fileRepo.CreateDirectory(dir); err != nil {
			err = fmt.Errorf("%w: %s: %v", entities.ErrOutputWrite, outputPath, err)
			status.Fail(err)
			uc.reportProgress(status)
			return nil, err
		}
	}

	assembler, err := uc.assemblerFactory(mergeConfig)
	if err != nil {
		status.Fail(err)
		uc.reportProgress(status)
		return nil, err
	}
	defer assembler.Close()

	// Фаза 3: Сборка страниц
	status.SetPhase(entities.PhaseAssembling, "Сборка страниц...")
	uc.reportProgress(status)
	uc.logInfo("")
	uc.logInfo("🔄 Начало сборки страниц...")
	uc.logInfo("─────────────────────────────────────────────────────────────")

	result := &entities.MergeResult{OutputPath: outputPath}

	for i, file := range files {
		size := int64(0)
		if info, statErr := os.Stat(file.Path); statErr == nil {
			size = info.Size()
		}
		status.SetCurrentFile(file.Path, size)
		uc.reportProgress(status)

		var pages int
		switch file.Kind {
		case entities.KindImage:
			pages, err = assembler.AppendImage(file.Path)
		case entities.KindPDF:
			pages, err = assembler.AppendPDF(file.Path)
		default:
			err = fmt.Errorf("%w: %s", entities.ErrInvalidInputPath, file.Path)
		}

		if err != nil {
			uc.logError("[%d/%d] ✗ %s", i+1, status.TotalFiles, file.Name())
			uc.logError("    └─ Ошибка: %v", err)
			status.Fail(err)
			uc.reportProgress(status)
			return nil, err
		}

		result.AddPages(file.Kind, pages)
		status.AddFile(file.Kind, pages)
		uc.reportProgress(status)

		uc.logSuccess("[%d/%d] ✓ %s", i+1, status.TotalFiles, file.Name())
		uc.logInfo("    └─ %s, страниц: %d", file.Kind, pages)
	}

	if result.PageCount == 0 {
		err := fmt.Errorf("%w: %s", entities.ErrNoInputFiles, config.Scanner.InputDirectory)
		status.Fail(err)
		uc.reportProgress(status)
		return nil, err
	}

	// Фаза 4: Запись результата
	status.SetPhase(entities.PhaseWriting, "Запись выходного файла...")
	uc.reportProgress(status)

	if err := assembler.Write(outputPath); err != nil {
		status.Fail(err)
		uc.reportProgress(status)
		return nil, err
	}

	if info, statErr := os.Stat(outputPath); statErr == nil {
		result.OutputSize = info.Size()
	}
	result.Duration = time.Since(status.StartTime)

	status.Complete()
	uc.reportProgress(status)

	// Логируем итоговую статистику
	uc.logInfo("")
	uc.logInfo("╔════════════════════════════════════════════════════════════")
	uc.logInfo("║ Объединение завершено")
	uc.logInfo("╠════════════════════════════════════════════════════════════")
	uc.logInfo("║ Время выполнения: %s", status.FormatElapsedTime())
	uc.logInfo("║ Выходной файл: %s", outputPath)
	uc.logInfo("╠════════════════════════════════════════════════════════════")
	uc.logInfo("║ Статистика:")
	uc.logInfo("║   • Всего файлов: %d", result.TotalFiles)
	uc.logInfo("║   • Изображений: %d", result.ImageFiles)
	uc.logInfo("║   • PDF документов: %d", result.PDFFiles)
	uc.logSuccess("║   • Страниц в результате: %d", result.PageCount)
	uc.logInfo("║   • Размер результата: %.2f MB", float64(result.OutputSize)/1024/1024)
	uc.logInfo("╚════════════════════════════════════════════════════════════")

	return result, nil
}

// Методы для логирования
func (uc *MergeDirectoryUseCase) logInfo(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Info(format, args...)
	}
}

func (uc *MergeDirectoryUseCase) logSuccess(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Success(format, args...)
	}
}

func (uc *MergeDirectoryUseCase) logError(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Error(format, args...)
	}
}
