package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/entities"
	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/repositories"
	"github.com/MoAlkhateeb/image-pdf-combiner/internal/infrastructure/assemblers"
	"github.com/MoAlkhateeb/image-pdf-combiner/internal/infrastructure/config"
	"github.com/MoAlkhateeb/image-pdf-combiner/internal/infrastructure/logging"
	infraRepos "github.com/MoAlkhateeb/image-pdf-combiner/internal/infrastructure/repositories"
	"github.com/MoAlkhateeb/image-pdf-combiner/internal/interface/controllers"
	"github.com/MoAlkhateeb/image-pdf-combiner/internal/presentation/tui"
	usecases "github.com/MoAlkhateeb/image-pdf-combiner/internal/usecase"
)

var (
	flagInput     string
	flagOutput    string
	flagConfig    string
	flagAlgorithm string
	flagDPI       int
	flagMaxEdge   int
	flagTUI       bool
)

// rootCmd корневая команда приложения
var rootCmd = &cobra.Command{
	Use:   "combiner",
	Short: "Объединение изображений и PDF файлов в один документ",
	Long: `combiner собирает все изображения (PNG, JPEG) и PDF файлы входной
директории в один выходной PDF. Страницы следуют порядку имен файлов;
изображения конвертируются в страницы с размером по их пикселям и DPI,
страницы исходных PDF переносятся без изменений.

Без флагов -i и -o пути запрашиваются интерактивно.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagInput, "input", "i", "", "входная директория с изображениями и PDF")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "путь выходного PDF файла")
	rootCmd.Flags().IntVar(&flagDPI, "dpi", entities.DefaultDPI, "DPI для конвертации изображений")
	rootCmd.Flags().StringVar(&flagConfig, "config", "config.yaml", "файл конфигурации")
	rootCmd.Flags().StringVar(&flagAlgorithm, "algorithm", "", "алгоритм сборки: pdfcpu или unipdf")
	rootCmd.Flags().IntVar(&flagMaxEdge, "max-edge", 0, "ограничение длинной стороны изображения в пикселях (0 - выкл)")
	rootCmd.Flags().BoolVar(&flagTUI, "tui", false, "запустить текстовый интерфейс")
}

func run(cmd *cobra.Command, args []string) error {
	// Загрузка конфигурации
	configRepo := config.NewRepository()
	appConfig, err := configRepo.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Флаги командной строки имеют приоритет над файлом конфигурации
	if cmd.Flags().Changed("input") {
		appConfig.Scanner.InputDirectory = flagInput
	}
	if cmd.Flags().Changed("output") {
		appConfig.Scanner.OutputPath = flagOutput
	}
	if cmd.Flags().Changed("dpi") {
		appConfig.Merge.DPI = flagDPI
	}
	if cmd.Flags().Changed("algorithm") {
		appConfig.Merge.Algorithm = flagAlgorithm
	}
	if cmd.Flags().Changed("max-edge") {
		appConfig.Merge.MaxEdgePx = flagMaxEdge
	}

	if flagTUI {
		return runTUI(appConfig)
	}

	return runCLI(cmd, appConfig)
}

// runCLI выполняет объединение в режиме командной строки
func runCLI(cmd *cobra.Command, appConfig *entities.Config) error {
	fileLogger, err := logging.NewFileLogger(
		appConfig.Output.LogFileName,
		appConfig.Output.LogLevel,
		appConfig.Output.LogToFile,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Предупреждение: не удалось инициализировать логгер: %v\n", err)
	}

	var logger repositories.Logger
	if fileLogger != nil {
		logger = fileLogger
		defer fileLogger.Close()
	}

	mergeUseCase := usecases.NewMergeDirectoryUseCase(
		assemblers.NewFactory(),
		infraRepos.NewFileSystemRepository(),
		logger,
	)

	controller := controllers.NewCLIController(mergeUseCase)

	// Без обоих путей переходим в интерактивный режим
	if !cmd.Flags().Changed("input") || !cmd.Flags().Changed("output") {
		inputDir, outputPath, err := controller.PromptForPaths()
		if err != nil {
			return err
		}
		appConfig.Scanner.InputDirectory = inputDir
		appConfig.Scanner.OutputPath = outputPath
	}

	return controller.Run(appConfig)
}

// runTUI запускает текстовый интерфейс
func runTUI(appConfig *entities.Config) error {
	fileLogger, err := logging.NewFileLogger(
		appConfig.Output.LogFileName,
		appConfig.Output.LogLevel,
		appConfig.Output.LogToFile,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Предупреждение: не удалось инициализировать логгер: %v\n", err)
	}

	// Инициализация TUI
	tuiManager := tui.NewManager(flagConfig)
	tuiManager.Initialize()

	// Оборачиваем логгер адаптером, чтобы видеть логи в TUI
	var baseLogger repositories.Logger
	if fileLogger != nil {
		baseLogger = fileLogger
	}
	logger := tui.NewUILogger(baseLogger, tuiManager)

	mergeUseCase := usecases.NewMergeDirectoryUseCase(
		assemblers.NewFactory(),
		infraRepos.NewFileSystemRepository(),
		logger,
	)

	// Подключаем репортер прогресса к TUI
	mergeUseCase.SetProgressReporter(func(s entities.ProcessingStatus) {
		tuiManager.SendStatusUpdate(s)
	})

	processor := NewApplicationProcessor(mergeUseCase, appConfig, tuiManager, logger)
	defer processor.Shutdown()

	// Привязываем запуск обработки к TUI
	tuiManager.SetOnStartProcessing(func() {
		// Получаем актуальную конфигурацию из TUI
		processor.config = tuiManager.GetConfig()
		go processor.StartProcessing()
	})

	// Автозапуск, если включен в конфигурации
	if appConfig.Merge.AutoStart {
		go processor.StartProcessing()
	}

	if err := tuiManager.Run(); err != nil {
		return fmt.Errorf("ошибка запуска TUI: %w", err)
	}

	tuiManager.Cleanup()
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}
