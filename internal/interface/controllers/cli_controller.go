package controllers

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/entities"
	usecases "github.com/MoAlkhateeb/image-pdf-combiner/internal/usecase"
)

// CLIController контроллер для командной строки
type CLIController struct {
	mergeUseCase *usecases.MergeDirectoryUseCase
}

// NewCLIController создает новый CLI контроллер
func NewCLIController(mergeUseCase *usecases.MergeDirectoryUseCase) *CLIController {
	return &CLIController{
		mergeUseCase: mergeUseCase,
	}
}

// PromptForPaths последовательно запрашивает входную директорию и выходной
// путь. Оба значения обязательны и не могут быть пустыми.
func (c *CLIController) PromptForPaths() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	inputDir, err := c.askRequired(reader, "Input directory Path: ")
	if err != nil {
		return "", "", err
	}

	outputPath, err := c.askRequired(reader, "Output PDF Path: ")
	if err != nil {
		return "", "", err
	}

	return inputDir, outputPath, nil
}

// Run выполняет объединение и показывает результат
func (c *CLIController) Run(config *entities.Config) error {
	fmt.Println("🔥 Image PDF Combiner - Объединение изображений и PDF")
	fmt.Println("=====================================================")

	result, err := c.mergeUseCase.Execute(config)
	if err != nil {
		return err
	}

	c.showMergeResult(result)
	return nil
}

// askRequired запрашивает обязательное непустое значение
func (c *CLIController) askRequired(reader *bufio.Reader, prompt string) (string, error) {
	for {
		fmt.Print(prompt)
		input, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("%w: %v", entities.ErrEmptyPath, err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			fmt.Println("❌ Значение не может быть пустым")
			continue
		}

		return input, nil
	}
}

// showMergeResult показывает результат объединения
func (c *CLIController) showMergeResult(result *entities.MergeResult) {
	fmt.Println("\n📊 Результаты объединения:")
	fmt.Printf("Всего файлов: %d\n", result.TotalFiles)
	fmt.Printf("Изображений: %d\n", result.ImageFiles)
	fmt.Printf("PDF документов: %d\n", result.PDFFiles)
	fmt.Printf("Страниц в результате: %d\n", result.PageCount)
	fmt.Printf("Размер результата: %.2f MB\n", float64(result.OutputSize)/1024/1024)
	fmt.Printf("Время выполнения: %s\n", result.Duration.Round(time.Millisecond))

	fmt.Printf("\n🎉 Готово! PDF сохранен как: %s\n", result.OutputPath)
}
