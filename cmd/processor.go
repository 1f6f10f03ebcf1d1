package main

import (
	"context"
	"sync"

	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/entities"
	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/repositories"
	"github.com/MoAlkhateeb/image-pdf-combiner/internal/presentation/tui"
	usecases "github.com/MoAlkhateeb/image-pdf-combiner/internal/usecase"
)

// ApplicationProcessor обрабатывает команды приложения в режиме TUI
type ApplicationProcessor struct {
	mergeUseCase *usecases.MergeDirectoryUseCase
	config       *entities.Config
	tuiManager   *tui.Manager
	logger       repositories.Logger

	// Graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewApplicationProcessor создает новый процессор приложения
func NewApplicationProcessor(
	mergeUseCase *usecases.MergeDirectoryUseCase,
	config *entities.Config,
	tuiManager *tui.Manager,
	logger repositories.Logger,
) *ApplicationProcessor {
	ctx, cancel := context.WithCancel(context.Background())

	return &ApplicationProcessor{
		mergeUseCase: mergeUseCase,
		config:       config,
		tuiManager:   tuiManager,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// StartProcessing запускает объединение файлов
func (p *ApplicationProcessor) StartProcessing() {
	p.wg.Add(1)
	defer p.wg.Done()

	if p.logger != nil {
		p.logger.Info("Запуск объединения. Директория: %s", p.config.Scanner.InputDirectory)
	}

	result, err := p.mergeUseCase.Execute(p.config)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("Ошибка обработки: %v", err)
		}
		return
	}

	if p.logger != nil {
		p.logger.Success("Объединение завершено: %s (%d страниц)", result.OutputPath, result.PageCount)
	}
}

// Shutdown корректно завершает работу процессора
func (p *ApplicationProcessor) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
