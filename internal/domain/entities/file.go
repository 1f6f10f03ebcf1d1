package entities

import (
	"path/filepath"
	"strings"
	"time"
)

// FileKind категория входного файла, определяется один раз при сборе
type FileKind int

const (
	KindImage FileKind = iota
	KindPDF
)

// String возвращает название категории
func (k FileKind) String() string {
	switch k {
	case KindImage:
		return "изображение"
	case KindPDF:
		return "PDF"
	default:
		return "неизвестно"
	}
}

// InputFile входной файл с абсолютным путем и категорией.
// Неизменяем после сбора.
type InputFile struct {
	Path string
	Kind FileKind
}

// Name возвращает имя файла без директории
func (f InputFile) Name() string {
	return filepath.Base(f.Path)
}

// DetectFileKind определяет категорию файла по расширению (без учета регистра).
// Второе значение false, если расширение не поддерживается.
func DetectFileKind(path string) (FileKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return KindImage, true
	case ".pdf":
		return KindPDF, true
	default:
		return 0, false
	}
}

// MergeResult представляет результат объединения
type MergeResult struct {
	OutputPath string
	TotalFiles int
	ImageFiles int
	PDFFiles   int
	PageCount  int
	OutputSize int64
	Duration   time.Duration
}

// AddPages учитывает страницы, добавленные из одного входного файла
func (mr *MergeResult) AddPages(kind FileKind, pages int) {
	mr.TotalFiles++
	mr.PageCount += pages

	switch kind {
	case KindImage:
		mr.ImageFiles++
	case KindPDF:
		mr.PDFFiles++
	}
}
