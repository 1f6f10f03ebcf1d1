package entities

import "errors"

// Доменные ошибки
var (
	ErrInvalidInputPath     = errors.New("входной путь не существует или не является директорией")
	ErrNoInputFiles         = errors.New("в директории нет поддерживаемых файлов")
	ErrImageDecode          = errors.New("не удалось декодировать изображение")
	ErrPdfRead              = errors.New("не удалось прочитать PDF файл")
	ErrOutputWrite          = errors.New("не удалось записать выходной файл")
	ErrInvalidDPI           = errors.New("DPI должен быть положительным числом")
	ErrInvalidMaxEdge       = errors.New("ограничение стороны изображения не может быть отрицательным")
	ErrUnsupportedAlgorithm = errors.New("неподдерживаемый алгоритм сборки")
	ErrEmptyPath            = errors.New("путь не может быть пустым")
)
