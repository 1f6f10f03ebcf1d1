package assemblers

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"

	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/entities"
)

// imagePage подготовленный к встраиванию источник одной страницы
type imagePage struct {
	SourcePath string  // Путь исходного изображения
	FilePath   string  // Файл для встраивания: оригинал или нормализованная копия
	WidthPt    float64 // Ширина страницы в пунктах
	HeightPt   float64 // Высота страницы в пунктах
}

// prepareImagePage декодирует изображение и готовит его к встраиванию
// в одну страницу PDF. Размер страницы вычисляется из исходных размеров
// в пикселях и DPI, поэтому ограничение max_edge_px снижает только
// разрешение содержимого, но не меняет размер страницы.
//
// Изображения с палитрой или альфа-каналом сводятся к полному RGB на
// непрозрачном белом фоне: фон страницы PDF всегда непрозрачен, поэтому
// сброс альфа-канала намеренный.
func prepareImagePage(path string, config *entities.MergeConfig, tmpDir string) (*imagePage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entities.ErrImageDecode, path, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entities.ErrImageDecode, path, err)
	}

	bounds := img.Bounds()
	widthPt, heightPt := config.PageDimensions(bounds.Dx(), bounds.Dy())

	scaled := limitEdge(img, config.MaxEdgePx)
	needFlatten := !isOpaque(scaled) || isPaletted(scaled)

	// Без нормализации и масштабирования встраиваем исходный файл как есть
	if !needFlatten && scaled == img {
		return &imagePage{
			SourcePath: path,
			FilePath:   path,
			WidthPt:    widthPt,
			HeightPt:   heightPt,
		}, nil
	}

	normalized := scaled
	if needFlatten {
		normalized = flattenToRGB(scaled)
	}

	normalizedPath, err := encodeNormalized(normalized, format, path, tmpDir)
	if err != nil {
		return nil, err
	}

	return &imagePage{
		SourcePath: path,
		FilePath:   normalizedPath,
		WidthPt:    widthPt,
		HeightPt:   heightPt,
	}, nil
}

// limitEdge уменьшает изображение, если его длинная сторона превышает
// maxEdge пикселей. 0 отключает ограничение.
func limitEdge(img image.Image, maxEdge int) image.Image {
	if maxEdge <= 0 {
		return img
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxEdge && height <= maxEdge {
		return img
	}

	if width >= height {
		return resize.Resize(uint(maxEdge), 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, uint(maxEdge), img, resize.Lanczos3)
}

// flattenToRGB сводит изображение к непрозрачному RGB на белом фоне
func flattenToRGB(img image.Image) image.Image {
	bounds := img.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Over)
	return dst
}

// encodeNormalized записывает нормализованное изображение во временный файл.
// PNG остается PNG: кодировщик стандартной библиотеки опускает альфа-канал
// для полностью непрозрачных изображений. Остальное кодируется в JPEG.
func encodeNormalized(img image.Image, format, sourcePath, tmpDir string) (string, error) {
	base := filepath.Base(sourcePath)

	var ext string
	if format == "png" {
		ext = ".png"
	} else {
		ext = ".jpg"
	}

	outPath := filepath.Join(tmpDir, base+".normalized"+ext)
	outFile, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", entities.ErrOutputWrite, outPath, err)
	}
	defer outFile.Close()

	if format == "png" {
		err = png.Encode(outFile, img)
	} else {
		err = jpeg.Encode(outFile, img, &jpeg.Options{Quality: 95})
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", entities.ErrImageDecode, sourcePath, err)
	}

	return outPath, nil
}

// isOpaque проверяет, полностью ли непрозрачно изображение
func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// isPaletted проверяет, использует ли изображение индексированную палитру
func isPaletted(img image.Image) bool {
	_, ok := img.(*image.Paletted)
	return ok
}
