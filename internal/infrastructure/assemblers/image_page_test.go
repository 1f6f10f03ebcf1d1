package assemblers

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/entities"
)

// writePNG сохраняет изображение в PNG по указанному пути
func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("не удалось создать файл %s: %v", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("не удалось закодировать PNG: %v", err)
	}
}

// writeJPEG сохраняет изображение в JPEG по указанному пути
func writeJPEG(t *testing.T, path string, img image.Image) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("не удалось создать файл %s: %v", path, err)
	}
	defer file.Close()
	if err := jpeg.Encode(file, img, nil); err != nil {
		t.Fatalf("не удалось закодировать JPEG: %v", err)
	}
}

func opaqueImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return img
}

func TestPrepareImagePage_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	config := entities.NewMergeConfig(300)
	_, err := prepareImagePage(path, config, dir)
	if !errors.Is(err, entities.ErrImageDecode) {
		t.Errorf("Expected ErrImageDecode, got %v", err)
	}
}

func TestPrepareImagePage_OpaqueJPEGPassthrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	writeJPEG(t, path, opaqueImage(300, 150))

	config := entities.NewMergeConfig(300)
	page, err := prepareImagePage(path, config, dir)
	if err != nil {
		t.Fatalf("prepareImagePage() error: %v", err)
	}

	// Непрозрачный JPEG встраивается без перекодирования
	if page.FilePath != path {
		t.Errorf("Expected passthrough %s, got %s", path, page.FilePath)
	}
	if page.WidthPt != 72.0 || page.HeightPt != 36.0 {
		t.Errorf("Expected page 72x36 pt, got %.2fx%.2f", page.WidthPt, page.HeightPt)
	}
}

func TestPrepareImagePage_AlphaFlattened(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.png")

	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 128})
		}
	}
	writePNG(t, path, img)

	config := entities.NewMergeConfig(300)
	page, err := prepareImagePage(path, config, dir)
	if err != nil {
		t.Fatalf("prepareImagePage() error: %v", err)
	}

	if page.FilePath == path {
		t.Fatal("Expected normalized copy, got source path")
	}

	file, err := os.Open(page.FilePath)
	if err != nil {
		t.Fatalf("не удалось открыть нормализованную копию: %v", err)
	}
	defer file.Close()

	normalized, err := png.Decode(file)
	if err != nil {
		t.Fatalf("не удалось декодировать нормализованную копию: %v", err)
	}
	if !isOpaque(normalized) {
		t.Error("Expected normalized image to be fully opaque")
	}

	// Полупрозрачный красный на белом фоне
	r, g, b, _ := normalized.At(5, 5).RGBA()
	if r>>8 < 200 || g>>8 < 100 || b>>8 < 100 {
		t.Errorf("Expected blend over white, got r=%d g=%d b=%d", r>>8, g>>8, b>>8)
	}
}

func TestPrepareImagePage_PalettedFlattened(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "indexed.png")

	palette := color.Palette{color.White, color.Black}
	img := image.NewPaletted(image.Rect(0, 0, 8, 8), palette)
	writePNG(t, path, img)

	config := entities.NewMergeConfig(300)
	page, err := prepareImagePage(path, config, dir)
	if err != nil {
		t.Fatalf("prepareImagePage() error: %v", err)
	}

	if page.FilePath == path {
		t.Error("Expected paletted image to be re-encoded")
	}
}

func TestPrepareImagePage_MaxEdgeKeepsPageSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "large.jpg")
	writeJPEG(t, path, opaqueImage(600, 300))

	config := entities.NewMergeConfig(300)
	config.MaxEdgePx = 100

	page, err := prepareImagePage(path, config, dir)
	if err != nil {
		t.Fatalf("prepareImagePage() error: %v", err)
	}

	// Размер страницы считается от исходных пикселей
	if page.WidthPt != 144.0 || page.HeightPt != 72.0 {
		t.Errorf("Expected page 144x72 pt, got %.2fx%.2f", page.WidthPt, page.HeightPt)
	}

	file, err := os.Open(page.FilePath)
	if err != nil {
		t.Fatalf("не удалось открыть уменьшенную копию: %v", err)
	}
	defer file.Close()

	scaled, _, err := image.Decode(file)
	if err != nil {
		t.Fatalf("не удалось декодировать уменьшенную копию: %v", err)
	}
	if scaled.Bounds().Dx() != 100 {
		t.Errorf("Expected width 100 px after scaling, got %d", scaled.Bounds().Dx())
	}
}

func TestLimitEdge(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		maxEdge       int
		expectW       int
		expectH       int
	}{
		{"Disabled", 4000, 2000, 0, 4000, 2000},
		{"Within limit", 800, 600, 1000, 800, 600},
		{"Landscape scaled", 2000, 1000, 500, 500, 250},
		{"Portrait scaled", 1000, 2000, 500, 250, 500},
		{"Square scaled", 1000, 1000, 100, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, tt.width, tt.height))
			scaled := limitEdge(img, tt.maxEdge)
			bounds := scaled.Bounds()
			if bounds.Dx() != tt.expectW || bounds.Dy() != tt.expectH {
				t.Errorf("Expected %dx%d, got %dx%d", tt.expectW, tt.expectH, bounds.Dx(), bounds.Dy())
			}
		})
	}
}

func TestIsOpaque(t *testing.T) {
	opaque := opaqueImage(4, 4)
	if !isOpaque(opaque) {
		t.Error("Expected fully opaque image to be detected as opaque")
	}

	translucent := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	translucent.Set(2, 2, color.NRGBA{R: 255, A: 10})
	if isOpaque(translucent) {
		t.Error("Expected translucent image to be detected as not opaque")
	}
}
