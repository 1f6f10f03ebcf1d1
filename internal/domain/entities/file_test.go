package entities_test

import (
	"testing"

	"github.com/MoAlkhateeb/image-pdf-combiner/internal/domain/entities"
)

func TestDetectFileKind(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		expectedKind entities.FileKind
		supported    bool
	}{
		{"PNG lowercase", "scan.png", entities.KindImage, true},
		{"PNG uppercase", "SCAN.PNG", entities.KindImage, true},
		{"JPG", "photo.jpg", entities.KindImage, true},
		{"JPEG", "photo.jpeg", entities.KindImage, true},
		{"JPEG mixed case", "photo.JpEg", entities.KindImage, true},
		{"PDF", "report.pdf", entities.KindPDF, true},
		{"PDF uppercase", "REPORT.PDF", entities.KindPDF, true},
		{"Full path", "/data/in/a.png", entities.KindImage, true},
		{"Text file", "notes.txt", 0, false},
		{"No extension", "README", 0, false},
		{"Extension only in name", "pdf", 0, false},
		{"GIF unsupported", "anim.gif", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := entities.DetectFileKind(tt.path)
			if ok != tt.supported {
				t.Fatalf("DetectFileKind(%q) supported = %v, want %v", tt.path, ok, tt.supported)
			}
			if ok && kind != tt.expectedKind {
				t.Errorf("DetectFileKind(%q) kind = %v, want %v", tt.path, kind, tt.expectedKind)
			}
		})
	}
}

func TestInputFile_Name(t *testing.T) {
	file := entities.InputFile{Path: "/data/in/a.png", Kind: entities.KindImage}
	if file.Name() != "a.png" {
		t.Errorf("Expected name a.png, got %s", file.Name())
	}
}

func TestMergeResult_AddPages(t *testing.T) {
	result := &entities.MergeResult{}

	result.AddPages(entities.KindImage, 1)
	result.AddPages(entities.KindPDF, 2)
	result.AddPages(entities.KindImage, 1)

	if result.TotalFiles != 3 {
		t.Errorf("Expected 3 files, got %d", result.TotalFiles)
	}
	if result.ImageFiles != 2 {
		t.Errorf("Expected 2 image files, got %d", result.ImageFiles)
	}
	if result.PDFFiles != 1 {
		t.Errorf("Expected 1 PDF file, got %d", result.PDFFiles)
	}
	if result.PageCount != 4 {
		t.Errorf("Expected 4 pages, got %d", result.PageCount)
	}
}
