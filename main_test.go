package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-sequential-raytracer/pkg/surface"
)

func TestCreateSystem(t *testing.T) {
	tests := []struct {
		name        string
		benchType   string
		expectError bool
	}{
		// Built-in benches
		{"singlet bench", "singlet", false},
		{"mirror bench", "mirror", false},
		{"relay bench", "relay", false},
		{"tir bench", "tir", false},

		// Invalid benches
		{"unknown bench", "nonexistent", true},
		{"empty bench name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, err := createSystem(tt.benchType, 2, nil)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for bench type '%s', but got none", tt.benchType)
				}
				if sys != nil {
					t.Errorf("Expected nil system for invalid bench type '%s', got %T", tt.benchType, sys)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error for bench type '%s': %v", tt.benchType, err)
				}
				if sys == nil {
					t.Fatalf("Expected system for valid bench type '%s', got nil", tt.benchType)
				}
				if sys.Workers != 2 {
					t.Errorf("Expected workers to be wired through, got %d", sys.Workers)
				}
				if err := sys.Validate(); err != nil {
					t.Errorf("Bench '%s' should validate, got: %v", tt.benchType, err)
				}
			}
		})
	}
}

func TestOutputDir(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		benchType string
		expected  string
	}{
		{"singlet under default base", "output", "singlet", filepath.Join("output", "singlet")},
		{"mirror under default base", "output", "mirror", filepath.Join("output", "mirror")},
		{"custom base", "runs", "relay", filepath.Join("runs", "relay")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputDir(tt.base, tt.benchType)
			if got != tt.expected {
				t.Errorf("Expected output directory '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestWriteSpotDiagram(t *testing.T) {
	captures := []surface.CaptureRecord{
		{X: 1e-4, Y: 0, T: 0.5, Hit: true, Inside: true, Power: 0.5},
		{X: -1e-4, Y: 2e-4, T: 0.5, Hit: true, Inside: true, Power: 0.5},
		{X: 0.04, Y: 0, T: 0.5, Hit: true, Inside: true, Display: true}, // excluded from scaling
	}
	stats := surface.SpotStats{Count: 2, CentroidX: 0, CentroidY: 1e-4, RMSRadius: 2e-4, TotalPower: 1}

	filename := filepath.Join(t.TempDir(), "spot.png")
	if err := writeSpotDiagram(filename, captures, stats); err != nil {
		t.Fatalf("Unexpected error writing spot diagram: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Expected spot diagram file to exist: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Expected a decodable PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != spotImageSize || bounds.Dy() != spotImageSize {
		t.Errorf("Expected %dx%d image, got %dx%d", spotImageSize, spotImageSize, bounds.Dx(), bounds.Dy())
	}
}

func TestWriteSpotDiagram_NoHits(t *testing.T) {
	// A run where every ray misses still produces a valid (empty) diagram
	captures := []surface.CaptureRecord{
		{X: 0.1, Y: 0, Hit: true, Inside: false},
		{Hit: false},
	}

	filename := filepath.Join(t.TempDir(), "spot.png")
	if err := writeSpotDiagram(filename, captures, surface.SpotStats{}); err != nil {
		t.Fatalf("Unexpected error writing empty spot diagram: %v", err)
	}
}

func TestWriteSpotDiagram_BadPath(t *testing.T) {
	err := writeSpotDiagram(filepath.Join(t.TempDir(), "missing", "spot.png"), nil, surface.SpotStats{})
	if err == nil {
		t.Error("Expected error for unwritable path, got none")
	}
}
