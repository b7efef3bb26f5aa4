package grid

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, dir, name string, c color.Color, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func decodeJPEG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestSide(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 1}, {1, 1}, {2, 2}, {4, 2}, {5, 3}, {9, 3}, {10, 4}, {16, 4}, {17, 5},
	}
	for _, tt := range tests {
		if got := Side(tt.n); got != tt.want {
			t.Errorf("Side(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestRenderGridEmptyIsNoop(t *testing.T) {
	r := NewRenderer(32, 90, 1, nil)
	out, err := r.RenderGrid(nil, t.TempDir(), "Rock")
	if err != nil {
		t.Fatalf("RenderGrid: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestRenderGridDimensionsAndName(t *testing.T) {
	srcDir := t.TempDir()
	covers := []string{
		writePNG(t, srcDir, "a.png", color.RGBA{R: 255, A: 255}, 40, 40),
		writePNG(t, srcDir, "b.png", color.RGBA{G: 255, A: 255}, 60, 30),
		writePNG(t, srcDir, "c.png", color.RGBA{B: 255, A: 255}, 30, 60),
		writePNG(t, srcDir, "d.png", color.RGBA{R: 255, G: 255, A: 255}, 40, 40),
		writePNG(t, srcDir, "e.png", color.RGBA{G: 255, B: 255, A: 255}, 40, 40),
	}

	outDir := t.TempDir()
	r := NewRenderer(32, 90, 7, nil)
	out, err := r.RenderGrid(covers, outDir, "Jazz")
	if err != nil {
		t.Fatalf("RenderGrid: %v", err)
	}
	// 5 covers need a 3x3 grid.
	if want := filepath.Join(outDir, "Jazz_grid_3x3.jpg"); out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}

	img := decodeJPEG(t, out)
	if b := img.Bounds(); b.Dx() != 96 || b.Dy() != 96 {
		t.Fatalf("grid size = %dx%d, want 96x96", b.Dx(), b.Dy())
	}

	// Separator pixels stay background white.
	rr, gg, bb, _ := img.At(0, 0).RGBA()
	if rr>>8 < 240 || gg>>8 < 240 || bb>>8 < 240 {
		t.Fatalf("corner pixel not background: %v", img.At(0, 0))
	}

	// The first cell's center carries the first cover's red fill.
	rr, gg, bb, _ = img.At(16, 16).RGBA()
	if rr>>8 < 200 || gg>>8 > 80 || bb>>8 > 80 {
		t.Fatalf("first cell not red: r=%d g=%d b=%d", rr>>8, gg>>8, bb>>8)
	}
}

func TestRenderGridSkipsCorruptCovers(t *testing.T) {
	srcDir := t.TempDir()
	good := writePNG(t, srcDir, "good.png", color.RGBA{R: 255, A: 255}, 40, 40)
	corrupt := filepath.Join(srcDir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(32, 90, 1, nil)
	out, err := r.RenderGrid([]string{good, corrupt}, t.TempDir(), "Rock")
	if err != nil {
		t.Fatalf("corrupt cover should not fail the render: %v", err)
	}
	if out == "" {
		t.Fatal("expected an output file")
	}
	img := decodeJPEG(t, out)
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("grid size = %dx%d, want 64x64", b.Dx(), b.Dy())
	}
}

func TestRenderGridDeterministicWithSeed(t *testing.T) {
	srcDir := t.TempDir()
	covers := []string{
		writePNG(t, srcDir, "a.png", color.RGBA{R: 255, A: 255}, 20, 20),
		writePNG(t, srcDir, "b.png", color.RGBA{G: 255, A: 255}, 20, 20),
		writePNG(t, srcDir, "c.png", color.RGBA{B: 255, A: 255}, 20, 20),
	}

	render := func(dir string) []byte {
		r := NewRenderer(16, 90, 42, nil)
		out, err := r.RenderGrid(covers, dir, "Misc")
		if err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	first := render(t.TempDir())
	second := render(t.TempDir())
	if string(first) != string(second) {
		t.Fatal("same seed produced different grids")
	}
}

func TestFitCrop(t *testing.T) {
	// Wide source cropped at the sides.
	got := fitCrop(image.Rect(0, 0, 200, 100), 50, 50)
	if got.Dx() != 100 || got.Dy() != 100 || got.Min.X != 50 {
		t.Fatalf("wide crop = %v", got)
	}
	// Tall source cropped top and bottom.
	got = fitCrop(image.Rect(0, 0, 100, 200), 50, 50)
	if got.Dx() != 100 || got.Dy() != 100 || got.Min.Y != 50 {
		t.Fatalf("tall crop = %v", got)
	}
	// Matching aspect untouched.
	got = fitCrop(image.Rect(0, 0, 80, 80), 40, 40)
	if got != image.Rect(0, 0, 80, 80) {
		t.Fatalf("square crop = %v", got)
	}
}
