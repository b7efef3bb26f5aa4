package grid

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"platter/internal/logging"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Renderer draws square cover grids. The zero value is not usable;
// call NewRenderer.
type Renderer struct {
	tile       int
	quality    int
	background color.Color
	padder     Padder
	logger     *slog.Logger
}

// NewRenderer builds a renderer with random padding. A zero seed
// randomizes padding per run; any other seed makes padding
// reproducible. tile is the square cell edge in pixels.
func NewRenderer(tile, quality int, seed int64, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Renderer{
		tile:       tile,
		quality:    quality,
		background: color.White,
		padder:     NewRandomPadder(seed),
		logger:     logger,
	}
}

// WithPadder overrides the padding strategy.
func (r *Renderer) WithPadder(p Padder) *Renderer {
	r.padder = p
	return r
}

// Side returns the edge length of the smallest square grid holding n
// covers.
func Side(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// RenderGrid writes one JPEG collage for the given covers and returns
// its path. An empty cover list is a logged no-op returning "".
// Covers that fail to open or decode leave their cell as background
// rather than failing the render.
func (r *Renderer) RenderGrid(covers []string, outDir, prefix string) (string, error) {
	if len(covers) == 0 {
		r.logger.Info("no covers to render, skipping",
			logging.String("prefix", prefix))
		return "", nil
	}

	side := Side(len(covers))
	batch := r.padder.Pad(covers, side*side)

	canvas := image.NewRGBA(image.Rect(0, 0, side*r.tile, side*r.tile))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)

	inner := r.tile - 2
	for i, path := range batch {
		src, err := decodeImage(path)
		if err != nil {
			r.logger.Warn("skipping undecodable cover",
				logging.String("path", path),
				logging.Error(err))
			continue
		}
		row := i / side
		col := i % side
		cell := image.Rect(
			col*r.tile+1,
			row*r.tile+1,
			col*r.tile+1+inner,
			row*r.tile+1+inner,
		)
		draw.CatmullRom.Scale(canvas, cell, src, fitCrop(src.Bounds(), inner, inner), draw.Src, nil)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	outPath := filepath.Join(outDir, fmt.Sprintf("%s_grid_%dx%d.jpg", prefix, side, side))
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create grid file: %w", err)
	}
	if err := jpeg.Encode(f, canvas, &jpeg.Options{Quality: r.quality}); err != nil {
		f.Close()
		return "", fmt.Errorf("encode grid: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close grid file: %w", err)
	}

	r.logger.Info("wrote grid",
		logging.String("path", outPath),
		logging.Int("covers", len(covers)),
		logging.Int("side", side))
	return outPath, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// fitCrop returns the centered source rectangle whose aspect ratio
// matches the target, so scaling fills the cell without letterboxing.
func fitCrop(src image.Rectangle, targetW, targetH int) image.Rectangle {
	srcW := src.Dx()
	srcH := src.Dy()
	if srcW == 0 || srcH == 0 {
		return src
	}
	if srcW*targetH > srcH*targetW {
		// Wider than the target: crop the sides.
		cropW := srcH * targetW / targetH
		x0 := src.Min.X + (srcW-cropW)/2
		return image.Rect(x0, src.Min.Y, x0+cropW, src.Max.Y)
	}
	// Taller than the target: crop top and bottom.
	cropH := srcW * targetH / targetW
	y0 := src.Min.Y + (srcH-cropH)/2
	return image.Rect(src.Min.X, y0, src.Max.X, y0+cropH)
}
