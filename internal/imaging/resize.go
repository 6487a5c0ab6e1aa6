package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const jpegQuality = 85

// ResizeIfNeeded shrinks an image whose byte size exceeds maxBytes or whose
// longer side exceeds maxDim. Images within both limits are returned as-is.
// On any failure the original bytes are returned.
func ResizeIfNeeded(data []byte, maxDim, maxBytes int) []byte {
	if len(data) <= maxBytes {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			slog.Warn("Failed to resize image, using original", "err", err)
			return data
		}
		if cfg.Width <= maxDim && cfg.Height <= maxDim {
			return data
		}
	}

	out, err := resize(data, maxDim)
	if err != nil {
		slog.Warn("Failed to resize image, using original", "err", err)
		return data
	}

	slog.Info("Compressed image", "original_bytes", len(data), "new_bytes", len(out), "reduction", len(data)-len(out))
	return out
}

func resize(data []byte, maxDim int) ([]byte, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	slog.Info("Original image size", "width", width, "height", height, "format", format, "bytes", len(data))

	newWidth, newHeight := fitWithin(width, height, maxDim)
	if newWidth != width || newHeight != height {
		slog.Info("Resized image", "width", newWidth, "height", newHeight)
	}
	dstRect := image.Rect(0, 0, newWidth, newHeight)

	var buf bytes.Buffer
	if isGray(src) {
		dst := image.NewGray(dstRect)
		draw.CatmullRom.Scale(dst, dstRect, src, b, draw.Src, nil)
		if err := png.Encode(&buf, dst); err != nil {
			return nil, fmt.Errorf("failed to encode png: %w", err)
		}
		return buf.Bytes(), nil
	}

	// transparent pixels end up white
	dst := image.NewRGBA(dstRect)
	draw.Draw(dst, dstRect, &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dstRect, src, b, draw.Over, nil)

	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// fitWithin scales width and height so the longer side is at most maxDim
func fitWithin(width, height, maxDim int) (int, int) {
	if width <= maxDim && height <= maxDim {
		return width, height
	}
	if width >= height {
		return maxDim, max(1, height*maxDim/width)
	}
	return max(1, width*maxDim/height), maxDim
}

func isGray(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	return false
}
