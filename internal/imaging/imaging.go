// Package imaging turns picked image files into stored bytes and renders the
// partially revealed picture for a grid of cells.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"splitup/internal/grid"
	"splitup/internal/models"
)

// ThumbnailSize is the edge length of the square thumbnail
const ThumbnailSize = 300

var (
	placeholderColor = color.RGBA{R: 0x8e, G: 0x8e, B: 0x93, A: 0xff}
	gridLineColor    = color.RGBA{R: 0x1c, G: 0x1f, B: 0x3a, A: 0xff}
)

// Load reads an image file and returns its bytes together with a PNG thumbnail.
// Files that cannot be decoded are rejected so a project never starts from a broken image.
func Load(path string) (full []byte, thumb []byte, err error) {
	full, err = os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(full))
	if err != nil {
		return nil, nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	thumb, err = EncodePNG(Thumbnail(img, ThumbnailSize))
	if err != nil {
		return nil, nil, err
	}
	return full, thumb, nil
}

// Decode decodes stored image bytes, falling back to a gray placeholder
func Decode(data []byte) image.Image {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Placeholder(ThumbnailSize, ThumbnailSize)
	}
	return img
}

// Placeholder returns a solid gray image of the given size
func Placeholder(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: placeholderColor}, image.Point{}, draw.Src)
	return img
}

// Thumbnail scales img to fill a size x size square, cropping the longer side around the center
func Thumbnail(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	side := w
	if h < side {
		side = h
	}
	crop := image.Rect(
		b.Min.X+(w-side)/2,
		b.Min.Y+(h-side)/2,
		b.Min.X+(w-side)/2+side,
		b.Min.Y+(h-side)/2+side,
	)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Src, nil)
	return dst
}

// Reveal renders img in grayscale with the colored cells restored to full color.
// Cells are laid out row-major on a near-square grid. With lines set, cell
// borders are drawn over the result.
func Reveal(img image.Image, cells []models.Cell, lines bool) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	rows, cols := grid.Dimensions(len(cells))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := img.At(b.Min.X+x, b.Min.Y+y)
			if rows > 0 && cellColored(cells, x*cols/w, y*rows/h, cols) {
				out.Set(x, y, src)
				continue
			}
			out.Set(x, y, color.GrayModel.Convert(src))
		}
	}

	if lines && rows > 0 {
		drawGridLines(out, rows, cols)
	}
	return out
}

func cellColored(cells []models.Cell, col, row, cols int) bool {
	idx := row*cols + col
	return idx < len(cells) && cells[idx].IsColored
}

func drawGridLines(img *image.RGBA, rows, cols int) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	for c := 1; c < cols; c++ {
		x := c * w / cols
		for y := 0; y < h; y++ {
			img.Set(x, y, gridLineColor)
		}
	}
	for r := 1; r < rows; r++ {
		y := r * h / rows
		for x := 0; x < w; x++ {
			img.Set(x, y, gridLineColor)
		}
	}
}

// EncodePNG encodes img as PNG
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
