package imaging

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitup/internal/models"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	data, err := EncodePNG(img)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoad_ProducesSquareThumbnail(t *testing.T) {
	path := writePNG(t, solid(640, 480, color.RGBA{R: 200, A: 255}))

	full, thumb, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, full)

	img := Decode(thumb)
	assert.Equal(t, image.Rect(0, 0, ThumbnailSize, ThumbnailSize), img.Bounds())
}

func TestLoad_RejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	_, _, err := Load(path)
	assert.Error(t, err)
}

func TestDecode_FallsBackToPlaceholder(t *testing.T) {
	img := Decode([]byte("garbage"))
	assert.Equal(t, ThumbnailSize, img.Bounds().Dx())
	r, g, b, _ := img.At(10, 10).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestReveal_ColorsOnlyFilledCells(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	src := solid(20, 20, red)

	// 4 cells on a 2x2 layout; color the top-left and bottom-right
	cells := []models.Cell{
		{Position: 0, IsColored: true},
		{Position: 1},
		{Position: 2},
		{Position: 3, IsColored: true},
	}
	out := Reveal(src, cells, false)

	assert.Equal(t, color.RGBAModel.Convert(red), color.RGBAModel.Convert(out.At(2, 2)))
	assert.Equal(t, color.RGBAModel.Convert(red), color.RGBAModel.Convert(out.At(17, 17)))

	r, g, b, _ := out.At(17, 2).RGBA()
	assert.Equal(t, r, g, "uncolored cell is gray")
	assert.Equal(t, g, b)
}

func TestReveal_NoCellsIsGrayscale(t *testing.T) {
	out := Reveal(solid(4, 4, color.RGBA{G: 255, A: 255}), nil, true)
	r, g, b, _ := out.At(1, 1).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}
