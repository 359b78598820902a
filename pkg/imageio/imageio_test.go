package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 1, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	return img
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.png":      PNG,
		"dir/b.JPG":  JPEG,
		"c.jpeg":     JPEG,
		"d.gif":      GIF,
		"e.bmp":      BMP,
		"f.tif":      TIFF,
		"g.tiff":     TIFF,
		"anim/h.ppm": PPM,
	}
	for name, want := range tests {
		got, err := FormatOf(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := FormatOf("scene.xyz")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = FormatOf("noext")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEncode_PNGRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testImage(), PNG))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	r, g, b, _ := decoded.At(1, 1).RGBA()
	assert.Equal(t, []uint32{200, 100, 50}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestEncode_BMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testImage(), BMP))
	cfg, err := bmp.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Width)
	assert.Equal(t, 3, cfg.Height)
}

func TestEncode_PPM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testImage(), PPM))

	header := "P6\n4 3\n255\n"
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte(header)))
	assert.Len(t, buf.Bytes(), len(header)+4*3*3)

	px := buf.Bytes()[len(header)+(1*4+1)*3:]
	assert.Equal(t, []byte{200, 100, 50}, px[:3])
}

func TestEncode_AllFormats(t *testing.T) {
	for _, f := range []Format{PNG, JPEG, GIF, BMP, TIFF, PPM} {
		var buf bytes.Buffer
		assert.NoError(t, Encode(&buf, testImage(), f), string(f))
		assert.NotZero(t, buf.Len(), string(f))
	}
	assert.ErrorIs(t, Encode(&bytes.Buffer{}, testImage(), Format("webp")), ErrUnsupportedFormat)
}
