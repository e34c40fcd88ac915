package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
)

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return EncodeDataURI("image/png", buf.Bytes())
}

func TestImageProcessor_ThumbnailIsWebP(t *testing.T) {
	t.Parallel()
	p := NewImageProcessor(1<<20, 100)

	out, err := p.Process(pngDataURI(t, 400, 200), content.KindImage)
	require.NoError(t, err)
	assert.Equal(t, "image/png", out.MIME)
	assert.Equal(t, 400, out.Width)
	require.True(t, strings.HasPrefix(out.Thumbnail, "data:image/webp;base64,"))

	_, payload, err := ParseDataURI(out.Thumbnail)
	require.NoError(t, err)
	thumb, err := webp.Decode(bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, 100, thumb.Bounds().Dx())
	assert.Equal(t, 50, thumb.Bounds().Dy())
}

func TestImageProcessor_Rejections(t *testing.T) {
	t.Parallel()
	p := NewImageProcessor(64, 100)

	_, err := p.Process("", content.KindImage)
	assert.ErrorIs(t, err, ErrEmptyData)

	_, err = p.Process("assets/picture/a.png", content.KindImage)
	assert.ErrorIs(t, err, ErrInvalidDataURI)

	_, err = p.Process(EncodeDataURI("video/mp4", []byte("tiny")), content.KindImage)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = p.Process(pngDataURI(t, 50, 50), content.KindImage)
	assert.ErrorIs(t, err, ErrTooLarge)

	out, err := p.Process(EncodeDataURI("video/mp4", []byte("tiny")), content.KindVideo)
	require.NoError(t, err)
	assert.Empty(t, out.Thumbnail)
}

func TestKindOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, content.KindImage, KindOf("assets/picture/hero-bg.jpg"))
	assert.Equal(t, content.KindVideo, KindOf("videos/trailer.mp4"))
	assert.Equal(t, content.KindVideo, KindOf("https://videos.pexels.com/intro.mp4?autoplay=1"))
	assert.Equal(t, content.KindVideo, KindOf("https://www.youtube.com/embed/abc"))
	assert.Equal(t, content.KindImage, KindOf("https://cdn.example.com/logo.svg"))
	assert.Equal(t, content.KindImage, KindOf("assets/picture/unnamed"))
}
