// Package media provides upload processing, path normalization, classification
// and document scanning for the site's media catalog
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
)

var (
	ErrEmptyData       = errors.New("empty media data")
	ErrInvalidDataURI  = errors.New("media data must be a base64 data URI")
	ErrUnsupportedType = errors.New("unsupported media type")
	ErrTooLarge        = errors.New("media payload exceeds upload limit")
)

var dataURIPattern = regexp.MustCompile(`^data:([a-zA-Z0-9.+-]+/[a-zA-Z0-9.+-]+);base64,`)

// ProcessedUpload is the validated form of an uploaded data URI.
type ProcessedUpload struct {
	MIME      string
	Size      int
	Width     int
	Height    int
	Thumbnail string // webp data URI, empty for videos and SVG
}

// ImageProcessor validates inline uploads and renders webp thumbnails
type ImageProcessor struct {
	maxBytes       int
	thumbnailWidth int
}

// NewImageProcessor creates a new ImageProcessor instance
func NewImageProcessor(maxBytes, thumbnailWidth int) *ImageProcessor {
	return &ImageProcessor{
		maxBytes:       maxBytes,
		thumbnailWidth: thumbnailWidth,
	}
}

// ParseDataURI splits a base64 data URI into its MIME type and decoded payload.
func ParseDataURI(data string) (string, []byte, error) {
	if data == "" {
		return "", nil, ErrEmptyData
	}
	m := dataURIPattern.FindStringSubmatch(data)
	if m == nil {
		return "", nil, ErrInvalidDataURI
	}
	decoded, err := base64.StdEncoding.DecodeString(data[len(m[0]):])
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return strings.ToLower(m[1]), decoded, nil
}

// EncodeDataURI builds a base64 data URI.
func EncodeDataURI(mimeType string, payload []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

// MIMEFromPath guesses a media MIME type from a file extension.
func MIMEFromPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return strings.SplitN(t, ";", 2)[0]
	}
	return "application/octet-stream"
}

// KindOf infers the kind a replacement for path must have. Remote embeds
// without a media extension count as video.
func KindOf(path string) content.MediaKind {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	mimeType := MIMEFromPath(path)
	switch {
	case strings.HasPrefix(mimeType, "video/"):
		return content.KindVideo
	case strings.HasPrefix(mimeType, "image/"):
		return content.KindImage
	case IsRemote(path):
		return content.KindVideo
	}
	return content.KindImage
}

// Process validates data against kind. Raster images are decoded and get a
// webp thumbnail; SVG and video payloads are only checked for type and size.
func (p *ImageProcessor) Process(data string, kind content.MediaKind) (*ProcessedUpload, error) {
	mimeType, payload, err := ParseDataURI(data)
	if err != nil {
		return nil, err
	}
	if p.maxBytes > 0 && len(payload) > p.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, len(payload), p.maxBytes)
	}

	out := &ProcessedUpload{MIME: mimeType, Size: len(payload)}

	switch kind {
	case content.KindVideo:
		if !strings.HasPrefix(mimeType, "video/") {
			return nil, fmt.Errorf("%w: %s is not a video", ErrUnsupportedType, mimeType)
		}
		return out, nil
	case content.KindImage, content.KindBackground:
		if !strings.HasPrefix(mimeType, "image/") {
			return nil, fmt.Errorf("%w: %s is not an image", ErrUnsupportedType, mimeType)
		}
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnsupportedType, kind)
	}

	if mimeType == "image/svg+xml" {
		return out, nil
	}

	img, err := imaging.Decode(bytes.NewReader(payload), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	bounds := img.Bounds()
	out.Width, out.Height = bounds.Dx(), bounds.Dy()

	if p.thumbnailWidth <= 0 {
		return out, nil
	}
	thumb := img
	if out.Width > p.thumbnailWidth {
		thumb = imaging.Resize(img, p.thumbnailWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, thumb, &webp.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode webp thumbnail: %w", err)
	}
	out.Thumbnail = EncodeDataURI("image/webp", buf.Bytes())
	return out, nil
}
