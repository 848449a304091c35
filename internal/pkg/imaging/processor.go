package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// Config for image processing
type Config struct {
	MaxWidth  int // max width before downscaling
	MaxHeight int // max height before downscaling
	Quality   int // JPEG quality 1-100
}

// DefaultAvatarConfig returns the processing config for avatars.
func DefaultAvatarConfig() Config {
	return Config{
		MaxWidth:  512,
		MaxHeight: 512,
		Quality:   85,
	}
}

// Processor resizes and re-encodes uploaded images.
type Processor struct {
	config Config
}

// NewProcessor creates an image processor
func NewProcessor(config Config) *Processor {
	return &Processor{config: config}
}

// Process decodes an image, downscales it to fit the configured bounds,
// and re-encodes it. Returns the encoded bytes and content type.
func (p *Processor) Process(reader io.Reader) ([]byte, string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > p.config.MaxWidth || bounds.Dy() > p.config.MaxHeight {
		img = imaging.Fit(img, p.config.MaxWidth, p.config.MaxHeight, imaging.Lanczos)
	}

	encoded, contentType, err := p.encode(img, format)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}

	return encoded, contentType, nil
}

func (p *Processor) encode(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	default:
		// Everything else re-encodes as JPEG
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.config.Quality}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}
