package capture

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

const jpegDataURLPrefix = "data:image/jpeg;base64,"

// EncodeDataURL encodes img as a self-contained JPEG data URL.
func EncodeDataURL(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("encode photo: empty frame")
	}
	buf := &bytes.Buffer{}
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("encode photo: %w", err)
	}
	return jpegDataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeImage accepts raw JPEG/PNG/GIF/BMP/TIFF bytes or a base64 data URL.
func DecodeImage(payload []byte) (image.Image, error) {
	raw, err := unwrapDataURL(payload)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	return img, nil
}

// NormalizePhoto decodes an uploaded meter photo, shrinks it to fit within
// maxWidth x maxHeight (zero disables a bound) and takes the still through a
// camera over the uploaded frame, so uploads and live captures encode alike.
func NormalizePhoto(ctx context.Context, payload []byte, maxWidth, maxHeight int) (string, error) {
	img, err := DecodeImage(payload)
	if err != nil {
		return "", err
	}
	bounds := img.Bounds()
	if maxWidth <= 0 {
		maxWidth = bounds.Dx()
	}
	if maxHeight <= 0 {
		maxHeight = bounds.Dy()
	}
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}
	return CaptureStill(ctx, StillDevice{Image: img}, nil)
}

func unwrapDataURL(payload []byte) ([]byte, error) {
	text := strings.TrimSpace(string(payload))
	if !strings.HasPrefix(text, "data:") {
		if len(payload) == 0 {
			return nil, fmt.Errorf("decode photo: empty payload")
		}
		return payload, nil
	}
	comma := strings.IndexByte(text, ',')
	if comma < 0 || !strings.Contains(text[:comma], ";base64") {
		return nil, fmt.Errorf("decode photo: unsupported data url")
	}
	raw, err := base64.StdEncoding.DecodeString(text[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	return raw, nil
}
