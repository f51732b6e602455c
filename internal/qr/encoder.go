// Package qr renders QR code images for shortened links.
package qr

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

// DefaultSize is the rendered image width and height in pixels.
const DefaultSize = 400

// PNGEncoder encodes QR codes as base64 PNG data URLs, suitable for
// embedding directly in API responses.
type PNGEncoder struct {
	size int
}

// NewPNGEncoder creates an encoder rendering images of the given pixel
// size.
func NewPNGEncoder(size int) *PNGEncoder {
	if size <= 0 {
		size = DefaultSize
	}

	return &PNGEncoder{size: size}
}

// DataURL renders the content as a QR code PNG data URL.
func (e *PNGEncoder) DataURL(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, e.size)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
